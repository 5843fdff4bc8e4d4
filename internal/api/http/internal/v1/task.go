package v1

import (
	"errors"
	"net/http"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initTaskRoutes(api *gin.RouterGroup) {
	tasks := api.Group("/tasks", h.userIdentityMiddleware)

	tasks.POST("", h.createTask)
	tasks.GET("", h.listMyTasks)
	tasks.GET("/:id", h.getTask)
	tasks.PUT("/:id", h.updateTask)
}

type createTaskRequest struct {
	ProjectID   uuid.UUID  `json:"project_id" binding:"required"`
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Title       string     `json:"title" binding:"required,max=128"`
	Description string     `json:"description" binding:"max=4000"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     string     `json:"due_date" binding:"omitempty"`
}

// @Summary Create task
// @Tags Tasks
// @Description Assigning a user also fans out a notification to them
// @ModuleID createTask
// @Accept  json
// @Produce  json
// @Param input body createTaskRequest true "task info"
// @Success 201 {object} domain.Task
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /tasks [post]
func (h *Handler) createTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}

	task, err := h.services.Tasks.Create(c.Request.Context(), service.CreateTaskInput{
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		DueDate:     dueDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			errorResponse(c, ProjectNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// @Summary My tasks
// @Tags Tasks
// @Description Tasks assigned to the authenticated user
// @ModuleID listMyTasks
// @Accept  json
// @Produce  json
// @Success 200 {object} taskListResponse
// @Security UserAuth
// @Router /tasks [get]
func (h *Handler) listMyTasks(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tasks, err := h.services.Tasks.ListByAssignee(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, taskListResponse{Tasks: tasks})
}

// @Summary Get task
// @Tags Tasks
// @ModuleID getTask
// @Accept  json
// @Produce  json
// @Param id path string true "task id"
// @Success 200 {object} domain.Task
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /tasks/{id} [get]
func (h *Handler) getTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	task, err := h.services.Tasks.GetOneByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			errorResponse(c, TaskNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, task)
}

type updateTaskRequest struct {
	AssignedTo  *uuid.UUID `json:"assigned_to"`
	Title       string     `json:"title" binding:"required,max=128"`
	Description string     `json:"description" binding:"max=4000"`
	Status      string     `json:"status" binding:"omitempty,oneof=not_started in_progress review completed blocked"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	Progress    int        `json:"progress" binding:"min=0,max=100"`
	DueDate     string     `json:"due_date" binding:"omitempty"`
}

// @Summary Update task
// @Tags Tasks
// @Description Status changes fan out to the startup founder, reassignment to the new assignee
// @ModuleID updateTask
// @Accept  json
// @Produce  json
// @Param id path string true "task id"
// @Param input body updateTaskRequest true "task info"
// @Success 200 {object} domain.Task
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /tasks/{id} [put]
func (h *Handler) updateTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	task, err := h.services.Tasks.GetOneByID(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			errorResponse(c, TaskNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}

	if req.AssignedTo != nil {
		task.AssignedTo = req.AssignedTo
	}
	task.Title = req.Title
	task.Description = req.Description
	if req.Status != "" {
		task.Status = domain.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		task.Priority = domain.Priority(req.Priority)
	}
	task.Progress = req.Progress
	if dueDate != nil {
		task.DueDate = dueDate
	}

	if err := h.services.Tasks.Update(c.Request.Context(), task); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, task)
}
