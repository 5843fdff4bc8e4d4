package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initProjectRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects", h.userIdentityMiddleware)

	projects.POST("", h.createProject)
	projects.GET("", h.listMyProjects)
	projects.GET("/:id", h.getProject)
	projects.PUT("/:id", h.updateProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.GET("/:id/tasks", h.listProjectTasks)
}

type createProjectRequest struct {
	StartupID   uuid.UUID `json:"startup_id" binding:"required"`
	Name        string    `json:"name" binding:"required,max=128"`
	Description string    `json:"description" binding:"max=4000"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	Budget      float64   `json:"budget" binding:"min=0"`
	StartDate   string    `json:"start_date" binding:"omitempty"`
	DueDate     string    `json:"due_date" binding:"omitempty"`
}

// @Summary Create project
// @Tags Projects
// @ModuleID createProject
// @Accept  json
// @Produce  json
// @Param input body createProjectRequest true "project info"
// @Success 201 {object} domain.Project
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /projects [post]
func (h *Handler) createProject(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}

	project, err := h.services.Projects.Create(c.Request.Context(), userID, service.CreateProjectInput{
		StartupID:   req.StartupID,
		Name:        req.Name,
		Description: req.Description,
		Priority:    domain.Priority(req.Priority),
		Budget:      req.Budget,
		StartDate:   startDate,
		DueDate:     dueDate,
	})
	if err != nil {
		if errors.Is(err, service.ErrStartupNotFound) {
			errorResponse(c, StartupNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, project)
}

// @Summary List my projects
// @Tags Projects
// @ModuleID listMyProjects
// @Accept  json
// @Produce  json
// @Success 200 {object} projectListResponse
// @Failure 401 {object} ErrorStruct
// @Security UserAuth
// @Router /projects [get]
func (h *Handler) listMyProjects(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	projects, err := h.services.Projects.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, projectListResponse{Projects: projects})
}

// @Summary Get project
// @Tags Projects
// @ModuleID getProject
// @Accept  json
// @Produce  json
// @Param id path string true "project id"
// @Success 200 {object} domain.Project
// @Failure 400 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id} [get]
func (h *Handler) getProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	project, err := h.services.Projects.GetOneByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			errorResponse(c, ProjectNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, project)
}

type updateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=128"`
	Description string  `json:"description" binding:"max=4000"`
	Status      string  `json:"status" binding:"omitempty,oneof=not_started in_progress on_hold completed delayed"`
	Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
	Budget      float64 `json:"budget" binding:"min=0"`
	Progress    int     `json:"progress" binding:"min=0,max=100"`
	StartDate   string  `json:"start_date" binding:"omitempty"`
	DueDate     string  `json:"due_date" binding:"omitempty"`
}

// @Summary Update project
// @Tags Projects
// @Description Restricted to the project creator and the owning founder
// @ModuleID updateProject
// @Accept  json
// @Produce  json
// @Param id path string true "project id"
// @Param input body updateProjectRequest true "project info"
// @Success 200 {object} domain.Project
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id} [put]
func (h *Handler) updateProject(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	project, err := h.services.Projects.GetOneByID(c.Request.Context(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			errorResponse(c, ProjectNotFoundCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
		return
	}
	dueDate, err := parseOptionalDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be YYYY-MM-DD"})
		return
	}

	project.Name = req.Name
	project.Description = req.Description
	if req.Status != "" {
		project.Status = domain.ProjectStatus(req.Status)
	}
	if req.Priority != "" {
		project.Priority = domain.Priority(req.Priority)
	}
	project.Budget = req.Budget
	project.Progress = req.Progress
	if startDate != nil {
		project.StartDate = startDate
	}
	if dueDate != nil {
		project.DueDate = dueDate
	}

	if err := h.services.Projects.Update(c.Request.Context(), userID, project); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			errorResponseWithStatus(c, http.StatusForbidden, PermissionDeniedCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, project)
}

// @Summary Delete project
// @Tags Projects
// @ModuleID deleteProject
// @Accept  json
// @Produce  json
// @Param id path string true "project id"
// @Success 200
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /projects/{id} [delete]
func (h *Handler) deleteProject(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := h.services.Projects.Delete(c.Request.Context(), userID, projectID); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			errorResponse(c, ProjectNotFoundCode)
		case errors.Is(err, service.ErrPermissionDenied):
			errorResponseWithStatus(c, http.StatusForbidden, PermissionDeniedCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

type taskListResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// @Summary Project tasks
// @Tags Projects
// @ModuleID listProjectTasks
// @Accept  json
// @Produce  json
// @Param id path string true "project id"
// @Success 200 {object} taskListResponse
// @Security UserAuth
// @Router /projects/{id}/tasks [get]
func (h *Handler) listProjectTasks(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	tasks, err := h.services.Tasks.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, taskListResponse{Tasks: tasks})
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
