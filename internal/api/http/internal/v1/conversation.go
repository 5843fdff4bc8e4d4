package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/venturenest/backend/internal/domain"
	"github.com/venturenest/backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) initConversationRoutes(api *gin.RouterGroup) {
	conversations := api.Group("/conversations", h.userIdentityMiddleware)

	conversations.GET("", h.listConversations)
	conversations.POST("/direct", h.startDirectConversation)
	conversations.GET("/:id/messages", h.listMessages)
	conversations.POST("/:id/messages", h.sendMessage)
	conversations.GET("/:id/messages/:messageId/receipts", h.messageReceipts)
	conversations.POST("/:id/read", h.markConversationRead)
	conversations.POST("/:id/leave", h.leaveConversation)
}

type conversationListResponse struct {
	Conversations []service.ConversationSummary `json:"conversations"`
}

// @Summary List conversations
// @Tags Conversations
// @Description Conversations the user belongs to, with unread counts
// @ModuleID listConversations
// @Accept  json
// @Produce  json
// @Success 200 {object} conversationListResponse
// @Security UserAuth
// @Router /conversations [get]
func (h *Handler) listConversations(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	summaries, err := h.services.Messaging.ListConversations(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, conversationListResponse{Conversations: summaries})
}

type startDirectRequest struct {
	RecipientID uuid.UUID `json:"recipient_id" binding:"required"`
}

type startDirectResponse struct {
	Conversation *domain.Conversation `json:"conversation"`
	Created      bool                 `json:"created"`
}

// @Summary Start direct conversation
// @Tags Conversations
// @Description Idempotent: returns the existing direct conversation when one exists
// @ModuleID startDirectConversation
// @Accept  json
// @Produce  json
// @Param input body startDirectRequest true "recipient"
// @Success 200 {object} startDirectResponse
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /conversations/direct [post]
func (h *Handler) startDirectConversation(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req startDirectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	conversation, created, err := h.services.Messaging.StartDirectConversation(c.Request.Context(), userID, req.RecipientID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessagingNotAllowed), errors.Is(err, service.ErrCannotMessageSelf):
			errorResponseWithStatus(c, http.StatusForbidden, MessagingNotAllowedCode)
		case errors.Is(err, service.ErrUserNotFound):
			errorResponse(c, UserNotFoundCode)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, startDirectResponse{Conversation: conversation, Created: created})
}

type sendMessageRequest struct {
	Content    string `json:"content" binding:"required,max=4000"`
	Type       string `json:"type" binding:"omitempty,oneof=text system file investment_update milestone"`
	Attachment string `json:"attachment" binding:"omitempty,max=512"`
}

// @Summary Send message
// @Tags Conversations
// @Description Persist a message and a delivery record per other member
// @ModuleID sendMessage
// @Accept  json
// @Produce  json
// @Param id path string true "conversation id"
// @Param input body sendMessageRequest true "message"
// @Success 201 {object} domain.Message
// @Failure 400 {object} ErrorStruct
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /conversations/{id}/messages [post]
func (h *Handler) sendMessage(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	message, err := h.services.Messaging.SendMessage(c.Request.Context(), conversationID, userID, req.Content, domain.MessageType(req.Type), req.Attachment)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			errorResponseWithStatus(c, http.StatusForbidden, NotConversationMemberCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, message)
}

type messageListResponse struct {
	Messages []domain.Message `json:"messages"`
}

// @Summary List messages
// @Tags Conversations
// @Description Messages in creation order, oldest first
// @ModuleID listMessages
// @Accept  json
// @Produce  json
// @Param id path string true "conversation id"
// @Param limit query int false "max rows, default 50"
// @Success 200 {object} messageListResponse
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /conversations/{id}/messages [get]
func (h *Handler) listMessages(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := h.services.Messaging.ListMessages(c.Request.Context(), conversationID, userID, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			errorResponseWithStatus(c, http.StatusForbidden, NotConversationMemberCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, messageListResponse{Messages: messages})
}

type messageReceiptsResponse struct {
	Receipts []domain.MessageRecipient `json:"receipts"`
}

// @Summary Message read receipts
// @Tags Conversations
// @Description Per-recipient read state for one message
// @ModuleID messageReceipts
// @Accept  json
// @Produce  json
// @Param id path string true "conversation id"
// @Param messageId path string true "message id"
// @Success 200 {object} messageReceiptsResponse
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /conversations/{id}/messages/{messageId}/receipts [get]
func (h *Handler) messageReceipts(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	receipts, err := h.services.Messaging.MessageReceipts(c.Request.Context(), conversationID, messageID, userID)
	if err != nil {
		if errors.Is(err, service.ErrNotMember) {
			errorResponseWithStatus(c, http.StatusForbidden, NotConversationMemberCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, messageReceiptsResponse{Receipts: receipts})
}

// @Summary Mark conversation read
// @Tags Conversations
// @ModuleID markConversationRead
// @Accept  json
// @Produce  json
// @Param id path string true "conversation id"
// @Success 200
// @Failure 403 {object} ErrorStruct
// @Security UserAuth
// @Router /conversations/{id}/read [post]
func (h *Handler) markConversationRead(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := h.services.Messaging.MarkConversationRead(c.Request.Context(), conversationID, userID); err != nil {
		if errors.Is(err, service.ErrNotMember) {
			errorResponseWithStatus(c, http.StatusForbidden, NotConversationMemberCode)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}

// @Summary Leave conversation
// @Tags Conversations
// @Description Removes the membership; empty direct conversations are archived
// @ModuleID leaveConversation
// @Accept  json
// @Produce  json
// @Param id path string true "conversation id"
// @Success 200
// @Security UserAuth
// @Router /conversations/{id}/leave [post]
func (h *Handler) leaveConversation(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := h.services.Messaging.LeaveConversation(c.Request.Context(), conversationID, userID); err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusOK)
}
