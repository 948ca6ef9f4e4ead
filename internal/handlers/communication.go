package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dafoundation/disaster-relief-api/internal/dto"
	"github.com/dafoundation/disaster-relief-api/internal/flash"
	"github.com/dafoundation/disaster-relief-api/internal/middleware"
	"github.com/dafoundation/disaster-relief-api/internal/services"
	"github.com/dafoundation/disaster-relief-api/internal/utils"
)

const messageIndexPath = "/messages"

// CommunicationHandler serves volunteer messaging.
type CommunicationHandler struct {
	communications *services.CommunicationService
}

// NewCommunicationHandler creates a new CommunicationHandler
func NewCommunicationHandler(communications *services.CommunicationService) *CommunicationHandler {
	return &CommunicationHandler{communications: communications}
}

// List returns the messages the caller participates in.
func (h *CommunicationHandler) List(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	params := utils.GetPaginationParams(c)

	messages, total, err := h.communications.List(caller, params)
	if err != nil {
		respondServiceError(c, err, messageIndexPath)
		return
	}

	successes, errs := flash.Take(c)
	c.JSON(http.StatusOK, gin.H{
		"messages": messages,
		"success":  successes,
		"errors":   errs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// Get returns one message, marking it read for its recipient.
func (h *CommunicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	message, err := h.communications.Get(middleware.CurrentCaller(c), id)
	if err != nil {
		respondServiceError(c, err, messageIndexPath)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Send creates a message from the caller.
func (h *CommunicationHandler) Send(c *gin.Context) {
	var form dto.MessageForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.communications.Send(middleware.CurrentCaller(c), services.MessageInput{
		RecipientUserID: form.RecipientUserID,
		Subject:         form.Subject,
		Message:         form.Message,
		RelatedTaskID:   form.RelatedTaskID,
		MessageType:     form.MessageType,
	})
	if err != nil {
		respondServiceError(c, err, messageIndexPath)
		return
	}

	flash.Success(c, "Message sent successfully!")
	c.Redirect(http.StatusSeeOther, messageIndexPath)
}

// Reply responds to an existing message.
func (h *CommunicationHandler) Reply(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var form dto.ReplyForm
	if err := c.ShouldBind(&form); err != nil {
		respondBindError(c, err, form)
		return
	}

	_, err := h.communications.Reply(middleware.CurrentCaller(c), id, form.Message)
	if err != nil {
		respondServiceError(c, err, messageIndexPath)
		return
	}

	flash.Success(c, "Reply sent successfully!")
	c.Redirect(http.StatusSeeOther, messageIndexPath)
}

// Delete removes a message; sender only.
func (h *CommunicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.communications.Delete(middleware.CurrentCaller(c), id); err != nil {
		respondServiceError(c, err, messageIndexPath)
		return
	}

	flash.Success(c, "Message deleted successfully!")
	c.Redirect(http.StatusSeeOther, messageIndexPath)
}
