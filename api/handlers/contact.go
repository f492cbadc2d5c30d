package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agriprofit/agriprofit/internal/logger"
	"github.com/agriprofit/agriprofit/pkg/models"
	"github.com/agriprofit/agriprofit/pkg/validation"
)

const maxMessageLength = 2000

// MessageStore persists contact form submissions.
type MessageStore interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
}

type ContactHandler struct {
	messages MessageStore
}

func NewContactHandler(messages MessageStore) *ContactHandler {
	return &ContactHandler{messages: messages}
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// Submit godoc
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Contact message"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string "Validation failure"
// @Router /api/contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Name = validation.SanitizeString(req.Name)
	req.Email = validation.SanitizeString(req.Email)
	req.Subject = validation.SanitizeString(req.Subject)
	req.Message = validation.SanitizeString(req.Message)

	if err := validation.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Message) > maxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message too long"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.messages.Create(ctx, msg); err != nil {
		logger.WithError(err).Error("failed to store contact message")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store message"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "message received"})
}
