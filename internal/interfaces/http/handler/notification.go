package handler

import (
	notificationapp "github.com/gestor/backend/internal/application/notification"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles transactional email endpoints
type NotificationHandler struct {
	BaseHandler
	emailService *notificationapp.EmailService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(emailService *notificationapp.EmailService) *NotificationHandler {
	return &NotificationHandler{emailService: emailService}
}

// RegisterRoutes registers notification routes on the API group
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.POST("/email", h.SendEmail)
}

// SendEmail sends a transactional email on behalf of the tenant.
func (h *NotificationHandler) SendEmail(c *gin.Context) {
	if _, ok := getTenantID(c); !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req notificationapp.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.emailService.Send(c.Request.Context(), &req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
