package handler

import (
	billingapp "github.com/gestor/backend/internal/application/billing"
	"github.com/gin-gonic/gin"
)

// BillingHandler handles payment gateway endpoints
type BillingHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(paymentService *billingapp.PaymentService) *BillingHandler {
	return &BillingHandler{paymentService: paymentService}
}

// RegisterRoutes registers billing routes on the API group
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	billing := rg.Group("/billing")
	billing.POST("/charges", h.CreateCharge)
	billing.POST("/subscriptions", h.CreateSubscription)
}

// CreateCharge submits a one-off charge to the payment gateway.
func (h *BillingHandler) CreateCharge(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	charge, err := h.paymentService.CreateCharge(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, charge)
}

// CreateSubscription opens a recurring billing agreement with the gateway.
func (h *BillingHandler) CreateSubscription(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	subscription, err := h.paymentService.CreateSubscription(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, subscription)
}
