package handler

import (
	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// SupplierHandler handles supplier API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// RegisterRoutes registers supplier routes on the API group
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	suppliers.POST("", h.Create)
	suppliers.GET("", h.List)
	suppliers.GET("/document/:document", h.GetByDocument)
	suppliers.GET("/:id", h.GetByID)
	suppliers.PUT("/:id", h.Update)
	suppliers.POST("/:id/items", h.AppendItem)
	suppliers.PATCH("/:id/status", h.SetStatus)
	suppliers.DELETE("/:id", h.Delete)
}

// Create creates a supplier with its child collections and supplied items.
func (h *SupplierHandler) Create(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, supplier)
}

// GetByID retrieves one supplier with every child collection loaded.
func (h *SupplierHandler) GetByID(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), tenantID, supplierID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// GetByDocument looks a supplier up by CPF, CNPJ or foreign document.
func (h *SupplierHandler) GetByDocument(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplier, err := h.supplierService.GetByDocument(c.Request.Context(), tenantID, c.Param("document"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// List returns the filtered, paginated supplier listing.
func (h *SupplierHandler) List(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter partnerapp.SupplierListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.supplierService.List(c.Request.Context(), tenantID, &filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update applies a partial update. Supplied items are untouched here; they
// only grow through AppendItem.
func (h *SupplierHandler) Update(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), tenantID, supplierID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, supplier)
}

// AppendItem adds one supplied item to the supplier's catalog.
func (h *SupplierHandler) AppendItem(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req partnerapp.SupplierItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.supplierService.AppendItem(c.Request.Context(), tenantID, supplierID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// SetStatus activates or deactivates a supplier.
func (h *SupplierHandler) SetStatus(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	var req partnerapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.supplierService.SetStatus(c.Request.Context(), tenantID, supplierID, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a supplier. Soft delete by default; ?hard=true purges the
// row and its children.
func (h *SupplierHandler) Delete(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	supplierID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	hard := c.Query("hard") == "true"
	if err := h.supplierService.Delete(c.Request.Context(), tenantID, supplierID, hard); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
