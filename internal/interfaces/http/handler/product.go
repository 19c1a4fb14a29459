package handler

import (
	catalogapp "github.com/gestor/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes on the API group
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/barcode/:barcode", h.GetByBarcode)
	products.GET("/:id", h.GetByID)
	products.PUT("/:id", h.Update)
	products.PATCH("/:id/status", h.SetStatus)
	products.DELETE("/:id", h.Delete)
}

// Create creates a product, service or kit with its child collections.
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID retrieves one product with images, conversions and components.
func (h *ProductHandler) GetByID(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// GetByBarcode looks a product up by its exact barcode, for scanner flows.
func (h *ProductHandler) GetByBarcode(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	product, err := h.productService.GetByBarcode(c.Request.Context(), tenantID, c.Param("barcode"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// List returns the filtered, paginated product listing.
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.productService.List(c.Request.Context(), tenantID, &filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update applies a partial update; child collections are replaced only when
// present in the request body.
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), tenantID, productID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// SetStatus activates or deactivates a product.
func (h *ProductHandler) SetStatus(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	var req catalogapp.SetProductStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.productService.SetStatus(c.Request.Context(), tenantID, productID, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a product. Soft delete by default; ?hard=true purges the
// row and its children.
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	hard := c.Query("hard") == "true"
	if err := h.productService.Delete(c.Request.Context(), tenantID, productID, hard); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
