package handler

import (
	partnerapp "github.com/gestor/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// ClientHandler handles client API endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partnerapp.ClientService
}

// NewClientHandler creates a new ClientHandler
func NewClientHandler(clientService *partnerapp.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// RegisterRoutes registers client routes on the API group
func (h *ClientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	clients := rg.Group("/clients")
	clients.POST("", h.Create)
	clients.GET("", h.List)
	clients.GET("/document/:document", h.GetByDocument)
	clients.GET("/:id", h.GetByID)
	clients.PUT("/:id", h.Update)
	clients.PATCH("/:id/status", h.SetStatus)
	clients.DELETE("/:id", h.Delete)
}

// Create creates a client with its child collections in one request.
func (h *ClientHandler) Create(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req partnerapp.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, client)
}

// GetByID retrieves one client with every child collection loaded.
func (h *ClientHandler) GetByID(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetByID(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// GetByDocument looks a client up by CPF, CNPJ or foreign document. The
// submitted value may carry punctuation; matching normalizes it.
func (h *ClientHandler) GetByDocument(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	client, err := h.clientService.GetByDocument(c.Request.Context(), tenantID, c.Param("document"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// List returns the filtered, paginated client listing.
func (h *ClientHandler) List(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter partnerapp.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.clientService.List(c.Request.Context(), tenantID, &filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update applies a partial update; child collections are replaced only when
// present in the request body.
func (h *ClientHandler) Update(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req partnerapp.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), tenantID, clientID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, client)
}

// SetStatus activates or deactivates a client.
func (h *ClientHandler) SetStatus(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	var req partnerapp.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.clientService.SetStatus(c.Request.Context(), tenantID, clientID, req.Status); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete removes a client. Soft delete by default; ?hard=true purges the
// row and its children.
func (h *ClientHandler) Delete(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	clientID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid client ID format")
		return
	}

	hard := c.Query("hard") == "true"
	if err := h.clientService.Delete(c.Request.Context(), tenantID, clientID, hard); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
