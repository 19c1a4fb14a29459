package handler

import (
	catalogapp "github.com/gestor/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// AttachmentHandler handles presigned object storage flows for product
// images and partner attachments. Storage keys carry slashes, so every
// operation takes the key as a query parameter rather than a path segment.
type AttachmentHandler struct {
	BaseHandler
	attachmentService *catalogapp.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *catalogapp.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// RegisterRoutes registers attachment routes on the API group
func (h *AttachmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	attachments := rg.Group("/attachments")
	attachments.POST("/uploads", h.InitiateUpload)
	attachments.GET("/download-url", h.ResolveDownload)
	attachments.DELETE("", h.Delete)
}

// InitiateUpload validates the file metadata and returns a presigned PUT
// URL plus the storage key the client must reference afterwards.
func (h *AttachmentHandler) InitiateUpload(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.attachmentService.InitiateUpload(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// ResolveDownload returns a short-lived download URL for a stored object.
// Keys outside the caller's tenant prefix resolve to not found.
func (h *AttachmentHandler) ResolveDownload(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "Query parameter 'key' is required")
		return
	}

	resp, err := h.attachmentService.ResolveDownload(c.Request.Context(), tenantID, key)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a stored object.
func (h *AttachmentHandler) Delete(c *gin.Context) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "Query parameter 'key' is required")
		return
	}

	if err := h.attachmentService.DeleteObject(c.Request.Context(), tenantID, key); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
