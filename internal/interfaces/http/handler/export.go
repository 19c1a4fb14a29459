package handler

import (
	"fmt"
	"time"

	exportapp "github.com/gestor/backend/internal/application/export"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExportHandler streams filtered listings as downloadable documents
type ExportHandler struct {
	BaseHandler
	exportService *exportapp.Service
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService *exportapp.Service) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers export routes on the API group
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	exports.GET("/clients", h.ExportClients)
	exports.GET("/suppliers", h.ExportSuppliers)
	exports.GET("/products", h.ExportProducts)
}

// ExportQuery carries the format plus the same filters the JSON listings
// accept, so a download always matches what the caller saw on screen.
type ExportQuery struct {
	Format    string     `form:"format" binding:"omitempty,oneof=csv xlsx pdf"`
	Name      string     `form:"name"`
	Document  string     `form:"document"`
	Kind      string     `form:"kind"`
	Status    string     `form:"status" binding:"omitempty,oneof=active inactive"`
	DateStart *time.Time `form:"date_start" time_format:"2006-01-02"`
	DateEnd   *time.Time `form:"date_end" time_format:"2006-01-02"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (q *ExportQuery) format() string {
	if q.Format == "" {
		return "csv"
	}
	return q.Format
}

func (q *ExportQuery) toFilter() shared.ListFilter {
	return shared.ListFilter{
		Name:      q.Name,
		Document:  q.Document,
		Kind:      q.Kind,
		Status:    q.Status,
		DateStart: q.DateStart,
		DateEnd:   q.DateEnd,
		OrderBy:   q.OrderBy,
		OrderDir:  q.OrderDir,
	}
}

type exportFunc func(c *gin.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*exportapp.Result, error)

func (h *ExportHandler) export(c *gin.Context, fn exportFunc) {
	tenantID, ok := getTenantID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var q ExportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := fn(c, tenantID, q.toFilter(), q.format())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(200, result.ContentType, result.Data)
}

// ExportClients renders the filtered client listing as a document.
func (h *ExportHandler) ExportClients(c *gin.Context) {
	h.export(c, func(c *gin.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*exportapp.Result, error) {
		return h.exportService.ExportClients(c.Request.Context(), tenantID, filter, format)
	})
}

// ExportSuppliers renders the filtered supplier listing as a document.
func (h *ExportHandler) ExportSuppliers(c *gin.Context) {
	h.export(c, func(c *gin.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*exportapp.Result, error) {
		return h.exportService.ExportSuppliers(c.Request.Context(), tenantID, filter, format)
	})
}

// ExportProducts renders the filtered product listing as a document.
func (h *ExportHandler) ExportProducts(c *gin.Context) {
	h.export(c, func(c *gin.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*exportapp.Result, error) {
		return h.exportService.ExportProducts(c.Request.Context(), tenantID, filter, format)
	})
}
