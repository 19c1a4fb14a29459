// Package export assembles tenant-scoped listings into downloadable
// documents.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/gestor/backend/internal/domain/catalog"
	"github.com/gestor/backend/internal/domain/partner"
	"github.com/gestor/backend/internal/domain/shared"
	"github.com/gestor/backend/internal/infrastructure/export"
	"github.com/google/uuid"
)

// exportPageSize is the repository page size used while draining a listing.
const exportPageSize = 100

// Result is a rendered document ready to stream to the caller.
type Result struct {
	Data        []byte
	ContentType string
	FileName    string
}

// Service renders client, supplier and product listings in the requested
// format. It drains the same filtered listing the JSON endpoints serve, so
// an export always matches what the caller saw on screen.
type Service struct {
	clientRepo   partner.ClientRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	renderers    map[export.Format]export.Renderer
}

// NewService creates a new export service. The renderer map decides which
// formats are available; a request for an unregistered format fails with
// INVALID_INPUT.
func NewService(
	clientRepo partner.ClientRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	renderers map[export.Format]export.Renderer,
) *Service {
	return &Service{
		clientRepo:   clientRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		renderers:    renderers,
	}
}

// ExportClients renders the filtered client listing.
func (s *Service) ExportClients(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*Result, error) {
	f, renderer, err := s.resolveRenderer(format)
	if err != nil {
		return nil, err
	}

	clients, err := drain(ctx, filter, func(ctx context.Context, lf shared.ListFilter) ([]partner.Client, int64, error) {
		return s.clientRepo.List(ctx, tenantID, lf)
	})
	if err != nil {
		return nil, err
	}

	table := &export.Table{
		Title:   "Clientes",
		Headers: []string{"Nome", "Tipo", "Documento", "Email", "Telefone", "Situação", "Criado em"},
	}
	for i := range clients {
		c := &clients[i]
		table.Rows = append(table.Rows, []string{
			c.Name,
			string(c.Kind),
			c.Document(),
			c.Email,
			c.Phone,
			string(c.Status),
			c.CreatedAt.Format("2006-01-02"),
		})
	}

	return s.render(ctx, renderer, f, "clientes", table)
}

// ExportSuppliers renders the filtered supplier listing.
func (s *Service) ExportSuppliers(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*Result, error) {
	f, renderer, err := s.resolveRenderer(format)
	if err != nil {
		return nil, err
	}

	suppliers, err := drain(ctx, filter, func(ctx context.Context, lf shared.ListFilter) ([]partner.Supplier, int64, error) {
		return s.supplierRepo.List(ctx, tenantID, lf)
	})
	if err != nil {
		return nil, err
	}

	table := &export.Table{
		Title:   "Fornecedores",
		Headers: []string{"Nome", "Tipo", "Documento", "Email", "Telefone", "Itens fornecidos", "Situação", "Criado em"},
	}
	for i := range suppliers {
		sp := &suppliers[i]
		table.Rows = append(table.Rows, []string{
			sp.Name,
			string(sp.Kind),
			sp.Document(),
			sp.Email,
			sp.Phone,
			fmt.Sprintf("%d", len(sp.Items)),
			string(sp.Status),
			sp.CreatedAt.Format("2006-01-02"),
		})
	}

	return s.render(ctx, renderer, f, "fornecedores", table)
}

// ExportProducts renders the filtered product listing.
func (s *Service) ExportProducts(ctx context.Context, tenantID uuid.UUID, filter shared.ListFilter, format string) (*Result, error) {
	f, renderer, err := s.resolveRenderer(format)
	if err != nil {
		return nil, err
	}

	products, err := drain(ctx, filter, func(ctx context.Context, lf shared.ListFilter) ([]catalog.Product, int64, error) {
		return s.productRepo.List(ctx, tenantID, lf)
	})
	if err != nil {
		return nil, err
	}

	table := &export.Table{
		Title:   "Produtos",
		Headers: []string{"Nome", "Tipo", "SKU", "Código de barras", "Unidade", "Preço de custo", "Preço de venda", "Situação"},
	}
	for i := range products {
		p := &products[i]
		table.Rows = append(table.Rows, []string{
			p.Name,
			string(p.Kind),
			p.SKU,
			p.Barcode,
			p.Unit,
			p.CostPrice.StringFixed(2),
			p.SalePrice.StringFixed(2),
			string(p.Status),
		})
	}

	return s.render(ctx, renderer, f, "produtos", table)
}

func (s *Service) resolveRenderer(format string) (export.Format, export.Renderer, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return "", nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	renderer, ok := s.renderers[f]
	if !ok {
		return "", nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Export format %q is not available", format))
	}
	return f, renderer, nil
}

func (s *Service) render(ctx context.Context, renderer export.Renderer, f export.Format, name string, table *export.Table) (*Result, error) {
	data, err := renderer.Render(ctx, table)
	if err != nil {
		return nil, shared.WrapExport(err)
	}

	return &Result{
		Data:        data,
		ContentType: f.ContentType(),
		FileName:    fmt.Sprintf("%s-%s.%s", name, time.Now().Format("20060102"), f.Extension()),
	}, nil
}

// drain pages through the filtered listing until every matching row has
// been fetched.
func drain[T any](ctx context.Context, filter shared.ListFilter, list func(context.Context, shared.ListFilter) ([]T, int64, error)) ([]T, error) {
	filter.Page = 1
	filter.PageSize = exportPageSize
	filter.Normalize()

	var out []T
	for {
		items, total, err := list(ctx, filter)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || int64(len(out)) >= total {
			return out, nil
		}
		filter.Page++
	}
}
