package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const defaultPDFTimeout = 30 * time.Second

// A4 paper dimensions in inches
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

var pdfTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, Helvetica, sans-serif; font-size: 11px; margin: 24px; }
  h1 { font-size: 16px; margin-bottom: 12px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #ccc; padding: 4px 6px; text-align: left; }
  th { background: #f0f0f0; }
  tr:nth-child(even) td { background: #fafafa; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>`))

// PDFRendererConfig configures the headless Chrome PDF renderer
type PDFRendererConfig struct {
	// Timeout for a single render, defaults to 30s
	Timeout time.Duration
	// RemoteURL points at a remote Chrome instance; empty launches a local one
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	Logger    *zap.Logger
}

// PDFRenderer renders the table to PDF through Chrome DevTools Protocol
type PDFRenderer struct {
	config      PDFRendererConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

var _ Renderer = (*PDFRenderer)(nil)

// NewPDFRenderer creates a renderer backed by a Chrome allocator
func NewPDFRenderer(cfg PDFRendererConfig) *PDFRenderer {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPDFTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &PDFRenderer{config: cfg, logger: logger}

	if cfg.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		return r
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	return r
}

// Close releases the Chrome allocator
func (r *PDFRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}

// Render builds the HTML document and prints it to PDF
func (r *PDFRenderer) Render(ctx context.Context, table *Table) ([]byte, error) {
	html, err := buildHTML(table)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx)
	defer browserCancel()

	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.config.Timeout, err)
		}
		r.logger.Error("PDF rendering failed", zap.Error(err))
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, errors.New("generated PDF is empty")
	}

	return pdfData, nil
}

// buildHTML renders the escaped HTML document for the table
func buildHTML(table *Table) (string, error) {
	if table == nil || len(table.Headers) == 0 {
		return "", errors.New("export table requires at least a header row")
	}

	var buf bytes.Buffer
	if err := pdfTemplate.Execute(&buf, table); err != nil {
		return "", fmt.Errorf("render export template: %w", err)
	}
	return buf.String(), nil
}
