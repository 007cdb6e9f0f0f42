package service

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"time"

	"printshop-core/models"
	"printshop-core/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

//go:embed templates/quote_sheet.html
var quoteTemplates embed.FS

// diagramWidthPx is the rendered width of the imposition diagram
const diagramWidthPx = 240.0

// QuoteDocumentServiceInterface defines the contract for quote sheet rendering
type QuoteDocumentServiceInterface interface {
	RenderHTML(quote models.QuoteSheet) (string, error)
	GeneratePDF(ctx context.Context, quote models.QuoteSheet) ([]byte, error)
}

// QuoteDocumentService renders quote sheets as HTML and PDF
type QuoteDocumentService struct {
	shopName   string
	currency   string
	chromePath string
	timeout    time.Duration
	tmpl       *template.Template
}

// Ensure QuoteDocumentService implements QuoteDocumentServiceInterface
var _ QuoteDocumentServiceInterface = (*QuoteDocumentService)(nil)

// NewQuoteDocumentService creates a new QuoteDocumentService
func NewQuoteDocumentService(shopName, currency, chromePath string, timeout time.Duration) (*QuoteDocumentService, error) {
	tmpl, err := template.New("quote_sheet.html").Funcs(template.FuncMap{
		"money": func(v float64) string { return utils.FormatMoney(v, currency) },
		"mm":    func(v float64) string { return fmt.Sprintf("%.1f", v) },
		"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	}).ParseFS(quoteTemplates, "templates/quote_sheet.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &QuoteDocumentService{
		shopName:   shopName,
		currency:   currency,
		chromePath: chromePath,
		timeout:    timeout,
		tmpl:       tmpl,
	}, nil
}

// diagramCell is one placed item in the imposition diagram, in pixels
type diagramCell struct {
	X, Y, W, H float64
}

// impositionDiagram scales a sheet layout into a fixed-width SVG viewport
type impositionDiagram struct {
	Width, Height float64
	Cells         []diagramCell
	Caption       string
}

type quoteLineView struct {
	models.PriceResult
	Diagram *impositionDiagram
}

// RenderHTML renders the quote sheet template
func (s *QuoteDocumentService) RenderHTML(quote models.QuoteSheet) (string, error) {
	lines := make([]quoteLineView, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		lines = append(lines, quoteLineView{PriceResult: line, Diagram: buildDiagram(line.Imposition)})
	}

	templateData := struct {
		ShopName string
		Quote    models.QuoteSheet
		Issued   string
		Lines    []quoteLineView
	}{
		ShopName: s.shopName,
		Quote:    quote,
		Issued:   quote.IssuedAt.Format("2006-01-02 15:04"),
		Lines:    lines,
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// buildDiagram lays the imposed items out on the sheet, top-left first
func buildDiagram(imp *models.ImpositionResult) *impositionDiagram {
	if imp == nil || imp.SheetWidth <= 0 || imp.SheetHeight <= 0 || imp.Ups <= 0 {
		return nil
	}
	scale := diagramWidthPx / imp.SheetWidth
	d := &impositionDiagram{
		Width:   diagramWidthPx,
		Height:  imp.SheetHeight * scale,
		Caption: fmt.Sprintf("%d up (%d×%d), rotation %d°, on %s", imp.Ups, imp.Cols, imp.Rows, imp.Rotation, imp.MachineID),
	}
	offX := (imp.SheetWidth - imp.PWidth) / 2
	offY := (imp.SheetHeight - imp.PHeight) / 2
	if imp.Mode == models.MachineModeRoll {
		offY = 0
	}
	for r := 0; r < imp.Rows; r++ {
		for c := 0; c < imp.Cols; c++ {
			d.Cells = append(d.Cells, diagramCell{
				X: (offX + float64(c)*imp.ItemWidth) * scale,
				Y: (offY + float64(r)*imp.ItemHeight) * scale,
				W: imp.ItemWidth * scale,
				H: imp.ItemHeight * scale,
			})
		}
	}
	return d
}

// detectChromePath returns the configured Chrome path or the first common installation found
func (s *QuoteDocumentService) detectChromePath() string {
	if s.chromePath != "" {
		if _, err := os.Stat(s.chromePath); err == nil {
			return s.chromePath
		}
		log.Printf("⚠️  Configured Chrome path %s not found, probing defaults", s.chromePath)
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF renders the quote sheet and prints it to an A4 PDF with headless Chrome
func (s *QuoteDocumentService) GeneratePDF(ctx context.Context, quote models.QuoteSheet) ([]byte, error) {
	html, err := s.RenderHTML(quote)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := s.detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 = 8.27" x 11.69"
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("✅ GeneratePDF: quote %s rendered (%d bytes)", quote.Number, len(pdfBuf))
	return pdfBuf, nil
}
