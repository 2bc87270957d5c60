package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/carlosmendieta/resumeforge-backend/pkg/config"
	pkgerrors "github.com/carlosmendieta/resumeforge-backend/pkg/errors"
)

var pdfMagic = []byte("%PDF")

// ChromeRenderer prints HTML to PDF through a headless browser.
type ChromeRenderer struct {
	execPath string
	timeout  time.Duration
}

// NewChromeRenderer builds a renderer from the export configuration.
func NewChromeRenderer(cfg config.ExportConfig) *ChromeRenderer {
	timeout := cfg.RenderTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeRenderer{execPath: cfg.ChromePath, timeout: timeout}
}

// RenderPDF prints the page on A4 paper with backgrounds enabled.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, r.timeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resumeforge-export-")
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create render workspace")
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "resume.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write render input")
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 is 210mm x 297mm, expressed in inches for the protocol.
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "print resume to pdf")
	}
	if !bytes.HasPrefix(pdf, pdfMagic) {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "browser produced an invalid pdf")
	}
	return pdf, nil
}
