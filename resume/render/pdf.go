package render

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"

	"resumegenius-backend/internal/extract"
	"resumegenius-backend/internal/shared/metrics"
	"resumegenius-backend/internal/shared/telemetry"
	"resumegenius-backend/resume/model"
)

// ErrRender marks every failure to produce a PDF.
var ErrRender = errors.New("render failed")

const defaultRenderTimeout = 30 * time.Second

// PDFRenderer prints the HTML resume to PDF with a headless Chrome. The
// browser is launched on first use and shared across requests.
type PDFRenderer struct {
	bin     string
	timeout time.Duration
	theme   Theme

	mu      sync.Mutex
	launch  *launcher.Launcher
	browser *rod.Browser
}

// NewPDFRenderer returns a renderer that launches bin (or a discovered
// Chrome when bin is empty).
func NewPDFRenderer(bin string, timeout time.Duration) *PDFRenderer {
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	return &PDFRenderer{bin: strings.TrimSpace(bin), timeout: timeout, theme: DefaultTheme}
}

// WithTheme replaces the theme used for subsequent renders.
func (r *PDFRenderer) WithTheme(theme Theme) *PDFRenderer {
	r.theme = theme
	return r
}

// Render produces a verified PDF for doc.
func (r *PDFRenderer) Render(ctx context.Context, doc model.ResumeDocument) ([]byte, error) {
	start := time.Now()
	defer func() { metrics.ObserveRenderDuration(time.Since(start)) }()

	html, err := RenderHTMLWithTheme(doc, r.theme)
	if err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, errors.Wrapf(ErrRender, "start browser: %v", err)
	}

	data, err := r.print(ctx, browser, string(html))
	if err != nil {
		return nil, errors.Wrapf(ErrRender, "print pdf: %v", err)
	}

	if err := verify(ctx, data, doc.PersonalInfo.FullName); err != nil {
		return nil, err
	}
	return data, nil
}

func (r *PDFRenderer) print(ctx context.Context, browser *rod.Browser, html string) ([]byte, error) {
	page, err := browser.Context(ctx).Timeout(r.timeout).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = page.Close() }()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, err
	}
	return io.ReadAll(stream)
}

func (r *PDFRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		if _, err := r.browser.Version(); err == nil {
			return r.browser, nil
		}
		telemetry.Warn("render.browser_stale", nil)
		_ = r.closeLocked()
	}

	l := launcher.New().Headless(true).NoSandbox(true)
	if r.bin != "" {
		l = l.Bin(r.bin)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, errors.Wrap(err, "launch chrome")
	}
	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, errors.Wrap(err, "connect to chrome")
	}
	telemetry.Info("render.browser_started", map[string]any{"bin": r.bin})

	r.launch = l
	r.browser = browser
	return browser, nil
}

// Close shuts the shared browser down.
func (r *PDFRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closeLocked()
}

func (r *PDFRenderer) closeLocked() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launch != nil {
		r.launch.Kill()
		r.launch = nil
	}
	return err
}

// verify checks the printed bytes are a readable PDF with at least one page.
// A missing name in the extracted text is only logged since embedded font
// subsets do not always round-trip to plain text.
func verify(ctx context.Context, data []byte, fullName string) error {
	report, err := extract.Inspect(ctx, data)
	if err != nil {
		return errors.Wrapf(ErrRender, "verify pdf: %v", err)
	}
	if report.Pages < 1 {
		return errors.Wrap(ErrRender, "verify pdf: no pages")
	}
	if report.Pages > 1 {
		telemetry.Warn("render.multi_page", map[string]any{"pages": report.Pages})
	}
	if !containsFold(report.Text, fullName) {
		telemetry.Warn("render.name_not_found", map[string]any{"pages": report.Pages})
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	squash := func(s string) string { return strings.ToLower(strings.Join(strings.Fields(s), "")) }
	return strings.Contains(squash(haystack), squash(needle))
}
