package admin

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var errMissingClient = errors.New("admin: procedure client not configured")

// Options configures the admin Service. Only Client is required.
type Options struct {
	Client        *Client
	Pages         *PageRegistry
	Charts        *ChartRenderer
	Translator    *Catalog
	Telemetry     Telemetry
	DefaultLocale string
	Now           func() time.Time
}

// Service loads page views on top of the procedure client.
type Service struct {
	opts Options
}

// NewService builds a Service with safe defaults.
func NewService(opts Options) *Service {
	if opts.Pages == nil {
		opts.Pages = DefaultPages()
	}
	if opts.Translator == nil {
		if catalog, err := DefaultCatalog(); err == nil {
			opts.Translator = catalog
		}
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = DefaultLocale
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// PageRequest identifies a page view and the browser-side selections.
type PageRequest struct {
	Page    string
	Locale  string
	Options ViewOptions
}

// Pages lists the registered data pages in nav order.
func (s *Service) Pages() []Page { return s.opts.Pages.List() }

// Page resolves a slug.
func (s *Service) Page(slug string) (Page, error) {
	page, ok := s.opts.Pages.Lookup(slug)
	if !ok {
		return Page{}, fmt.Errorf("%w: %s", ErrUnknownPage, slug)
	}
	return page, nil
}

// Client exposes the procedure client.
func (s *Service) Client() *Client { return s.opts.Client }

// Translator exposes the message catalogue.
func (s *Service) Translator() *Catalog { return s.opts.Translator }

// Locale returns the requested locale or the default.
func (s *Service) Locale(requested string) string {
	if requested == "" {
		return s.opts.DefaultLocale
	}
	if s.opts.Translator != nil && !s.opts.Translator.Supports(requested) {
		return s.opts.DefaultLocale
	}
	return baseLanguage(requested)
}

// Shell returns the page in its initial render: loading, with no data rows.
func (s *Service) Shell(req PageRequest) (*PageView, error) {
	page, err := s.Page(req.Page)
	if err != nil {
		return nil, err
	}
	view := NewPageView(page.Slug)
	view.Begin()
	return view, nil
}

// Load runs the page loader and returns a ready or error view. The only error
// returned directly is ErrUnknownPage; load failures are carried by the view.
func (s *Service) Load(ctx context.Context, req PageRequest) (*PageView, error) {
	page, err := s.Page(req.Page)
	if err != nil {
		return nil, err
	}
	view := NewPageView(page.Slug)
	s.run(ctx, page, view, req)
	return view, nil
}

// Refresh re-enters loading on an existing view and loads it again.
func (s *Service) Refresh(ctx context.Context, view *PageView, req PageRequest) error {
	if view == nil {
		return errors.New("admin: nil page view")
	}
	if req.Page == "" {
		req.Page = view.Page
	}
	page, err := s.Page(req.Page)
	if err != nil {
		return err
	}
	s.run(ctx, page, view, req)
	return nil
}

func (s *Service) run(ctx context.Context, page Page, view *PageView, req PageRequest) {
	view.Begin()
	if s.opts.Client == nil {
		view.Fail(errMissingClient)
		return
	}
	locale := s.Locale(req.Locale)
	started := s.opts.Now()
	data, err := page.Loader(ctx, LoadEnv{
		Client:     s.opts.Client,
		Charts:     s.opts.Charts,
		Translator: s.opts.Translator,
		Locale:     locale,
		Now:        started,
	})
	elapsed := s.opts.Now().Sub(started)
	if err != nil {
		view.Fail(err)
		s.recordTelemetry(ctx, EventPageFailed, map[string]any{
			"page":        page.Slug,
			"duration_ms": elapsed.Milliseconds(),
			"error":       err.Error(),
		})
		return
	}
	applyViewOptions(data, req.Options)
	view.Resolve(data, s.opts.Now())
	s.recordTelemetry(ctx, EventPageLoaded, map[string]any{
		"page":        page.Slug,
		"duration_ms": elapsed.Milliseconds(),
		"rows":        data.RowCount(),
	})
}

// Nav builds the header for the given path.
func (s *Service) Nav(path, locale string, menuOpen bool) NavShell {
	var translate func(string) string
	if s.opts.Translator != nil {
		translate = s.opts.Translator.Func(s.Locale(locale))
	}
	return BuildNav(s.Pages(), translate, path, menuOpen)
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}
