package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"sort"
)

// ControllerOptions wires the controller.
type ControllerOptions struct {
	Service       *Service
	Chat          *ChatBridge
	Renderer      Renderer
	PageTemplate  string
	ChatTemplate  string
	ErrorTemplate string
}

// Controller turns page views into HTML through the renderer.
type Controller struct {
	service       *Service
	chat          *ChatBridge
	renderer      Renderer
	pageTemplate  string
	chatTemplate  string
	errorTemplate string
}

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.PageTemplate == "" {
		opts.PageTemplate = "page.html"
	}
	if opts.ChatTemplate == "" {
		opts.ChatTemplate = "chat.html"
	}
	if opts.ErrorTemplate == "" {
		opts.ErrorTemplate = "fragments/error.html"
	}
	return &Controller{
		service:       opts.Service,
		chat:          opts.Chat,
		renderer:      opts.Renderer,
		pageTemplate:  opts.PageTemplate,
		chatTemplate:  opts.ChatTemplate,
		errorTemplate: opts.ErrorTemplate,
	}
}

// Service exposes the underlying service.
func (c *Controller) Service() *Service { return c.service }

// Chat exposes the chat bridge.
func (c *Controller) Chat() *ChatBridge { return c.chat }

// ShellRequest describes a full page render.
type ShellRequest struct {
	Page     string
	Locale   string
	MenuOpen bool
	Options  ViewOptions
}

// RenderShell renders the page layout in the loading state. The browser then
// fetches the content fragment.
func (c *Controller) RenderShell(ctx context.Context, req ShellRequest, out io.Writer) (*PageView, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	page, err := c.service.Page(req.Page)
	if err != nil {
		return nil, err
	}
	view, err := c.service.Shell(PageRequest{Page: page.Slug, Locale: req.Locale, Options: req.Options})
	if err != nil {
		return nil, err
	}
	locale := c.service.Locale(req.Locale)
	payload := c.basePayload(locale, "/"+page.Slug, req.MenuOpen)
	payload["page"] = pagePayload(page)
	payload["view"] = viewPayload(view)
	payload["content_url"] = pageURL(page.Slug, "_content", req.Options)
	payload["refresh_url"] = pageURL(page.Slug, "_refresh", req.Options)
	payload["options"] = optionsPayload(req.Options)
	if _, err := c.renderer.Render(c.pageTemplate, payload, out); err != nil {
		return nil, fmt.Errorf("admin: render %s shell: %w", page.Slug, err)
	}
	return view, nil
}

// RenderContent loads the page and renders its ready or error fragment.
func (c *Controller) RenderContent(ctx context.Context, req PageRequest, out io.Writer) (*PageView, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	view, err := c.service.Load(ctx, req)
	if err != nil {
		return nil, err
	}
	return view, c.RenderView(view, req, out)
}

// RenderView renders an already loaded view: its page fragment when ready, the
// error fragment otherwise.
func (c *Controller) RenderView(view *PageView, req PageRequest, out io.Writer) error {
	if err := c.ready(); err != nil {
		return err
	}
	if view == nil {
		return errors.New("admin: nil page view")
	}
	page, err := c.service.Page(view.Page)
	if err != nil {
		return err
	}
	locale := c.service.Locale(req.Locale)
	payload := c.basePayload(locale, "/"+page.Slug, false)
	payload["page"] = pagePayload(page)
	payload["view"] = viewPayload(view)
	payload["options"] = optionsPayload(req.Options)
	template := page.Template + ".html"
	if view.Failed() {
		template = c.errorTemplate
	} else {
		payload["data"] = view.Data
	}
	if _, err := c.renderer.Render(template, payload, out); err != nil {
		return fmt.Errorf("admin: render %s content: %w", page.Slug, err)
	}
	return nil
}

// ChatPageRequest describes a chat page render for one browser client.
type ChatPageRequest struct {
	Scope    string
	Locale   string
	Mode     ChatMode
	MenuOpen bool
}

// ChatPageState reports what the chat page rendered.
type ChatPageState struct {
	Configured bool
	SessionID  string
	Mode       ChatMode
}

const chatContainerID = "n8n-chat-container"

// RenderChat renders the chat page. A missing webhook renders the configuration
// state instead of the widget and is not an error.
func (c *Controller) RenderChat(ctx context.Context, req ChatPageRequest, out io.Writer) (ChatPageState, error) {
	if err := c.ready(); err != nil {
		return ChatPageState{}, err
	}
	if c.chat == nil {
		return ChatPageState{}, errors.New("admin: chat bridge not configured")
	}
	locale := c.service.Locale(req.Locale)
	mode := req.Mode
	if mode == "" {
		mode = ChatModeFullscreen
	}
	state := ChatPageState{Mode: mode}
	payload := c.basePayload(locale, "/"+PageChat, req.MenuOpen)
	payload["mode"] = string(mode)
	payload["fullscreen"] = mode == ChatModeFullscreen
	payload["container_id"] = chatContainerID
	payload["env_var"] = WebhookEnvVar

	opts, err := c.chat.WidgetOptions(ctx, req.Scope, mode, "#"+chatContainerID)
	switch {
	case errors.Is(err, ErrChatNotConfigured):
		payload["configured"] = false
	case err != nil:
		return state, err
	default:
		initializer := &ScriptInitializer{ScriptURL: c.chat.Config().ScriptURL}
		mount := NewChatMount(initializer)
		if err := mount.Initialize(ctx, opts); err != nil {
			return state, err
		}
		state.Configured = true
		state.SessionID = opts.Metadata.SessionID
		payload["configured"] = true
		payload["session_id"] = state.SessionID
		payload["widget_script"] = initializer.Script()
		payload["stylesheet"] = c.chat.Config().StylesheetURL
		payload["theme_vars"] = sortedVars(c.chat.Config().Theme.CSSVariables())
	}
	if _, err := c.renderer.Render(c.chatTemplate, payload, out); err != nil {
		return state, fmt.Errorf("admin: render chat: %w", err)
	}
	return state, nil
}

func (c *Controller) ready() error {
	if c.service == nil {
		return errors.New("admin: service not configured")
	}
	if c.renderer == nil {
		return errors.New("admin: renderer not configured")
	}
	return nil
}

func (c *Controller) basePayload(locale, path string, menuOpen bool) map[string]any {
	payload := map[string]any{"locale": locale}
	if c.service != nil {
		payload["nav"] = c.service.Nav(path, locale, menuOpen)
	}
	return payload
}

func pagePayload(page Page) map[string]any {
	return map[string]any{
		"slug":        page.Slug,
		"icon":        page.Icon,
		"title_key":   page.TitleKey(),
		"loading_key": page.LoadingKey(),
	}
}

func viewPayload(view *PageView) map[string]any {
	return map[string]any{
		"status":  string(view.Status),
		"loading": view.Loading(),
		"ready":   view.Ready(),
		"failed":  view.Failed(),
		"error":   view.Error,
		"rows":    view.RowCount(),
	}
}

func optionsPayload(opts ViewOptions) map[string]any {
	return map[string]any{
		"tab":    NormalizeTab(opts.Tab),
		"status": NormalizeStatusFilter(opts.Status),
	}
}

func pageURL(slug, action string, opts ViewOptions) string {
	query := url.Values{}
	if opts.Tab != "" {
		query.Set("tab", opts.Tab)
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	target := "/" + slug + "/" + action
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

type cssVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sortedVars(vars map[string]string) []cssVar {
	out := make([]cssVar, 0, len(vars))
	for name, value := range vars {
		out = append(out, cssVar{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
