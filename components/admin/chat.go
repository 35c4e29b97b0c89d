package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ChatMode is how the widget is mounted.
type ChatMode string

const (
	ChatModeWindow     ChatMode = "window"
	ChatModeFullscreen ChatMode = "fullscreen"
)

// ParseChatMode falls back to fullscreen for unknown values.
func ParseChatMode(value string) ChatMode {
	if ChatMode(strings.ToLower(strings.TrimSpace(value))) == ChatModeWindow {
		return ChatModeWindow
	}
	return ChatModeFullscreen
}

// WebhookEnvVar is the variable operators set to enable the chat.
const WebhookEnvVar = "N8N_WEBHOOK_URL"

// DefaultWidgetScript is the ES module bundle of the chat widget.
const DefaultWidgetScript = "https://cdn.jsdelivr.net/npm/@n8n/chat/dist/chat.bundle.es.js"

// DefaultWidgetStylesheet is the widget stylesheet.
const DefaultWidgetStylesheet = "https://cdn.jsdelivr.net/npm/@n8n/chat/dist/style.css"

// ChatStrings are the widget's localized labels.
type ChatStrings struct {
	Title              string `json:"title" yaml:"title"`
	Subtitle           string `json:"subtitle" yaml:"subtitle"`
	InputPlaceholder   string `json:"inputPlaceholder" yaml:"input_placeholder"`
	GetStarted         string `json:"getStarted" yaml:"get_started"`
	CloseButtonTooltip string `json:"closeButtonTooltip" yaml:"close_button_tooltip"`
	Footer             string `json:"footer" yaml:"footer"`
}

// ChatTheme drives the widget CSS variables.
type ChatTheme struct {
	PrimaryColor     string
	PrimaryShade50   string
	PrimaryShade100  string
	HeaderBackground string
	HeaderColor      string
	BorderRadius     string
	WindowWidth      string
	WindowHeight     string
}

// CSSVariables maps the theme to the widget's custom properties.
func (t ChatTheme) CSSVariables() map[string]string {
	return map[string]string{
		"--chat--color-primary":           t.PrimaryColor,
		"--chat--color-primary-shade-50":  t.PrimaryShade50,
		"--chat--color-primary-shade-100": t.PrimaryShade100,
		"--chat--header--background":      t.HeaderBackground,
		"--chat--header--color":           t.HeaderColor,
		"--chat--border-radius":           t.BorderRadius,
		"--chat--window--width":           t.WindowWidth,
		"--chat--window--height":          t.WindowHeight,
	}
}

// DefaultChatTheme is the restaurant palette.
var DefaultChatTheme = ChatTheme{
	PrimaryColor:     "#2563eb",
	PrimaryShade50:   "#1d4ed8",
	PrimaryShade100:  "#1e40af",
	HeaderBackground: "#2563eb",
	HeaderColor:      "#ffffff",
	BorderRadius:     "0.75rem",
	WindowWidth:      "400px",
	WindowHeight:     "600px",
}

// DefaultInitialMessages greet the user when the widget opens.
var DefaultInitialMessages = []string{
	"¡Hola! 👋 Soy Marina, tu asistente de reservas de La Terraza Mediterránea.",
	"¿En qué puedo ayudarte hoy?\n\n• Hacer una reserva\n• Consultar disponibilidad\n• Cancelar o modificar reserva\n• Información del restaurante",
}

// DefaultChatStrings holds the es/en widget labels.
var DefaultChatStrings = map[string]ChatStrings{
	"es": {
		Title:              "🍽️ La Terraza Mediterránea",
		Subtitle:           "Asistente de reservas 24/7",
		InputPlaceholder:   "Escribe tu mensaje aquí...",
		GetStarted:         "Nueva conversación",
		CloseButtonTooltip: "Cerrar chat",
	},
	"en": {
		Title:              "🍽️ La Terraza Mediterránea",
		Subtitle:           "Reservation assistant 24/7",
		InputPlaceholder:   "Type your message here...",
		GetStarted:         "New conversation",
		CloseButtonTooltip: "Close chat",
	},
}

// ChatConfig is the widget configuration resolved from settings.
type ChatConfig struct {
	WebhookURL            string
	Mode                  ChatMode
	ShowWelcomeScreen     bool
	AllowFileUploads      bool
	AllowedFilesMimeTypes string
	DefaultLanguage       string
	Environment           string
	Source                string
	Version               string
	ChatInputKey          string
	ChatSessionKey        string
	InitialMessages       []string
	I18n                  map[string]ChatStrings
	Theme                 ChatTheme
	ScriptURL             string
	StylesheetURL         string
}

// DefaultChatConfig returns the per-environment defaults. Development falls back
// to a local webhook and shows the welcome screen; every other environment
// requires an explicit webhook.
func DefaultChatConfig(environment string) ChatConfig {
	cfg := ChatConfig{
		Mode:            ChatModeWindow,
		DefaultLanguage: "es",
		Environment:     environment,
		Source:          "admin-panel",
		Version:         "1.0",
		ChatInputKey:    "chatInput",
		ChatSessionKey:  "sessionId",
		InitialMessages: append([]string(nil), DefaultInitialMessages...),
		I18n:            DefaultChatStrings,
		Theme:           DefaultChatTheme,
		ScriptURL:       DefaultWidgetScript,
		StylesheetURL:   DefaultWidgetStylesheet,
	}
	if environment == "development" {
		cfg.WebhookURL = "http://localhost:5678/webhook/test/chat"
		cfg.ShowWelcomeScreen = true
	}
	return cfg
}

// Configured reports whether the webhook URL is present and looks like a webhook.
func (c ChatConfig) Configured() bool {
	url := strings.TrimSpace(c.WebhookURL)
	return url != "" && strings.Contains(url, "webhook")
}

// Validate returns ErrChatNotConfigured when the widget cannot be mounted.
func (c ChatConfig) Validate() error {
	if !c.Configured() {
		return fmt.Errorf("%w: set %s to the chat webhook URL", ErrChatNotConfigured, WebhookEnvVar)
	}
	return nil
}

// ChatMetadata travels with every message.
type ChatMetadata struct {
	Source      string `json:"source"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	Timestamp   string `json:"timestamp"`
	SessionID   string `json:"sessionId"`
}

// WidgetOptions is the object handed to the widget's createChat call.
type WidgetOptions struct {
	WebhookURL            string                 `json:"webhookUrl"`
	Mode                  ChatMode               `json:"mode"`
	Target                string                 `json:"target,omitempty"`
	ShowWelcomeScreen     bool                   `json:"showWelcomeScreen"`
	AllowFileUploads      bool                   `json:"allowFileUploads"`
	AllowedFilesMimeTypes string                 `json:"allowedFilesMimeTypes,omitempty"`
	InitialMessages       []string               `json:"initialMessages"`
	I18n                  map[string]ChatStrings `json:"i18n"`
	DefaultLanguage       string                 `json:"defaultLanguage"`
	Metadata              ChatMetadata           `json:"metadata"`
	ChatInputKey          string                 `json:"chatInputKey"`
	ChatSessionKey        string                 `json:"chatSessionKey"`
	LoadPreviousSession   bool                   `json:"loadPreviousSession"`
}

// ChatBridge connects the widget to configuration and the session store.
type ChatBridge struct {
	cfg       ChatConfig
	store     SessionStore
	now       func() time.Time
	newID     func() string
	telemetry Telemetry
}

// ChatBridgeOption customizes a bridge.
type ChatBridgeOption func(*ChatBridge)

// WithSessionIDGenerator overrides id generation.
func WithSessionIDGenerator(fn func() string) ChatBridgeOption {
	return func(b *ChatBridge) {
		if fn != nil {
			b.newID = fn
		}
	}
}

// WithChatClock overrides the metadata timestamp source.
func WithChatClock(fn func() time.Time) ChatBridgeOption {
	return func(b *ChatBridge) {
		if fn != nil {
			b.now = fn
		}
	}
}

// WithChatTelemetry sets the telemetry sink.
func WithChatTelemetry(t Telemetry) ChatBridgeOption {
	return func(b *ChatBridge) {
		b.telemetry = normalizeTelemetry(t)
	}
}

// NewChatBridge wires config and store. A nil store uses process memory.
func NewChatBridge(cfg ChatConfig, store SessionStore, opts ...ChatBridgeOption) *ChatBridge {
	if store == nil {
		store = NewInMemorySessionStore()
	}
	if cfg.ChatInputKey == "" {
		cfg.ChatInputKey = "chatInput"
	}
	if cfg.ChatSessionKey == "" {
		cfg.ChatSessionKey = "sessionId"
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "es"
	}
	b := &ChatBridge{
		cfg:       cfg,
		store:     store,
		now:       time.Now,
		newID:     NewSessionID,
		telemetry: noopTelemetry{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Config returns the resolved configuration.
func (b *ChatBridge) Config() ChatConfig { return b.cfg }

// Configured reports whether the webhook is usable.
func (b *ChatBridge) Configured() bool { return b.cfg.Configured() }

// Session returns the client's id, generating it on first use.
func (b *ChatBridge) Session(ctx context.Context, scope string) (string, error) {
	id, err := EnsureSession(ctx, b.store, scope, b.newID)
	if err != nil {
		return "", fmt.Errorf("admin: chat session: %w", err)
	}
	return id, nil
}

// ResetSession clears the stored id; the next Session call generates a new one.
func (b *ChatBridge) ResetSession(ctx context.Context, scope string) error {
	if err := b.store.Clear(ctx, scope); err != nil {
		return fmt.Errorf("admin: clear chat session: %w", err)
	}
	b.telemetry.Record(ctx, EventChatSession, map[string]any{"action": "reset"})
	return nil
}

// Metadata builds the per-message metadata envelope.
func (b *ChatBridge) Metadata(ctx context.Context, scope string) (ChatMetadata, error) {
	id, err := b.Session(ctx, scope)
	if err != nil {
		return ChatMetadata{}, err
	}
	return ChatMetadata{
		Source:      b.cfg.Source,
		Version:     b.cfg.Version,
		Environment: b.cfg.Environment,
		Timestamp:   b.now().UTC().Format(time.RFC3339Nano),
		SessionID:   id,
	}, nil
}

// WidgetOptions assembles the createChat options for one mount.
func (b *ChatBridge) WidgetOptions(ctx context.Context, scope string, mode ChatMode, target string) (WidgetOptions, error) {
	if err := b.cfg.Validate(); err != nil {
		return WidgetOptions{}, err
	}
	meta, err := b.Metadata(ctx, scope)
	if err != nil {
		return WidgetOptions{}, err
	}
	if mode == "" {
		mode = b.cfg.Mode
	}
	if mode != ChatModeFullscreen {
		target = ""
	}
	return WidgetOptions{
		WebhookURL:            b.cfg.WebhookURL,
		Mode:                  mode,
		Target:                target,
		ShowWelcomeScreen:     b.cfg.ShowWelcomeScreen,
		AllowFileUploads:      b.cfg.AllowFileUploads,
		AllowedFilesMimeTypes: b.cfg.AllowedFilesMimeTypes,
		InitialMessages:       b.cfg.InitialMessages,
		I18n:                  b.cfg.I18n,
		DefaultLanguage:       b.cfg.DefaultLanguage,
		Metadata:              meta,
		ChatInputKey:          b.cfg.ChatInputKey,
		ChatSessionKey:        b.cfg.ChatSessionKey,
		LoadPreviousSession:   true,
	}, nil
}

// WidgetInitializer performs the one-time widget setup for a mount.
type WidgetInitializer interface {
	Initialize(ctx context.Context, opts WidgetOptions) error
}

// ChatMount guards a single widget mount: Initialize runs the initializer once,
// later calls return the first result.
type ChatMount struct {
	initializer WidgetInitializer
	once        sync.Once
	err         error
	done        bool
	mu          sync.Mutex
}

// NewChatMount wraps an initializer.
func NewChatMount(initializer WidgetInitializer) *ChatMount {
	return &ChatMount{initializer: initializer}
}

// Initialize runs the initializer at most once.
func (m *ChatMount) Initialize(ctx context.Context, opts WidgetOptions) error {
	m.once.Do(func() {
		var err error
		if m.initializer == nil {
			err = fmt.Errorf("admin: widget initializer not configured")
		} else {
			err = m.initializer.Initialize(ctx, opts)
		}
		m.mu.Lock()
		m.err = err
		m.done = true
		m.mu.Unlock()
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Initialized reports whether Initialize has completed.
func (m *ChatMount) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// ScriptInitializer renders the widget bootstrap as an inline ES module script.
type ScriptInitializer struct {
	ScriptURL string
	Theme     ChatTheme

	mu     sync.Mutex
	script string
	calls  int
}

// Initialize renders the bootstrap for opts.
func (s *ScriptInitializer) Initialize(_ context.Context, opts WidgetOptions) error {
	payload, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("admin: encode widget options: %w", err)
	}
	src := s.ScriptURL
	if src == "" {
		src = DefaultWidgetScript
	}
	srcJSON, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("admin: encode widget script url: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(`<script type="module">`)
	buf.WriteString(`import { createChat } from `)
	buf.Write(srcJSON)
	buf.WriteString(`;`)
	buf.WriteString(`createChat(`)
	buf.Write(payload)
	buf.WriteString(`);</script>`)

	s.mu.Lock()
	s.script = buf.String()
	s.calls++
	s.mu.Unlock()
	return nil
}

// Script returns the rendered bootstrap, empty before Initialize.
func (s *ScriptInitializer) Script() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.script
}

// Calls reports how many times Initialize ran.
func (s *ScriptInitializer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
