package admin

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChatConfig() ChatConfig {
	cfg := DefaultChatConfig("production")
	cfg.WebhookURL = "https://n8n.example.com/webhook/abc/chat"
	return cfg
}

func TestChatConfigConfigured(t *testing.T) {
	cases := map[string]bool{
		"":                                   false,
		"   ":                                false,
		"https://example.com/api/chat":       false,
		"https://n8n.example.com/webhook/x/": true,
	}
	for url, want := range cases {
		cfg := ChatConfig{WebhookURL: url}
		assert.Equal(t, want, cfg.Configured(), url)
		if !want {
			err := cfg.Validate()
			assert.True(t, errors.Is(err, ErrChatNotConfigured))
			assert.Contains(t, err.Error(), WebhookEnvVar)
		}
	}
}

func TestDefaultChatConfigDevelopment(t *testing.T) {
	dev := DefaultChatConfig("development")
	assert.True(t, dev.Configured())
	assert.True(t, dev.ShowWelcomeScreen)

	prod := DefaultChatConfig("production")
	assert.False(t, prod.Configured())
	assert.False(t, prod.ShowWelcomeScreen)
}

func TestParseChatMode(t *testing.T) {
	assert.Equal(t, ChatModeWindow, ParseChatMode(" Window "))
	assert.Equal(t, ChatModeFullscreen, ParseChatMode("fullscreen"))
	assert.Equal(t, ChatModeFullscreen, ParseChatMode("other"))
}

func TestChatBridgeSessionLifecycle(t *testing.T) {
	ids := []string{"session-1", "session-2"}
	var next int
	bridge := NewChatBridge(testChatConfig(), nil, WithSessionIDGenerator(func() string {
		id := ids[next]
		next++
		return id
	}))
	ctx := context.Background()

	first, err := bridge.Session(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, "session-1", first)
	again, err := bridge.Session(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, first, again)

	require.NoError(t, bridge.ResetSession(ctx, "client"))
	second, err := bridge.Session(ctx, "client")
	require.NoError(t, err)
	assert.Equal(t, "session-2", second)
}

func TestChatBridgeMetadata(t *testing.T) {
	now := time.Date(2025, 1, 10, 9, 30, 0, 0, time.UTC)
	bridge := NewChatBridge(testChatConfig(), nil,
		WithSessionIDGenerator(func() string { return "session-fixed" }),
		WithChatClock(func() time.Time { return now }),
	)

	meta, err := bridge.Metadata(context.Background(), "client")
	require.NoError(t, err)
	assert.Equal(t, "admin-panel", meta.Source)
	assert.Equal(t, "1.0", meta.Version)
	assert.Equal(t, "production", meta.Environment)
	assert.Equal(t, "session-fixed", meta.SessionID)
	assert.Equal(t, "2025-01-10T09:30:00Z", meta.Timestamp)
}

func TestChatBridgeWidgetOptionsRequiresWebhook(t *testing.T) {
	bridge := NewChatBridge(DefaultChatConfig("production"), nil)

	_, err := bridge.WidgetOptions(context.Background(), "client", ChatModeFullscreen, "#chat")
	assert.True(t, errors.Is(err, ErrChatNotConfigured))
}

func TestChatBridgeWidgetOptions(t *testing.T) {
	bridge := NewChatBridge(testChatConfig(), nil, WithSessionIDGenerator(func() string { return "session-x" }))

	opts, err := bridge.WidgetOptions(context.Background(), "client", ChatModeFullscreen, "#chat")
	require.NoError(t, err)
	assert.Equal(t, "#chat", opts.Target)
	assert.Equal(t, ChatModeFullscreen, opts.Mode)
	assert.Equal(t, "session-x", opts.Metadata.SessionID)
	assert.Equal(t, DefaultInitialMessages, opts.InitialMessages)
	assert.Contains(t, opts.I18n, "es")
	assert.True(t, opts.LoadPreviousSession)

	window, err := bridge.WidgetOptions(context.Background(), "client", ChatModeWindow, "#chat")
	require.NoError(t, err)
	assert.Empty(t, window.Target)
}

type countingInitializer struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInitializer) Initialize(context.Context, WidgetOptions) error {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return nil
}

func TestChatMountInitializesOnce(t *testing.T) {
	initializer := &countingInitializer{}
	mount := NewChatMount(initializer)
	assert.False(t, mount.Initialized())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mount.Initialize(context.Background(), WidgetOptions{})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, initializer.calls)
	assert.True(t, mount.Initialized())
}

func TestChatMountWithoutInitializer(t *testing.T) {
	mount := NewChatMount(nil)
	require.Error(t, mount.Initialize(context.Background(), WidgetOptions{}))
	require.Error(t, mount.Initialize(context.Background(), WidgetOptions{}))
}

func TestScriptInitializerRendersModule(t *testing.T) {
	initializer := &ScriptInitializer{}
	opts := WidgetOptions{
		WebhookURL: "https://n8n.example.com/webhook/abc/chat",
		Mode:       ChatModeWindow,
		Metadata:   ChatMetadata{SessionID: "session-1"},
	}
	require.NoError(t, initializer.Initialize(context.Background(), opts))

	script := initializer.Script()
	assert.True(t, strings.HasPrefix(script, `<script type="module">import { createChat } from "`+DefaultWidgetScript+`";`))
	assert.True(t, strings.HasSuffix(script, `);</script>`))
	assert.Equal(t, 1, initializer.Calls())

	start := strings.Index(script, "createChat(") + len("createChat(")
	end := strings.LastIndex(script, ");</script>")
	var decoded WidgetOptions
	require.NoError(t, json.Unmarshal([]byte(script[start:end]), &decoded))
	assert.Equal(t, opts.WebhookURL, decoded.WebhookURL)
	assert.Equal(t, "session-1", decoded.Metadata.SessionID)
}

func TestChatThemeVariables(t *testing.T) {
	vars := DefaultChatTheme.CSSVariables()
	assert.Equal(t, "#2563eb", vars["--chat--color-primary"])
	assert.Len(t, vars, 8)
}
