package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-restaurant-admin/components/admin"
	"github.com/goliatone/go-restaurant-admin/pkg/config"
	"github.com/goliatone/go-restaurant-admin/pkg/demo"
	"github.com/goliatone/go-restaurant-admin/pkg/observability"
	"github.com/goliatone/go-restaurant-admin/pkg/pgproc"
	"github.com/goliatone/go-restaurant-admin/pkg/sessionstore/redisstore"
	"github.com/goliatone/go-restaurant-admin/pkg/supabase"
)

// runtime holds the wired components and the resources to release.
type runtime struct {
	cfg        *config.Config
	log        *zap.Logger
	metrics    *observability.Metrics
	client     *admin.Client
	service    *admin.Service
	bridge     *admin.ChatBridge
	relay      *admin.ChatRelay
	controller *admin.Controller
	health     func(ctx context.Context) error
	closers    []func()
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// buildRuntime wires the backend transport, session store, and admin service.
// The template renderer is only built when withRenderer is set.
func buildRuntime(ctx context.Context, cfg *config.Config, log *zap.Logger, withRenderer bool) (*runtime, error) {
	rt := &runtime{cfg: cfg, log: log, metrics: observability.NewMetrics()}
	telemetry := observability.Multi{rt.metrics, observability.NewLogger(log)}

	caller, err := rt.buildCaller(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.client = admin.NewClient(caller, admin.WithClientTelemetry(telemetry))

	var charts *admin.ChartRenderer
	if cfg.Charts.Enabled {
		charts = admin.NewChartRenderer(
			admin.WithChartCache(admin.NewChartCache(cfg.Charts.CacheTTL)),
			admin.WithChartTheme(cfg.Charts.Theme),
			admin.WithChartAssetsHost(cfg.Charts.AssetsHost),
		)
	}
	rt.service = admin.NewService(admin.Options{
		Client:        rt.client,
		Charts:        charts,
		Telemetry:     telemetry,
		DefaultLocale: cfg.App.Locale,
	})

	store, err := rt.buildSessionStore(ctx)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.bridge = admin.NewChatBridge(chatConfig(cfg), store, admin.WithChatTelemetry(telemetry))
	rt.relay = admin.NewChatRelay(rt.bridge, &http.Client{Timeout: cfg.Chat.RelayTimeout})

	if withRenderer {
		renderer, err := admin.NewTemplateRenderer(rt.service.Translator())
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("adminctl: templates: %w", err)
		}
		rt.controller = admin.NewController(admin.ControllerOptions{
			Service:  rt.service,
			Chat:     rt.bridge,
			Renderer: renderer,
		})
	}
	return rt, nil
}

func (r *runtime) buildCaller(ctx context.Context) (admin.ProcedureCaller, error) {
	cfg := r.cfg.Backend
	switch cfg.Transport {
	case config.BackendPostgREST:
		r.log.Info("using PostgREST backend", zap.String("url", cfg.URL))
		return supabase.NewHTTPClient(supabase.HTTPConfig{
			BaseURL:    cfg.URL,
			APIKey:     cfg.AnonKey,
			Schema:     cfg.Schema,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		})
	case config.BackendPostgres:
		pool, err := pgproc.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, pool.Close)
		r.health = pool.Ping
		r.log.Info("using Postgres backend", zap.String("schema", cfg.Schema))
		return pgproc.New(pool, pgproc.WithSchema(cfg.Schema)), nil
	case config.BackendDemo:
		r.log.Warn("using generated demo data", zap.Int64("seed", cfg.DemoSeed))
		return demo.NewCaller(demo.Options{Seed: cfg.DemoSeed})
	default:
		return nil, fmt.Errorf("adminctl: unknown backend transport %q", cfg.Transport)
	}
}

func (r *runtime) buildSessionStore(ctx context.Context) (admin.SessionStore, error) {
	cfg := r.cfg.Session
	if cfg.Store != config.SessionRedis {
		return admin.NewInMemorySessionStore(), nil
	}
	store, err := redisstore.Connect(ctx, cfg.RedisURL,
		redisstore.WithPrefix(cfg.KeyPrefix),
		redisstore.WithTTL(cfg.TTL),
		redisstore.WithLogger(r.log),
	)
	if err != nil {
		return nil, err
	}
	r.closers = append(r.closers, func() {
		if err := store.Close(); err != nil {
			r.log.Warn("close session store", zap.Error(err))
		}
	})
	return store, nil
}

func chatConfig(cfg *config.Config) admin.ChatConfig {
	chat := admin.DefaultChatConfig(cfg.App.Environment)
	if cfg.Chat.WebhookURL != "" {
		chat.WebhookURL = cfg.Chat.WebhookURL
	}
	if cfg.Chat.Mode != "" {
		chat.Mode = admin.ParseChatMode(cfg.Chat.Mode)
	}
	if cfg.Chat.ShowWelcomeScreen != nil {
		chat.ShowWelcomeScreen = *cfg.Chat.ShowWelcomeScreen
	}
	chat.AllowFileUploads = cfg.Chat.AllowFileUploads
	if cfg.Chat.DefaultLanguage != "" {
		chat.DefaultLanguage = cfg.Chat.DefaultLanguage
	}
	return chat
}

var errNoSessionStore = errors.New("adminctl: sessions only persist across runs with session.store=redis")
