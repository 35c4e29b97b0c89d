package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-restaurant-admin/components/admin"
	"github.com/goliatone/go-restaurant-admin/components/admin/commands"
	"github.com/goliatone/go-restaurant-admin/components/admin/fiberhttp"
	"github.com/goliatone/go-restaurant-admin/components/admin/queries"
	"github.com/goliatone/go-restaurant-admin/pkg/config"
	"github.com/goliatone/go-restaurant-admin/pkg/logging"
)

type globals struct {
	Config  string   `type:"path" help:"Path to a config.yaml file."`
	EnvFile []string `name:"env-file" help:"Dotenv files to load (default .env)."`
	Demo    bool     `help:"Serve generated demo data instead of the backend."`
}

type cli struct {
	globals

	Serve      serveCmd      `cmd:"" default:"1" help:"Run the admin HTTP server."`
	Procedures proceduresCmd `cmd:"" help:"List the backend procedure catalogue."`
	Call       callCmd       `cmd:"" help:"Call one procedure and print its rows."`
	Session    sessionCmd    `cmd:"" help:"Inspect or reset a stored chat session."`
	Chat       chatCmd       `cmd:"" help:"Talk to the reservation assistant."`
}

type serveCmd struct {
	Addr string `help:"Listen address (overrides http.addr)."`
}

type proceduresCmd struct{}

type callCmd struct {
	Procedure string `arg:"" help:"Procedure name or alias (e.g. reservas-hoy)."`
	Output    string `short:"o" enum:"yaml,json" default:"yaml" help:"Output format (yaml|json)."`
}

type sessionCmd struct {
	Show  sessionShowCmd  `cmd:"" help:"Print the session id for a client."`
	Reset sessionResetCmd `cmd:"" help:"Clear the session id so the next visit starts a new conversation."`
}

type sessionShowCmd struct {
	Client string `required:"" help:"Browser client id (admin_client cookie)."`
}

type sessionResetCmd struct {
	Client string `required:"" help:"Browser client id (admin_client cookie)."`
}

type chatCmd struct {
	Send chatSendCmd `cmd:"" help:"Send one message through the webhook."`
}

type chatSendCmd struct {
	Client  string `default:"adminctl" help:"Client id scoping the session."`
	Message string `arg:"" help:"Message text."`
}

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var app cli
	ctx := kong.Parse(&app,
		kong.Name("adminctl"),
		kong.Description("Restaurant admin dashboard server and backend tools."),
		kong.UsageOnError(),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)
	err := ctx.Run(&app.globals)
	ctx.FatalIfErrorf(err)
}

func (g *globals) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(config.Options{ConfigFile: g.Config, EnvFiles: g.EnvFile, Demo: g.Demo})
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Development(),
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func (cmd *serveCmd) Run(ctx context.Context, g *globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	rt, err := buildRuntime(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	app := fiberhttp.NewApp(cfg.App.Name, log)
	if err := fiberhttp.Register(fiberhttp.Config{
		Router:     app,
		Controller: rt.controller,
		Relay:      rt.relay,
		Pages:      queries.NewPageViewQuery(rt.service),
		Procedures: queries.NewProcedureQuery(rt.client),
		ResetChat:  commands.NewResetChatSessionCommand(rt.bridge, rt.metrics),
		Refresh:    commands.NewRefreshPageCommand(rt.service, rt.metrics),
		Gatherer:   rt.metrics.Registry(),
		Health:     rt.health,
		Logger:     log,
		Cookie:     fiberhttp.CookieConfig{Secure: !cfg.Development()},
	}); err != nil {
		return err
	}
	if !rt.bridge.Configured() {
		log.Warn("chat webhook not configured", zap.String("env", admin.WebhookEnvVar))
	}

	addr := cfg.HTTP.Addr
	if cmd.Addr != "" {
		addr = cmd.Addr
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("admin server listening", zap.String("addr", addr), zap.String("backend", cfg.Backend.Transport))
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func (cmd *proceduresCmd) Run(_ context.Context, _ *globals) error {
	return printCatalogue(os.Stdout)
}

func printCatalogue(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROCEDURE\tALIAS\tDESCRIPTION")
	for _, proc := range admin.Procedures() {
		alias := strcase.ToKebab(strings.TrimPrefix(proc.Name, "admin_"))
		fmt.Fprintf(w, "%s\t%s\t%s\n", proc.Name, alias, proc.Description)
	}
	return w.Flush()
}

func (cmd *callCmd) Run(ctx context.Context, g *globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	rt, err := buildRuntime(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	rows, err := queries.NewProcedureQuery(rt.client).Query(ctx, queries.ProcedureInput{Name: cmd.Procedure})
	if err != nil {
		return err
	}
	return writeRows(os.Stdout, cmd.Output, rows)
}

func writeRows(out io.Writer, format string, rows []map[string]any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(rows)
	}
}

func (cmd *sessionShowCmd) Run(ctx context.Context, g *globals) error {
	rt, err := sessionRuntime(ctx, g)
	if err != nil {
		return err
	}
	defer rt.Close()

	id, err := rt.bridge.Session(ctx, cmd.Client)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, id)
	return nil
}

func (cmd *sessionResetCmd) Run(ctx context.Context, g *globals) error {
	rt, err := sessionRuntime(ctx, g)
	if err != nil {
		return err
	}
	defer rt.Close()

	reset := commands.NewResetChatSessionCommand(rt.bridge, rt.metrics)
	if err := reset.Execute(ctx, commands.ResetChatSessionInput{Scope: cmd.Client}); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Cleared chat session for %s\n", cmd.Client)
	return nil
}

func sessionRuntime(ctx context.Context, g *globals) (*runtime, error) {
	cfg, log, err := g.load()
	if err != nil {
		return nil, err
	}
	if cfg.Session.Store != config.SessionRedis {
		return nil, errNoSessionStore
	}
	return buildRuntime(ctx, cfg, log, false)
}

func (cmd *chatSendCmd) Run(ctx context.Context, g *globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	rt, err := buildRuntime(ctx, cfg, log, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	reply, err := rt.relay.Send(ctx, cmd.Client, cmd.Message)
	if errors.Is(err, admin.ErrChatNotConfigured) {
		return fmt.Errorf("%w (set %s)", err, admin.WebhookEnvVar)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, reply.Output)
	return nil
}
