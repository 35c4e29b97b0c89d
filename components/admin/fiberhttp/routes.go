// Package fiberhttp mounts the admin pages, JSON API and chat endpoints on a
// fiber app.
package fiberhttp

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	gocommand "github.com/goliatone/go-command"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goliatone/go-restaurant-admin/components/admin"
	"github.com/goliatone/go-restaurant-admin/components/admin/commands"
	"github.com/goliatone/go-restaurant-admin/components/admin/queries"
)

// HealthCheck reports whether the backend is reachable.
type HealthCheck func(ctx context.Context) error

// Config wires fiber with the admin controller, queries, and commands.
type Config struct {
	Router     fiber.Router
	Controller *admin.Controller
	Relay      *admin.ChatRelay
	Pages      gocommand.Querier[admin.PageRequest, *admin.PageView]
	Procedures gocommand.Querier[queries.ProcedureInput, []map[string]any]
	ResetChat  gocommand.Commander[commands.ResetChatSessionInput]
	Refresh    gocommand.Commander[commands.RefreshPageInput]
	Gatherer   prometheus.Gatherer
	Health     HealthCheck
	Logger     *zap.Logger
	Cookie     CookieConfig
}

// Register mounts every route. Fixed paths are registered before the page
// wildcard so "/chat" and "/healthz" never resolve as page slugs.
func Register(cfg Config) error {
	if cfg.Router == nil {
		return errors.New("fiberhttp: router is required")
	}
	if cfg.Controller == nil || cfg.Controller.Service() == nil {
		return errors.New("fiberhttp: controller with service is required")
	}
	service := cfg.Controller.Service()
	if cfg.Pages == nil {
		cfg.Pages = queries.NewPageViewQuery(service)
	}
	if cfg.Procedures == nil && service.Client() != nil {
		cfg.Procedures = queries.NewProcedureQuery(service.Client())
	}
	if cfg.ResetChat == nil && cfg.Controller.Chat() != nil {
		cfg.ResetChat = commands.NewResetChatSessionCommand(cfg.Controller.Chat(), nil)
	}
	if cfg.Refresh == nil {
		cfg.Refresh = commands.NewRefreshPageCommand(service, nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	r := cfg.Router
	r.Use(ClientScope(cfg.Cookie))
	r.Use(Locale(service.Translator()))

	r.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/"+admin.PageDashboard, fiber.StatusFound)
	})
	r.Get("/healthz", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	r.Get("/api/pages/:page", func(c *fiber.Ctx) error {
		view, err := cfg.Pages.Query(c.UserContext(), pageRequest(c))
		if err != nil {
			return mapError(err)
		}
		status := fiber.StatusOK
		if view.Failed() {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(view)
	})

	r.Get("/api/procedures/:name", func(c *fiber.Ctx) error {
		if cfg.Procedures == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "procedure client not configured")
		}
		name := c.Params("name")
		rows, err := cfg.Procedures.Query(c.UserContext(), queries.ProcedureInput{Name: name})
		if err != nil {
			if errors.Is(err, admin.ErrUnknownProcedure) {
				return mapError(err)
			}
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		return c.JSON(fiber.Map{"procedure": name, "rows": rows})
	})

	r.Get("/"+admin.PageChat, func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		_, err := cfg.Controller.RenderChat(c.UserContext(), admin.ChatPageRequest{
			Scope:    scopeOf(c),
			Locale:   localeOf(c),
			Mode:     admin.ParseChatMode(c.Query("mode")),
			MenuOpen: admin.MenuOpen(c.Query(admin.MenuParam)),
		}, &buf)
		if err != nil {
			return mapError(err)
		}
		return sendHTML(c, buf.Bytes())
	})

	r.Post("/"+admin.PageChat+"/messages", func(c *fiber.Ctx) error {
		if cfg.Relay == nil {
			return mapError(admin.ErrChatNotConfigured)
		}
		var body struct {
			Message string `json:"message" form:"message"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		reply, err := cfg.Relay.Send(c.UserContext(), scopeOf(c), body.Message)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(reply)
	})

	r.Post("/"+admin.PageChat+"/reset", func(c *fiber.Ctx) error {
		if cfg.ResetChat == nil {
			return mapError(admin.ErrChatNotConfigured)
		}
		if err := cfg.ResetChat.Execute(c.UserContext(), commands.ResetChatSessionInput{Scope: scopeOf(c)}); err != nil {
			return mapError(err)
		}
		if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
			return c.JSON(fiber.Map{"status": "reset"})
		}
		mode := admin.ParseChatMode(c.FormValue("mode", c.Query("mode")))
		return c.Redirect("/"+admin.PageChat+"?mode="+string(mode), fiber.StatusSeeOther)
	})

	r.Get("/:page/_content", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		view, err := cfg.Controller.RenderContent(c.UserContext(), pageRequest(c), &buf)
		if err != nil {
			return mapError(err)
		}
		logFailedView(cfg.Logger, view)
		return sendHTML(c, buf.Bytes())
	})

	r.Post("/:page/_refresh", func(c *fiber.Ctx) error {
		req := pageRequest(c)
		view, err := service.Shell(req)
		if err != nil {
			return mapError(err)
		}
		if err := cfg.Refresh.Execute(c.UserContext(), commands.RefreshPageInput{View: view, Request: req}); err != nil {
			return mapError(err)
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderView(view, req, &buf); err != nil {
			return mapError(err)
		}
		logFailedView(cfg.Logger, view)
		return sendHTML(c, buf.Bytes())
	})

	r.Get("/:page", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		req := pageRequest(c)
		_, err := cfg.Controller.RenderShell(c.UserContext(), admin.ShellRequest{
			Page:     req.Page,
			Locale:   req.Locale,
			Options:  req.Options,
			MenuOpen: admin.MenuOpen(c.Query(admin.MenuParam)),
		}, &buf)
		if err != nil {
			return mapError(err)
		}
		return sendHTML(c, buf.Bytes())
	})

	return nil
}

func pageRequest(c *fiber.Ctx) admin.PageRequest {
	return admin.PageRequest{
		Page:   strings.ToLower(c.Params("page")),
		Locale: localeOf(c),
		Options: admin.ViewOptions{
			Tab:    c.Query("tab"),
			Status: c.Query("status"),
		},
	}
}

func logFailedView(log *zap.Logger, view *admin.PageView) {
	if view.Failed() {
		log.Warn("page load failed",
			zap.String("page", view.Page),
			zap.String("error", view.Error),
		)
	}
}

func healthHandler(check HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if check != nil {
			if err := check(c.UserContext()); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "unavailable",
					"error":  err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func sendHTML(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(body)
}

// mapError converts admin errors into fiber errors carrying the right status.
func mapError(err error) error {
	var relayErr *admin.RelayError
	switch {
	case errors.Is(err, admin.ErrUnknownPage), errors.Is(err, admin.ErrUnknownProcedure):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, admin.ErrChatNotConfigured):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, admin.ErrEmptyChatMessage):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, admin.ErrMalformedRows), errors.As(err, &relayErr):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return err
	}
}
