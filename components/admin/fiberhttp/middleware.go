package fiberhttp

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

const (
	localsScope  = "admin.client_scope"
	localsLocale = "admin.locale"
)

// CookieConfig names the cookie identifying a browser client.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

func (c CookieConfig) normalized() CookieConfig {
	if c.Name == "" {
		c.Name = "admin_client"
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 365 * 24 * time.Hour
	}
	return c
}

// ClientScope reads or assigns the browser client id that scopes the chat
// session.
func ClientScope(cfg CookieConfig) fiber.Handler {
	cfg = cfg.normalized()
	return func(c *fiber.Ctx) error {
		id := c.Cookies(cfg.Name)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cfg.Name,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HTTPOnly: true,
				Secure:   cfg.Secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localsScope, id)
		return c.Next()
	}
}

// Locale resolves the request locale from ?lang, then Accept-Language.
func Locale(catalog *admin.Catalog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := c.Query("lang")
		if locale == "" && catalog != nil {
			if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
				locale = catalog.ResolveLocale(header)
			}
		}
		c.Locals(localsLocale, locale)
		return c.Next()
	}
}

func scopeOf(c *fiber.Ctx) string {
	if v, ok := c.Locals(localsScope).(string); ok {
		return v
	}
	return ""
}

func localeOf(c *fiber.Ctx) string {
	if v, ok := c.Locals(localsLocale).(string); ok {
		return v
	}
	return ""
}

// RequestLogger writes one line per request.
func RequestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		log.Info("http request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(started)),
		)
		return err
	}
}

// ErrorHandler renders {"error": ...} and logs server errors.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}

// NewApp builds a fiber app with the admin error handler, panic recovery and
// request logging.
func NewApp(name string, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}
