// Package dashboard is the public entry point for embedding the restaurant admin
// in another fiber application.
package dashboard

import (
	"github.com/gofiber/fiber/v2"

	core "github.com/goliatone/go-restaurant-admin/components/admin"
	"github.com/goliatone/go-restaurant-admin/components/admin/fiberhttp"
)

// Service exposes the underlying components/admin.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ProcedureCaller re-export for custom backends.
type ProcedureCaller = core.ProcedureCaller

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// Mount registers the admin pages on router using the embedded templates and
// an in-memory chat session store.
func Mount(router fiber.Router, caller ProcedureCaller, chat core.ChatConfig) error {
	service := NewService(Options{Client: core.NewClient(caller)})
	renderer, err := core.NewTemplateRenderer(service.Translator())
	if err != nil {
		return err
	}
	bridge := core.NewChatBridge(chat, core.NewInMemorySessionStore())
	return fiberhttp.Register(fiberhttp.Config{
		Router: router,
		Controller: core.NewController(core.ControllerOptions{
			Service:  service,
			Chat:     bridge,
			Renderer: renderer,
		}),
		Relay: core.NewChatRelay(bridge, nil),
	})
}
