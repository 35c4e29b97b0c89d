package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-restaurant-admin/components/admin"
)

// RefreshPageInput re-enters loading on View and loads it again.
type RefreshPageInput struct {
	View    *admin.PageView
	Request admin.PageRequest
}

type pageRefresher interface {
	Refresh(ctx context.Context, view *admin.PageView, req admin.PageRequest) error
}

// RefreshPageCommand reloads a page view in place. Load failures end up in the
// view's error state, not in the returned error.
type RefreshPageCommand struct {
	service   pageRefresher
	telemetry Telemetry
}

// NewRefreshPageCommand creates the command.
func NewRefreshPageCommand(service pageRefresher, telemetry Telemetry) *RefreshPageCommand {
	return &RefreshPageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshPageInput] = (*RefreshPageCommand)(nil)

// Execute refreshes the view.
func (c *RefreshPageCommand) Execute(ctx context.Context, msg RefreshPageInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	if msg.View == nil {
		return errors.New("refresh command requires a page view")
	}
	if err := c.service.Refresh(ctx, msg.View, msg.Request); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.command.page_refresh", map[string]any{
		"page":   msg.View.Page,
		"status": string(msg.View.Status),
	})
	return nil
}
