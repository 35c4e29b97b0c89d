package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// ResetChatSessionInput identifies the browser client whose conversation ends.
type ResetChatSessionInput struct {
	Scope string
}

type sessionResetter interface {
	ResetSession(ctx context.Context, scope string) error
}

// ResetChatSessionCommand clears the stored chat session id so the next widget
// mount starts a new conversation.
type ResetChatSessionCommand struct {
	bridge    sessionResetter
	telemetry Telemetry
}

// NewResetChatSessionCommand creates the command.
func NewResetChatSessionCommand(bridge sessionResetter, telemetry Telemetry) *ResetChatSessionCommand {
	return &ResetChatSessionCommand{bridge: bridge, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetChatSessionInput] = (*ResetChatSessionCommand)(nil)

// Execute clears the session.
func (c *ResetChatSessionCommand) Execute(ctx context.Context, msg ResetChatSessionInput) error {
	if c.bridge == nil {
		return errors.New("reset chat command requires chat bridge")
	}
	if err := c.bridge.ResetSession(ctx, msg.Scope); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "admin.command.chat_reset", map[string]any{
		"scope": msg.Scope,
	})
	return nil
}
