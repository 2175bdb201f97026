package templates

import (
	"context"

	"farecast-service/internal/domain/entity"
)

// PongContent is the reply to the ping command
const PongContent = "🏓 pong!"

// PingCommand answers /ping with a visible pong message
type PingCommand struct{}

// NewPingCommand creates the ping command handler
func NewPingCommand() *PingCommand {
	return &PingCommand{}
}

// Command returns the slash command definition
func (PingCommand) Command() entity.ApplicationCommand {
	return entity.ApplicationCommand{Name: "ping", Description: "Responde pong!"}
}

// Handle replies with a channel message
func (PingCommand) Handle(ctx context.Context, in *entity.Interaction) *entity.InteractionResponse {
	return &entity.InteractionResponse{
		Type: entity.ResponseChannelMessageWithSource,
		Data: &entity.InteractionResponseData{Content: PongContent},
	}
}
