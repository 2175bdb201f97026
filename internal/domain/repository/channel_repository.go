package repository

import (
	"context"

	"farecast-service/internal/domain/entity"
)

// ChannelRepository posts rendered messages to the configured chat channel
type ChannelRepository interface {
	PostMessage(ctx context.Context, content string) error
}

// CommandRepository manages slash command registration
type CommandRepository interface {
	RegisterGuildCommands(ctx context.Context, applicationID, guildID string, commands []entity.ApplicationCommand) error
}
