package usecase

import (
	"context"

	"farecast-service/internal/domain/entity"
)

// CommandHandler answers one slash command
type CommandHandler interface {
	// Command is the definition registered with the platform
	Command() entity.ApplicationCommand

	// Handle builds the reply for an invocation of the command
	Handle(ctx context.Context, in *entity.Interaction) *entity.InteractionResponse
}

// CommandRouter routes application commands to their handler by name
type CommandRouter interface {
	// Register adds a handler under its command name
	Register(handler CommandHandler)

	// GetHandler returns the handler for name, or nil
	GetHandler(name string) CommandHandler

	// Commands lists the registered definitions in registration order
	Commands() []entity.ApplicationCommand
}
