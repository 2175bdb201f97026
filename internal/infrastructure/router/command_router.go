package router

import (
	"farecast-service/internal/domain/entity"
	"farecast-service/internal/usecase"
	"farecast-service/pkg/logger"
)

// CommandRouter routes interactions to handlers based on command name
type CommandRouter struct {
	handlers []usecase.CommandHandler
	logger   logger.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(logger logger.Logger) *CommandRouter {
	return &CommandRouter{
		handlers: make([]usecase.CommandHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler. A later handler with the same name replaces the earlier one.
func (r *CommandRouter) Register(handler usecase.CommandHandler) {
	name := handler.Command().Name
	for i, h := range r.handlers {
		if h.Command().Name == name {
			r.handlers[i] = handler
			r.logger.Info("Replaced command handler", "command", name)
			return
		}
	}
	r.handlers = append(r.handlers, handler)
	r.logger.Debug("Registered command handler", "command", name)
}

// GetHandler returns the handler for a given command name
func (r *CommandRouter) GetHandler(name string) usecase.CommandHandler {
	for _, handler := range r.handlers {
		if handler.Command().Name == name {
			return handler
		}
	}
	return nil
}

// Commands returns the definitions of every registered handler
func (r *CommandRouter) Commands() []entity.ApplicationCommand {
	commands := make([]entity.ApplicationCommand, 0, len(r.handlers))
	for _, handler := range r.handlers {
		commands = append(commands, handler.Command())
	}
	return commands
}
