package usecase

import (
	"context"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"
)

// InteractionDispatcher maps authenticated interactions to replies
type InteractionDispatcher struct {
	router CommandRouter
	logger logger.Logger
}

// NewInteractionDispatcher creates a new interaction dispatcher
func NewInteractionDispatcher(router CommandRouter, logger logger.Logger) *InteractionDispatcher {
	return &InteractionDispatcher{
		router: router,
		logger: logger,
	}
}

// Dispatch returns the reply for in, or nil when the interaction is
// acknowledged without a body.
func (d *InteractionDispatcher) Dispatch(ctx context.Context, in *entity.Interaction) *entity.InteractionResponse {
	switch in.Type {
	case entity.InteractionPing:
		return &entity.InteractionResponse{Type: entity.ResponsePong}

	case entity.InteractionApplicationCommand:
		if in.Data == nil {
			d.logger.Debug("Command without data", "interactionID", in.ID)
			return nil
		}
		handler := d.router.GetHandler(in.Data.Name)
		if handler == nil {
			d.logger.Debug("No handler found for command", "name", in.Data.Name, "interactionID", in.ID)
			return nil
		}
		return handler.Handle(ctx, in)

	default:
		d.logger.Debug("Unhandled interaction type", "type", in.Type, "interactionID", in.ID)
		return nil
	}
}
