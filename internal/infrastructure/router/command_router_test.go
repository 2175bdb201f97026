package router

import (
	"context"
	"testing"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"
)

type namedHandler struct {
	name, reply string
}

func (h namedHandler) Command() entity.ApplicationCommand {
	return entity.ApplicationCommand{Name: h.name, Description: h.reply}
}

func (h namedHandler) Handle(ctx context.Context, in *entity.Interaction) *entity.InteractionResponse {
	return &entity.InteractionResponse{
		Type: entity.ResponseChannelMessageWithSource,
		Data: &entity.InteractionResponseData{Content: h.reply},
	}
}

func TestCommandRouter(t *testing.T) {
	r := NewCommandRouter(logger.NewNopLogger())
	r.Register(namedHandler{"ping", "pong"})
	r.Register(namedHandler{"fares", "list"})
	r.Register(namedHandler{"ping", "pong v2"})

	if r.GetHandler("missing") != nil {
		t.Fatalf("expected nil for unknown command")
	}
	resp := r.GetHandler("ping").Handle(context.Background(), &entity.Interaction{})
	if resp.Data.Content != "pong v2" {
		t.Fatalf("re-registering should replace the handler, got %q", resp.Data.Content)
	}

	cmds := r.Commands()
	if len(cmds) != 2 || cmds[0].Name != "ping" || cmds[1].Name != "fares" {
		t.Fatalf("unexpected commands %+v", cmds)
	}
}
