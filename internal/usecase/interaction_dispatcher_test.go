package usecase

import (
	"context"
	"testing"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"
)

type pingHandler struct{}

func (pingHandler) Command() entity.ApplicationCommand {
	return entity.ApplicationCommand{Name: "ping"}
}

func (pingHandler) Handle(ctx context.Context, in *entity.Interaction) *entity.InteractionResponse {
	return &entity.InteractionResponse{
		Type: entity.ResponseChannelMessageWithSource,
		Data: &entity.InteractionResponseData{Content: "🏓 pong!"},
	}
}

type mapRouter map[string]CommandHandler

func (m mapRouter) Register(h CommandHandler) { m[h.Command().Name] = h }
func (m mapRouter) GetHandler(name string) CommandHandler { return m[name] }
func (m mapRouter) Commands() []entity.ApplicationCommand { return nil }

func TestDispatch(t *testing.T) {
	router := mapRouter{}
	router.Register(pingHandler{})
	d := NewInteractionDispatcher(router, logger.NewNopLogger())
	tests := []struct {
		name string
		in   entity.Interaction
		want *entity.InteractionResponse
	}{
		{
			name: "ping",
			in:   entity.Interaction{Type: entity.InteractionPing},
			want: &entity.InteractionResponse{Type: entity.ResponsePong},
		},
		{
			name: "ping command",
			in:   entity.Interaction{Type: entity.InteractionApplicationCommand, Data: &entity.InteractionData{Name: "ping"}},
			want: &entity.InteractionResponse{
				Type: entity.ResponseChannelMessageWithSource,
				Data: &entity.InteractionResponseData{Content: "🏓 pong!"},
			},
		},
		{
			name: "other command",
			in:   entity.Interaction{Type: entity.InteractionApplicationCommand, Data: &entity.InteractionData{Name: "fares"}},
		},
		{
			name: "command without data",
			in:   entity.Interaction{Type: entity.InteractionApplicationCommand},
		},
		{
			name: "component",
			in:   entity.Interaction{Type: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Dispatch(context.Background(), &tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected no reply, got %+v", got)
				}
				return
			}
			if got == nil || got.Type != tt.want.Type {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if (tt.want.Data == nil) != (got.Data == nil) {
				t.Fatalf("data mismatch: %+v vs %+v", tt.want.Data, got.Data)
			}
			if tt.want.Data != nil && got.Data.Content != tt.want.Data.Content {
				t.Fatalf("content %q, want %q", got.Data.Content, tt.want.Data.Content)
			}
		})
	}
}
