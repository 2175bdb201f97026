package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"farecast-service/internal/domain/entity"
	"farecast-service/pkg/logger"

	"golang.org/x/time/rate"
)

const (
	maxErrorBody = 2048

	// The platform allows 5 messages per 5 seconds on a channel. Only a
	// sixth post inside that window waits.
	postBurst    = 5
	postInterval = time.Second
)

// DiscordRepository talks to the chat platform REST API with a bot token
type DiscordRepository struct {
	logger     logger.Logger
	baseURL    string
	botToken   string
	channelID  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewDiscordRepository creates a new Discord repository bound to one channel.
// A nil httpClient gets a client with a 30s timeout.
func NewDiscordRepository(baseURL, botToken, channelID string, httpClient *http.Client, logger logger.Logger) *DiscordRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &DiscordRepository{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		botToken:   botToken,
		channelID:  channelID,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Every(postInterval), postBurst),
	}
}

type createMessageRequest struct {
	Content string `json:"content"`
}

// PostMessage sends content as a new message in the configured channel
func (r *DiscordRepository) PostMessage(ctx context.Context, content string) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("discord post: %w", err)
	}

	url := fmt.Sprintf("%s/channels/%s/messages", r.baseURL, r.channelID)
	if err := r.send(ctx, http.MethodPost, url, createMessageRequest{Content: content}, "discord post"); err != nil {
		return err
	}

	r.logger.Info("Message posted", "channelID", r.channelID, "length", len(content))
	return nil
}

// RegisterGuildCommands overwrites the guild's slash commands with commands
func (r *DiscordRepository) RegisterGuildCommands(ctx context.Context, applicationID, guildID string, commands []entity.ApplicationCommand) error {
	url := fmt.Sprintf("%s/applications/%s/guilds/%s/commands", r.baseURL, applicationID, guildID)
	if err := r.send(ctx, http.MethodPut, url, commands, "discord register commands"); err != nil {
		return err
	}

	r.logger.Info("Commands registered", "applicationID", applicationID, "guildID", guildID, "count", len(commands))
	return nil
}

func (r *DiscordRepository) send(ctx context.Context, method, url string, payload interface{}, op string) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bot "+r.botToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &entity.UpstreamError{Op: op, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
