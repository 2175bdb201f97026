package entity

import "encoding/json"

// InteractionType is the platform's interaction kind
type InteractionType int

const (
	InteractionPing               InteractionType = 1
	InteractionApplicationCommand InteractionType = 2
)

// InteractionResponseType is the kind of synchronous reply
type InteractionResponseType int

const (
	ResponsePong                     InteractionResponseType = 1
	ResponseChannelMessageWithSource InteractionResponseType = 4
)

// Interaction is the parsed body of an authenticated webhook request
type Interaction struct {
	ID    string           `json:"id"`
	Type  InteractionType  `json:"type"`
	Data  *InteractionData `json:"data,omitempty"`
	Token string           `json:"token,omitempty"`
}

// InteractionData carries the invoked command
type InteractionData struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Options json.RawMessage `json:"options,omitempty"`
}

// InteractionResponse is written back as the HTTP response body
type InteractionResponse struct {
	Type InteractionResponseType  `json:"type"`
	Data *InteractionResponseData `json:"data,omitempty"`
}

// InteractionResponseData is the visible message of a reply
type InteractionResponseData struct {
	Content string `json:"content"`
}

// ApplicationCommand is a slash command definition registered with the platform
type ApplicationCommand struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
