package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Message senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one line in a chat session. Sessions are identified
// by a caller-chosen string key; messages within a session are ordered
// by their serial id.
type ChatMessage struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Agent     *string   `json:"agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageRequest is a visitor message posted to a session.
type SendMessageRequest struct {
	Message string `json:"message"`
	Agent   string `json:"agent"`
}

func (r SendMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Message, validation.Required, validation.Length(1, 4000)),
		// Agent is the bot endpoint the message is forwarded to.
		validation.Field(&r.Agent, is.URL, validation.Length(0, 2048)),
	)
}

// BotReplyRequest is the agent callback payload carrying the bot's
// answer for a session.
type BotReplyRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
	Agent     string `json:"agent"`
}

func (r BotReplyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SessionID, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Message, validation.Required),
	)
}
