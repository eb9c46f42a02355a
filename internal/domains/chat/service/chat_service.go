package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"news-portal-backend/internal/domains/chat/model"
	"news-portal-backend/internal/domains/chat/repository"
	"news-portal-backend/pkg/cache"
)

const agentTimeout = 30 * time.Second

type ServiceInterface interface {
	// History returns the session's messages in creation order.
	History(ctx context.Context, sessionID string) ([]model.ChatMessage, error)

	// SendUserMessage stores a visitor message, publishes it to the
	// session channel, and forwards the prompt to the agent endpoint.
	SendUserMessage(ctx context.Context, sessionID string, req model.SendMessageRequest) (*model.ChatMessage, error)

	// SendBotReply stores a bot message from the agent callback and
	// publishes it to the session channel.
	SendBotReply(ctx context.Context, sessionID string, req model.BotReplyRequest) (*model.ChatMessage, error)

	// Subscribe streams messages published on the session channel.
	Subscribe(ctx context.Context, sessionID string) (<-chan string, error)
}

type chatService struct {
	repo   repository.ChatRepository
	pubsub cache.PubSub
	client *http.Client
}

func NewChatService(repo repository.ChatRepository, pubsub cache.PubSub) ServiceInterface {
	return &chatService{
		repo:   repo,
		pubsub: pubsub,
		client: &http.Client{Timeout: agentTimeout},
	}
}

func sessionChannel(sessionID string) string {
	return "chat:" + sessionID
}

func (s *chatService) History(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	return s.repo.ListBySession(ctx, sessionID)
}

func (s *chatService) SendUserMessage(ctx context.Context, sessionID string, req model.SendMessageRequest) (*model.ChatMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		SessionID: sessionID,
		Sender:    model.SenderUser,
		Message:   req.Message,
	}
	if req.Agent != "" {
		agent := req.Agent
		msg.Agent = &agent
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, msg)

	// Forward the prompt to the agent endpoint. The stored message
	// stands whether or not the agent answers.
	if req.Agent != "" {
		go s.forwardToAgent(req.Agent, sessionID, req.Message)
	}

	return msg, nil
}

func (s *chatService) SendBotReply(ctx context.Context, sessionID string, req model.BotReplyRequest) (*model.ChatMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := &model.ChatMessage{
		SessionID: sessionID,
		Sender:    model.SenderBot,
		Message:   req.Message,
	}
	if req.Agent != "" {
		agent := req.Agent
		msg.Agent = &agent
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.publish(ctx, msg)

	return msg, nil
}

func (s *chatService) Subscribe(ctx context.Context, sessionID string) (<-chan string, error) {
	return s.pubsub.Subscribe(ctx, sessionChannel(sessionID))
}

// publish fans the stored message out to streaming subscribers.
// Publish failures are logged; the insert already succeeded.
func (s *chatService) publish(ctx context.Context, msg *model.ChatMessage) {
	if err := s.pubsub.Publish(ctx, sessionChannel(msg.SessionID), msg); err != nil {
		log.Error().Err(err).Str("session_id", msg.SessionID).Msg("failed to publish chat message")
	}
}

// forwardToAgent posts {sessionId, prompt} to the agent endpoint.
// Fire-and-forget: errors are logged and the request is not retried.
func (s *chatService) forwardToAgent(agentURL, sessionID, prompt string) {
	body, err := json.Marshal(map[string]string{
		"sessionId": sessionID,
		"prompt":    prompt,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal agent request")
		return
	}

	req, err := http.NewRequest(http.MethodPost, agentURL, bytes.NewReader(body))
	if err != nil {
		log.Error().Err(err).Str("agent", agentURL).Msg("failed to build agent request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("agent call failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Str("session_id", sessionID).Msg("agent call failed")
	}
}
