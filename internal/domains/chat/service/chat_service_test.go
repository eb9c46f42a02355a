package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-portal-backend/internal/domains/chat/model"
	"news-portal-backend/internal/domains/chat/repository"
	"news-portal-backend/pkg/cache"
)

type fakeChatRepository struct {
	messages []model.ChatMessage
	nextID   int64
}

var _ repository.ChatRepository = (*fakeChatRepository)(nil)

func (f *fakeChatRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.messages = append(f.messages, *msg)
	return nil
}

func (f *fakeChatRepository) ListBySession(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	out := []model.ChatMessage{}
	for _, m := range f.messages {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakePubSub struct {
	channels []string
	payloads []interface{}
}

var _ cache.PubSub = (*fakePubSub)(nil)

func (f *fakePubSub) Publish(ctx context.Context, channel string, payload interface{}) error {
	f.channels = append(f.channels, channel)
	f.payloads = append(f.payloads, payload)
	return nil
}

func (f *fakePubSub) Subscribe(ctx context.Context, channel string) (<-chan string, error) {
	ch := make(chan string)
	close(ch)
	return ch, nil
}

func TestSendUserMessageStoresAndPublishes(t *testing.T) {
	repo := &fakeChatRepository{}
	pubsub := &fakePubSub{}
	svc := NewChatService(repo, pubsub)

	msg, err := svc.SendUserMessage(context.Background(), "sess-1", model.SendMessageRequest{
		Message: "Halo, ada berita apa hari ini?",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SenderUser, msg.Sender)
	assert.Equal(t, int64(1), msg.ID)
	require.Len(t, pubsub.channels, 1)
	assert.Equal(t, "chat:sess-1", pubsub.channels[0])
}

func TestSendUserMessageForwardsPromptToAgent(t *testing.T) {
	received := make(chan map[string]string, 1)
	agent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload map[string]string
		_ = json.Unmarshal(body, &payload)
		received <- payload
	}))
	defer agent.Close()

	svc := NewChatService(&fakeChatRepository{}, &fakePubSub{})

	_, err := svc.SendUserMessage(context.Background(), "sess-2", model.SendMessageRequest{
		Message: "Ringkas berita ekonomi",
		Agent:   agent.URL,
	})
	require.NoError(t, err)

	select {
	case payload := <-received:
		assert.Equal(t, "sess-2", payload["sessionId"])
		assert.Equal(t, "Ringkas berita ekonomi", payload["prompt"])
	case <-time.After(2 * time.Second):
		t.Fatal("agent endpoint was never called")
	}
}

func TestSendUserMessageStandsWhenAgentFails(t *testing.T) {
	repo := &fakeChatRepository{}
	svc := NewChatService(repo, &fakePubSub{})

	// Unreachable agent: the forward fails in the background, the
	// stored message is unaffected.
	msg, err := svc.SendUserMessage(context.Background(), "sess-3", model.SendMessageRequest{
		Message: "Halo",
		Agent:   "http://127.0.0.1:1/unreachable",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)

	history, err := svc.History(context.Background(), "sess-3")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSendBotReplyStoresAndPublishes(t *testing.T) {
	repo := &fakeChatRepository{}
	pubsub := &fakePubSub{}
	svc := NewChatService(repo, pubsub)

	msg, err := svc.SendBotReply(context.Background(), "sess-4", model.BotReplyRequest{
		SessionID: "sess-4",
		Message:   "Berikut ringkasannya.",
	})
	require.NoError(t, err)

	assert.Equal(t, model.SenderBot, msg.Sender)
	require.Len(t, pubsub.channels, 1)
	assert.Equal(t, "chat:sess-4", pubsub.channels[0])
}

func TestHistoryPreservesInsertionOrder(t *testing.T) {
	repo := &fakeChatRepository{}
	svc := NewChatService(repo, &fakePubSub{})

	for _, text := range []string{"pertama", "kedua", "ketiga"} {
		_, err := svc.SendUserMessage(context.Background(), "sess-5", model.SendMessageRequest{Message: text})
		require.NoError(t, err)
	}

	history, err := svc.History(context.Background(), "sess-5")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "pertama", history[0].Message)
	assert.Equal(t, "ketiga", history[2].Message)
	assert.Less(t, history[0].ID, history[1].ID)
}

func TestSendUserMessageValidation(t *testing.T) {
	svc := NewChatService(&fakeChatRepository{}, &fakePubSub{})

	_, err := svc.SendUserMessage(context.Background(), "sess-6", model.SendMessageRequest{})
	assert.Error(t, err)

	_, err = svc.SendBotReply(context.Background(), "sess-6", model.BotReplyRequest{Message: "x"})
	assert.Error(t, err)
}

func TestSendMessageRequestAgentMustBeURL(t *testing.T) {
	tests := []struct {
		name    string
		agent   string
		wantErr bool
	}{
		{name: "empty agent is fine", agent: ""},
		{name: "https endpoint", agent: "https://agent.example.com/hooks/chat?tenant=kompasiana&session=berita-nasional"},
		{name: "not a url", agent: "just some text with spaces", wantErr: true},
		{name: "over length cap", agent: "https://agent.example.com/" + strings.Repeat("a", 2048), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.SendMessageRequest{Message: "halo", Agent: tt.agent}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
