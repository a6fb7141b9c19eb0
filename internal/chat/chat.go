package chat

import (
	"context"
	"errors"
	"strings"
	"sync"

	"blushmart-web/internal/api"
	"blushmart-web/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrEmptyInput    = errors.New("chat input is empty")
	ErrEmptyResponse = errors.New("chat backend returned no response")
)

// Message is one user/bot exchange in the widget transcript.
type Message struct {
	User string `json:"user"`
	Bot  string `json:"bot"`
}

// Backend is the scripted-chatbot slice of the upstream API.
type Backend interface {
	Send(ctx context.Context, input string) (string, error)
}

type apiBackend struct {
	client *api.Client
}

func NewBackend(client *api.Client) Backend {
	return &apiBackend{client: client}
}

func (b *apiBackend) Send(ctx context.Context, input string) (string, error) {
	body := map[string]string{"input": input}
	var out struct {
		Response string `json:"response"`
	}
	if err := b.client.PostJSON(ctx, "/api/chat", "", body, &out); err != nil {
		return "", err
	}
	// The widget trusts the shape nowhere: a blank reply is malformed.
	if out.Response == "" {
		return "", ErrEmptyResponse
	}
	return out.Response, nil
}

// Store keeps the ordered chat transcript for one session.
type Store struct {
	mu      sync.Mutex
	backend Backend

	messages []Message
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Send forwards the user's input and appends the exchange to the
// transcript. A failed call appends nothing.
func (s *Store) Send(ctx context.Context, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	reply, err := s.backend.Send(ctx, input)
	if err != nil {
		logger.FromCtx(ctx).Error("chat request failed", zap.Error(err))
		return "", err
	}

	s.mu.Lock()
	s.messages = append(s.messages, Message{User: input, Bot: reply})
	s.mu.Unlock()
	return reply, nil
}

// Messages returns a snapshot of the transcript in order.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
