package inmemory

import (
	"context"
	"sync"

	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
)

// Message is one recorded forward.
type Message struct {
	Subject string
	Body    []byte
	Headers map[string]string
}

// Sink is a thread-safe in-memory implementation of dispatch.Sink.
// It records forwarded events for testing and examples.
type Sink struct {
	mu       sync.Mutex
	Messages []Message
}

// Ensure Sink implements the contract.
var _ cdis.Sink = (*Sink)(nil)

// New creates a new in-memory sink instance.
func New() *Sink { return &Sink{} }

func (s *Sink) Forward(_ context.Context, subject string, body []byte, headers map[string]string) error {
	s.mu.Lock()
	s.Messages = append(s.Messages, Message{Subject: subject, Body: body, Headers: headers})
	s.mu.Unlock()

	return nil
}

// Len returns the number of recorded messages.
func (s *Sink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Messages)
}
