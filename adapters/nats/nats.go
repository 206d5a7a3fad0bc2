package nats

import (
	"context"
	"errors"
	"fmt"

	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
	derr "github.com/next-trace/scg-dispatcher/contract/errors"
)

// Client is a minimal NATS-like publisher interface decoupled from any concrete library.
// Users can provide a wrapper around their NATS connection to satisfy this.
type Client interface {
	// Publish publishes a message to a subject with optional headers.
	Publish(subject string, data []byte, headers map[string]string) error
}

// Sink implements dispatch.Sink using an injected NATS-like Client.
type Sink struct {
	Client Client
}

// Ensure Sink implements the contract.
var _ cdis.Sink = (*Sink)(nil)

// New creates a new NATS sink instance with the provided client.
func New(c Client) *Sink { return &Sink{Client: c} }

func (s *Sink) Forward(ctx context.Context, subject string, body []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.Client == nil {
		return fmt.Errorf("nats forward: %w", derr.ErrNotConnected)
	}

	if err := s.Client.Publish(subject, body, headers); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("nats forward publish: %w", errors.Join(derr.ErrForwardFailed, err))
	}

	return nil
}
