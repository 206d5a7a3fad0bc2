package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
	derr "github.com/next-trace/scg-dispatcher/contract/errors"
)

const eventsExchange = "events"

type PubMsg struct {
	Exchange   string
	RoutingKey string
	Body       []byte
	Headers    map[string]string
}

type Publisher interface {
	Publish(ctx context.Context, m PubMsg) error
}

// Sink implements dispatch.Sink using an injected Publisher.
type Sink struct {
	Publisher Publisher
}

var _ cdis.Sink = (*Sink)(nil)

func New(p Publisher) *Sink { return &Sink{Publisher: p} }

func (s *Sink) Forward(ctx context.Context, subject string, body []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.Publisher == nil {
		return fmt.Errorf("rabbitmq forward: %w", derr.ErrNotConnected)
	}

	m := PubMsg{
		Exchange:   eventsExchange,
		RoutingKey: subject,
		Body:       body,
		Headers:    headers,
	}

	if err := s.Publisher.Publish(ctx, m); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("rabbitmq forward publish: %w", errors.Join(derr.ErrForwardFailed, err))
	}

	return nil
}
