package kafka

import (
	"context"
	"errors"
	"fmt"

	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
	derr "github.com/next-trace/scg-dispatcher/contract/errors"
)

// Writer is a minimal Kafka-like writer interface.
// Users can adapt segmentio/kafka-go or any other client to this.
type Writer interface {
	Write(topic string, key, value []byte, headers map[string]string) error
}

// Sink implements dispatch.Sink using an injected Writer. The forward
// subject becomes the topic; a "key" header, when present, becomes the
// record key.
type Sink struct {
	Writer Writer
}

var _ cdis.Sink = (*Sink)(nil)

// New creates a new Kafka sink instance with the provided writer.
func New(w Writer) *Sink { return &Sink{Writer: w} }

func (s *Sink) Forward(ctx context.Context, subject string, body []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.Writer == nil {
		return fmt.Errorf("kafka forward: %w", derr.ErrNotConnected)
	}

	var key []byte
	if k, ok := headers["key"]; ok && k != "" {
		key = []byte(k)
	}

	if err := s.Writer.Write(subject, key, body, headers); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}

		return fmt.Errorf("kafka forward write: %w", errors.Join(derr.ErrForwardFailed, err))
	}

	return nil
}
