package rabbitmq_test

import (
	"context"
	"errors"
	"testing"

	"github.com/next-trace/scg-dispatcher/adapters/rabbitmq"
	derr "github.com/next-trace/scg-dispatcher/contract/errors"
)

type fakePublisher struct {
	msgs []rabbitmq.PubMsg
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, m rabbitmq.PubMsg) error {
	f.msgs = append(f.msgs, m)
	return f.err
}

func TestRabbitMQ_Forward(t *testing.T) {
	fp := &fakePublisher{}
	s := rabbitmq.New(fp)

	if err := s.Forward(context.Background(), "ticks.tick", []byte(`{"n":5}`), map[string]string{"h": "v"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if len(fp.msgs) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(fp.msgs))
	}

	m := fp.msgs[0]
	if m.Exchange != "events" {
		t.Fatalf("exchange mismatch: %s", m.Exchange)
	}

	if m.RoutingKey != "ticks.tick" {
		t.Fatalf("routing key mismatch: %s", m.RoutingKey)
	}

	if string(m.Body) != `{"n":5}` || m.Headers["h"] != "v" {
		t.Fatalf("message wrong: %+v", m)
	}
}

func TestRabbitMQ_ForwardErrors(t *testing.T) {
	s := rabbitmq.New(nil)
	if err := s.Forward(context.Background(), "s", nil, nil); !errors.Is(err, derr.ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}

	fp := &fakePublisher{err: errors.New("channel closed")}
	s = rabbitmq.New(fp)

	if err := s.Forward(context.Background(), "s", nil, nil); !errors.Is(err, derr.ErrForwardFailed) {
		t.Fatalf("want ErrForwardFailed, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Forward(ctx, "s", nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRabbitMQ_NewWithAMQPConn_RequiresURL(t *testing.T) {
	if _, _, err := rabbitmq.NewWithAMQPConn(rabbitmq.Config{}); !errors.Is(err, derr.ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}
}
