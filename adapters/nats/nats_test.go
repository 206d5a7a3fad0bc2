package nats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/next-trace/scg-dispatcher/adapters/nats"
	derr "github.com/next-trace/scg-dispatcher/contract/errors"
)

type fakeClient struct {
	calls []struct {
		subject string
		data    []byte
		headers map[string]string
	}
	err error
}

func (f *fakeClient) Publish(subject string, data []byte, headers map[string]string) error {
	f.calls = append(f.calls, struct {
		subject string
		data    []byte
		headers map[string]string
	}{subject, data, headers})

	return f.err
}

func TestNATS_Forward(t *testing.T) {
	fc := &fakeClient{}
	s := nats.New(fc)

	if err := s.Forward(context.Background(), "ticks.tick", []byte(`{"n":5}`), map[string]string{"h1": "v1"}); err != nil {
		t.Fatalf("forward: %v", err)
	}

	if len(fc.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fc.calls))
	}

	c := fc.calls[0]
	if c.subject != "ticks.tick" {
		t.Fatalf("subject mismatch: %s", c.subject)
	}

	if string(c.data) != `{"n":5}` {
		t.Fatalf("data mismatch: %s", c.data)
	}

	if c.headers["h1"] != "v1" {
		t.Fatalf("headers missing or wrong: %+v", c.headers)
	}
}

func TestNATS_ForwardErrors(t *testing.T) {
	// nil client
	s := nats.New(nil)
	if err := s.Forward(context.Background(), "s", nil, nil); !errors.Is(err, derr.ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}

	// client failure wraps ErrForwardFailed
	fc := &fakeClient{err: errors.New("boom")}
	s = nats.New(fc)

	if err := s.Forward(context.Background(), "s", nil, nil); !errors.Is(err, derr.ErrForwardFailed) {
		t.Fatalf("want ErrForwardFailed, got %v", err)
	}

	// canceled context short-circuits before publish
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Forward(ctx, "s", nil, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	if len(fc.calls) != 1 {
		t.Fatalf("publish after cancellation: %d calls", len(fc.calls))
	}
}

func TestNATS_NewWithNATS_RequiresURL(t *testing.T) {
	if _, _, err := nats.NewWithNATS(nats.Config{}); !errors.Is(err, derr.ErrNotConnected) {
		t.Fatalf("want ErrNotConnected, got %v", err)
	}
}
