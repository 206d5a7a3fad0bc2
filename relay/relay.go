package relay

import (
	"context"
	"encoding/json"
	"log/slog"
	"reflect"

	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
)

// Relay forwards locally dispatched events to a Sink as JSON messages.
//
// A Relay is an ordinary bound-handler receiver: wire it with
// d.SubscribeMethod(r, r.Forward) and unwire it with
// d.UnsubscribeMethod(r, r.Forward). Dispatch stays synchronous; the relay
// is just another handler. Sink failures are logged and never propagated,
// since handlers return no error.
type Relay[T any] struct {
	sink   cdis.Sink
	opts   cdis.ForwardOptions
	logger *slog.Logger
}

// New constructs a Relay over the given sink. The logger is optional and
// may be nil.
func New[T any](sink cdis.Sink, opts cdis.ForwardOptions, logger *slog.Logger) *Relay[T] {
	return &Relay[T]{sink: sink, opts: opts, logger: logger}
}

// Forward encodes ev and hands it to the sink. Subject resolution:
// ForwardOptions.SubjectOverride, else the event's Subject() when it
// implements Subjecter, else the event type name.
func (r *Relay[T]) Forward(ev T) {
	if r.sink == nil {
		return
	}

	body, err := json.Marshal(ev)
	if err != nil {
		if r.logger != nil {
			r.logger.Error("relay serialize", "event", typeName(ev), "err", err)
		}

		return
	}

	subject := subjectFor(ev, r.opts)
	headers := forwardHeaders(r.opts)

	if err := r.sink.Forward(context.Background(), subject, body, headers); err != nil {
		if r.logger != nil {
			r.logger.Error("relay forward", "subject", subject, "err", err)
		}
	}
}

func subjectFor(ev any, o cdis.ForwardOptions) string {
	if o.SubjectOverride != "" {
		return o.SubjectOverride
	}

	if s, ok := ev.(cdis.Subjecter); ok {
		return s.Subject()
	}

	return typeName(ev)
}

func forwardHeaders(o cdis.ForwardOptions) map[string]string {
	h := make(map[string]string, len(o.Headers)+1)
	for k, v := range o.Headers {
		h[k] = v
	}

	if o.Key != "" {
		h["key"] = o.Key
	}

	return h
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" { // unnamed (e.g., map/struct literal)
		name = t.String()
	}

	return name
}
