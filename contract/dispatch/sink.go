package dispatch

import "context"

// Sink delivers serialized events to an external transport.
// Library users provide an implementation backed by their broker, or use one
// of the bundled adapters (NATS, RabbitMQ, Kafka, in-memory).
type Sink interface {
	Forward(ctx context.Context, subject string, body []byte, headers map[string]string) error
}

// Subjecter lets an event choose the subject it is forwarded under.
// Events that do not implement it are forwarded under their type name.
type Subjecter interface {
	Subject() string
}

// ForwardOptions controls how a relay forwards events to a sink.
type ForwardOptions struct {
	SubjectOverride string
	Key             string
	Headers         map[string]string
}
