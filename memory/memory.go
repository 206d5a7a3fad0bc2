package memory

import (
	"github.com/next-trace/scg-dispatcher/adapters/inmemory"
	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
	"github.com/next-trace/scg-dispatcher/dispatcher"
	"github.com/next-trace/scg-dispatcher/relay"
)

// New constructs a dispatcher pre-wired with an in-memory relay: every
// dispatched event is also recorded as a JSON message on the returned sink.
// Useful for tests and examples.
func New[T any]() (*dispatcher.Dispatcher[T], *inmemory.Sink) {
	sink := inmemory.New()
	d := dispatcher.New[T](nil)

	r := relay.New[T](sink, cdis.ForwardOptions{}, nil)
	d.SubscribeMethod(r, r.Forward)

	return d, sink
}
