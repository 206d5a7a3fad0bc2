package dispatcher

import (
	"log/slog"

	cdis "github.com/next-trace/scg-dispatcher/contract/dispatch"
)

// Dispatcher fans one event out to every subscribed handler.
//
// Free functions are keyed by code-pointer identity; subscribing the same
// function again overwrites its entry. Bound handlers are kept in
// registration order and compared by (receiver, method) identity on
// removal; duplicate bound subscriptions are allowed and each fires.
//
// The dispatcher holds non-owning references only: callers must unsubscribe
// a receiver before it is discarded. It is not safe for concurrent use;
// callers that share one across goroutines must serialize access
// externally.
type Dispatcher[T any] struct {
	funcs  map[uintptr]cdis.Handler[T]
	bound  []cdis.BoundHandler[T]
	logger *slog.Logger
}

// New constructs a Dispatcher for events of type T. The logger is optional
// and may be nil.
func New[T any](logger *slog.Logger) *Dispatcher[T] {
	return &Dispatcher[T]{
		funcs:  make(map[uintptr]cdis.Handler[T]),
		logger: logger,
	}
}

// Subscribe registers a free function. Subscribing a function that is
// already registered replaces its entry; nil is ignored.
func (d *Dispatcher[T]) Subscribe(fn cdis.Handler[T]) {
	if fn == nil {
		return
	}

	d.funcs[cdis.FuncID(fn)] = fn
}

// Unsubscribe removes a free function. Removing a function that was never
// subscribed is a no-op.
func (d *Dispatcher[T]) Unsubscribe(fn cdis.Handler[T]) {
	if fn == nil {
		return
	}

	delete(d.funcs, cdis.FuncID(fn))
}

// SubscribeMethod registers a method bound to a receiver, e.g.
// d.SubscribeMethod(logger, logger.Record). The receiver should be a
// pointer so identity comparison means "same object". No dedup check is
// performed: the same (receiver, method) pair may be registered more than
// once and fires once per registration.
func (d *Dispatcher[T]) SubscribeMethod(receiver any, method func(T)) {
	if receiver == nil || method == nil {
		return
	}

	d.bound = append(d.bound, &boundMethod[T]{receiver: receiver, method: method})

	if d.logger != nil {
		d.logger.Debug("subscribe method", "receiver", receiver, "handlers", d.Len())
	}
}

// UnsubscribeMethod removes the first bound registration whose
// (receiver, method) identity equals the given pair. At most one entry is
// removed even when duplicates exist; absent pairs are a no-op.
func (d *Dispatcher[T]) UnsubscribeMethod(receiver any, method func(T)) {
	if receiver == nil || method == nil {
		return
	}

	id := cdis.Identity{Receiver: receiver, Func: cdis.FuncID(method)}
	for i, h := range d.bound {
		if h.Identity().Equal(id) {
			d.bound = append(d.bound[:i], d.bound[i+1:]...)
			return
		}
	}
}

// Dispatch invokes every free handler (map order, unspecified), then every
// bound handler (registration order), each exactly once with ev.
//
// Both collections are snapshotted before any handler runs: a handler that
// subscribes or unsubscribes during dispatch affects the next Dispatch
// call, never the one in flight.
func (d *Dispatcher[T]) Dispatch(ev T) {
	free := make([]cdis.Handler[T], 0, len(d.funcs))
	for _, fn := range d.funcs {
		free = append(free, fn)
	}

	bound := append([]cdis.BoundHandler[T](nil), d.bound...)

	if d.logger != nil {
		d.logger.Debug("dispatch", "free", len(free), "bound", len(bound))
	}

	for _, fn := range free {
		fn(ev)
	}

	for _, h := range bound {
		h.Invoke(ev)
	}
}

// Len returns the current number of registrations, free and bound.
func (d *Dispatcher[T]) Len() int {
	return len(d.funcs) + len(d.bound)
}

// boundMethod closes over a specific (receiver, method) pair and exposes it
// through the BoundHandler capability.
type boundMethod[T any] struct {
	receiver any
	method   func(T)
}

func (b *boundMethod[T]) Invoke(ev T) { b.method(ev) }

func (b *boundMethod[T]) Identity() cdis.Identity {
	return cdis.Identity{Receiver: b.receiver, Func: cdis.FuncID(b.method)}
}

var _ cdis.BoundHandler[int] = (*boundMethod[int])(nil)
