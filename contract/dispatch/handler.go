package dispatch

import "reflect"

// Handler is a free event handler for events of type T.
type Handler[T any] func(ev T)

// Identity is the comparable key under which a handler is registered.
//
// Free functions carry a zero Receiver and are identified by code pointer
// alone. Bound handlers are identified by the (receiver, method) pair: two
// bound identities are equal iff both components match.
//
// Receivers are compared by interface equality; pass pointer receivers so
// that comparison means "same object".
type Identity struct {
	Receiver any
	Func     uintptr
}

// Equal reports whether both identity components match.
func (i Identity) Equal(other Identity) bool {
	return i.Receiver == other.Receiver && i.Func == other.Func
}

// FuncID returns the code-pointer identity of a function value.
//
// Named top-level functions and method values yield a stable pointer per
// function/method. Closures built from the same literal share one code
// pointer and therefore one identity.
func FuncID(fn any) uintptr {
	if fn == nil {
		return 0
	}

	return reflect.ValueOf(fn).Pointer()
}

// BoundHandler is an invocable bound to a receiver, recognizable by identity.
// It is the capability the dispatcher stores for method subscriptions:
// uniform invocation plus structural identity comparison for removal.
type BoundHandler[T any] interface {
	Invoke(ev T)
	Identity() Identity
}
