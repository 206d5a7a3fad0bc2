package errors

// Error codes for the dispatch contracts. Keep stable; used across adapters and relay.
const (
	ErrCodeForwardFailed       = "dispatch.forward_failed"
	ErrCodeSerializationFailed = "dispatch.serialization_failed"
	ErrCodeNotConnected        = "dispatch.not_connected"
	ErrCodeClosed              = "dispatch.closed"
)

// Code returns an error value that carries only a code string.
// It implements error by returning the code string in Error().
func Code(code string) error { return codedError(code) }

type codedError string

func (e codedError) Error() string { return string(e) }

var (
	ErrForwardFailed       = Code(ErrCodeForwardFailed)
	ErrSerializationFailed = Code(ErrCodeSerializationFailed)
	ErrNotConnected        = Code(ErrCodeNotConnected)
	ErrClosed              = Code(ErrCodeClosed)
)
