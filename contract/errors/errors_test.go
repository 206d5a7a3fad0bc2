package errors_test

import (
	"errors"
	"testing"

	derr "github.com/next-trace/scg-dispatcher/contract/errors"
)

func TestCodeAndVars(t *testing.T) {
	e := derr.Code(derr.ErrCodeForwardFailed)
	if e.Error() != derr.ErrCodeForwardFailed {
		t.Fatalf("unexpected error string: %s", e.Error())
	}

	// exported variables must carry their codes
	tests := []struct {
		err  error
		code string
	}{
		{derr.ErrForwardFailed, derr.ErrCodeForwardFailed},
		{derr.ErrSerializationFailed, derr.ErrCodeSerializationFailed},
		{derr.ErrNotConnected, derr.ErrCodeNotConnected},
		{derr.ErrClosed, derr.ErrCodeClosed},
	}

	for _, tc := range tests {
		if !errors.Is(tc.err, derr.Code(tc.code)) {
			t.Fatalf("expected %s to be %s", tc.err, tc.code)
		}
	}
}
