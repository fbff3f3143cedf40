package nakama

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"

	"cosanostra/internal/domain"
	"cosanostra/internal/ports"
)

func TestToRuntimeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		prefix string
	}{
		{"not found", fmt.Errorf("load s1: %w", ports.ErrSessionNotFound), codeNotFound, "not_found"},
		{"validation", fmt.Errorf("%w: bad", domain.ErrValidation), codeInvalidArgument, "validation"},
		{"authorization", fmt.Errorf("%w: not host", domain.ErrAuthorization), codePermissionDenied, "authorization"},
		{"stale", ports.ErrStaleVersion, codeAborted, "conflict"},
		{"reference", fmt.Errorf("%w: x", domain.ErrReference), codeNotFound, "reference"},
		{"setup", fmt.Errorf("%w: few", domain.ErrSetup), codeFailedPrecondition, "setup"},
		{"rule", fmt.Errorf("%w: broke", domain.ErrRule), codeFailedPrecondition, "rule"},
		{"internal", errors.New("boom"), codeInternal, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := toRuntimeError(noopLogger{}, "test_rpc", tt.err)
			var rerr *runtime.Error
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *runtime.Error, got %T", err)
			}
			if rerr.Code != tt.code {
				t.Fatalf("code = %d, want %d", rerr.Code, tt.code)
			}
			if !strings.HasPrefix(rerr.Message, tt.prefix) {
				t.Fatalf("message = %q, want prefix %q", rerr.Message, tt.prefix)
			}
		})
	}

	if toRuntimeError(noopLogger{}, "test_rpc", nil) != nil {
		t.Fatal("nil error must stay nil")
	}
}
