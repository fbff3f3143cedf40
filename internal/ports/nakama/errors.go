package nakama

import (
	"errors"

	"cosanostra/internal/domain"
	"cosanostra/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

var (
	errUnauthenticated = runtime.NewError("authentication required", codeUnauthenticated)
	errMissingSession  = runtime.NewError("sessionId is required", codeInvalidArgument)
)

const kindNotFound = "not_found"

// toRuntimeError maps engine and store errors onto runtime status codes.
// The error kind is the message prefix so clients can branch on it.
func toRuntimeError(logger runtime.Logger, rpc string, err error) error {
	if err == nil {
		return nil
	}
	kind := domain.KindOf(err)
	var code int
	switch {
	case errors.Is(err, ports.ErrSessionNotFound):
		kind, code = kindNotFound, codeNotFound
	case errors.Is(err, domain.ErrValidation):
		code = codeInvalidArgument
	case errors.Is(err, domain.ErrAuthorization):
		code = codePermissionDenied
	case errors.Is(err, domain.ErrConflict):
		code = codeAborted
	case errors.Is(err, domain.ErrReference):
		code = codeNotFound
	case errors.Is(err, domain.ErrSetup), errors.Is(err, domain.ErrRule):
		code = codeFailedPrecondition
	default:
		logger.Error("%s: internal error: %v", rpc, err)
		return runtime.NewError("internal error", codeInternal)
	}
	return runtime.NewError(kind+": "+err.Error(), code)
}
