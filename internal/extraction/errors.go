package extraction

import (
	"context"
	"errors"
	"fmt"
)

// Errors describing why the remote path failed. None of them reach callers of
// the Orchestrator; they select the log message and the failure metric.
var (
	// ErrRemoteTransport is returned when the remote service could not be
	// reached or answered with a failure status.
	ErrRemoteTransport = errors.New("remote service transport failure")

	// ErrRemoteProtocol is returned when the remote call succeeded but carried
	// no usable content.
	ErrRemoteProtocol = errors.New("remote service returned no usable content")

	// ErrContentBlocked is returned when the remote model refused the prompt.
	ErrContentBlocked = fmt.Errorf("%w: content blocked by safety filters", ErrRemoteProtocol)

	// ErrResponseParse is returned when the remote payload is not the expected
	// JSON or is missing a required field.
	ErrResponseParse = errors.New("remote response could not be parsed")

	// ErrInvalidConfig is returned by constructors given unusable settings.
	ErrInvalidConfig = errors.New("invalid extraction configuration")
)

// Failure kinds reported by FailureKind.
const (
	KindTransport      = "transport"
	KindProtocol       = "protocol"
	KindContentBlocked = "content_blocked"
	KindParse          = "parse"
	KindTimeout        = "timeout"
	KindCanceled       = "canceled"
	KindUnknown        = "unknown"
)

// FailureKind maps a remote-path error to a short label for logs and metrics.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrContentBlocked):
		return KindContentBlocked
	case errors.Is(err, ErrRemoteProtocol):
		return KindProtocol
	case errors.Is(err, ErrRemoteTransport):
		return KindTransport
	case errors.Is(err, ErrResponseParse):
		return KindParse
	default:
		return KindUnknown
	}
}
