package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout means no reply arrived within the transport's request
	// timeout. The downstream call may still complete independently.
	ErrTimeout = errors.New("gateway: downstream reply timed out")

	// ErrUnavailable means the message could not be handed to the bus.
	ErrUnavailable = errors.New("gateway: message bus unavailable")

	// ErrUnknownChannel means the envelope was addressed to a channel the
	// bus was not configured with at startup.
	ErrUnknownChannel = errors.New("gateway: unknown channel")
)

// DownstreamError is a reply that itself signals failure. The gateway
// surfaces it verbatim, it never retries.
type DownstreamError struct {
	Cmd     string
	Method  string
	Message string
}

func (e *DownstreamError) Error() string {
	return fmt.Sprintf("downstream %s/%s: %s", e.Cmd, e.Method, e.Message)
}
