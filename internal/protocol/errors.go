package protocol

import "errors"

var (
	// ErrMalformed marks a message that is not valid JSON or is missing a
	// required field. The transport drops it and keeps reading.
	ErrMalformed = errors.New("protocol: malformed message")
	// ErrUnknownAction marks a well formed message with an action this
	// server does not know. Such messages are ignored.
	ErrUnknownAction = errors.New("protocol: unknown action")
)
