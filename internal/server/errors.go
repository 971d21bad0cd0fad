package server

import "errors"

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrInvalidPayload     = errors.New("invalid message payload")
)
