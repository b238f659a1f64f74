package kvasir

import "errors"

var (
	ErrArgument             = errors.New("argument error")
	ErrCommunication        = errors.New("communication error")
	ErrCommunicationTimeout = errors.New("communication timeout error")
	ErrConfiguration        = errors.New("configuration error")
	ErrInternal             = errors.New("internal error")
	ErrMalformedPayload     = errors.New("malformed payload error")
	ErrMethodNotAllowed     = errors.New("method not allowed")
	ErrNoResource           = errors.New("no such resource")
)
