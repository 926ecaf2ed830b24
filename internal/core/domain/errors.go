package domain

import "errors"

var (
	ErrMalformedMessage  = errors.New("malformed message")
	ErrUnknownEvent      = errors.New("unknown event")
	ErrUnknownConnection = errors.New("unknown connection")

	ErrNoFile      = errors.New("no file")
	ErrInvalidKind = errors.New("invalid kind")
)
