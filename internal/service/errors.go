package service

import "errors"

var (
	// ErrTokenInvalidated is logged when a stored token fails validation.
	// CheckAuth never returns it; the session silently drops to unauthenticated.
	ErrTokenInvalidated = errors.New("session token invalidated")

	ErrUnknownDevice = errors.New("unknown device")
	ErrInvalidStatus = errors.New(`status must be "on" or "off"`)

	// ErrSessionChanged means a logout or another sign-in overtook the request.
	ErrSessionChanged = errors.New("session changed while request was in flight")

	ErrInvalidTheme = errors.New(`theme must be "light" or "dark"`)

	errMissingUser       = errors.New("response carried no user")
	errFaceNotRecognized = errors.New("face not recognised")
)
