package forge

import (
	"git.home.luguber.info/inful/profilekit/internal/foundation/errors"
)

var (
	// ErrUserNotFound signals that the account does not exist.
	ErrUserNotFound = errors.UpstreamError("user not found").Build()

	// ErrUpstreamUnavailable signals that the API could not be reached or
	// answered with a non-success status.
	ErrUpstreamUnavailable = errors.UpstreamError("forge API unavailable").Build()
)
