// services/errors.go - Application error taxonomy
package services

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnverified is returned for accounts that have not redeemed
	// their verification email yet.
	ErrUnverified = errors.New("user unverified")

	// ErrInvalidToken covers malformed, expired and already-redeemed
	// tokens of any kind.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUserGone is returned when a valid token references a user id
	// that no longer resolves.
	ErrUserGone = errors.New("user no longer exists")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("no access")

	ErrDuplicateEmail     = errors.New("register user already exists")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrDuplicateOwnership = errors.New("user already owns a team")

	ErrPasswordMismatch = errors.New("passwords are different")

	// ErrInvalidData marks membership state machine violations such as
	// re-applying while an application is already pending.
	ErrInvalidData = errors.New("invalid data")

	ErrNoSuchMembership = errors.New("there is no such user in the team")
)
