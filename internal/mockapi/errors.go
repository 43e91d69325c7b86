package mockapi

import "errors"

var (
	// ErrInvalidCredentials is returned by Login on any username/password
	// mismatch. The message is deliberately uniform so callers cannot tell
	// which of the two fields was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrIncorrectPassword is returned by ChangePassword when the supplied
	// current password does not match the stored credential.
	ErrIncorrectPassword = errors.New("current password is incorrect")
)
