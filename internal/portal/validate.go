package portal

import (
	"encoding/base64"
	"fmt"
	"strings"
)

const (
	// MinPasswordLen is the settings-form minimum for a new password.
	MinPasswordLen = 6
	// MaxImageBytes caps decoded profile images at 5MB.
	MaxImageBytes = 5 << 20
)

// ValidationError describes input rejected before it reaches the mock
// backend. These checks are the front end's responsibility; the backend
// never sees input that fails them.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ValidateLogin checks the login form inputs.
func ValidateLogin(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	return nil
}

// ValidatePasswordChange checks the change-password form inputs. The
// backend only verifies the current password; everything else is checked
// here.
func ValidatePasswordChange(current, next, confirm string) error {
	if current == "" {
		return &ValidationError{Field: "current password", Reason: "must not be empty"}
	}
	if len(next) < MinPasswordLen {
		return &ValidationError{
			Field:  "new password",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLen),
		}
	}
	if next != confirm {
		return &ValidationError{Field: "confirmation", Reason: "does not match the new password"}
	}
	if next == current {
		return &ValidationError{Field: "new password", Reason: "must differ from the current password"}
	}
	return nil
}

// ValidateProfileImage checks a profile image reference. Plain http(s)
// URLs pass through; anything else must be an image data URI whose
// payload decodes to at most MaxImageBytes.
func ValidateProfileImage(image string) error {
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return nil
	}
	if !strings.HasPrefix(image, "data:image/") {
		return &ValidationError{Field: "profile image", Reason: "must be a URL or an image data URI"}
	}
	comma := strings.Index(image, ",")
	if comma < 0 {
		return &ValidationError{Field: "profile image", Reason: "malformed data URI"}
	}
	meta, payload := image[:comma], image[comma+1:]
	size := len(payload)
	if strings.Contains(meta, ";base64") {
		size = base64.StdEncoding.DecodedLen(len(payload))
	}
	if size > MaxImageBytes {
		return &ValidationError{Field: "profile image", Reason: "must be 5MB or smaller"}
	}
	return nil
}
