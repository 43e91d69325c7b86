// Package models defines the core data structures for the admin portal:
// the user profile, partial profile updates, and the durable session record.
package models

// DefaultPassword is the built-in credential accepted when no password
// override has been stored.
const DefaultPassword = "123456"

// User represents the portal's single admin account.
type User struct {
	// Username is the immutable login identifier.
	Username string `json:"username"`
	// Name is the mutable display name.
	Name string `json:"name"`
	// Role is the immutable role label.
	Role string `json:"role"`
	// ProfileImage is an image URL or data URI.
	ProfileImage string `json:"profileImage"`
}

// DefaultUser returns the built-in admin profile used when storage holds
// no profile record.
func DefaultUser() User {
	return User{
		Username:     "admin",
		Name:         "Admin User",
		Role:         "Administrator",
		ProfileImage: "https://ui-avatars.com/api/?name=Admin+User&background=258440&color=fff",
	}
}

// UserPatch is a partial profile update. Nil fields are left unchanged.
// Username and Role are immutable and cannot be patched.
type UserPatch struct {
	Name         *string `json:"name,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// Apply merges the patch into u and returns the merged profile. Fields
// absent from the patch are retained, so an empty patch is the identity.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	return u
}

// IsZero reports whether the patch carries no changes.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.ProfileImage == nil
}

// SessionRecord is the durable mirror of an authenticated session.
type SessionRecord struct {
	User            User `json:"user"`
	IsAuthenticated bool `json:"isAuthenticated"`
}
