// Package portal implements the interactive terminal front end of the
// admin portal. It validates form input, drives the session container and
// the mock API, and renders results; all state lives in the core
// packages.
package portal

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"adminportal/internal/mockapi"
	"adminportal/internal/models"
	"adminportal/internal/session"
)

// App translates shell commands into core operations.
type App struct {
	session *session.Manager
	api     *mockapi.API
	reader  *bufio.Reader
	out     io.Writer
	log     *zap.Logger
}

// NewApp builds the front end around an existing session manager and API
// client. in and out are the interactive streams, normally stdin/stdout.
func NewApp(sess *session.Manager, api *mockapi.API, in io.Reader, out io.Writer, log *zap.Logger) *App {
	return &App{
		session: sess,
		api:     api,
		reader:  bufio.NewReader(in),
		out:     out,
		log:     log,
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.Snapshot().IsAuthenticated()
}

// requireAuth applies the route guard: when the session is not
// authenticated it prints the redirect hint and reports false.
func (a *App) requireAuth() bool {
	if !session.CanEnter(a.session.Snapshot()) {
		fmt.Fprintln(a.out, "Please log in first.")
		return false
	}
	return true
}

// Login prompts for credentials, validates them, and runs the login cycle.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in. Log out first.")
		return session.ErrLoginNotAllowed
	}

	username, err := promptLine(a.reader, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := promptPassword("Password", a.out)
	if err != nil {
		return err
	}
	if err := ValidateLogin(username, password); err != nil {
		a.log.Debug("login input rejected", zap.Error(err))
		fmt.Fprintln(a.out, "Invalid input:", err)
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Welcome, %s!\n", a.session.Snapshot().User.Name)
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile renders the profile view. It is a protected view behind the
// route guard.
func (a *App) Profile(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}
	u := a.session.Snapshot().User
	fmt.Fprintf(a.out, "Username: %s\nName:     %s\nRole:     %s\nImage:    %s\n",
		u.Username, u.Name, u.Role, u.ProfileImage)
	return nil
}

// UpdateProfile prompts for profile changes and applies them as a partial
// update. Empty answers keep the current value.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	name, err := promptLine(a.reader, "New display name (empty to keep)", a.out)
	if err != nil {
		return err
	}
	image, err := promptLine(a.reader, "New profile image URL or data URI (empty to keep)", a.out)
	if err != nil {
		return err
	}

	var patch models.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if image != "" {
		if err := ValidateProfileImage(image); err != nil {
			fmt.Fprintln(a.out, "Invalid input:", err)
			return err
		}
		patch.ProfileImage = &image
	}
	if patch.IsZero() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	user, err := a.session.UpdateProfile(ctx, patch)
	if err != nil {
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}
	fmt.Fprintf(a.out, "Profile updated. Display name is now %q.\n", user.Name)
	return nil
}

// ChangePassword prompts for the current and new password, validates the
// form rules, and rotates the credential.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	current, err := promptPassword("Current password", a.out)
	if err != nil {
		return err
	}
	next, err := promptPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := promptPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	if err := ValidatePasswordChange(current, next, confirm); err != nil {
		a.log.Debug("password change input rejected", zap.Error(err))
		fmt.Fprintln(a.out, "Invalid input:", err)
		return err
	}

	if err := a.api.ChangePassword(ctx, current, next); err != nil {
		fmt.Fprintln(a.out, "Change failed:", err)
		return err
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// ResetPassword restores the built-in default password.
func (a *App) ResetPassword(ctx context.Context) error {
	if a.api.PasswordIsDefault(ctx) {
		fmt.Fprintln(a.out, "Password is already the default.")
		return nil
	}
	a.api.ResetPassword(ctx)
	fmt.Fprintln(a.out, "Password reset to the default.")
	return nil
}

// Status prints the session snapshot and whether the default credential
// is in effect.
func (a *App) Status(ctx context.Context) error {
	snap := a.session.Snapshot()
	fmt.Fprintf(a.out, "Session: %s\n", snap.Status)
	if snap.IsAuthenticated() {
		fmt.Fprintf(a.out, "User:    %s (%s)\n", snap.User.Username, snap.User.Role)
	}
	if snap.Err != "" {
		fmt.Fprintf(a.out, "Error:   %s\n", snap.Err)
	}
	if a.api.PasswordIsDefault(ctx) {
		fmt.Fprintln(a.out, "Warning: the default password is in effect.")
	}
	return nil
}
