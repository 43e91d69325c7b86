package portal

import (
	"context"
	"fmt"
	"strings"
)

// Run starts the read-eval-print loop. It reads a line, parses the first
// token as the command, and dispatches to the App methods. Command errors
// are rendered by the handlers themselves; the loop only reports unknown
// commands. The loop exits on EOF or the exit/quit commands.
func (a *App) Run(ctx context.Context) {
	for {
		marker := ""
		if a.isLoggedIn() {
			marker = a.session.Snapshot().User.Username + "@"
		}
		fmt.Fprintf(a.out, "%sportal> ", marker)

		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: profile, update, passwd, reset, status, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: login, reset, status, exit")
			}
		case "login":
			_ = a.Login(ctx)
		case "profile":
			_ = a.Profile(ctx)
		case "update":
			_ = a.UpdateProfile(ctx)
		case "passwd":
			_ = a.ChangePassword(ctx)
		case "reset":
			_ = a.ResetPassword(ctx)
		case "status":
			_ = a.Status(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}
