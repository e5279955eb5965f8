package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := "local"
	if a.config != nil && a.config.Remote() {
		s = a.config.ServerAddress
	}
	if u := a.authService.CurrentUser(); u != "" {
		s = u + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Root greets the user and runs the REPL on the app's input.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to MR Trade (type 'help' for commands)")

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
