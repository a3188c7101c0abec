package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/tracker"
	"github.com/nibzard/task-cli/internal/ui"
)

// tuiCommand launches the read-only terminal viewer.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("task-cli tui", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	noWatch := flags.Bool("no-watch", false, "Do not reload when the task file changes")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(flags.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	if !ui.IsTTY(a.stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	mgr, done := a.openViewerManager(ctx)
	defer done()
	return ui.RunTUI(ctx, mgr, ui.WithWatch(!*noWatch), ui.WithLogger(a.logger))
}

// openViewerManager opens the store for the viewer. Store errors are not
// logged: the viewer owns the terminal and shows load errors itself.
func (a *app) openViewerManager(ctx context.Context) (*tracker.Manager, func()) {
	return a.openManager(ctx, false, tracker.WithLogger(logging.Discard()))
}
