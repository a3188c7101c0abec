package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/task-cli/internal/logging"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// historyCommand prints the change journal for the current task file.
func (a *app) historyCommand(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("task-cli history", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	n := flags.Int("n", 20, "Number of entries to show (0 = all)")
	follow := flags.Bool("f", false, "Follow the journal (like tail -f)")
	flags.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	raw := flags.Bool("raw", false, "Print raw JSON lines")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(flags.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	path, err := logging.HistoryPath(a.cfg.LogDir, a.cfg.TaskFile)
	if err != nil {
		return fmt.Errorf("finding history: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(a.stdout, "No history recorded yet.")
		return nil
	}

	if *follow || *raw {
		if *follow {
			fmt.Fprintf(a.stdout, "Following: %s\n(Ctrl+C to stop)\n\n", path)
		}
		return a.report(logging.TailLog(ctx, a.stdout, path, *n, *follow))
	}

	events, err := logging.ReadHistory(path)
	if err != nil {
		return a.report(err)
	}
	if *n > 0 && len(events) > *n {
		events = events[len(events)-*n:]
	}
	for _, ev := range events {
		fmt.Fprintf(a.stdout, "%s  %-6s  #%-4d %s [%s]\n",
			ev.Time.Local().Format(historyTimeLayout),
			ev.Action, ev.TaskID, ev.Description, ev.Status)
	}
	return nil
}
