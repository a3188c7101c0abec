// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/hooks"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/tracker"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUnknownCommand is returned for an unrecognised subcommand.
var ErrUnknownCommand = errors.New("unknown command")

// Run executes the task-cli CLI.
//
// Operation failures (missing ids, unknown statuses, store errors) are
// logged and Run returns nil. Run returns an error only for usage and
// configuration problems.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

// app carries the per-invocation state shared by subcommands.
type app struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	logger  *log.Logger
	stdout  io.Writer
	stderr  io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}

	a := &app{
		cfg:     cws.Config,
		sources: cws,
		stdout:  stdout,
		stderr:  stderr,
		logger: logging.NewConsoleLoggerFromConfig(stdout,
			cws.Config.LogLevel, cws.Config.LogFormat,
			cws.Config.LogTimestamps, cws.Config.LogCaller),
	}
	if *showVersion {
		return a.versionCommand()
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, stderr)
		return fmt.Errorf("no command given")
	}
	subcommand, rest := remaining[0], remaining[1:]

	switch subcommand {
	case "add":
		return a.addCommand(ctx, rest)
	case "update":
		return a.updateCommand(ctx, rest)
	case "delete":
		return a.deleteCommand(ctx, rest)
	case "mark-todo", "mark-in-progress", "mark-done":
		return a.markCommand(ctx, subcommand, rest)
	case "list":
		return a.listCommand(ctx, rest)
	case "tui":
		return a.tuiCommand(ctx, rest)
	case "doctor":
		return a.doctorCommand(rest)
	case "history":
		return a.historyCommand(ctx, rest)
	case "config":
		return a.configCommand(rest)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, subcommand)
	}
}

// openManager loads the task store. Mutating commands get the history
// journal and the hook wired in as change listeners; the returned func
// releases them. extra options are applied last.
func (a *app) openManager(ctx context.Context, mutating bool, extra ...tracker.Option) (*tracker.Manager, func()) {
	opts := []tracker.Option{
		tracker.WithOutput(a.stdout),
		tracker.WithLogger(a.logger),
	}
	closeFn := func() {}

	if mutating && a.cfg.History {
		history, err := logging.OpenHistory(a.cfg.LogDir, a.cfg.TaskFile)
		if err != nil {
			a.logger.Warn("history journal disabled", "err", err)
		} else {
			closeFn = func() { _ = history.Close() }
			opts = append(opts, tracker.WithListener(a.recordHistory(history)))
		}
	}
	if mutating && a.cfg.HookCommand != "" {
		opts = append(opts, tracker.WithListener(a.runHook(ctx)))
	}

	opts = append(opts, extra...)
	return tracker.Open(a.cfg.TaskFile, opts...), closeFn
}

func (a *app) recordHistory(history *logging.History) func(tracker.Change) {
	return func(c tracker.Change) {
		err := history.Record(logging.HistoryEvent{
			Action:      c.Action,
			TaskID:      c.Task.ID,
			Description: c.Task.Description,
			Status:      c.Task.Status.String(),
		})
		if err != nil {
			a.logger.Warn("could not record history", "err", err)
		}
	}
}

func (a *app) runHook(ctx context.Context) func(tracker.Change) {
	return func(c tracker.Change) {
		result, err := hooks.Invoke(ctx, hooks.Options{
			Command:  a.cfg.HookCommand,
			Action:   c.Action,
			TaskID:   c.Task.ID,
			Status:   c.Task.Status.String(),
			TaskFile: a.cfg.TaskFile,
			WorkDir:  a.cfg.ProjectRoot,
			Stdout:   a.stdout,
			Stderr:   a.stderr,
		})
		if err != nil {
			a.logger.Warn("hook failed", "exit_code", result.ExitCode, "err", err)
			return
		}
		a.logger.Debug("hook ran", "command", strings.Join(result.Command, " "))
	}
}

// report logs an operation failure. Operation failures never change the
// exit status.
func (a *app) report(err error) error {
	if err != nil {
		a.logger.Error(err.Error())
	}
	return nil
}

// parseID parses a task id argument.
func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q: must be a number", s)
	}
	return id, nil
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.stdout, "task-cli version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "task-cli - track tasks in a local JSON file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  task-cli [global options] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <description>             Add a task")
	fmt.Fprintln(w, "  update <id> <description>     Change a task description")
	fmt.Fprintln(w, "  delete <id>                   Delete a task")
	fmt.Fprintln(w, "  mark-todo <id>                Set status to To do")
	fmt.Fprintln(w, "  mark-in-progress <id>         Set status to In Progress")
	fmt.Fprintln(w, "  mark-done <id>                Set status to Done")
	fmt.Fprintln(w, "  list [status]                 List tasks, optionally by status")
	fmt.Fprintln(w, "  tui                           Launch terminal viewer")
	fmt.Fprintln(w, "  doctor [-v]                   Check config and task file validity")
	fmt.Fprintln(w, "  history [-n N] [-f] [-raw]    Show the change history")
	fmt.Fprintln(w, "  config [-example]             Show effective configuration")
	fmt.Fprintln(w, "  version                       Show version information")
	fmt.Fprintln(w, "  help                          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Statuses for list: %s\n", strings.Join(task.FilterTokens(), ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
