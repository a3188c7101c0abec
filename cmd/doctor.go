package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/utils"
)

// doctorCommand checks config, the task file and the history journal.
func (a *app) doctorCommand(args []string) error {
	flags := flag.NewFlagSet("task-cli doctor", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	verbose := flags.Bool("v", false, "Verbose output")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if len(flags.Args()) > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}

	w := a.stdout
	fmt.Fprintln(w, "task-cli doctor")
	fmt.Fprintln(w, "===============")
	fmt.Fprintln(w)

	allOK := true

	fmt.Fprintf(w, "Project root: %s\n", a.cfg.ProjectRoot)
	if _, err := os.Stat(a.cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config:")
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(w, "  ✅ No config file, using defaults")
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(w, "  ✅ Loaded %s\n", f)
	}
	fmt.Fprintf(w, "  ✅ Log level: %s, format: %s\n", a.cfg.LogLevel, a.cfg.LogFormat)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Task file: %s\n", a.cfg.TaskFile)
	if !a.checkTaskFile(*verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	if !a.checkHistory(*verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	if a.cfg.HookCommand != "" {
		fmt.Fprintf(w, "Hook: %s\n", a.cfg.HookCommand)
		if path, err := utils.ResolveExecutable(a.cfg.HookCommand); err != nil {
			fmt.Fprintf(w, "  ❌ %v\n", err)
			allOK = false
		} else {
			fmt.Fprintf(w, "  ✅ %s\n", path)
		}
		fmt.Fprintln(w)
	}

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed.")
	return fmt.Errorf("doctor checks failed")
}

func (a *app) checkTaskFile(verbose bool) bool {
	w := a.stdout
	info, err := os.Stat(a.cfg.TaskFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (created on first use)")
		return true
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	data, err := os.ReadFile(a.cfg.TaskFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Read error: %v\n", err)
		return false
	}
	result := task.ValidateDocument(data)
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	if verbose {
		tasks, err := task.Decode(data)
		if err != nil {
			fmt.Fprintf(w, "  ❌ %v\n", err)
			return false
		}
		fmt.Fprintf(w, "  Tasks: %d\n", len(tasks))
		for _, t := range tasks {
			fmt.Fprintf(w, "    - %s\n", t)
		}
	}
	return true
}

func (a *app) checkHistory(verbose bool) bool {
	w := a.stdout
	if !a.cfg.History {
		fmt.Fprintln(w, "History: disabled")
		return true
	}
	path, err := logging.HistoryPath(a.cfg.LogDir, a.cfg.TaskFile)
	if err != nil {
		fmt.Fprintf(w, "History:\n  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "History: %s\n", path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (created on first change)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")
	if verbose {
		events, err := logging.ReadHistory(path)
		if err != nil {
			fmt.Fprintf(w, "  ❌ %v\n", err)
			return false
		}
		fmt.Fprintf(w, "  Entries: %d\n", len(events))
	}
	return true
}
