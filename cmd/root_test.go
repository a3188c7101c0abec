// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
)

// isolate points HOME and the working directory at temp dirs and clears
// TASK_CLI_* so the host config cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		config.EnvTaskFile, config.EnvLogDir, config.EnvHistory, config.EnvHook,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogTimestamps, config.EnvLogCaller,
	} {
		t.Setenv(name, "")
	}
	wd := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return wd
}

// runCLI runs the CLI with captured output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

// mustRun runs the CLI and fails the test on a usage error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\nstderr: %s", args, err, errOut)
	}
	return out
}

func loadTasks(t *testing.T, path string) []task.Task {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tasks, err := task.Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	return tasks
}

// TestRun tests the top-level dispatch.
func TestRun(t *testing.T) {
	t.Run("shows help with -h flag", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "-h")
		if !strings.Contains(out, "Usage:") {
			t.Errorf("expected usage, got %q", out)
		}
	})

	t.Run("shows help with help command", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "help")
		if !strings.Contains(out, "mark-in-progress") {
			t.Errorf("expected command list, got %q", out)
		}
	})

	t.Run("shows version", func(t *testing.T) {
		isolate(t)
		for _, args := range [][]string{{"-v"}, {"--version"}, {"version"}} {
			out := mustRun(t, args...)
			if !strings.Contains(out, "task-cli version "+Version) {
				t.Errorf("%v: got %q", args, out)
			}
		}
	})

	t.Run("unknown command returns error", func(t *testing.T) {
		isolate(t)
		_, _, err := runCLI(t, "unknown-command")
		if !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("expected ErrUnknownCommand, got %v", err)
		}
	})

	t.Run("no command returns error", func(t *testing.T) {
		isolate(t)
		if _, _, err := runCLI(t); err == nil {
			t.Error("expected error without a command")
		}
	})

	t.Run("invalid log level is a config error", func(t *testing.T) {
		isolate(t)
		if _, _, err := runCLI(t, "-log-level", "loud", "list"); err == nil {
			t.Error("expected config error")
		}
	})
}

func TestAddAndList(t *testing.T) {
	wd := isolate(t)

	out := mustRun(t, "add", "Buy", "groceries")
	if !strings.Contains(out, "Task added successfully (ID: 1)") {
		t.Errorf("add output: %q", out)
	}
	mustRun(t, "add", "Write report")

	tasks := loadTasks(t, filepath.Join(wd, config.DefaultTaskFile))
	if len(tasks) != 2 {
		t.Fatalf("tasks: got %d, want 2", len(tasks))
	}
	if tasks[0].Description != "Buy groceries" || tasks[0].Status != task.StatusTodo {
		t.Errorf("first task: %+v", tasks[0])
	}

	out = mustRun(t, "list")
	for _, want := range []string{"Listing all tasks:", "Description: Buy groceries", "Description: Write report"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q: %q", want, out)
		}
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"add without description", []string{"add"}},
		{"update without description", []string{"update", "1"}},
		{"update with non-numeric id", []string{"update", "one", "x"}},
		{"delete without id", []string{"delete"}},
		{"delete with non-numeric id", []string{"delete", "abc"}},
		{"mark with extra args", []string{"mark-done", "1", "2"}},
		{"mark with non-numeric id", []string{"mark-todo", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("expected usage error for %v", tt.args)
			}
		})
	}
}

func TestOperationErrorsAreLogged(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "only task")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"update missing id", []string{"update", "9", "x"}, "task not found"},
		{"delete missing id", []string{"delete", "9"}, "task not found"},
		{"mark missing id", []string{"mark-done", "9"}, "task not found"},
		{"unknown status", []string{"list", "finished"}, "unknown status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := mustRun(t, tt.args...)
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q: %q", tt.want, out)
			}
			if strings.Contains(out, "Listing") {
				t.Errorf("nothing should be listed: %q", out)
			}
		})
	}
}

func TestUpdateMarkAndFilter(t *testing.T) {
	wd := isolate(t)
	mustRun(t, "add", "first")
	mustRun(t, "add", "second")

	out := mustRun(t, "update", "1", "first", "renamed")
	if !strings.Contains(out, "Task updated successfully (ID: 1)") {
		t.Errorf("update output: %q", out)
	}
	mustRun(t, "mark-in-progress", "1")
	mustRun(t, "mark-done", "2")

	tasks := loadTasks(t, filepath.Join(wd, config.DefaultTaskFile))
	if tasks[0].Description != "first renamed" || tasks[0].Status != task.StatusInProgress {
		t.Errorf("task 1: %+v", tasks[0])
	}
	if tasks[1].Status != task.StatusDone {
		t.Errorf("task 2: %+v", tasks[1])
	}

	out = mustRun(t, "list", "done")
	if !strings.Contains(out, "Description: second") || strings.Contains(out, "first renamed") {
		t.Errorf("list done: %q", out)
	}

	out = mustRun(t, "list", "in", "progress")
	if !strings.Contains(out, "Listing tasks with status 'In Progress':") || !strings.Contains(out, "first renamed") {
		t.Errorf("list in progress: %q", out)
	}

	out = mustRun(t, "list", "todo")
	if !strings.Contains(out, "No tasks with status 'To do'") {
		t.Errorf("list todo: %q", out)
	}
}

func TestDeleteAllThenList(t *testing.T) {
	isolate(t)
	mustRun(t, "add", "a")
	mustRun(t, "add", "b")
	mustRun(t, "delete", "1")
	mustRun(t, "delete", "2")

	out := mustRun(t, "list")
	if !strings.Contains(out, "No tasks available") {
		t.Errorf("list output: %q", out)
	}
	out = mustRun(t, "delete", "1")
	if !strings.Contains(out, "no tasks available") {
		t.Errorf("delete on empty store: %q", out)
	}
}

func TestFileFlagSelectsStore(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "work.json")
	mustRun(t, "-file", path, "add", "elsewhere")

	tasks := loadTasks(t, path)
	if len(tasks) != 1 || tasks[0].Description != "elsewhere" {
		t.Errorf("tasks: %+v", tasks)
	}
}

func TestHistory(t *testing.T) {
	isolate(t)

	out := mustRun(t, "history")
	if !strings.Contains(out, "No history recorded yet.") {
		t.Errorf("empty history: %q", out)
	}

	mustRun(t, "add", "Buy milk")
	mustRun(t, "mark-done", "1")
	mustRun(t, "delete", "1")
	mustRun(t, "list")

	out = mustRun(t, "history")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("history lines: got %d, want 3: %q", len(lines), out)
	}
	if !strings.Contains(lines[0], "add") || !strings.Contains(lines[0], "Buy milk") {
		t.Errorf("first entry: %q", lines[0])
	}
	if !strings.Contains(lines[1], "status") || !strings.Contains(lines[1], "[Done]") {
		t.Errorf("second entry: %q", lines[1])
	}

	out = mustRun(t, "history", "-n", "1")
	if strings.Count(strings.TrimSpace(out), "\n") != 0 || !strings.Contains(out, "delete") {
		t.Errorf("history -n 1: %q", out)
	}

	out = mustRun(t, "history", "-raw")
	if !strings.Contains(out, `"action":"add"`) {
		t.Errorf("history -raw: %q", out)
	}
}

func TestHistoryDisabled(t *testing.T) {
	isolate(t)
	mustRun(t, "-history=false", "add", "quiet")
	out := mustRun(t, "history")
	if !strings.Contains(out, "No history recorded yet.") {
		t.Errorf("history should be empty: %q", out)
	}
}

func TestHookRunsAfterMutation(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}
	isolate(t)

	record := filepath.Join(t.TempDir(), "hook.log")
	hook := filepath.Join(t.TempDir(), "hook.sh")
	script := "#!/bin/sh\necho \"$1 $2 $3\" >> " + record + "\n"
	if err := os.WriteFile(hook, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	mustRun(t, "-hook", hook, "add", "hooked")
	mustRun(t, "-hook", hook, "mark-in-progress", "1")
	mustRun(t, "-hook", hook, "update", "99", "missing")

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("hook did not run: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{"add 1 To do", "status 1 In Progress"}
	if len(lines) != len(want) {
		t.Fatalf("hook calls: got %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("hook call %d: got %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestFailingHookDoesNotAbort(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts use /bin/sh")
	}
	wd := isolate(t)
	hook := filepath.Join(t.TempDir(), "hook.sh")
	if err := os.WriteFile(hook, []byte("#!/bin/sh\nexit 3\n"), 0755); err != nil {
		t.Fatal(err)
	}

	out := mustRun(t, "-hook", hook, "add", "still saved")
	if !strings.Contains(out, "hook failed") {
		t.Errorf("expected hook warning: %q", out)
	}
	if tasks := loadTasks(t, filepath.Join(wd, config.DefaultTaskFile)); len(tasks) != 1 {
		t.Errorf("task not saved: %+v", tasks)
	}
}

func TestDoctor(t *testing.T) {
	t.Run("passes on a fresh project", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "doctor")
		if !strings.Contains(out, "All checks passed") {
			t.Errorf("doctor output: %q", out)
		}
	})

	t.Run("verbose lists tasks", func(t *testing.T) {
		isolate(t)
		mustRun(t, "add", "visible")
		out := mustRun(t, "doctor", "-v")
		if !strings.Contains(out, "Tasks: 1") || !strings.Contains(out, "visible") || !strings.Contains(out, "Entries: 1") {
			t.Errorf("doctor -v output: %q", out)
		}
	})

	t.Run("fails on an invalid task file", func(t *testing.T) {
		wd := isolate(t)
		content := `[{"id": 1, "description": "x", "status": "In progress", "created_at": "2024-01-01T10:00:00Z", "updated_at": "2024-01-01T10:00:00Z"}]`
		if err := os.WriteFile(filepath.Join(wd, config.DefaultTaskFile), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		out, _, err := runCLI(t, "doctor")
		if err == nil {
			t.Fatal("expected doctor to fail")
		}
		if !strings.Contains(out, "[0].status") {
			t.Errorf("expected status path in output: %q", out)
		}
	})

	t.Run("fails on a missing hook", func(t *testing.T) {
		isolate(t)
		if _, _, err := runCLI(t, "-hook", "/nonexistent/hook-task-cli", "doctor"); err == nil {
			t.Fatal("expected doctor to fail")
		}
	})
}

func TestConfigCommand(t *testing.T) {
	t.Run("shows sources", func(t *testing.T) {
		isolate(t)
		if err := os.WriteFile("task-cli.toml", []byte("log_level = \"warn\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		out := mustRun(t, "-file", "/tmp/flag.json", "config")
		for _, want := range []string{
			"task-cli.toml",
			`task_file       "/tmp/flag.json" (flag)`,
			`log_level       "warn" (project file)`,
			`log_format      "text" (default)`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("config output missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("prints example", func(t *testing.T) {
		isolate(t)
		out := mustRun(t, "config", "-example")
		if out != config.ExampleConfig() {
			t.Errorf("example mismatch:\n%s", out)
		}
	})
}

func TestTUIRequiresTTY(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "tui")
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Errorf("expected TTY error, got %v", err)
	}
}

func TestViewerManagerDoesNotLog(t *testing.T) {
	wd := isolate(t)
	if err := os.WriteFile(filepath.Join(wd, config.DefaultTaskFile), []byte("[{"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	a := &app{
		cfg:     cfg,
		sources: &config.ConfigWithSources{Config: cfg},
		stdout:  &stdout,
		stderr:  &stderr,
		logger:  logging.NewConsoleLoggerFromConfig(&stdout, "debug", "text", false, false),
	}

	mgr, done := a.openViewerManager(context.Background())
	defer done()
	if err := mgr.Load(); err == nil {
		t.Fatal("expected load error for a malformed store")
	}
	if mgr.ExistsAny() {
		t.Error("expected empty collection")
	}
	if stdout.Len() != 0 || stderr.Len() != 0 {
		t.Errorf("viewer store wrote to the terminal:\nstdout: %q\nstderr: %q", stdout.String(), stderr.String())
	}

	cli, cliDone := a.openManager(context.Background(), false)
	defer cliDone()
	_ = cli.Load()
	if !strings.Contains(stdout.String(), "malformed") {
		t.Errorf("CLI store should log load errors, got %q", stdout.String())
	}
}
