// Package hooks invokes the external command configured to run after each
// task mutation.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Options configures a hook invocation.
type Options struct {
	Command  string
	Action   string
	TaskID   int
	Status   string
	TaskFile string
	WorkDir  string
	Stdout   io.Writer
	Stderr   io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as
//
//	<command> <action> <task-id> <status> <task-file>
//
// An empty command is a no-op. The task file must exist and be a regular file.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if opts.Action == "" {
		return Result{}, fmt.Errorf("hook action is empty")
	}

	info, err := os.Stat(opts.TaskFile)
	if err != nil {
		return Result{}, fmt.Errorf("stat task file: %w", err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("task file is a directory: %s", opts.TaskFile)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{opts.Action, strconv.Itoa(opts.TaskID), opts.Status, opts.TaskFile}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)

	err = cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
