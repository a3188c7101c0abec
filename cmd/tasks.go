package cmd

import (
	"context"
	"fmt"
	"strings"
)

// addCommand adds a task. Several words are joined with spaces.
func (a *app) addCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: task-cli add <description>")
	}
	mgr, done := a.openManager(ctx, true)
	defer done()

	_, err := mgr.Add(strings.Join(args, " "))
	return a.report(err)
}

func (a *app) updateCommand(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: task-cli update <id> <description>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	mgr, done := a.openManager(ctx, true)
	defer done()

	_, err = mgr.Update(id, strings.Join(args[1:], " "))
	return a.report(err)
}

func (a *app) deleteCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: task-cli delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	mgr, done := a.openManager(ctx, true)
	defer done()

	_, err = mgr.Delete(id)
	return a.report(err)
}

func (a *app) markCommand(ctx context.Context, command string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: task-cli %s <id>", command)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	mgr, done := a.openManager(ctx, true)
	defer done()

	_, err = mgr.UpdateStatus(command, id)
	return a.report(err)
}

// listCommand lists every task, or those matching a status filter.
// "list in progress" is treated as the single token "in progress".
func (a *app) listCommand(ctx context.Context, args []string) error {
	mgr, done := a.openManager(ctx, false)
	defer done()

	if len(args) == 0 {
		return a.report(mgr.ListAll())
	}
	return a.report(mgr.ListByStatus(strings.Join(args, " ")))
}
