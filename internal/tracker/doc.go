// Package tracker owns the in-memory task collection and keeps it in sync
// with the backing JSON file.
//
// A Manager is created with Open, which creates the store when it is
// missing and loads it. Every mutating operation rewrites the whole file.
// Confirmations and listings are printed to the Manager's output writer;
// failures are returned as errors that match ErrNotFound, ErrUnknownCommand,
// ErrUnknownStatus or ErrNoTasks with errors.Is.
//
// Successful mutations are reported to change listeners, which the CLI
// uses to append to the history journal and to run the configured hook.
package tracker
