// Package logging provides console logging and the mutation history journal.
//
// Console output goes through charmbracelet/log so that operation errors,
// warnings and debug traces share one leveled, human-readable stream.
//
// The history journal is a JSONL file, one event per successful change:
//
//	{"time":"2024-01-01T10:00:00Z","action":"add","task_id":1,"description":"Buy milk","status":"To do"}
//
// Journals live under the configured log directory, in a subdirectory named
// after the task file's directory plus a short hash of the task file path, so
// that different task files never share a journal.
package logging
