package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status represents a task status.
type Status int

const (
	StatusTodo Status = iota
	StatusInProgress
	StatusDone
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// String returns the canonical stored form of the status.
func (s Status) String() string {
	switch s {
	case StatusTodo:
		return "To do"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s >= StatusTodo && s <= StatusDone
}

// MarshalJSON encodes the status as its canonical string.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a canonical status string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	for _, candidate := range Statuses {
		if candidate.String() == raw {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("invalid status %q, must be one of: %s", raw, strings.Join(statusNames(), ", "))
}

func statusNames() []string {
	names := make([]string, 0, len(Statuses))
	for _, s := range Statuses {
		names = append(names, s.String())
	}
	return names
}

// statusFilters maps accepted filter tokens (lowercase) to statuses.
var statusFilters = map[string]Status{
	"todo":        StatusTodo,
	"to do":       StatusTodo,
	"in-progress": StatusInProgress,
	"in progress": StatusInProgress,
	"done":        StatusDone,
}

// FilterTokens returns the accepted status filter tokens in a stable order.
func FilterTokens() []string {
	return []string{"todo", "to do", "in-progress", "in progress", "done"}
}

// ParseStatus normalizes a user-supplied status filter. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseStatus(token string) (Status, bool) {
	s, ok := statusFilters[strings.ToLower(strings.TrimSpace(token))]
	return s, ok
}

// Command is a status-mark command.
type Command int

const (
	CommandMarkTodo Command = iota
	CommandMarkInProgress
	CommandMarkDone
)

// Commands lists every mark command.
var Commands = []Command{CommandMarkTodo, CommandMarkInProgress, CommandMarkDone}

// String returns the CLI token for the command.
func (c Command) String() string {
	switch c {
	case CommandMarkTodo:
		return "mark-todo"
	case CommandMarkInProgress:
		return "mark-in-progress"
	case CommandMarkDone:
		return "mark-done"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Status returns the status the command assigns.
func (c Command) Status() Status {
	switch c {
	case CommandMarkInProgress:
		return StatusInProgress
	case CommandMarkDone:
		return StatusDone
	default:
		return StatusTodo
	}
}

// ParseCommand maps a CLI token to a mark command.
func ParseCommand(token string) (Command, bool) {
	for _, c := range Commands {
		if c.String() == token {
			return c, true
		}
	}
	return 0, false
}

// Task represents a single to-do item.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New returns a task with the default status and both timestamps set to now.
func New(id int, description string, now time.Time) Task {
	now = now.UTC()
	return Task{
		ID:          id,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetDescription replaces the description and sets updated_at.
func (t *Task) SetDescription(description string, now time.Time) {
	t.Description = description
	t.UpdatedAt = now.UTC()
}

// SetStatus replaces the status and sets updated_at.
func (t *Task) SetStatus(status Status, now time.Time) {
	t.Status = status
	t.UpdatedAt = now.UTC()
}

// String renders the task on a single line.
func (t Task) String() string {
	return fmt.Sprintf("ID: %d | Description: %s | Status: %s | Created: %s | Updated: %s",
		t.ID, t.Description, t.Status,
		t.CreatedAt.Local().Format(displayTimeLayout),
		t.UpdatedAt.Local().Format(displayTimeLayout),
	)
}

const displayTimeLayout = "2006-01-02 15:04:05"

// ParseError reports a store that could not be decoded.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse task file: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Decode parses the contents of a store. Empty input and any document that
// fails ValidateDocument (missing fields, unknown status, duplicate ids) is a
// parse error.
func Decode(data []byte) ([]Task, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, &ParseError{Err: fmt.Errorf("file is empty")}
	}
	if err := ValidateDocument(data).Err(); err != nil {
		return nil, err
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, &ParseError{Err: err}
	}
	return tasks, nil
}

// Encode serializes tasks with 4-space indentation and a trailing newline.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return append(data, '\n'), nil
}
