package tracker

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
)

// DefaultPath is the store used when Open is given an empty path.
const DefaultPath = "tasks.json"

var (
	ErrNotFound       = errors.New("task not found")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUnknownStatus  = errors.New("unknown status")
	ErrNoTasks        = errors.New("no tasks available")
)

// Change actions passed to listeners.
const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionStatus = "status"
)

// Change describes one successful mutation. For deletes Task holds the
// removed task.
type Change struct {
	Action string
	Task   task.Task
}

// Option configures a Manager.
type Option func(*Manager)

// WithOutput sets where confirmations and listings are printed.
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithLogger sets the logger used for store and operation failures.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithListener registers fn to be called after every persisted mutation.
func WithListener(fn func(Change)) Option {
	return func(m *Manager) { m.listeners = append(m.listeners, fn) }
}

// Manager owns the ordered task collection and its backing file.
type Manager struct {
	path      string
	tasks     []task.Task
	out       io.Writer
	logger    *log.Logger
	now       func() time.Time
	listeners []func(Change)
}

// Open creates a Manager for path, creating the store if it is missing and
// loading it. Store failures are logged and leave the collection empty.
func Open(path string, opts ...Option) *Manager {
	if path == "" {
		path = DefaultPath
	}
	m := &Manager{
		path:   path,
		out:    os.Stdout,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.EnsureStore(); err != nil {
		m.logger.Error("could not create task file", "err", err)
	}
	// Load logs its own failure and leaves the collection empty.
	_ = m.Load()
	return m
}

// Path returns the backing file path.
func (m *Manager) Path() string {
	return m.path
}

// Add appends a new task with the next sequential id and persists it.
func (m *Manager) Add(description string) (task.Task, error) {
	t := task.New(m.nextID(), description, m.now())
	m.tasks = append(m.tasks, t)
	if err := m.Save(); err != nil {
		return t, err
	}
	fmt.Fprintf(m.out, "Task added successfully (ID: %d)\n", t.ID)
	m.notify(ActionAdd, t)
	return t, nil
}

// Update replaces the description of task id and persists it.
func (m *Manager) Update(id int, description string) (task.Task, error) {
	if !m.ExistsAny() {
		return task.Task{}, ErrNoTasks
	}
	idx, err := m.indexOf(id)
	if err != nil {
		return task.Task{}, err
	}
	m.tasks[idx].SetDescription(description, m.now())
	t := m.tasks[idx]
	if err := m.Save(); err != nil {
		return t, err
	}
	fmt.Fprintf(m.out, "Task updated successfully (ID: %d)\n", id)
	m.notify(ActionUpdate, t)
	return t, nil
}

// Delete removes task id and persists the collection.
func (m *Manager) Delete(id int) (task.Task, error) {
	if !m.ExistsAny() {
		return task.Task{}, ErrNoTasks
	}
	idx, err := m.indexOf(id)
	if err != nil {
		return task.Task{}, err
	}
	t := m.tasks[idx]
	m.tasks = append(m.tasks[:idx], m.tasks[idx+1:]...)
	if err := m.Save(); err != nil {
		return t, err
	}
	fmt.Fprintf(m.out, "Task deleted successfully (ID: %d)\n", id)
	m.notify(ActionDelete, t)
	return t, nil
}

// UpdateStatus applies a mark command (mark-todo, mark-in-progress,
// mark-done) to task id and persists it.
func (m *Manager) UpdateStatus(command string, id int) (task.Task, error) {
	cmd, ok := task.ParseCommand(command)
	if !ok {
		return task.Task{}, fmt.Errorf("%w %q", ErrUnknownCommand, command)
	}
	return m.SetStatus(id, cmd.Status())
}

// SetStatus sets the status of task id and persists it.
func (m *Manager) SetStatus(id int, status task.Status) (task.Task, error) {
	if !m.ExistsAny() {
		return task.Task{}, ErrNoTasks
	}
	idx, err := m.indexOf(id)
	if err != nil {
		return task.Task{}, err
	}
	m.tasks[idx].SetStatus(status, m.now())
	t := m.tasks[idx]
	if err := m.Save(); err != nil {
		return t, err
	}
	fmt.Fprintf(m.out, "Task %d status updated to '%s'\n", id, status)
	m.notify(ActionStatus, t)
	return t, nil
}

// ListAll prints every task, or a notice when there are none.
func (m *Manager) ListAll() error {
	if !m.ExistsAny() {
		fmt.Fprintln(m.out, "No tasks available")
		return nil
	}
	fmt.Fprintln(m.out, "Listing all tasks:")
	for _, t := range m.tasks {
		fmt.Fprintln(m.out, t.String())
	}
	return nil
}

// ListByStatus prints the tasks whose status matches the filter token.
// An empty token lists everything. Unknown tokens list nothing.
func (m *Manager) ListByStatus(token string) error {
	if strings.TrimSpace(token) == "" {
		return m.ListAll()
	}
	status, ok := task.ParseStatus(token)
	if !ok {
		return fmt.Errorf("%w %q, valid statuses: %s", ErrUnknownStatus, token, strings.Join(task.FilterTokens(), ", "))
	}
	if !m.ExistsAny() {
		fmt.Fprintln(m.out, "No tasks available")
		return nil
	}

	matches := m.Filter(status)
	if len(matches) == 0 {
		fmt.Fprintf(m.out, "No tasks with status '%s'\n", status)
		return nil
	}
	fmt.Fprintf(m.out, "Listing tasks with status '%s':\n", status)
	for _, t := range matches {
		fmt.Fprintln(m.out, t.String())
	}
	return nil
}

// ExistsAny reports whether the collection is non-empty.
func (m *Manager) ExistsAny() bool {
	return len(m.tasks) > 0
}

// FindByID returns a copy of task id.
func (m *Manager) FindByID(id int) (task.Task, error) {
	idx, err := m.indexOf(id)
	if err != nil {
		return task.Task{}, err
	}
	return m.tasks[idx], nil
}

// Tasks returns a copy of the collection in insertion order.
func (m *Manager) Tasks() []task.Task {
	out := make([]task.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}

// Filter returns copies of the tasks with the given status.
func (m *Manager) Filter(status task.Status) []task.Task {
	var out []task.Task
	for _, t := range m.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

func (m *Manager) indexOf(id int) (int, error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no task with ID %d", ErrNotFound, id)
}

// nextID is one past the highest id in use, so ids stay unique after deletes.
func (m *Manager) nextID() int {
	highest := 0
	for _, t := range m.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

func (m *Manager) notify(action string, t task.Task) {
	change := Change{Action: action, Task: t}
	for _, fn := range m.listeners {
		fn(change)
	}
}
