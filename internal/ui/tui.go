// Package ui provides the optional terminal viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/task"
)

// Source is the read-only view of a task collection the TUI displays.
type Source interface {
	Path() string
	Load() error
	Tasks() []task.Task
	Filter(status task.Status) []task.Task
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	watch  bool
	logger *log.Logger
}

// WithWatch toggles reloading when the task file changes on disk.
func WithWatch(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.watch = enabled
	}
}

// WithLogger sets the logger for diagnostics emitted before the viewer
// takes over the terminal.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI starts the viewer for source. It requires stdout to be a terminal.
func RunTUI(ctx context.Context, source Source, opts ...TUIOption) error {
	c := &tuiConfig{
		watch:  true,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan struct{}
	if c.watch {
		// Nothing may write to the terminal while the program owns it.
		watcher, err := newFileWatcher(source.Path(), logging.Discard())
		if err != nil {
			c.logger.Warn("live reload disabled", "err", err)
		} else {
			defer watcher.Close()
			go watcher.Run(ctx)
			changes = watcher.Changes()
		}
	}

	model := newTUIModel(source, changes)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type tuiModel struct {
	source   Source
	changes  <-chan struct{}
	loadErr  error
	tasks    []task.Task
	counts   map[task.Status]int
	filter   task.Status
	filtered bool
	showHelp bool
	watching bool
}

type fileChangedMsg struct{}

type watchClosedMsg struct{}

func newTUIModel(source Source, changes <-chan struct{}) *tuiModel {
	return &tuiModel{
		source:   source,
		changes:  changes,
		watching: changes != nil,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	if m.changes == nil {
		return nil
	}
	return waitForChange(m.changes)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.setFilter(task.StatusTodo)
		case "2":
			m.setFilter(task.StatusInProgress)
		case "3":
			m.setFilter(task.StatusDone)
		case "0":
			m.filtered = false
			m.applyFilter()
		}
		return m, nil
	case fileChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)
	case watchClosedMsg:
		m.watching = false
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.watching)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(styles.Error.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	}

	writeOverview(&b, m.counts)
	if m.filtered {
		b.WriteString(styles.Filter.Render(fmt.Sprintf("Filter: %s (0 to clear)", m.filter)) + "\n\n")
	}
	writeTasks(&b, m.tasks, m.filtered)
	b.WriteString(styles.Muted.Render("Task file: "+m.source.Path()) + "\n\n")
	writeFooter(&b, m.watching)
	return b.String()
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return watchClosedMsg{}
		}
		return fileChangedMsg{}
	}
}

func (m *tuiModel) setFilter(status task.Status) {
	m.filter = status
	m.filtered = true
	m.applyFilter()
}

// refresh reloads the source. A failed load still shows whatever the
// source holds afterwards, which is an empty list.
func (m *tuiModel) refresh() {
	m.loadErr = m.source.Load()
	m.counts = countByStatus(m.source.Tasks())
	m.applyFilter()
}

func (m *tuiModel) applyFilter() {
	if m.filtered {
		m.tasks = m.source.Filter(m.filter)
		return
	}
	m.tasks = m.source.Tasks()
}

func countByStatus(tasks []task.Task) map[task.Status]int {
	counts := make(map[task.Status]int, len(task.Statuses))
	for _, s := range task.Statuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[t.Status]++
	}
	return counts
}

func writeTitle(b *strings.Builder) {
	b.WriteString(styles.Title.Render("Task Tracker") + "\n\n")
}

func writeOverview(b *strings.Builder, counts map[task.Status]int) {
	parts := make([]string, 0, len(task.Statuses))
	for _, s := range task.Statuses {
		parts = append(parts, statusStyle(s).Render(fmt.Sprintf("%s: %d", s, counts[s])))
	}
	b.WriteString(styles.Counts.Render(strings.Join(parts, "  ")) + "\n\n")
}

func writeTasks(b *strings.Builder, tasks []task.Task, filtered bool) {
	b.WriteString(styles.Section.Render("Tasks") + "\n\n")
	if len(tasks) == 0 {
		if filtered {
			b.WriteString("  No tasks match the filter.\n\n")
		} else {
			b.WriteString("  No tasks available.\n\n")
		}
		return
	}
	for _, t := range tasks {
		b.WriteString(formatTask(t) + "\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString(styles.Section.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, esc, ctrl+c  Quit\n")
	b.WriteString("  r, F5           Reload task file\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  1               Filter by To do\n")
	b.WriteString("  2               Filter by In Progress\n")
	b.WriteString("  3               Filter by Done\n")
	b.WriteString("  0               Clear filter\n\n")
}

func writeFooter(b *strings.Builder, watching bool) {
	footer := "Press h for help | q to quit"
	if watching {
		footer += " | Watching for changes"
	}
	b.WriteString(styles.Muted.Render(footer) + "\n")
}

func formatTask(t task.Task) string {
	icon := statusStyle(t.Status).Render("[" + statusIcon(t.Status) + "]")
	line := fmt.Sprintf("  %s %3d  %s", icon, t.ID, t.Description)
	updated := t.UpdatedAt.Local().Format("2006-01-02 15:04")
	return line + "  " + styles.Muted.Render(updated)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
