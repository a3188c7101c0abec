package logging

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HistoryFileName is the journal file inside a history directory.
const HistoryFileName = "history.jsonl"

// HistoryEvent is one journal line.
type HistoryEvent struct {
	Time        time.Time `json:"time"`
	Action      string    `json:"action"`
	TaskID      int       `json:"task_id"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
}

// History appends events to a task file's journal.
type History struct {
	Dir  string
	Path string
	file *os.File
}

// OpenHistory opens (creating if needed) the journal for taskFile under baseDir.
func OpenHistory(baseDir, taskFile string) (*History, error) {
	path, err := HistoryPath(baseDir, taskFile)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	return &History{Dir: dir, Path: path, file: file}, nil
}

// Record appends one event. A zero Time is replaced with the current time.
func (h *History) Record(event HistoryEvent) error {
	if h == nil || h.file == nil {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	event.Time = event.Time.UTC()
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal history event: %w", err)
	}
	data = append(data, '\n')
	if _, err := h.file.Write(data); err != nil {
		return fmt.Errorf("write history event: %w", err)
	}
	return nil
}

// Close closes the journal file.
func (h *History) Close() error {
	if h == nil || h.file == nil {
		return nil
	}
	return h.file.Close()
}

// HistoryPath returns the journal path for taskFile without creating anything.
func HistoryPath(baseDir, taskFile string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}
	if taskFile == "" {
		return "", fmt.Errorf("task file is empty")
	}

	absTaskFile := taskFile
	if abs, err := filepath.Abs(taskFile); err == nil {
		absTaskFile = abs
	}
	baseDir = resolveBaseDir(baseDir, filepath.Dir(absTaskFile))

	return filepath.Join(baseDir, historySlug(absTaskFile), HistoryFileName), nil
}

// ReadHistory parses every event in a journal. Malformed lines are skipped.
func ReadHistory(path string) ([]HistoryEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}
	var events []HistoryEvent
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var ev HistoryEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

func historySlug(taskFile string) string {
	name := filepath.Base(filepath.Dir(taskFile))
	return fmt.Sprintf("%s-%s", slugify(name), hashPath(taskFile))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "project"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" || slug == "." || slug == ".." {
		return "project"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}
