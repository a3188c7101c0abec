package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nibzard/task-cli/internal/task"
)

// EnsureStore creates the backing file with an empty list if it does not exist.
func (m *Manager) EnsureStore() error {
	_, err := os.Stat(m.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat task file: %w", err)
	}

	m.logger.Info("task file does not exist, creating it", "path", m.path)
	if dir := filepath.Dir(m.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create task file dir: %w", err)
		}
	}
	data, err := task.Encode(nil)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(m.path, data); err != nil {
		return fmt.Errorf("create task file: %w", err)
	}
	m.logger.Info("task file created", "path", m.path)
	return nil
}

// Load replaces the in-memory collection with the file contents. On failure
// the error is logged, the collection is emptied and the error is returned.
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		m.tasks = nil
		err = fmt.Errorf("read task file: %w", err)
		m.logger.Error("could not load tasks, starting with an empty list", "err", err)
		return err
	}
	tasks, err := task.Decode(data)
	if err != nil {
		m.tasks = nil
		m.logger.Error("task file is empty or malformed, starting with an empty list", "path", m.path, "err", err)
		return err
	}
	m.tasks = tasks
	m.logger.Debug("loaded tasks", "path", m.path, "count", len(tasks))
	return nil
}

// Save writes the full collection to the backing file. The in-memory
// collection is left as is when the write fails.
func (m *Manager) Save() error {
	data, err := task.Encode(m.tasks)
	if err != nil {
		m.logger.Error("could not save tasks", "err", err)
		return err
	}
	if err := writeFileAtomic(m.path, data); err != nil {
		err = fmt.Errorf("write task file: %w", err)
		m.logger.Error("could not save tasks", "err", err)
		return err
	}
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// over path, so readers never observe a half-written store.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
