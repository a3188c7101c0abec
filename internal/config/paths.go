package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvePaths fills in ProjectRoot and turns task_file and log_dir into
// usable paths. A relative task_file is anchored at the project root so
// every command in the same directory sees the same store. log_dir stays
// relative if given that way; the history journal resolves it later.
func resolvePaths(cfg *Config) error {
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.TaskFile = resolveTaskFile(cfg.ProjectRoot, cfg.TaskFile)
	return nil
}

// resolveTaskFile expands taskFile and joins it onto root unless it is
// already absolute. An empty value selects DefaultTaskFile.
func resolveTaskFile(root, taskFile string) string {
	taskFile = expandPath(strings.TrimSpace(taskFile))
	if taskFile == "" {
		taskFile = DefaultTaskFile
	}
	if filepath.IsAbs(taskFile) {
		return filepath.Clean(taskFile)
	}
	return filepath.Join(root, taskFile)
}

// expandPath expands $VAR and ${VAR} references and a leading ~ or ~/.
// Unset variables expand to the empty string, as in a shell.
func expandPath(p string) string {
	if p == "" {
		return p
	}
	expanded := os.ExpandEnv(p)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") && !strings.HasPrefix(expanded, `~\`) {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}
