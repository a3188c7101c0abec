package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveExecutable finds command either as a path or on PATH and checks
// that it is a runnable file. It returns the resolved path.
func ResolveExecutable(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("command is empty")
	}

	path := command
	info, err := os.Stat(path)
	if err != nil {
		resolved, lookErr := exec.LookPath(command)
		if lookErr != nil {
			return "", fmt.Errorf("not found: %w", lookErr)
		}
		path = resolved
		if info, err = os.Stat(path); err != nil {
			return "", err
		}
	}
	if info.IsDir() {
		return path, fmt.Errorf("%s is a directory", path)
	}
	if !IsExecutable(path, info) {
		return path, fmt.Errorf("%s is not executable", path)
	}
	return path, nil
}

// IsExecutable reports whether info describes a file the OS can run.
// On Windows this is decided by extension, elsewhere by mode bits.
func IsExecutable(path string, info os.FileInfo) bool {
	if info == nil {
		return false
	}
	if runtime.GOOS == "windows" {
		return IsWindowsExecutable(path)
	}
	return info.Mode().Perm()&0111 != 0
}

// WindowsExecutableExtensions returns a map of lowercase Windows executable
// extensions (with leading dot) to true, parsed from the PATHEXT environment
// variable. Returns a default set if PATHEXT is unset.
func WindowsExecutableExtensions() map[string]bool {
	exts := map[string]bool{}
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		pathext = ".COM;.EXE;.BAT;.CMD"
	}
	for _, ext := range strings.Split(pathext, ";") {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[strings.ToLower(ext)] = true
	}
	return exts
}

// IsWindowsExecutable returns true if the given file path has a Windows
// executable extension according to the PATHEXT environment variable.
func IsWindowsExecutable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	return WindowsExecutableExtensions()[ext]
}
