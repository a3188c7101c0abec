package config

import (
	"os"
	"path/filepath"
)

const configFileName = "task-cli.toml"

// findProjectConfigFile returns task-cli.toml or .task-cli.toml from the
// working directory, whichever exists first.
func findProjectConfigFile() string {
	return firstRegularFile(configFileName, "."+configFileName)
}

// findUserConfigFile returns the first existing user-level config file from
// userConfigCandidates.
func findUserConfigFile() string {
	return firstRegularFile(userConfigCandidates()...)
}

// userConfigCandidates lists user config locations in lookup order:
// ~/.task-cli/task-cli.toml, then task-cli/task-cli.toml under the OS
// config dir (XDG_CONFIG_HOME, ~/Library/Application Support, %APPDATA%).
func userConfigCandidates() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".task-cli", configFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "task-cli", configFileName))
	}
	return paths
}

func firstRegularFile(paths ...string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.LogDir = DefaultLogDir
	cfg.History = DefaultHistory
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

// GetConfigFile returns the highest-priority config file that was read.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
