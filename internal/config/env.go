package config

import (
	"os"

	"github.com/nibzard/task-cli/internal/utils"
)

// Environment variable names.
const (
	EnvTaskFile      = "TASK_CLI_FILE"
	EnvLogDir        = "TASK_CLI_LOG_DIR"
	EnvHistory       = "TASK_CLI_HISTORY"
	EnvHook          = "TASK_CLI_HOOK"
	EnvLogLevel      = "TASK_CLI_LOG_LEVEL"
	EnvLogFormat     = "TASK_CLI_LOG_FORMAT"
	EnvLogTimestamps = "TASK_CLI_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASK_CLI_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvTaskFile); v != "" {
		cfg.TaskFile = v
		setEnv("task_file")
	}
	if v := os.Getenv(EnvLogDir); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
	if v := os.Getenv(EnvHistory); v != "" {
		cfg.History = utils.BoolFromString(v)
		setEnv("history")
	}
	if v := os.Getenv(EnvHook); v != "" {
		cfg.HookCommand = v
		setEnv("hook_command")
	}

	// Logging configuration
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = utils.BoolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = utils.BoolFromString(v)
		setEnv("log_caller")
	}
}
