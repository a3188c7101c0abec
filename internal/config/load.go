package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.task-cli/task-cli.toml or OS-specific config dir)
// 3. Project config file (task-cli.toml or .task-cli.toml in current directory)
// 4. .env file in the current directory
// 5. Environment variables
// 6. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names to their sources.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cws := &ConfigWithSources{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}
	cfg := cws.Config

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		cws.Sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, cws.Sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		cws.Files = append(cws.Files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, cws.Sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		cws.Files = append(cws.Files, projectConfigFile)
	}

	// 4. Populate the environment from .env without clobbering real variables
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	// 5. Override from environment
	loadFromEnv(cfg, cws.Sources)

	// 6. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, cws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 7. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cws, nil
}

// loadConfigFile decodes TOML config from path, applying only the keys present.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return err
	}
	applyFileConfig(cfg, &fc, sources, source)
	return nil
}

func applyFileConfig(cfg *Config, fc *fileConfig, sources map[string]ConfigSource, source ConfigSource) {
	setString := func(field string, dst *string, v *string) {
		if v == nil {
			return
		}
		*dst = *v
		sources[field] = source
	}
	setBool := func(field string, dst *bool, v *bool) {
		if v == nil {
			return
		}
		*dst = *v
		sources[field] = source
	}

	setString("task_file", &cfg.TaskFile, fc.TaskFile)
	setString("log_dir", &cfg.LogDir, fc.LogDir)
	setBool("history", &cfg.History, fc.History)
	setString("hook_command", &cfg.HookCommand, fc.HookCommand)
	setString("log_level", &cfg.LogLevel, fc.LogLevel)
	setString("log_format", &cfg.LogFormat, fc.LogFormat)
	setBool("log_timestamps", &cfg.LogTimestamps, fc.LogTimestamps)
	setBool("log_caller", &cfg.LogCaller, fc.LogCaller)
}

// loadDotEnv loads ./.env if present. Existing variables win.
func loadDotEnv() error {
	info, err := os.Stat(dotEnvFile)
	if err != nil || info.IsDir() {
		return nil
	}
	if err := godotenv.Load(dotEnvFile); err != nil {
		return fmt.Errorf("loading %s: %w", dotEnvFile, err)
	}
	return nil
}

const dotEnvFile = ".env"

// finalizeConfig computes derived values and validates paths.
func finalizeConfig(cfg *Config) error {
	if err := resolvePaths(cfg); err != nil {
		return err
	}

	switch cfg.LogFormat {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q (expected text|json|logfmt)", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("invalid log level %q (expected debug|info|warn|error)", cfg.LogLevel)
	}

	return nil
}
