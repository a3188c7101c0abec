package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTaskFile  = "tasks.json"
	DefaultLogDir    = "~/.task-cli"
	DefaultHistory   = true
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for task-cli.
type Config struct {
	// Paths
	TaskFile string `toml:"task_file"`
	LogDir   string `toml:"log_dir"`

	// History journal of mutations
	History bool `toml:"history"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// fileConfig mirrors Config with pointer fields so that decoding a file
// reveals which keys were actually present.
type fileConfig struct {
	TaskFile      *string `toml:"task_file"`
	LogDir        *string `toml:"log_dir"`
	History       *bool   `toml:"history"`
	HookCommand   *string `toml:"hook_command"`
	LogLevel      *string `toml:"log_level"`
	LogFormat     *string `toml:"log_format"`
	LogTimestamps *bool   `toml:"log_timestamps"`
	LogCaller     *bool   `toml:"log_caller"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"log_dir",
		"history",
		"hook_command",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the string form of a configurable field.
func (c *Config) Value(field string) string {
	switch field {
	case "task_file":
		return c.TaskFile
	case "log_dir":
		return c.LogDir
	case "history":
		return boolString(c.History)
	case "hook_command":
		return c.HookCommand
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return boolString(c.LogTimestamps)
	case "log_caller":
		return boolString(c.LogCaller)
	default:
		return ""
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
