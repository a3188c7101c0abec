package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# task-cli configuration file
# Values can be overridden by environment variables (TASK_CLI_*) or CLI flags

# Task file. Relative paths are joined onto the working directory.
# Supports ~ and $VAR expansion.
task_file = "tasks.json"

# Directory for the history journal (supports ~ and $VAR expansion)
log_dir = "~/.task-cli"

# Record every change in <log_dir>/<project>/history.jsonl
history = true

# Command to run after each change.
# Receives: <action> <task-id> <status> <task-file>
# hook_command = "/path/to/hook.sh"

# Console logging
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
