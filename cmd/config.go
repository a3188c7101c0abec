package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/task-cli/internal/config"
)

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	flags := flag.NewFlagSet("task-cli config", flag.ContinueOnError)
	flags.SetOutput(a.stderr)
	example := flags.Bool("example", false, "Print an example config file")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.stdout, config.ExampleConfig())
		return nil
	}

	w := a.stdout
	fmt.Fprintln(w, "Config files:")
	if len(a.sources.Files) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, f := range a.sources.Files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Effective values:")
	for _, field := range config.Fields() {
		fmt.Fprintf(w, "  %-15s %q (%s)\n", field, a.cfg.Value(field), a.sources.Sources[field])
	}
	fmt.Fprintf(w, "  %-15s %q (derived)\n", "project_root", a.cfg.ProjectRoot)
	return nil
}
