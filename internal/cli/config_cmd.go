package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"examctl/internal/config"
)

// runConfig builds the handler for the config command.
func runConfig(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		common := addCommonFlags(flags)
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, err := common.loadConfig(config.Overrides{})
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		payload, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to encode config: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")
		fmt.Fprintf(stdout, "# api: %s\n", cfg.APIURL())
		_, _ = stdout.Write(payload)
		return ExitOK
	}
}
