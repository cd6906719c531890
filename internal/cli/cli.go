package cli

import (
	"fmt"
	"io"
	"slices"

	"examctl/internal/config"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one examctl subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a subcommand and returns the process exit code.
// "examctl help <command>" is the same as "examctl <command> --help".
func Run(args []string, stdout, stderr io.Writer) int {
	switch {
	case len(args) == 0:
		printUsage(stdout)
		return ExitUsage
	case len(args) >= 2 && args[0] == "help":
		if cmd := findCommand(args[1]); cmd != nil {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		return unknownCommand(args[1], stderr)
	case isHelpArg(args[0]):
		printUsage(stdout)
		return ExitOK
	}
	cmd := findCommand(args[0])
	if cmd == nil {
		return unknownCommand(args[0], stderr)
	}
	return cmd.Run(args[1:], stdout, stderr)
}

func unknownCommand(name string, stderr io.Writer) int {
	fmt.Fprintf(stderr, "Unknown command: %s\n\n", name)
	printUsage(stderr)
	return ExitUsage
}

func findCommand(name string) *Command {
	idx := slices.IndexFunc(commands, func(cmd *Command) bool { return cmd.Name == name })
	if idx < 0 {
		return nil
	}
	return commands[idx]
}

func isHelpArg(arg string) bool {
	return arg == "help" || wantsHelp([]string{arg})
}

func wantsHelp(args []string) bool {
	return slices.ContainsFunc(args, func(arg string) bool { return arg == "-h" || arg == "--help" })
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  examctl <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	for _, env := range []string{config.EnvServerURL, config.EnvExportDir, config.EnvUIMode, "NO_COLOR"} {
		fmt.Fprintf(w, "  %s\n", env)
	}
	fmt.Fprintln(w, "\nUse \"examctl help <command>\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("create", "Upload an exam PDF and answer key", []string{
		"examctl create --mode timer --duration <minutes> --exam <exam.pdf> --answer-key <key.pdf|key.txt>",
		"examctl create --mode stopwatch --exam <exam.pdf> --answer-key <key.pdf|key.txt>",
	}, runCreate),
	command("take", "Take an exam in the terminal", []string{
		"examctl take [--ui auto|live|plain] [--export-dir <dir>] <exam-id>",
	}, runTake),
	command("status", "Show the server's timing status for an exam", []string{
		"examctl status [--json] <exam-id>",
	}, runStatus),
	command("export", "Re-render a saved result as JSON or HTML", []string{
		"examctl export [--format json|html] [--filter all|correct|incorrect] [--output <path>] <result.json|exam-id|dir>",
	}, runExport),
	command("serve", "Browse saved results in a browser", []string{
		"examctl serve [--addr <host:port>] [--export-dir <dir>]",
	}, runServe),
	command("config", "Validate and print the resolved configuration", []string{
		"examctl config [--config <path>]",
	}, runConfig),
}
