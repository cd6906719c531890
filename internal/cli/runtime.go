package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"examctl/internal/apiclient"
	"examctl/internal/config"
	"examctl/internal/logger"
	"examctl/internal/validate"
)

// stdin is the input the take command reads from.
var stdin io.Reader = os.Stdin

// commonFlags are accepted by every command that reads configuration.
type commonFlags struct {
	configPath *string
	server     *string
	logLevel   *string
	logFormat  *string
	logFile    *string
	noColor    *bool
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "Path to config file (default: search for .examctl/config.yml)"),
		server:     fs.String("server", "", "Exam server URL"),
		logLevel:   fs.String("log-level", "", "Log level (trace|debug|info|warn|error)"),
		logFormat:  fs.String("log-format", "", "Log format (pretty|json)"),
		logFile:    fs.String("log", "", "Write logs to a file"),
		noColor:    fs.Bool("no-color", false, "Disable colored output"),
	}
}

// loadConfig resolves configuration with the flag values taking precedence.
func (f commonFlags) loadConfig(extra config.Overrides) (config.Config, error) {
	extra.ServerURL = firstNonEmpty(extra.ServerURL, *f.server)
	extra.LogLevel = firstNonEmpty(extra.LogLevel, *f.logLevel)
	extra.LogFormat = firstNonEmpty(extra.LogFormat, *f.logFormat)
	extra.NoColor = extra.NoColor || *f.noColor
	cfg, err := config.Load(config.LoadOptions{Path: *f.configPath, Overrides: extra})
	if err != nil {
		return config.Config{}, err
	}
	if *f.logFile != "" {
		cfg.Log.File = *f.logFile
	}
	return cfg, nil
}

// openLogger builds the command logger. Logs go to the configured file, or
// to fallback when none is set; a nil fallback discards them.
func openLogger(cfg config.Config, fallback io.Writer) (zerolog.Logger, func() error, error) {
	out, closeFn, err := logger.Open(cfg.Log.File, fallback)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	return logger.Setup(cfg.Log.Level, cfg.Log.Format, out), closeFn, nil
}

func newClient(cfg config.Config, log zerolog.Logger) *apiclient.Client {
	return apiclient.NewWithTimeout(cfg.APIURL(), cfg.Server.RequestTimeout).WithLogger(log)
}

// validateExamID rejects ids that are not UUIDs before any request is made.
func validateExamID(id string) error {
	if err := validate.Var("exam_id", id, "required,uuid"); err != nil {
		return fmt.Errorf("invalid exam id %q: must be a UUID", id)
	}
	return nil
}

// examIDArg returns the single positional exam id.
func examIDArg(cmd *Command, fs *flag.FlagSet, stderr io.Writer) (string, bool) {
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Expected exactly one <exam-id>")
		printCommandUsage(cmd, stderr)
		return "", false
	}
	id := fs.Arg(0)
	if err := validateExamID(id); err != nil {
		fmt.Fprintln(stderr, err)
		return "", false
	}
	return id, true
}

// printIssues writes validation issues one per line.
func printIssues(w io.Writer, err *validate.ValidationError) {
	for _, issue := range err.Issues {
		fmt.Fprintf(w, "  %s: %s\n", issue.Field, issue.Message)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
