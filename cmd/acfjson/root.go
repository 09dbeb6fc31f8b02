package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-acfjson/internal/config"
	"github.com/goliatone/go-acfjson/internal/loader"
	"github.com/goliatone/go-acfjson/internal/logging"
	"github.com/goliatone/go-acfjson/internal/prompt"
	"github.com/goliatone/go-acfjson/pkg/runner"
)

const (
	exitChanged = 2
	exitSkipped = 3
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// app holds state shared by every command of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	logLevel   string
	logFormat  string
	pattern    string
	failOnSkip bool

	cfg    config.Config
	logger *zap.Logger
	prompt prompt.Driver
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "acfjson",
		Short: "Inspect and normalise ACF field group JSON files",
		Long: `acfjson walks the field tree of ACF field group documents (fields,
sub_fields and layouts[].sub_fields) to report on them or to add missing
properties with their default values.

Every command takes a document or a directory. Directories are processed
file by file; a file that fails to parse is skipped and reported.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default "+config.DefaultFile+" when present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (console, json)")
	flags.StringVar(&a.pattern, "pattern", "", "glob selecting documents inside a directory (default *.json)")
	flags.BoolVar(&a.failOnSkip, "fail-on-skip", false, "exit with status 3 when a document was skipped")

	root.AddCommand(
		newInventoryCmd(a),
		newCheckCmd(a),
		newScanCmd(a),
		newFixCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("pattern") {
		cfg.Pattern = a.pattern
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg

	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Verbose: a.verbose,
		Output:  a.stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) locator(args []string) (loader.Locator, error) {
	path := a.cfg.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return loader.Locator{}, errors.New("a document or directory path is required (argument or config path)")
	}
	return loader.Locator{Path: path, Pattern: a.cfg.Pattern}, nil
}

func (a *app) runner() *runner.Runner {
	driver := a.prompt
	if driver == nil {
		driver = prompt.NewSurveyDriver()
	}
	return runner.New(
		runner.WithOutput(a.stdout),
		runner.WithLogger(a.logger),
		runner.WithPrompt(driver),
		runner.WithTables(a.cfg.Tables()),
		runner.WithEncodeOptions(a.cfg.EncodeOptions()),
	)
}

// finish maps a report onto the exit status.
func (a *app) finish(report runner.Report, changed bool) error {
	a.logger.Debug("run finished",
		zap.Int("documents", len(report.Documents)),
		zap.Int("fixed", report.Fixed()),
		zap.Int("findings", report.Findings()),
		zap.Int("skipped", report.Count(runner.StatusSkipped)),
	)
	if failed := report.Count(runner.StatusFailed); failed > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d document(s) could not be written", failed)}
	}
	if a.failOnSkip && report.Count(runner.StatusSkipped) > 0 {
		return &exitError{code: exitSkipped}
	}
	if changed {
		return &exitError{code: exitChanged}
	}
	return nil
}
