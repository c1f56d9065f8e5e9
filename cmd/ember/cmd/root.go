package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/foundation/lang"
	"github.com/msto63/ember/pkg/core/config"
	"github.com/msto63/ember/pkg/core/logging"
	"github.com/msto63/ember/pkg/core/version"
)

// app carries what every subcommand needs once the root has loaded the
// configuration
type app struct {
	cfgFile   string
	verbose   bool
	logFormat string

	cfg     *config.Config
	cfgPath string
	logger  *mdwlog.Logger
	runID   string
	engine  *lang.Engine
	stderr  io.Writer
}

// NewRootCommand builds the ember command tree
func NewRootCommand() *cobra.Command {
	a := &app{stderr: os.Stderr}

	rootCmd := &cobra.Command{
		Use:   "ember",
		Short: "Ember - parser for the Ember language",
		Long: `Ember parses programs written in the Ember language: variable
definitions, function definitions, function calls and string literals
separated by semicolons.

Commands:
  parse    - print the syntax tree of a source file
  tokens   - print the token stream of a source file
  check    - validate source files
  watch    - re-check source files when they change
  history  - show recorded parse results`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.stderr = cmd.ErrOrStderr()
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: $EMBER_CONFIG or ./ember.toml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format: json, text, console or logfmt")

	rootCmd.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newCheckCmd(a),
		newWatchCmd(a),
		newHistoryCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the command line and returns the process exit status
func Execute() int {
	return run(NewRootCommand(), os.Args[1:])
}

func run(rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	if _, reported := err.(reportedError); !reported {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return exitStatus(err)
}

func (a *app) setup() error {
	cfg, path, err := config.Resolve(a.cfgFile)
	if err != nil {
		return err
	}

	level := ""
	if a.verbose {
		level = "debug"
	}
	if a.logFormat != "" {
		if _, err := mdwlog.ParseFormat(a.logFormat); err != nil {
			return mdwerror.Wrap(err, "--log-format").
				WithCode(mdwerror.CodeInvalidInput)
		}
	}

	logger := logging.FromConfig(cfg.General, level, a.logFormat, a.stderr)
	logger, runID := logging.WithRunID(logger)

	engine, err := lang.New(cfg.EngineOptions(logger))
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.cfgPath = path
	a.logger = logger
	a.runID = runID
	a.engine = engine

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"config":     path,
		"param_mode": cfg.Parser.ParamMode,
		"journal":    cfg.Journal.Enabled,
	})
	return nil
}

// reportedError marks a failure whose details were already printed
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func exitStatus(err error) int {
	if _, ok := mdwerror.As(err); ok {
		return mdwerror.GetCode(err).ExitStatus()
	}
	// flag and argument errors from cobra
	return 2
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error:")+" "+err.Error())
}
