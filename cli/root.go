// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Command tree of the orcaparse tool.

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"orcaparse/config"
	"orcaparse/meta"
	"orcaparse/parser"
	"orcaparse/preprocessor"
)

// ErrInvalid is returned when an input file has diagnostics. The
// diagnostics themselves have already been printed.
var ErrInvalid = errors.New("input has errors")

type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "orcaparse",
		Short:         meta.Short,
		Long:          meta.Long,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: ./.orcaparse.toml or ./.orcaparse.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		a.parseCmd(),
		a.checkCmd(),
		a.queryCmd(),
		a.stripCmd(),
		versionCmd(),
	)
	return root
}

// Execute runs the command line.
func Execute() error {
	return newRootCmd().Execute()
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		wd, werr := os.Getwd()
		if werr != nil {
			return fmt.Errorf("getting working directory: %w", werr)
		}
		a.cfg, err = config.Discover(wd)
	}
	if err != nil {
		return err
	}
	a.log = newLogger(cmd.ErrOrStderr(), a.cfg.Log, a.verbose)
	return nil
}

func newLogger(w io.Writer, cfg config.LogConfig, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// readInput reads a file, or standard input for "-", and normalizes it.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return preprocessor.Normalize(data), nil
}

// parseOptions derives parser options for path. Files ending in .cmp hold a
// bare compound script.
func (a *app) parseOptions(path string, keepComments bool) parser.Options {
	name := path
	if path == "-" {
		name = "<stdin>"
	}
	return parser.Options{
		Filename:     name,
		KeepComments: keepComments || a.cfg.Parse.KeepComments,
		Compound:     strings.EqualFold(filepath.Ext(path), ".cmp"),
		MaxErrors:    a.cfg.Parse.MaxErrors,
		Logger:       a.log,
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			meta.ShowVersion(cmd.OutOrStdout())
		},
	}
}
