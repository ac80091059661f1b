// Package main is the hyperbolic CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/hyperjump/hyperbolic/internal/cli"
	"github.com/hyperjump/hyperbolic/internal/config"
	"github.com/hyperjump/hyperbolic/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/hyperbolic/config.yaml"

// loadConfig loads config from path. When path is the default, config.yaml in
// the current directory takes precedence, and a missing default file means
// built-in defaults. Returns the config and the path actually loaded ("" for
// built-in defaults).
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// app holds state shared by every subcommand, filled in by the root
// command's persistent pre-run.
type app struct {
	configPath string
	curvature  float64
	debug      bool
	output     string
	precision  int

	cfg    *config.Config
	logger *zap.Logger
	// curvatureSet is true when --curvature was given; it then wins over
	// a dataset's own curvature.
	curvatureSet bool
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "hyperbolic",
		Short: "Poincaré-ball geometry: Möbius addition, exp/log maps, transport and Fréchet means",
		Long: `hyperbolic evaluates Poincaré-ball operations on vectors given as
comma-separated floats, e.g. "0.1,0.2" or "[0.1, 0.2]". Put "--" before
the vectors when the first one starts with a minus sign.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", defaultConfigPath, "config file path")
	pf.Float64Var(&a.curvature, "curvature", 0, "ball curvature c > 0 (default from dataset or config)")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging (solver iterations, batch timing)")
	pf.StringVarP(&a.output, "output", "o", "", "output format: text, compact or json (default from config)")
	pf.IntVar(&a.precision, "precision", 0, "significant digits in output (default from config)")

	root.AddCommand(
		a.addCmd(),
		a.expCmd(),
		a.logCmd(),
		a.gradCmd(),
		a.transportCmd(),
		a.distanceCmd(),
		a.meanCmd(),
		a.centroidsCmd(),
		configCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, resolvedConfigPath, err := loadConfig(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("curvature") {
		cfg.Geometry.Curvature = a.curvature
		a.curvatureSet = true
	}
	if a.output != "" {
		cfg.Output.Format = a.output
	}
	if a.precision > 0 {
		cfg.Output.Precision = a.precision
	}
	cfg.Debug = cfg.Debug || a.debug
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Float64("curvature", cfg.Geometry.Curvature),
		zap.String("output", cfg.Output.Format),
	)
	return nil
}

func (a *app) writer(cmd *cobra.Command) *cli.Writer {
	return cli.NewWriter(cmd.OutOrStdout(), cli.OutputFormat(a.cfg.Output.Format), a.cfg.Output.Precision)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print the version",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hyperbolic version %s\n", version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
