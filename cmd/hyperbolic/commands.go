package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/hyperjump/hyperbolic/internal/aggregate"
	"github.com/hyperjump/hyperbolic/internal/config"
	"github.com/hyperjump/hyperbolic/internal/dataset"
	"github.com/hyperjump/hyperbolic/internal/models"
	"github.com/hyperjump/hyperbolic/internal/watcher"
	"github.com/hyperjump/hyperbolic/pkg/poincare"
	"github.com/hyperjump/hyperbolic/pkg/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// parseVectors parses every argument with utils.ParseVector.
func parseVectors(args []string) ([][]float64, error) {
	out := make([][]float64, len(args))
	for i, arg := range args {
		v, err := utils.ParseVector(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q): %w", i+1, arg, err)
		}
		out[i] = v
	}
	return out, nil
}

// vectorCmd builds a command that applies a binary vector operation.
func (a *app) vectorCmd(use, short, operation string, fn func(x, y []float64, c float64) ([]float64, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseVectors(args)
			if err != nil {
				return err
			}
			c := a.cfg.Geometry.Curvature
			out, err := fn(vs[0], vs[1], c)
			if err != nil {
				return err
			}
			return a.writer(cmd).WriteVector(&models.VectorResult{Operation: operation, Curvature: c, Vector: out})
		},
	}
}

func (a *app) addCmd() *cobra.Command {
	return a.vectorCmd("add <x> <y>", "Möbius addition x ⊕ y", "mobius_add", poincare.MobiusAdd)
}

func (a *app) expCmd() *cobra.Command {
	return a.vectorCmd("exp <x> <v>", "Exponential map of tangent vector v at x", "exp_map", poincare.ExpMap)
}

func (a *app) logCmd() *cobra.Command {
	return a.vectorCmd("log <x> <y>", "Logarithmic map of y at x", "log_map", poincare.LogMap)
}

func (a *app) gradCmd() *cobra.Command {
	return a.vectorCmd("grad <x> <g>", "Convert Euclidean gradient g at x to the Riemannian gradient", "riemannian_gradient", poincare.RiemannianGradient)
}

func (a *app) transportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transport <x> <y> <v>",
		Short: "Parallel transport of tangent vector v from x to y",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseVectors(args)
			if err != nil {
				return err
			}
			c := a.cfg.Geometry.Curvature
			out, err := poincare.ParallelTransport(vs[0], vs[1], vs[2], c)
			if err != nil {
				return err
			}
			return a.writer(cmd).WriteVector(&models.VectorResult{Operation: "parallel_transport", Curvature: c, Vector: out})
		},
	}
}

func (a *app) distanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "distance <x> <y>",
		Short: "Geodesic distance between x and y",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vs, err := parseVectors(args)
			if err != nil {
				return err
			}
			c := a.cfg.Geometry.Curvature
			d, err := poincare.Distance(vs[0], vs[1], c)
			if err != nil {
				return err
			}
			return a.writer(cmd).WriteVector(&models.VectorResult{Operation: "distance", Curvature: c, Scalar: &d})
		},
	}
}

// solverFlags are the Fréchet mean flags shared by mean and centroids.
type solverFlags struct {
	maxIter int
	tol     float64
}

func (s *solverFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&s.maxIter, "max-iter", 0, "maximum Fréchet mean iterations (default from config)")
	cmd.Flags().Float64Var(&s.tol, "tol", 0, "gradient norm at which the Fréchet mean stops (default from config)")
}

func (a *app) frechetOptions(cmd *cobra.Command, s *solverFlags) ([]poincare.FrechetOption, error) {
	maxIter, tol := a.cfg.Frechet.MaxIter, a.cfg.Frechet.ToleranceOrDefault()
	if cmd.Flags().Changed("max-iter") {
		maxIter = s.maxIter
	}
	if cmd.Flags().Changed("tol") {
		if !(s.tol >= 0) {
			return nil, fmt.Errorf("--tol must be >= 0, got %g", s.tol)
		}
		tol = s.tol
	}
	return []poincare.FrechetOption{
		poincare.WithMaxIter(maxIter),
		poincare.WithTolerance(tol),
		poincare.WithClipRadius(a.cfg.Geometry.ClipRadius),
	}, nil
}

// loadDataset loads and validates the dataset at path and returns it with
// the curvature to use: --curvature, else the dataset's own, else config.
func (a *app) loadDataset(path string) (*models.Dataset, float64, error) {
	ds, err := dataset.Load(a.cfg.ResolveDataset(path))
	if err != nil {
		return nil, 0, err
	}
	c := a.cfg.Geometry.Curvature
	if !a.curvatureSet && ds.Curvature != 0 {
		c = ds.Curvature
	}
	if err := ds.Validate(c); err != nil {
		return nil, 0, fmt.Errorf("invalid dataset %s: %w", path, err)
	}
	return ds, c, nil
}

func (a *app) meanCmd() *cobra.Command {
	var s solverFlags
	cmd := &cobra.Command{
		Use:   "mean <file>",
		Short: "Fréchet mean of every point in a dataset file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, c, err := a.loadDataset(args[0])
			if err != nil {
				return err
			}
			opts, err := a.frechetOptions(cmd, &s)
			if err != nil {
				return err
			}
			points := ds.AllPoints()
			opts = append(opts, poincare.WithLogger(a.logger))
			est, err := poincare.EstimateFrechetMean(points, c, opts...)
			if err != nil {
				return err
			}
			return a.writer(cmd).WriteCentroid(&models.Centroid{
				Name:       "mean",
				Mean:       est.Mean,
				Points:     len(points),
				Iterations: est.Iterations,
				GradNorm:   est.GradNorm,
				Converged:  est.Converged,
			})
		},
	}
	s.register(cmd)
	return cmd
}

func (a *app) centroidsCmd() *cobra.Command {
	var (
		s           solverFlags
		concurrency int
		watch       bool
	)
	cmd := &cobra.Command{
		Use:   "centroids <file>",
		Short: "Fréchet mean of each group in a dataset file, computed concurrently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("concurrency") {
				a.cfg.Batch.Concurrency = concurrency
			}
			path := args[0]
			if err := a.runCentroids(cmd, path, &s); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return a.watchCentroids(cmd, path, &s)
		},
	}
	s.register(cmd)
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "groups processed at once (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "recompute whenever the file changes, until interrupted")
	return cmd
}

func (a *app) runCentroids(cmd *cobra.Command, path string, s *solverFlags) error {
	opts, err := a.frechetOptions(cmd, s)
	if err != nil {
		return err
	}
	ds, c, err := a.loadDataset(path)
	if err != nil {
		return err
	}
	agg := aggregate.NewAggregator(c,
		aggregate.WithConcurrency(a.cfg.Batch.Concurrency),
		aggregate.WithFrechetOptions(opts...),
		aggregate.WithLogger(a.logger),
	)
	res, err := agg.Run(cmd.Context(), ds)
	if err != nil {
		return err
	}
	return a.writer(cmd).WriteBatch(res)
}

func (a *app) watchCentroids(cmd *cobra.Command, path string, s *solverFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	resolved := a.cfg.ResolveDataset(path)
	var mu sync.Mutex
	w, err := watcher.NewWatcher([]string{resolved}, func(string) {
		mu.Lock()
		defer mu.Unlock()
		if err := a.runCentroids(cmd, path, s); err != nil {
			a.logger.Warn("recompute centroids failed", zap.String("path", resolved), zap.Error(err))
		}
	}, watcher.WithLogger(a.logger))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()
	a.logger.Info("watching dataset", zap.Strings("files", w.Files()))
	<-ctx.Done()
	return nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
		// No config is loaded: init must work before one exists.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	}
	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with every default filled in (default ./config.yaml)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)
	return cmd
}
