// Package aggregate computes Fréchet-mean centroids for many point groups concurrently.
package aggregate

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hyperjump/hyperbolic/internal/models"
	"github.com/hyperjump/hyperbolic/pkg/poincare"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Aggregator computes one centroid per group.
type Aggregator struct {
	curvature   float64
	concurrency int
	frechetOpts []poincare.FrechetOption
	logger      *zap.Logger
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLogger sets a logger for debug output (per group results, batch timing).
func WithLogger(l *zap.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithConcurrency bounds how many groups are processed at once.
// Values <= 0 mean GOMAXPROCS.
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) { a.concurrency = n }
}

// WithFrechetOptions passes options through to every Fréchet mean computation.
func WithFrechetOptions(opts ...poincare.FrechetOption) AggregatorOption {
	return func(a *Aggregator) { a.frechetOpts = append(a.frechetOpts, opts...) }
}

// NewAggregator creates an aggregator for points in the ball of curvature c.
func NewAggregator(c float64, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		curvature: c,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.concurrency <= 0 {
		a.concurrency = runtime.GOMAXPROCS(0)
	}
	return a
}

// Centroids returns the Fréchet mean of every group, in input order. The
// first failing group cancels the rest and its error is returned.
func (a *Aggregator) Centroids(ctx context.Context, groups []models.PointGroup) ([]*models.Centroid, error) {
	out := make([]*models.Centroid, len(groups))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i := range groups {
		i, group := i, groups[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			centroid, err := a.centroid(group)
			if err != nil {
				return fmt.Errorf("group %q: %w", group.Name, err)
			}
			out[i] = centroid
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Aggregator) centroid(group models.PointGroup) (*models.Centroid, error) {
	opts := append([]poincare.FrechetOption{poincare.WithLogger(a.logger.With(zap.String("group", group.Name)))}, a.frechetOpts...)
	est, err := poincare.EstimateFrechetMean(group.Points, a.curvature, opts...)
	if err != nil {
		return nil, err
	}
	if !est.Converged {
		a.logger.Debug("centroid did not converge",
			zap.String("group", group.Name),
			zap.Int("iterations", est.Iterations),
			zap.Float64("grad_norm", est.GradNorm),
		)
	}
	return &models.Centroid{
		Name:       group.Name,
		Mean:       est.Mean,
		Points:     len(group.Points),
		Iterations: est.Iterations,
		GradNorm:   est.GradNorm,
		Converged:  est.Converged,
	}, nil
}

// Run validates ds against the aggregator's curvature and computes its
// centroids, timing the whole batch.
func (a *Aggregator) Run(ctx context.Context, ds *models.Dataset) (*models.BatchResult, error) {
	if err := ds.Validate(a.curvature); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	start := time.Now()
	centroids, err := a.Centroids(ctx, ds.Groups)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	a.logger.Debug("centroids computed",
		zap.Int("groups", len(centroids)),
		zap.Int("concurrency", a.concurrency),
		zap.Duration("elapsed", elapsed),
	)
	return &models.BatchResult{
		Curvature: a.curvature,
		Dimension: ds.Dim(),
		Centroids: centroids,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}
