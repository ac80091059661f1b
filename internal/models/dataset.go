// Package models defines the point sets read by the CLI and the results it writes.
package models

import (
	"fmt"

	"github.com/hyperjump/hyperbolic/pkg/poincare"
)

// Dataset is a collection of named point groups in one Poincaré ball.
type Dataset struct {
	// Curvature is optional; zero means "use the configured curvature".
	Curvature float64      `json:"curvature,omitempty" yaml:"curvature,omitempty"`
	Groups    []PointGroup `json:"groups" yaml:"groups"`
}

// PointGroup is a named set of points, e.g. the members of one cluster.
type PointGroup struct {
	Name   string      `json:"name" yaml:"name"`
	Points [][]float64 `json:"points" yaml:"points"`
}

// Dim returns the dimension of the first point, or 0 for an empty dataset.
func (d *Dataset) Dim() int {
	for _, g := range d.Groups {
		if len(g.Points) > 0 {
			return len(g.Points[0])
		}
	}
	return 0
}

// AllPoints returns every point of every group, in order.
func (d *Dataset) AllPoints() [][]float64 {
	var out [][]float64
	for _, g := range d.Groups {
		out = append(out, g.Points...)
	}
	return out
}

// Validate checks the dataset against curvature c and fills in missing group
// names ("group-1", "group-2", ...). Every group must be non-empty, names
// must be unique, all points must share one dimension and lie strictly
// inside the ball.
func (d *Dataset) Validate(c float64) error {
	if len(d.Groups) == 0 {
		return fmt.Errorf("dataset has no groups")
	}
	if !(c > 0) {
		return fmt.Errorf("curvature must be > 0, got %g", c)
	}
	dim := d.Dim()
	seen := make(map[string]bool, len(d.Groups))
	for i := range d.Groups {
		g := &d.Groups[i]
		if g.Name == "" {
			g.Name = fmt.Sprintf("group-%d", i+1)
		}
		if seen[g.Name] {
			return fmt.Errorf("duplicate group name %q", g.Name)
		}
		seen[g.Name] = true
		if len(g.Points) == 0 {
			return fmt.Errorf("group %q has no points", g.Name)
		}
		for j, p := range g.Points {
			if len(p) != dim {
				return fmt.Errorf("group %q point %d: dimension %d, want %d", g.Name, j, len(p), dim)
			}
			if !poincare.InBall(p, c) {
				return fmt.Errorf("group %q point %d lies outside the ball of curvature %g", g.Name, j, c)
			}
		}
	}
	return nil
}
