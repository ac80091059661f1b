// Package cli writes geometry results for the hyperbolic command.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/hyperjump/hyperbolic/internal/models"
	"github.com/hyperjump/hyperbolic/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact prints bare vectors and numbers, one per line, for piping into other tools.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

const maxNameLen = 32

// ParseOutputFormat validates s as an output format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, compact or json)", s)
	}
}

// Writer renders results in one format with a fixed number of significant digits.
type Writer struct {
	w         io.Writer
	format    OutputFormat
	precision int
}

// NewWriter creates a Writer. Unknown formats are treated as text.
func NewWriter(w io.Writer, format OutputFormat, precision int) *Writer {
	return &Writer{w: w, format: format, precision: precision}
}

// WriteVector writes the result of a single operation.
func (o *Writer) WriteVector(res *models.VectorResult) error {
	switch o.format {
	case OutputJSON:
		return o.writeJSON(res)
	case OutputCompact:
		_, err := fmt.Fprintln(o.w, o.value(res))
		return err
	default:
		_, err := fmt.Fprintf(o.w, "%s (c=%g): %s\n", res.Operation, res.Curvature, o.value(res))
		return err
	}
}

// WriteCentroid writes a single Fréchet mean.
func (o *Writer) WriteCentroid(c *models.Centroid) error {
	switch o.format {
	case OutputJSON:
		return o.writeJSON(c)
	case OutputCompact:
		_, err := fmt.Fprintln(o.w, utils.FormatVector(c.Mean, o.precision))
		return err
	default:
		o.writeCentroidText(c)
		return nil
	}
}

// WriteBatch writes the centroids of a dataset.
func (o *Writer) WriteBatch(res *models.BatchResult) error {
	switch o.format {
	case OutputJSON:
		return o.writeJSON(res)
	case OutputCompact:
		for _, c := range res.Centroids {
			if _, err := fmt.Fprintf(o.w, "%s\t%s\n", c.Name, utils.FormatVector(c.Mean, o.precision)); err != nil {
				return err
			}
		}
		return nil
	default:
		fmt.Fprintf(o.w, "\nComputed %d centroids in %dms (dim %d, c=%g)\n\n",
			len(res.Centroids), res.ElapsedMs, res.Dimension, res.Curvature)
		for _, c := range res.Centroids {
			o.writeCentroidText(c)
		}
		return nil
	}
}

func (o *Writer) writeCentroidText(c *models.Centroid) {
	status := "converged"
	if !c.Converged {
		status = "not converged"
	}
	fmt.Fprintf(o.w, "─────────────────────────────────────────────────────────\n")
	fmt.Fprintf(o.w, "%s | Points: %d | Iterations: %d | Grad norm: %.3e (%s)\n",
		utils.Truncate(c.Name, maxNameLen), c.Points, c.Iterations, c.GradNorm, status)
	fmt.Fprintf(o.w, "Mean: %s\n", utils.FormatVector(c.Mean, o.precision))
}

func (o *Writer) value(res *models.VectorResult) string {
	if res.Scalar != nil {
		p := o.precision
		if p <= 0 {
			p = -1
		}
		return strconv.FormatFloat(*res.Scalar, 'g', p, 64)
	}
	return utils.FormatVector(res.Vector, o.precision)
}

func (o *Writer) writeJSON(v any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
