package models

// Centroid is the Fréchet mean of one point group.
type Centroid struct {
	Name       string    `json:"name"`
	Mean       []float64 `json:"mean"`
	Points     int       `json:"points"`
	Iterations int       `json:"iterations"`
	GradNorm   float64   `json:"grad_norm"`
	Converged  bool      `json:"converged"`
}

// BatchResult is the response for a centroid computation over a dataset.
type BatchResult struct {
	Curvature float64     `json:"curvature"`
	Dimension int         `json:"dimension"`
	Centroids []*Centroid `json:"centroids"`
	ElapsedMs int64       `json:"elapsed_ms"`
}

// VectorResult is the output of a single geometry operation.
type VectorResult struct {
	Operation string    `json:"operation"`
	Curvature float64   `json:"curvature"`
	Vector    []float64 `json:"vector,omitempty"`
	// Scalar holds scalar results such as distances.
	Scalar *float64 `json:"scalar,omitempty"`
}
