// Package dataset loads point groups from YAML, JSON and spreadsheet files.
package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/hyperbolic/internal/models"
	"gopkg.in/yaml.v3"
)

// Load reads the file at path and decodes it by extension.
// .yaml, .yml and .json are decoded as a models.Dataset document (JSON is
// valid YAML); .xlsx spreadsheets hold one group per sheet. The dataset is
// not validated; call Dataset.Validate with the curvature in use.
func Load(path string) (*models.Dataset, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Decode(content, strings.ToLower(filepath.Ext(path)))
}

// Decode decodes content based on the given extension, including the
// leading dot (e.g. ".json").
func Decode(content []byte, ext string) (*models.Dataset, error) {
	switch ext {
	case ".xlsx":
		return decodeSpreadsheet(content)
	case ".yaml", ".yml", ".json", "":
		return decodeDocument(content)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q (supported: .yaml, .yml, .json, .xlsx)", ext)
	}
}

func decodeDocument(content []byte) (*models.Dataset, error) {
	var ds models.Dataset
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	return &ds, nil
}
