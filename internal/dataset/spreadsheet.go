package dataset

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperjump/hyperbolic/internal/models"
	"github.com/xuri/excelize/v2"
)

// decodeSpreadsheet reads one group per sheet, named after the sheet. Each
// non-empty row is a point; every cell must be a number. A first row that
// does not parse as numbers is treated as a header and skipped.
func decodeSpreadsheet(content []byte) (*models.Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	ds := &models.Dataset{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		group := models.PointGroup{Name: sheet}
		for i, row := range rows {
			if isBlank(row) {
				continue
			}
			p, err := parseRow(row)
			if err != nil {
				if i == 0 {
					continue
				}
				return nil, fmt.Errorf("sheet %q row %d: %w", sheet, i+1, err)
			}
			group.Points = append(group.Points, p)
		}
		if len(group.Points) > 0 {
			ds.Groups = append(ds.Groups, group)
		}
	}
	return ds, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(row []string) ([]float64, error) {
	// GetRows trims trailing empty cells but keeps interior ones.
	p := make([]float64, len(row))
	for j, cell := range row {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", j+1, err)
		}
		p[j] = v
	}
	return p, nil
}
