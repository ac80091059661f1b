package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestLoad_yaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.yaml")
	content := `
curvature: 0.5
groups:
  - name: animals
    points:
      - [0.1, 0.2]
      - [0.15, 0.1]
  - name: plants
    points: [[-0.3, 0.05]]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Curvature != 0.5 {
		t.Errorf("curvature = %g", ds.Curvature)
	}
	if len(ds.Groups) != 2 || ds.Groups[0].Name != "animals" || len(ds.Groups[0].Points) != 2 {
		t.Fatalf("groups = %+v", ds.Groups)
	}
	if ds.Groups[1].Points[0][0] != -0.3 {
		t.Errorf("plants point = %v", ds.Groups[1].Points[0])
	}
}

func TestLoad_json(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.json")
	content := `{"groups": [{"name": "g", "points": [[0.3, 0], [-0.3, 0]]}]}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Curvature != 0 {
		t.Errorf("curvature should be unset, got %g", ds.Curvature)
	}
	if len(ds.Groups) != 1 || len(ds.Groups[0].Points) != 2 {
		t.Fatalf("groups = %+v", ds.Groups)
	}
}

func TestDecode_unknownField(t *testing.T) {
	if _, err := Decode([]byte("grups: []\n"), ".yaml"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDecode_unsupportedExtension(t *testing.T) {
	if _, err := Decode([]byte("x"), ".pdf"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecode_spreadsheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", "x")
	f.SetCellValue("Sheet1", "B1", "y")
	f.SetCellValue("Sheet1", "A2", 0.1)
	f.SetCellValue("Sheet1", "B2", 0.2)
	f.SetCellValue("Sheet1", "A4", -0.3)
	f.SetCellValue("Sheet1", "B4", 0.05)
	if _, err := f.NewSheet("second"); err != nil {
		t.Fatal(err)
	}
	f.SetCellValue("second", "A1", 0.4)
	f.SetCellValue("second", "B1", 0)
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	ds, err := Decode(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ds.Groups) != 2 {
		t.Fatalf("groups = %+v", ds.Groups)
	}
	if ds.Groups[0].Name != "Sheet1" || len(ds.Groups[0].Points) != 2 {
		t.Errorf("Sheet1 group = %+v", ds.Groups[0])
	}
	if ds.Groups[0].Points[1][0] != -0.3 {
		t.Errorf("Sheet1 second point = %v", ds.Groups[0].Points[1])
	}
	if ds.Groups[1].Name != "second" || ds.Groups[1].Points[0][0] != 0.4 {
		t.Errorf("second group = %+v", ds.Groups[1])
	}
}

func TestDecode_spreadsheetBadCell(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "A1", 0.1)
	f.SetCellValue("Sheet1", "A2", "oops")
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(buf.Bytes(), ".xlsx"); err == nil {
		t.Error("expected error for non-numeric cell")
	}
}
