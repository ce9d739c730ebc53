package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/CrankHint/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Name,X1,Y1,X2,Y2,X3,Y3\nA,1,2,3,4,5,6\n", ','},
		{"semicolon", "Name;X1;Y1;X2;Y2;X3;Y3\nA;1;2;3;4;5;6\n", ';'},
		{"tab", "Name\tX1\tY1\tX2\tY2\tX3\tY3\nA\t1\t2\t3\t4\t5\t6\n", '\t'},
		{"pipe", "Name|X1|Y1|X2|Y2|X3|Y3\nA|1|2|3|4|5|6\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "X1", "Y1", "X2", "Y2", "X3", "Y3", "X4", "Y4"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping != positionalMapping() {
		t.Errorf("standard header should match positional layout, got %+v", mapping)
	}
}

func TestDetectColumns_RoleNames(t *testing.T) {
	row := []string{"Elbow X", "ELBOW Y", "scenario", "Top Wrist X", "Top Wrist Y", "Bottom Wrist X", "Bottom Wrist Y"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 2 {
		t.Errorf("expected Name at 2, got %d", mapping.Name)
	}
	if mapping.X[0] != 5 || mapping.Y[0] != 6 {
		t.Errorf("bottom wrist columns wrong: %d,%d", mapping.X[0], mapping.Y[0])
	}
	if mapping.X[1] != 0 || mapping.Y[1] != 1 {
		t.Errorf("elbow columns wrong: %d,%d", mapping.X[1], mapping.Y[1])
	}
	if mapping.X[2] != 3 || mapping.Y[2] != 4 {
		t.Errorf("top wrist columns wrong: %d,%d", mapping.X[2], mapping.Y[2])
	}
	if mapping.X[3] != -1 || mapping.Y[3] != -1 {
		t.Errorf("action columns should be absent: %d,%d", mapping.X[3], mapping.Y[3])
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Stretch", "100", "100", "300", "100", "300", "180"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.X[2] != 5 || mapping.Y[2] != 6 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Reader Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,X1,Y1,X2,Y2,X3,Y3,X4,Y4\n" +
		"Stretch,100,100,300,100,300,180,,\n" +
		"Holding,100,100,300,100,300,180,200,140\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(result.Scenarios))
	}

	first := result.Scenarios[0]
	if first.Name != "Stretch" || first.HasAction() {
		t.Errorf("unexpected first scenario: %+v", first)
	}
	want := model.NewTargets(model.Point{X: 100, Y: 100}, model.Point{X: 300, Y: 100}, model.Point{X: 300, Y: 180})
	for i := range want {
		if first.Targets[i] != want[i] {
			t.Errorf("target %d: expected %+v, got %+v", i, want[i], first.Targets[i])
		}
	}

	second := result.Scenarios[1]
	if !second.HasAction() {
		t.Fatal("expected an action target")
	}
	if second.Targets[3] != (model.TargetPoint{Role: model.RoleAction, X: 200, Y: 140}) {
		t.Errorf("unexpected action target %+v", second.Targets[3])
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Stretch,100,100,300,100,300,180\nFolded,200,120,260,120,210,130\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(result.Scenarios))
	}
	if result.Scenarios[1].Targets[2].X != 210 {
		t.Errorf("expected X3=210, got %d", result.Scenarios[1].Targets[2].X)
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "what,ever,cols,a,b,c,d\nStretch,100,100,300,100,300,180\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d (errors: %v)", len(result.Scenarios), result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the skipped header")
	}
}

func TestImportCSVFromReader_Semicolon(t *testing.T) {
	data := "Name;X1;Y1;X2;Y2;X3;Y3\nA;1;2;3;4;5;6\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d (errors: %v)", len(result.Scenarios), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"bad number", "A,1,2,3,4,five,6", "invalid coordinate 'five'"},
		{"missing role", "A,1,2,3,4,,", "Missing Top Wrist target"},
		{"half target", "A,1,2,3,4,5,", "needs both x and y"},
		{"half action", "A,1,2,3,4,5,6,7,", "Action target needs both x and y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader(tt.row), ',')
			if len(result.Scenarios) != 0 {
				t.Errorf("expected no scenarios, got %d", len(result.Scenarios))
			}
			if len(result.Errors) != 1 {
				t.Fatalf("expected 1 error, got %v", result.Errors)
			}
			if !strings.Contains(result.Errors[0], tt.want) {
				t.Errorf("error %q does not contain %q", result.Errors[0], tt.want)
			}
			if !strings.HasPrefix(result.Errors[0], "Line 1:") {
				t.Errorf("error should name the line: %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Name,X1,Y1,X2,Y2,X3,Y3\nGood,1,2,3,4,5,6\nBad,1,2,x,4,5,6\n\nAlso good,7,8,9,10,11,12\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Scenarios) != 2 {
		t.Errorf("expected 2 valid scenarios, got %d", len(result.Scenarios))
	}
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Line 3:") {
		t.Errorf("expected one error on line 3, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyName(t *testing.T) {
	data := ",1,2,3,4,5,6\n,1,2,3,4,5,6\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(result.Scenarios))
	}
	if result.Scenarios[0].Name != "Scenario 1" || result.Scenarios[1].Name != "Scenario 2" {
		t.Errorf("unexpected default names %q, %q", result.Scenarios[0].Name, result.Scenarios[1].Name)
	}
}

func TestImportCSVFromReader_FractionalCoordinates(t *testing.T) {
	data := "A, 100.4 ,99.6,300,100,300,180\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d (errors: %v)", len(result.Scenarios), result.Errors)
	}
	if got := result.Scenarios[0].Targets[0]; got.X != 100 || got.Y != 100 {
		t.Errorf("expected (100,100), got (%d,%d)", got.X, got.Y)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "rounded") {
		t.Errorf("expected a rounding warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Name,X1,Y1,X2,Y2,X3\nA,1,2,3,4,5\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Fatal("expected error for missing Y3 column")
	}
	if !strings.Contains(result.Errors[0], "Y3") {
		t.Errorf("error should name the missing column: %q", result.Errors[0])
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.csv")
	content := "Name;X1;Y1;X2;Y2;X3;Y3\nA;1;2;3;4;5;6\nB;7;8;9;10;11;12\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := Import(path, 240)

	if len(result.Scenarios) != 2 {
		t.Errorf("expected 2 scenarios, got %d (errors: %v)", len(result.Scenarios), result.Errors)
	}
	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Scenario", "X1", "Y1", "X2", "Y2", "X3", "Y3", "Action X", "Action Y"},
		{"Stretch", 100, 100, 300, 100, 300, 180},
		{"Holding", 100, 100, 300, 100, 300, 180, 200, 140},
	})

	result := Import(path, 240)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Scenarios) != 2 {
		t.Fatalf("expected 2 scenarios, got %d", len(result.Scenarios))
	}
	if result.Scenarios[0].HasAction() {
		t.Error("first scenario should have three targets")
	}
	if !result.Scenarios[1].HasAction() {
		t.Error("second scenario should have an action target")
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Folded", 200, 120, 260, 120, 210, 130},
	})

	result := ImportExcel(path)

	if len(result.Scenarios) != 1 {
		t.Fatalf("expected 1 scenario, got %d (errors: %v)", len(result.Scenarios), result.Errors)
	}
	if result.Scenarios[0].Name != "Folded" {
		t.Errorf("expected name Folded, got %q", result.Scenarios[0].Name)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/file.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}
