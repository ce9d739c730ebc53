package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/CrankHint/internal/model"
)

func writeProfile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGeometryProfilePartial(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "tight.toml", `
target_clearance = 64
overlay_clear_x = 56
`)

	geo, err := LoadGeometryProfile(path)
	if err != nil {
		t.Fatalf("LoadGeometryProfile: %v", err)
	}

	if geo.Name != "tight" {
		t.Errorf("expected name from file name, got %q", geo.Name)
	}
	if geo.TargetClearance != 64 || geo.OverlayClearX != 56 {
		t.Errorf("overrides not applied: %+v", geo)
	}
	if geo.ScreenWidth != 400 || geo.Step != 8 || geo.OverlayClearY != 40 {
		t.Errorf("unset fields should keep defaults: %+v", geo)
	}
}

func TestLoadGeometryProfileFull(t *testing.T) {
	path := writeProfile(t, t.TempDir(), "wide.toml", `
name = "Wide screen"
screen_width = 640
screen_height = 360
margin_x = 48
margin_y = 28
step = 8
target_clearance = 96
overlay_clear_x = 80
overlay_clear_y = 48
`)

	geo, err := LoadGeometryProfile(path)
	if err != nil {
		t.Fatalf("LoadGeometryProfile: %v", err)
	}
	if geo.Name != "Wide screen" {
		t.Errorf("expected explicit name, got %q", geo.Name)
	}
	if geo.PerimeterLength() != 2*(544/8+304/8) {
		t.Errorf("unexpected perimeter length %d", geo.PerimeterLength())
	}
}

func TestLoadGeometryProfileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "step = = 3", "parse geometry profile"},
		{"unknown key", "colour = \"red\"", "unknown keys colour"},
		{"bad step", "step = 7", "not a multiple of step"},
		{"negative clearance", "overlay_clear_y = -1", "clearances must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProfile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".toml", tt.body)
			_, err := LoadGeometryProfile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSaveGeometryProfileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles", "copy.toml")
	geo := model.DefaultGeometry()
	geo.Name = "copy"
	geo.TargetClearance = 72

	if err := SaveGeometryProfile(path, geo); err != nil {
		t.Fatalf("SaveGeometryProfile: %v", err)
	}
	loaded, err := LoadGeometryProfile(path)
	if err != nil {
		t.Fatalf("LoadGeometryProfile: %v", err)
	}
	if loaded != geo {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, geo)
	}
}

func TestSaveGeometryProfileRejectsInvalid(t *testing.T) {
	geo := model.DefaultGeometry()
	geo.Step = 0
	if err := SaveGeometryProfile(filepath.Join(t.TempDir(), "bad.toml"), geo); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestListGeometryProfiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "b.toml", "target_clearance = 70")
	writeProfile(t, dir, "a.toml", "target_clearance = 60")
	writeProfile(t, dir, "broken.toml", "step = 0")
	writeProfile(t, dir, "notes.txt", "ignored")

	profiles, err := ListGeometryProfiles(dir)
	if err == nil {
		t.Error("expected the broken profile to be reported")
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 valid profiles, got %d", len(profiles))
	}
	if profiles[0].Name != "a" || profiles[1].Name != "b" {
		t.Errorf("expected profiles sorted by file name, got %s, %s", profiles[0].Name, profiles[1].Name)
	}
}

func TestListGeometryProfilesMissingDir(t *testing.T) {
	profiles, err := ListGeometryProfiles(filepath.Join(t.TempDir(), "none"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected no profiles, got %d", len(profiles))
	}
}

func TestResolveGeometry(t *testing.T) {
	fallback := model.DefaultGeometry()
	fallback.TargetClearance = 50

	geo, err := ResolveGeometry("", fallback)
	if err != nil || geo != fallback {
		t.Errorf("empty ref should return fallback, got %+v, %v", geo, err)
	}

	geo, err = ResolveGeometry("handheld", fallback)
	if err != nil || geo != model.DefaultGeometry() {
		t.Errorf("built-in name should return defaults, got %+v, %v", geo, err)
	}

	path := writeProfile(t, t.TempDir(), "p.toml", "target_clearance = 88")
	geo, err = ResolveGeometry(path, fallback)
	if err != nil {
		t.Fatalf("ResolveGeometry(path): %v", err)
	}
	if geo.TargetClearance != 88 {
		t.Errorf("expected profile clearance 88, got %d", geo.TargetClearance)
	}
}
