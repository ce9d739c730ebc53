package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/CrankHint/internal/model"
)

// DefaultProfilesDir returns the directory holding geometry profiles,
// ~/.crankhint/geometry/.
func DefaultProfilesDir() string {
	return filepath.Join(DefaultConfigDir(), "geometry")
}

// LoadGeometryProfile reads a geometry profile from a TOML file. Fields the
// file leaves out keep the built-in values, so a profile only needs to list
// what differs. The result is validated before it is returned.
func LoadGeometryProfile(path string) (model.Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Geometry{}, err
	}
	return ParseGeometryProfile(data, profileName(path))
}

// ParseGeometryProfile decodes TOML profile data. name is used when the data
// has no name key.
func ParseGeometryProfile(data []byte, name string) (model.Geometry, error) {
	geo := model.DefaultGeometry()
	geo.Name = name

	md, err := toml.Decode(string(data), &geo)
	if err != nil {
		return model.Geometry{}, fmt.Errorf("parse geometry profile %q: %w", name, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return model.Geometry{}, fmt.Errorf("geometry profile %q: unknown keys %s", name, strings.Join(keys, ", "))
	}
	if err := geo.Validate(); err != nil {
		return model.Geometry{}, fmt.Errorf("geometry profile %q: %w", name, err)
	}
	return geo, nil
}

// SaveGeometryProfile writes geo as a TOML profile, creating parent
// directories as needed.
func SaveGeometryProfile(path string, geo model.Geometry) error {
	if err := geo.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(geo); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ListGeometryProfiles loads every *.toml file in dir, sorted by name.
// A missing directory yields no profiles. Files that fail to load are
// reported together after the valid ones have been read.
func ListGeometryProfiles(dir string) ([]model.Geometry, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	profiles := []model.Geometry{}
	var errs []error
	for _, path := range matches {
		geo, err := LoadGeometryProfile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		profiles = append(profiles, geo)
	}
	return profiles, errors.Join(errs...)
}

// ResolveGeometry returns the geometry named by ref. ref may be empty (the
// fallback is returned), a path to a TOML file, or the name of a profile in
// DefaultProfilesDir.
func ResolveGeometry(ref string, fallback model.Geometry) (model.Geometry, error) {
	if ref == "" {
		return fallback, nil
	}
	if ref == model.DefaultGeometry().Name {
		return model.DefaultGeometry(), nil
	}
	if strings.HasSuffix(ref, ".toml") || strings.ContainsRune(ref, filepath.Separator) {
		return LoadGeometryProfile(ref)
	}
	return LoadGeometryProfile(filepath.Join(DefaultProfilesDir(), ref+".toml"))
}

func profileName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
