package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/CrankHint/internal/model"
)

// ImportDXF imports a single scenario from a DXF sketch. CIRCLE entities in
// drawing order become the targets of roles 1..4; other entities are ignored.
// DXF is Y-up, so Y is flipped against screenHeight to give screen coordinates.
func ImportDXF(path string, screenHeight int) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var points []model.Point
	skipped := 0
	for _, ent := range entities {
		c, ok := ent.(*entity.Circle)
		if !ok {
			skipped++
			continue
		}
		points = append(points, circleTarget(c, screenHeight))
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d non-circle entities", skipped))
	}
	if len(points) < 3 {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Need at least 3 circles for a scenario, found %d", len(points)))
		return result
	}
	if len(points) > model.MaxRoles {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Ignored %d circles after the first %d", len(points)-model.MaxRoles, model.MaxRoles))
		points = points[:model.MaxRoles]
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	result.Scenarios = append(result.Scenarios, model.NewScenario(name, points...))
	return result
}

// circleTarget converts a circle centre to a screen pixel.
func circleTarget(c *entity.Circle, screenHeight int) model.Point {
	return model.Point{
		X: int(math.Round(c.Center[0])),
		Y: screenHeight - int(math.Round(c.Center[1])),
	}
}
