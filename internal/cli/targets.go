package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/CrankHint/internal/importer"
	"github.com/piwi3910/CrankHint/internal/model"
	"github.com/piwi3910/CrankHint/internal/project"
)

// parsePoint parses "x,y" into a screen point.
func parsePoint(s string) (model.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return model.Point{}, fmt.Errorf("target %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return model.Point{}, fmt.Errorf("target %q: bad x: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return model.Point{}, fmt.Errorf("target %q: bad y: %w", s, err)
	}
	return model.Point{X: x, Y: y}, nil
}

// parseTargets turns repeated --target values into a validated target list.
func parseTargets(values []string) ([]model.TargetPoint, error) {
	points := make([]model.Point, 0, len(values))
	for _, v := range values {
		p, err := parsePoint(v)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	targets := model.NewTargets(points...)
	if err := model.ValidateTargets(targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// loadScenarioFile imports scenarios from a CSV, Excel or DXF file, logging
// row-level problems. It fails only when nothing could be imported.
func loadScenarioFile(logger *log.Logger, path string, screenHeight int) ([]model.Scenario, error) {
	result := importer.Import(path, screenHeight)
	for _, w := range result.Warnings {
		logger.Warn(w, "file", path)
	}
	for _, e := range result.Errors {
		logger.Error(e, "file", path)
	}
	if len(result.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: no scenarios imported", path)
	}
	logger.Debug("scenarios imported", "file", path, "count", len(result.Scenarios))
	return result.Scenarios, nil
}

// scenarioSource returns scenarios from file, or the library when file is empty.
func (c *CLI) scenarioSource(logger *log.Logger, file string) ([]model.Scenario, error) {
	if file != "" {
		scenarios, err := loadScenarioFile(logger, file, c.geometry.ScreenHeight)
		if err != nil {
			return nil, err
		}
		c.config.AddRecentFile(file, 10)
		if err := project.SaveAppConfig(c.configPath, c.config); err != nil {
			logger.Warn("could not record recent file", "err", err)
		}
		return scenarios, nil
	}
	store, err := project.LoadScenarios(c.scenarioPath)
	if err != nil {
		return nil, fmt.Errorf("load scenario library: %w", err)
	}
	return store.Scenarios, nil
}
