package engine

import (
	"github.com/piwi3910/CrankHint/internal/model"
)

// ComparisonResult holds the curated and exhaustive placements for one scenario.
type ComparisonResult struct {
	Scenario        model.Scenario
	Curated         model.PlacementSet
	Exhaustive      model.PlacementSet
	CuratedTried    int
	ExhaustiveTried int
	Regret          int // Curated.Cost - Exhaustive.Cost, never negative
	Err             error
}

// RegretPercent returns the regret relative to the exhaustive cost.
func (r ComparisonResult) RegretPercent() float64 {
	if r.Err != nil || r.Exhaustive.Cost == 0 {
		return 0
	}
	return 100.0 * float64(r.Regret) / float64(r.Exhaustive.Cost)
}

// CompareModes places every scenario with the curated order tables and with
// every permutation, showing how much the curated tables give up. A scenario
// whose targets are invalid, or that cannot be placed, records the error and
// the comparison moves on.
func CompareModes(geo model.Geometry, scenarios []model.Scenario) []ComparisonResult {
	curated := &Placer{Geometry: geo, Mode: model.SearchCurated}
	exhaustive := &Placer{Geometry: geo, Mode: model.SearchExhaustive}

	results := make([]ComparisonResult, 0, len(scenarios))
	for _, sc := range scenarios {
		r := ComparisonResult{Scenario: sc}
		if err := model.ValidateTargets(sc.Targets); err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}

		cr, err := curated.Evaluate(sc.Targets)
		r.CuratedTried = len(cr.Attempts)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}
		er, err := exhaustive.Evaluate(sc.Targets)
		r.ExhaustiveTried = len(er.Attempts)
		if err != nil {
			r.Err = err
			results = append(results, r)
			continue
		}

		r.Curated = cr.Best
		r.Exhaustive = er.Best
		r.Regret = cr.Best.Cost - er.Best.Cost
		results = append(results, r)
	}
	return results
}

// AuditSummary aggregates a comparison run.
type AuditSummary struct {
	Scenarios  int
	Failed     int
	Suboptimal int // Scenarios where the curated tables cost more than the best order
	MaxRegret  int
	MaxName    string
}

// Summarize aggregates comparison results.
func Summarize(results []ComparisonResult) AuditSummary {
	s := AuditSummary{Scenarios: len(results)}
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
			continue
		}
		if r.Regret > 0 {
			s.Suboptimal++
		}
		if r.Regret > s.MaxRegret {
			s.MaxRegret = r.Regret
			s.MaxName = r.Scenario.Name
		}
	}
	return s
}
