package engine

import (
	"fmt"
	"slices"

	"github.com/piwi3910/CrankHint/internal/model"
)

// curatedOrders are the processing orders tried in game. With three roles
// every permutation is cheap enough. With four, only orders that place the
// action target first are tried so it always gets first pick of the border.
var curatedOrders = map[int][][]model.Role{
	3: {
		{1, 2, 3}, {1, 3, 2},
		{2, 1, 3}, {2, 3, 1},
		{3, 1, 2}, {3, 2, 1},
	},
	4: {
		{4, 1, 2, 3}, {4, 1, 3, 2},
		{4, 2, 1, 3}, {4, 2, 3, 1},
		{4, 3, 1, 2}, {4, 3, 2, 1},
	},
}

// Orders returns the processing orders the search tries for n targets.
// It returns nil when n is not a supported target count.
func Orders(n int, mode model.SearchMode) [][]model.Role {
	if mode == model.SearchExhaustive && n >= 3 && n <= model.MaxRoles {
		return permutations(n)
	}
	table, ok := curatedOrders[n]
	if !ok {
		return nil
	}
	orders := make([][]model.Role, len(table))
	for i, o := range table {
		orders[i] = slices.Clone(o)
	}
	return orders
}

// permutations returns every ordering of roles 1..n in lexicographic order,
// so ties resolve the same way the curated tables do.
func permutations(n int) [][]model.Role {
	current := make([]model.Role, n)
	for i := range current {
		current[i] = model.Role(i + 1)
	}
	result := [][]model.Role{slices.Clone(current)}
	for nextPermutation(current) {
		result = append(result, slices.Clone(current))
	}
	return result
}

func nextPermutation(p []model.Role) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}

// Placer runs the overlay placement search for one screen geometry.
type Placer struct {
	Geometry model.Geometry
	Mode     model.SearchMode
}

// New returns a Placer that uses the curated order tables.
func New(geo model.Geometry) *Placer {
	return &Placer{Geometry: geo, Mode: model.SearchCurated}
}

// Attempt is the outcome of one greedy pass.
type Attempt struct {
	Order []model.Role
	Set   model.PlacementSet
	Err   error
}

// SearchResult holds the winning placement and every pass that was tried.
type SearchResult struct {
	Best      model.PlacementSet
	BestIndex int
	Attempts  []Attempt
}

// Evaluate runs one greedy pass per processing order and keeps the cheapest
// set. The first order wins ties. A pass that cannot place some target aborts
// the search with a *PlacementError; the attempts made so far are still
// returned for diagnostics.
func (p *Placer) Evaluate(targets []model.TargetPoint) (SearchResult, error) {
	orders := Orders(len(targets), p.Mode)
	if len(orders) == 0 {
		return SearchResult{}, fmt.Errorf("%w: got %d", model.ErrTargetCount, len(targets))
	}

	candidates := Perimeter(p.Geometry)
	v := Validator{Geometry: p.Geometry}

	result := SearchResult{
		BestIndex: -1,
		Attempts:  make([]Attempt, 0, len(orders)),
	}
	for i, order := range orders {
		set, err := placeGreedy(candidates, v, targets, order)
		result.Attempts = append(result.Attempts, Attempt{Order: order, Set: set, Err: err})
		if err != nil {
			return result, err
		}
		if result.BestIndex < 0 || set.Cost < result.Best.Cost {
			result.Best = set
			result.BestIndex = i
		}
	}
	return result, nil
}

// Place returns the cheapest placement for targets. It panics when no legal
// placement exists: that only happens if the geometry constants contradict
// each other, which is a programming error rather than a runtime condition.
func (p *Placer) Place(targets []model.TargetPoint) model.PlacementSet {
	result, err := p.Evaluate(targets)
	if err != nil {
		panic(err)
	}
	return result.Best
}
