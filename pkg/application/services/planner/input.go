// Package planner turns a problem input and a recipe book into a bill of
// materials by formulating and solving a linear program over recipe rates.
package planner

import (
	"github.com/Perococco/satisbom/pkg/domain/services"
)

// ProblemInput describes one planning request: the per-minute production
// targets, the items already on hand, whether extraction is weighted by
// resource abundance, and the recipe filter restricting the book.
type ProblemInput struct {
	TargetItems    map[string]uint32
	AvailableItems map[string]uint32
	UseAbundances  bool
	Filter         services.RecipeFilter
}

// DefaultProblemInput returns the input used when none is supplied: a small
// iron production line over the non-alternate recipes.
func DefaultProblemInput() ProblemInput {
	return ProblemInput{
		TargetItems: map[string]uint32{
			"iron_plate": 60,
			"iron_rod":   30,
		},
		AvailableItems: map[string]uint32{},
		UseAbundances:  false,
		Filter:         services.AllOf{services.NotAlternate{}},
	}
}
