package services

import (
	"sort"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// ComputeComplexities assigns each recipe a depth in the production DAG.
//
// An item's complexity is 0 when no recipe produces it, otherwise one more
// than the deepest input chain among its producing recipes. A recipe's
// complexity is the maximum complexity of its inputs (0 with no inputs).
// Cycles are broken by treating any item currently being explored as
// contributing 0; results are memoized once an item completes.
func ComputeComplexities(recipes []entities.Recipe) map[string]uint32 {
	producers := make(map[string][]int)
	for i, recipe := range recipes {
		for _, reactant := range recipe.Outputs() {
			producers[reactant.ItemID()] = append(producers[reactant.ItemID()], i)
		}
	}

	memo := make(map[string]uint32)
	inProgress := make(map[string]bool)

	var itemComplexity func(itemID string) uint32
	recipeComplexity := func(recipe entities.Recipe) uint32 {
		var c uint32
		for _, reactant := range recipe.Inputs() {
			if ic := itemComplexity(reactant.ItemID()); ic > c {
				c = ic
			}
		}
		return c
	}
	itemComplexity = func(itemID string) uint32 {
		if inProgress[itemID] {
			return 0
		}
		if c, ok := memo[itemID]; ok {
			return c
		}
		producing := producers[itemID]
		if len(producing) == 0 {
			memo[itemID] = 0
			return 0
		}
		inProgress[itemID] = true
		var c uint32
		for _, i := range producing {
			if rc := 1 + recipeComplexity(recipes[i]); rc > c {
				c = rc
			}
		}
		delete(inProgress, itemID)
		memo[itemID] = c
		return c
	}

	complexities := make(map[string]uint32, len(recipes))
	for _, recipe := range recipes {
		complexities[recipe.ID()] = recipeComplexity(recipe)
	}
	return complexities
}

// SortByComplexity reorders recipes in place by ascending complexity,
// keeping the original order among recipes of equal depth.
func SortByComplexity(recipes []entities.Recipe) map[string]uint32 {
	complexities := ComputeComplexities(recipes)
	sort.SliceStable(recipes, func(i, j int) bool {
		return complexities[recipes[i].ID()] < complexities[recipes[j].ID()]
	})
	return complexities
}
