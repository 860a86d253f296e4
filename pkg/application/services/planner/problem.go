package planner

import (
	"sort"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// uncappedWeight is the objective denominator for resources without an
// extraction cap: a large value makes them nearly free, so the planner
// treats them as abundant.
const uncappedWeight = 1e9

// problem is the linear program formulated from (input, book). The decision
// variables are the per-minute run counts of the book's recipes, one
// non-negative variable per recipe. Every item referenced by a recipe or by
// the input gets a balance expression: an affine combination of the
// variables plus the available stock.
type problem struct {
	input   ProblemInput
	recipes []entities.Recipe

	// items holds the balance rows in first-reference order so that every
	// downstream iteration is deterministic.
	items     []entities.Item
	itemIndex map[string]int
	balance   [][]float64 // coefficient of each recipe variable, per item
	available []float64   // constant term, per item
	target    map[int]float64
}

// formulate builds the balance expressions for every recipe of the filtered
// book and applies the input's available stock and targets.
func formulate(input ProblemInput, book entities.Book) (*problem, error) {
	p := &problem{
		input:     input,
		itemIndex: make(map[string]int),
		target:    make(map[int]float64),
	}

	for i := 0; i < book.NumberOfRecipes(); i++ {
		recipe, err := book.Recipe(i)
		if err != nil {
			return nil, err
		}
		p.recipes = append(p.recipes, recipe)
	}

	for j, recipe := range p.recipes {
		for _, reactant := range recipe.Inputs() {
			p.addQuantity(reactant.Item(), j, -reactant.QuantityF64())
		}
		for _, reactant := range recipe.Outputs() {
			p.addQuantity(reactant.Item(), j, reactant.QuantityF64())
		}
	}

	for _, itemID := range sortedKeys(input.AvailableItems) {
		item, err := book.ItemByID(itemID)
		if err != nil {
			return nil, err
		}
		p.available[p.ensureItem(item)] += float64(input.AvailableItems[itemID])
	}

	for _, itemID := range sortedKeys(input.TargetItems) {
		item, err := book.ItemByID(itemID)
		if err != nil {
			return nil, err
		}
		p.target[p.ensureItem(item)] = float64(input.TargetItems[itemID])
	}

	return p, nil
}

func (p *problem) ensureItem(item entities.Item) int {
	if i, ok := p.itemIndex[item.ID()]; ok {
		return i
	}
	i := len(p.items)
	p.itemIndex[item.ID()] = i
	p.items = append(p.items, item)
	p.balance = append(p.balance, make([]float64, len(p.recipes)))
	p.available = append(p.available, 0)
	return i
}

func (p *problem) addQuantity(item entities.Item, recipe int, quantity float64) {
	i := p.ensureItem(item)
	p.balance[i][recipe] += quantity
}

// totalCap sums the extraction caps of every capped resource in the problem.
// It scales the resource terms of the objective, so that one unit extracted
// from a resource with a positive cap weighs at least as much as one recipe
// run of the tiebreak; uncapped resources, divided by uncappedWeight, stay
// nearly free, and with no capped resource the resource terms are zero.
func (p *problem) totalCap() float64 {
	var total float64
	for _, item := range p.items {
		if resource, ok := entities.AsResource(item); ok {
			if mq, capped := resource.MaxQtyPerMinute(); capped {
				total += mq
			}
		}
	}
	return total
}

// objective returns the minimization coefficients over the recipe variables.
// Each recipe contributes 1 (minimal total work tiebreak). Each non-target
// resource balance E(i) is subtracted scaled by totalCap and divided by the
// resource's weight: its cap when abundance weighting is on, 1 otherwise,
// and a large denominator for uncapped resources.
func (p *problem) objective() []float64 {
	c := make([]float64, len(p.recipes))
	for j := range c {
		c[j] = 1
	}

	total := p.totalCap()
	for i, item := range p.items {
		if _, targeted := p.target[i]; targeted {
			continue
		}
		resource, ok := entities.AsResource(item)
		if !ok {
			continue
		}

		weight := uncappedWeight
		if mq, capped := resource.MaxQtyPerMinute(); capped {
			weight = 1
			if p.input.UseAbundances && mq > 0 {
				weight = mq
			}
		}
		for j, coeff := range p.balance[i] {
			c[j] -= coeff * total / weight
		}
	}
	return c
}

// evaluate computes the balance value of item row i at the solved rates.
func (p *problem) evaluate(i int, rates []float64) float64 {
	v := p.available[i]
	for j, coeff := range p.balance[i] {
		v += coeff * rates[j]
	}
	return v
}

func sortedKeys(m map[string]uint32) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
