package entities

import "math"

// Eps is the dust threshold: amounts smaller than this are treated as zero.
const Eps = 1e-6

// IsNil reports whether v is indistinguishable from zero.
func IsNil(v float64) bool { return math.Abs(v) < Eps }

// ItemAmount pairs an item with a per-minute amount.
type ItemAmount struct {
	Item   Item
	Amount float64
}

// RecipeAmount pairs a recipe with its runs per minute.
type RecipeAmount struct {
	Recipe Recipe
	Amount float64
}

// BuildingCount pairs a building with the number of units to construct.
type BuildingCount struct {
	Building Building
	Count    uint32
}

// Bom is the complete plan for producing a target set: recipe rates,
// resource requirements, leftovers and buildings. The slices preserve
// insertion order; Recipes keeps the book's complexity order.
type Bom struct {
	Targets      []ItemAmount
	Available    []ItemAmount
	Requirements []ItemAmount
	Leftovers    []ItemAmount
	Recipes      []RecipeAmount
	Buildings    []BuildingCount
}

// NewBom assembles a BoM from classified amounts and used recipes, deriving
// the building counts: each recipe needs ceil(rate / throughput) buildings,
// and recipes sharing a building accumulate.
func NewBom(targets, available, requirements, leftovers []ItemAmount, recipes []RecipeAmount) *Bom {
	var buildings []BuildingCount
	index := make(map[string]int)

	for _, ra := range recipes {
		building := ra.Recipe.Building()
		count := uint32(math.Ceil(ra.Amount / ra.Recipe.NbPerMinute()))
		if i, ok := index[building.ID()]; ok {
			buildings[i].Count += count
		} else {
			index[building.ID()] = len(buildings)
			buildings = append(buildings, BuildingCount{Building: building, Count: count})
		}
	}

	return &Bom{
		Targets:      targets,
		Available:    available,
		Requirements: requirements,
		Leftovers:    leftovers,
		Recipes:      recipes,
		Buildings:    buildings,
	}
}

// TargetAmount returns the produced amount for a target item id.
func (b *Bom) TargetAmount(itemID string) (float64, bool) {
	return amountOf(b.Targets, itemID)
}

// AvailableAmount returns the starting stock for an item id.
func (b *Bom) AvailableAmount(itemID string) (float64, bool) {
	return amountOf(b.Available, itemID)
}

// RequirementAmount returns the extraction volume for a resource id.
func (b *Bom) RequirementAmount(itemID string) (float64, bool) {
	return amountOf(b.Requirements, itemID)
}

// LeftoverAmount returns the byproduct surplus for an item id.
func (b *Bom) LeftoverAmount(itemID string) (float64, bool) {
	return amountOf(b.Leftovers, itemID)
}

// TotalPower returns the power drawn by all buildings, in MW.
func (b *Bom) TotalPower() int32 {
	var total int32
	for _, bc := range b.Buildings {
		total += bc.Building.PowerUsage() * int32(bc.Count)
	}
	return total
}

func amountOf(amounts []ItemAmount, itemID string) (float64, bool) {
	for _, ia := range amounts {
		if ia.Item.ID() == itemID {
			return ia.Amount, true
		}
	}
	return 0, false
}
