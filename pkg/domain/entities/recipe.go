package entities

import (
	"fmt"
	"strings"
)

// Recipe is a transformation rule executed by a building over a fixed
// duration. Inputs may be empty; outputs never are. Identity is the id.
type Recipe struct {
	id        string
	duration  uint32
	building  Building
	alternate bool
	inputs    []Reactant
	outputs   []Reactant
}

// NewRecipe creates a recipe. duration is in seconds and must be positive.
func NewRecipe(id string, duration uint32, building Building, alternate bool, inputs, outputs []Reactant) Recipe {
	return Recipe{id: id, duration: duration, building: building, alternate: alternate, inputs: inputs, outputs: outputs}
}

// ID returns the recipe identifier.
func (r Recipe) ID() string { return r.id }

// Duration returns the duration of one run, in seconds.
func (r Recipe) Duration() uint32 { return r.duration }

// Building returns the building executing the recipe.
func (r Recipe) Building() Building { return r.building }

// Alternate reports whether the recipe is an alternate unlock.
func (r Recipe) Alternate() bool { return r.alternate }

// Inputs returns the consumed reactants, in declaration order.
func (r Recipe) Inputs() []Reactant { return r.inputs }

// Outputs returns the produced reactants, in declaration order.
func (r Recipe) Outputs() []Reactant { return r.outputs }

// NbPerMinute returns how many runs one building completes per minute.
func (r Recipe) NbPerMinute() float64 {
	return 60 / float64(r.duration)
}

// UsesManualResources reports whether any input resource is extracted by hand.
func (r Recipe) UsesManualResources() bool {
	for _, reactant := range r.inputs {
		if resource, ok := AsResource(reactant.Item()); ok && resource.Extractor().IsManual() {
			return true
		}
	}
	return false
}

// UsesItem reports whether any reactant, input or output, references itemID.
func (r Recipe) UsesItem(itemID string) bool {
	for _, reactant := range r.inputs {
		if reactant.ItemID() == itemID {
			return true
		}
	}
	for _, reactant := range r.outputs {
		if reactant.ItemID() == itemID {
			return true
		}
	}
	return false
}

// InputReactant returns the input reactant for itemID, if present.
func (r Recipe) InputReactant(itemID string) (Reactant, bool) {
	for _, reactant := range r.inputs {
		if reactant.ItemID() == itemID {
			return reactant, true
		}
	}
	return Reactant{}, false
}

// OutputReactant returns the output reactant for itemID, if present.
func (r Recipe) OutputReactant(itemID string) (Reactant, bool) {
	for _, reactant := range r.outputs {
		if reactant.ItemID() == itemID {
			return reactant, true
		}
	}
	return Reactant{}, false
}

// InvolvedItems returns the input items followed by the output items.
func (r Recipe) InvolvedItems() []Item {
	items := make([]Item, 0, len(r.inputs)+len(r.outputs))
	for _, reactant := range r.inputs {
		items = append(items, reactant.Item())
	}
	for _, reactant := range r.outputs {
		items = append(items, reactant.Item())
	}
	return items
}

// Reaction renders the recipe as "q x in + ... -> q x out + ..." with every
// quantity scaled by amount.
func (r Recipe) Reaction(amount float64) string {
	var sb strings.Builder
	for i, reactant := range r.inputs {
		if i != 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%.4fx%s", amount*reactant.QuantityF64(), reactant.ItemID())
	}
	sb.WriteString(" -> ")
	for i, reactant := range r.outputs {
		if i != 0 {
			sb.WriteString(" + ")
		}
		fmt.Fprintf(&sb, "%.4fx%s", amount*reactant.QuantityF64(), reactant.ItemID())
	}
	return sb.String()
}

// String renders the recipe with unit quantities.
func (r Recipe) String() string {
	return r.Reaction(1)
}
