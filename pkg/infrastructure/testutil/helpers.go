// Package testutil builds small catalogs for tests.
package testutil

import (
	"github.com/Perococco/satisbom/pkg/domain/entities"
	"github.com/Perococco/satisbom/pkg/domain/services"
)

// Standard test buildings.
var (
	Smelter     = entities.NewProcessor("smelter", "processor", 4)
	Constructor = entities.NewProcessor("constructor", "processor", 4)
	Assembler   = entities.NewProcessor("assembler", "processor", 15)
	MinerMk1    = entities.NewExtractor("miner_mk1", "miner", 5, 60)
	Hand        = entities.NewExtractor("hand", "manual", 0, 1)
)

// BookBuilder accumulates items and recipes and produces a complexity-sorted
// catalog.
type BookBuilder struct {
	items   map[string]entities.Item
	recipes []entities.Recipe
}

// NewBookBuilder creates an empty builder.
func NewBookBuilder() *BookBuilder {
	return &BookBuilder{items: make(map[string]entities.Item)}
}

// Resource registers a resource extracted by the tier-one miner.
func (b *BookBuilder) Resource(id string, nodes *entities.Nodes) entities.Resource {
	resource := entities.NewResource(id, MinerMk1, nodes)
	b.items[id] = resource
	return resource
}

// ManualResource registers a hand-picked resource.
func (b *BookBuilder) ManualResource(id string, nodes *entities.Nodes) entities.Resource {
	resource := entities.NewResource(id, Hand, nodes)
	b.items[id] = resource
	return resource
}

// Product registers a product.
func (b *BookBuilder) Product(id string) entities.Product {
	product := entities.NewProduct(id)
	b.items[id] = product
	return product
}

// Recipe registers a recipe.
func (b *BookBuilder) Recipe(id string, duration uint32, building entities.Building, alternate bool, inputs, outputs []entities.Reactant) {
	b.recipes = append(b.recipes, entities.NewRecipe(id, duration, building, alternate, inputs, outputs))
}

// Build sorts the recipes by complexity and returns the catalog.
func (b *BookBuilder) Build() *entities.FullBook {
	services.SortByComplexity(b.recipes)
	return entities.NewFullBook(b.items, b.recipes)
}

// R builds a reactant.
func R(item entities.Item, quantity uint32) entities.Reactant {
	return entities.NewReactant(item, quantity)
}

// In builds an input reactant list.
func In(reactants ...entities.Reactant) []entities.Reactant { return reactants }

// Out builds an output reactant list.
func Out(reactants ...entities.Reactant) []entities.Reactant { return reactants }

// NormalNodes returns a Nodes record with n normal deposits.
func NormalNodes(n uint32) *entities.Nodes {
	return &entities.Nodes{Normal: n}
}

// IronBook builds the one-step iron smelting catalog: one normal iron node,
// one smelting recipe.
func IronBook() *entities.FullBook {
	b := NewBookBuilder()
	ore := b.Resource("iron_ore", NormalNodes(1))
	ingot := b.Product("iron_ingot")
	b.Recipe("_iron_ingot", 2, Smelter, false, In(R(ore, 1)), Out(R(ingot, 1)))
	return b.Build()
}
