// Package catalog parses the JSON production catalog into the domain model,
// resolving every cross-reference and sorting recipes by complexity.
package catalog

import (
	_ "embed"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/Perococco/satisbom/pkg/domain/entities"
	"github.com/Perococco/satisbom/pkg/domain/services"
)

//go:embed book.json
var embeddedBook []byte

// Load builds the catalog shipped inside the binary.
func Load() (*entities.FullBook, error) {
	return Parse(embeddedBook)
}

// Parse deserializes a catalog document and converts it into a FullBook.
// Every reference is resolved to a value: unknown item or building ids fail
// construction, as does a resource whose declared extractor is a processor.
func Parse(data []byte) (*entities.FullBook, error) {
	var dto bookDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, entities.BookError{Cause: err}
	}

	buildings, err := convertBuildings(dto.Buildings)
	if err != nil {
		return nil, err
	}

	items, err := convertItems(dto.Items, buildings)
	if err != nil {
		return nil, err
	}

	recipes := make([]entities.Recipe, 0, len(dto.Recipes))
	seen := make(map[string]bool, len(dto.Recipes))
	for _, r := range dto.Recipes {
		if seen[r.ID] {
			return nil, entities.BookError{Cause: fmt.Errorf("duplicate recipe id '%s'", r.ID)}
		}
		seen[r.ID] = true
		recipe, err := convertRecipe(r, items, buildings)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	services.SortByComplexity(recipes)

	return entities.NewFullBook(items, recipes), nil
}

func convertBuildings(dtos []buildingDTO) (map[string]entities.Building, error) {
	buildings := make(map[string]entities.Building, len(dtos))
	for _, b := range dtos {
		if _, exists := buildings[b.ID]; exists {
			return nil, entities.BookError{Cause: fmt.Errorf("duplicate building id '%s'", b.ID)}
		}
		if b.NormalExtractionRate != nil {
			buildings[b.ID] = entities.NewExtractor(b.ID, b.Kind, b.PowerUsage, *b.NormalExtractionRate)
		} else {
			buildings[b.ID] = entities.NewProcessor(b.ID, b.Kind, b.PowerUsage)
		}
	}
	return buildings, nil
}

func convertItems(dtos []itemDTO, buildings map[string]entities.Building) (map[string]entities.Item, error) {
	items := make(map[string]entities.Item, len(dtos))
	for _, i := range dtos {
		if _, exists := items[i.ID]; exists {
			return nil, entities.BookError{Cause: fmt.Errorf("duplicate item id '%s'", i.ID)}
		}
		item, err := convertItem(i, buildings)
		if err != nil {
			return nil, err
		}
		items[i.ID] = item
	}
	return items, nil
}

func convertItem(dto itemDTO, buildings map[string]entities.Building) (entities.Item, error) {
	if dto.Extractor == "" {
		return entities.NewProduct(dto.ID), nil
	}

	// Legacy catalogs name the tier-one miner plainly.
	extractorID := dto.Extractor
	if extractorID == "miner" {
		extractorID = "miner_mk1"
	}

	building, ok := buildings[extractorID]
	if !ok {
		return nil, entities.UnknownBuildingError{ID: dto.Extractor}
	}
	extractor, ok := building.(entities.Extractor)
	if !ok {
		return nil, entities.InvalidBuildingError{ID: dto.Extractor}
	}

	return entities.NewResource(dto.ID, extractor, convertNodes(dto)), nil
}

// convertNodes returns nil when no purity count is declared, which leaves
// the resource uncapped. Negative counts clamp to zero.
func convertNodes(dto itemDTO) *entities.Nodes {
	if dto.Impure == nil && dto.Normal == nil && dto.Pure == nil {
		return nil
	}
	return &entities.Nodes{
		Impure: clamp(dto.Impure),
		Normal: clamp(dto.Normal),
		Pure:   clamp(dto.Pure),
	}
}

func clamp(v *int32) uint32 {
	if v == nil || *v < 0 {
		return 0
	}
	return uint32(*v)
}

func convertRecipe(dto recipeDTO, items map[string]entities.Item, buildings map[string]entities.Building) (entities.Recipe, error) {
	if dto.Duration == 0 {
		return entities.Recipe{}, entities.BookError{Cause: fmt.Errorf("recipe '%s' has a zero duration", dto.ID)}
	}
	if len(dto.Outputs) == 0 {
		return entities.Recipe{}, entities.BookError{Cause: fmt.Errorf("recipe '%s' has no outputs", dto.ID)}
	}

	building, ok := buildings[dto.Building]
	if !ok {
		return entities.Recipe{}, entities.UnknownBuildingError{ID: dto.Building}
	}

	inputs, err := convertReactants(dto.Inputs, items)
	if err != nil {
		return entities.Recipe{}, err
	}
	outputs, err := convertReactants(dto.Outputs, items)
	if err != nil {
		return entities.Recipe{}, err
	}

	return entities.NewRecipe(dto.ID, dto.Duration, building, dto.Alternate, inputs, outputs), nil
}

func convertReactants(dtos []reactantDTO, items map[string]entities.Item) ([]entities.Reactant, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	reactants := make([]entities.Reactant, 0, len(dtos))
	for _, r := range dtos {
		item, ok := items[r.Item]
		if !ok {
			return nil, entities.UnknownItemError{ID: r.Item}
		}
		reactants = append(reactants, entities.NewReactant(item, r.Quantity))
	}
	return reactants, nil
}
