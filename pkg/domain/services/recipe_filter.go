package services

import (
	"strings"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// RecipeFilter is a boolean predicate tree over recipes.
type RecipeFilter interface {
	// Matches reports whether the recipe is admitted.
	Matches(recipe entities.Recipe) bool
	// Spec returns the filter in the string mini-language, when the filter
	// is expressible in it.
	Spec() string
}

// AllRecipes admits every recipe.
type AllRecipes struct{}

func (AllRecipes) Matches(entities.Recipe) bool { return true }
func (AllRecipes) Spec() string                 { return "all-recipes" }

// NotAlternate rejects alternate recipes.
type NotAlternate struct{}

func (NotAlternate) Matches(recipe entities.Recipe) bool { return !recipe.Alternate() }
func (NotAlternate) Spec() string                        { return "not-alternate" }

// NotManual rejects recipes consuming hand-picked resources.
type NotManual struct{}

func (NotManual) Matches(recipe entities.Recipe) bool { return !recipe.UsesManualResources() }
func (NotManual) Spec() string                        { return "not-manual" }

// NoBlender rejects recipes executed in a blender.
type NoBlender struct{}

func (NoBlender) Matches(recipe entities.Recipe) bool { return recipe.Building().ID() != "blender" }
func (NoBlender) Spec() string                        { return "no-blender" }

// NoRefinery rejects recipes executed in a refinery.
type NoRefinery struct{}

func (NoRefinery) Matches(recipe entities.Recipe) bool { return recipe.Building().ID() != "refinery" }
func (NoRefinery) Spec() string                        { return "no-refinery" }

// NotNamed rejects the recipe with the given id, case-insensitively.
type NotNamed struct {
	Name string
}

func (f NotNamed) Matches(recipe entities.Recipe) bool {
	return !strings.EqualFold(f.Name, recipe.ID())
}
func (f NotNamed) Spec() string { return "wo_" + f.Name }

// NotUsing rejects recipes referencing the given item id on either side.
type NotUsing struct {
	ItemID string
}

func (f NotUsing) Matches(recipe entities.Recipe) bool { return !recipe.UsesItem(f.ItemID) }
func (f NotUsing) Spec() string                        { return "nu_" + f.ItemID }

// Not inverts a filter.
type Not struct {
	Filter RecipeFilter
}

func (f Not) Matches(recipe entities.Recipe) bool { return !f.Filter.Matches(recipe) }
func (f Not) Spec() string                        { return "not(" + f.Filter.Spec() + ")" }

// AllOf admits a recipe accepted by every sub-filter. Empty means true.
type AllOf []RecipeFilter

func (f AllOf) Matches(recipe entities.Recipe) bool {
	for _, sub := range f {
		if !sub.Matches(recipe) {
			return false
		}
	}
	return true
}

func (f AllOf) Spec() string { return joinSpecs(f) }

// AnyOf admits a recipe accepted by at least one sub-filter. Empty means false.
type AnyOf []RecipeFilter

func (f AnyOf) Matches(recipe entities.Recipe) bool {
	for _, sub := range f {
		if sub.Matches(recipe) {
			return true
		}
	}
	return false
}

func (f AnyOf) Spec() string { return "any-of(" + joinSpecs(f) + ")" }

// NoneOf admits a recipe rejected by every sub-filter. Empty means true.
type NoneOf []RecipeFilter

func (f NoneOf) Matches(recipe entities.Recipe) bool {
	for _, sub := range f {
		if sub.Matches(recipe) {
			return false
		}
	}
	return true
}

func (f NoneOf) Spec() string { return "none-of(" + joinSpecs(f) + ")" }

func joinSpecs(filters []RecipeFilter) string {
	specs := make([]string, len(filters))
	for i, f := range filters {
		specs[i] = f.Spec()
	}
	return strings.Join(specs, ",")
}

// ParseRecipeFilter parses the comma-separated filter mini-language. Literal
// tokens name the primitive filters; "wo_<name>" excludes a recipe by name
// and "nu_<id>" excludes recipes using an item. The token list becomes an
// AllOf, so the empty string admits every recipe.
func ParseRecipeFilter(spec string) (RecipeFilter, error) {
	var filters AllOf
	for _, token := range strings.Split(spec, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		filter, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		filters = append(filters, filter)
	}
	return filters, nil
}

func parseToken(token string) (RecipeFilter, error) {
	switch token {
	case "all-recipes":
		return AllRecipes{}, nil
	case "not-alternate":
		return NotAlternate{}, nil
	case "not-manual":
		return NotManual{}, nil
	case "no-blender":
		return NoBlender{}, nil
	case "no-refinery":
		return NoRefinery{}, nil
	}
	if name, ok := strings.CutPrefix(token, "wo_"); ok {
		return NotNamed{Name: name}, nil
	}
	if itemID, ok := strings.CutPrefix(token, "nu_"); ok {
		return NotUsing{ItemID: itemID}, nil
	}
	return nil, entities.FilterParseError{Token: token}
}
