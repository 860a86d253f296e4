package services

import (
	"errors"
	"sort"
	"testing"

	"pgregory.net/rapid"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

func filterTestRecipes() map[string]entities.Recipe {
	miner := entities.NewExtractor("miner_mk1", "miner", 5, 60)
	hand := entities.NewExtractor("hand", "manual", 0, 1)
	refinery := entities.NewProcessor("refinery", "processor", 30)
	blender := entities.NewProcessor("blender", "processor", 75)
	constructor := entities.NewProcessor("constructor", "processor", 4)

	ore := entities.NewResource("iron_ore", miner, nil)
	wood := entities.NewResource("wood", hand, nil)
	oil := entities.NewResource("crude_oil", miner, nil)
	ingot := entities.NewProduct("iron_ingot")
	biomass := entities.NewProduct("biomass")
	plastic := entities.NewProduct("plastic")
	fuel := entities.NewProduct("fuel")

	r := entities.NewReactant
	recipes := []entities.Recipe{
		entities.NewRecipe("_iron_ingot", 2, constructor, false,
			[]entities.Reactant{r(ore, 1)}, []entities.Reactant{r(ingot, 1)}),
		entities.NewRecipe("_cast_ingot", 4, constructor, true,
			[]entities.Reactant{r(ore, 2)}, []entities.Reactant{r(ingot, 3)}),
		entities.NewRecipe("_biomass_wood", 4, constructor, false,
			[]entities.Reactant{r(wood, 4)}, []entities.Reactant{r(biomass, 20)}),
		entities.NewRecipe("_plastic", 6, refinery, false,
			[]entities.Reactant{r(oil, 3)}, []entities.Reactant{r(plastic, 2)}),
		entities.NewRecipe("_diluted_fuel", 6, blender, true,
			[]entities.Reactant{r(oil, 5)}, []entities.Reactant{r(fuel, 10)}),
	}

	byID := make(map[string]entities.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID()] = recipe
	}
	return byID
}

func TestPrimitiveFilters(t *testing.T) {
	recipes := filterTestRecipes()

	tests := []struct {
		name   string
		filter RecipeFilter
		recipe string
		want   bool
	}{
		{"all recipes", AllRecipes{}, "_cast_ingot", true},
		{"not alternate rejects alternate", NotAlternate{}, "_cast_ingot", false},
		{"not alternate accepts base", NotAlternate{}, "_iron_ingot", true},
		{"not manual rejects hand-picked input", NotManual{}, "_biomass_wood", false},
		{"not manual accepts mined input", NotManual{}, "_iron_ingot", true},
		{"no refinery rejects refinery", NoRefinery{}, "_plastic", false},
		{"no refinery accepts blender", NoRefinery{}, "_diluted_fuel", true},
		{"no blender rejects blender", NoBlender{}, "_diluted_fuel", false},
		{"not named is case-insensitive", NotNamed{Name: "_IRON_INGOT"}, "_iron_ingot", false},
		{"not named accepts others", NotNamed{Name: "_iron_ingot"}, "_cast_ingot", true},
		{"not using rejects input reference", NotUsing{ItemID: "iron_ore"}, "_iron_ingot", false},
		{"not using rejects output reference", NotUsing{ItemID: "iron_ingot"}, "_cast_ingot", false},
		{"not using accepts unrelated", NotUsing{ItemID: "iron_ore"}, "_plastic", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(recipes[tt.recipe]); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.recipe, got, tt.want)
			}
		})
	}
}

func TestEmptyCombinators(t *testing.T) {
	recipe := filterTestRecipes()["_iron_ingot"]

	if !(AllOf{}).Matches(recipe) {
		t.Error("empty AllOf must accept")
	}
	if (AnyOf{}).Matches(recipe) {
		t.Error("empty AnyOf must reject")
	}
	if !(NoneOf{}).Matches(recipe) {
		t.Error("empty NoneOf must accept")
	}
}

func TestCombinators(t *testing.T) {
	recipes := filterTestRecipes()

	noOil := NoneOf{NotUsing{ItemID: "crude_oil"}}
	if noOil.Matches(recipes["_iron_ingot"]) {
		t.Error("NoneOf inverts its sub-filters")
	}
	if !noOil.Matches(recipes["_plastic"]) {
		t.Error("NoneOf accepts when every sub-filter rejects")
	}

	either := AnyOf{NotAlternate{}, NotUsing{ItemID: "iron_ore"}}
	if !either.Matches(recipes["_plastic"]) || either.Matches(recipes["_cast_ingot"]) {
		t.Error("AnyOf accepts when at least one sub-filter accepts")
	}
}

func TestNotNotIsIdentity(t *testing.T) {
	recipes := filterTestRecipes()
	filters := []RecipeFilter{
		AllRecipes{}, NotAlternate{}, NotManual{}, NoBlender{}, NoRefinery{},
		NotNamed{Name: "_iron_ingot"}, NotUsing{ItemID: "crude_oil"},
	}

	ids := make([]string, 0, len(recipes))
	for id := range recipes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rapid.Check(t, func(t *rapid.T) {
		filter := rapid.SampledFrom(filters).Draw(t, "filter")
		recipe := recipes[rapid.SampledFrom(ids).Draw(t, "recipe")]

		if (Not{Not{filter}}).Matches(recipe) != filter.Matches(recipe) {
			t.Fatalf("Not(Not(%s)) differs from %s on %s", filter.Spec(), filter.Spec(), recipe.ID())
		}
	})
}

func TestParseRecipeFilter(t *testing.T) {
	recipes := filterTestRecipes()

	tests := []struct {
		spec    string
		recipe  string
		matches bool
	}{
		{"", "_cast_ingot", true},
		{"all-recipes", "_cast_ingot", true},
		{"not-alternate", "_cast_ingot", false},
		{"not-alternate,not-manual", "_biomass_wood", false},
		{"not-alternate,not-manual", "_iron_ingot", true},
		{"no-refinery", "_plastic", false},
		{"no-blender", "_diluted_fuel", false},
		{"wo__iron_ingot", "_iron_ingot", false},
		{"wo__iron_ingot", "_cast_ingot", true},
		{"nu_crude_oil", "_plastic", false},
	}
	for _, tt := range tests {
		t.Run(tt.spec+"/"+tt.recipe, func(t *testing.T) {
			filter, err := ParseRecipeFilter(tt.spec)
			if err != nil {
				t.Fatalf("ParseRecipeFilter(%q) failed: %v", tt.spec, err)
			}
			if got := filter.Matches(recipes[tt.recipe]); got != tt.matches {
				t.Errorf("%q.Matches(%s) = %v, want %v", tt.spec, tt.recipe, got, tt.matches)
			}
		})
	}
}

func TestParseRecipeFilter_Invalid(t *testing.T) {
	_, err := ParseRecipeFilter("not-alternate,bogus")
	var parseErr entities.FilterParseError
	if !errors.As(err, &parseErr) || parseErr.Token != "bogus" {
		t.Errorf("error = %v, want FilterParseError{bogus}", err)
	}
}

func TestFilterSpecRoundTrip(t *testing.T) {
	specs := []string{"not-alternate", "not-alternate,not-manual,wo__x,nu_iron_ore", "no-blender,no-refinery"}
	for _, spec := range specs {
		filter, err := ParseRecipeFilter(spec)
		if err != nil {
			t.Fatalf("ParseRecipeFilter(%q) failed: %v", spec, err)
		}
		if filter.Spec() != spec {
			t.Errorf("Spec() = %q, want %q", filter.Spec(), spec)
		}
	}
}
