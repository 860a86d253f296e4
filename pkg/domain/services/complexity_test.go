package services

import (
	"testing"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

var (
	testMiner       = entities.NewExtractor("miner_mk1", "miner", 5, 60)
	testSmelter     = entities.NewProcessor("smelter", "processor", 4)
	testConstructor = entities.NewProcessor("constructor", "processor", 4)
)

func ironChain() []entities.Recipe {
	ore := entities.NewResource("iron_ore", testMiner, nil)
	ingot := entities.NewProduct("iron_ingot")
	plate := entities.NewProduct("iron_plate")
	rod := entities.NewProduct("iron_rod")
	screw := entities.NewProduct("screw")

	r := entities.NewReactant
	return []entities.Recipe{
		entities.NewRecipe("_screw", 6, testConstructor, false,
			[]entities.Reactant{r(rod, 1)}, []entities.Reactant{r(screw, 4)}),
		entities.NewRecipe("_iron_plate", 6, testConstructor, false,
			[]entities.Reactant{r(ingot, 3)}, []entities.Reactant{r(plate, 2)}),
		entities.NewRecipe("_iron_rod", 4, testConstructor, false,
			[]entities.Reactant{r(ingot, 1)}, []entities.Reactant{r(rod, 1)}),
		entities.NewRecipe("_iron_ingot", 2, testSmelter, false,
			[]entities.Reactant{r(ore, 1)}, []entities.Reactant{r(ingot, 1)}),
	}
}

func TestComputeComplexities(t *testing.T) {
	complexities := ComputeComplexities(ironChain())

	want := map[string]uint32{
		"_iron_ingot": 0,
		"_iron_plate": 1,
		"_iron_rod":   1,
		"_screw":      2,
	}
	for id, depth := range want {
		if complexities[id] != depth {
			t.Errorf("complexity of %s = %d, want %d", id, complexities[id], depth)
		}
	}
}

func TestSortByComplexity(t *testing.T) {
	recipes := ironChain()
	SortByComplexity(recipes)

	wantOrder := []string{"_iron_ingot", "_iron_plate", "_iron_rod", "_screw"}
	for i, id := range wantOrder {
		if recipes[i].ID() != id {
			t.Errorf("recipes[%d] = %s, want %s", i, recipes[i].ID(), id)
		}
	}
}

func TestSortByComplexity_StableTies(t *testing.T) {
	ingot := entities.NewProduct("iron_ingot")
	a := entities.NewProduct("a")
	b := entities.NewProduct("b")

	r := entities.NewReactant
	recipes := []entities.Recipe{
		entities.NewRecipe("_b", 2, testConstructor, false,
			[]entities.Reactant{r(ingot, 1)}, []entities.Reactant{r(b, 1)}),
		entities.NewRecipe("_a", 2, testConstructor, false,
			[]entities.Reactant{r(ingot, 1)}, []entities.Reactant{r(a, 1)}),
	}
	SortByComplexity(recipes)

	// Equal depth: the original order survives.
	if recipes[0].ID() != "_b" || recipes[1].ID() != "_a" {
		t.Errorf("tie order = [%s, %s], want [_b, _a]", recipes[0].ID(), recipes[1].ID())
	}
}

func TestComputeComplexities_Cycle(t *testing.T) {
	// a makes b, b makes a: the revisited item contributes 0 instead of
	// recursing forever.
	a := entities.NewProduct("a")
	b := entities.NewProduct("b")

	r := entities.NewReactant
	recipes := []entities.Recipe{
		entities.NewRecipe("_ab", 2, testConstructor, false,
			[]entities.Reactant{r(a, 1)}, []entities.Reactant{r(b, 1)}),
		entities.NewRecipe("_ba", 2, testConstructor, false,
			[]entities.Reactant{r(b, 1)}, []entities.Reactant{r(a, 1)}),
	}

	complexities := ComputeComplexities(recipes)
	for id, depth := range complexities {
		if depth > 2 {
			t.Errorf("complexity of %s = %d, cycle should stay bounded", id, depth)
		}
	}
}

func TestComputeComplexities_NoInputs(t *testing.T) {
	out := entities.NewProduct("out")
	recipes := []entities.Recipe{
		entities.NewRecipe("_free", 2, testConstructor, false,
			nil, []entities.Reactant{entities.NewReactant(out, 1)}),
	}
	if c := ComputeComplexities(recipes)["_free"]; c != 0 {
		t.Errorf("complexity of input-less recipe = %d, want 0", c)
	}
}
