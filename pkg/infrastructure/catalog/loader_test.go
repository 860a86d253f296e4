package catalog

import (
	"errors"
	"testing"

	"github.com/Perococco/satisbom/pkg/domain/entities"
	"github.com/Perococco/satisbom/pkg/domain/services"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	book, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if book.NumberOfRecipes() == 0 {
		t.Fatal("embedded catalog has no recipes")
	}

	item, err := book.ItemByID("iron_ore")
	if err != nil {
		t.Fatalf("ItemByID(iron_ore) failed: %v", err)
	}
	resource, ok := entities.AsResource(item)
	if !ok {
		t.Fatal("iron_ore should be a resource")
	}
	// The catalog says "miner"; construction remaps it to the mk1 miner.
	if resource.Extractor().ID() != "miner_mk1" {
		t.Errorf("iron_ore extractor = %s, want miner_mk1", resource.Extractor().ID())
	}
	if mq, capped := resource.MaxQtyPerMinute(); !capped || mq != 33*300+41*600+46*780 {
		t.Errorf("iron_ore cap = (%v, %v)", mq, capped)
	}

	water, err := book.ItemByID("water")
	if err != nil {
		t.Fatalf("ItemByID(water) failed: %v", err)
	}
	if _, capped := water.(entities.Resource).MaxQtyPerMinute(); capped {
		t.Error("water should be uncapped")
	}

	if _, err := book.ItemByID("iron_plate"); err != nil {
		t.Errorf("ItemByID(iron_plate) failed: %v", err)
	}

	// Recipes come out sorted by ascending complexity.
	complexities := services.ComputeComplexities(book.Recipes())
	recipes := book.Recipes()
	for i := 1; i < len(recipes); i++ {
		if complexities[recipes[i-1].ID()] > complexities[recipes[i].ID()] {
			t.Errorf("recipes out of order: %s before %s", recipes[i-1].ID(), recipes[i].ID())
		}
	}
}

func TestParse_UnknownExtractor(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t", "buildings": [],
		"items": [ { "id": "iron_ore", "extractor": "digger" } ],
		"recipes": []
	}`))
	var unknownErr entities.UnknownBuildingError
	if !errors.As(err, &unknownErr) || unknownErr.ID != "digger" {
		t.Errorf("error = %v, want UnknownBuildingError{digger}", err)
	}
}

func TestParse_ProcessorAsExtractor(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t",
		"buildings": [ { "id": "smelter", "type": "processor", "power-usage": 4 } ],
		"items": [ { "id": "iron_ore", "extractor": "smelter" } ],
		"recipes": []
	}`))
	var invalidErr entities.InvalidBuildingError
	if !errors.As(err, &invalidErr) || invalidErr.ID != "smelter" {
		t.Errorf("error = %v, want InvalidBuildingError{smelter}", err)
	}
}

func TestParse_UnknownReactantItem(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t",
		"buildings": [ { "id": "smelter", "type": "processor", "power-usage": 4 } ],
		"items": [ { "id": "iron_ingot" } ],
		"recipes": [ {
			"id": "_x", "duration": 2, "building": "smelter", "alternate": false,
			"inputs": [ { "item": "iron_ore", "quantity": 1 } ],
			"outputs": [ { "item": "iron_ingot", "quantity": 1 } ]
		} ]
	}`))
	var unknownErr entities.UnknownItemError
	if !errors.As(err, &unknownErr) || unknownErr.ID != "iron_ore" {
		t.Errorf("error = %v, want UnknownItemError{iron_ore}", err)
	}
}

func TestParse_UnknownRecipeBuilding(t *testing.T) {
	_, err := Parse([]byte(`{
		"name": "t", "buildings": [],
		"items": [ { "id": "iron_ingot" } ],
		"recipes": [ {
			"id": "_x", "duration": 2, "building": "smelter", "alternate": false,
			"inputs": [],
			"outputs": [ { "item": "iron_ingot", "quantity": 1 } ]
		} ]
	}`))
	var unknownErr entities.UnknownBuildingError
	if !errors.As(err, &unknownErr) || unknownErr.ID != "smelter" {
		t.Errorf("error = %v, want UnknownBuildingError{smelter}", err)
	}
}

func TestParse_NegativeNodesClampToZero(t *testing.T) {
	book, err := Parse([]byte(`{
		"name": "t",
		"buildings": [ { "id": "miner_mk1", "type": "miner", "power-usage": 5, "normal-extraction-rate": 60 } ],
		"items": [ { "id": "iron_ore", "extractor": "miner_mk1", "impure": -3, "normal": 2, "pure": -1 } ],
		"recipes": []
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	item, err := book.ItemByID("iron_ore")
	if err != nil {
		t.Fatalf("ItemByID failed: %v", err)
	}
	mq, capped := item.(entities.Resource).MaxQtyPerMinute()
	if !capped || mq != 2*600 {
		t.Errorf("cap = (%v, %v), want (1200, true)", mq, capped)
	}
}

func TestParse_MalformedDocument(t *testing.T) {
	_, err := Parse([]byte(`{"name": `))
	var bookErr entities.BookError
	if !errors.As(err, &bookErr) {
		t.Errorf("error = %v, want BookError", err)
	}
}

func TestParse_InvalidRecipes(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero duration", `{
			"name": "t",
			"buildings": [ { "id": "smelter", "type": "processor", "power-usage": 4 } ],
			"items": [ { "id": "x" } ],
			"recipes": [ { "id": "_x", "duration": 0, "building": "smelter", "alternate": false,
				"inputs": [], "outputs": [ { "item": "x", "quantity": 1 } ] } ]
		}`},
		{"no outputs", `{
			"name": "t",
			"buildings": [ { "id": "smelter", "type": "processor", "power-usage": 4 } ],
			"items": [ { "id": "x" } ],
			"recipes": [ { "id": "_x", "duration": 2, "building": "smelter", "alternate": false,
				"inputs": [], "outputs": [] } ]
		}`},
		{"duplicate recipe id", `{
			"name": "t",
			"buildings": [ { "id": "smelter", "type": "processor", "power-usage": 4 } ],
			"items": [ { "id": "x" } ],
			"recipes": [
				{ "id": "_x", "duration": 2, "building": "smelter", "alternate": false,
					"inputs": [], "outputs": [ { "item": "x", "quantity": 1 } ] },
				{ "id": "_x", "duration": 2, "building": "smelter", "alternate": false,
					"inputs": [], "outputs": [ { "item": "x", "quantity": 1 } ] }
			]
		}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			var bookErr entities.BookError
			if !errors.As(err, &bookErr) {
				t.Errorf("error = %v, want BookError", err)
			}
		})
	}
}
