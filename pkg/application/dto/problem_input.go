// Package dto carries the JSON shapes exchanged with the user: the problem
// input written by `dump` and read back by `bom -i`.
package dto

import (
	json "github.com/goccy/go-json"

	"github.com/Perococco/satisbom/pkg/application/services/planner"
	"github.com/Perococco/satisbom/pkg/domain/services"
)

// ProblemInputDTO is the serialized form of a planning request. The filter
// uses the comma-separated mini-language.
type ProblemInputDTO struct {
	Targets       map[string]uint32 `json:"targets"`
	Available     map[string]uint32 `json:"available"`
	UseAbundances bool              `json:"use-abundances"`
	Filter        string            `json:"filter"`
}

// FromProblemInput converts a planning request to its serialized form.
func FromProblemInput(input planner.ProblemInput) ProblemInputDTO {
	filter := ""
	if input.Filter != nil {
		filter = input.Filter.Spec()
	}
	return ProblemInputDTO{
		Targets:       input.TargetItems,
		Available:     input.AvailableItems,
		UseAbundances: input.UseAbundances,
		Filter:        filter,
	}
}

// ToProblemInput parses the serialized request, including its filter spec.
func (d ProblemInputDTO) ToProblemInput() (planner.ProblemInput, error) {
	filter, err := services.ParseRecipeFilter(d.Filter)
	if err != nil {
		return planner.ProblemInput{}, err
	}
	targets := d.Targets
	if targets == nil {
		targets = map[string]uint32{}
	}
	available := d.Available
	if available == nil {
		available = map[string]uint32{}
	}
	return planner.ProblemInput{
		TargetItems:    targets,
		AvailableItems: available,
		UseAbundances:  d.UseAbundances,
		Filter:         filter,
	}, nil
}

// Marshal serializes the request with stable key ordering.
func (d ProblemInputDTO) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalProblemInput deserializes a request document.
func UnmarshalProblemInput(data []byte) (ProblemInputDTO, error) {
	var d ProblemInputDTO
	if err := json.Unmarshal(data, &d); err != nil {
		return ProblemInputDTO{}, err
	}
	return d, nil
}
