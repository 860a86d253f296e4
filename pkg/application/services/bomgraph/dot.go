package bomgraph

import (
	"gonum.org/v1/gonum/graph/encoding/dot"

	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// DOT serializes the graph in dot format, nodes ordered by insertion so the
// output is reproducible across runs.
func (g *Graph) DOT() ([]byte, error) {
	out, err := dot.Marshal(g.directed, "BOM", "", "  ")
	if err != nil {
		return nil, entities.DotError{Cause: err}
	}
	return out, nil
}
