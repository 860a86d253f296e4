package bomgraph

import (
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"

	"github.com/Perococco/satisbom/pkg/domain/amount"
	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// Rendering colors per node kind.
const (
	recipeColor       = "#98B3FF"
	targetColor       = "#7EFF99"
	requirementColor  = "#FF8075"
	availableColor    = "#FFD512"
	intermediateColor = "#000000"
	leftOverColor     = "#DC14FF"
)

// Node is either an item node or a recipe node of the BoM graph.
type Node struct {
	id     int64
	item   entities.Item // nil for recipe nodes
	recipe *entities.Recipe
	Type   ItemType
	Amount float64
	format amount.Format
}

// ID returns the graph-internal node id.
func (n *Node) ID() int64 { return n.id }

// IsRecipe reports whether the node stands for a recipe.
func (n *Node) IsRecipe() bool { return n.recipe != nil }

// Item returns the item of an item node, or nil.
func (n *Node) Item() entities.Item { return n.item }

// Recipe returns the recipe of a recipe node.
func (n *Node) Recipe() *entities.Recipe { return n.recipe }

// DOTID returns "<item_id>_<ItemType>" for item nodes and the recipe id for
// recipe nodes.
func (n *Node) DOTID() string {
	if n.IsRecipe() {
		return n.recipe.ID()
	}
	return n.item.ID() + "_" + n.Type.String()
}

// Attributes renders the dot styling: box shape, solid style for
// intermediates and filled otherwise, the kind's color, and a two-line
// label of the display name over the formatted amount. Recipe amounts are
// displayed in buildings-needed units.
func (n *Node) Attributes() []encoding.Attribute {
	var name string
	displayed := n.Amount
	color := intermediateColor
	style := "solid"

	if n.IsRecipe() {
		name = n.recipe.ID()
		displayed = n.Amount / n.recipe.NbPerMinute()
		color = recipeColor
		style = "filled"
	} else {
		name = n.item.ID()
		switch n.Type {
		case Target:
			color, style = targetColor, "filled"
		case Requirement:
			color, style = requirementColor, "filled"
		case Available:
			color, style = availableColor, "filled"
		case LeftOver:
			color, style = leftOverColor, "filled"
		}
	}

	label := strings.ReplaceAll(name, "_", " ") + `\n` + n.format.Format(displayed)
	return []encoding.Attribute{
		{Key: "shape", Value: "box"},
		{Key: "style", Value: style},
		{Key: "color", Value: quote(color)},
		{Key: "label", Value: quote(label)},
	}
}

// Edge links two nodes, optionally labelled with the flowing quantity.
type Edge struct {
	from, to *Node
	label    string
}

// From returns the edge origin.
func (e *Edge) From() graph.Node { return e.from }

// To returns the edge destination.
func (e *Edge) To() graph.Node { return e.to }

// ReversedEdge returns the edge with its endpoints swapped.
func (e *Edge) ReversedEdge() graph.Edge {
	return &Edge{from: e.to, to: e.from, label: e.label}
}

// Label returns the flow label, empty when the flow matches the item node's
// amount.
func (e *Edge) Label() string { return e.label }

// Attributes renders the edge label.
func (e *Edge) Attributes() []encoding.Attribute {
	if e.label == "" {
		return nil
	}
	return []encoding.Attribute{{Key: "label", Value: quote(e.label)}}
}

// quote wraps a value in double quotes for dot output; the encoder emits
// attribute values verbatim.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
