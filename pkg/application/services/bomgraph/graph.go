// Package bomgraph derives a directed graph from a bill of materials for
// visualization: one node per used recipe, typed item nodes, and edges
// labelled with the flow quantities.
package bomgraph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/Perococco/satisbom/pkg/domain/amount"
	"github.com/Perococco/satisbom/pkg/domain/entities"
)

// ItemType classifies an item node.
type ItemType int

const (
	// Intermediate items are produced and consumed inside the plan.
	Intermediate ItemType = iota
	// Available items come from starting stock.
	Available
	// Target items are the requested outputs.
	Target
	// Requirement items must be brought in from outside the plan.
	Requirement
	// LeftOver items are byproduct surplus.
	LeftOver
)

// String returns the type name used in node identifiers.
func (t ItemType) String() string {
	switch t {
	case Intermediate:
		return "Intermediate"
	case Available:
		return "Available"
	case Target:
		return "Target"
	case Requirement:
		return "Requirement"
	case LeftOver:
		return "LeftOver"
	}
	return "Unknown"
}

// Graph is the derived BoM graph. Node identity is (item id, item type) for
// item nodes and the recipe id for recipe nodes; stored amounts do not
// participate in identity.
type Graph struct {
	directed *simple.DirectedGraph
	nodes    map[string]*Node
	format   amount.Format
}

// itemUse records one recipe touching an item and the per-minute quantity.
type itemUse struct {
	recipe entities.Recipe
	rate   float64
}

type builder struct {
	graph         *Graph
	bom           *entities.Bom
	showLeftovers bool

	itemOrder []entities.Item
	using     map[string][]itemUse
	producing map[string][]itemUse
}

// New builds the graph for a solved BoM. When showLeftovers is false the
// byproduct nodes are omitted; this only affects presentation.
func New(bom *entities.Bom, format amount.Format, showLeftovers bool) *Graph {
	b := &builder{
		graph: &Graph{
			directed: simple.NewDirectedGraph(),
			nodes:    make(map[string]*Node),
			format:   format,
		},
		bom:           bom,
		showLeftovers: showLeftovers,
		using:         make(map[string][]itemUse),
		producing:     make(map[string][]itemUse),
	}
	b.build()
	return b.graph
}

func (b *builder) build() {
	for _, ra := range b.bom.Recipes {
		b.graph.addRecipeNode(ra.Recipe, ra.Amount)
	}

	b.collectUses()

	for _, item := range b.itemOrder {
		b.handleItem(item)
	}
}

// collectUses tallies, per item, which recipes consume and produce it and at
// what per-minute rate, keeping items in first-reference order.
func (b *builder) collectUses() {
	seen := make(map[string]bool)
	note := func(item entities.Item) {
		if !seen[item.ID()] {
			seen[item.ID()] = true
			b.itemOrder = append(b.itemOrder, item)
		}
	}
	for _, ra := range b.bom.Recipes {
		for _, reactant := range ra.Recipe.Inputs() {
			note(reactant.Item())
			use := itemUse{recipe: ra.Recipe, rate: reactant.QuantityF64() * ra.Amount}
			b.using[reactant.ItemID()] = append(b.using[reactant.ItemID()], use)
		}
		for _, reactant := range ra.Recipe.Outputs() {
			note(reactant.Item())
			use := itemUse{recipe: ra.Recipe, rate: reactant.QuantityF64() * ra.Amount}
			b.producing[reactant.ItemID()] = append(b.producing[reactant.ItemID()], use)
		}
	}
}

func (b *builder) handleItem(item entities.Item) {
	available, _ := b.bom.AvailableAmount(item.ID())
	target, _ := b.bom.TargetAmount(item.ID())
	leftover, _ := b.bom.LeftoverAmount(item.ID())
	if !b.showLeftovers {
		leftover = 0
	}

	var used, produced float64
	for _, u := range b.using[item.ID()] {
		used += u.rate
	}
	for _, u := range b.producing[item.ID()] {
		produced += u.rate
	}

	switch {
	case !entities.IsNil(used) && !entities.IsNil(produced):
		b.handleIntermediate(item, produced, available, target, leftover)
	case !entities.IsNil(used):
		b.handleConsumedOnly(item, used, available)
	default:
		b.handleProducedOnly(item, produced, available, target, leftover)
	}
}

// handleIntermediate covers items both produced and consumed: a single
// intermediate node carries the flow, with sibling target/available/leftover
// nodes hanging off it when those amounts are present.
func (b *builder) handleIntermediate(item entities.Item, produced, available, target, leftover float64) {
	node := b.graph.addItemNode(item, produced+available, Intermediate)
	for _, u := range b.using[item.ID()] {
		b.graph.addFlowEdge(node, b.graph.recipeNode(u.recipe), u.rate)
	}
	for _, u := range b.producing[item.ID()] {
		b.graph.addFlowEdge(b.graph.recipeNode(u.recipe), node, u.rate)
	}

	if !entities.IsNil(target) {
		b.graph.addPlainEdge(node, b.graph.addItemNode(item, target, Target))
	}
	if !entities.IsNil(available) {
		b.graph.addPlainEdge(b.graph.addItemNode(item, available, Available), node)
	}
	if !entities.IsNil(leftover) {
		b.graph.addPlainEdge(node, b.graph.addItemNode(item, leftover, LeftOver))
	}
}

// handleConsumedOnly covers items consumed but never produced: stock covers
// them entirely, or a requirement node is emitted (fed by stock if any).
func (b *builder) handleConsumedOnly(item entities.Item, used, available float64) {
	var node *Node
	if entities.IsNil(used - available) {
		node = b.graph.addItemNode(item, available, Available)
	} else {
		node = b.graph.addItemNode(item, used, Requirement)
		if !entities.IsNil(available) {
			b.graph.addPlainEdge(b.graph.addItemNode(item, available, Available), node)
		}
	}
	for _, u := range b.using[item.ID()] {
		b.graph.addFlowEdge(node, b.graph.recipeNode(u.recipe), u.rate)
	}
}

// handleProducedOnly covers items that only leave the plan, as targets,
// leftovers or both (then an intermediate node splits the flow).
func (b *builder) handleProducedOnly(item entities.Item, produced, available, target, leftover float64) {
	var node *Node
	switch {
	case entities.IsNil(target) && entities.IsNil(leftover):
		return
	case !entities.IsNil(target) && !entities.IsNil(leftover):
		total := produced
		if entities.IsNil(produced) {
			total = target + leftover
		}
		node = b.graph.addItemNode(item, total, Intermediate)
		b.graph.addPlainEdge(node, b.graph.addItemNode(item, target, Target))
		b.graph.addPlainEdge(node, b.graph.addItemNode(item, leftover, LeftOver))
	case !entities.IsNil(target):
		node = b.graph.addItemNode(item, target, Target)
	default:
		node = b.graph.addItemNode(item, leftover, LeftOver)
	}

	for _, u := range b.producing[item.ID()] {
		b.graph.addFlowEdge(b.graph.recipeNode(u.recipe), node, u.rate)
	}
	if !entities.IsNil(available) {
		b.graph.addPlainEdge(node, b.graph.addItemNode(item, available, Available))
	}
}

// Nodes returns the graph's nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	it := g.directed.Nodes()
	for it.Next() {
		nodes = append(nodes, it.Node().(*Node))
	}
	sortNodes(nodes)
	return nodes
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.directed.Edges().Len()
}

// Edges returns the graph's edges ordered by endpoint insertion ids.
func (g *Graph) Edges() []*Edge {
	var edges []*Edge
	it := g.directed.Edges()
	for it.Next() {
		edges = append(edges, it.Edge().(*Edge))
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from.id != edges[j].from.id {
			return edges[i].from.id < edges[j].from.id
		}
		return edges[i].to.id < edges[j].to.id
	})
	return edges
}

// HasEdge reports whether an edge links the two DOT identifiers.
func (g *Graph) HasEdge(fromDOTID, toDOTID string) bool {
	from, okF := g.nodes[nodeKeyFromDOTID(fromDOTID)]
	to, okT := g.nodes[nodeKeyFromDOTID(toDOTID)]
	if !okF || !okT {
		return false
	}
	return g.directed.HasEdgeFromTo(from.ID(), to.ID())
}

func (g *Graph) addRecipeNode(recipe entities.Recipe, rate float64) *Node {
	key := "recipe/" + recipe.ID()
	if node, ok := g.nodes[key]; ok {
		return node
	}
	node := &Node{
		id:     int64(len(g.nodes)),
		recipe: &recipe,
		Amount: rate,
		format: g.format,
	}
	g.nodes[key] = node
	g.directed.AddNode(node)
	return node
}

func (g *Graph) recipeNode(recipe entities.Recipe) *Node {
	return g.nodes["recipe/"+recipe.ID()]
}

func (g *Graph) addItemNode(item entities.Item, amt float64, itemType ItemType) *Node {
	key := "item/" + item.ID() + "/" + itemType.String()
	if node, ok := g.nodes[key]; ok {
		return node
	}
	node := &Node{
		id:     int64(len(g.nodes)),
		item:   item,
		Type:   itemType,
		Amount: amt,
		format: g.format,
	}
	g.nodes[key] = node
	g.directed.AddNode(node)
	return node
}

// addFlowEdge links an item node and a recipe node, labelling the edge with
// the flowing quantity when it differs from the item node's own amount.
func (g *Graph) addFlowEdge(from, to *Node, rate float64) {
	label := ""
	itemAmount := from.Amount
	if from.recipe != nil {
		itemAmount = to.Amount
	}
	if !entities.IsNil(rate - itemAmount) {
		label = fmt.Sprintf("%.2f", rate)
	}
	g.setEdge(from, to, label)
}

func (g *Graph) addPlainEdge(from, to *Node) {
	g.setEdge(from, to, "")
}

func (g *Graph) setEdge(from, to *Node, label string) {
	if g.directed.HasEdgeFromTo(from.ID(), to.ID()) {
		return
	}
	g.directed.SetEdge(&Edge{from: from, to: to, label: label})
}

func nodeKeyFromDOTID(dotID string) string {
	for _, suffix := range []string{"Intermediate", "Available", "Target", "Requirement", "LeftOver"} {
		marker := "_" + suffix
		if len(dotID) > len(marker) && dotID[len(dotID)-len(marker):] == marker {
			return "item/" + dotID[:len(dotID)-len(marker)] + "/" + suffix
		}
	}
	return "recipe/" + dotID
}

func sortNodes(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].id < nodes[j].id })
}
