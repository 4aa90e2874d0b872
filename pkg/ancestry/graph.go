// Package ancestry reconstructs the parent-chain graph above a set of
// matched commits.
package ancestry

import (
	"sort"

	"github.com/odvcencio/blobtrace/pkg/object"
)

// Edge points from a commit to one of its parents.
type Edge struct {
	Child  object.Hash
	Parent object.Hash
}

// Node is a commit and the label attached to it.
type Node struct {
	Hash  object.Hash
	Label string
}

// Graph is a deduplicated set of labelled commits and child->parent edges.
type Graph struct {
	Nodes map[object.Hash]string
	Edges map[Edge]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[object.Hash]string),
		Edges: make(map[Edge]struct{}),
	}
}

// SetNode inserts h or replaces its label.
func (g *Graph) SetNode(h object.Hash, label string) {
	g.Nodes[h] = label
}

// AddEdge inserts child->parent if not already present.
func (g *Graph) AddEdge(child, parent object.Hash) {
	g.Edges[Edge{Child: child, Parent: parent}] = struct{}{}
}

// SortedNodes returns the nodes ordered by hash.
func (g *Graph) SortedNodes() []Node {
	out := make([]Node, 0, len(g.Nodes))
	for h, label := range g.Nodes {
		out = append(out, Node{Hash: h, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hash < out[j].Hash })
	return out
}

// SortedEdges returns the edges ordered by child, then parent.
func (g *Graph) SortedEdges() []Edge {
	out := make([]Edge, 0, len(g.Edges))
	for e := range g.Edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Child != out[j].Child {
			return out[i].Child < out[j].Child
		}
		return out[i].Parent < out[j].Parent
	})
	return out
}
