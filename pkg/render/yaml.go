package render

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/blobtrace/pkg/ancestry"
)

type yamlNode struct {
	Hash  string `yaml:"hash"`
	Label string `yaml:"label"`
}

type yamlEdge struct {
	Child  string `yaml:"child"`
	Parent string `yaml:"parent"`
}

type yamlGraph struct {
	Nodes []yamlNode `yaml:"nodes"`
	Edges []yamlEdge `yaml:"edges"`
}

// WriteYAML writes g as a YAML document with sorted "nodes" and "edges"
// lists.
func WriteYAML(w io.Writer, g *ancestry.Graph) error {
	doc := yamlGraph{
		Nodes: []yamlNode{},
		Edges: []yamlEdge{},
	}
	for _, n := range g.SortedNodes() {
		doc.Nodes = append(doc.Nodes, yamlNode{Hash: string(n.Hash), Label: n.Label})
	}
	for _, e := range g.SortedEdges() {
		doc.Edges = append(doc.Edges, yamlEdge{Child: string(e.Child), Parent: string(e.Parent)})
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("render yaml: %w", err)
	}
	return enc.Close()
}
