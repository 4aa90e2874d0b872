package ancestry

import (
	"go.uber.org/zap"

	"github.com/odvcencio/blobtrace/pkg/object"
	"github.com/odvcencio/blobtrace/pkg/search"
)

// Build labels each matched commit with its own message and then ascends
// every parent chain above it. A parent reached during ascension is
// labelled with the message of the child it was reached from, overwriting
// any earlier label; matches are processed in order, so a later match's
// ascension can relabel an earlier match. Commits that cannot be read are
// logged and contribute no parents.
func Build(src object.Reader, matches []search.MatchedCommit, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := NewGraph()
	for _, m := range matches {
		g.SetNode(m.Hash, m.Message)
		ascend(src, m.Hash, g, logger)
	}
	return g
}

// ascend walks parents depth-first from start, recording nodes and edges
// in g. Each commit is expanded at most once per call, which also bounds
// the walk on a store whose parent links form a cycle.
func ascend(src object.Reader, start object.Hash, g *Graph, logger *zap.Logger) {
	visited := make(map[object.Hash]struct{})
	stack := []object.Hash{start}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[h]; ok {
			continue
		}
		visited[h] = struct{}{}

		c, err := object.ReadCommit(src, h)
		if err != nil {
			logger.Warn("skipping commit during ascension", zap.String("object", string(h)), zap.Error(err))
			continue
		}
		for _, p := range c.Parents {
			g.SetNode(p, c.Message)
			g.AddEdge(h, p)
			stack = append(stack, p)
		}
	}
}
