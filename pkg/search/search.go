// Package search finds the commits whose trees contain an object matching
// an abbreviated hash.
package search

import (
	"go.uber.org/zap"

	"github.com/odvcencio/blobtrace/pkg/object"
)

// MatchedCommit is a commit whose tree transitively contains the searched
// prefix.
type MatchedCommit struct {
	Hash    object.Hash
	Message string
}

// Searcher runs tree and commit searches against one object source.
type Searcher struct {
	src     object.Source
	logger  *zap.Logger
	workers int
}

// New returns a Searcher over src. Per-object failures are reported to
// logger, which may be nil. workers bounds the commit scan's parallelism;
// values below 1 mean sequential.
func New(src object.Source, logger *zap.Logger, workers int) *Searcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Searcher{src: src, logger: logger, workers: workers}
}
