package search

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/blobtrace/pkg/object"
)

// FindCommits scans every object in the store and returns the commits with
// a non-empty message whose tree contains prefix. Objects that fail to read
// or decode are logged and skipped. The result is sorted by hash; the only
// error returned is ctx's.
func (s *Searcher) FindCommits(ctx context.Context, prefix object.Prefix) ([]MatchedCommit, error) {
	var (
		mu      sync.Mutex
		matches []MatchedCommit
		scanned atomic.Int64
		failed  atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for h, err := range s.src.Objects() {
		if gctx.Err() != nil {
			break
		}
		if err != nil {
			failed.Add(1)
			s.logger.Warn("skipping store entry", zap.Error(err))
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scanned.Add(1)
			m, ok, err := s.inspect(h, prefix)
			if err != nil {
				failed.Add(1)
				s.logger.Warn("skipping object", zap.String("object", string(h)), zap.Error(err))
				return nil
			}
			if ok {
				mu.Lock()
				matches = append(matches, m)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].Hash < matches[j].Hash })
	s.logger.Debug("commit scan finished",
		zap.String("prefix", string(prefix)),
		zap.Int64("scanned", scanned.Load()),
		zap.Int64("matched", int64(len(matches))),
		zap.Int64("failed", failed.Load()))
	return matches, nil
}

// inspect decides whether the object h is a matching commit. Non-commits and
// commits with an empty message are not matches.
func (s *Searcher) inspect(h object.Hash, prefix object.Prefix) (MatchedCommit, bool, error) {
	obj, err := s.src.Read(h)
	if err != nil {
		return MatchedCommit{}, false, err
	}
	c, ok := obj.(*object.CommitObj)
	if !ok || c.Message == "" {
		return MatchedCommit{}, false, nil
	}
	found, err := s.TreeContains(c.TreeHash, prefix)
	if err != nil || !found {
		return MatchedCommit{}, false, err
	}
	return MatchedCommit{Hash: h, Message: c.Message}, true, nil
}
