package search

import (
	"go.uber.org/zap"

	"github.com/odvcencio/blobtrace/pkg/object"
)

// TreeContains reports whether any entry in the tree at treeHash, or in any
// of its subtrees, has a hash starting with prefix. The walk is depth-first
// and stops at the first match. Only entries whose mode is exactly the
// subtree token are descended into.
//
// An error is returned only when the root tree itself cannot be read; a
// subtree that fails to read is logged and contributes nothing.
func (s *Searcher) TreeContains(treeHash object.Hash, prefix object.Prefix) (bool, error) {
	tr, err := object.ReadTree(s.src, treeHash)
	if err != nil {
		return false, err
	}
	seen := map[object.Hash]struct{}{treeHash: {}}
	return s.entriesContain(tr, prefix, seen), nil
}

func (s *Searcher) entriesContain(tr *object.TreeObj, prefix object.Prefix, seen map[object.Hash]struct{}) bool {
	for _, e := range tr.Entries {
		if e.Hash.HasPrefix(prefix) {
			return true
		}
		if !e.IsDir() {
			continue
		}
		// A subtree already searched in this walk cannot match now.
		if _, ok := seen[e.Hash]; ok {
			continue
		}
		seen[e.Hash] = struct{}{}

		sub, err := object.ReadTree(s.src, e.Hash)
		if err != nil {
			s.logger.Warn("skipping unreadable subtree",
				zap.String("object", string(e.Hash)),
				zap.String("name", e.Name),
				zap.Error(err))
			continue
		}
		if s.entriesContain(sub, prefix, seen) {
			return true
		}
	}
	return false
}
