package object

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
)

// Reader resolves a hash to a decoded object.
type Reader interface {
	Read(h Hash) (Object, error)
}

// Source is a Reader that can also enumerate every object it holds.
type Source interface {
	Reader
	Objects() iter.Seq2[Hash, error]
}

// Store reads loose objects from a git object directory with a 2-character
// fan-out layout: <root>/ab/cdef0123... Each file is a zlib stream whose
// inflated form is "type len\0content". The store never writes.
type Store struct {
	root string
}

// NewStore creates a Store rooted at an object directory (usually .git/objects).
func NewStore(root string) *Store {
	return &Store{root: root}
}

// objectPath returns the filesystem path for a given hash.
func (s *Store) objectPath(h Hash) string {
	return filepath.Join(s.root, string(h[:2]), string(h[2:]))
}

// Has reports whether the store contains an object with the given hash.
func (s *Store) Has(h Hash) bool {
	if len(h) != HexHashSize {
		return false
	}
	_, err := os.Stat(s.objectPath(h))
	return err == nil
}

// ReadRaw reads and inflates the object file for h. The result still
// carries its "type len\0" envelope.
func (s *Store) ReadRaw(h Hash) ([]byte, error) {
	if len(h) != HexHashSize {
		return nil, &Error{Op: "read", Hash: h, Err: malformed("hash must be %d hex characters", HexHashSize)}
	}
	compressed, err := os.ReadFile(s.objectPath(h))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Op: "read", Hash: h, Err: ErrObjectNotFound}
		}
		return nil, &Error{Op: "read", Hash: h, Err: err}
	}
	raw, err := inflate(compressed)
	if err != nil {
		return nil, &Error{Op: "read", Hash: h, Err: fmt.Errorf("%w: %v", ErrCorruptObject, err)}
	}
	return raw, nil
}

// Read reads, inflates and decodes the object for h.
func (s *Store) Read(h Hash) (Object, error) {
	raw, err := s.ReadRaw(h)
	if err != nil {
		return nil, err
	}
	obj, err := Decode(raw)
	if err != nil {
		return nil, &Error{Op: "decode", Hash: h, Err: err}
	}
	return obj, nil
}

func inflate(compressed []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// Objects enumerates every loose object in the store. Each fan-out
// directory entry yields either its hash or an error describing why the
// entry cannot be an object; the consumer decides whether to continue.
// Top-level entries that are not fan-out directories (pack, info) are
// skipped.
func (s *Store) Objects() iter.Seq2[Hash, error] {
	return func(yield func(Hash, error) bool) {
		dirs, err := os.ReadDir(s.root)
		if err != nil {
			yield("", &Error{Op: "list", Err: err})
			return
		}
		for _, dir := range dirs {
			if !dir.IsDir() || len(dir.Name()) != 2 || !isHex(dir.Name()) {
				continue
			}
			files, err := os.ReadDir(filepath.Join(s.root, dir.Name()))
			if err != nil {
				if !yield("", &Error{Op: "list", Err: err}) {
					return
				}
				continue
			}
			for _, f := range files {
				if !f.Type().IsRegular() {
					continue
				}
				h := Hash(dir.Name() + f.Name())
				if len(h) != HexHashSize || !isHex(string(h)) {
					err := &Error{Op: "list", Err: malformed("unexpected file %s", filepath.Join(dir.Name(), f.Name()))}
					if !yield("", err) {
						return
					}
					continue
				}
				if !yield(h, nil) {
					return
				}
			}
		}
	}
}

// ReadTree reads h from r and requires it to be a tree.
func ReadTree(r Reader, h Hash) (*TreeObj, error) {
	obj, err := r.Read(h)
	if err != nil {
		return nil, err
	}
	tr, ok := obj.(*TreeObj)
	if !ok {
		return nil, &Error{Op: "read tree", Hash: h, Err: malformed("type mismatch: got %q, want %q", obj.Type(), TypeTree)}
	}
	return tr, nil
}

// ReadCommit reads h from r and requires it to be a commit.
func ReadCommit(r Reader, h Hash) (*CommitObj, error) {
	obj, err := r.Read(h)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*CommitObj)
	if !ok {
		return nil, &Error{Op: "read commit", Hash: h, Err: malformed("type mismatch: got %q, want %q", obj.Type(), TypeCommit)}
	}
	return c, nil
}
