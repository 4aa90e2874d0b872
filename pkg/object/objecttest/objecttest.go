// Package objecttest writes real git loose objects into temporary
// directories for tests.
package objecttest

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/odvcencio/blobtrace/pkg/object"
)

// Repo is a scratch repository with a .git/objects directory.
type Repo struct {
	t    testing.TB
	Dir  string // repository working directory
	Root string // object directory
}

// New creates an empty repository under t.TempDir().
func New(t testing.TB) *Repo {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, ".git", "objects")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatalf("objecttest: mkdir: %v", err)
	}
	return &Repo{t: t, Dir: dir, Root: root}
}

// Store returns an object.Store reading this repository.
func (r *Repo) Store() *object.Store {
	return object.NewStore(r.Root)
}

// HashObject computes the SHA-1 of the envelope "type len\0content".
func HashObject(objType object.ObjectType, body []byte) object.Hash {
	h := sha1.New()
	h.Write(envelope(objType, body))
	return object.Hash(hex.EncodeToString(h.Sum(nil)))
}

func envelope(objType object.ObjectType, body []byte) []byte {
	header := fmt.Sprintf("%s %d\x00", objType, len(body))
	return append([]byte(header), body...)
}

// Write stores an object and returns its hash.
func (r *Repo) Write(objType object.ObjectType, body []byte) object.Hash {
	r.t.Helper()
	h := HashObject(objType, body)
	r.WriteRaw(h, envelope(objType, body))
	return h
}

// WriteRaw deflates raw and stores it under h without checking that raw
// hashes to h.
func (r *Repo) WriteRaw(h object.Hash, raw []byte) {
	r.t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		r.t.Fatalf("objecttest: deflate: %v", err)
	}
	if err := zw.Close(); err != nil {
		r.t.Fatalf("objecttest: deflate close: %v", err)
	}
	r.WriteFile(filepath.Join(string(h[:2]), string(h[2:])), buf.Bytes())
}

// WriteFile places arbitrary bytes at rel under the object directory.
func (r *Repo) WriteFile(rel string, data []byte) {
	r.t.Helper()
	path := filepath.Join(r.Root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.t.Fatalf("objecttest: mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.t.Fatalf("objecttest: write %s: %v", rel, err)
	}
}

// Blob stores data as a blob.
func (r *Repo) Blob(data string) object.Hash {
	r.t.Helper()
	return r.Write(object.TypeBlob, []byte(data))
}

// Tree stores a tree with entries in the given order.
func (r *Repo) Tree(entries ...object.TreeEntry) object.Hash {
	r.t.Helper()
	return r.Write(object.TypeTree, MarshalTree(entries...))
}

// Commit stores a commit pointing at tree.
func (r *Repo) Commit(tree object.Hash, message string, parents ...object.Hash) object.Hash {
	r.t.Helper()
	return r.Write(object.TypeCommit, MarshalCommit(tree, message, parents...))
}

// File returns a regular-file tree entry.
func File(name string, h object.Hash) object.TreeEntry {
	return object.TreeEntry{Mode: object.TreeModeFile, Name: name, Hash: h}
}

// Dir returns a subtree entry.
func Dir(name string, h object.Hash) object.TreeEntry {
	return object.TreeEntry{Mode: object.TreeModeDir, Name: name, Hash: h}
}

// MarshalTree encodes entries in git's binary tree format.
func MarshalTree(entries ...object.TreeEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		raw, err := hex.DecodeString(string(e.Hash))
		if err != nil || len(raw) != object.RawHashSize {
			panic(fmt.Sprintf("objecttest: bad entry hash %q", e.Hash))
		}
		fmt.Fprintf(&buf, "%s %s\x00", e.Mode, e.Name)
		buf.Write(raw)
	}
	return buf.Bytes()
}

// MarshalCommit encodes a commit with fixed author and committer lines.
func MarshalCommit(tree object.Hash, message string, parents ...object.Hash) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", tree)
	for _, p := range parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	buf.WriteString("author Test <test@example.com> 1700000000 +0000\n")
	buf.WriteString("committer Test <test@example.com> 1700000000 +0000\n")
	buf.WriteByte('\n')
	buf.WriteString(message)
	return buf.Bytes()
}
