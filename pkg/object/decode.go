package object

import (
	"bytes"
	"strconv"
	"strings"
)

// Decode parses an inflated loose object, "<kind> <size>\0<body>", into a
// typed Object. Kinds other than tree and commit decode to *OtherObj without
// looking at the body.
func Decode(raw []byte) (Object, error) {
	objType, body, err := splitEnvelope(raw)
	if err != nil {
		return nil, err
	}
	switch objType {
	case TypeTree:
		return UnmarshalTree(body)
	case TypeCommit:
		return UnmarshalCommit(body)
	default:
		return &OtherObj{Kind: objType, Size: len(body)}, nil
	}
}

// splitEnvelope separates the "<kind> <size>" header from the body.
func splitEnvelope(raw []byte) (ObjectType, []byte, error) {
	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, malformed("invalid format (no NUL)")
	}
	header := string(raw[:nulIdx])
	body := raw[nulIdx+1:]

	kind, sizeStr, ok := strings.Cut(header, " ")
	if !ok || kind == "" {
		return "", nil, malformed("invalid header %q", header)
	}
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		return "", nil, malformed("invalid length %q", sizeStr)
	}
	if size != len(body) {
		return "", nil, malformed("length mismatch (header=%d, actual=%d)", size, len(body))
	}
	return ObjectType(kind), body, nil
}

// UnmarshalTree parses the body of a git tree object: back-to-back entries
// of "<mode> <name>\0" followed by exactly RawHashSize hash bytes.
func UnmarshalTree(body []byte) (*TreeObj, error) {
	tr := &TreeObj{}
	i := 0
	for i < len(body) {
		sp := bytes.IndexByte(body[i:], ' ')
		if sp <= 0 {
			return nil, malformed("tree entry at offset %d: missing mode", i)
		}
		modeEnd := i + sp

		nul := bytes.IndexByte(body[modeEnd+1:], 0)
		if nul < 0 {
			return nil, malformed("tree entry at offset %d: missing name terminator", i)
		}
		nameEnd := modeEnd + 1 + nul

		hashEnd := nameEnd + 1 + RawHashSize
		if hashEnd > len(body) {
			return nil, malformed("tree entry at offset %d: truncated hash", i)
		}
		h, err := HashFromBytes(body[nameEnd+1 : hashEnd])
		if err != nil {
			return nil, malformed("tree entry at offset %d: %v", i, err)
		}

		tr.Entries = append(tr.Entries, TreeEntry{
			Mode: string(body[i:modeEnd]),
			Name: string(body[modeEnd+1 : nameEnd]),
			Hash: h,
		})
		i = hashEnd
	}
	return tr, nil
}

// UnmarshalCommit parses the body of a git commit object. Header lines run
// up to the first empty line; everything after it is the message. Only the
// tree and parent headers are interpreted.
func UnmarshalCommit(body []byte) (*CommitObj, error) {
	lines := bytes.Split(body, []byte("\n"))
	sep := -1
	for i, line := range lines {
		if len(line) == 0 {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, malformed("commit: missing header/message separator")
	}

	c := &CommitObj{}
	haveTree := false
	for _, line := range lines[:sep] {
		switch {
		case bytes.HasPrefix(line, []byte("tree ")):
			if haveTree {
				continue
			}
			h, err := ParseHash(string(line[len("tree "):]))
			if err != nil {
				return nil, malformed("commit: bad tree line: %v", err)
			}
			c.TreeHash = h
			haveTree = true
		case bytes.HasPrefix(line, []byte("parent ")):
			h, err := ParseHash(string(line[len("parent "):]))
			if err != nil {
				return nil, malformed("commit: bad parent line: %v", err)
			}
			c.Parents = append(c.Parents, h)
		}
	}
	if !haveTree {
		return nil, malformed("commit: missing tree line")
	}

	// Invalid UTF-8 is dropped rather than rejected.
	msg := bytes.Join(lines[sep+1:], []byte("\n"))
	c.Message = strings.ToValidUTF8(string(msg), "")
	return c, nil
}
