package object

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawHash(b byte) []byte {
	return bytes.Repeat([]byte{b}, RawHashSize)
}

func treeBody(entries ...[]byte) []byte {
	return bytes.Join(entries, nil)
}

func treeEntry(mode, name string, hash []byte) []byte {
	out := []byte(mode + " " + name + "\x00")
	return append(out, hash...)
}

func wrap(kind string, body []byte) []byte {
	return append([]byte(kind+" "+strconv.Itoa(len(body))+"\x00"), body...)
}

func TestUnmarshalTree(t *testing.T) {
	// The second hash starts with bytes that look like an entry header; the
	// parser must take exactly 20 bytes regardless.
	tricky := append([]byte("100644 x\x00"), rawHash(0x20)[:11]...)
	body := treeBody(
		treeEntry("100644", "README.md", rawHash(0xab)),
		treeEntry("40000", "pkg", tricky),
		treeEntry("160000", "vendor lib", rawHash(0x00)),
	)

	tr, err := UnmarshalTree(body)
	require.NoError(t, err)
	require.Len(t, tr.Entries, 3)

	assert.Equal(t, "100644", tr.Entries[0].Mode)
	assert.Equal(t, "README.md", tr.Entries[0].Name)
	assert.Equal(t, Hash(strings.Repeat("ab", RawHashSize)), tr.Entries[0].Hash)
	assert.False(t, tr.Entries[0].IsDir())

	assert.Equal(t, "pkg", tr.Entries[1].Name)
	assert.True(t, tr.Entries[1].IsDir())
	assert.Len(t, string(tr.Entries[1].Hash), HexHashSize)

	assert.Equal(t, "vendor lib", tr.Entries[2].Name)
	assert.Equal(t, Hash(strings.Repeat("00", RawHashSize)), tr.Entries[2].Hash)
	assert.False(t, tr.Entries[2].IsDir())
}

func TestUnmarshalTreeEmpty(t *testing.T) {
	tr, err := UnmarshalTree(nil)
	require.NoError(t, err)
	assert.Empty(t, tr.Entries)
}

func TestUnmarshalTreeMalformed(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"truncated hash", treeEntry("100644", "a", rawHash(1)[:19])},
		{"missing name terminator", []byte("100644 a")},
		{"missing mode", []byte("noseparator")},
		{"empty mode", treeEntry("", "a", rawHash(1))},
		{"trailing garbage", append(treeEntry("100644", "a", rawHash(1)), '1')},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalTree(tc.body)
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "want malformed, got %v", err)
		})
	}
}

func TestUnmarshalCommit(t *testing.T) {
	tree := strings.Repeat("a", HexHashSize)
	p1 := strings.Repeat("b", HexHashSize)
	p2 := strings.Repeat("c", HexHashSize)
	body := "tree " + tree + "\n" +
		"parent " + p1 + "\n" +
		"parent " + p2 + "\n" +
		"author A <a@example.com> 1 +0000\n" +
		"committer A <a@example.com> 1 +0000\n" +
		"\n" +
		"merge things\n\nparent " + p1 + " in the message\n"

	c, err := UnmarshalCommit([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, Hash(tree), c.TreeHash)
	assert.Equal(t, []Hash{Hash(p1), Hash(p2)}, c.Parents)
	assert.Equal(t, "merge things\n\nparent "+p1+" in the message\n", c.Message)
}

func TestUnmarshalCommitRootHasNoParents(t *testing.T) {
	body := "tree " + strings.Repeat("a", HexHashSize) + "\nauthor A\n\ninitial\n"
	c, err := UnmarshalCommit([]byte(body))
	require.NoError(t, err)
	assert.Empty(t, c.Parents)
	assert.Equal(t, "initial\n", c.Message)
}

func TestUnmarshalCommitEmptyMessage(t *testing.T) {
	body := "tree " + strings.Repeat("a", HexHashSize) + "\n\n"
	c, err := UnmarshalCommit([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "", c.Message)
}

func TestUnmarshalCommitDropsInvalidUTF8(t *testing.T) {
	body := []byte("tree " + strings.Repeat("a", HexHashSize) + "\n\nfix \xff\xfebug")
	c, err := UnmarshalCommit(body)
	require.NoError(t, err)
	assert.Equal(t, "fix bug", c.Message)
}

func TestUnmarshalCommitMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing separator", "tree " + strings.Repeat("a", HexHashSize) + "\nauthor A"},
		{"missing tree", "author A\n\nmsg"},
		{"bad tree hash", "tree xyz\n\nmsg"},
		{"bad parent hash", "tree " + strings.Repeat("a", HexHashSize) + "\nparent 12\n\nmsg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := UnmarshalCommit([]byte(tc.body))
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "want malformed, got %v", err)
		})
	}
}

func TestDecode(t *testing.T) {
	tr, err := Decode(wrap("tree", treeEntry("100644", "f", rawHash(7))))
	require.NoError(t, err)
	assert.Equal(t, TypeTree, tr.Type())

	c, err := Decode(wrap("commit", []byte("tree "+strings.Repeat("d", HexHashSize)+"\n\nhi")))
	require.NoError(t, err)
	require.IsType(t, &CommitObj{}, c)
	assert.Equal(t, "hi", c.(*CommitObj).Message)

	blob := []byte("not parsed \x00 at all")
	b, err := Decode(wrap("blob", blob))
	require.NoError(t, err)
	assert.Equal(t, TypeBlob, b.Type())
	assert.Equal(t, &OtherObj{Kind: TypeBlob, Size: len(blob)}, b)
}

func TestDecodeMalformedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
	}{
		{"no NUL", []byte("blob 3abc")},
		{"no size", []byte("blob\x00abc")},
		{"bad size", []byte("blob x\x00abc")},
		{"length mismatch", []byte("blob 4\x00abc")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.raw)
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "want malformed, got %v", err)
		})
	}
}
