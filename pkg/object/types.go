package object

// ObjectType identifies the kind of object stored.
type ObjectType string

const (
	TypeBlob   ObjectType = "blob"
	TypeTag    ObjectType = "tag"
	TypeTree   ObjectType = "tree"
	TypeCommit ObjectType = "commit"
)

const (
	// Tree mode tokens as they appear in git tree objects. Only TreeModeDir
	// marks an entry as a subtree.
	TreeModeDir        = "40000"
	TreeModeFile       = "100644"
	TreeModeExecutable = "100755"
	TreeModeSymlink    = "120000"
	TreeModeGitlink    = "160000"
)

// Object is a decoded store object: *TreeObj, *CommitObj or *OtherObj.
type Object interface {
	Type() ObjectType
}

// TreeEntry is one entry in a tree object.
type TreeEntry struct {
	Mode string
	Name string
	Hash Hash
}

// IsDir reports whether the entry references a subtree. Any mode other than
// the exact subtree token is a leaf.
func (e TreeEntry) IsDir() bool {
	return e.Mode == TreeModeDir
}

// TreeObj holds tree entries in stored order.
type TreeObj struct {
	Entries []TreeEntry
}

func (*TreeObj) Type() ObjectType { return TypeTree }

// CommitObj is the subset of a commit needed to walk trees and ancestry.
type CommitObj struct {
	TreeHash Hash
	Parents  []Hash
	Message  string
}

func (*CommitObj) Type() ObjectType { return TypeCommit }

// OtherObj is any object that is neither a tree nor a commit. Its body is
// not interpreted.
type OtherObj struct {
	Kind ObjectType
	Size int
}

func (o *OtherObj) Type() ObjectType { return o.Kind }
