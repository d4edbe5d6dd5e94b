package scan

// Kind is the type of a filesystem object observed during a walk.
type Kind uint8

const (
	// KindFile is a regular file.
	KindFile Kind = iota
	// KindDir is a directory.
	KindDir
	// KindSymlink is a symbolic link.
	KindSymlink
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Entry is one filesystem object retained in a top-N list.
type Entry struct {
	// Path is the absolute path.
	Path string `json:"path"`
	// Size is the on-disk size in bytes. For special directories it covers the whole subtree.
	Size int64 `json:"size"`
	// Kind is the object type.
	Kind Kind `json:"kind"`
}

func entryLess(a, b Entry) bool {
	return a.Size < b.Size
}
