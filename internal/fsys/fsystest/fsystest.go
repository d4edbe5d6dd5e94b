// Package fsystest provides in-memory fsys.FS implementations for tests.
package fsystest

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

type node struct {
	mode     fs.FileMode
	size     int64
	children map[string]*node
}

// Tree is a mutable in-memory directory tree rooted at "/".
// Sizes are reported as logical sizes, which is also what fsys.OnDisk
// returns for infos without stat data.
type Tree struct {
	root *node
	errs map[string]error
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{
		root: &node{mode: fs.ModeDir | 0o755, children: map[string]*node{}},
		errs: map[string]error{},
	}
}

// Dir creates the directory at path along with any missing parents.
func (t *Tree) Dir(path string) *Tree {
	t.mkdirAll(path)

	return t
}

// File creates a regular file of the given size.
func (t *Tree) File(path string, size int64) *Tree {
	parent := t.mkdirAll(filepath.Dir(path))
	parent.children[filepath.Base(path)] = &node{mode: 0o644, size: size}

	return t
}

// Symlink creates a symbolic link. Its target is irrelevant: walkers never follow it.
func (t *Tree) Symlink(path string) *Tree {
	parent := t.mkdirAll(filepath.Dir(path))
	parent.children[filepath.Base(path)] = &node{mode: fs.ModeSymlink | 0o777, size: 42}

	return t
}

// Device creates a character device node.
func (t *Tree) Device(path string) *Tree {
	parent := t.mkdirAll(filepath.Dir(path))
	parent.children[filepath.Base(path)] = &node{mode: fs.ModeDevice | fs.ModeCharDevice | 0o600}

	return t
}

// Fail makes every access to path return err.
func (t *Tree) Fail(path string, err error) *Tree {
	t.errs[filepath.Clean(path)] = err

	return t
}

func (t *Tree) mkdirAll(path string) *node {
	current := t.root

	for _, part := range split(path) {
		child, ok := current.children[part]
		if !ok {
			child = &node{mode: fs.ModeDir | 0o755, children: map[string]*node{}}
			current.children[part] = child
		}

		current = child
	}

	return current
}

func (t *Tree) lookup(path string) (*node, error) {
	path = filepath.Clean(path)
	if err, ok := t.errs[path]; ok {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: err}
	}

	current := t.root

	for _, part := range split(path) {
		if current.children == nil {
			return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
		}

		child, ok := current.children[part]
		if !ok {
			return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
		}

		current = child
	}

	return current, nil
}

// ReadDir implements fsys.FS. Entries are sorted by name.
func (t *Tree) ReadDir(name string) ([]fs.DirEntry, error) {
	n, err := t.lookup(name)
	if err != nil {
		return nil, err
	}

	if !n.mode.IsDir() {
		return nil, &fs.PathError{Op: "readdirent", Path: name, Err: fs.ErrInvalid}
	}

	names := make([]string, 0, len(n.children))
	for childName := range n.children {
		names = append(names, childName)
	}

	slices.Sort(names)

	entries := make([]fs.DirEntry, 0, len(names))
	for _, childName := range names {
		full := filepath.Join(filepath.Clean(name), childName)
		entries = append(entries, dirEntry{
			info: fileInfo{name: childName, mode: n.children[childName].mode, size: n.children[childName].size},
			err:  t.errs[full],
		})
	}

	return entries, nil
}

// Lstat implements fsys.FS.
func (t *Tree) Lstat(name string) (fs.FileInfo, error) {
	n, err := t.lookup(name)
	if err != nil {
		return nil, err
	}

	return fileInfo{name: filepath.Base(name), mode: n.mode, size: n.size}, nil
}

// Chain is a synthetic tree of Depth nested directories named "d", each
// holding one file "f.bin" of FileSize bytes. It is generated on demand so
// very deep trees cost no memory up front.
type Chain struct {
	Root     string
	Depth    int
	FileSize int64
}

// Total is the sum of all file sizes in the chain.
func (c Chain) Total() int64 {
	return int64(c.Depth+1) * c.FileSize
}

func (c Chain) level(name string) (int, bool) {
	name = filepath.Clean(name)

	rest, ok := strings.CutPrefix(name, filepath.Clean(c.Root))
	if !ok {
		return 0, false
	}

	level := 0

	for _, part := range split(rest) {
		if part != "d" {
			return 0, false
		}

		level++
	}

	return level, level <= c.Depth
}

// ReadDir implements fsys.FS.
func (c Chain) ReadDir(name string) ([]fs.DirEntry, error) {
	level, ok := c.level(name)
	if !ok {
		return nil, &fs.PathError{Op: "readdirent", Path: name, Err: fs.ErrNotExist}
	}

	entries := make([]fs.DirEntry, 0, 2)
	if level < c.Depth {
		entries = append(entries, dirEntry{info: fileInfo{name: "d", mode: fs.ModeDir | 0o755}})
	}

	return append(entries, dirEntry{info: fileInfo{name: "f.bin", mode: 0o644, size: c.FileSize}}), nil
}

// Lstat implements fsys.FS.
func (c Chain) Lstat(name string) (fs.FileInfo, error) {
	if _, ok := c.level(name); !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}

	return fileInfo{name: filepath.Base(name), mode: fs.ModeDir | 0o755}, nil
}

func split(path string) []string {
	return strings.FieldsFunc(filepath.ToSlash(path), func(r rune) bool { return r == '/' })
}

type dirEntry struct {
	info fileInfo
	err  error
}

func (d dirEntry) Name() string      { return d.info.name }
func (d dirEntry) IsDir() bool       { return d.info.mode.IsDir() }
func (d dirEntry) Type() fs.FileMode { return d.info.mode.Type() }

func (d dirEntry) Info() (fs.FileInfo, error) {
	if d.err != nil {
		return nil, &fs.PathError{Op: "lstat", Path: d.info.name, Err: d.err}
	}

	return d.info, nil
}

type fileInfo struct {
	name string
	mode fs.FileMode
	size int64
}

func (f fileInfo) Name() string       { return f.name }
func (f fileInfo) Size() int64        { return f.size }
func (f fileInfo) Mode() fs.FileMode  { return f.mode }
func (f fileInfo) ModTime() time.Time { return time.Time{} }
func (f fileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f fileInfo) Sys() any           { return nil }
