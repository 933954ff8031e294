// Package vfs implements the in-memory virtual filesystem used as
// persistence by every other subsystem (spec §4.2). Paths are absolute,
// slash-delimited, and may not contain ".." traversal segments.
package vfs

import (
	"sort"
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
)

type nodeKind uint8

const (
	kindDir nodeKind = iota
	kindFile
)

type node struct {
	kind     nodeKind
	data     []byte
	children map[string]*node
}

// FS is an in-memory directory tree. The zero value is not usable; use New.
// A single process-wide FS is acceptable per Design Notes §9, but FS is not
// itself a global — callers own an instance and pass it explicitly.
type FS struct {
	root *node
}

// New creates an empty filesystem with just the root directory "/".
func New() *FS {
	return &FS{root: &node{kind: kindDir, children: map[string]*node{}}}
}

// splitPath validates and splits an absolute path into segments.
// Rejects relative paths, empty paths, and ".." traversal.
func splitPath(path string) ([]string, error) {
	if path == "" || path[0] != '/' {
		return nil, oasiserr.New(oasiserr.Vfs, "invalid path: must be absolute")
	}
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return []string{}, nil
	}
	segs := strings.Split(trimmed, "/")
	for _, s := range segs {
		if s == "" || s == "." || s == ".." {
			return nil, oasiserr.New(oasiserr.Vfs, "invalid path: traversal or empty segment")
		}
	}
	return segs, nil
}

// walk resolves segs from the root, returning the parent directory, the
// final segment's node (nil if absent), and the final segment's name. It
// creates nothing: a missing or non-directory intermediate segment is an
// error, so callers needing mkdir -p semantics call Mkdir per segment.
func (fs *FS) walk(segs []string) (*node, *node, string, error) {
	cur := fs.root
	for i, s := range segs {
		if i == len(segs)-1 {
			return cur, cur.children[s], s, nil
		}
		child, ok := cur.children[s]
		if !ok {
			return nil, nil, "", oasiserr.New(oasiserr.Vfs, "not found")
		}
		if child.kind != kindDir {
			return nil, nil, "", oasiserr.New(oasiserr.Vfs, "not a directory")
		}
		cur = child
	}
	return fs.root, fs.root, "", nil
}

// Mkdir creates the directory at path. The parent must already exist.
func (fs *FS) Mkdir(path string) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return nil // root always exists
	}
	parent, existing, name, err := fs.walk(segs)
	if err != nil {
		return oasiserr.Wrap(oasiserr.Vfs, "Mkdir", err)
	}
	if existing != nil {
		if existing.kind == kindDir {
			return nil // idempotent
		}
		return oasiserr.New(oasiserr.Vfs, "Mkdir: already exists as a file")
	}
	parent.children[name] = &node{kind: kindDir, children: map[string]*node{}}
	return nil
}

// Write creates or overwrites the file at path with the given bytes. The
// parent directory must already exist; Write does not create parents.
func (fs *FS) Write(path string, data []byte) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return oasiserr.New(oasiserr.Vfs, "Write: cannot write to root")
	}
	parent, existing, name, err := fs.walk(segs)
	if err != nil {
		return oasiserr.Wrap(oasiserr.Vfs, "Write", err)
	}
	if existing != nil && existing.kind == kindDir {
		return oasiserr.New(oasiserr.Vfs, "Write: path is a directory")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	parent.children[name] = &node{kind: kindFile, data: buf}
	return nil
}

// Read returns the bytes stored at path.
func (fs *FS) Read(path string) ([]byte, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, oasiserr.New(oasiserr.Vfs, "Read: root is a directory")
	}
	_, n, _, err := fs.walk(segs)
	if err != nil {
		return nil, oasiserr.Wrap(oasiserr.Vfs, "Read", err)
	}
	if n == nil {
		return nil, oasiserr.New(oasiserr.Vfs, "Read: not found")
	}
	if n.kind != kindFile {
		return nil, oasiserr.New(oasiserr.Vfs, "Read: path is a directory")
	}
	out := make([]byte, len(n.data))
	copy(out, n.data)
	return out, nil
}

// Readdir returns the sorted names of entries directly under path.
func (fs *FS) Readdir(path string) ([]string, error) {
	segs, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	var dir *node
	if len(segs) == 0 {
		dir = fs.root
	} else {
		_, n, _, err := fs.walk(segs)
		if err != nil {
			return nil, oasiserr.Wrap(oasiserr.Vfs, "Readdir", err)
		}
		if n == nil {
			return nil, oasiserr.New(oasiserr.Vfs, "Readdir: not found")
		}
		if n.kind != kindDir {
			return nil, oasiserr.New(oasiserr.Vfs, "Readdir: not a directory")
		}
		dir = n
	}
	names := make([]string, 0, len(dir.children))
	for name := range dir.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether path refers to an existing file or directory.
func (fs *FS) Exists(path string) bool {
	segs, err := splitPath(path)
	if err != nil {
		return false
	}
	if len(segs) == 0 {
		return true
	}
	_, n, _, err := fs.walk(segs)
	return err == nil && n != nil
}

// Remove deletes the file or directory (and everything beneath it) at path.
// Missing paths are a no-op, matching the VFS's general "missing is benign
// unless reading" posture used by the loader and widget layers.
func (fs *FS) Remove(path string) error {
	segs, err := splitPath(path)
	if err != nil {
		return err
	}
	if len(segs) == 0 {
		return oasiserr.New(oasiserr.Vfs, "Remove: cannot remove root")
	}
	parent, existing, name, err := fs.walk(segs)
	if err != nil {
		return nil // missing parent: nothing to remove
	}
	if existing == nil {
		return nil
	}
	delete(parent.children, name)
	return nil
}
