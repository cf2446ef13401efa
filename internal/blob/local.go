package blob

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Local stores objects on the filesystem under a root directory. Writes go
// through a temp file and an atomic rename so readers never observe a
// partially written object.
type Local struct {
	root          string
	publicBaseURL string
}

// NewLocal creates a Local store rooted at root, creating the directory if needed.
func NewLocal(root, publicBaseURL string) (*Local, error) {
	if root == "" {
		root = "./data/blobs"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root %q: %w", root, err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	return &Local{root: absRoot, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// abs resolves a logical storage path to a filesystem path, rejecting
// anything that escapes the root.
func (l *Local) abs(path string) (string, error) {
	joined := filepath.Join(l.root, filepath.Clean(filepath.FromSlash(path)))
	rel, err := filepath.Rel(l.root, joined)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("path %q escapes storage root", path)
	}
	return joined, nil
}

func (l *Local) url(path string) string {
	if l.publicBaseURL == "" {
		return "/" + path
	}
	return l.publicBaseURL + "/" + path
}

// Put writes data at path, overwriting any existing object.
func (l *Local) Put(ctx context.Context, path string, data []byte, contentType string) (*ObjectRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest, err := l.abs(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %q: %w", filepath.Dir(dest), err)
	}

	tmp := dest + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open tmp %q: %w", tmp, err)
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		os.Remove(tmp) //nolint:errcheck
		return nil, fmt.Errorf("write object: %w", werr)
	}
	if cerr != nil {
		os.Remove(tmp) //nolint:errcheck
		return nil, fmt.Errorf("flush object: %w", cerr)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp) //nolint:errcheck
		return nil, fmt.Errorf("rename to %q: %w", dest, err)
	}

	return &ObjectRef{Path: path, URL: l.url(path)}, nil
}

// List walks the prefix and returns every stored object beneath it.
func (l *Local) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	base, err := l.abs(prefix)
	if err != nil {
		return nil, err
	}

	objects := []ObjectInfo{}
	err = filepath.WalkDir(base, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".tmp") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(l.root, p)
		if err != nil {
			return err
		}
		logical := filepath.ToSlash(rel)
		objects = append(objects, ObjectInfo{
			Path:       logical,
			Filename:   FilenameOf(logical),
			URL:        l.url(logical),
			Size:       info.Size(),
			UploadedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []ObjectInfo{}, nil
		}
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Path < objects[j].Path })
	return objects, nil
}

// Get reads the full object body at path.
func (l *Local) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := l.abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(data), nil
}

// Delete removes the object at path. Absent paths are not an error.
func (l *Local) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := l.abs(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete %q: %w", path, err)
	}
	return nil
}

// Exists reports whether an object is stored at path.
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	abs, err := l.abs(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// Usage walks the whole root and aggregates size and object count.
func (l *Local) Usage(ctx context.Context) (*UsageInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	usage := &UsageInfo{}
	err := filepath.WalkDir(l.root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".tmp") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		usage.TotalSize += info.Size()
		usage.FileCount++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("compute usage: %w", err)
	}
	return usage, nil
}
