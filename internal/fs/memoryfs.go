package fs

import (
	"bytes"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MemoryFS is a pure in-memory filesystem for tests.
type MemoryFS struct {
	files map[string][]byte
	dirs  map[string]struct{}
	seq   int
}

func NewMemoryFS() *MemoryFS {
	f := &MemoryFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
	f.dirs["/"] = struct{}{}
	f.dirs["."] = struct{}{}
	return f
}

func clean(p string) string {
	if p == "" {
		return "."
	}
	return filepath.ToSlash(filepath.Clean(p))
}

func (f *MemoryFS) ReadFile(p string) ([]byte, error) {
	p = clean(p)
	data, ok := f.files[p]
	if !ok {
		return nil, iofs.ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

func (f *MemoryFS) WriteFile(p string, data []byte, perm os.FileMode) error {
	p = clean(p)
	f.MkdirAll(path.Dir(p), 0o755)
	f.files[p] = append([]byte(nil), data...)
	return nil
}

func (f *MemoryFS) MkdirAll(p string, perm os.FileMode) error {
	p = clean(p)
	cur := ""
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." {
			continue
		}
		cur = path.Join(cur, seg)
		f.dirs[cur] = struct{}{}
	}
	return nil
}

func (f *MemoryFS) MkdirTemp(dir, pattern string) (string, error) {
	f.seq++
	name := strings.Replace(pattern, "*", fmt.Sprintf("%d", f.seq), 1)
	if !strings.Contains(pattern, "*") {
		name = fmt.Sprintf("%s%d", pattern, f.seq)
	}
	p := clean(path.Join(dir, name))
	f.MkdirAll(p, 0o755)
	return p, nil
}

func (f *MemoryFS) Remove(p string) error {
	p = clean(p)
	if _, ok := f.files[p]; ok {
		delete(f.files, p)
		return nil
	}
	if _, ok := f.dirs[p]; ok {
		delete(f.dirs, p)
		return nil
	}
	return iofs.ErrNotExist
}

func (f *MemoryFS) RemoveAll(p string) error {
	p = clean(p)
	for k := range f.files {
		if k == p || strings.HasPrefix(k, p+"/") {
			delete(f.files, k)
		}
	}
	for k := range f.dirs {
		if k == p || strings.HasPrefix(k, p+"/") {
			delete(f.dirs, k)
		}
	}
	return nil
}

func (f *MemoryFS) Rename(oldp, newp string) error {
	oldp, newp = clean(oldp), clean(newp)
	if data, ok := f.files[oldp]; ok {
		f.MkdirAll(path.Dir(newp), 0o755)
		f.files[newp] = data
		delete(f.files, oldp)
		return nil
	}
	if _, ok := f.dirs[oldp]; ok {
		for k, v := range f.files {
			if strings.HasPrefix(k, oldp+"/") {
				f.files[path.Join(newp, strings.TrimPrefix(k, oldp+"/"))] = v
				delete(f.files, k)
			}
		}
		delete(f.dirs, oldp)
		f.MkdirAll(newp, 0o755)
		return nil
	}
	return iofs.ErrNotExist
}

func (f *MemoryFS) Stat(p string) (os.FileInfo, error) {
	p = clean(p)
	if data, ok := f.files[p]; ok {
		return &memFileInfo{name: path.Base(p), size: int64(len(data))}, nil
	}
	if _, ok := f.dirs[p]; ok {
		return &memFileInfo{name: path.Base(p), dir: true}, nil
	}
	return nil, iofs.ErrNotExist
}

func (f *MemoryFS) ReadDir(p string) ([]os.DirEntry, error) {
	p = clean(p)
	if _, ok := f.dirs[p]; !ok {
		return nil, iofs.ErrNotExist
	}
	seen := map[string]bool{}
	var entries []os.DirEntry
	add := func(name string, dir bool, size int64) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		entries = append(entries, &memDirEntry{info: memFileInfo{name: name, dir: dir, size: size}})
	}
	for k, v := range f.files {
		if path.Dir(k) == p {
			add(path.Base(k), false, int64(len(v)))
		}
	}
	for k := range f.dirs {
		if k != p && path.Dir(k) == p {
			add(path.Base(k), true, 0)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

func (f *MemoryFS) CreateTempFile(dir, pattern string) (io.WriteCloser, string, error) {
	f.seq++
	name := strings.Replace(pattern, "*", fmt.Sprintf("%d", f.seq), 1)
	p := clean(path.Join(dir, name))
	return &memTempFile{fs: f, path: p}, p, nil
}

func (f *MemoryFS) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (f *MemoryFS) Exists(p string) bool {
	_, err := f.Stat(p)
	return err == nil
}

func (f *MemoryFS) IsDir(p string) bool {
	_, ok := f.dirs[clean(p)]
	return ok
}

type memTempFile struct {
	fs   *MemoryFS
	path string
	buf  bytes.Buffer
}

func (t *memTempFile) Write(p []byte) (int, error) {
	return t.buf.Write(p)
}

func (t *memTempFile) Close() error {
	return t.fs.WriteFile(t.path, t.buf.Bytes(), 0o644)
}

type memFileInfo struct {
	name string
	size int64
	dir  bool
}

func (i *memFileInfo) Name() string { return i.name }
func (i *memFileInfo) Size() int64  { return i.size }
func (i *memFileInfo) Mode() os.FileMode {
	if i.dir {
		return os.ModeDir | 0o755
	}
	return 0o644
}
func (i *memFileInfo) ModTime() time.Time { return time.Time{} }
func (i *memFileInfo) IsDir() bool        { return i.dir }
func (i *memFileInfo) Sys() any           { return nil }

type memDirEntry struct {
	info memFileInfo
}

func (e *memDirEntry) Name() string               { return e.info.name }
func (e *memDirEntry) IsDir() bool                { return e.info.dir }
func (e *memDirEntry) Type() os.FileMode          { return e.info.Mode().Type() }
func (e *memDirEntry) Info() (os.FileInfo, error) { return &e.info, nil }
