package fs

import (
	"io"
	"os"
)

// FS abstracts filesystem operations so stores can run against the real
// disk or an in-memory tree in tests.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	MkdirTemp(dir, pattern string) (string, error)
	Remove(path string) error
	RemoveAll(path string) error
	Rename(oldPath, newPath string) error
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.DirEntry, error)
	CreateTempFile(dir, pattern string) (io.WriteCloser, string, error)
	IsNotExist(err error) bool
	Exists(path string) bool
	IsDir(path string) bool
}
