package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/keshon/rewind/internal/config"
	"github.com/keshon/rewind/internal/ignore"
)

// Files walks the project root and returns the relative slash paths of every
// tracked file, sorted. Each call is a fresh full walk; nothing is cached.
func Files(root string) ([]string, error) {
	matcher := ignore.NewFilter()

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subdirectory drops out of the walk; the root
			// itself must still be readable.
			if path != root && errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if d.IsDir() {
			if d.Name() == config.HistoryDir {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if matcher.Match(rel) {
			return nil
		}

		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", root, err)
	}

	sort.Strings(paths)
	return paths, nil
}
