package util

import (
	"encoding/json"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/keshon/rewind/internal/fs"
)

// WriteJSON writes a JSON document atomically: marshal to a temp file in the
// target directory, then rename over the destination.
func WriteJSON(fsys fs.FS, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmpFile, tmpPath, err := fsys.CreateTempFile(dir, "tmp-*.json")
	if err != nil {
		return err
	}
	defer fsys.Remove(tmpPath) // cleanup on error; no-op after rename

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return fsys.Rename(tmpPath, path)
}

// ReadJSON reads a JSON document and unmarshals it into v.
func ReadJSON(fsys fs.FS, path string, v any) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// SortedKeys returns the keys of a map sorted alphabetically.
func SortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WorkerCount returns the number of workers for concurrent operations.
func WorkerCount() int {
	return runtime.NumCPU()
}

// Parallel runs fn concurrently for each item in inputs, limited by workerLimit.
// It waits for every worker before returning and reports at most one error.
func Parallel[T any](inputs []T, workerLimit int, fn func(T) error) error {
	if len(inputs) == 0 {
		return nil
	}
	if workerLimit < 1 {
		workerLimit = 1
	}

	sem := make(chan struct{}, workerLimit)
	errCh := make(chan error, len(inputs))
	var wg sync.WaitGroup

	for _, in := range inputs {
		sem <- struct{}{}
		wg.Add(1)
		go func(x T) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := fn(x); err != nil {
				errCh <- err
			}
		}(in)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		return err
	}
	return nil
}
