package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/keshon/rewind/internal/fs"
)

// Pack writes a zip archive at archivePath containing the given files.
// Entry names are the relative slash paths; file content is read from
// root/<rel>. The archive is assembled in memory and written in one shot,
// so a failed pack never leaves a truncated archive behind.
func Pack(fsys fs.FS, archivePath, root string, relPaths []string) error {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, rel := range relPaths {
		data, err := fsys.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("pack %q: %w", rel, err)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   path.Clean(rel),
			Method: zip.Deflate,
		})
		if err != nil {
			return fmt.Errorf("pack %q: %w", rel, err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("pack %q: %w", rel, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return fsys.WriteFile(archivePath, buf.Bytes(), 0o644)
}

// Extract unpacks every entry of the archive under destRoot and returns the
// relative paths written. Entries escaping destRoot are rejected; extraction
// only adds or overwrites, it never deletes.
func Extract(fsys fs.FS, archivePath, destRoot string) ([]string, error) {
	data, err := fsys.ReadFile(archivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive %q: %w", archivePath, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read archive %q: %w", archivePath, err)
	}

	var written []string
	for _, entry := range zr.File {
		name := path.Clean(filepath.ToSlash(entry.Name))
		if name == "." || path.IsAbs(name) || strings.HasPrefix(name, "../") {
			return written, fmt.Errorf("archive entry %q escapes destination", entry.Name)
		}
		if entry.FileInfo().IsDir() {
			continue
		}

		rc, err := entry.Open()
		if err != nil {
			return written, fmt.Errorf("extract %q: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return written, fmt.Errorf("extract %q: %w", name, err)
		}

		target := filepath.Join(destRoot, filepath.FromSlash(name))
		if err := fsys.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, fmt.Errorf("extract %q: %w", name, err)
		}
		if err := fsys.WriteFile(target, content, 0o644); err != nil {
			return written, fmt.Errorf("extract %q: %w", name, err)
		}
		written = append(written, name)
	}

	return written, nil
}
