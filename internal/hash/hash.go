package hash

import (
	"fmt"
	"os"

	"github.com/zeebo/xxh3"
	"golang.org/x/exp/mmap"
)

// Files at or above this size are read through a memory map instead of a
// plain read.
const mmapThreshold = 4 << 20

// Bytes returns the hex digest of data. Digests are change detectors, not a
// security primitive.
func Bytes(data []byte) string {
	return fmt.Sprintf("%x", xxh3.Hash128(data).Bytes())
}

// File returns the digest of a file's content. Any read failure (permission,
// vanished mid-scan) yields the empty digest; callers treat it as "content
// unknown".
func File(path string) string {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return ""
	}

	if fi.Size() >= mmapThreshold {
		if digest, err := mmapDigest(path, fi.Size()); err == nil {
			return digest
		}
		// fall through to a plain read
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return Bytes(data)
}

func mmapDigest(path string, size int64) (string, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data := make([]byte, size)
	if _, err := reader.ReadAt(data, 0); err != nil {
		return "", err
	}
	return Bytes(data), nil
}
