package ignore

import (
	"path/filepath"

	"github.com/keshon/rewind/internal/config"
)

// Filter decides whether a relative path is excluded from tracking.
type Filter struct {
	patterns []string
}

// NewFilter builds a Filter over the fixed ignore list.
func NewFilter() *Filter {
	return &Filter{patterns: config.IgnorePatterns}
}

// Match returns true if the relative path matches any ignore pattern.
// Evaluation is against the whole path, not per segment.
func (f *Filter) Match(relPath string) bool {
	clean := filepath.ToSlash(filepath.Clean(relPath))
	for _, pat := range f.patterns {
		if wildcardMatch(pat, clean) {
			return true
		}
	}
	return false
}

// wildcardMatch matches path against a shell-glob pattern where '*' matches
// any run of characters including '/' and '?' matches a single character.
// filepath.Match stops '*' at separators, which would let nested paths under
// an ignored directory leak through.
func wildcardMatch(pattern, path string) bool {
	px, sx := 0, 0
	starPx, starSx := -1, 0

	for sx < len(path) {
		switch {
		case px < len(pattern) && (pattern[px] == '?' || pattern[px] == path[sx]):
			px++
			sx++
		case px < len(pattern) && pattern[px] == '*':
			starPx, starSx = px, sx
			px++
		case starPx >= 0:
			px = starPx + 1
			starSx++
			sx = starSx
		default:
			return false
		}
	}

	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}
