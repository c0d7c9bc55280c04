// Package icons resolves opaque icon references to image files.
//
// Icon-theme discovery is not done here; the loader only looks the
// reference up in a list of configured search paths and remembers the
// answer in an LRU cache.
package icons

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"lookout/internal/domain"
	lkerrors "lookout/internal/errors"
)

// DefaultCacheSize is the number of resolved references kept in memory
const DefaultCacheSize = 256

var extensions = []string{"", ".png", ".svg", ".xpm", ".jpg"}

// ErrNotFound is returned when no search path contains the reference
var ErrNotFound = errors.New("icon not found")

// Loader resolves icon references against search paths
type Loader struct {
	paths []string
	cache *lru.Cache[string, domain.Image]
}

// ExpandPaths replaces a leading "~" with home in every path.
// An error is returned only when a path needs expansion and home is empty.
func ExpandPaths(paths []string, home string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.HasPrefix(p, "~") {
			if home == "" {
				return nil, lkerrors.Environment("Env Var Not Found Error",
					"cannot unpack home directory for user", errors.New("HOME is not set"))
			}
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
		out = append(out, p)
	}
	return out, nil
}

// NewLoader creates a loader for the given search paths.
// Paths starting with "~" are expanded with $HOME.
func NewLoader(paths []string, cacheSize int) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, domain.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create icon cache: %w", err)
	}

	expanded, err := ExpandPaths(paths, os.Getenv("HOME"))
	l := &Loader{paths: expanded, cache: cache}
	if err != nil {
		// keep the paths that do not need HOME so icons still partly work
		for _, p := range paths {
			if !strings.HasPrefix(p, "~") {
				l.paths = append(l.paths, p)
			}
		}
		return l, err
	}
	return l, nil
}

// Paths returns the expanded search paths
func (l *Loader) Paths() []string {
	return l.paths
}

// Load resolves ref to an image. wasCached reports whether the answer came
// from the cache, which callers use to decide on the "freshly replaced" hint.
func (l *Loader) Load(ref string) (img *domain.Image, wasCached bool, err error) {
	if ref == "" {
		return nil, false, ErrNotFound
	}
	if cached, ok := l.cache.Get(ref); ok {
		return &cached, true, nil
	}

	path, ok := l.find(ref)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}
	resolved := domain.Image{Ref: ref, Path: path}
	l.cache.Add(ref, resolved)
	return &resolved, false, nil
}

func (l *Loader) find(ref string) (string, bool) {
	if filepath.IsAbs(ref) {
		if fileExists(ref) {
			return ref, true
		}
		return "", false
	}
	for _, dir := range l.paths {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, ref+ext)
			if fileExists(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
