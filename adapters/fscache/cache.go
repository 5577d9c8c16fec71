package fscache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"qqfit/domain/core"
	"qqfit/domain/dist"
	"qqfit/ports"
)

// Cache persists parameter vectors as one JSON file per (family, year) key,
// named <family>_<year>.json under a single directory.
//
// An entry is trusted for as long as it exists: Load never checks the entry
// against current data, so refreshing a fit means removing the file first
// (see Remove or the cache clear command).
type Cache struct {
	dir string
}

// New creates the cache directory if needed and returns a cache over it.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating cache directory %s: %v", core.ErrCacheIO, dir, err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Load reads the vector for key. A missing file is a miss, not an error.
func (c *Cache) Load(ctx context.Context, key ports.FitKey) ([]float64, bool, error) {
	path := c.keyPath(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: reading %s: %v", core.ErrCacheIO, path, err)
	}

	var params []float64
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, false, fmt.Errorf("%w: %s is not a parameter vector: %v", core.ErrCacheIO, path, err)
	}
	return params, true, nil
}

// Store writes the vector for key, replacing any existing entry.
func (c *Cache) Store(ctx context.Context, key ports.FitKey, params []float64) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: encoding parameters for %s: %v", core.ErrCacheIO, c.keyPath(key), err)
	}
	if err := os.WriteFile(c.keyPath(key), raw, 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", core.ErrCacheIO, c.keyPath(key), err)
	}
	return nil
}

// Remove deletes the entry for key. Removing an absent entry is not an error.
func (c *Cache) Remove(ctx context.Context, key ports.FitKey) error {
	if err := os.Remove(c.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: removing %s: %v", core.ErrCacheIO, c.keyPath(key), err)
	}
	return nil
}

// Keys lists every cached key, sorted by family then year. Files that do not
// follow the entry naming scheme are ignored.
func (c *Cache) Keys(ctx context.Context) ([]ports.FitKey, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", core.ErrCacheIO, c.dir, err)
	}

	var keys []ports.FitKey
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := parseEntryName(entry.Name()); ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Family != keys[j].Family {
			return keys[i].Family < keys[j].Family
		}
		return keys[i].Year < keys[j].Year
	})
	return keys, nil
}

// keyPath derives the deterministic entry path for a key.
func (c *Cache) keyPath(key ports.FitKey) string {
	return filepath.Join(c.dir, fmt.Sprintf("%s_%d.json", key.Family, key.Year))
}

func parseEntryName(name string) (ports.FitKey, bool) {
	stem, found := strings.CutSuffix(name, ".json")
	if !found {
		return ports.FitKey{}, false
	}
	tag, yearStr, found := strings.Cut(stem, "_")
	if !found {
		return ports.FitKey{}, false
	}
	family, err := dist.ParseFamily(tag)
	if err != nil {
		return ports.FitKey{}, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return ports.FitKey{}, false
	}
	return ports.FitKey{Family: family, Year: year}, true
}
