// Package cache persists per-file complexity metrics between CI runs,
// keyed by a hash of the file path and validated by a hash of the file
// content. Caching is a pure optimization: every persistence failure is
// swallowed and the metrics are recomputed.
package cache

import (
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"

	"reviewgate/internal/analyzer"
)

// entry is the on-disk cache record. FileHash gates validity: when the
// file's content hash no longer matches, the entry is discarded.
type entry struct {
	FileHash string           `json:"fileHash"`
	Metrics  analyzer.Metrics `json:"metrics"`
}

// Cache wraps the analyzer set with an on-disk metrics cache.
// Safe to delete the directory at any time; that is a cold cache.
type Cache struct {
	dir       string
	analyzers []analyzer.LanguageAnalyzer
	logger    *slog.Logger
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
}

// New creates a cache rooted at dir. The directory is created lazily on
// the first write; a directory that cannot be created disables persistence
// but never analysis.
func New(dir string, logger *slog.Logger) *Cache {
	enc, _ := zstd.NewWriter(nil)
	dec, _ := zstd.NewReader(nil)
	return &Cache{
		dir:       dir,
		analyzers: analyzer.DefaultAnalyzers(),
		logger:    logger,
		encoder:   enc,
		decoder:   dec,
	}
}

// GetOrCompute returns metrics for a file on disk. A missing or binary
// file yields zero metrics; that is a normal condition for deleted and
// non-text files in a diff.
func (c *Cache) GetOrCompute(path string) analyzer.Metrics {
	data, err := os.ReadFile(path)
	if err != nil || !isText(data) {
		return analyzer.Metrics{}
	}
	return c.GetOrComputeSource(path, data)
}

// GetOrComputeSource returns metrics for source already in memory,
// consulting the cache first. A stale or unreadable cache entry is
// silently recomputed and rewritten.
func (c *Cache) GetOrComputeSource(path string, source []byte) analyzer.Metrics {
	contentHash := hashBytes(source)

	if m, ok := c.lookup(path, contentHash); ok {
		return m
	}

	a := analyzer.ForPath(c.analyzers, path)
	m := a.Analyze(source, path)
	c.store(path, contentHash, m)
	return m
}

// lookup reads and validates a cache entry. Every failure reads as a miss.
func (c *Cache) lookup(path, contentHash string) (analyzer.Metrics, bool) {
	raw, err := os.ReadFile(c.entryPath(path))
	if err != nil {
		return analyzer.Metrics{}, false
	}

	decoded, err := c.decoder.DecodeAll(raw, nil)
	if err != nil {
		return analyzer.Metrics{}, false
	}

	var e entry
	if err := json.Unmarshal(decoded, &e); err != nil {
		return analyzer.Metrics{}, false
	}
	if e.FileHash != contentHash {
		return analyzer.Metrics{}, false
	}
	return e.Metrics, true
}

// store persists a cache entry, best effort. Disk-full and permission
// errors are logged at debug and otherwise ignored.
func (c *Cache) store(path, contentHash string, m analyzer.Metrics) {
	if c.dir == "" {
		return
	}
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		c.logger.Debug("Cache directory unavailable", "dir", c.dir, "error", err)
		return
	}

	data, err := json.Marshal(entry{FileHash: contentHash, Metrics: m})
	if err != nil {
		return
	}
	compressed := c.encoder.EncodeAll(data, nil)

	if err := os.WriteFile(c.entryPath(path), compressed, 0644); err != nil {
		c.logger.Debug("Cache write failed", "path", path, "error", err)
	}
}

// Clear removes every cache entry.
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return nil
}

// Stats reports the entry count and total size of the cache directory.
func (c *Cache) Stats() (entries int, bytes int64) {
	items, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, 0
	}
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		entries++
		if info, err := item.Info(); err == nil {
			bytes += info.Size()
		}
	}
	return entries, bytes
}

// entryPath maps a source path to its cache file, one file per source file.
func (c *Cache) entryPath(path string) string {
	return filepath.Join(c.dir, hashBytes([]byte(filepath.Clean(path)))+".json.zst")
}

// hashBytes returns the hex blake2b-256 digest of data.
func hashBytes(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// isText reports whether data looks like decodable text.
func isText(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return true
}
