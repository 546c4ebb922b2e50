package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"cldt/internal/diag"
	"cldt/internal/source"
)

// Digest identifies file content by its SHA-256 hash.
type Digest [sha256.Size]byte

// HashContent computes the cache key for a document's raw bytes.
func HashContent(data []byte) Digest {
	return sha256.Sum256(data)
}

// Current schema version. Increment when LintPayload format changes.
const lintCacheSchemaVersion uint16 = 1

// DiskCache stores lint findings per content digest on disk, so unchanged
// documents are not re-linted across runs. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Finding is one cached diagnostic. Spans are byte offsets into the document
// whose digest keys the payload, so they stay valid as long as the content
// matches.
type Finding struct {
	Code     uint16
	Severity uint8
	Start    uint32
	End      uint32
	Message  string
}

// LintPayload is the serialized form of one document's lint findings.
type LintPayload struct {
	Schema   uint16
	Findings []Finding
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "lint", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *LintPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace.
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. The first return
// value reports whether the key was present with a compatible schema.
func (c *DiskCache) Get(key Digest, out *LintPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != lintCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after lint rule changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// bagToPayload strips findings down to their cacheable core.
func bagToPayload(bag *diag.Bag) *LintPayload {
	payload := &LintPayload{Schema: lintCacheSchemaVersion}
	for _, d := range bag.Items() {
		payload.Findings = append(payload.Findings, Finding{
			Code:     uint16(d.Code),
			Severity: uint8(d.Severity),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return payload
}

// payloadToBag rebuilds diagnostics against the given file. Notes and fixes
// are not cached: a cache hit trades them for skipping the lint pass.
func payloadToBag(payload *LintPayload, fileID source.FileID, max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, f := range payload.Findings {
		bag.Add(diag.Diagnostic{
			Severity: diag.Severity(f.Severity),
			Code:     diag.Code(f.Code),
			Message:  f.Message,
			Primary:  source.Span{File: fileID, Start: f.Start, End: f.End},
		})
	}
	return bag
}
