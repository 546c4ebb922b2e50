package driver

import (
	"context"
	"os"
	"strings"
	"testing"

	"cldt/internal/diag"
)

func tempCache(t *testing.T) *DiskCache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cache, err := OpenDiskCache("cldt-test")
	if err != nil {
		t.Fatal(err)
	}
	return cache
}

func TestDiskCacheRoundtrip(t *testing.T) {
	cache := tempCache(t)
	key := HashContent([]byte("quality: 150\n"))

	payload := &LintPayload{
		Schema: lintCacheSchemaVersion,
		Findings: []Finding{{
			Code:     uint16(diag.LintInvalidQuality),
			Severity: uint8(diag.SevWarning),
			Start:    0,
			End:      12,
			Message:  "quality 150 is outside the valid range 1-100",
		}},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatal(err)
	}

	var got LintPayload
	hit, err := cache.Get(key, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Fatal("expected a cache hit")
	}
	if len(got.Findings) != 1 || got.Findings[0].Message != payload.Findings[0].Message {
		t.Errorf("payload = %+v", got)
	}

	bag := payloadToBag(&got, 0, 16)
	if bag.Len() != 1 {
		t.Fatalf("bag len = %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.LintInvalidQuality || d.Severity != diag.SevWarning {
		t.Errorf("restored diagnostic = %+v", d)
	}
	if d.Primary.Start != 0 || d.Primary.End != 12 {
		t.Errorf("restored span = %d-%d", d.Primary.Start, d.Primary.End)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache := tempCache(t)

	var out LintPayload
	hit, err := cache.Get(HashContent([]byte("never stored")), &out)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("unexpected hit for an unknown key")
	}
}

func TestDiskCacheNilReceiver(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{1}, &LintPayload{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	var out LintPayload
	if hit, err := cache.Get(Digest{1}, &out); hit || err != nil {
		t.Errorf("nil Get = %v, %v", hit, err)
	}
}

func TestLintPathsUsesCache(t *testing.T) {
	cache := tempCache(t)
	dir := t.TempDir()
	path := writeTemp(t, dir, "doc.cldt", "quality: 150\n")

	opts := LintOptions{MaxDiagnostics: 16, Cache: cache}

	_, first, err := LintPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first[0].CacheHit {
		t.Error("first run should miss the cache")
	}
	if first[0].Bag.Len() != 1 {
		t.Fatalf("first run diagnostics = %d", first[0].Bag.Len())
	}

	_, second, err := LintPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].CacheHit {
		t.Error("second run should hit the cache")
	}
	if second[0].Bag.Len() != 1 {
		t.Fatalf("second run diagnostics = %d", second[0].Bag.Len())
	}
	got := second[0].Bag.Items()[0]
	if got.Code != diag.LintInvalidQuality {
		t.Errorf("cached code = %s", got.Code.ID())
	}

	// Changing the content invalidates the key.
	if err := os.WriteFile(path, []byte("quality: 80\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, third, err := LintPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third[0].CacheHit {
		t.Error("changed content should miss the cache")
	}
	if third[0].Bag.Len() != 0 {
		t.Errorf("clean content produced %d diagnostics", third[0].Bag.Len())
	}
}

func TestLintPathsDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "b.cldt", "opacity: 150\n")
	writeTemp(t, dir, "a.cldt", "quality: 150\n")
	writeTemp(t, dir, "c.cldt", "w_300/\n")

	_, results, err := LintPaths(context.Background(), []string{dir}, LintOptions{Jobs: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	for i, want := range []string{"a.cldt", "b.cldt", "c.cldt"} {
		if got := results[i].Path; !strings.HasSuffix(got, want) {
			t.Errorf("results[%d] = %s, want suffix %s", i, got, want)
		}
	}
	if results[0].Bag.Len() != 1 || results[1].Bag.Len() != 1 || results[2].Bag.Len() != 0 {
		t.Errorf("diagnostic counts = %d/%d/%d",
			results[0].Bag.Len(), results[1].Bag.Len(), results[2].Bag.Len())
	}

	merged := MergeBags(results, 16)
	if merged.Len() != 2 {
		t.Errorf("merged = %d", merged.Len())
	}
}
