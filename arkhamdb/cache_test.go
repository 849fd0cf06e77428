package arkhamdb

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCacheRoundtrip(t *testing.T) {
	cc := NewCachedClient(t.TempDir())
	path := filepath.Join(cc.dir, packsCacheFile)

	packs := []Pack{
		{Code: "core", Name: "Core Set", CyclePosition: 1, Position: 1},
	}
	cc.store(path, packs)

	if !cc.valid(path) {
		t.Fatalf("FAIL: a freshly written cache must be valid")
	}

	var out []Pack
	err := cc.load(path, &out)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}
	if len(out) != 1 || out[0].Code != "core" {
		t.Errorf("FAIL: cache did not roundtrip, got %v", out)
	}
}

func TestCacheExpiry(t *testing.T) {
	cc := NewCachedClient(t.TempDir())
	path := filepath.Join(cc.dir, cardsCacheFile)
	cc.store(path, []Card{{Code: "01001"}})

	stale := time.Now().Add(-25 * time.Hour)
	err := os.Chtimes(path, stale, stale)
	if err != nil {
		t.Fatalf("FAIL: unexpected error: %s", err)
	}

	if cc.valid(path) {
		t.Errorf("FAIL: a cache older than the TTL must be invalid")
	}

	// A stale file can still be loaded as a fallback
	var out []Card
	err = cc.load(path, &out)
	if err != nil || len(out) != 1 {
		t.Errorf("FAIL: stale cache should still load: %v %v", out, err)
	}
}

func TestCacheMissingFile(t *testing.T) {
	cc := NewCachedClient(t.TempDir())
	path := filepath.Join(cc.dir, packsCacheFile)
	if cc.valid(path) {
		t.Errorf("FAIL: a missing cache file must be invalid")
	}
	var out []Pack
	if cc.load(path, &out) == nil {
		t.Errorf("FAIL: loading a missing cache file must fail")
	}
}
