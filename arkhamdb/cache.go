package arkhamdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type LogCallbackFunc func(format string, a ...interface{})

const (
	packsCacheFile = "arkham_packs_cache.json"
	cardsCacheFile = "arkham_cards_cache.json"

	// DefaultCacheTTL is how long cached catalog files stay fresh.
	DefaultCacheTTL = 24 * time.Hour
)

// CachedClient wraps Client with an on-disk JSON cache. Responses are
// reused while fresh, and a stale cache is better than no catalog when
// the upstream is unreachable.
type CachedClient struct {
	LogCallback LogCallbackFunc
	TTL         time.Duration

	dir    string
	client *Client
}

func NewCachedClient(dir string) *CachedClient {
	return &CachedClient{
		TTL:    DefaultCacheTTL,
		dir:    dir,
		client: NewClient(),
	}
}

func (cc *CachedClient) printf(format string, a ...interface{}) {
	if cc.LogCallback != nil {
		cc.LogCallback("[AHDB] "+format, a...)
	}
}

// Packs returns the pack list, from cache when fresh.
func (cc *CachedClient) Packs() ([]Pack, error) {
	path := filepath.Join(cc.dir, packsCacheFile)

	var packs []Pack
	if cc.valid(path) && cc.load(path, &packs) == nil {
		return packs, nil
	}

	packs, err := cc.client.GetPacks()
	if err != nil {
		cc.printf("pack fetch failed, trying stale cache: %v", err)
		var stale []Pack
		if cc.load(path, &stale) == nil {
			return stale, nil
		}
		return nil, err
	}

	cc.store(path, packs)
	return packs, nil
}

// Cards returns the full player card list, from cache when fresh.
func (cc *CachedClient) Cards() ([]Card, error) {
	path := filepath.Join(cc.dir, cardsCacheFile)

	var cards []Card
	if cc.valid(path) && cc.load(path, &cards) == nil {
		return cards, nil
	}

	cards, err := cc.client.GetCards()
	if err != nil {
		cc.printf("card fetch failed, trying stale cache: %v", err)
		var stale []Card
		if cc.load(path, &stale) == nil {
			return stale, nil
		}
		return nil, err
	}

	cc.store(path, cards)
	return cards, nil
}

// Refresh drops both cache files and fetches fresh copies.
func (cc *CachedClient) Refresh() error {
	os.Remove(filepath.Join(cc.dir, packsCacheFile))
	os.Remove(filepath.Join(cc.dir, cardsCacheFile))

	_, err := cc.Packs()
	if err != nil {
		return err
	}
	_, err = cc.Cards()
	return err
}

func (cc *CachedClient) valid(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	ttl := cc.TTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return time.Since(fi.ModTime()) < ttl
}

func (cc *CachedClient) load(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (cc *CachedClient) store(path string, in interface{}) {
	data, err := json.Marshal(in)
	if err != nil {
		cc.printf("cache encode failed: %v", err)
		return
	}
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		cc.printf("cache dir failed: %v", err)
		return
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		cc.printf("cache write failed: %v", err)
	}
}
