package pricesheet

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// parseCache keeps recent parse results keyed by file content. Results are
// copied in and out so callers may edit order quantities freely.
type parseCache struct {
	entries *lru.Cache[string, []models.ProductRecord]
}

// newParseCache returns nil when size disables caching.
func newParseCache(size int) *parseCache {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New[string, []models.ProductRecord](size)
	if err != nil {
		return nil
	}
	return &parseCache{entries: entries}
}

// cacheKey identifies a parse by content hash and brewery.
func cacheKey(data []byte, brewery string) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + ":" + brewery
}

func (c *parseCache) get(key string) ([]models.ProductRecord, bool) {
	if c == nil {
		return nil, false
	}
	recs, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return cloneRecords(recs), true
}

func (c *parseCache) add(key string, recs []models.ProductRecord) {
	if c == nil {
		return
	}
	c.entries.Add(key, cloneRecords(recs))
}

func (c *parseCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func cloneRecords(recs []models.ProductRecord) []models.ProductRecord {
	out := make([]models.ProductRecord, len(recs))
	for i, r := range recs {
		out[i] = r.Clone()
	}
	return out
}
