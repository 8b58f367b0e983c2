// Package pricing builds a name-to-price index from the WeirdGloop GE dump
// and answers price lookups for the valuation engine.
package pricing

import (
	"strings"

	"github.com/osrs-econ/herbsched/internal/normalize"
)

// The dump schema is not stable. These ordered candidate lists drive the
// shape probing in BuildIndex: container keys first, then per-entry name and
// price fields, first match wins.
var (
	containerKeys = []string{"items", "data", "prices"}
	nameKeys      = []string{"name", "item_name"}
	priceKeys     = []string{"price", "ge_price", "avg", "value", "high", "low"}
)

// DosesPerPotion is the dose count of the potion form the price source lists.
// Output prices are always for the 4-dose item.
const DosesPerPotion = 4

// Index maps item display names to GE prices. Built once per run, read-only
// afterwards. Every entry is stored under at least its lowercase name.
type Index struct {
	prices map[string]float64
}

// NewIndex returns an empty index. Mainly useful in tests.
func NewIndex() *Index {
	return &Index{prices: make(map[string]float64)}
}

// Set stores a price under both the original-case and lowercased name.
// Last write wins.
func (idx *Index) Set(name string, price float64) {
	idx.prices[name] = price
	idx.prices[strings.ToLower(name)] = price
}

// Len returns the number of stored keys (case variants included).
func (idx *Index) Len() int {
	return len(idx.prices)
}

// Has reports whether the lowercased name is present. The validator uses this
// for its early missing-price scan so the reason text can carry the item name.
func (idx *Index) Has(name string) bool {
	_, ok := idx.prices[strings.ToLower(name)]
	return ok
}

// PriceOf looks up an item's price. Absent when the name is empty or a
// missing-marker; otherwise exact-case match first, lowercase fallback.
func (idx *Index) PriceOf(itemName string) (float64, bool) {
	if itemName == "" || normalize.IsMissing(itemName) {
		return 0, false
	}
	if p, ok := idx.prices[itemName]; ok {
		return p, true
	}
	p, ok := idx.prices[strings.ToLower(itemName)]
	return p, ok
}

// PricePerDose returns the per-dose price of a potion output, which the dump
// always lists in its 4-dose form.
func (idx *Index) PricePerDose(outputItemName string) (float64, bool) {
	p4, ok := idx.PriceOf(outputItemName)
	if !ok {
		return 0, false
	}
	return p4 / DosesPerPotion, true
}

// BuildIndex normalizes a raw price dump into an Index. It probes the known
// container keys in order; when none holds a mapping the dump itself is
// treated as the container. Entries without a usable name or numeric price
// are skipped silently - recipes depending on them simply become invalid.
func BuildIndex(dump any) *Index {
	idx := NewIndex()

	root, ok := dump.(map[string]any)
	if !ok {
		return idx
	}

	var containers []map[string]any
	for _, key := range containerKeys {
		if c, ok := root[key].(map[string]any); ok {
			containers = append(containers, c)
		}
	}
	if len(containers) == 0 {
		containers = append(containers, root)
	}

	for _, container := range containers {
		for _, raw := range container {
			entry, ok := raw.(map[string]any)
			if !ok {
				continue
			}

			var name string
			for _, nk := range nameKeys {
				if s, ok := entry[nk].(string); ok {
					name = s
					break
				}
			}
			if name == "" {
				continue
			}

			price, found := 0.0, false
			for _, pk := range priceKeys {
				if f, ok := numeric(entry[pk]); ok {
					price, found = f, true
					break
				}
			}
			if !found {
				continue
			}

			idx.Set(name, price)
		}
	}

	return idx
}

// numeric accepts only JSON numbers, not numeric strings - the probing is
// about field selection, not value repair.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
