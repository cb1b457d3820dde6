package ruleset

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// GroupKey returns the canonical form of a selector group: its
// comma-separated parts trimmed, sorted and rejoined. ok is false for
// selectors with fewer than two parts.
func GroupKey(selector string) (key string, ok bool) {
	parts := strings.Split(selector, ",")
	if len(parts) < 2 {
		return "", false
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	sort.Strings(parts)
	return strings.Join(parts, ","), true
}

// Dedup collapses selector groups that differ only in part order, so
// "a, b" and "b,a" end up as one entry. The first occurrence is kept in
// place; later ones are merged into it, their values winning, and removed.
// Nested tables are deduplicated the same way.
func (t *Table) Dedup() {
	type canonical struct {
		key      string
		selector string
	}
	seen := make(map[uint64]canonical)
	var drop []string

	for el := t.entries.Front(); el != nil; el = el.Next() {
		if el.Value.Children != nil {
			el.Value.Children.Dedup()
		}

		key, ok := GroupKey(el.Key)
		if !ok {
			continue
		}

		h := xxhash.Sum64String(key)
		first, found := seen[h]
		if !found {
			seen[h] = canonical{key: key, selector: el.Key}
			continue
		}
		if first.key != key {
			// hash collision between different groups, keep both
			continue
		}

		target, _ := t.entries.Get(first.selector)
		target.mergeInto(t, el.Value)
		drop = append(drop, el.Key)
	}

	for _, sel := range drop {
		t.entries.Delete(sel)
	}
}
