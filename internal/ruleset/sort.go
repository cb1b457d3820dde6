package ruleset

import (
	"regexp"
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/maruel/natural"
)

// bucket is an output ordering group. Directives are kept outside the
// entry map and always precede every bucket.
type bucket int

const (
	bucketRoot bucket = iota
	bucketTheme
	bucketHTML
	bucketBody
	bucketHTMLPrefixed
	bucketBodyPrefixed
	bucketBare
	bucketOther
	bucketCount
)

var (
	themeSelector = regexp.MustCompile(`\[theme=.+?\]`)
	bareSelector  = regexp.MustCompile(`^[a-zA-Z][^.:>~]*$`)
)

func bucketOf(selector string) bucket {
	switch {
	case selector == ":root":
		return bucketRoot
	case themeSelector.MatchString(selector):
		return bucketTheme
	case selector == "html":
		return bucketHTML
	case selector == "body":
		return bucketBody
	case bareSelector.MatchString(selector):
		switch {
		case strings.HasPrefix(selector, "html"):
			return bucketHTMLPrefixed
		case strings.HasPrefix(selector, "body"):
			return bucketBodyPrefixed
		}
		return bucketBare
	}
	return bucketOther
}

// Sort puts the top-level entries into output order:
//
//	:root
//	[theme=...] selectors          (insertion order)
//	html, body
//	html…, body… bare selectors    (insertion order)
//	other bare-identifier selectors (natural alphabetical order)
//	everything else                (insertion order)
//
// Empty entries are dropped at every depth and custom properties are
// hoisted ahead of all other properties in every declaration map. Nested
// tables keep their insertion order.
func (t *Table) Sort() {
	var buckets [bucketCount][]string

	for sel, e := range t.All() {
		e.tidy()
		if e.Empty() {
			continue
		}
		b := bucketOf(sel)
		buckets[b] = append(buckets[b], sel)
	}

	sort.SliceStable(buckets[bucketBare], func(i, j int) bool {
		return natural.Less(buckets[bucketBare][i], buckets[bucketBare][j])
	})

	sorted := orderedmap.NewOrderedMapWithCapacity[string, *Entry](t.entries.Len())
	for _, selectors := range buckets {
		for _, sel := range selectors {
			e, _ := t.entries.Get(sel)
			sorted.Set(sel, e)
		}
	}
	t.entries = sorted
}

// tidy hoists custom properties and prunes empty nested entries.
func (e *Entry) tidy() {
	e.Declarations.Hoist()
	if e.Children == nil {
		return
	}

	var empty []string
	for sel, child := range e.Children.All() {
		child.tidy()
		if child.Empty() {
			empty = append(empty, sel)
		}
	}
	for _, sel := range empty {
		e.Children.entries.Delete(sel)
	}
}
