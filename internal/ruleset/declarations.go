package ruleset

import (
	"iter"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Declarations is an insertion-ordered property → value map. Setting an
// existing property replaces its value but keeps its position.
type Declarations struct {
	m *orderedmap.OrderedMap[string, string]
}

// NewDeclarations returns an empty map.
func NewDeclarations() *Declarations {
	return &Declarations{m: orderedmap.NewOrderedMap[string, string]()}
}

// Set assigns value to property.
func (d *Declarations) Set(property, value string) {
	d.m.Set(property, value)
}

// Get returns the value for property.
func (d *Declarations) Get(property string) (string, bool) {
	return d.m.Get(property)
}

// Len returns the number of properties.
func (d *Declarations) Len() int {
	return d.m.Len()
}

// All iterates properties in order.
func (d *Declarations) All() iter.Seq2[string, string] {
	return d.m.AllFromFront()
}

// Merge copies every property of other into d. Values from other win.
func (d *Declarations) Merge(other *Declarations) {
	for p, v := range other.All() {
		d.m.Set(p, v)
	}
}

// Equal reports whether both maps hold the same pairs in the same order.
func (d *Declarations) Equal(other *Declarations) bool {
	if d.Len() != other.Len() {
		return false
	}
	a, b := d.m.Front(), other.m.Front()
	for a != nil && b != nil {
		if a.Key != b.Key || a.Value != b.Value {
			return false
		}
		a, b = a.Next(), b.Next()
	}
	return true
}

// Hoist moves custom properties ahead of all others, keeping the relative
// order within both groups.
func (d *Declarations) Hoist() {
	hoisted := orderedmap.NewOrderedMapWithCapacity[string, string](d.m.Len())
	for p, v := range d.m.AllFromFront() {
		if IsCustomProperty(p) {
			hoisted.Set(p, v)
		}
	}
	for p, v := range d.m.AllFromFront() {
		if !IsCustomProperty(p) {
			hoisted.Set(p, v)
		}
	}
	d.m = hoisted
}

// IsCustomProperty reports whether property is a "--" custom property.
func IsCustomProperty(property string) bool {
	return strings.HasPrefix(property, "--")
}
