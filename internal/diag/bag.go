package diag

import "sort"

// Bag accumulates diagnostics from a single pass over a single file.
type Bag struct {
	items []Diagnostic
}

// NewBag constructs an empty Bag.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors reports whether any diagnostic was recorded. Every diagnostic
// this front end produces is fatal to the containing pass, so "has any
// diagnostic" and "has an error" coincide.
func (b *Bag) HasErrors() bool {
	return len(b.items) > 0
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns the accumulated diagnostics. Callers must not modify the
// returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Sort orders diagnostics by source position, for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		return di.Primary.Start < dj.Primary.Start
	})
}

// Merge appends every diagnostic from other.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
