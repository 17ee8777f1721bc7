package chjoin

import "sort"

// asofValue is the inequality-key value in a canonical orderable form.
// Supported source kinds: fixed-width integer and
// floating types, represented here as int64/uint64/float64 depending
// on AsofValueKind; date/time encodings are integers at this layer
// (a host engine's date/time column is a numeric Column under the
// hood), so no separate representation is needed.
type asofValue struct {
	i int64
	u uint64
	f float64
	ref RowRef
}

// AsofValueKind selects which field of asofValue carries the ordering
// key, fixed once per AsofIndex at construction.
type AsofValueKind uint8

const (
	AsofKindInt AsofValueKind = iota
	AsofKindUint
	AsofKindFloat
)

// AsofIndex is the per-equi-key-group ordered structure used by ASOF
// matching: entries sorted by asof_value, supporting insert and the
// four inequality lookups.
type AsofIndex struct {
	kind AsofValueKind
	entries []asofValue
	sorted bool
}

func newAsofIndex(kind AsofValueKind) *AsofIndex {
	return &AsofIndex{kind: kind}
}

func (x *AsofIndex) less(a, b asofValue) bool {
	switch x.kind {
	case AsofKindInt:
		return a.i < b.i
	case AsofKindUint:
		return a.u < b.u
	default:
		return a.f < b.f
	}
}

// insert adds (value, ref) to the index. Entries are appended
// unsorted; AddRightBlock sorts every index once the block's rows are
// inserted, so concurrent probes only read it. findAsof still sorts an
// index it finds unsorted.
func (x *AsofIndex) insert(v asofValue) {
	x.entries = append(x.entries, v)
	x.sorted = false
}

func (x *AsofIndex) ensureSorted() {
	if x.sorted {
		return
	}
	sort.Slice(x.entries, func(i, j int) bool { return x.less(x.entries[i], x.entries[j]) })
	x.sorted = true
}

// findAsof implements the four inequality semantics.
func (x *AsofIndex) findAsof(ineq AsofInequality, probe asofValue) (RowRef, bool) {
	x.ensureSorted()
	n := len(x.entries)
	if n == 0 {
		return RowRef{}, false
	}
	switch ineq {
	case AsofLess:
		// greatest stored value strictly less than probe
		i := sort.Search(n, func(i int) bool { return !x.less(x.entries[i], probe) })
		if i == 0 {
			return RowRef{}, false
		}
		return x.entries[i-1].ref, true
	case AsofLessOrEqual:
		// greatest stored value <= probe
		i := sort.Search(n, func(i int) bool { return x.less(probe, x.entries[i]) })
		if i == 0 {
			return RowRef{}, false
		}
		return x.entries[i-1].ref, true
	case AsofGreater:
		// smallest stored value strictly greater than probe
		i := sort.Search(n, func(i int) bool { return x.less(probe, x.entries[i]) })
		if i == n {
			return RowRef{}, false
		}
		return x.entries[i].ref, true
	case AsofGreaterOrEqual:
		// smallest stored value >= probe
		i := sort.Search(n, func(i int) bool { return !x.less(x.entries[i], probe) })
		if i == n {
			return RowRef{}, false
		}
		return x.entries[i].ref, true
	default:
		return RowRef{}, false
	}
}
