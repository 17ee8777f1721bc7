package chjoin

// Kind is the join shape.
type Kind uint8

const (
	Inner Kind = iota
	Left
	Right
	Full
	Cross
)

func (k Kind) String() string {
	switch k {
	case Inner:
		return "Inner"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Full:
		return "Full"
	case Cross:
		return "Cross"
	default:
		return "Unknown"
	}
}

// Strictness is the match-multiplicity mode.
// RightAny is kept as its own constant rather than folded into Any:
// it claims at most one right row per right key like Any, but reports
// the match from the right side's perspective.
type Strictness uint8

const (
	StrictAny Strictness = iota
	StrictAll
	StrictSemi
	StrictAnti
	StrictAsof
	StrictRightAny
)

func (s Strictness) String() string {
	switch s {
	case StrictAny:
		return "Any"
	case StrictAll:
		return "All"
	case StrictSemi:
		return "Semi"
	case StrictAnti:
		return "Anti"
	case StrictAsof:
		return "Asof"
	case StrictRightAny:
		return "RightAny"
	default:
		return "Unknown"
	}
}

// AsofInequality is the comparison used by ASOF matching.
type AsofInequality uint8

const (
	AsofLess AsofInequality = iota
	AsofLessOrEqual
	AsofGreater
	AsofGreaterOrEqual
)

// SizeLimits bounds the right-side build.
// Zero means unlimited.
type SizeLimits struct {
	MaxRows uint64
	MaxBytes uint64
}

func (l SizeLimits) check(rows, bytes uint64) error {
	if l.MaxRows != 0 && rows > l.MaxRows {
		return errSizeLimit("row", l.MaxRows)
	}
	if l.MaxBytes != 0 && bytes > l.MaxBytes {
		return errSizeLimit("byte", l.MaxBytes)
	}
	return nil
}

// Descriptor is the immutable JOIN descriptor.
// KeyNamesLeft/KeyNamesRight are each a list-of-lists: the outer list
// is the OR-disjunction list (length > 1 is the "multiple disjuncts"
// regime); each inner list is one key tuple.
type Descriptor struct {
	Kind Kind
	Strictness Strictness

	KeyNamesLeft [][]string
	KeyNamesRight [][]string

	// AddedColumnNames are right-side non-key payload columns carried
	// into the output.
	AddedColumnNames []string

	NullableRightSide bool
	NullableLeftSide bool

	AsofInequality AsofInequality
	// AsofKeyName, when Strictness == StrictAsof, is the extra
	// inequality column name appended after the equi-keys in each
	// disjunct's left/right key-name lists.
	AsofKeyName string

	SizeLimits SizeLimits

	// ForceHashJoin, when true, lets the "what we save" rule drop the
	// right key columns from storage for Inner/Left single-disjunct
	// shapes; Right/Full kinds and multi-disjunct joins always store
	// them.
	ForceHashJoin bool

	// AnyTakeLastRow controls whether a Single-mapped map variant
	// keeps the first or the last inserted row for a repeated key.
	AnyTakeLastRow bool
}

func (d Descriptor) disjunctCount() int { return len(d.KeyNamesLeft) }
func (d Descriptor) multiDisjunct() bool { return d.disjunctCount() > 1 }

// validate enforces the configuration-error checks, raised eagerly
// from New.
func (d Descriptor) validate() error {
	if d.Kind == Cross {
		return nil
	}
	if len(d.KeyNamesLeft) == 0 {
		return errIncompatible("cross-join descriptor must use Kind=Cross")
	}
	if len(d.KeyNamesLeft) != len(d.KeyNamesRight) {
		return errIncompatible("mismatched disjunct counts: %d left vs %d right", len(d.KeyNamesLeft), len(d.KeyNamesRight))
	}
	for i := range d.KeyNamesLeft {
		if len(d.KeyNamesLeft[i]) != len(d.KeyNamesRight[i]) {
			return errIncompatible("disjunct %d: mismatched key tuple width", i)
		}
	}

	// Open question §9 resolution: Any+Full is unsupported.
	if d.Kind == Full && d.Strictness == StrictAny {
		return errIncompatible("Any strictness is not supported with Full join")
	}

	if d.Strictness == StrictAsof {
		if d.AsofKeyName == "" {
			return errIncompatible("Asof join requires an inequality key")
		}
		if d.Kind != Inner && d.Kind != Left {
			return errIncompatible("Asof join only supports Inner/Left kind")
		}
	} else if d.AsofKeyName != "" {
		return errIncompatible("inequality key set without Asof strictness")
	}

	if d.Strictness == StrictRightAny && d.Kind != Left {
		return errIncompatible("RightAny strictness requires Left kind")
	}

	return nil
}

// needReplication implements the derived boolean table.
func (d Descriptor) needReplication() bool {
	if d.Strictness == StrictAll {
		return true
	}
	if d.Strictness == StrictAny && d.Kind == Right {
		return true
	}
	if d.Strictness == StrictSemi && d.Kind == Right {
		return true
	}
	return false
}

func (d Descriptor) needFilter() bool {
	if d.needReplication() {
		return false
	}
	if d.Kind == Inner || d.Kind == Right {
		return true
	}
	if d.Strictness == StrictSemi && d.Kind == Left {
		return true
	}
	if d.Strictness == StrictAnti && d.Kind == Left {
		return true
	}
	return false
}

func (d Descriptor) addMissing() bool {
	if d.Strictness == StrictSemi {
		return false
	}
	return d.Kind == Left || d.Kind == Full
}

// needFlags implements invariant 5 / §4.7.
func (d Descriptor) needFlags() bool {
	if (d.Strictness == StrictAny || d.Strictness == StrictRightAny) && d.Kind == Left {
		return false
	}
	switch d.Strictness {
	case StrictAll:
		return true
	}
	switch d.Kind {
	case Right, Full:
		return true
	}
	return false
}

// wantsNonJoinedStream implements the construction guard.
func (d Descriptor) wantsNonJoinedStream() bool {
	if d.Kind != Right && d.Kind != Full {
		return false
	}
	if d.Strictness == StrictAsof || d.Strictness == StrictSemi {
		return false
	}
	return true
}
