package chjoin

import "math"

// ColumnKind identifies the concrete representation backing a Column.
// The key chooser (keychooser.go) dispatches on this to pick a map
// variant; it is deliberately narrower than a general-purpose engine's
// type system.
type ColumnKind uint8

const (
	KindInt8 ColumnKind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindString
	KindFixedString
)

func (k ColumnKind) String() string {
	switch k {
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "UInt8"
	case KindUint16:
		return "UInt16"
	case KindUint32:
		return "UInt32"
	case KindUint64:
		return "UInt64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindFixedString:
		return "FixedString"
	default:
		return "Unknown"
	}
}

// isNumeric reports whether the kind is a fixed-width numeric type,
// i.e. eligible for the key8/16/32/64/keys128/keys256 fast paths.
func (k ColumnKind) isNumeric() bool {
	return k <= KindFloat64
}

// fixedWidth returns the byte width of a fixed-width numeric kind.
func (k ColumnKind) fixedWidth() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// Column is the capability set this module requires of right/left-side
// columnar storage. A host engine may supply its own implementation;
// the concrete types NumericColumn (column_numeric.go), StringColumn
// and FixedStringColumn (column_string.go) are the reference
// implementation used by the
// module's own tests and by arrowexport.go.
type Column interface {
	Name() string
	Kind() ColumnKind
	Rows() int
	Nullable() bool
	// NullMap returns the validity bitmap (1 = null) or nil if the
	// column is not nullable.
	NullMap() []byte

	// CloneEmpty returns a new, empty column of the same type/name.
	CloneEmpty() Column
	// InsertFrom appends the value at `row` of `other` to this
	// column. `other` must have the same Kind.
	InsertFrom(other Column, row int)
	// InsertManyFrom appends `count` copies of the value at `row`
	// of `other`.
	InsertManyFrom(other Column, row, count int)
	// InsertDefault appends one zero/empty value standing in for a
	// missing right/left row on the outer side of a join.
	InsertDefault()
	// InsertRangeFrom appends rows [start, start+count) of other,
	// preserving order (used by the cross-join driver).
	InsertRangeFrom(other Column, start, count int)

	// Replicate returns a new column where row i of the receiver is
	// repeated offsets[i]-offsets[i-1] times (offsets[-1] == 0), the
	// classic "offsets to replicate" expansion used when a probe row
	// matches more than one right row.
	Replicate(offsets []uint64) Column
	// Filter returns a new column containing only the rows where
	// filter[i] != 0. sizeHint is a capacity hint.
	Filter(filter []uint8, sizeHint int) Column

	// SizeOfFixed returns the fixed per-row byte size, or 0 for
	// variable-length kinds.
	SizeOfFixed() int
	// IsFixedContiguous reports whether rows are stored as a
	// contiguous fixed-width byte sequence (true for all numeric
	// kinds and FixedString, false for String).
	IsFixedContiguous() bool
	// IsNumeric reports whether Kind is a fixed-width numeric type.
	IsNumeric() bool

	// AppendBytes writes the raw, type-punned bytes of row i to dst
	// and returns the extended slice. Used by the hashed-key encoder
	// (hashedkey.go) and by fixed-width key packing (keys128.go,
	// keys256.go). Strings are length-prefixed.
	AppendBytes(dst []byte, row int) []byte

	// WidenToNullable returns a nullable copy of the receiver. If
	// already nullable, returns the receiver unchanged.
	WidenToNullable() Column
}

func float64Bits(v float64) uint64 { return math.Float64bits(v) }
func float32Bits(v float32) uint32 { return math.Float32bits(v) }
