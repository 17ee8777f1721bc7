package chjoin

import "encoding/binary"

// numeric is the set of Go types backing a fixed-width numeric Column.
type numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// NumericColumn is the reference fixed-width numeric column
// implementation. It is generic over the Go element type; constructors
// below (NewInt64Column, NewFloat64Column, etc.) pin the ColumnKind.
type NumericColumn[T numeric] struct {
	name string
	kind ColumnKind
	data []T
	nullMap []byte // nil if not nullable
}

func newNumericColumn[T numeric](name string, kind ColumnKind, data []T, nullMap []byte) *NumericColumn[T] {
	return &NumericColumn[T]{name: name, kind: kind, data: data, nullMap: nullMap}
}

func NewInt8Column(name string, data []int8) *NumericColumn[int8] {
	return newNumericColumn(name, KindInt8, data, nil)
}
func NewInt16Column(name string, data []int16) *NumericColumn[int16] {
	return newNumericColumn(name, KindInt16, data, nil)
}
func NewInt32Column(name string, data []int32) *NumericColumn[int32] {
	return newNumericColumn(name, KindInt32, data, nil)
}
func NewInt64Column(name string, data []int64) *NumericColumn[int64] {
	return newNumericColumn(name, KindInt64, data, nil)
}
func NewUint8Column(name string, data []uint8) *NumericColumn[uint8] {
	return newNumericColumn(name, KindUint8, data, nil)
}
func NewUint16Column(name string, data []uint16) *NumericColumn[uint16] {
	return newNumericColumn(name, KindUint16, data, nil)
}
func NewUint32Column(name string, data []uint32) *NumericColumn[uint32] {
	return newNumericColumn(name, KindUint32, data, nil)
}
func NewUint64Column(name string, data []uint64) *NumericColumn[uint64] {
	return newNumericColumn(name, KindUint64, data, nil)
}
func NewFloat32Column(name string, data []float32) *NumericColumn[float32] {
	return newNumericColumn(name, KindFloat32, data, nil)
}
func NewFloat64Column(name string, data []float64) *NumericColumn[float64] {
	return newNumericColumn(name, KindFloat64, data, nil)
}

// NewNullableNumericColumn wraps numeric column data with a
// validity bitmap (1 = null), matching the nullable-column
// model.
func NewNullableNumericColumn[T numeric](name string, kind ColumnKind, data []T, nullMap []byte) *NumericColumn[T] {
	return newNumericColumn(name, kind, data, nullMap)
}

func (c *NumericColumn[T]) Name() string { return c.name }
func (c *NumericColumn[T]) Kind() ColumnKind { return c.kind }
func (c *NumericColumn[T]) Rows() int { return len(c.data) }
func (c *NumericColumn[T]) Nullable() bool { return c.nullMap != nil }
func (c *NumericColumn[T]) NullMap() []byte { return c.nullMap }
func (c *NumericColumn[T]) IsNumeric() bool { return true }
func (c *NumericColumn[T]) IsFixedContiguous() bool { return true }
func (c *NumericColumn[T]) SizeOfFixed() int { return c.kind.fixedWidth() }

func (c *NumericColumn[T]) Data() []T { return c.data }

func (c *NumericColumn[T]) isNull(row int) bool {
	return c.nullMap != nil && row < len(c.nullMap) && c.nullMap[row] != 0
}

func (c *NumericColumn[T]) CloneEmpty() Column {
	var nm []byte
	if c.nullMap != nil {
		nm = make([]byte, 0)
	}
	return newNumericColumn(c.name, c.kind, make([]T, 0), nm)
}

func (c *NumericColumn[T]) growNullMap(n int) {
	if c.nullMap == nil {
		return
	}
	for len(c.nullMap) < n {
		c.nullMap = append(c.nullMap, 0)
	}
}

func (c *NumericColumn[T]) InsertFrom(other Column, row int) {
	o := other.(*NumericColumn[T])
	c.data = append(c.data, o.data[row])
	if c.nullMap != nil {
		b := byte(0)
		if o.isNull(row) {
			b = 1
		}
		c.nullMap = append(c.nullMap, b)
	}
}

func (c *NumericColumn[T]) InsertManyFrom(other Column, row, count int) {
	o := other.(*NumericColumn[T])
	v := o.data[row]
	null := o.isNull(row)
	for i := 0; i < count; i++ {
		c.data = append(c.data, v)
		if c.nullMap != nil {
			b := byte(0)
			if null {
				b = 1
			}
			c.nullMap = append(c.nullMap, b)
		}
	}
}

func (c *NumericColumn[T]) InsertRangeFrom(other Column, start, count int) {
	o := other.(*NumericColumn[T])
	c.data = append(c.data, o.data[start:start+count]...)
	if c.nullMap != nil {
		if o.nullMap != nil {
			c.nullMap = append(c.nullMap, o.nullMap[start:start+count]...)
		} else {
			c.nullMap = append(c.nullMap, make([]byte, count)...)
		}
	}
}

// InsertDefault appends a missing-side placeholder. Nullable columns
// record it as NULL, matching the outer-join convention that an
// unmatched side is NULL rather than a zero value; non-nullable
// columns get the zero value.
func (c *NumericColumn[T]) InsertDefault() {
	var zero T
	c.data = append(c.data, zero)
	if c.nullMap != nil {
		c.nullMap = append(c.nullMap, 1)
	}
}

func (c *NumericColumn[T]) Replicate(offsets []uint64) Column {
	out := newNumericColumn(c.name, c.kind, make([]T, 0, lastOffset(offsets)), replicatedNullMap(c.nullMap))
	var prev uint64
	for i, off := range offsets {
		n := int(off - prev)
		prev = off
		for j := 0; j < n; j++ {
			out.data = append(out.data, c.data[i])
			if out.nullMap != nil {
				out.nullMap = append(out.nullMap, boolToByte(c.isNull(i)))
			}
		}
	}
	return out
}

func (c *NumericColumn[T]) Filter(filter []uint8, sizeHint int) Column {
	out := newNumericColumn(c.name, c.kind, make([]T, 0, sizeHint), replicatedNullMap(c.nullMap))
	for i, f := range filter {
		if f == 0 {
			continue
		}
		out.data = append(out.data, c.data[i])
		if out.nullMap != nil {
			out.nullMap = append(out.nullMap, boolToByte(c.isNull(i)))
		}
	}
	return out
}

func (c *NumericColumn[T]) WidenToNullable() Column {
	if c.nullMap != nil {
		return c
	}
	return newNumericColumn(c.name, c.kind, c.data, make([]byte, len(c.data)))
}

func (c *NumericColumn[T]) AppendBytes(dst []byte, row int) []byte {
	var buf [8]byte
	v := c.data[row]
	switch any(v).(type) {
	case int8, uint8:
		return append(dst, byte(uint64AsBits(c.kind, v)))
	case int16, uint16:
		binary.LittleEndian.PutUint16(buf[:2], uint16(uint64AsBits(c.kind, v)))
		return append(dst, buf[:2]...)
	case int32, uint32, float32:
		binary.LittleEndian.PutUint32(buf[:4], uint32(uint64AsBits(c.kind, v)))
		return append(dst, buf[:4]...)
	default:
		binary.LittleEndian.PutUint64(buf[:8], uint64AsBits(c.kind, v))
		return append(dst, buf[:8]...)
	}
}

// uint64AsBits reinterprets a numeric value's bit pattern as a uint64,
// preserving byte layout for hashing/packing purposes (keys128.go,
// keys256.go, hashedkey.go).
func uint64AsBits[T numeric](kind ColumnKind, v T) uint64 {
	switch x := any(v).(type) {
	case int8:
		return uint64(uint8(x))
	case uint8:
		return uint64(x)
	case int16:
		return uint64(uint16(x))
	case uint16:
		return uint64(x)
	case int32:
		return uint64(uint32(x))
	case uint32:
		return uint64(x)
	case float32:
		return uint64(float32Bits(x))
	case int64:
		return uint64(x)
	case uint64:
		return x
	case float64:
		return float64Bits(x)
	default:
		return 0
	}
}

func lastOffset(offsets []uint64) int {
	if len(offsets) == 0 {
		return 0
	}
	return int(offsets[len(offsets)-1])
}

func replicatedNullMap(nm []byte) []byte {
	if nm == nil {
		return nil
	}
	return make([]byte, 0)
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
