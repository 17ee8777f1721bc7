package chjoin

// StringColumn is the reference variable-length byte-string column.
// Row values are length-prefixed when serialized for key encoding.
type StringColumn struct {
	name string
	data []string
	nullMap []byte
}

func NewStringColumn(name string, data []string) *StringColumn {
	return &StringColumn{name: name, data: data}
}

func (c *StringColumn) Name() string { return c.name }
func (c *StringColumn) Kind() ColumnKind { return KindString }
func (c *StringColumn) Rows() int { return len(c.data) }
func (c *StringColumn) Nullable() bool { return c.nullMap != nil }
func (c *StringColumn) NullMap() []byte { return c.nullMap }
func (c *StringColumn) IsNumeric() bool { return false }
func (c *StringColumn) IsFixedContiguous() bool { return false }
func (c *StringColumn) SizeOfFixed() int { return 0 }
func (c *StringColumn) Data() []string { return c.data }

func (c *StringColumn) isNull(row int) bool {
	return c.nullMap != nil && row < len(c.nullMap) && c.nullMap[row] != 0
}

func (c *StringColumn) CloneEmpty() Column {
	var nm []byte
	if c.nullMap != nil {
		nm = make([]byte, 0)
	}
	return &StringColumn{name: c.name, data: make([]string, 0), nullMap: nm}
}

func (c *StringColumn) InsertFrom(other Column, row int) {
	o := other.(*StringColumn)
	c.data = append(c.data, o.data[row])
	if c.nullMap != nil {
		c.nullMap = append(c.nullMap, boolToByte(o.isNull(row)))
	}
}

func (c *StringColumn) InsertManyFrom(other Column, row, count int) {
	o := other.(*StringColumn)
	v := o.data[row]
	null := boolToByte(o.isNull(row))
	for i := 0; i < count; i++ {
		c.data = append(c.data, v)
		if c.nullMap != nil {
			c.nullMap = append(c.nullMap, null)
		}
	}
}

func (c *StringColumn) InsertRangeFrom(other Column, start, count int) {
	o := other.(*StringColumn)
	c.data = append(c.data, o.data[start:start+count]...)
	if c.nullMap != nil {
		if o.nullMap != nil {
			c.nullMap = append(c.nullMap, o.nullMap[start:start+count]...)
		} else {
			c.nullMap = append(c.nullMap, make([]byte, count)...)
		}
	}
}

// InsertDefault appends a missing-side placeholder; nullable columns record it as NULL.
func (c *StringColumn) InsertDefault() {
	c.data = append(c.data, "")
	if c.nullMap != nil {
		c.nullMap = append(c.nullMap, 1)
	}
}

func (c *StringColumn) Replicate(offsets []uint64) Column {
	out := &StringColumn{name: c.name, data: make([]string, 0, lastOffset(offsets)), nullMap: replicatedNullMap(c.nullMap)}
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

func (c *StringColumn) Filter(filter []uint8, sizeHint int) Column {
	out := &StringColumn{name: c.name, data: make([]string, 0, sizeHint), nullMap: replicatedNullMap(c.nullMap)}
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

func (c *StringColumn) WidenToNullable() Column {
	if c.nullMap != nil {
		return c
	}
	return &StringColumn{name: c.name, data: c.data, nullMap: make([]byte, len(c.data))}
}

func (c *StringColumn) AppendBytes(dst []byte, row int) []byte {
	s := c.data[row]
	var lenBuf [8]byte
	n := len(s)
	for i := 0; i < 8; i++ {
		lenBuf[i] = byte(n >> (8 * i))
	}
	dst = append(dst, lenBuf[:]...)
	return append(dst, s...)
}

// FixedStringColumn is a column of equal-length byte strings.
type FixedStringColumn struct {
	name string
	width int
	data []byte // len(data) == width*rows
	nullMap []byte
}

func NewFixedStringColumn(name string, width int, data []byte) *FixedStringColumn {
	return &FixedStringColumn{name: name, width: width, data: data}
}

func (c *FixedStringColumn) Name() string { return c.name }
func (c *FixedStringColumn) Kind() ColumnKind { return KindFixedString }
func (c *FixedStringColumn) Rows() int { return len(c.data) / c.width }
func (c *FixedStringColumn) Nullable() bool { return c.nullMap != nil }
func (c *FixedStringColumn) NullMap() []byte { return c.nullMap }
func (c *FixedStringColumn) IsNumeric() bool { return false }
func (c *FixedStringColumn) IsFixedContiguous() bool { return true }
func (c *FixedStringColumn) SizeOfFixed() int { return c.width }
func (c *FixedStringColumn) Width() int { return c.width }

func (c *FixedStringColumn) rowBytes(row int) []byte {
	return c.data[row*c.width : (row+1)*c.width]
}

func (c *FixedStringColumn) isNull(row int) bool {
	return c.nullMap != nil && row < len(c.nullMap) && c.nullMap[row] != 0
}

func (c *FixedStringColumn) CloneEmpty() Column {
	var nm []byte
	if c.nullMap != nil {
		nm = make([]byte, 0)
	}
	return &FixedStringColumn{name: c.name, width: c.width, data: make([]byte, 0), nullMap: nm}
}

func (c *FixedStringColumn) InsertFrom(other Column, row int) {
	o := other.(*FixedStringColumn)
	c.data = append(c.data, o.rowBytes(row)...)
	if c.nullMap != nil {
		c.nullMap = append(c.nullMap, boolToByte(o.isNull(row)))
	}
}

func (c *FixedStringColumn) InsertManyFrom(other Column, row, count int) {
	o := other.(*FixedStringColumn)
	v := o.rowBytes(row)
	null := boolToByte(o.isNull(row))
	for i := 0; i < count; i++ {
		c.data = append(c.data, v...)
		if c.nullMap != nil {
			c.nullMap = append(c.nullMap, null)
		}
	}
}

func (c *FixedStringColumn) InsertRangeFrom(other Column, start, count int) {
	o := other.(*FixedStringColumn)
	c.data = append(c.data, o.data[start*c.width:(start+count)*c.width]...)
	if c.nullMap != nil {
		if o.nullMap != nil {
			c.nullMap = append(c.nullMap, o.nullMap[start:start+count]...)
		} else {
			c.nullMap = append(c.nullMap, make([]byte, count)...)
		}
	}
}

// InsertDefault appends a missing-side placeholder; nullable columns record it as NULL.
func (c *FixedStringColumn) InsertDefault() {
	c.data = append(c.data, make([]byte, c.width)...)
	if c.nullMap != nil {
		c.nullMap = append(c.nullMap, 1)
	}
}

func (c *FixedStringColumn) Replicate(offsets []uint64) Column {
	out := &FixedStringColumn{name: c.name, width: c.width, data: make([]byte, 0, lastOffset(offsets)*c.width), nullMap: replicatedNullMap(c.nullMap)}
	var prev uint64
	for i, off := range offsets {
		n := int(off - prev)
		prev = off
		v := c.rowBytes(i)
		for j := 0; j < n; j++ {
			out.data = append(out.data, v...)
			if out.nullMap != nil {
				out.nullMap = append(out.nullMap, boolToByte(c.isNull(i)))
			}
		}
	}
	return out
}

func (c *FixedStringColumn) Filter(filter []uint8, sizeHint int) Column {
	out := &FixedStringColumn{name: c.name, width: c.width, data: make([]byte, 0, sizeHint*c.width), nullMap: replicatedNullMap(c.nullMap)}
	for i, f := range filter {
		if f == 0 {
			continue
		}
		out.data = append(out.data, c.rowBytes(i)...)
		if out.nullMap != nil {
			out.nullMap = append(out.nullMap, boolToByte(c.isNull(i)))
		}
	}
	return out
}

func (c *FixedStringColumn) WidenToNullable() Column {
	if c.nullMap != nil {
		return c
	}
	return &FixedStringColumn{name: c.name, width: c.width, data: c.data, nullMap: make([]byte, c.Rows())}
}

func (c *FixedStringColumn) AppendBytes(dst []byte, row int) []byte {
	return append(dst, c.rowBytes(row)...)
}
