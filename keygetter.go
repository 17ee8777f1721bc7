package chjoin

// keyGetter is the per-variant, per-probe-row accessor: emplace for
// build, find for probe. It captures the columns for one disjunct
// plus a scratch buffer reused across rows to avoid per-row
// allocation in the hashed/string paths.
type keyGetter struct {
	tag MapTag
	cols []Column
	scratch []byte
}

func newKeyGetter(tag MapTag, cols []Column) *keyGetter {
	return &keyGetter{tag: tag, cols: cols}
}

func (g *keyGetter) numericKey(row int) uint64 {
	return numericColumnBits(g.cols[0], row)
}

// numericColumnBits extracts the raw bit pattern of a single
// fixed-width numeric column's row, used as the map key for
// key8/16/32/64.
func numericColumnBits(c Column, row int) uint64 {
	var buf [8]byte
	b := c.AppendBytes(buf[:0], row)
	var v uint64
	for i, x := range b {
		v |= uint64(x) << (8 * uint(i))
	}
	return v
}

// emplace implements the build-side accessor, returning
// the entry for this row's key (creating it if new) and whether it
// was newly inserted.
func (g *keyGetter) emplace(m *MapVariant, row int) (*MapEntry, bool) {
	switch g.tag {
	case TagKey8, TagKey16, TagKey32, TagKey64:
		return m.emplaceNumeric(g.numericKey(row))
	case TagKeys128:
		return m.emplace128(packKey128(g.cols, row))
	case TagKeys256:
		return m.emplace256(packKey256(g.cols, row))
	case TagKeyString, TagKeyFixedString:
		g.scratch = g.cols[0].AppendBytes(g.scratch[:0], row)
		return m.emplaceStr(string(g.scratch))
	case TagHashed:
		buf, h := encodeHashedKey(g.cols, row, g.scratch)
		g.scratch = buf
		return m.emplaceHashed(h)
	default:
		return nil, false
	}
}

// find implements the probe-side accessor.
func (g *keyGetter) find(m *MapVariant, row int) (*MapEntry, bool) {
	switch g.tag {
	case TagKey8, TagKey16, TagKey32, TagKey64:
		return m.findNumeric(g.numericKey(row))
	case TagKeys128:
		return m.find128(packKey128(g.cols, row))
	case TagKeys256:
		return m.find256(packKey256(g.cols, row))
	case TagKeyString, TagKeyFixedString:
		g.scratch = g.cols[0].AppendBytes(g.scratch[:0], row)
		return m.findStr(string(g.scratch))
	case TagHashed:
		buf, h := encodeHashedKey(g.cols, row, g.scratch)
		g.scratch = buf
		return m.findHashed(h)
	default:
		return nil, false
	}
}
