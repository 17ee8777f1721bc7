package chjoin

// Key128 packs up to 16 bytes of fixed-width key columns contiguously,
// zero-padding unused bytes. Single-column
// numeric keys (key8/16/32/64) use native Go integer map keys instead
// (keychooser.go); Key128 is reserved for "all fixed, total <= 16
// bytes" combinations that don't collapse to one numeric column.
type Key128 [16]byte

func packKey128(cols []Column, row int) Key128 {
	var k Key128
	off := 0
	for _, c := range cols {
		w := c.SizeOfFixed()
		c.AppendBytes(k[off:off], row)
		off += w
	}
	return k
}
