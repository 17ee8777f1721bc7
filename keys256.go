package chjoin

// Key256 packs up to 32 bytes of fixed-width key columns contiguously
// for use as a comparable map key.
type Key256 [32]byte

func packKey256(cols []Column, row int) Key256 {
	var k Key256
	off := 0
	for _, c := range cols {
		w := c.SizeOfFixed()
		c.AppendBytes(k[off:off], row)
		off += w
	}
	return k
}
