package chjoin

import "github.com/zeebo/xxh3"

// HashedKey is the 128-bit key used by the `hashed` map variant: any
// combination of key columns that doesn't fit a narrower tag falls
// back to a 128-bit mixing hash over the column-serialized bytes.
// xxh3.Hash128 is used rather than a hand-rolled mix, following the
// rest of this module's rule of reaching for an ecosystem library
// over a bespoke one.
type HashedKey struct {
	Hi, Lo uint64
}

// encodeHashedKey serializes the given columns' row into scratch and
// returns both the serialized bytes (which the key getter keeps as its
// reusable scratch buffer) and the 128-bit hash. Only the hash is used
// as the map key; two rows whose hashes collide are treated as equal.
func encodeHashedKey(cols []Column, row int, scratch []byte) ([]byte, HashedKey) {
	buf := scratch[:0]
	for _, c := range cols {
		buf = c.AppendBytes(buf, row)
		// Column-oriented separator byte so e.g. ("ab","c") and
		// ("a","bc") never collide when both columns are strings.
		buf = append(buf, 0xFF)
	}
	h := xxh3.Hash128(buf)
	return buf, HashedKey{Hi: h.Hi, Lo: h.Lo}
}

func (k HashedKey) String() string {
	const hextable = "0123456789abcdef"
	var out [32]byte
	put := func(off int, v uint64) {
		for i := 0; i < 16; i++ {
			shift := uint(60 - 4*i)
			out[off+i] = hextable[(v>>shift)&0xF]
		}
	}
	put(0, k.Hi)
	put(16, k.Lo)
	return string(out[:])
}
