package chjoin

// nullmapEntry pairs a stored right block with the combined key
// null-map captured for it.
type nullmapEntry struct {
	blockPtr uint32
	nullMap []byte
}

// Storage is the right-table storage (component C2): an
// append-only sequence of right blocks, an overflow arena, and the
// null-map side table used by outer-join non-joined emission.
type Storage struct {
	blocks []*Block
	pool *Arena
	blocksNullmaps []nullmapEntry
	sampleBlock *Block

	totalRows uint64
	totalBytes uint64
}

func newStorage(sample *Block) *Storage {
	return &Storage{
		pool: NewArena(0),
		sampleBlock: sample,
	}
}

// appendBlock stores b and returns its stable block pointer.
func (s *Storage) appendBlock(b *Block) uint32 {
	ptr := uint32(len(s.blocks))
	s.blocks = append(s.blocks, b)
	return ptr
}

func (s *Storage) block(ptr uint32) *Block { return s.blocks[ptr] }

func (s *Storage) blockCount() int { return len(s.blocks) }

// estimateBlockBytes gives a rough per-block byte estimate for size-limit
// accounting: fixed-width columns are counted
// exactly, variable-length columns are approximated from their
// encoded length.
func estimateBlockBytes(b *Block) uint64 {
	var total uint64
	rows := uint64(b.Rows())
	for _, c := range b.Columns() {
		if w := c.SizeOfFixed(); w > 0 {
			total += uint64(w) * rows
			continue
		}
		var buf []byte
		for i := 0; i < b.Rows(); i++ {
			buf = c.AppendBytes(buf[:0], i)
			total += uint64(len(buf))
		}
	}
	return total
}
