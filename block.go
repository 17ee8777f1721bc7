package chjoin

// Block is an ordered sequence of named, equal-length columns.
// Blocks are treated as immutable once published into right-side
// storage; constructing a new block (via CloneEmpty, concatenation
// helpers) never mutates an existing one in place from the perspective
// of the hash-join core.
type Block struct {
	columns []Column
	index   map[string]int
}

// NewBlock builds a Block from columns, all of which must report the
// same Rows.
func NewBlock(columns ...Column) (*Block, error) {
	b := &Block{columns: columns, index: make(map[string]int, len(columns))}
	if len(columns) > 0 {
		n := columns[0].Rows()
		for i, c := range columns {
			if c.Rows() != n {
				return nil, errColumnLengthMismatch(c.Name(), c.Rows(), n)
			}
			b.index[c.Name()] = i
		}
	}
	return b, nil
}

func (b *Block) Rows() int {
	if len(b.columns) == 0 {
		return 0
	}
	return b.columns[0].Rows()
}

func (b *Block) Columns() []Column { return b.columns }

func (b *Block) ColumnByName(name string) (Column, bool) {
	i, ok := b.index[name]
	if !ok {
		return nil, false
	}
	return b.columns[i], true
}

func (b *Block) MustColumn(name string) Column {
	c, ok := b.ColumnByName(name)
	if !ok {
		panic("chjoin: no such column " + name)
	}
	return c
}

func (b *Block) Names() []string {
	names := make([]string, len(b.columns))
	for i, c := range b.columns {
		names[i] = c.Name()
	}
	return names
}

// CloneEmpty returns a new Block with the same schema and zero rows.
func (b *Block) CloneEmpty() *Block {
	cols := make([]Column, len(b.columns))
	for i, c := range b.columns {
		cols[i] = c.CloneEmpty()
	}
	out, _ := NewBlock(cols...)
	return out
}

// combinedNullMap ORs the validity bytes of the named columns,
// producing "row is null iff ANY column in the tuple is null"
// semantics for multi-column key lookups.
func (b *Block) combinedNullMap(names []string) []byte {
	rows := b.Rows()
	out := make([]byte, rows)
	any := false
	for _, name := range names {
		col, ok := b.ColumnByName(name)
		if !ok {
			continue
		}
		nm := col.NullMap()
		if nm == nil {
			continue
		}
		any = true
		for i := 0; i < rows && i < len(nm); i++ {
			if nm[i] != 0 {
				out[i] = 1
			}
		}
	}
	if !any {
		return nil
	}
	return out
}

// slice returns a new Block holding rows [start, start+count) of b,
// used by the morsel-parallel prober (parallel.go) to split a left
// block into independently probeable ranges.
func (b *Block) slice(start, count int) (*Block, error) {
	cols := make([]Column, len(b.columns))
	for i, c := range b.columns {
		out := c.CloneEmpty()
		out.InsertRangeFrom(c, start, count)
		cols[i] = out
	}
	return NewBlock(cols...)
}

// concatBlocks concatenates same-schema blocks in order, used to
// reassemble a morsel-parallel probe's per-morsel outputs into one
// ordered result.
func concatBlocks(blocks []*Block) (*Block, error) {
	var first *Block
	for _, b := range blocks {
		if b != nil {
			first = b
			break
		}
	}
	if first == nil {
		return NewBlock()
	}
	cols := make([]Column, len(first.columns))
	for i, c := range first.columns {
		cols[i] = c.CloneEmpty()
	}
	for _, b := range blocks {
		if b == nil || b.Rows() == 0 {
			continue
		}
		for i, c := range cols {
			c.InsertRangeFrom(b.columns[i], 0, b.Rows())
		}
	}
	return NewBlock(cols...)
}

// selectColumns returns the subset of columns named, in the given
// order, erroring if any name is absent.
func (b *Block) selectColumns(names []string) ([]Column, error) {
	out := make([]Column, len(names))
	for i, name := range names {
		c, ok := b.ColumnByName(name)
		if !ok {
			return nil, errNoSuchColumn(name)
		}
		out[i] = c
	}
	return out, nil
}
