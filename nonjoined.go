package chjoin

// NonJoinedStream drains right rows that were never claimed during
// probing (C8). It is only constructible for Right/Full
// kinds excluding Asof/Semi strictness (see Descriptor.wantsNonJoinedStream()).
type NonJoinedStream struct {
	hj *HashJoin

	resultSample *Block
	maxBlockSize int

	entries []*MapEntry
	entryIdx int

	nullIdx int
	nullRow int
}

// CreateNonJoinedStream implements `create_non_joined_stream`.
// It returns (nil, false) when the descriptor's shape has no
// non-joined rows to emit.
func (hj *HashJoin) CreateNonJoinedStream(resultSample *Block, maxBlockSize int) (*NonJoinedStream, bool) {
	if !hj.descriptor.wantsNonJoinedStream() || len(hj.disjuncts) == 0 {
		return nil, false
	}
	var entries []*MapEntry
	hj.disjuncts[0].m.forEachEntry(func(e *MapEntry) { entries = append(entries, e) })
	return &NonJoinedStream{
		hj: hj,
		resultSample: resultSample,
		maxBlockSize: maxBlockSize,
		entries: entries,
	}, true
}

// Next pulls up to maxBlockSize rows. Map entries are emitted whole,
// so a block exceeds maxBlockSize when an entry's chain crosses the
// limit; null-key rows respect it exactly. It
// returns (nil, false, nil) once both the map and the nullmap side
// table are exhausted.
func (s *NonJoinedStream) Next() (*Block, bool, error) {
	if s.exhausted() {
		return nil, false, nil
	}

	names := s.resultSample.Names()
	outCols := make([]Column, len(names))
	for i, name := range names {
		c, ok := s.resultSample.ColumnByName(name)
		if !ok {
			return nil, false, errNoSuchColumn(name)
		}
		outCols[i] = c.CloneEmpty()
	}
	emit := func(ref RowRef) {
		src := s.hj.storage.block(ref.BlockPtr)
		for i, name := range names {
			col, ok := src.ColumnByName(name)
			if !ok {
				outCols[i].InsertDefault()
				continue
			}
			outCols[i].InsertFrom(col, int(ref.Row))
		}
	}

	ds := &s.hj.disjuncts[0]
	emitted := 0
	for emitted < s.maxBlockSize && s.entryIdx < len(s.entries) {
		e := s.entries[s.entryIdx]
		s.entryIdx++
		if ds.usedFlags.GetUsed(e.Offset) {
			continue
		}
		e.rows(func(ref RowRef) {
			emit(ref)
			emitted++
		})
	}

	for emitted < s.maxBlockSize && s.nullIdx < len(s.hj.storage.blocksNullmaps) {
		entry := s.hj.storage.blocksNullmaps[s.nullIdx]
		for s.nullRow < len(entry.nullMap) {
			row := s.nullRow
			s.nullRow++
			if entry.nullMap[row] == 0 {
				continue
			}
			emit(RowRef{BlockPtr: entry.blockPtr, Row: uint32(row)})
			emitted++
			if emitted >= s.maxBlockSize {
				break
			}
		}
		if s.nullRow >= len(entry.nullMap) {
			s.nullIdx++
			s.nullRow = 0
		}
	}

	out, err := NewBlock(outCols...)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (s *NonJoinedStream) exhausted() bool {
	return s.entryIdx >= len(s.entries) && s.nullIdx >= len(s.hj.storage.blocksNullmaps)
}
