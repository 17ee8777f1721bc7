package chjoin

// knownRowsHolder dedups right rows already appended for the current
// left row in multi-disjunct All-strictness probing, so overlapping
// disjuncts don't emit the same right row twice. A small inline array
// is checked first; once it overflows, a hash set takes over.
type knownRowsHolder struct {
	small [16]RowRef
	smallLen int
	big map[RowRef]struct{}
}

func newKnownRowsHolder() *knownRowsHolder {
	return &knownRowsHolder{}
}

func (k *knownRowsHolder) seen(ref RowRef) bool {
	for i := 0; i < k.smallLen; i++ {
		if k.small[i] == ref {
			return true
		}
	}
	if k.big != nil {
		_, ok := k.big[ref]
		return ok
	}
	return false
}

func (k *knownRowsHolder) add(ref RowRef) {
	if k.smallLen < len(k.small) {
		k.small[k.smallLen] = ref
		k.smallLen++
		return
	}
	if k.big == nil {
		k.big = make(map[RowRef]struct{}, k.smallLen*2)
	}
	k.big[ref] = struct{}{}
}

// renamedColumn wraps a Column to report a different Name, used to
// materialize a required right-key output column from a left-side
// column.
type renamedColumn struct {
	Column
	name string
}

func (r renamedColumn) Name() string { return r.name }

// rightKeySub is one right-key column the output schema requires that
// is not already present among the left block's columns, derived
// instead from the (value-equal) left key column.
type rightKeySub struct {
	rightName string
	leftName string
}

// requiredRightKeySubs returns, for every disjunct's key pairs whose
// right-hand name differs from its left-hand name, one substitution
// (first occurrence wins across disjuncts). The trailing inequality
// column of an Asof disjunct is excluded: it has no equality
// justification for substitution.
func (hj *HashJoin) requiredRightKeySubs() []rightKeySub {
	desc := hj.descriptor
	var subs []rightKeySub
	seen := make(map[string]bool)
	for d := range desc.KeyNamesRight {
		rights := desc.KeyNamesRight[d]
		lefts := desc.KeyNamesLeft[d]
		n := len(rights)
		if desc.Strictness == StrictAsof {
			n--
		}
		for idx := 0; idx < n; idx++ {
			rn, ln := rights[idx], lefts[idx]
			if rn == ln || seen[rn] {
				continue
			}
			seen[rn] = true
			subs = append(subs, rightKeySub{rightName: rn, leftName: ln})
		}
	}
	return subs
}

// addedColumnNames is the schema of the AddedColumns block built
// during probe: right-side non-key payload columns, plus the right
// ASOF column itself when applicable.
func (hj *HashJoin) addedColumnNames() []string {
	names := append([]string(nil), hj.descriptor.AddedColumnNames...)
	if hj.descriptor.Strictness == StrictAsof {
		names = append(names, hj.descriptor.AsofKeyName)
	}
	return names
}

func popcount(filter []uint8) int {
	n := 0
	for _, f := range filter {
		if f != 0 {
			n++
		}
	}
	return n
}

// JoinBlock probes left against every disjunct's right-side map for
// every non-Cross kind; Cross-kind instances use JoinBlockCross. It
// probes every disjunct for each row of left, accumulates right-side
// payload columns row by row, and assembles the output block per the
// filter/replicate/add-missing rules derived from the descriptor.
func (hj *HashJoin) JoinBlock(left *Block) (*Block, error) {
	hj.seal()
	if hj.descriptor.Kind == Cross {
		return nil, errLogicalf("chjoin: Cross-kind instances must use JoinBlockCross")
	}

	desc := hj.descriptor
	rows := left.Rows()
	multiAll := desc.multiDisjunct() && desc.Strictness == StrictAll

	type disjunctProbe struct {
		kg *keyGetter
		nullMap []byte
		asofCol Column
	}
	probes := make([]disjunctProbe, len(hj.disjuncts))
	for d := range hj.disjuncts {
		ds := &hj.disjuncts[d]
		names := namesWithoutAsof(ds.leftNames, desc)
		cols, err := left.selectColumns(names)
		if err != nil {
			return nil, err
		}
		probes[d].kg = newKeyGetter(ds.tag, cols)
		probes[d].nullMap = combinedNullMapFor(cols, rows)
		if desc.Strictness == StrictAsof {
			c, ok := left.ColumnByName(desc.AsofKeyName)
			if !ok {
				return nil, errNoSuchColumn(desc.AsofKeyName)
			}
			probes[d].asofCol = c
		}
	}

	needRepl := desc.needReplication()
	needFilt := desc.needFilter()
	addMiss := desc.addMissing()

	addedNames := hj.addedColumnNames()
	addedSample, err := hj.storage.sampleBlock.selectColumns(addedNames)
	if err != nil {
		return nil, err
	}
	addedOut := make([]Column, len(addedSample))
	for i, c := range addedSample {
		addedOut[i] = c.CloneEmpty()
	}

	appendAddedReal := func(ref RowRef) {
		srcBlock := hj.storage.block(ref.BlockPtr)
		for i, name := range addedNames {
			src, ok := srcBlock.ColumnByName(name)
			if !ok {
				addedOut[i].InsertDefault()
				continue
			}
			addedOut[i].InsertFrom(src, int(ref.Row))
		}
	}
	appendAddedDefault := func() {
		for _, c := range addedOut {
			c.InsertDefault()
		}
	}

	filterMask := getFilterMask(rows)
	offsetSlice := getOffsetSlice(rows)
	defer filterMask.Release()
	defer offsetSlice.Release()
	rowFilter := filterMask.Data
	offsets := offsetSlice.Data
	var currentOffset uint64

	for i := 0; i < rows; i++ {
		rightRowFound := false
		nullFound := false
		var known *knownRowsHolder
		if multiAll {
			known = newKnownRowsHolder()
		}

		for d := range hj.disjuncts {
			ds := &hj.disjuncts[d]
			pp := &probes[d]

			if pp.nullMap != nil && i < len(pp.nullMap) && pp.nullMap[i] != 0 {
				nullFound = true
				continue
			}

			entry, found := pp.kg.find(ds.m, i)
			if !found {
				continue
			}

			switch {
			case desc.Strictness == StrictAsof:
				probeVal := asofValueAt(pp.asofCol, i, RowRef{})
				ref, ok := entry.Asof.findAsof(desc.AsofInequality, probeVal)
				if !ok {
					continue
				}
				appendAddedReal(ref)
				currentOffset++
				rowFilter[i] = 1
				ds.usedFlags.SetUsed(entry.Offset)
				rightRowFound = true

			case desc.Strictness == StrictAll:
				entry.rows(func(ref RowRef) {
					if known != nil {
						if known.seen(ref) {
							return
						}
						known.add(ref)
					}
					appendAddedReal(ref)
					currentOffset++
				})
				rowFilter[i] = 1
				ds.usedFlags.SetUsed(entry.Offset)
				rightRowFound = true

			case (desc.Strictness == StrictAny || desc.Strictness == StrictSemi) && desc.Kind == Right:
				if ds.usedFlags.SetUsedOnce(entry.Offset) {
					entry.rows(func(ref RowRef) {
						appendAddedReal(ref)
						currentOffset++
					})
					rowFilter[i] = 1
				}
				rightRowFound = true

			case desc.Strictness == StrictAny && desc.Kind == Inner:
				if ds.usedFlags.SetUsedOnce(entry.Offset) {
					appendAddedReal(entry.Head)
					currentOffset++
					rowFilter[i] = 1
				}
				rightRowFound = true

			case desc.Strictness == StrictAnti && desc.Kind == Right:
				ds.usedFlags.SetUsed(entry.Offset)
				rightRowFound = true

			case desc.Strictness == StrictAnti:
				// Anti + Left/Inner: a match suppresses the row
				// entirely rather than emitting anything.
				ds.usedFlags.SetUsed(entry.Offset)
				rightRowFound = true

			default:
				// Any Left, Semi Left, RightAny.
				appendAddedReal(entry.Head)
				currentOffset++
				rowFilter[i] = 1
				ds.usedFlags.SetUsed(entry.Offset)
				rightRowFound = true
			}

			if desc.Strictness != StrictAll {
				break
			}
		}

		if !rightRowFound {
			if desc.Strictness == StrictAnti && desc.Kind != Right {
				rowFilter[i] = 1
				if addMiss {
					appendAddedDefault()
					currentOffset++
				}
			} else if addMiss {
				appendAddedDefault()
				currentOffset++
			}
			_ = nullFound // a null key on this disjunct never sets rightRowFound;
			// the zero-width/zero-filter outcome already follows from
			// addMiss/needRepl regardless of why the row went unmatched.
		}

		if needRepl {
			offsets[i] = currentOffset
		}
	}

	return hj.assembleProbeOutput(left, rowFilter, offsets, needFilt, needRepl, addedOut)
}

func (hj *HashJoin) assembleProbeOutput(left *Block, rowFilter []uint8, offsets []uint64, needFilt, needRepl bool, addedOut []Column) (*Block, error) {
	subs := hj.requiredRightKeySubs()
	leftCols := left.Columns()
	out := make([]Column, 0, len(leftCols)+len(subs)+len(addedOut))

	switch {
	case needFilt:
		hint := popcount(rowFilter)
		for _, c := range leftCols {
			out = append(out, c.Filter(rowFilter, hint))
		}
		for _, s := range subs {
			lc, ok := left.ColumnByName(s.leftName)
			if !ok {
				return nil, errNoSuchColumn(s.leftName)
			}
			filtered := lc.Filter(rowFilter, hint)
			out = append(out, renamedColumn{Column: filtered.WidenToNullable(), name: s.rightName})
		}
	case needRepl:
		for _, c := range leftCols {
			out = append(out, c.Replicate(offsets))
		}
		for _, s := range subs {
			lc, ok := left.ColumnByName(s.leftName)
			if !ok {
				return nil, errNoSuchColumn(s.leftName)
			}
			wide := lc.WidenToNullable().Replicate(offsets)
			out = append(out, renamedColumn{Column: wide, name: s.rightName})
		}
	default:
		out = append(out, leftCols...)
		for _, s := range subs {
			lc, ok := left.ColumnByName(s.leftName)
			if !ok {
				return nil, errNoSuchColumn(s.leftName)
			}
			out = append(out, renamedColumn{Column: lc.WidenToNullable(), name: s.rightName})
		}
	}

	out = append(out, addedOut...)
	return NewBlock(out...)
}
