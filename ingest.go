package chjoin

import (
	"math"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// savedSchema is computed once (from the constructor's right sample)
// and describes exactly which columns of an ingested right block are
// physically stored: key columns are kept whenever ForceHashJoin is
// false, or the join kind is Right/Full, or there is more than one
// disjunct.
type savedSchema struct {
	keyColumns bool // whether right key columns are physically stored
	columnNames []string
	nullableNames map[string]bool // widen-to-nullable set
}

func (hj *HashJoin) computeSavedSchema() *savedSchema {
	desc := hj.descriptor
	saveKeys := !desc.ForceHashJoin || desc.Kind == Right || desc.Kind == Full || desc.multiDisjunct()

	sch := &savedSchema{keyColumns: saveKeys, nullableNames: make(map[string]bool)}

	seen := make(map[string]bool)
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		sch.columnNames = append(sch.columnNames, name)
	}

	if saveKeys {
		for _, names := range desc.KeyNamesRight {
			for _, n := range names {
				add(n)
			}
		}
	} else if desc.Strictness == StrictAsof {
		// Non-key columns to add are always saved; for ASOF the
		// inequality key must be saved even when equi-keys are not,
		// since find_asof needs it at probe time.
		add(desc.AsofKeyName)
	}
	for _, n := range desc.AddedColumnNames {
		add(n)
	}

	if desc.NullableRightSide && desc.Kind == Full && saveKeys {
		for _, names := range desc.KeyNamesRight {
			for _, n := range names {
				sch.nullableNames[n] = true
			}
		}
	}
	return sch
}

// apply applies the saved schema to an ingested block,
// widening columns as the schema demands.
func (sch *savedSchema) apply(in *Block) (*Block, error) {
	cols := make([]Column, 0, len(sch.columnNames))
	for _, name := range sch.columnNames {
		c, ok := in.ColumnByName(name)
		if !ok {
			return nil, errNoSuchColumn(name)
		}
		if sch.nullableNames[name] {
			c = c.WidenToNullable()
		}
		cols = append(cols, c)
	}
	return NewBlock(cols...)
}

// AddRightBlock ingests one right-side block. checkLimits enables
// size-limit enforcement against the configured SizeLimits.
func (hj *HashJoin) AddRightBlock(block *Block, checkLimits bool) (bool, error) {
	if hj.descriptor.Kind == Cross {
		return hj.addRightBlockCross(block)
	}

	hj.buildMu.Lock()
	defer hj.buildMu.Unlock()

	if hj.sealed {
		return false, errLogicalf("chjoin: AddRightBlock called after seal")
	}
	for _, d := range hj.disjuncts {
		if d.tag == TagDict {
			return false, errLogicalf("chjoin: AddRightBlock called on a dictionary-backed instance")
		}
	}

	if uint64(block.Rows()) > math.MaxUint32 {
		return false, errors.Wrapf(ErrNotImplemented, "right block of %d rows exceeds the per-block row limit", block.Rows())
	}

	if hj.storage.sampleBlock == nil {
		hj.storage.sampleBlock = block.CloneEmpty()
	}
	sch := hj.computeSavedSchema()
	structured, err := sch.apply(block)
	if err != nil {
		return false, err
	}

	ptr := hj.storage.appendBlock(structured)
	hj.storage.totalRows += uint64(structured.Rows())
	hj.storage.totalBytes += estimateBlockBytes(structured)

	anyNullmapSaved := false
	var combinedAcrossDisjuncts []byte
	for d := range hj.disjuncts {
		ds := &hj.disjuncts[d]
		keyNames := ds.rightNames
		equiNames := namesWithoutAsof(keyNames, hj.descriptor)

		keyCols, err := structured.selectColumns(equiNames)
		if err != nil {
			// Non-key-saving schemas don't carry key columns; fall
			// back to sourcing the key from the raw input block for
			// map insertion (the stored block still only persists
			// what the saved schema names).
			keyCols, err = block.selectColumns(equiNames)
			if err != nil {
				return false, err
			}
		}

		nullMap := combinedNullMapFor(keyCols, structured.Rows())
		if (hj.descriptor.Kind == Right || hj.descriptor.Kind == Full) && anyByteSet(nullMap) {
			ds.saveNullmap = true
			anyNullmapSaved = true
			combinedAcrossDisjuncts = orNullMaps(combinedAcrossDisjuncts, nullMap, structured.Rows())
		}

		if err := hj.insertDisjunct(d, keyCols, nullMap, structured, ptr); err != nil {
			return false, err
		}

		if hj.descriptor.Strictness == StrictAsof {
			ds.m.forEachEntry(func(e *MapEntry) { e.Asof.ensureSorted() })
		}

		ds.usedFlags = newUsedFlags(ds.m.bucketCount(), hj.descriptor.needFlags())
	}

	if anyNullmapSaved {
		hj.storage.blocksNullmaps = append(hj.storage.blocksNullmaps, nullmapEntry{blockPtr: ptr, nullMap: combinedAcrossDisjuncts})
	}

	if checkLimits {
		limits := hj.descriptor.SizeLimits
		if limits.MaxRows == 0 {
			limits.MaxRows = hj.config.DefaultMaxRows
		}
		if limits.MaxBytes == 0 {
			limits.MaxBytes = hj.config.DefaultMaxBytes
		}
		if err := limits.check(hj.storage.totalRows, hj.storage.totalBytes); err != nil {
			pkgLogger.Warn("chjoin: right table size limit exceeded", zap.Error(err))
			return false, err
		}
	}

	pkgLogger.Debug("chjoin: ingested right block", zap.Uint64("rows", uint64(structured.Rows())))
	return true, nil
}

// insertDisjunct runs the per-variant insert specialized by strictness
// and map tag.
func (hj *HashJoin) insertDisjunct(d int, keyCols []Column, nullMap []byte, stored *Block, blockPtr uint32) error {
	ds := &hj.disjuncts[d]
	kg := newKeyGetter(ds.tag, keyCols)
	rows := stored.Rows()

	var asofCol Column
	if hj.descriptor.Strictness == StrictAsof {
		c, ok := stored.ColumnByName(ds.rightAsofName)
		if !ok {
			c, _ = hj.storage.blocks[blockPtr].ColumnByName(ds.rightAsofName)
		}
		asofCol = c
	}

	for row := 0; row < rows; row++ {
		if nullMap != nil && row < len(nullMap) && nullMap[row] != 0 {
			continue // invariant 2: null key rows never enter the map
		}

		entry, inserted := kg.emplace(ds.m, row)

		switch hj.descriptor.Strictness {
		case StrictAsof:
			if inserted {
				entry.Asof = newAsofIndex(asofValueKindOf(asofCol))
			}
			if asofCol != nil {
				entry.Asof.insert(asofValueAt(asofCol, row, RowRef{BlockPtr: blockPtr, Row: uint32(row)}))
			}
		case StrictAll:
			if inserted {
				entry.Head = RowRef{BlockPtr: blockPtr, Row: uint32(row)}
			} else {
				entry.appendChain(hj.storage.pool, RowRef{BlockPtr: blockPtr, Row: uint32(row)})
			}
		default:
			if inserted {
				entry.Head = RowRef{BlockPtr: blockPtr, Row: uint32(row)}
			} else if hj.descriptor.AnyTakeLastRow {
				entry.Head = RowRef{BlockPtr: blockPtr, Row: uint32(row)}
			}
			// Any/Semi/Anti/RightAny: "first occurrence wins" unless
			// any_take_last_row.
		}
	}
	return nil
}

func combinedNullMapFor(cols []Column, rows int) []byte {
	var out []byte
	for _, c := range cols {
		nm := c.NullMap()
		if nm == nil {
			continue
		}
		if out == nil {
			out = make([]byte, rows)
		}
		for i := 0; i < rows && i < len(nm); i++ {
			if nm[i] != 0 {
				out[i] = 1
			}
		}
	}
	return out
}

// orNullMaps unions b into acc (growing acc to rows on first use),
// used to combine the per-disjunct null maps of a multi-disjunct join
// into the single combined map stored per block.
func orNullMaps(acc, b []byte, rows int) []byte {
	if len(b) == 0 {
		return acc
	}
	if acc == nil {
		acc = make([]byte, rows)
	}
	for i := 0; i < rows && i < len(b); i++ {
		if b[i] != 0 {
			acc[i] = 1
		}
	}
	return acc
}

func anyByteSet(b []byte) bool {
	for _, x := range b {
		if x != 0 {
			return true
		}
	}
	return false
}

func asofValueKindOf(c Column) AsofValueKind {
	switch c.Kind() {
	case KindFloat32, KindFloat64:
		return AsofKindFloat
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return AsofKindUint
	default:
		return AsofKindInt
	}
}

func asofValueAt(c Column, row int, ref RowRef) asofValue {
	bits := numericColumnBits(c, row)
	v := asofValue{ref: ref}
	switch asofValueKindOf(c) {
	case AsofKindFloat:
		if c.Kind() == KindFloat32 {
			v.f = float64(math.Float32frombits(uint32(bits)))
		} else {
			v.f = math.Float64frombits(bits)
		}
	case AsofKindUint:
		v.u = bits
	default:
		v.i = signExtend(bits, c.SizeOfFixed())
	}
	return v
}

func signExtend(bits uint64, width int) int64 {
	switch width {
	case 1:
		return int64(int8(bits))
	case 2:
		return int64(int16(bits))
	case 4:
		return int64(int32(bits))
	default:
		return int64(bits)
	}
}
