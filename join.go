package chjoin

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// disjunctState is the per-disjunct build/probe state: which map tag
// was chosen, the key column names on each side, and the resulting
// map/asof-index/used-flags triple.
type disjunctState struct {
	tag MapTag
	keySizes []int
	leftNames []string
	rightNames []string
	rightAsofName string // set only for Asof strictness

	m *MapVariant
	usedFlags *UsedFlags
	// saveNullmap records whether any right row observed a null key
	// on this disjunct while ingesting the current storage generation.
	saveNullmap bool
}

// DictionaryReader is the injected collaborator for the DICT map
// variant: given the left key column it returns the
// matched payload block, a found mask, and the matched row positions.
type DictionaryReader interface {
	Lookup(leftKey Column) (result *Block, found []bool, rowPositions []int, err error)
}

// HashJoin is the hash-join operator. It is constructed with a
// Descriptor and a right sample block, ingested with zero or more
// right blocks, sealed implicitly on first probe, and then probed any
// number of times (safely, from multiple goroutines).
type HashJoin struct {
	id uuid.UUID

	descriptor Descriptor
	storage *Storage
	disjuncts []disjunctState
	config Config

	dict DictionaryReader

	buildMu sync.Mutex // "storage_join_lock"
	sealed bool

	crossState *CrossContinuation
}

// New constructs a HashJoin instance. rightSample describes the
// schema that will be stored; computeSavedSchema decides exactly
// which columns of an ingested block end up persisted.
func New(desc Descriptor, rightSample *Block, cfg Config) (*HashJoin, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}

	hj := &HashJoin{
		id: uuid.New(),
		descriptor: desc,
		storage: newStorage(rightSample),
		config: cfg,
	}

	if desc.Kind == Cross {
		pkgLogger.Debug("chjoin: constructed cross-join operator", zap.String("id", hj.id.String()))
		return hj, nil
	}

	hj.disjuncts = make([]disjunctState, desc.disjunctCount())
	perDisjunctCols := make([][]Column, desc.disjunctCount())
	for d := range hj.disjuncts {
		names := desc.KeyNamesRight[d]
		cols, err := rightSample.selectColumns(namesWithoutAsof(names, desc))
		if err != nil {
			return nil, err
		}
		perDisjunctCols[d] = cols
		hj.disjuncts[d].leftNames = desc.KeyNamesLeft[d]
		hj.disjuncts[d].rightNames = names
		if desc.Strictness == StrictAsof {
			hj.disjuncts[d].rightAsofName = desc.AsofKeyName
		}
	}

	tags, sizes, err := resolveMapTags(perDisjunctCols)
	if err != nil {
		return nil, err
	}
	for d := range hj.disjuncts {
		hj.disjuncts[d].tag = tags[d]
		hj.disjuncts[d].keySizes = sizes[d]
		hj.disjuncts[d].m = newMapVariant(tags[d])
		hj.disjuncts[d].usedFlags = newUsedFlags(0, desc.needFlags())
	}

	pkgLogger.Debug("chjoin: constructed hash-join operator",
		zap.String("id", hj.id.String()),
		zap.String("kind", desc.Kind.String()),
		zap.String("strictness", desc.Strictness.String()),
	)
	return hj, nil
}

// namesWithoutAsof strips the trailing inequality-key name from a
// disjunct's key-name list so the map-tag chooser only sees the
// equi-key columns.
func namesWithoutAsof(names []string, desc Descriptor) []string {
	if desc.Strictness != StrictAsof || len(names) == 0 {
		return names
	}
	return names[:len(names)-1]
}

// TotalRows returns the number of rows ingested so far.
func (hj *HashJoin) TotalRows() uint64 {
	hj.buildMu.Lock()
	defer hj.buildMu.Unlock()
	return hj.storage.totalRows
}

// TotalBytes returns the estimated byte footprint ingested so far.
func (hj *HashJoin) TotalBytes() uint64 {
	hj.buildMu.Lock()
	defer hj.buildMu.Unlock()
	return hj.storage.totalBytes
}

// ReuseJoinedData shares other's right-side storage. other must
// already be sealed; writes must have ceased before sharing, since
// storage is read-only once shared.
func (hj *HashJoin) ReuseJoinedData(other *HashJoin) error {
	other.buildMu.Lock()
	defer other.buildMu.Unlock()
	if !other.sealed {
		return errLogicalf("chjoin: ReuseJoinedData source must be sealed")
	}
	hj.storage = other.storage
	hj.sealed = true
	return nil
}

// seal locks the operator against further ingestion.
func (hj *HashJoin) seal() {
	hj.buildMu.Lock()
	defer hj.buildMu.Unlock()
	if !hj.sealed {
		pkgLogger.Debug("chjoin: sealed operator", zap.String("id", hj.id.String()), zap.Uint64("rows", hj.storage.totalRows))
	}
	hj.sealed = true
}

func (hj *HashJoin) isSealed() bool {
	hj.buildMu.Lock()
	defer hj.buildMu.Unlock()
	return hj.sealed
}

// JoinTotals merges a totals block unchanged; the join core has no
// opinion on totals semantics beyond passing the block through.
func (hj *HashJoin) JoinTotals(totals *Block) (*Block, error) {
	return totals, nil
}
