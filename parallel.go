package chjoin

import (
	"runtime"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"
)

// Morsel is a row range handed to one probe worker at a time.
type Morsel struct {
	Start int
	End int
}

// MorselIterator hands out morsels to work-stealing workers via a
// single atomic cursor.
type MorselIterator struct {
	totalRows int
	morselSize int
	nextStart int64
}

func NewMorselIterator(totalRows, morselSize int) *MorselIterator {
	if morselSize <= 0 {
		morselSize = GetConfig().MorselSize
	}
	return &MorselIterator{totalRows: totalRows, morselSize: morselSize}
}

// Next returns the next morsel, or nil once exhausted. Safe for
// concurrent use.
func (mi *MorselIterator) Next() *Morsel {
	for {
		start := atomic.LoadInt64(&mi.nextStart)
		if int(start) >= mi.totalRows {
			return nil
		}
		end := int(start) + mi.morselSize
		if end > mi.totalRows {
			end = mi.totalRows
		}
		if atomic.CompareAndSwapInt64(&mi.nextStart, start, int64(end)) {
			return &Morsel{Start: int(start), End: end}
		}
	}
}

func numWorkers(cfg Config) int {
	if cfg.MaxWorkers > 0 {
		return cfg.MaxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// JoinBlockParallel probes left concurrently across MorselSize-row
// chunks, bounded by an ants worker pool, and reassembles the
// per-morsel outputs in morsel order, even though the morsels
// themselves may complete out of order. UsedFlags' relaxed atomics
// (usedflags.go) are what makes concurrent claims across morsels safe.
//
// Falls back to the sequential JoinBlock when left is too small to be
// worth splitting, or when morsel sizing is disabled (MorselSize <= 0).
func (hj *HashJoin) JoinBlockParallel(left *Block, cfg Config) (*Block, error) {
	rows := left.Rows()
	if cfg.MorselSize <= 0 || rows < cfg.MinRowsForParallel {
		return hj.JoinBlock(left)
	}

	numMorsels := (rows + cfg.MorselSize - 1) / cfg.MorselSize
	if numMorsels <= 1 {
		return hj.JoinBlock(left)
	}
	outputs := make([]*Block, numMorsels)

	pool, err := ants.NewPool(numWorkers(cfg))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	g := new(errgroup.Group)
	for m := 0; m < numMorsels; m++ {
		m := m
		start := m * cfg.MorselSize
		end := start + cfg.MorselSize
		if end > rows {
			end = rows
		}

		g.Go(func() error {
			done := make(chan error, 1)
			submitErr := pool.Submit(func() {
				sub, serr := left.slice(start, end-start)
				if serr != nil {
					done <- serr
					return
				}
				out, jerr := hj.JoinBlock(sub)
				if jerr != nil {
					done <- jerr
					return
				}
				outputs[m] = out
				done <- nil
			})
			if submitErr != nil {
				return submitErr
			}
			return <-done
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return concatBlocks(outputs)
}
