package chjoin

// CrossContinuation is the resumable state of the nested-loop cross
// join: a left block parked mid-iteration together with the
// right-side cursor it will resume from.
type CrossContinuation struct {
	left *Block
	leftRow int
	rightBlockIdx int
	rightRowOffset int
}

// addRightBlockCross is the Cross-kind build path (C9): no map is
// built, the right block is only appended to storage.
func (hj *HashJoin) addRightBlockCross(block *Block) (bool, error) {
	hj.buildMu.Lock()
	defer hj.buildMu.Unlock()

	if hj.sealed {
		return false, errLogicalf("chjoin: AddRightBlock called after seal")
	}
	if hj.storage.sampleBlock == nil {
		hj.storage.sampleBlock = block.CloneEmpty()
	}
	hj.storage.appendBlock(block)
	hj.storage.totalRows += uint64(block.Rows())
	hj.storage.totalBytes += estimateBlockBytes(block)
	return true, nil
}

// JoinBlockCross implements `join_block` for the Cross kind. Pass the next left block in left when starting a fresh pass;
// while a pass is still in progress (a previous call hit
// maxJoinedBlockRows before exhausting the left block against every
// right block) pass left as nil and the operator resumes from its
// parked continuation. A nil output with a nil error means the pass
// completed and the caller should supply a new left block.
func (hj *HashJoin) JoinBlockCross(left *Block, maxJoinedBlockRows int) (*Block, error) {
	hj.seal()

	if hj.crossState == nil {
		if left == nil {
			return nil, nil
		}
		hj.crossState = &CrossContinuation{left: left}
	}
	cont := hj.crossState

	out, err := hj.crossOutputSchema(cont)
	if err != nil {
		return nil, err
	}

	exhausted := hj.crossFill(cont, out, maxJoinedBlockRows)
	if exhausted {
		hj.crossState = nil
	}
	return out, nil
}

func (hj *HashJoin) crossOutputSchema(cont *CrossContinuation) (*Block, error) {
	leftCols := cont.left.Columns()
	rightCols := hj.storage.sampleBlock.Columns()
	cols := make([]Column, 0, len(leftCols)+len(rightCols))
	for _, c := range leftCols {
		cols = append(cols, c.CloneEmpty())
	}
	for _, c := range rightCols {
		cols = append(cols, c.CloneEmpty())
	}
	return NewBlock(cols...)
}

// crossFill advances cont, appending rows into out until either the
// row cap is hit (returns false, more output pending) or the left
// block is fully exhausted against every right block (returns true).
// Once rows have been emitted, a new left row is only started if its
// full output (one copy per right row) still fits under the cap;
// otherwise the call ends at that left-row boundary (returns false).
func (hj *HashJoin) crossFill(cont *CrossContinuation, out *Block, cap int) bool {
	leftCols := cont.left.Columns()
	nLeft := len(leftCols)
	outCols := out.Columns()
	emitted := 0
	leftRows := cont.left.Rows()
	perLeftRow := 0
	for b := 0; b < hj.storage.blockCount(); b++ {
		perLeftRow += hj.storage.block(uint32(b)).Rows()
	}

	for cont.leftRow < leftRows {
		for cont.rightBlockIdx < hj.storage.blockCount() {
			rb := hj.storage.block(uint32(cont.rightBlockIdx))
			rbRows := rb.Rows()
			remaining := rbRows - cont.rightRowOffset
			if remaining <= 0 {
				cont.rightBlockIdx++
				cont.rightRowOffset = 0
				continue
			}
			if emitted >= cap {
				return false
			}
			take := remaining
			if budget := cap - emitted; take > budget {
				take = budget
			}

			for i, c := range outCols[:nLeft] {
				c.InsertManyFrom(leftCols[i], cont.leftRow, take)
			}
			rbCols := rb.Columns()
			for i, c := range outCols[nLeft:] {
				c.InsertRangeFrom(rbCols[i], cont.rightRowOffset, take)
			}

			emitted += take
			cont.rightRowOffset += take
			if cont.rightRowOffset >= rbRows {
				cont.rightBlockIdx++
				cont.rightRowOffset = 0
			}
			if emitted >= cap {
				return false
			}
		}
		cont.leftRow++
		cont.rightBlockIdx = 0
		cont.rightRowOffset = 0
		if emitted > 0 && emitted+perLeftRow > cap && cont.leftRow < leftRows {
			return false
		}
	}
	return true
}
