package chjoin

// JoinGet implements `join_get(keys_block, payload_names)`: a
// single-column dictionary-style lookup restricted to Left +
// Any/RightAny, single disjunct, single key column. It asserts the
// operator is sealed rather than taking a lock — read-only after
// seal, not safe under concurrent build mutation.
func (hj *HashJoin) JoinGet(keysBlock *Block, payloadNames []string) ([]Column, error) {
	desc := hj.descriptor
	if desc.Kind != Left || (desc.Strictness != StrictAny && desc.Strictness != StrictRightAny) {
		return nil, errIncompatible("join_get requires Left + Any/RightAny")
	}
	if desc.multiDisjunct() || len(desc.KeyNamesRight[0]) != 1 {
		return nil, errIncompatible("join_get requires a single disjunct with a single key column")
	}
	if !hj.isSealed() {
		return nil, errLogicalf("chjoin: JoinGet called before the operator was sealed")
	}

	ds := &hj.disjuncts[0]
	keyName := desc.KeyNamesLeft[0][0]
	keyCol, ok := keysBlock.ColumnByName(keyName)
	if !ok {
		return nil, errNoSuchColumn(keyName)
	}
	kg := newKeyGetter(ds.tag, []Column{keyCol})

	sample, err := hj.storage.sampleBlock.selectColumns(payloadNames)
	if err != nil {
		return nil, err
	}
	out := make([]Column, len(sample))
	for i, c := range sample {
		out[i] = c.WidenToNullable().CloneEmpty()
	}

	rows := keysBlock.Rows()
	for row := 0; row < rows; row++ {
		entry, found := kg.find(ds.m, row)
		if !found {
			for _, c := range out {
				c.InsertDefault()
			}
			continue
		}
		srcBlock := hj.storage.block(entry.Head.BlockPtr)
		for i, name := range payloadNames {
			src, ok := srcBlock.ColumnByName(name)
			if !ok {
				out[i].InsertDefault()
				continue
			}
			out[i].InsertFrom(src, int(entry.Head.Row))
		}
	}
	return out, nil
}
