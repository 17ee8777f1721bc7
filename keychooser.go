package chjoin

// MapTag is the nine-plus-three-sentinel tagged union identifying
// which concrete map representation a disjunct was resolved to.
type MapTag uint8

const (
	TagEmpty MapTag = iota
	TagCross
	TagDict
	TagKey8
	TagKey16
	TagKey32
	TagKey64
	TagKeys128
	TagKeys256
	TagKeyString
	TagKeyFixedString
	TagHashed
)

func (t MapTag) String() string {
	switch t {
	case TagEmpty:
		return "EMPTY"
	case TagCross:
		return "CROSS"
	case TagDict:
		return "DICT"
	case TagKey8:
		return "key8"
	case TagKey16:
		return "key16"
	case TagKey32:
		return "key32"
	case TagKey64:
		return "key64"
	case TagKeys128:
		return "keys128"
	case TagKeys256:
		return "keys256"
	case TagKeyString:
		return "key_string"
	case TagKeyFixedString:
		return "key_fixed_string"
	case TagHashed:
		return "hashed"
	default:
		return "unknown"
	}
}

// chooseMapTag is the key-method chooser for a single disjunct's key
// columns (the asof key, if any, is excluded by the caller before this
// is invoked — it is the inequality key, not part of the hash key).
func chooseMapTag(cols []Column) (MapTag, []int, error) {
	if len(cols) == 0 {
		return TagCross, nil, nil
	}

	allFixed := true
	totalBytes := 0
	sizes := make([]int, len(cols))
	for i, c := range cols {
		if !c.IsFixedContiguous() {
			allFixed = false
			continue
		}
		w := c.SizeOfFixed()
		sizes[i] = w
		totalBytes += w
	}

	if len(cols) == 1 && cols[0].IsNumeric() {
		w := cols[0].SizeOfFixed()
		switch w {
		case 1:
			return TagKey8, sizes, nil
		case 2:
			return TagKey16, sizes, nil
		case 4:
			return TagKey32, sizes, nil
		case 8:
			return TagKey64, sizes, nil
		default:
			return TagEmpty, nil, errLogicalf("chjoin: numeric key column %q has unsupported width %d", cols[0].Name(), w)
		}
	}

	if allFixed {
		if totalBytes <= 16 {
			return TagKeys128, sizes, nil
		}
		if totalBytes <= 32 {
			return TagKeys256, sizes, nil
		}
	}

	if len(cols) == 1 {
		if cols[0].Kind() == KindString {
			return TagKeyString, sizes, nil
		}
		if cols[0].Kind() == KindFixedString {
			return TagKeyFixedString, sizes, nil
		}
	}

	return TagHashed, sizes, nil
}

// resolveMapTags applies chooseMapTag to every disjunct and, per
// the final rule, forces every disjunct to `hashed` if the
// chosen tags disagree across disjuncts.
func resolveMapTags(perDisjunctCols [][]Column) ([]MapTag, [][]int, error) {
	tags := make([]MapTag, len(perDisjunctCols))
	sizes := make([][]int, len(perDisjunctCols))
	disagree := false
	for i, cols := range perDisjunctCols {
		t, s, err := chooseMapTag(cols)
		if err != nil {
			return nil, nil, err
		}
		tags[i] = t
		sizes[i] = s
		if i > 0 && t != tags[0] {
			disagree = true
		}
	}
	if disagree {
		for i := range tags {
			tags[i] = TagHashed
		}
	}
	return tags, sizes, nil
}
