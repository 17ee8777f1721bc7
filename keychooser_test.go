package chjoin

import "testing"

func TestChooseMapTagSingleNumeric(t *testing.T) {
	cases := []struct {
		col Column
		want MapTag
	}{
		{NewInt8Column("k", []int8{1}), TagKey8},
		{NewInt16Column("k", []int16{1}), TagKey16},
		{NewInt32Column("k", []int32{1}), TagKey32},
		{NewInt64Column("k", []int64{1}), TagKey64},
	}
	for _, c := range cases {
		tag, _, err := chooseMapTag([]Column{c.col})
		if err != nil {
			t.Fatal(err)
		}
		if tag != c.want {
			t.Fatalf("chooseMapTag(%s) = %s, want %s", c.col.Kind(), tag, c.want)
		}
	}
}

func TestChooseMapTagComposite(t *testing.T) {
	cols := []Column{NewInt32Column("a", []int32{1}), NewInt32Column("b", []int32{2}), NewInt32Column("c", []int32{3})}
	tag, _, err := chooseMapTag(cols) // 12 bytes total -> keys128
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagKeys128 {
		t.Fatalf("chooseMapTag = %s, want keys128", tag)
	}

	wide := []Column{NewInt64Column("a", []int64{1}), NewInt64Column("b", []int64{2}), NewInt64Column("c", []int64{3}), NewInt64Column("d", []int64{4})}
	tag, _, err = chooseMapTag(wide) // 32 bytes total -> keys256
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagKeys256 {
		t.Fatalf("chooseMapTag = %s, want keys256", tag)
	}
}

func TestChooseMapTagString(t *testing.T) {
	tag, _, err := chooseMapTag([]Column{NewStringColumn("s", []string{"x"})})
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagKeyString {
		t.Fatalf("chooseMapTag = %s, want key_string", tag)
	}
}

func TestChooseMapTagFallsBackToHashed(t *testing.T) {
	// A string key combined with a numeric key isn't fixed-width
	// contiguous across the tuple, and isn't a lone string/fixed_string
	// column either, so it must fall back to the general hashed path.
	cols := []Column{NewStringColumn("s", []string{"x"}), NewInt64Column("n", []int64{1})}
	tag, _, err := chooseMapTag(cols)
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagHashed {
		t.Fatalf("chooseMapTag = %s, want hashed", tag)
	}
}

func TestResolveMapTagsForcesHashedOnDisagreement(t *testing.T) {
	perDisjunct := [][]Column{
		{NewInt32Column("a", []int32{1})}, // key32
		{NewStringColumn("s", []string{"x"})}, // key_string
	}
	tags, _, err := resolveMapTags(perDisjunct)
	if err != nil {
		t.Fatal(err)
	}
	for i, tag := range tags {
		if tag != TagHashed {
			t.Fatalf("tags[%d] = %s, want hashed once disjuncts disagree", i, tag)
		}
	}
}

func TestChooseMapTagEmptyIsCross(t *testing.T) {
	tag, _, err := chooseMapTag(nil)
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagCross {
		t.Fatalf("chooseMapTag(nil) = %s, want CROSS", tag)
	}
}
