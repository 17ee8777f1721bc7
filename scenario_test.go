package chjoin

import "testing"

// rightSampleKV builds a (k int64, v string) schema block, used as
// both the constructor's rightSample and the shape for ingested blocks
// across the scenarios below.
func rightSampleKV(t *testing.T) *Block {
	t.Helper()
	blk, err := NewBlock(NewInt64Column("k", nil), NewStringColumn("v", nil))
	if err != nil {
		t.Fatal(err)
	}
	return blk
}

func mustBlock(t *testing.T, cols ...Column) *Block {
	t.Helper()
	blk, err := NewBlock(cols...)
	if err != nil {
		t.Fatal(err)
	}
	return blk
}

func stringColumnValues(t *testing.T, blk *Block, name string) []string {
	t.Helper()
	c, ok := blk.ColumnByName(name)
	if !ok {
		t.Fatalf("no column %q", name)
	}
	return c.(*StringColumn).Data()
}

func int64ColumnValues(t *testing.T, blk *Block, name string) []int64 {
	t.Helper()
	c, ok := blk.ColumnByName(name)
	if !ok {
		t.Fatalf("no column %q", name)
	}
	return c.(*NumericColumn[int64]).Data()
}

// S1 — Inner All, single integer key.
func TestScenarioS1InnerAll(t *testing.T) {
	desc := Descriptor{
		Kind: Inner,
		Strictness: StrictAll,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	right := mustBlock(t, NewInt64Column("k", []int64{1, 1, 2}), NewStringColumn("v", []string{"a", "b", "c"}))
	if _, err := hj.AddRightBlock(right, false); err != nil {
		t.Fatal(err)
	}

	left := mustBlock(t, NewInt64Column("k", []int64{1, 3}))
	out, err := hj.JoinBlock(left)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", out.Rows())
	}
	gotV := stringColumnValues(t, out, "v")
	if gotV[0] != "a" || gotV[1] != "b" {
		t.Fatalf("v = %v, want [a b]", gotV)
	}
}

// S2 — Left Any, default on miss.
func TestScenarioS2LeftAny(t *testing.T) {
	desc := Descriptor{
		Kind: Left,
		Strictness: StrictAny,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	right := mustBlock(t, NewInt64Column("k", []int64{1, 1, 2}), NewStringColumn("v", []string{"a", "b", "c"}))
	if _, err := hj.AddRightBlock(right, false); err != nil {
		t.Fatal(err)
	}

	left := mustBlock(t, NewInt64Column("k", []int64{2, 3}))
	out, err := hj.JoinBlock(left)
	if err != nil {
		t.Fatal(err)
	}
	if out.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", out.Rows())
	}
	gotV := stringColumnValues(t, out, "v")
	if gotV[0] != "c" {
		t.Fatalf("v[0] = %q, want \"c\"", gotV[0])
	}
	if gotV[1] != "" {
		t.Fatalf("v[1] = %q, want the default empty string", gotV[1])
	}
}

// S3 — Right All: joined rows plus a non-joined stream for the
// right row no left row ever claimed.
func TestScenarioS3RightAll(t *testing.T) {
	desc := Descriptor{
		Kind: Right,
		Strictness: StrictAll,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	right := mustBlock(t, NewInt64Column("k", []int64{1, 1, 2}), NewStringColumn("v", []string{"a", "b", "c"}))
	if _, err := hj.AddRightBlock(right, false); err != nil {
		t.Fatal(err)
	}

	left := mustBlock(t, NewInt64Column("k", []int64{1}))
	out, err := hj.JoinBlock(left)
	if err != nil {
		t.Fatal(err)
	}
	gotV := stringColumnValues(t, out, "v")
	if len(gotV) != 2 || gotV[0] != "a" || gotV[1] != "b" {
		t.Fatalf("joined v = %v, want [a b]", gotV)
	}

	stream, ok := hj.CreateNonJoinedStream(rightSampleKV(t), 10)
	if !ok {
		t.Fatal("CreateNonJoinedStream must report true for Right+All")
	}
	nj, more, err := stream.Next()
	if err != nil {
		t.Fatal(err)
	}
	if !more {
		t.Fatal("Next must report more on the first pull")
	}
	njV := stringColumnValues(t, nj, "v")
	if len(njV) != 1 || njV[0] != "c" {
		t.Fatalf("non-joined v = %v, want [c]", njV)
	}
}

// S4 — Full All with a null key on the right side.
func TestScenarioS4FullAllNullKey(t *testing.T) {
	desc := Descriptor{
		Kind: Full,
		Strictness: StrictAll,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
		NullableRightSide: true,
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	rk := NewNullableNumericColumn[int64]("k", KindInt64, []int64{1, 0}, []byte{0, 1})
	right := mustBlock(t, rk, NewStringColumn("v", []string{"a", "z"}))
	if _, err := hj.AddRightBlock(right, false); err != nil {
		t.Fatal(err)
	}

	left := mustBlock(t, NewInt64Column("k", []int64{1, 2}))
	out, err := hj.JoinBlock(left)
	if err != nil {
		t.Fatal(err)
	}
	gotV := stringColumnValues(t, out, "v")
	if len(gotV) != 2 {
		t.Fatalf("joined rows = %d, want 2 (k=1 match + k=2 default)", len(gotV))
	}
	if gotV[0] != "a" {
		t.Fatalf("v[0] = %q, want \"a\"", gotV[0])
	}
	if gotV[1] != "" {
		t.Fatalf("v[1] = %q, want the default empty string for the unmatched left row", gotV[1])
	}

	stream, ok := hj.CreateNonJoinedStream(rightSampleKV(t), 10)
	if !ok {
		t.Fatal("CreateNonJoinedStream must report true for Full+All")
	}
	nj, _, err := stream.Next()
	if err != nil {
		t.Fatal(err)
	}
	njV := stringColumnValues(t, nj, "v")
	if len(njV) != 1 || njV[0] != "z" {
		t.Fatalf("non-joined v = %v, want [z] (the null-key right row)", njV)
	}
}

// S5 — ASOF Less.
func TestScenarioS5AsofLess(t *testing.T) {
	desc := Descriptor{
		Kind: Inner,
		Strictness: StrictAsof,
		KeyNamesLeft: [][]string{{"e", "t"}},
		KeyNamesRight: [][]string{{"e", "t"}},
		AddedColumnNames: []string{"v"},
		AsofInequality: AsofLess,
		AsofKeyName: "t",
	}
	rightSample := mustBlock(t, NewInt64Column("e", nil), NewInt64Column("t", nil), NewStringColumn("v", nil))
	hj, err := New(desc, rightSample, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	right := mustBlock(t,
		NewInt64Column("e", []int64{1, 1, 1}),
		NewInt64Column("t", []int64{10, 20, 30}),
		NewStringColumn("v", []string{"x", "y", "z"}),
	)
	if _, err := hj.AddRightBlock(right, false); err != nil {
		t.Fatal(err)
	}

	left := mustBlock(t, NewInt64Column("e", []int64{1}), NewInt64Column("t", []int64{25}))
	out, err := hj.JoinBlock(left)
	if err != nil {
		t.Fatal(err)
	}
	gotV := stringColumnValues(t, out, "v")
	if len(gotV) != 1 || gotV[0] != "y" {
		t.Fatalf("v = %v, want [y]", gotV)
	}
}

// S6 — OR disjunction (multi-disjunct All) with known-rows dedup.
func TestScenarioS6OrDisjunctionDedup(t *testing.T) {
	desc := Descriptor{
		Kind: Inner,
		Strictness: StrictAll,
		KeyNamesLeft: [][]string{{"a"}, {"b"}},
		KeyNamesRight: [][]string{{"a"}, {"b"}},
		AddedColumnNames: []string{"v"},
	}
	rightSample := mustBlock(t, NewInt64Column("a", nil), NewInt64Column("b", nil), NewStringColumn("v", nil))
	hj, err := New(desc, rightSample, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	right := mustBlock(t,
		NewInt64Column("a", []int64{1, 3}),
		NewInt64Column("b", []int64{2, 2}),
		NewStringColumn("v", []string{"p", "q"}),
	)
	if _, err := hj.AddRightBlock(right, false); err != nil {
		t.Fatal(err)
	}

	left := mustBlock(t, NewInt64Column("a", []int64{1}), NewInt64Column("b", []int64{2}))
	out, err := hj.JoinBlock(left)
	if err != nil {
		t.Fatal(err)
	}
	gotV := stringColumnValues(t, out, "v")
	if len(gotV) != 2 {
		t.Fatalf("v = %v, want two distinct right rows (no duplicate via the second disjunct)", gotV)
	}
	seen := map[string]bool{}
	for _, v := range gotV {
		seen[v] = true
	}
	if !seen["p"] || !seen["q"] {
		t.Fatalf("v = %v, want both \"p\" and \"q\"", gotV)
	}
}

// S7 — Cross resumption across three right blocks of 10 rows and a
// five-row left block, budgeted at 17 rows per call.
func TestScenarioS7CrossResumption(t *testing.T) {
	desc := Descriptor{Kind: Cross}
	rightSample := mustBlock(t, NewInt64Column("r", nil))
	hj, err := New(desc, rightSample, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for b := 0; b < 3; b++ {
		vals := make([]int64, 10)
		for i := range vals {
			vals[i] = int64(b*10 + i)
		}
		if _, err := hj.AddRightBlock(mustBlock(t, NewInt64Column("r", vals)), false); err != nil {
			t.Fatal(err)
		}
	}

	leftVals := make([]int64, 5)
	for i := range leftVals {
		leftVals[i] = int64(i)
	}
	left := mustBlock(t, NewInt64Column("l", leftVals))

	out1, err := hj.JoinBlockCross(left, 17)
	if err != nil {
		t.Fatal(err)
	}
	if out1.Rows() != 17 {
		t.Fatalf("first JoinBlockCross = %d rows, want 17", out1.Rows())
	}

	out2, err := hj.JoinBlockCross(nil, 17)
	if err != nil {
		t.Fatal(err)
	}
	if out2.Rows() != 13 {
		t.Fatalf("second JoinBlockCross = %d rows, want 13", out2.Rows())
	}

	out3, err := hj.JoinBlockCross(nil, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if out3.Rows() != 120 {
		t.Fatalf("third JoinBlockCross = %d rows, want 120", out3.Rows())
	}

	out4, err := hj.JoinBlockCross(nil, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if out4 != nil {
		t.Fatal("JoinBlockCross after full exhaustion must return nil")
	}
}
