package chjoin

import "testing"

func buildAsofIndex(t *testing.T, values []int64) *AsofIndex {
	t.Helper()
	x := newAsofIndex(AsofKindInt)
	for i, v := range values {
		x.insert(asofValue{i: v, ref: RowRef{Row: uint32(i)}})
	}
	return x
}

func TestAsofIndexLess(t *testing.T) {
	x := buildAsofIndex(t, []int64{10, 20, 30})
	ref, ok := x.findAsof(AsofLess, asofValue{i: 25})
	if !ok || ref.Row != 1 {
		t.Fatalf("findAsof(Less, 25) = (%v, %v), want row 1", ref, ok)
	}
	if _, ok := x.findAsof(AsofLess, asofValue{i: 10}); ok {
		t.Fatal("findAsof(Less, 10) should find nothing strictly less than the minimum")
	}
}

func TestAsofIndexLessOrEqual(t *testing.T) {
	x := buildAsofIndex(t, []int64{10, 20, 30})
	ref, ok := x.findAsof(AsofLessOrEqual, asofValue{i: 20})
	if !ok || ref.Row != 1 {
		t.Fatalf("findAsof(LessOrEqual, 20) = (%v, %v), want row 1", ref, ok)
	}
}

func TestAsofIndexGreater(t *testing.T) {
	x := buildAsofIndex(t, []int64{10, 20, 30})
	ref, ok := x.findAsof(AsofGreater, asofValue{i: 20})
	if !ok || ref.Row != 2 {
		t.Fatalf("findAsof(Greater, 20) = (%v, %v), want row 2", ref, ok)
	}
	if _, ok := x.findAsof(AsofGreater, asofValue{i: 30}); ok {
		t.Fatal("findAsof(Greater, 30) should find nothing strictly greater than the maximum")
	}
}

func TestAsofIndexGreaterOrEqual(t *testing.T) {
	x := buildAsofIndex(t, []int64{10, 20, 30})
	ref, ok := x.findAsof(AsofGreaterOrEqual, asofValue{i: 20})
	if !ok || ref.Row != 1 {
		t.Fatalf("findAsof(GreaterOrEqual, 20) = (%v, %v), want row 1", ref, ok)
	}
}

func TestAsofIndexEmpty(t *testing.T) {
	x := newAsofIndex(AsofKindInt)
	if _, ok := x.findAsof(AsofLess, asofValue{i: 1}); ok {
		t.Fatal("findAsof on an empty index must report not-found")
	}
}
