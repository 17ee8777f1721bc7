package chjoin

import "testing"

func TestBlockToArrowRecord(t *testing.T) {
	blk := mustBlock(t, NewInt64Column("k", []int64{1, 2, 3}), NewStringColumn("v", []string{"a", "b", "c"}))
	rec, err := blk.ToArrowRecord(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Release()

	if rec.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", rec.NumRows())
	}
	if rec.NumCols() != 2 {
		t.Fatalf("NumCols = %d, want 2", rec.NumCols())
	}
	if rec.ColumnName(0) != "k" || rec.ColumnName(1) != "v" {
		t.Fatalf("column names = [%s %s], want [k v]", rec.ColumnName(0), rec.ColumnName(1))
	}
}

func TestBlockToArrowRecordWithNulls(t *testing.T) {
	k := NewNullableNumericColumn[int64]("k", KindInt64, []int64{1, 0}, []byte{0, 1})
	blk := mustBlock(t, k)
	rec, err := blk.ToArrowRecord(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rec.Release()
	if rec.Column(0).IsNull(1) != true {
		t.Fatal("ToArrowRecord must preserve the NULL at row 1")
	}
}
