package chjoin

import "testing"

func TestNumericColumnFilterAndReplicate(t *testing.T) {
	c := NewInt64Column("k", []int64{1, 2, 3, 4})

	filtered := c.Filter([]uint8{1, 0, 1, 0}, 2).(*NumericColumn[int64])
	if got := filtered.Data(); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("Filter = %v, want [1 3]", got)
	}

	replicated := c.Replicate([]uint64{0, 2, 2, 3}).(*NumericColumn[int64])
	want := []int64{2, 2, 4}
	got := replicated.Data()
	if len(got) != len(want) {
		t.Fatalf("Replicate = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Replicate[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNumericColumnInsertDefaultMarksNull(t *testing.T) {
	c := NewNullableNumericColumn[int64]("v", KindInt64, nil, nil)
	c.nullMap = []byte{}
	c.InsertDefault()
	if !c.isNull(0) {
		t.Fatal("InsertDefault on a nullable column must mark the row NULL")
	}
	if got := c.Data()[0]; got != 0 {
		t.Fatalf("InsertDefault value = %d, want zero value", got)
	}
}

func TestNumericColumnWidenToNullable(t *testing.T) {
	c := NewInt64Column("k", []int64{1, 2})
	if c.Nullable() {
		t.Fatal("fresh NewInt64Column must not be nullable")
	}
	wide := c.WidenToNullable()
	if !wide.Nullable() {
		t.Fatal("WidenToNullable must produce a nullable column")
	}
	if wide.NullMap()[0] != 0 || wide.NullMap()[1] != 0 {
		t.Fatal("WidenToNullable must not mark existing rows NULL")
	}
	// widening an already-nullable column is a no-op
	if wide.WidenToNullable() != wide {
		t.Fatal("WidenToNullable on an already-nullable column must return the receiver")
	}
}

func TestStringColumnInsertDefaultMarksNull(t *testing.T) {
	c := &StringColumn{name: "s", nullMap: []byte{}}
	c.InsertDefault()
	if c.nullMap[0] != 1 {
		t.Fatal("StringColumn.InsertDefault() on a nullable column must mark the row NULL")
	}
	if c.data[0] != "" {
		t.Fatalf("InsertDefault value = %q, want empty string", c.data[0])
	}
}

func TestFixedStringColumnRoundTrip(t *testing.T) {
	c := NewFixedStringColumn("f", 3, []byte("abcdef"))
	if c.Rows() != 2 {
		t.Fatalf("Rows = %d, want 2", c.Rows())
	}
	clone := c.CloneEmpty().(*FixedStringColumn)
	clone.InsertFrom(c, 1)
	if string(clone.rowBytes(0)) != "def" {
		t.Fatalf("InsertFrom = %q, want %q", clone.rowBytes(0), "def")
	}
}
