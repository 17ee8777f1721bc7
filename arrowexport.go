package chjoin

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/cockroachdb/errors"
)

// ToArrowRecord exports a joined Block as an Arrow record, letting a
// host engine hand `join_block`/`create_non_joined_stream` output
// straight to an Arrow-based execution layer without an intermediate
// columnar format of its own. The caller must call Release on the
// returned record.
func (b *Block) ToArrowRecord(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	fields := make([]arrow.Field, len(b.columns))
	arrays := make([]arrow.Array, len(b.columns))
	for i, c := range b.columns {
		at, err := kindToArrowType(c.Kind())
		if err != nil {
			for j := 0; j < i; j++ {
				arrays[j].Release()
			}
			return nil, errors.Wrapf(err, "column %q", c.Name())
		}
		fields[i] = arrow.Field{Name: c.Name(), Type: at, Nullable: c.Nullable()}

		arr, err := columnToArrowArray(c, mem)
		if err != nil {
			for j := 0; j < i; j++ {
				arrays[j].Release()
			}
			return nil, errors.Wrapf(err, "column %q", c.Name())
		}
		arrays[i] = arr
	}

	schema := arrow.NewSchema(fields, nil)
	record := array.NewRecord(schema, arrays, int64(b.Rows()))
	for _, arr := range arrays {
		arr.Release()
	}
	return record, nil
}

func kindToArrowType(k ColumnKind) (arrow.DataType, error) {
	switch k {
	case KindInt8:
		return arrow.PrimitiveTypes.Int8, nil
	case KindInt16:
		return arrow.PrimitiveTypes.Int16, nil
	case KindInt32:
		return arrow.PrimitiveTypes.Int32, nil
	case KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case KindUint8:
		return arrow.PrimitiveTypes.Uint8, nil
	case KindUint16:
		return arrow.PrimitiveTypes.Uint16, nil
	case KindUint32:
		return arrow.PrimitiveTypes.Uint32, nil
	case KindUint64:
		return arrow.PrimitiveTypes.Uint64, nil
	case KindFloat32:
		return arrow.PrimitiveTypes.Float32, nil
	case KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case KindString, KindFixedString:
		return arrow.BinaryTypes.String, nil
	default:
		return nil, errors.Newf("chjoin: unsupported column kind for Arrow export: %s", k)
	}
}

// columnToArrowArray builds an Arrow array via a type switch over the
// concrete column types this module ships (the NumericColumn[T]
// instantiations, StringColumn and FixedStringColumn); any other
// Column implementation is rejected with an error.
func columnToArrowArray(c Column, mem memory.Allocator) (arrow.Array, error) {
	rows := c.Rows()
	nullAt := func(i int) bool {
		nm := c.NullMap()
		return nm != nil && i < len(nm) && nm[i] != 0
	}

	switch v := c.(type) {
	case *NumericColumn[int8]:
		bld := array.NewInt8Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[int16]:
		bld := array.NewInt16Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[int32]:
		bld := array.NewInt32Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[int64]:
		bld := array.NewInt64Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[uint8]:
		bld := array.NewUint8Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[uint16]:
		bld := array.NewUint16Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[uint32]:
		bld := array.NewUint32Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[uint64]:
		bld := array.NewUint64Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[float32]:
		bld := array.NewFloat32Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *NumericColumn[float64]:
		bld := array.NewFloat64Builder(mem)
		defer bld.Release()
		for i, x := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(x)
			}
		}
		return bld.NewArray(), nil
	case *StringColumn:
		bld := array.NewStringBuilder(mem)
		defer bld.Release()
		for i, s := range v.Data() {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(s)
			}
		}
		return bld.NewArray(), nil
	case *FixedStringColumn:
		bld := array.NewStringBuilder(mem)
		defer bld.Release()
		for i := 0; i < rows; i++ {
			if nullAt(i) {
				bld.AppendNull()
			} else {
				bld.Append(string(v.rowBytes(i)))
			}
		}
		return bld.NewArray(), nil
	default:
		return nil, errors.Newf("chjoin: unsupported Column implementation %T for Arrow export", c)
	}
}
