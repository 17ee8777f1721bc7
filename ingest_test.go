package chjoin

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func TestAddRightBlockEnforcesSizeLimits(t *testing.T) {
	desc := Descriptor{
		Kind: Inner,
		Strictness: StrictAny,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
		SizeLimits: SizeLimits{MaxRows: 2},
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	require.NoError(t, err)

	right := mustBlock(t, NewInt64Column("k", []int64{1, 2, 3}), NewStringColumn("v", []string{"a", "b", "c"}))
	_, err = hj.AddRightBlock(right, true)
	require.True(t, errors.Is(err, ErrSetSizeLimitExceeded), "got %v", err)
}

func TestAddRightBlockRejectsAfterSeal(t *testing.T) {
	desc := Descriptor{
		Kind: Inner,
		Strictness: StrictAny,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	require.NoError(t, err)

	hj.seal()
	_, err = hj.AddRightBlock(mustBlock(t, NewInt64Column("k", []int64{1}), NewStringColumn("v", []string{"a"})), false)
	require.Error(t, err)
}

func TestSavedSchemaOmitsKeysForSingleDisjunctInnerWithForceHashJoin(t *testing.T) {
	desc := Descriptor{
		Kind: Inner,
		Strictness: StrictAny,
		KeyNamesLeft: [][]string{{"k"}},
		KeyNamesRight: [][]string{{"k"}},
		AddedColumnNames: []string{"v"},
		ForceHashJoin: true,
	}
	hj, err := New(desc, rightSampleKV(t), DefaultConfig())
	require.NoError(t, err)

	sch := hj.computeSavedSchema()
	require.False(t, sch.keyColumns, "ForceHashJoin on a single-disjunct Inner join must drop key columns from storage")
	require.Equal(t, []string{"v"}, sch.columnNames)
}
