package chjoin

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors for the operator's error taxonomy. Callers identify
// them with errors.Is; the core always wraps an underlying cause with
// errors.Wrap/Wrapf rather than returning a bare sentinel, so stack
// traces survive across the package boundary.
var (
	ErrNotImplemented = errors.New("chjoin: not implemented")
	ErrNoSuchColumnInTable = errors.New("chjoin: no such column in table")
	ErrIncompatibleTypeOfJoin = errors.New("chjoin: incompatible join kind/strictness combination")
	ErrUnsupportedJoinKeys = errors.New("chjoin: unsupported join keys")
	ErrSyntaxError = errors.New("chjoin: syntax error")
	ErrSetSizeLimitExceeded = errors.New("chjoin: right table size limit exceeded")
	ErrTypeMismatch = errors.New("chjoin: type mismatch between left and right key columns")
	ErrNumberOfArgumentsDontMatch = errors.New("chjoin: number of arguments doesn't match")
)

// errLogicalf raises a LogicalError: an internal contract violation
// that is never retried. cockroachdb/errors'
// AssertionFailedf is exactly this "should be unreachable" semantics
// and carries a stack trace for diagnosis.
func errLogicalf(format string, args ...interface{}) error {
	return errors.AssertionFailedf(format, args...)
}

func errColumnLengthMismatch(name string, got, want int) error {
	return errors.Wrapf(ErrUnsupportedJoinKeys, "column %q has %d rows, expected %d", name, got, want)
}

func errNoSuchColumn(name string) error {
	return errors.Wrapf(ErrNoSuchColumnInTable, "column %q", name)
}

func errIncompatible(format string, args ...interface{}) error {
	return errors.Wrapf(ErrIncompatibleTypeOfJoin, format, args...)
}

func errSizeLimit(kind string, limit uint64) error {
	return errors.Wrapf(ErrSetSizeLimitExceeded, "%s limit %d exceeded", kind, limit)
}

func errTypeMismatch(leftKind, rightKind ColumnKind, name string) error {
	return errors.Wrapf(ErrTypeMismatch, "key %q: left is %s, right is %s", name, leftKind, rightKind)
}
