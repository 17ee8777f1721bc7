package chjoin

import "go.uber.org/zap"

// pkgLogger is the package-level logger used for build/seal/size-limit
// diagnostics. It defaults to a no-op logger so the module is silent
// until a host opts in, but still logs structurally once one is
// installed.
var pkgLogger = zap.NewNop()

// SetLogger installs the *zap.Logger used for this package's internal
// diagnostics. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		pkgLogger = zap.NewNop()
		return
	}
	pkgLogger = l
}
