package kotlinpoet

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// Log field names.
const (
	fieldFile      = "file"
	fieldPackage   = "package"
	fieldCanonical = "canonical"
	fieldAlias     = "alias"
	fieldSimple    = "simple_name"
	fieldImports   = "imports"
	fieldPath      = "path"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger installs the logger used for render diagnostics. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l)
}

// Logger returns the logger currently in use.
func Logger() *zap.Logger {
	return logger.Load()
}
