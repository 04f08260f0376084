package kotlinpoet

import (
	"github.com/cockroachdb/errors"
)

// ErrUsage marks errors caused by inconsistent input: malformed format
// strings, mismatched arguments, unbalanced statements, or invalid spec
// combinations. Use errors.Is(err, ErrUsage) to test for it.
var ErrUsage = errors.New("kotlinpoet: usage error")

// usageErrorf returns a new error that matches ErrUsage.
func usageErrorf(format string, args ...interface{}) error {
	return &usageError{cause: errors.NewWithDepthf(1, format, args...)}
}

// usageError matches ErrUsage under both the standard library's errors.Is
// and cockroachdb's, and otherwise behaves like its cause.
type usageError struct {
	cause error
}

func (e *usageError) Error() string { return e.cause.Error() }

func (e *usageError) Unwrap() error { return e.cause }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

// failf panics with a usage error. Builder methods report misuse this way,
// much like regexp.MustCompile. Render entry points recover these panics
// into returned errors (see catch).
func failf(format string, args ...interface{}) {
	panic(usageErrorf(format, args...))
}

// requiref panics with a usage error if cond is false.
func requiref(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(usageErrorf(format, args...))
	}
}

// catch converts a panic raised by failf (or an assertion failure) into an
// error stored in *err. Any other panic is re-raised.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && (errors.Is(e, ErrUsage) || errors.HasAssertionFailure(e)) {
		*err = e
		return
	}
	panic(r)
}

// mustNotFail is used by String methods, which cannot return errors.
func mustNotFail(err error) {
	if err != nil {
		panic(err)
	}
}
