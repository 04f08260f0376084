//go:build appengine || gopherjs || purego

// NB: other environments where unsafe is inappropriate should use the
// "purego" build tag.

package kotlinpoet

import (
	"reflect"
)

func getField(v reflect.Value, index int) (reflect.Value, bool) {
	fld := v.Field(index)
	// Without unsafe, unexported fields are skipped.
	return fld, !fld.IsValid() || fld.CanInterface()
}
