//go:build !appengine && !gopherjs && !purego

// NB: other environments where unsafe is inappropriate should use the
// "purego" build tag.

package kotlinpoet

import (
	"reflect"
	"unsafe"
)

func getField(v reflect.Value, index int) (reflect.Value, bool) {
	fld := v.Field(index)
	if !fld.IsValid() || fld.CanInterface() {
		return fld, true
	}
	if !fld.CanAddr() {
		// a struct passed by value; copy it so its fields are addressable
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		fld = c.Field(index)
	}
	// Reflection won't call Interface() on a value reached through an
	// unexported field, so build an equivalent value at the same address.
	return reflect.NewAt(fld.Type(), unsafe.Pointer(fld.UnsafeAddr())).Elem(), true
}
