package kotlinpoet

import (
	"github.com/google/uuid"
)

// NameAllocator assigns Kotlin identifier names to avoid collisions,
// keywords, and invalid characters. To use, first create an instance and
// allocate all of the names that you need. Typically this is a mix of
// user-supplied names and constants:
//
//	names := kotlinpoet.NewNameAllocator()
//	for _, property := range properties {
//		names.NewNameWithTag(property.Name(), property)
//	}
//	names.NewNameWithTag("sb", "string builder")
//
// Pass a unique tag object to each allocation. The tag scopes the name, and
// can be used to look up the allocated name later. Typically the tag is the
// object that is being named.
//
// A NameAllocator is not thread-safe.
type NameAllocator struct {
	allocated map[string]struct{}
	tagToName map[interface{}]string
}

// NewNameAllocator returns an allocator that treats all Kotlin keywords as
// already taken.
func NewNameAllocator() *NameAllocator {
	a := NewEmptyNameAllocator()
	for k := range keywords {
		a.allocated[k] = struct{}{}
	}
	return a
}

// NewEmptyNameAllocator returns an allocator with no preallocated names.
func NewEmptyNameAllocator() *NameAllocator {
	return &NameAllocator{
		allocated: map[string]struct{}{},
		tagToName: map[interface{}]string{},
	}
}

// NewName returns a new name based on suggestion that will not be a
// duplicate of any name allocated so far. The name is bound to a random tag
// that the caller never sees.
func (a *NameAllocator) NewName(suggestion string) string {
	return a.NewNameWithTag(suggestion, uuid.NewString())
}

// NewNameWithTag returns a new name based on suggestion and binds it to tag.
// The tag must be comparable and must not have been used before.
func (a *NameAllocator) NewNameWithTag(suggestion string, tag interface{}) string {
	result := toIdentifier(suggestion)
	for {
		if _, taken := a.allocated[result]; !taken {
			break
		}
		result += "_"
	}
	if prev, ok := a.tagToName[tag]; ok {
		failf("tag %v cannot be used for both '%s' and '%s'", tag, prev, result)
	}
	a.allocated[result] = struct{}{}
	a.tagToName[tag] = result
	return result
}

// Get returns the name allocated for tag. It panics with a usage error if the
// tag is unknown.
func (a *NameAllocator) Get(tag interface{}) string {
	name, ok := a.tagToName[tag]
	requiref(ok, "unknown tag: %v", tag)
	return name
}

// Contains reports whether a name was allocated for tag.
func (a *NameAllocator) Contains(tag interface{}) bool {
	_, ok := a.tagToName[tag]
	return ok
}

// Copy returns an independent allocator with the same state. Use it to
// allocate names in nested scopes.
func (a *NameAllocator) Copy() *NameAllocator {
	c := NewEmptyNameAllocator()
	for k := range a.allocated {
		c.allocated[k] = struct{}{}
	}
	for k, v := range a.tagToName {
		c.tagToName[k] = v
	}
	return c
}
