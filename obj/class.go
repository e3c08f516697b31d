package obj

import (
	"fmt"

	"github.com/pkg/errors"
)

// MaxBindings is the largest number of interfaces one class may bind.
const MaxBindings = 256

// ---------------------------------------------------------------------------
// Class: static description of a concrete type
// ---------------------------------------------------------------------------

// Class describes a concrete type: the size of its instance payload and the
// fixed set of interfaces every instance supports.
//
// A Class is built once, when its type is defined, and is read-only after
// that. Each interface appears at most once in its bindings, and every binding
// is static.
type Class struct {
	name         string
	instanceSize uintptr
	bindings     []Binding
}

// NewClass creates a class from its static bindings, in resolution order.
func NewClass(name string, instanceSize uintptr, bindings ...Binding) (*Class, error) {
	if len(bindings) > MaxBindings {
		return nil, errors.Wrapf(ErrTooManyBindings, "class %s has %d, max %d", name, len(bindings), MaxBindings)
	}

	seen := make(map[*Interface]bool, len(bindings))
	for i, b := range bindings {
		if b.IsNull() {
			return nil, errors.Wrapf(ErrInvalidBinding, "class %s binding %d is null", name, i)
		}
		if b.origin != OriginStatic {
			return nil, errors.Wrapf(ErrInvalidBinding, "class %s binding %d for %s is %s, want static",
				name, i, b.iface.Name(), b.origin)
		}
		if seen[b.iface] {
			return nil, errors.Wrapf(ErrDuplicateInterface, "class %s binds %s twice", name, b.iface)
		}
		seen[b.iface] = true
	}

	c := &Class{
		name:         name,
		instanceSize: instanceSize,
		bindings:     make([]Binding, len(bindings)),
	}
	copy(c.bindings, bindings)
	return c, nil
}

// MustClass is like NewClass but panics on error. Use it for package-level
// class definitions.
func MustClass(name string, instanceSize uintptr, bindings ...Binding) *Class {
	c, err := NewClass(name, instanceSize, bindings...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string {
	return c.name
}

// InstanceSize returns the payload size in bytes.
func (c *Class) InstanceSize() uintptr {
	return c.instanceSize
}

// NumBindings returns the number of bound interfaces.
func (c *Class) NumBindings() int {
	return len(c.bindings)
}

// Bindings returns a copy of the bindings in resolution order.
func (c *Class) Bindings() []Binding {
	result := make([]Binding, len(c.bindings))
	copy(result, c.bindings)
	return result
}

// Interfaces returns the bound interfaces in resolution order.
func (c *Class) Interfaces() []*Interface {
	result := make([]*Interface, len(c.bindings))
	for i, b := range c.bindings {
		result[i] = b.iface
	}
	return result
}

// find scans the bindings for want by identity. First match wins.
func (c *Class) find(want *Interface) Binding {
	for _, b := range c.bindings {
		if b.iface == want {
			return b
		}
	}
	return NullBinding
}

// Implements reports whether instances of c support want.
func (c *Class) Implements(want *Interface) bool {
	return !c.find(want).IsNull()
}

// String implements fmt.Stringer.
func (c *Class) String() string {
	return fmt.Sprintf("%s[%d]", c.name, len(c.bindings))
}
