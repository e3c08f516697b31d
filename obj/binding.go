package obj

import (
	"fmt"

	"github.com/pkg/errors"
)

// Origin records how a binding's dispatch table came to exist, and so who
// is responsible for its lifetime.
type Origin uint8

const (
	OriginNone      Origin = iota // null binding
	OriginStatic                  // process lifetime, shared, never freed
	OriginGenerated               // owned by its creator, released explicitly
	OriginAssembled               // borrowed, valid for the assembling caller's scope
)

func (o Origin) String() string {
	switch o {
	case OriginStatic:
		return "static"
	case OriginGenerated:
		return "generated"
	case OriginAssembled:
		return "assembled"
	default:
		return "none"
	}
}

// ---------------------------------------------------------------------------
// Binding: an interface paired with a dispatch table
// ---------------------------------------------------------------------------

// Binding pairs an Interface with a dispatch table that implements it.
// The zero Binding is the null binding: "no implementation".
type Binding struct {
	iface  *Interface
	table  any
	origin Origin
	lease  *lease // non-nil only for generated bindings
}

// NullBinding is returned by Lookup when the class lacks the interface.
var NullBinding = Binding{}

// Interface returns the bound interface, or nil for the null binding.
func (b Binding) Interface() *Interface {
	return b.iface
}

// Table returns the untyped dispatch table.
func (b Binding) Table() any {
	return b.table
}

// Origin returns how the binding was constructed.
func (b Binding) Origin() Origin {
	return b.origin
}

// IsNull reports whether the binding carries no implementation.
func (b Binding) IsNull() bool {
	return b.iface == nil || b.table == nil
}

// Released reports whether a generated binding has been released.
// Static and assembled bindings are never released.
func (b Binding) Released() bool {
	return b.lease != nil && b.lease.released.Load()
}

// String implements fmt.Stringer.
func (b Binding) String() string {
	if b.IsNull() {
		return "<null binding>"
	}
	return fmt.Sprintf("%s(%s)", b.iface.Name(), b.origin)
}

// ---------------------------------------------------------------------------
// Impl: typed binding
// ---------------------------------------------------------------------------

// Impl is a Binding whose table is known to have type T. It is the single
// consumer-facing shape produced by all three construction strategies and by
// resolution.
type Impl[T any] struct {
	b Binding
}

// Binding returns the untyped binding.
func (i Impl[T]) Binding() Binding {
	return i.b
}

// Interface returns the bound interface, or nil for a null Impl.
func (i Impl[T]) Interface() *Interface {
	return i.b.iface
}

// Origin returns how the binding was constructed.
func (i Impl[T]) Origin() Origin {
	return i.b.origin
}

// IsNull reports whether the Impl carries no implementation.
func (i Impl[T]) IsNull() bool {
	return i.b.IsNull()
}

// Table returns the dispatch table, or the zero T for a null Impl.
// Prefer Invoke, which checks the interface and lifetime first.
func (i Impl[T]) Table() T {
	t, _ := i.b.table.(T)
	return t
}

// Static binds a process-lifetime table to c. A nil c gives a null Impl. This is the binding kind a
// Class carries.
func Static[T any](c *Capability[T], table T) Impl[T] {
	return Impl[T]{b: Binding{iface: c.iface(), table: table, origin: OriginStatic}}
}

// Assemble binds a caller-built table to c without the object's type taking
// part. The Impl borrows table: it is only meaningful for as long as the
// caller keeps the entry points it was built from valid.
func Assemble[T any](c *Capability[T], table T) Impl[T] {
	return Impl[T]{b: Binding{iface: c.iface(), table: table, origin: OriginAssembled}}
}

// AsImpl converts an untyped binding to an Impl for c. The null binding
// converts to a null Impl. A binding for a different interface, or whose
// table does not have type T, is an ErrInterfaceMismatch.
func AsImpl[T any](c *Capability[T], b Binding) (Impl[T], error) {
	if b.IsNull() {
		return Impl[T]{}, nil
	}
	if b.iface != c.iface() {
		return Impl[T]{}, errors.Wrapf(ErrInterfaceMismatch, "binding for %s, want %s", b.iface, c.iface())
	}
	if _, ok := b.table.(T); !ok {
		return Impl[T]{}, errors.Wrapf(ErrInterfaceMismatch, "table %T is not the %s shape", b.table, c.iface())
	}
	return Impl[T]{b: b}, nil
}
