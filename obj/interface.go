package obj

import (
	"fmt"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// Interface: identity of a capability contract
// ---------------------------------------------------------------------------

// Interface describes a capability contract: a name and the ordered
// operations its dispatch table carries.
//
// Interfaces are compared by pointer. Two interfaces with the same name and
// the same operations are still different contracts and never match each
// other during resolution.
type Interface struct {
	id    uint32
	name  string
	ops   []string
	opIDs []OpID
}

var nextInterfaceID atomic.Uint32

// NewInterface creates a new interface and interns its operation names in
// the process-wide operation table.
func NewInterface(name string, ops ...string) *Interface {
	names := make([]string, len(ops))
	copy(names, ops)
	return &Interface{
		id:    nextInterfaceID.Add(1),
		name:  name,
		ops:   names,
		opIDs: Operations.Intern(names...),
	}
}

// ID returns the process-unique interface ID.
func (i *Interface) ID() uint32 {
	return i.id
}

// Name returns the interface name.
func (i *Interface) Name() string {
	return i.name
}

// TableSize returns the number of entry points in the dispatch table.
func (i *Interface) TableSize() int {
	return len(i.ops)
}

// Operations returns the declared operation names in table order.
func (i *Interface) Operations() []string {
	result := make([]string, len(i.ops))
	copy(result, i.ops)
	return result
}

// Operation returns the ID of name if this interface declares it, or NoOp.
func (i *Interface) Operation(name string) OpID {
	for k, op := range i.ops {
		if op == name {
			return i.opIDs[k]
		}
	}
	return NoOp
}

// declaresID reports whether id is one of this interface's operations.
func (i *Interface) declaresID(id OpID) bool {
	for _, op := range i.opIDs {
		if op == id {
			return true
		}
	}
	return false
}

// Declares reports whether the interface declares the operation.
func (i *Interface) Declares(name string) bool {
	return i.Operation(name) >= 0
}

// String implements fmt.Stringer.
func (i *Interface) String() string {
	if i == nil {
		return "<nil interface>"
	}
	return fmt.Sprintf("%s#%d", i.name, i.id)
}

// ---------------------------------------------------------------------------
// Capability: typed interface token
// ---------------------------------------------------------------------------

// Capability is an Interface whose dispatch table has the Go type T.
//
// T is normally a struct of function fields, one per operation, each taking
// the receiver *Object first. Because bindings and dispatch are parameterised
// by T, handing a printable table to a comparable call site does not compile.
type Capability[T any] struct {
	*Interface
}

// NewCapability creates a new typed capability. See NewInterface.
func NewCapability[T any](name string, ops ...string) *Capability[T] {
	return &Capability[T]{Interface: NewInterface(name, ops...)}
}

// iface returns the descriptor, or nil for a nil capability.
func (c *Capability[T]) iface() *Interface {
	if c == nil {
		return nil
	}
	return c.Interface
}
