package obj

import (
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// Generated bindings: owned, explicitly released dispatch tables
// ---------------------------------------------------------------------------

// lease tracks the lifetime of one generated table. Every Impl copied out of
// a Generated shares the lease, so releasing the owner poisons all copies.
type lease struct {
	id       uuid.UUID
	released atomic.Bool
}

// Lease is the view of a generated binding a Space uses to report leaks.
type Lease interface {
	LeaseID() uuid.UUID
	Interface() *Interface
	Owner() uuid.UUID
	Released() bool
}

// Generated owns a dispatch table built at run time for one object.
// The creator must call Release exactly once; a forgotten Release shows up in
// Space.Leaks, a second Release returns ErrDoubleRelease.
type Generated[T any] struct {
	impl  Impl[T]
	lease *lease
	owner uuid.UUID
}

// Generate builds a table for o through build and returns the owning handle.
// o must be live and c non-nil.
func Generate[T any](o *Object, c *Capability[T], build func(*Object) (T, error)) (*Generated[T], error) {
	if err := o.check(); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.Wrapf(ErrInterfaceMismatch, "obj: generating for %s without a capability", o)
	}
	table, err := build(o)
	if err != nil {
		return nil, errors.Wrapf(err, "obj: generating %s for %s", c.Name(), o)
	}

	l := &lease{id: uuid.New()}
	g := &Generated[T]{
		impl: Impl[T]{b: Binding{
			iface:  c.Interface,
			table:  table,
			origin: OriginGenerated,
			lease:  l,
		}},
		lease: l,
		owner: o.id,
	}
	log.Debugf("generated %s binding %s for %s", c.Name(), l.id, o)
	return g, nil
}

// Impl returns the binding for dispatch. After Release the returned Impl
// is still a value but Invoke rejects it with ErrBindingReleased.
func (g *Generated[T]) Impl() Impl[T] {
	return g.impl
}

// Release frees the table. Only the first call succeeds.
func (g *Generated[T]) Release() error {
	if !g.lease.released.CompareAndSwap(false, true) {
		log.Warningf("double release of %s binding %s", g.impl.b.iface.Name(), g.lease.id)
		return errors.Wrapf(ErrDoubleRelease, "lease %s", g.lease.id)
	}
	// Drop the owner's reference to the table; copies are poisoned by the lease.
	g.impl.b.table = nil
	log.Debugf("released %s binding %s", g.impl.b.iface.Name(), g.lease.id)
	return nil
}

// Released reports whether Release has been called.
func (g *Generated[T]) Released() bool {
	return g.lease.released.Load()
}

// LeaseID returns the unique ID of this generated table.
func (g *Generated[T]) LeaseID() uuid.UUID {
	return g.lease.id
}

// Interface returns the bound interface.
func (g *Generated[T]) Interface() *Interface {
	return g.impl.b.iface
}

// Owner returns the ID of the object the table was generated for.
func (g *Generated[T]) Owner() uuid.UUID {
	return g.owner
}
