package obj

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// Object: handle pairing a class with an opaque payload
// ---------------------------------------------------------------------------

// Object is the handle callers pass around. The payload's shape is private to
// the package that defines the class; everyone else sees only the class and
// the interfaces it binds.
//
// An Object is live from New until Destroy. Destroy drops the payload and
// poisons the handle: resolution, dispatch and payload access on a destroyed
// handle return ErrUseAfterDestroy.
type Object struct {
	id        uuid.UUID
	class     *Class
	instance  any
	destroyed atomic.Bool
}

// New creates a live handle for payload. Type-specific constructors wrap it.
func New(class *Class, payload any) (*Object, error) {
	if class == nil {
		return nil, errors.Wrap(ErrNilObject, "obj: New without class")
	}
	if payload == nil {
		return nil, errors.Wrapf(ErrNilObject, "obj: New(%s) without payload", class.Name())
	}
	return &Object{
		id:       uuid.New(),
		class:    class,
		instance: payload,
	}, nil
}

// ID returns the handle's unique ID.
func (o *Object) ID() uuid.UUID {
	return o.id
}

// Class returns the object's class. It stays valid after Destroy.
func (o *Object) Class() *Class {
	return o.class
}

// Alive reports whether the handle has not been destroyed.
func (o *Object) Alive() bool {
	return o != nil && !o.destroyed.Load()
}

// Destroy releases the payload. The second call returns ErrDoubleDestroy and
// changes nothing.
func (o *Object) Destroy() error {
	if o == nil {
		return ErrNilObject
	}
	if !o.destroyed.CompareAndSwap(false, true) {
		log.Warningf("double destroy of %s", o)
		return errors.Wrapf(ErrDoubleDestroy, "%s", o)
	}
	o.instance = nil
	log.Debugf("destroyed %s", o)
	return nil
}

// check validates the handle before any lookup or dispatch.
func (o *Object) check() error {
	if o == nil || o.class == nil {
		return ErrNilObject
	}
	if o.destroyed.Load() {
		return errors.Wrapf(ErrUseAfterDestroy, "%s", o)
	}
	return nil
}

// String implements fmt.Stringer.
func (o *Object) String() string {
	if o == nil {
		return "<nil object>"
	}
	if o.class == nil {
		return fmt.Sprintf("<?> %s", o.id)
	}
	return fmt.Sprintf("<%s %s>", o.class.Name(), o.id)
}

// Payload returns o's payload as P after checking that o is a live instance
// of class. Entry points use it to reach their receiver's private state.
func Payload[P any](o *Object, class *Class) (P, error) {
	var zero P
	if err := o.check(); err != nil {
		return zero, err
	}
	if o.class != class {
		return zero, errors.Wrapf(ErrClassMismatch, "%s is not a %s", o, class.Name())
	}
	p, ok := o.instance.(P)
	if !ok {
		return zero, errors.Wrapf(ErrClassMismatch, "%s payload is %T", o, o.instance)
	}
	return p, nil
}
