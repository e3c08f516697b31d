package obj

import "github.com/pkg/errors"

// Lookup finds the binding o's class declares for want. A missing capability
// is not an error: the result is NullBinding and a nil error.
func Lookup(o *Object, want *Interface) (Binding, error) {
	if err := o.check(); err != nil {
		return NullBinding, err
	}
	if want == nil {
		return NullBinding, nil
	}
	return o.class.find(want), nil
}

// Resolve is the typed form of Lookup. A missing capability, or a nil c,
// yields a null Impl and a nil error; check IsNull before dispatching.
func Resolve[T any](o *Object, c *Capability[T]) (Impl[T], error) {
	b, err := Lookup(o, c.iface())
	if err != nil {
		return Impl[T]{}, err
	}
	return AsImpl(c, b)
}

// Require is Resolve for callers that treat a missing capability as an error.
func Require[T any](o *Object, c *Capability[T]) (Impl[T], error) {
	impl, err := Resolve(o, c)
	if err != nil {
		return impl, err
	}
	if impl.IsNull() {
		return impl, errors.Wrapf(ErrCapabilityNotSupported, "%s does not implement %s", o, c.iface())
	}
	return impl, nil
}

// Implements reports whether o is live and its class binds want.
func Implements(o *Object, want *Interface) bool {
	b, err := Lookup(o, want)
	return err == nil && !b.IsNull()
}
