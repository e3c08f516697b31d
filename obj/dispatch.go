package obj

import "github.com/pkg/errors"

// Invoke calls op with impl's table and o as the receiver.
//
// Nothing touches the table unless o is live, impl is an unreleased,
// non-null binding, and impl is bound to want itself rather than to some
// other interface of the same shape.
func Invoke[T, R any](o *Object, want *Capability[T], impl Impl[T], op func(table T, self *Object) (R, error)) (R, error) {
	var zero R
	if err := checkDispatch(o, want, impl); err != nil {
		return zero, err
	}
	return op(impl.Table(), o)
}

// Do is Invoke for operations that produce only an error.
func Do[T any](o *Object, want *Capability[T], impl Impl[T], op func(table T, self *Object) error) error {
	if err := checkDispatch(o, want, impl); err != nil {
		return err
	}
	return op(impl.Table(), o)
}

// Call is Do for the single operation op. The capability must declare op;
// otherwise the table is never touched and the result is ErrUnknownOperation.
func Call[T any](o *Object, want *Capability[T], op OpID, impl Impl[T], fn func(table T, self *Object) error) error {
	if err := checkDispatch(o, want, impl); err != nil {
		return err
	}
	if !want.declaresID(op) {
		return errors.Wrapf(ErrUnknownOperation, "%s does not declare %s", want.Interface, Operations.Name(op))
	}
	return fn(impl.Table(), o)
}

func checkDispatch[T any](o *Object, want *Capability[T], impl Impl[T]) error {
	if err := o.check(); err != nil {
		return err
	}
	if want == nil {
		return errors.Wrap(ErrInterfaceMismatch, "dispatch without a capability")
	}
	if impl.b.Released() {
		return errors.Wrapf(ErrBindingReleased, "%s on %s", impl.b.iface, o)
	}
	if impl.IsNull() {
		return errors.Wrapf(ErrCapabilityNotSupported, "null binding for %s on %s", want.Interface, o)
	}
	if impl.b.iface != want.iface() {
		return errors.Wrapf(ErrInterfaceMismatch, "binding for %s, want %s", impl.b.iface, want.Interface)
	}
	return nil
}
