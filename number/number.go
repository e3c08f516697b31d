// Package number is a concrete type holding a single small integer. It binds
// the printable capability statically, and also offers a generated binding
// and the raw entry point for callers that assemble their own table.
package number

import (
	"unsafe"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"

	"github.com/chazu/vtab/obj"
	"github.com/chazu/vtab/printable"
)

var log = commonlog.GetLogger("vtab.number")

var (
	ErrNotRepresentable = errors.New("number: value has no single-digit rendering")
	ErrForeignReceiver  = errors.New("number: generated table called with another receiver")
)

// number is the private payload.
type number struct {
	representation int
}

var (
	// Class describes the number type.
	Class *obj.Class

	// PrintableTable is the process-lifetime printable table.
	PrintableTable printable.Table

	// PrintableImpl is the static printable binding.
	PrintableImpl obj.Impl[printable.Table]
)

// Built in init: Print refers to Class, so the class cannot be a plain
// package-level initializer.
func init() {
	PrintableTable = printable.Table{ToString: Print}
	PrintableImpl = obj.Static(printable.Capability, PrintableTable)
	Class = obj.MustClass("number", unsafe.Sizeof(number{}), PrintableImpl.Binding())
}

// New constructs a number object.
func New(value int) (*obj.Object, error) {
	return obj.New(Class, &number{representation: value})
}

// Destroy releases a number object. Destroying a non-number is an
// obj.ErrClassMismatch; destroying twice is an obj.ErrDoubleDestroy.
func Destroy(o *obj.Object) error {
	if o == nil || o.Class() != Class {
		return errors.Wrapf(obj.ErrClassMismatch, "number: Destroy(%s)", o)
	}
	return o.Destroy()
}

// Value returns the number held by o.
func Value(o *obj.Object) (int, error) {
	self, err := obj.Payload[*number](o, Class)
	if err != nil {
		return 0, err
	}
	return self.representation, nil
}

// Print is the toString entry point: it writes the digit for self into
// buf[0] when buf has room for it and a terminator.
func Print(self *obj.Object, buf []byte) error {
	n, err := obj.Payload[*number](self, Class)
	if err != nil {
		return err
	}
	if n.representation < 0 || n.representation > 9 {
		return errors.Wrapf(ErrNotRepresentable, "%d", n.representation)
	}
	if len(buf) > 1 {
		buf[0] = byte(n.representation) + '0'
	}
	return nil
}

// NewRuntimePrintable generates a printable table bound to o alone. The
// caller owns the result and must Release it.
func NewRuntimePrintable(o *obj.Object) (*obj.Generated[printable.Table], error) {
	if o == nil || o.Class() != Class {
		return nil, errors.Wrapf(obj.ErrClassMismatch, "number: NewRuntimePrintable(%s)", o)
	}
	return obj.Generate(o, printable.Capability, func(owner *obj.Object) (printable.Table, error) {
		return printable.Table{
			ToString: func(self *obj.Object, buf []byte) error {
				if self != owner {
					return errors.Wrapf(ErrForeignReceiver, "table for %s called on %s", owner, self)
				}
				return Print(self, buf)
			},
		}, nil
	})
}

// AssemblePrintable builds a caller-scoped printable binding from the public
// entry point, without going through Class.
func AssemblePrintable() obj.Impl[printable.Table] {
	return obj.Assemble(printable.Capability, printable.Table{ToString: Print})
}

// Register adds the number class, and with it the printable interface, to s.
func Register(s *obj.Space) error {
	if err := s.RegisterClass(Class); err != nil {
		return err
	}
	log.Debugf("number class registered (%d byte payload)", Class.InstanceSize())
	return nil
}
