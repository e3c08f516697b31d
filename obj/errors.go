package obj

import "github.com/pkg/errors"

// ---------------------------------------------------------------------------
// Error taxonomy
// ---------------------------------------------------------------------------

// Absence of a capability is normal control flow: Lookup and Resolve report it
// as a null binding. Everything else below is a programmer error that the
// typed API rules out where it can and checks where it cannot.
var (
	// ErrCapabilityNotSupported is returned by Require, and by Invoke when it
	// is handed a null binding.
	ErrCapabilityNotSupported = errors.New("obj: capability not supported")

	// ErrInterfaceMismatch means a binding for one interface was used to
	// dispatch through another.
	ErrInterfaceMismatch = errors.New("obj: interface mismatch")

	// ErrUseAfterDestroy means an operation reached a destroyed handle.
	ErrUseAfterDestroy = errors.New("obj: use after destroy")

	// ErrDoubleDestroy is returned by the second Destroy of a handle.
	ErrDoubleDestroy = errors.New("obj: object already destroyed")

	// ErrDoubleRelease is returned by the second Release of a generated binding.
	ErrDoubleRelease = errors.New("obj: binding already released")

	// ErrBindingReleased means dispatch went through a released generated binding.
	ErrBindingReleased = errors.New("obj: dispatch through released binding")

	// ErrUnknownOperation means Call named an operation the capability does
	// not declare.
	ErrUnknownOperation = errors.New("obj: operation not declared by interface")

	ErrNilObject          = errors.New("obj: nil object or class")
	ErrClassMismatch      = errors.New("obj: receiver has wrong class")
	ErrDuplicateInterface = errors.New("obj: interface bound twice")
	ErrTooManyBindings    = errors.New("obj: too many bindings")
	ErrInvalidBinding     = errors.New("obj: invalid class binding")
	ErrAlreadyRegistered  = errors.New("obj: name already registered")
	ErrUnknownClass       = errors.New("obj: unknown class")
)
