// Package printable defines the printable capability: an object that can
// render itself into a small, caller-supplied text buffer.
package printable

import (
	"io"

	"github.com/pkg/errors"

	"github.com/chazu/vtab/obj"
)

// BufferSize is the size of the buffer Println renders into: one content
// byte and one terminator.
const BufferSize = 2

// Table is the printable dispatch table.
type Table struct {
	// ToString renders self into buf. It may use at most len(buf)-1 bytes;
	// the last byte belongs to the caller.
	ToString func(self *obj.Object, buf []byte) error
}

// Capability identifies the printable interface.
var Capability = obj.NewCapability[Table]("printable", "toString")

// ToString is the ID of the toString operation.
var ToString = Capability.Operation("toString")

// ErrNoEntryPoint means a table was bound with a nil ToString.
var ErrNoEntryPoint = errors.New("printable: table has no toString entry point")

// Render dispatches toString through impl into a fresh buffer ending in a
// newline.
func Render(self *obj.Object, impl obj.Impl[Table]) ([]byte, error) {
	buf := []byte{0, '\n'}
	err := obj.Call(self, Capability, ToString, impl, func(t Table, self *obj.Object) error {
		if t.ToString == nil {
			return ErrNoEntryPoint
		}
		return t.ToString(self, buf)
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Println renders self through impl and writes the whole buffer to w.
func Println(w io.Writer, self *obj.Object, impl obj.Impl[Table]) error {
	buf, err := Render(self, impl)
	if err != nil {
		return err
	}
	n, err := w.Write(buf)
	if err != nil {
		return errors.Wrap(err, "printable: write")
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}
