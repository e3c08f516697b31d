package number

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chazu/vtab/obj"
	"github.com/chazu/vtab/printable"
)

type sortTable struct {
	Less func(a, b *obj.Object) (bool, error)
}

var sortable = obj.NewCapability[sortTable]("sortable", "less")

func newNumber(t *testing.T, v int) *obj.Object {
	t.Helper()
	o, err := New(v)
	if err != nil {
		t.Fatalf("New(%d): %v", v, err)
	}
	return o
}

func TestClass(t *testing.T) {
	if Class.Name() != "number" {
		t.Errorf("Name() = %q, want number", Class.Name())
	}
	if Class.InstanceSize() == 0 {
		t.Error("InstanceSize() should be the payload size")
	}
	if Class.NumBindings() != 1 || !Class.Implements(printable.Capability.Interface) {
		t.Errorf("number should bind exactly printable, has %v", Class.Interfaces())
	}
	if PrintableImpl.Origin() != obj.OriginStatic {
		t.Errorf("PrintableImpl origin = %v, want static", PrintableImpl.Origin())
	}
}

func TestNewAndValue(t *testing.T) {
	o := newNumber(t, 7)
	v, err := Value(o)
	if err != nil || v != 7 {
		t.Errorf("Value() = %d, %v; want 7", v, err)
	}
}

func TestPrintThree(t *testing.T) {
	o := newNumber(t, 3)
	defer Destroy(o)

	impl, err := obj.Resolve(o, printable.Capability)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if impl.IsNull() {
		t.Fatal("number should be printable")
	}

	var out bytes.Buffer
	if err := printable.Println(&out, o, impl); err != nil {
		t.Fatalf("Println: %v", err)
	}
	if !bytes.Equal(out.Bytes(), []byte{'3', '\n'}) {
		t.Errorf("output = %q, want %q", out.Bytes(), "3\n")
	}
}

func TestPrintZero(t *testing.T) {
	o := newNumber(t, 0)
	defer Destroy(o)

	var out bytes.Buffer
	if err := printable.Println(&out, o, PrintableImpl); err != nil {
		t.Fatalf("Println: %v", err)
	}
	if out.String() != "0\n" {
		t.Errorf("output = %q, want %q", out.String(), "0\n")
	}
}

// Every binding strategy renders the same bytes.
func TestStrategiesAgree(t *testing.T) {
	for v := 0; v <= 9; v++ {
		o := newNumber(t, v)

		g, err := NewRuntimePrintable(o)
		if err != nil {
			t.Fatalf("NewRuntimePrintable: %v", err)
		}
		resolved, err := obj.Require(o, printable.Capability)
		if err != nil {
			t.Fatalf("Require: %v", err)
		}

		impls := []struct {
			name string
			impl obj.Impl[printable.Table]
		}{
			{"generated", g.Impl()},
			{"assembled", AssemblePrintable()},
			{"static", PrintableImpl},
			{"resolved", resolved},
		}

		want := []byte{byte('0' + v), '\n'}
		for _, tt := range impls {
			var out bytes.Buffer
			if err := printable.Println(&out, o, tt.impl); err != nil {
				t.Errorf("%d via %s: %v", v, tt.name, err)
				continue
			}
			if !bytes.Equal(out.Bytes(), want) {
				t.Errorf("%d via %s = %q, want %q", v, tt.name, out.Bytes(), want)
			}
		}

		if err := g.Release(); err != nil {
			t.Errorf("Release: %v", err)
		}
		if err := Destroy(o); err != nil {
			t.Errorf("Destroy: %v", err)
		}
	}
}

func TestUnsupportedCapability(t *testing.T) {
	o := newNumber(t, 3)
	defer Destroy(o)

	impl, err := obj.Resolve(o, sortable)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !impl.IsNull() {
		t.Fatal("number should not be sortable")
	}
	err = obj.Do(o, sortable, impl, func(sortTable, *obj.Object) error {
		t.Error("dispatch attempted through a null binding")
		return nil
	})
	if !errors.Is(err, obj.ErrCapabilityNotSupported) {
		t.Errorf("err = %v, want ErrCapabilityNotSupported", err)
	}
}

func TestNotRepresentable(t *testing.T) {
	for _, v := range []int{-1, 10, 42} {
		o := newNumber(t, v)
		if _, err := printable.Render(o, PrintableImpl); !errors.Is(err, ErrNotRepresentable) {
			t.Errorf("Render(%d) err = %v, want ErrNotRepresentable", v, err)
		}
		Destroy(o)
	}
}

func TestPrintShortBuffer(t *testing.T) {
	o := newNumber(t, 5)
	defer Destroy(o)

	buf := []byte{'?'}
	if err := Print(o, buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if buf[0] != '?' {
		t.Errorf("Print wrote into a buffer with no room for a terminator: %q", buf)
	}
}

func TestLifecycle(t *testing.T) {
	o := newNumber(t, 4)
	if err := Destroy(o); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if err := Destroy(o); !errors.Is(err, obj.ErrDoubleDestroy) {
		t.Errorf("second Destroy err = %v, want ErrDoubleDestroy", err)
	}
	if _, err := Value(o); !errors.Is(err, obj.ErrUseAfterDestroy) {
		t.Errorf("Value after Destroy err = %v, want ErrUseAfterDestroy", err)
	}
	if _, err := obj.Resolve(o, printable.Capability); !errors.Is(err, obj.ErrUseAfterDestroy) {
		t.Errorf("Resolve after Destroy err = %v, want ErrUseAfterDestroy", err)
	}
	var out bytes.Buffer
	if err := printable.Println(&out, o, PrintableImpl); !errors.Is(err, obj.ErrUseAfterDestroy) {
		t.Errorf("Println after Destroy err = %v, want ErrUseAfterDestroy", err)
	}
	if out.Len() != 0 {
		t.Errorf("destroyed number printed %q", out.String())
	}
	if _, err := NewRuntimePrintable(o); !errors.Is(err, obj.ErrUseAfterDestroy) {
		t.Errorf("NewRuntimePrintable after Destroy err = %v, want ErrUseAfterDestroy", err)
	}
}

func TestDestroyForeignObject(t *testing.T) {
	other := obj.MustClass("other", 1)
	o, err := obj.New(other, struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if err := Destroy(o); !errors.Is(err, obj.ErrClassMismatch) {
		t.Errorf("err = %v, want ErrClassMismatch", err)
	}
	if !o.Alive() {
		t.Error("Destroy of a foreign object must not destroy it")
	}
	if err := Print(o, make([]byte, 2)); !errors.Is(err, obj.ErrClassMismatch) {
		t.Errorf("Print(foreign) err = %v, want ErrClassMismatch", err)
	}
	if _, err := NewRuntimePrintable(o); !errors.Is(err, obj.ErrClassMismatch) {
		t.Errorf("NewRuntimePrintable(foreign) err = %v, want ErrClassMismatch", err)
	}
}

func TestRuntimePrintableRelease(t *testing.T) {
	a := newNumber(t, 1)
	b := newNumber(t, 2)
	defer Destroy(a)
	defer Destroy(b)

	g, err := NewRuntimePrintable(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := printable.Render(b, g.Impl()); !errors.Is(err, ErrForeignReceiver) {
		t.Errorf("foreign receiver err = %v, want ErrForeignReceiver", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if err := g.Release(); !errors.Is(err, obj.ErrDoubleRelease) {
		t.Errorf("second Release err = %v, want ErrDoubleRelease", err)
	}
	if _, err := printable.Render(a, g.Impl()); !errors.Is(err, obj.ErrBindingReleased) {
		t.Errorf("Render after Release err = %v, want ErrBindingReleased", err)
	}
}

func TestRegister(t *testing.T) {
	s := obj.NewSpace()
	if err := Register(s); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if s.Class("number") != Class {
		t.Error("number class not registered")
	}
	if s.Interface("printable") != printable.Capability.Interface {
		t.Error("printable interface not registered")
	}
}
