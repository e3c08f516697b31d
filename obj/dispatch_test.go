package obj

import (
	"errors"
	"testing"
)

func TestInvokeStatic(t *testing.T) {
	o := newBox("a", 5)
	n, err := Invoke(o, sizeCap, boxSizeImpl, func(t sizeTable, self *Object) (int, error) {
		return t.Size(self)
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if n != 5 {
		t.Errorf("size = %d, want 5", n)
	}
}

// The same operation through static, generated, assembled and resolved
// bindings gives the same answer.
func TestInvokeStrategiesAgree(t *testing.T) {
	o := newBox("same", 1)

	g, err := Generate(o, labelCap, func(*Object) (labelTable, error) {
		return labelTable{Label: boxLabel}, nil
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	defer g.Release()

	resolved, err := Resolve(o, labelCap)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	impls := map[string]Impl[labelTable]{
		"static":    boxLabelImpl,
		"generated": g.Impl(),
		"assembled": Assemble(labelCap, labelTable{Label: boxLabel}),
		"resolved":  resolved,
	}
	for name, impl := range impls {
		got, err := label(o, impl)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if got != "box:same" {
			t.Errorf("%s: label = %q, want box:same", name, got)
		}
	}
}

func TestInvokeInterfaceMismatch(t *testing.T) {
	o := newBox("a", 1)
	called := false
	wrong := Static(titleCap, labelTable{Label: func(*Object) (string, error) {
		called = true
		return "", nil
	}})

	_, err := Invoke(o, labelCap, wrong, func(t labelTable, self *Object) (string, error) {
		return t.Label(self)
	})
	if !errors.Is(err, ErrInterfaceMismatch) {
		t.Errorf("err = %v, want ErrInterfaceMismatch", err)
	}
	if called {
		t.Error("table was called through a mismatched binding")
	}
}

func TestInvokeNullBinding(t *testing.T) {
	o := newBox("a", 1)
	var null Impl[labelTable]
	err := Do(o, labelCap, null, func(labelTable, *Object) error {
		t.Error("op called with a null binding")
		return nil
	})
	if !errors.Is(err, ErrCapabilityNotSupported) {
		t.Errorf("err = %v, want ErrCapabilityNotSupported", err)
	}
}

func TestInvokeAfterDestroy(t *testing.T) {
	o := newBox("a", 1)
	o.Destroy()
	_, err := label(o, boxLabelImpl)
	if !errors.Is(err, ErrUseAfterDestroy) {
		t.Errorf("err = %v, want ErrUseAfterDestroy", err)
	}
}

func TestInvokeNilObject(t *testing.T) {
	if _, err := label(nil, boxLabelImpl); !errors.Is(err, ErrNilObject) {
		t.Errorf("err = %v, want ErrNilObject", err)
	}
}

func TestDoPropagatesOperationError(t *testing.T) {
	o := newBox("a", 1)
	sentinel := errors.New("op failed")
	err := Do(o, labelCap, boxLabelImpl, func(labelTable, *Object) error {
		return sentinel
	})
	if err != sentinel {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestCallDeclaredOperation(t *testing.T) {
	o := newBox("a", 1)
	var got string
	err := Call(o, labelCap, labelCap.Operation("label"), boxLabelImpl, func(t labelTable, self *Object) error {
		var err error
		got, err = t.Label(self)
		return err
	})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "box:a" {
		t.Errorf("label = %q, want box:a", got)
	}
}

func TestCallUndeclaredOperation(t *testing.T) {
	o := newBox("a", 1)
	size := sizeCap.Operation("size")
	err := Call(o, labelCap, size, boxLabelImpl, func(labelTable, *Object) error {
		t.Error("table called for an operation label does not declare")
		return nil
	})
	if !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("err = %v, want ErrUnknownOperation", err)
	}
	if err := Call(o, labelCap, NoOp, boxLabelImpl, func(labelTable, *Object) error { return nil }); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Call(NoOp) err = %v, want ErrUnknownOperation", err)
	}
}

func TestInvokeNilCapability(t *testing.T) {
	o := newBox("a", 1)
	err := Do(o, (*Capability[labelTable])(nil), boxLabelImpl, func(labelTable, *Object) error {
		t.Error("op called without a capability")
		return nil
	})
	if !errors.Is(err, ErrInterfaceMismatch) {
		t.Errorf("err = %v, want ErrInterfaceMismatch", err)
	}
}
