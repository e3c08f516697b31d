package obj

import (
	"fmt"

	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// Fixture types shared by the tests in this package
// ---------------------------------------------------------------------------

type labelTable struct {
	Label func(self *Object) (string, error)
}

type sizeTable struct {
	Size func(self *Object) (int, error)
}

type box struct {
	name  string
	items int
}

var errNotBox = errors.New("not a box")

var (
	labelCap = NewCapability[labelTable]("label", "label")
	sizeCap  = NewCapability[sizeTable]("size", "size")

	// Same shape and operations as labelCap, different identity.
	titleCap = NewCapability[labelTable]("label", "label")
)

func boxLabel(self *Object) (string, error) {
	b, ok := self.instance.(*box)
	if !ok {
		return "", errNotBox
	}
	return fmt.Sprintf("box:%s", b.name), nil
}

func boxSize(self *Object) (int, error) {
	b, ok := self.instance.(*box)
	if !ok {
		return 0, errNotBox
	}
	return b.items, nil
}

var (
	boxLabelImpl = Static(labelCap, labelTable{Label: boxLabel})
	boxSizeImpl  = Static(sizeCap, sizeTable{Size: boxSize})
	boxClass     = MustClass("box", 16, boxLabelImpl.Binding(), boxSizeImpl.Binding())

	// bagClass binds only labelCap.
	bagClass = MustClass("bag", 8, boxLabelImpl.Binding())
)

func newBox(name string, items int) *Object {
	o, err := New(boxClass, &box{name: name, items: items})
	if err != nil {
		panic(err)
	}
	return o
}

func label(o *Object, impl Impl[labelTable]) (string, error) {
	return Invoke(o, labelCap, impl, func(t labelTable, self *Object) (string, error) {
		return t.Label(self)
	})
}
