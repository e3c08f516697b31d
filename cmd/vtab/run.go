package main

import (
	"fmt"
	"io"

	"github.com/tliron/commonlog"

	"github.com/chazu/vtab/manifest"
	"github.com/chazu/vtab/number"
	"github.com/chazu/vtab/obj"
	"github.com/chazu/vtab/obj/wire"
	"github.com/chazu/vtab/printable"
)

var log = commonlog.GetLogger("vtab.cmd")

// orderTable is a capability no demo type implements; the resolved strategy
// probes for it to show the not-supported path.
type orderTable struct {
	Compare func(self, other *obj.Object) (int, error)
}

var orderable = obj.NewCapability[orderTable]("orderable", "compare")

// run prints every configured value through every configured strategy,
// registering the demo types in the process-wide space.
func run(m *manifest.Manifest, w io.Writer) error {
	space := obj.DefaultSpace()
	if err := number.Register(space); err != nil {
		return err
	}
	if err := space.RegisterInterface(orderable.Interface); err != nil {
		return err
	}

	for _, v := range m.Demo.Values {
		if err := printValue(space, v, m.Demo.Strategies, w); err != nil {
			return err
		}
	}

	if path := m.SnapshotPath(); path != "" {
		if err := wire.WriteSnapshot(path, wire.Describe(space)); err != nil {
			return err
		}
		log.Infof("wrote registry snapshot to %s", path)
	}

	if n := space.ReportLeaks(); n > 0 {
		return fmt.Errorf("%d objects or bindings leaked", n)
	}
	return nil
}

func printValue(space *obj.Space, v int, strategies []string, w io.Writer) error {
	o, err := number.New(v)
	if err != nil {
		return err
	}
	space.Adopt(o)
	defer func() { warnIf(space.Destroy(o), "destroying %s", o) }()

	for _, s := range strategies {
		log.Debugf("printing %d via %s", v, s)
		if err := printVia(space, o, s, w); err != nil {
			return fmt.Errorf("%s dispatch of %d: %w", s, v, err)
		}
	}
	return nil
}

func printVia(space *obj.Space, o *obj.Object, strategy string, w io.Writer) error {
	switch strategy {
	case manifest.StrategyGenerated:
		g, err := number.NewRuntimePrintable(o)
		if err != nil {
			return err
		}
		space.TrackLease(g)
		defer func() { warnIf(g.Release(), "releasing generated printable for %s", o) }()
		return printable.Println(w, o, g.Impl())

	case manifest.StrategyAssembled:
		return printable.Println(w, o, number.AssemblePrintable())

	case manifest.StrategyStatic:
		return printable.Println(w, o, number.PrintableImpl)

	case manifest.StrategyResolved:
		if obj.Implements(o, orderable.Interface) {
			log.Warningf("%s unexpectedly implements %s", o, orderable.Name())
		} else {
			log.Infof("%s does not implement %s", o, orderable.Name())
		}
		impl, err := obj.Resolve(o, printable.Capability)
		if err != nil {
			return err
		}
		if impl.IsNull() {
			log.Infof("%s is not printable", o)
			return nil
		}
		return printable.Println(w, o, impl)
	}
	return fmt.Errorf("unknown strategy %q", strategy)
}

// warnIf logs a cleanup failure that cannot be returned, and reports whether
// there was one.
func warnIf(err error, format string, args ...any) bool {
	if err == nil {
		return false
	}
	log.Warningf("%s: %s", fmt.Sprintf(format, args...), err)
	return true
}
