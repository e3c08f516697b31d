package obj

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ---------------------------------------------------------------------------
// Space: registries of interfaces, classes, live objects and leases
// ---------------------------------------------------------------------------

// Space keeps the process-wide descriptor registries, indexed by name, and a
// ledger of the objects and generated bindings handed out through it.
//
// Descriptors are registered once and never mutated, so lookups only take
// read locks. It's safe for concurrent use.
type Space struct {
	ifaceMu    sync.RWMutex
	interfaces map[string]*Interface

	classMu sync.RWMutex
	classes map[string]*Class

	objMu   sync.RWMutex
	objects map[uuid.UUID]*Object

	leaseMu sync.Mutex
	leases  map[uuid.UUID]Lease
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	return &Space{
		interfaces: make(map[string]*Interface),
		classes:    make(map[string]*Class),
		objects:    make(map[uuid.UUID]*Object),
		leases:     make(map[uuid.UUID]Lease),
	}
}

var (
	defaultSpace     *Space
	defaultSpaceOnce sync.Once
)

// DefaultSpace returns the process-wide space, creating it on first use.
func DefaultSpace() *Space {
	defaultSpaceOnce.Do(func() {
		defaultSpace = NewSpace()
	})
	return defaultSpace
}

// ---------------------------------------------------------------------------
// Interfaces
// ---------------------------------------------------------------------------

// RegisterInterface adds i under its name. Registering the same interface
// again is a no-op; a different interface with the same name is an error.
func (s *Space) RegisterInterface(i *Interface) error {
	s.ifaceMu.Lock()
	defer s.ifaceMu.Unlock()

	if old, ok := s.interfaces[i.Name()]; ok {
		if old == i {
			return nil
		}
		return errors.Wrapf(ErrAlreadyRegistered, "interface %s", i.Name())
	}
	s.interfaces[i.Name()] = i
	log.Debugf("registered interface %s", i)
	return nil
}

// Interface finds an interface by name.
func (s *Space) Interface(name string) *Interface {
	s.ifaceMu.RLock()
	defer s.ifaceMu.RUnlock()
	return s.interfaces[name]
}

// Interfaces returns all registered interfaces sorted by name.
func (s *Space) Interfaces() []*Interface {
	s.ifaceMu.RLock()
	defer s.ifaceMu.RUnlock()

	result := make([]*Interface, 0, len(s.interfaces))
	for _, i := range s.interfaces {
		result = append(result, i)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Name() < result[b].Name() })
	return result
}

// ---------------------------------------------------------------------------
// Classes
// ---------------------------------------------------------------------------

// RegisterClass adds c under its name and registers every interface it binds.
func (s *Space) RegisterClass(c *Class) error {
	for _, i := range c.Interfaces() {
		if err := s.RegisterInterface(i); err != nil {
			return errors.Wrapf(err, "registering class %s", c.Name())
		}
	}

	s.classMu.Lock()
	defer s.classMu.Unlock()

	if old, ok := s.classes[c.Name()]; ok {
		if old == c {
			return nil
		}
		return errors.Wrapf(ErrAlreadyRegistered, "class %s", c.Name())
	}
	s.classes[c.Name()] = c
	log.Debugf("registered class %s", c)
	return nil
}

// Class finds a class by name.
func (s *Space) Class(name string) *Class {
	s.classMu.RLock()
	defer s.classMu.RUnlock()
	return s.classes[name]
}

// Classes returns all registered classes sorted by name.
func (s *Space) Classes() []*Class {
	s.classMu.RLock()
	defer s.classMu.RUnlock()

	result := make([]*Class, 0, len(s.classes))
	for _, c := range s.classes {
		result = append(result, c)
	}
	sort.Slice(result, func(a, b int) bool { return result[a].Name() < result[b].Name() })
	return result
}

// ---------------------------------------------------------------------------
// Objects
// ---------------------------------------------------------------------------

// Construct creates an instance of the named class and tracks it.
func (s *Space) Construct(className string, payload any) (*Object, error) {
	c := s.Class(className)
	if c == nil {
		return nil, errors.Wrapf(ErrUnknownClass, "%q", className)
	}
	o, err := New(c, payload)
	if err != nil {
		return nil, err
	}
	s.Adopt(o)
	return o, nil
}

// Adopt tracks an object created elsewhere, e.g. by a type constructor.
func (s *Space) Adopt(o *Object) {
	s.objMu.Lock()
	defer s.objMu.Unlock()
	s.objects[o.ID()] = o
}

// Object finds a tracked, live object by ID. A handle destroyed outside the
// space is not returned.
func (s *Space) Object(id uuid.UUID) *Object {
	s.objMu.RLock()
	defer s.objMu.RUnlock()
	if o := s.objects[id]; o.Alive() {
		return o
	}
	return nil
}

// Destroy destroys o and stops tracking it. The double-destroy error from
// Object.Destroy is passed through.
func (s *Space) Destroy(o *Object) error {
	if o == nil {
		return ErrNilObject
	}
	s.objMu.Lock()
	delete(s.objects, o.ID())
	s.objMu.Unlock()
	return o.Destroy()
}

// Live returns the number of tracked objects not yet destroyed through the space.
func (s *Space) Live() int {
	s.objMu.RLock()
	defer s.objMu.RUnlock()
	return len(s.objects)
}

// ---------------------------------------------------------------------------
// Leases
// ---------------------------------------------------------------------------

// TrackLease records a generated binding so Leaks can report it if it is
// never released.
func (s *Space) TrackLease(l Lease) {
	s.leaseMu.Lock()
	defer s.leaseMu.Unlock()
	s.leases[l.LeaseID()] = l
}

// Leaks returns the tracked generated bindings that are still unreleased.
// Released leases are dropped from the ledger as a side effect.
func (s *Space) Leaks() []Lease {
	s.leaseMu.Lock()
	defer s.leaseMu.Unlock()

	var result []Lease
	for id, l := range s.leases {
		if l.Released() {
			delete(s.leases, id)
			continue
		}
		result = append(result, l)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].LeaseID().String() < result[b].LeaseID().String()
	})
	return result
}

// ReportLeaks logs a warning for every unreleased binding and live object and
// returns how many were found.
func (s *Space) ReportLeaks() int {
	leaks := s.Leaks()
	for _, l := range leaks {
		log.Warningf("generated %s binding %s for object %s was never released",
			l.Interface().Name(), l.LeaseID(), l.Owner())
	}

	s.objMu.RLock()
	defer s.objMu.RUnlock()
	n := len(leaks)
	for _, o := range s.objects {
		if o.Alive() {
			log.Warningf("object %s was never destroyed", o)
			n++
		}
	}
	return n
}
