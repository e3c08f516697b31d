// Package wire encodes descriptions of an obj.Space in canonical CBOR, so a
// registry can be dumped, diffed, or compared across builds.
package wire

import "github.com/chazu/vtab/obj"

// SnapshotVersion is bumped whenever a field changes meaning.
const SnapshotVersion = 1

// Snapshot describes every interface and class registered in a space.
// It carries names and shapes only; tables and payloads are never encoded.
type Snapshot struct {
	Version    byte            `cbor:"1,keyasint"`
	Interfaces []InterfaceInfo `cbor:"2,keyasint,omitempty"`
	Classes    []ClassInfo     `cbor:"3,keyasint,omitempty"`
}

// InterfaceInfo describes one interface.
type InterfaceInfo struct {
	Name       string   `cbor:"1,keyasint"`
	TableSize  int      `cbor:"2,keyasint"`
	Operations []string `cbor:"3,keyasint,omitempty"`
}

// ClassInfo describes one class. Interfaces are listed in resolution order.
type ClassInfo struct {
	Name         string   `cbor:"1,keyasint"`
	InstanceSize uint64   `cbor:"2,keyasint"`
	Interfaces   []string `cbor:"3,keyasint,omitempty"`
}

// Describe builds a snapshot of s. Interfaces and classes are sorted by name,
// so equal registries produce equal bytes.
func Describe(s *obj.Space) *Snapshot {
	snap := &Snapshot{Version: SnapshotVersion}
	for _, i := range s.Interfaces() {
		snap.Interfaces = append(snap.Interfaces, InterfaceInfo{
			Name:       i.Name(),
			TableSize:  i.TableSize(),
			Operations: i.Operations(),
		})
	}
	for _, c := range s.Classes() {
		info := ClassInfo{
			Name:         c.Name(),
			InstanceSize: uint64(c.InstanceSize()),
		}
		for _, i := range c.Interfaces() {
			info.Interfaces = append(info.Interfaces, i.Name())
		}
		snap.Classes = append(snap.Classes, info)
	}
	return snap
}

// Class finds a class description by name.
func (s *Snapshot) Class(name string) (ClassInfo, bool) {
	for _, c := range s.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassInfo{}, false
}
