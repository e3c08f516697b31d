package obj

import (
	"strconv"
	"sync"
)

// OpID names an operation independently of any one interface: every
// interface that declares "toString" shares its OpID.
type OpID int32

// NoOp is the OpID of an operation nobody declared.
const NoOp OpID = -1

// OperationTable assigns OpIDs to operation names in order of first use.
// IDs are never reused or removed.
type OperationTable struct {
	mu    sync.Mutex
	ids   map[string]OpID
	names []string
}

// Operations holds the IDs of every operation declared through NewInterface.
var Operations = NewOperationTable()

func NewOperationTable() *OperationTable {
	return &OperationTable{ids: make(map[string]OpID)}
}

// Intern returns one ID per name, allocating IDs for names not seen before.
func (t *OperationTable) Intern(names ...string) []OpID {
	t.mu.Lock()
	defer t.mu.Unlock()

	result := make([]OpID, len(names))
	for k, name := range names {
		id, ok := t.ids[name]
		if !ok {
			id = OpID(len(t.names))
			t.ids[name] = id
			t.names = append(t.names, name)
		}
		result[k] = id
	}
	return result
}

// ID returns the ID of name, or NoOp.
func (t *OperationTable) ID(name string) OpID {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := t.ids[name]; ok {
		return id
	}
	return NoOp
}

// Name returns the name behind id. Unknown IDs render as "op#N".
func (t *OperationTable) Name(id OpID) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id >= 0 && int(id) < len(t.names) {
		return t.names[id]
	}
	return "op#" + strconv.Itoa(int(id))
}

// Count returns how many distinct operations exist.
func (t *OperationTable) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.names)
}
