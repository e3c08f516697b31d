// Package obj implements a small capability runtime: concrete types describe
// themselves with a Class, callers hold opaque Object handles, and behaviour
// is reached through interface bindings rather than through the concrete type.
//
// This package contains:
//   - Interface descriptors and typed Capability tokens
//   - Bindings of three kinds: static, generated (owned) and assembled (borrowed)
//   - Classes with a fixed, duplicate-free binding list
//   - Object handles with a live/destroyed lifecycle
//   - Resolution by interface identity, and checked dispatch
//   - Space, the registry of descriptors with a leak ledger
package obj
