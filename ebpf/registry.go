package ebpf

// FunctionRegistration is the name/metadata pair a registry entry resolves
// to. Metadata is opaque here: the real built-in syscall catalogue (out of
// scope for this module) would populate it with argument/return types,
// costing information, and similar; this module only needs the name for
// disassembly.
type FunctionRegistration struct {
	Name     []byte
	Metadata any
}

// FunctionRegistry maps integer keys to functions. Distinct registries hold
// a program's local functions and a loader's built-in syscalls; both are
// looked up the same way by the disassembler.
type FunctionRegistry struct {
	byKey map[uint32]FunctionRegistration
}

// NewFunctionRegistry returns an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{byKey: map[uint32]FunctionRegistration{}}
}

// Register associates key with a function's name and metadata. A later
// call with the same key overwrites the earlier registration.
func (r *FunctionRegistry) Register(key uint32, name []byte, metadata any) {
	r.byKey[key] = FunctionRegistration{Name: name, Metadata: metadata}
}

// LookupByKey returns the registration for key, if any.
func (r *FunctionRegistry) LookupByKey(key uint32) (FunctionRegistration, bool) {
	if r == nil {
		return FunctionRegistration{}, false
	}
	reg, ok := r.byKey[key]
	return reg, ok
}

// Loader exposes a secondary function registry: the built-in syscall
// catalogue a program's CALL_IMM may fall back to when the dialect permits
// dynamic syscall resolution. Populating the catalogue itself is out of
// scope for this module.
type Loader struct {
	syscalls *FunctionRegistry
}

// NewLoader wraps a syscall registry. A nil registry is treated as empty.
func NewLoader(syscalls *FunctionRegistry) *Loader {
	if syscalls == nil {
		syscalls = NewFunctionRegistry()
	}
	return &Loader{syscalls: syscalls}
}

// FunctionRegistry returns the loader's syscall catalogue.
func (l *Loader) FunctionRegistry() *FunctionRegistry {
	if l == nil {
		return NewFunctionRegistry()
	}
	return l.syscalls
}
