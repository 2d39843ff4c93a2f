package ebpf

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type RegistrySuite struct{}

func TestRegistry(t *testing.T) {
	suite.RunTests(t, &RegistrySuite{})
}

func (RegistrySuite) TestRegisterAndLookup(t *testing.T) {
	registry := NewFunctionRegistry()
	registry.Register(42, []byte("entrypoint"), nil)

	reg, ok := registry.LookupByKey(42)
	expect.True(t, ok)
	expect.Equal(t, "entrypoint", string(reg.Name))

	_, ok = registry.LookupByKey(43)
	expect.False(t, ok)
}

func (RegistrySuite) TestLookupMissOnNilRegistry(t *testing.T) {
	var registry *FunctionRegistry
	_, ok := registry.LookupByKey(1)
	expect.False(t, ok)
}

func (RegistrySuite) TestLoaderWrapsSyscallRegistry(t *testing.T) {
	syscalls := NewFunctionRegistry()
	syscalls.Register(7, []byte("sol_log"), nil)

	loader := NewLoader(syscalls)
	reg, ok := loader.FunctionRegistry().LookupByKey(7)
	expect.True(t, ok)
	expect.Equal(t, "sol_log", string(reg.Name))
}

func (RegistrySuite) TestNewLoaderNilSyscallsIsEmpty(t *testing.T) {
	loader := NewLoader(nil)
	_, ok := loader.FunctionRegistry().LookupByKey(0)
	expect.False(t, ok)
}
