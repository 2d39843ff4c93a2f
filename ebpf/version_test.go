package ebpf

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type VersionSuite struct{}

func TestVersion(t *testing.T) {
	suite.RunTests(t, &VersionSuite{})
}

func (VersionSuite) TestV0Predicates(t *testing.T) {
	expect.False(t, V0.MoveMemoryInstructionClasses())
	expect.False(t, V0.EnablePQR())
	expect.False(t, V0.DisableNeg())
	expect.False(t, V0.StaticSyscalls())
	expect.False(t, V0.CallxUsesSrcReg())
}

func (VersionSuite) TestV3Predicates(t *testing.T) {
	expect.True(t, V3.MoveMemoryInstructionClasses())
	expect.True(t, V3.EnablePQR())
	expect.True(t, V3.DisableNeg())
	expect.True(t, V3.StaticSyscalls())
	expect.True(t, V3.CallxUsesSrcReg())
}

func (VersionSuite) TestCalculateCallImmTargetPCDynamic(t *testing.T) {
	expect.Equal(t, uint32(0xdead), V0.CalculateCallImmTargetPC(10, 0xdead))
}

func (VersionSuite) TestCalculateCallImmTargetPCStatic(t *testing.T) {
	expect.Equal(t, uint32(15), V3.CalculateCallImmTargetPC(10, 4))
}
