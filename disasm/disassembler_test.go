package disasm

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"

	"github.com/Counter-Counter/sbpf/ebpf"
)

type DisassemblerSuite struct{}

func TestDisassembler(t *testing.T) {
	suite.RunTests(t, &DisassemblerSuite{})
}

func (DisassemblerSuite) TestLddw(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.LD_DW_IMM, Dst: 1, Imm: 0x1234}
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "lddw r1, 0x1234", text)
}

func (DisassemblerSuite) TestLegacyAndMovedLoadRenderIdentically(t *testing.T) {
	legacy := ebpf.Insn{Opc: ebpf.LD_W_REG, Dst: 2, Src: 3, Off: 8}
	moved := ebpf.Insn{Opc: ebpf.LD_4B_REG, Dst: 2, Src: 3, Off: 8}

	expect.Equal(
		t,
		DisassembleInstruction(legacy, 0, nil, nil, nil, ebpf.V0, nil),
		DisassembleInstruction(moved, 0, nil, nil, nil, ebpf.V2, nil))
	expect.Equal(t, "ldxw r2, [r3+0x8]", DisassembleInstruction(legacy, 0, nil, nil, nil, ebpf.V0, nil))
}

func (DisassemblerSuite) TestNegativeOffsetFormatting(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.LD_W_REG, Dst: 0, Src: 1, Off: -16}
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "ldxw r0, [r1-0x10]", text)
}

func (DisassemblerSuite) TestAluImmAndReg(t *testing.T) {
	add := ebpf.Insn{Opc: ebpf.ADD64_IMM, Dst: 5, Imm: 3}
	expect.Equal(t, "add64 r5, 3", DisassembleInstruction(add, 0, nil, nil, nil, ebpf.V0, nil))

	mov := ebpf.Insn{Opc: ebpf.MOV32_REG, Dst: 1, Src: 2}
	expect.Equal(t, "mov32 r1, r2", DisassembleInstruction(mov, 0, nil, nil, nil, ebpf.V0, nil))
}

func (DisassemblerSuite) TestByteSwapValidWidth(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.LE, Dst: 3, Imm: 32}
	var notes []string
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, func(s string) {
		notes = append(notes, s)
	})
	expect.Equal(t, "le32 r3", text)
	expect.Equal(t, 0, len(notes))
}

func (DisassemblerSuite) TestByteSwapInvalidWidthEmitsDiagnostic(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.BE, Dst: 3, Imm: 17}
	var notes []string
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, func(s string) {
		notes = append(notes, s)
	})
	expect.Equal(t, "be17 r3", text)
	expect.Equal(t, 1, len(notes))
}

func (DisassemblerSuite) TestJaResolvesCfgLabel(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.JA, Ptr: 10, Off: 4}
	nodes := ebpf.CfgNodes{
		15: ebpf.CfgNode{Label: "loop_top"},
	}
	text := DisassembleInstruction(insn, 10, nodes, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "ja loop_top", text)
}

func (DisassemblerSuite) TestJaRendersInvalidWithoutLabel(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.JA, Ptr: 10, Off: 4}
	text := DisassembleInstruction(insn, 10, nil, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "ja [invalid]", text)
}

// TestJaUsesInsnPtrNotPc pins the instruction's own position (insn.Ptr) well
// away from pc: only CALL_IMM resolution is PC-relative, so a branch target
// must resolve off insn.Ptr even when pc names a different instruction.
func (DisassemblerSuite) TestJaUsesInsnPtrNotPc(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.JA, Ptr: 100, Off: 4}
	nodes := ebpf.CfgNodes{
		105: ebpf.CfgNode{Label: "loop_top"},
	}
	text := DisassembleInstruction(insn, 10, nodes, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "ja loop_top", text)
}

func (DisassemblerSuite) TestConditionalJump(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.JEQ_IMM, Dst: 1, Imm: 7, Off: 0}
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "jeq r1, 7, [invalid]", text)
}

func (DisassemblerSuite) TestExitAndReturn(t *testing.T) {
	exit := ebpf.Insn{Opc: ebpf.EXIT}
	expect.Equal(t, "exit", DisassembleInstruction(exit, 0, nil, nil, nil, ebpf.V0, nil))

	ret := ebpf.Insn{Opc: ebpf.RETURN}
	expect.Equal(t, "return", DisassembleInstruction(ret, 0, nil, nil, nil, ebpf.V3, nil))
}

func (DisassemblerSuite) TestCallImmResolvesFunctionRegistry(t *testing.T) {
	registry := ebpf.NewFunctionRegistry()
	registry.Register(5, []byte("entrypoint"), nil)

	insn := ebpf.Insn{Opc: ebpf.CALL_IMM, Imm: 5}
	text := DisassembleInstruction(insn, 0, nil, registry, nil, ebpf.V0, nil)
	expect.Equal(t, "call entrypoint", text)
}

func (DisassemblerSuite) TestCallImmFallsBackToSyscallLoader(t *testing.T) {
	syscalls := ebpf.NewFunctionRegistry()
	syscalls.Register(9, []byte("sol_log"), nil)
	loader := ebpf.NewLoader(syscalls)

	registry := ebpf.NewFunctionRegistry()

	insn := ebpf.Insn{Opc: ebpf.CALL_IMM, Imm: 9}
	text := DisassembleInstruction(insn, 0, nil, registry, loader, ebpf.V0, nil)
	expect.Equal(t, "syscall sol_log", text)
}

// TestCallImmUnresolvedUnderDynamicSyscallsRendersInvalid matches spec.md's
// disassembly scenario 6: imm=0xdead misses both the function registry and
// the loader's syscall registry under a non-static-syscalls dialect, so the
// instruction is reported as an unresolved syscall, not a call.
func (DisassemblerSuite) TestCallImmUnresolvedUnderDynamicSyscallsRendersInvalid(t *testing.T) {
	syscalls := ebpf.NewFunctionRegistry()
	loader := ebpf.NewLoader(syscalls)
	registry := ebpf.NewFunctionRegistry()

	insn := ebpf.Insn{Opc: ebpf.CALL_IMM, Imm: 0xdead}
	text := DisassembleInstruction(insn, 0, nil, registry, loader, ebpf.V0, nil)
	expect.Equal(t, "syscall [invalid]", text)
}

func (DisassemblerSuite) TestCallxUsesSrcRegUnderV2(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.CALL_REG, Src: 4, Imm: 9}
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V2, nil)
	expect.Equal(t, "callx r4", text)
}

func (DisassemblerSuite) TestCallxUsesImmUnderV0(t *testing.T) {
	insn := ebpf.Insn{Opc: ebpf.CALL_REG, Src: 4, Imm: 9}
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "callx r9", text)
}

func (DisassemblerSuite) TestUnknownOpcode(t *testing.T) {
	insn := ebpf.Insn{Opc: 0xff}
	text := DisassembleInstruction(insn, 0, nil, nil, nil, ebpf.V0, nil)
	expect.Equal(t, "unknown opcode=0xff", text)
}
