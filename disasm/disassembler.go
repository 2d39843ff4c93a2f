// Package disasm renders one decoded BPF instruction at a time into its
// assembly-text form. It holds no state of its own: every call is handed
// the pieces (the cfg labels, the syscall/function registries, the
// dialect) it needs to resolve that single instruction.
package disasm

import (
	"fmt"
	"strings"

	"github.com/Counter-Counter/sbpf/ebpf"
)

// Diagnostic receives a note about something the renderer noticed but
// that isn't itself a hard decode failure, e.g. an unrecognized
// byte-swap width. Callers that don't care may pass nil.
type Diagnostic func(string)

func (d Diagnostic) emit(format string, args ...any) {
	if d != nil {
		d(fmt.Sprintf(format, args...))
	}
}

func reg(n uint8) string {
	return fmt.Sprintf("r%d", n)
}

func signedOffset(off int16) string {
	if off < 0 {
		return fmt.Sprintf("-0x%x", -int64(off))
	}
	return fmt.Sprintf("+0x%x", int64(off))
}

func signedImm(imm int64) string {
	if imm < 0 {
		return fmt.Sprintf("-0x%x", -imm)
	}
	return fmt.Sprintf("0x%x", imm)
}

// DisassembleInstruction renders insn, found at program counter pc, to its
// assembly text. cfgNodes resolves jump targets to labels when one is
// present; functionRegistry and loader resolve CALL_IMM targets. version is
// consulted only for the callx register and for CALL_IMM resolution: opcodes
// are not filtered by dialect, so every encoding in the ebpf catalogue
// (legacy and moved memory ops, legacy and PQR arithmetic, neg, exit, return,
// syscall) is rendered whichever version is passed.
func DisassembleInstruction(
	insn ebpf.Insn,
	pc uint64,
	cfgNodes ebpf.CfgNodes,
	functionRegistry *ebpf.FunctionRegistry,
	loader *ebpf.Loader,
	version ebpf.SBPFVersion,
	diag Diagnostic,
) string {
	switch insn.Opc {
	case ebpf.LD_DW_IMM:
		return fmt.Sprintf("lddw %s, %s", reg(insn.Dst), signedImm(insn.Imm))

	case ebpf.LD_B_REG, ebpf.LD_1B_REG:
		return loadText("ldxb", insn)
	case ebpf.LD_H_REG, ebpf.LD_2B_REG:
		return loadText("ldxh", insn)
	case ebpf.LD_W_REG, ebpf.LD_4B_REG:
		return loadText("ldxw", insn)
	case ebpf.LD_DW_REG, ebpf.LD_8B_REG:
		return loadText("ldxdw", insn)

	case ebpf.ST_B_IMM, ebpf.ST_1B_IMM:
		return storeImmText("stb", insn)
	case ebpf.ST_H_IMM, ebpf.ST_2B_IMM:
		return storeImmText("sth", insn)
	case ebpf.ST_W_IMM, ebpf.ST_4B_IMM:
		return storeImmText("stw", insn)
	case ebpf.ST_DW_IMM, ebpf.ST_8B_IMM:
		return storeImmText("stdw", insn)

	case ebpf.ST_B_REG, ebpf.ST_1B_REG:
		return storeRegText("stxb", insn)
	case ebpf.ST_H_REG, ebpf.ST_2B_REG:
		return storeRegText("stxh", insn)
	case ebpf.ST_W_REG, ebpf.ST_4B_REG:
		return storeRegText("stxw", insn)
	case ebpf.ST_DW_REG, ebpf.ST_8B_REG:
		return storeRegText("stxdw", insn)

	case ebpf.LE:
		return byteSwapText("le", insn, diag)
	case ebpf.BE:
		return byteSwapText("be", insn, diag)
	case ebpf.HOR64_IMM:
		return fmt.Sprintf("hor64 %s, %s", reg(insn.Dst), signedImm(insn.Imm))

	case ebpf.NEG32:
		return fmt.Sprintf("neg32 %s", reg(insn.Dst))
	case ebpf.NEG64:
		return fmt.Sprintf("neg64 %s", reg(insn.Dst))

	case ebpf.JA:
		return fmt.Sprintf("ja %s", jumpTarget(insn, cfgNodes))

	case ebpf.CALL_IMM:
		return callImmText(insn, pc, functionRegistry, loader, version)
	case ebpf.CALL_REG:
		return callRegText(insn, version)

	case ebpf.EXIT:
		return "exit"
	case ebpf.RETURN:
		return "return"
	case ebpf.SYSCALL:
		return syscallText(insn, loader)
	}

	if text, ok := aluText(insn); ok {
		return text
	}
	if text, ok := pqrText(insn); ok {
		return text
	}
	if text, ok := jumpCondText(insn, cfgNodes); ok {
		return text
	}

	return fmt.Sprintf("unknown opcode=0x%02x", insn.Opc)
}

func loadText(mnemonic string, insn ebpf.Insn) string {
	return fmt.Sprintf(
		"%s %s, [%s%s]",
		mnemonic,
		reg(insn.Dst),
		reg(insn.Src),
		signedOffset(insn.Off))
}

func storeImmText(mnemonic string, insn ebpf.Insn) string {
	return fmt.Sprintf(
		"%s [%s%s], %d",
		mnemonic,
		reg(insn.Dst),
		signedOffset(insn.Off),
		insn.Imm)
}

func storeRegText(mnemonic string, insn ebpf.Insn) string {
	return fmt.Sprintf(
		"%s [%s%s], %s",
		mnemonic,
		reg(insn.Dst),
		signedOffset(insn.Off),
		reg(insn.Src))
}

func byteSwapText(mnemonic string, insn ebpf.Insn, diag Diagnostic) string {
	switch insn.Imm {
	case 16, 32, 64:
	default:
		diag.emit("%s%d: unrecognized byte-swap width %d", mnemonic, insn.Dst, insn.Imm)
	}
	return fmt.Sprintf("%s%d %s", mnemonic, insn.Imm, reg(insn.Dst))
}

// jumpTarget resolves a ja/conditional-jump target from insn.Ptr, not pc:
// pc is only meaningful for PC-relative CALL_IMM resolution, and may differ
// from insn.Ptr (the instruction's own position index). A target with no
// cfg label renders the literal "[invalid]", not a hex fallback.
func jumpTarget(insn ebpf.Insn, cfgNodes ebpf.CfgNodes) string {
	target := insn.Ptr + uint64(int64(insn.Off)) + 1
	if label, ok := cfgNodes.Label(target); ok {
		return label
	}
	return "[invalid]"
}

// callImmText resolves a CALL_IMM through the local function registry
// first, falling back to the loader's dynamic syscall registry under
// non-static-syscall dialects. On a full miss, it renders `[invalid]`
// rather than a bare target address: once the dynamic-syscall branch has
// been attempted, the instruction is a syscall, not a call, and must be
// reported as one even though nothing answered it.
func callImmText(
	insn ebpf.Insn,
	pc uint64,
	functionRegistry *ebpf.FunctionRegistry,
	loader *ebpf.Loader,
	version ebpf.SBPFVersion,
) string {
	key := version.CalculateCallImmTargetPC(pc, insn.Imm)

	if reg, ok := functionRegistry.LookupByKey(key); ok {
		return fmt.Sprintf("call %s", strings.ToValidUTF8(string(reg.Name), "�"))
	}

	mnemonic := "call"
	if !version.StaticSyscalls() && loader != nil {
		mnemonic = "syscall"
		if reg, ok := loader.FunctionRegistry().LookupByKey(uint32(insn.Imm)); ok {
			return fmt.Sprintf("syscall %s", strings.ToValidUTF8(string(reg.Name), "�"))
		}
	}

	return fmt.Sprintf("%s [invalid]", mnemonic)
}

func callRegText(insn ebpf.Insn, version ebpf.SBPFVersion) string {
	if version.CallxUsesSrcReg() {
		return fmt.Sprintf("callx %s", reg(insn.Src))
	}
	return fmt.Sprintf("callx r%d", uint8(insn.Imm))
}

func syscallText(insn ebpf.Insn, loader *ebpf.Loader) string {
	if loader != nil {
		if reg, ok := loader.FunctionRegistry().LookupByKey(uint32(insn.Imm)); ok {
			return fmt.Sprintf("syscall %s", strings.ToValidUTF8(string(reg.Name), "�"))
		}
	}
	return fmt.Sprintf("syscall %d", insn.Imm)
}

type aluOp struct {
	mnemonic32 string
	mnemonic64 string
	imm32      uint8
	reg32      uint8
	imm64      uint8
	reg64      uint8
}

var aluOps = []aluOp{
	{"add32", "add64", ebpf.ADD32_IMM, ebpf.ADD32_REG, ebpf.ADD64_IMM, ebpf.ADD64_REG},
	{"sub32", "sub64", ebpf.SUB32_IMM, ebpf.SUB32_REG, ebpf.SUB64_IMM, ebpf.SUB64_REG},
	{"mul32", "mul64", ebpf.MUL32_IMM, ebpf.MUL32_REG, ebpf.MUL64_IMM, ebpf.MUL64_REG},
	{"div32", "div64", ebpf.DIV32_IMM, ebpf.DIV32_REG, ebpf.DIV64_IMM, ebpf.DIV64_REG},
	{"or32", "or64", ebpf.OR32_IMM, ebpf.OR32_REG, ebpf.OR64_IMM, ebpf.OR64_REG},
	{"and32", "and64", ebpf.AND32_IMM, ebpf.AND32_REG, ebpf.AND64_IMM, ebpf.AND64_REG},
	{"lsh32", "lsh64", ebpf.LSH32_IMM, ebpf.LSH32_REG, ebpf.LSH64_IMM, ebpf.LSH64_REG},
	{"rsh32", "rsh64", ebpf.RSH32_IMM, ebpf.RSH32_REG, ebpf.RSH64_IMM, ebpf.RSH64_REG},
	{"mod32", "mod64", ebpf.MOD32_IMM, ebpf.MOD32_REG, ebpf.MOD64_IMM, ebpf.MOD64_REG},
	{"xor32", "xor64", ebpf.XOR32_IMM, ebpf.XOR32_REG, ebpf.XOR64_IMM, ebpf.XOR64_REG},
	{"mov32", "mov64", ebpf.MOV32_IMM, ebpf.MOV32_REG, ebpf.MOV64_IMM, ebpf.MOV64_REG},
	{"arsh32", "arsh64", ebpf.ARSH32_IMM, ebpf.ARSH32_REG, ebpf.ARSH64_IMM, ebpf.ARSH64_REG},
}

func aluText(insn ebpf.Insn) (string, bool) {
	for _, op := range aluOps {
		switch insn.Opc {
		case op.imm32:
			return fmt.Sprintf("%s %s, %d", op.mnemonic32, reg(insn.Dst), insn.Imm), true
		case op.reg32:
			return fmt.Sprintf("%s %s, %s", op.mnemonic32, reg(insn.Dst), reg(insn.Src)), true
		case op.imm64:
			return fmt.Sprintf("%s %s, %d", op.mnemonic64, reg(insn.Dst), insn.Imm), true
		case op.reg64:
			return fmt.Sprintf("%s %s, %s", op.mnemonic64, reg(insn.Dst), reg(insn.Src)), true
		}
	}
	return "", false
}

type pqrOp struct {
	mnemonic32 string
	mnemonic64 string
	imm32      uint8
	reg32      uint8
	imm64      uint8
	reg64      uint8
}

var pqrOps = []pqrOp{
	{"lmul32", "lmul64", ebpf.LMUL32_IMM, ebpf.LMUL32_REG, ebpf.LMUL64_IMM, ebpf.LMUL64_REG},
	{"uhmul64", "uhmul64", ebpf.UHMUL64_IMM, ebpf.UHMUL64_REG, ebpf.UHMUL64_IMM, ebpf.UHMUL64_REG},
	{"shmul64", "shmul64", ebpf.SHMUL64_IMM, ebpf.SHMUL64_REG, ebpf.SHMUL64_IMM, ebpf.SHMUL64_REG},
	{"udiv32", "udiv64", ebpf.UDIV32_IMM, ebpf.UDIV32_REG, ebpf.UDIV64_IMM, ebpf.UDIV64_REG},
	{"urem32", "urem64", ebpf.UREM32_IMM, ebpf.UREM32_REG, ebpf.UREM64_IMM, ebpf.UREM64_REG},
	{"sdiv32", "sdiv64", ebpf.SDIV32_IMM, ebpf.SDIV32_REG, ebpf.SDIV64_IMM, ebpf.SDIV64_REG},
	{"srem32", "srem64", ebpf.SREM32_IMM, ebpf.SREM32_REG, ebpf.SREM64_IMM, ebpf.SREM64_REG},
}

func pqrText(insn ebpf.Insn) (string, bool) {
	for _, op := range pqrOps {
		switch insn.Opc {
		case op.imm32:
			return fmt.Sprintf("%s %s, %d", op.mnemonic32, reg(insn.Dst), insn.Imm), true
		case op.reg32:
			return fmt.Sprintf("%s %s, %s", op.mnemonic32, reg(insn.Dst), reg(insn.Src)), true
		case op.imm64:
			if op.imm32 != op.imm64 {
				return fmt.Sprintf("%s %s, %d", op.mnemonic64, reg(insn.Dst), insn.Imm), true
			}
		case op.reg64:
			if op.reg32 != op.reg64 {
				return fmt.Sprintf("%s %s, %s", op.mnemonic64, reg(insn.Dst), reg(insn.Src)), true
			}
		}
	}
	return "", false
}

type jumpOp struct {
	mnemonic string
	imm      uint8
	reg      uint8
}

var jumpOps = []jumpOp{
	{"jeq", ebpf.JEQ_IMM, ebpf.JEQ_REG},
	{"jgt", ebpf.JGT_IMM, ebpf.JGT_REG},
	{"jge", ebpf.JGE_IMM, ebpf.JGE_REG},
	{"jset", ebpf.JSET_IMM, ebpf.JSET_REG},
	{"jne", ebpf.JNE_IMM, ebpf.JNE_REG},
	{"jsgt", ebpf.JSGT_IMM, ebpf.JSGT_REG},
	{"jsge", ebpf.JSGE_IMM, ebpf.JSGE_REG},
	{"jlt", ebpf.JLT_IMM, ebpf.JLT_REG},
	{"jle", ebpf.JLE_IMM, ebpf.JLE_REG},
	{"jslt", ebpf.JSLT_IMM, ebpf.JSLT_REG},
	{"jsle", ebpf.JSLE_IMM, ebpf.JSLE_REG},
}

func jumpCondText(insn ebpf.Insn, cfgNodes ebpf.CfgNodes) (string, bool) {
	for _, op := range jumpOps {
		switch insn.Opc {
		case op.imm:
			return fmt.Sprintf(
				"%s %s, %d, %s",
				op.mnemonic,
				reg(insn.Dst),
				insn.Imm,
				jumpTarget(insn, cfgNodes)), true
		case op.reg:
			return fmt.Sprintf(
				"%s %s, %s, %s",
				op.mnemonic,
				reg(insn.Dst),
				reg(insn.Src),
				jumpTarget(insn, cfgNodes)), true
		}
	}
	return "", false
}
