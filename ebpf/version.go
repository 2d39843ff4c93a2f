package ebpf

// SBPFVersion selects which BPF dialect extensions are active for a given
// program. It is a plain value type; every predicate is a pure function of
// its fields so a version can be shared across goroutines without
// synchronization.
type SBPFVersion struct {
	name string

	moveMemoryInstructionClasses bool
	enablePQR                    bool
	disableNeg                   bool
	staticSyscalls               bool
	callxUsesSrcReg              bool
}

// Predefined dialects, oldest to newest. Programs compiled against one
// sbpf generation are disassembled correctly only under the matching
// version value.
var (
	// V0 is the original dialect: legacy memory opcodes, legacy
	// mul/div/mod, neg32/neg64 available, dynamic syscall resolution,
	// callx register taken from the immediate field.
	V0 = SBPFVersion{name: "v0"}

	// V1 enables the extended PQR multiply/divide/modulo opcodes and
	// drops legacy mul/div/mod.
	V1 = SBPFVersion{
		name:      "v1",
		enablePQR: true,
	}

	// V2 additionally moves memory instructions into the moved encodings
	// (LD_1B_REG, ST_1B_IMM, ...), drops neg32/neg64, and takes the callx register number
	// from the source register field instead of the immediate.
	V2 = SBPFVersion{
		name:                         "v2",
		moveMemoryInstructionClasses: true,
		enablePQR:                    true,
		disableNeg:                   true,
		callxUsesSrcReg:              true,
	}

	// V3 additionally requires statically resolved syscalls (dedicated
	// SYSCALL opcode, `return` instead of `exit`, no dynamic loader
	// fallback for CALL_IMM).
	V3 = SBPFVersion{
		name:                         "v3",
		moveMemoryInstructionClasses: true,
		enablePQR:                    true,
		disableNeg:                   true,
		staticSyscalls:               true,
		callxUsesSrcReg:              true,
	}
)

func (v SBPFVersion) String() string { return v.name }

// MoveMemoryInstructionClasses reports whether memory ops use the moved
// encodings (the LDX/ST/STX classes with the IMM mode bits) rather than the
// legacy MEM-mode ones.
func (v SBPFVersion) MoveMemoryInstructionClasses() bool {
	return v.moveMemoryInstructionClasses
}

// EnablePQR reports whether the extended multiply/divide/modulo opcodes
// are active (and legacy mul/div/mod are not).
func (v SBPFVersion) EnablePQR() bool { return v.enablePQR }

// DisableNeg reports whether neg32/neg64 are removed from the dialect.
func (v SBPFVersion) DisableNeg() bool { return v.disableNeg }

// StaticSyscalls reports whether syscalls must be statically resolved:
// `exit` is replaced by `return`, `SYSCALL` is a dedicated opcode, and
// CALL_IMM has no dynamic loader fallback.
func (v SBPFVersion) StaticSyscalls() bool { return v.staticSyscalls }

// CallxUsesSrcReg reports whether `callx`'s register number comes from
// insn.Src (true) or from insn.Imm truncated to a byte (false).
func (v SBPFVersion) CallxUsesSrcReg() bool { return v.callxUsesSrcReg }

// CalculateCallImmTargetPC maps a CALL_IMM instruction's (pc, imm) pair to
// the registry key used to resolve its target. Static-syscall dialects
// resolve calls PC-relative to the call site; earlier dialects resolve by
// immediate value alone.
func (v SBPFVersion) CalculateCallImmTargetPC(pc uint64, imm int64) uint32 {
	if v.staticSyscalls {
		return uint32(int64(pc) + imm + 1)
	}
	return uint32(imm)
}
