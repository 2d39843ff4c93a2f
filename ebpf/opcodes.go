// Package ebpf defines the BPF-derived instruction encoding this toolchain
// reads: instruction classes, the opcode catalogue across sbpf dialects, and
// the decoded instruction record the disassembler consumes.
package ebpf

// Insn is one decoded instruction. Decoding raw 8/16-byte slots into this
// shape is done by the loader (out of scope here); this package only defines
// the shape and the opcode catalogue.
type Insn struct {
	Opc uint8
	Dst uint8 // 0..=15
	Src uint8 // 0..=15
	Off int16
	Imm int64

	// Ptr is this instruction's slot index within the program.
	Ptr uint64
}

// RegisterCount is the number of general-purpose BPF registers (r0..r10).
const RegisterCount = 11

// Instruction classes occupy the low 3 bits of the opcode byte, following
// the classic BPF layout (class | mode/size | source).
const (
	classLD    = 0x00
	classLDX   = 0x01
	classST    = 0x02
	classSTX   = 0x03
	classALU   = 0x04
	classJMP   = 0x05
	classPQR   = 0x06 // sbpf extension: extended multiply/divide/modulo
	classALU64 = 0x07
)

// Size bits (mask 0x18), valid for LD/LDX/ST/STX.
const (
	sizeW  = 0x00 // 32-bit
	sizeH  = 0x08 // 16-bit
	sizeB  = 0x10 // 8-bit
	sizeDW = 0x18 // 64-bit
)

// Addressing mode bits (mask 0x60) for the legacy LD/LDX/ST/STX encodings.
const (
	modeIMM = 0x00
	modeMEM = 0x60
)

// Source bit (mask 0x08): BPF_K (immediate) vs BPF_X (register), shared by
// ALU, ALU64, PQR and JMP classes.
const (
	srcK = 0x00
	srcX = 0x08
)

// BPF_LD class.
const LD_DW_IMM = classLD | sizeDW | modeIMM // lddw

// Legacy BPF_LDX / BPF_ST / BPF_STX memory opcodes, active when
// !move_memory_instruction_classes.
const (
	LD_B_REG  = classLDX | sizeB | modeMEM
	LD_H_REG  = classLDX | sizeH | modeMEM
	LD_W_REG  = classLDX | sizeW | modeMEM
	LD_DW_REG = classLDX | sizeDW | modeMEM

	ST_B_IMM  = classST | sizeB | modeMEM
	ST_H_IMM  = classST | sizeH | modeMEM
	ST_W_IMM  = classST | sizeW | modeMEM
	ST_DW_IMM = classST | sizeDW | modeMEM

	ST_B_REG  = classSTX | sizeB | modeMEM
	ST_H_REG  = classSTX | sizeH | modeMEM
	ST_W_REG  = classSTX | sizeW | modeMEM
	ST_DW_REG = classSTX | sizeDW | modeMEM
)

// "Moved" memory opcodes, active when move_memory_instruction_classes: the
// same load/store semantics, encoded with the IMM addressing mode bits
// instead of MEM so they never collide with the legacy encodings above.
// Exactly one of the two families is recognized for any given dialect.
const (
	LD_1B_REG = classLDX | sizeB | modeIMM
	LD_2B_REG = classLDX | sizeH | modeIMM
	LD_4B_REG = classLDX | sizeW | modeIMM
	LD_8B_REG = classLDX | sizeDW | modeIMM

	ST_1B_IMM = classST | sizeB | modeIMM
	ST_2B_IMM = classST | sizeH | modeIMM
	ST_4B_IMM = classST | sizeW | modeIMM
	ST_8B_IMM = classST | sizeDW | modeIMM

	ST_1B_REG = classSTX | sizeB | modeIMM
	ST_2B_REG = classSTX | sizeH | modeIMM
	ST_4B_REG = classSTX | sizeW | modeIMM
	ST_8B_REG = classSTX | sizeDW | modeIMM
)

// ALU op bits (mask 0xf0).
const (
	opADD  = 0x00
	opSUB  = 0x10
	opMUL  = 0x20
	opDIV  = 0x30
	opOR   = 0x40
	opAND  = 0x50
	opLSH  = 0x60
	opRSH  = 0x70
	opNEG  = 0x80
	opMOD  = 0x90
	opXOR  = 0xa0
	opMOV  = 0xb0
	opARSH = 0xc0
	opEND  = 0xd0 // le/be on ALU32, hor64 on ALU64
)

// BPF_ALU class (32-bit).
const (
	ADD32_IMM  = classALU | opADD | srcK
	ADD32_REG  = classALU | opADD | srcX
	SUB32_IMM  = classALU | opSUB | srcK
	SUB32_REG  = classALU | opSUB | srcX
	MUL32_IMM  = classALU | opMUL | srcK
	MUL32_REG  = classALU | opMUL | srcX
	DIV32_IMM  = classALU | opDIV | srcK
	DIV32_REG  = classALU | opDIV | srcX
	OR32_IMM   = classALU | opOR | srcK
	OR32_REG   = classALU | opOR | srcX
	AND32_IMM  = classALU | opAND | srcK
	AND32_REG  = classALU | opAND | srcX
	LSH32_IMM  = classALU | opLSH | srcK
	LSH32_REG  = classALU | opLSH | srcX
	RSH32_IMM  = classALU | opRSH | srcK
	RSH32_REG  = classALU | opRSH | srcX
	NEG32      = classALU | opNEG | srcK
	MOD32_IMM  = classALU | opMOD | srcK
	MOD32_REG  = classALU | opMOD | srcX
	XOR32_IMM  = classALU | opXOR | srcK
	XOR32_REG  = classALU | opXOR | srcX
	MOV32_IMM  = classALU | opMOV | srcK
	MOV32_REG  = classALU | opMOV | srcX
	ARSH32_IMM = classALU | opARSH | srcK
	ARSH32_REG = classALU | opARSH | srcX
	LE         = classALU | opEND | srcK
	BE         = classALU | opEND | srcX
)

// BPF_ALU64 class.
const (
	ADD64_IMM  = classALU64 | opADD | srcK
	ADD64_REG  = classALU64 | opADD | srcX
	SUB64_IMM  = classALU64 | opSUB | srcK
	SUB64_REG  = classALU64 | opSUB | srcX
	MUL64_IMM  = classALU64 | opMUL | srcK
	MUL64_REG  = classALU64 | opMUL | srcX
	DIV64_IMM  = classALU64 | opDIV | srcK
	DIV64_REG  = classALU64 | opDIV | srcX
	OR64_IMM   = classALU64 | opOR | srcK
	OR64_REG   = classALU64 | opOR | srcX
	AND64_IMM  = classALU64 | opAND | srcK
	AND64_REG  = classALU64 | opAND | srcX
	LSH64_IMM  = classALU64 | opLSH | srcK
	LSH64_REG  = classALU64 | opLSH | srcX
	RSH64_IMM  = classALU64 | opRSH | srcK
	RSH64_REG  = classALU64 | opRSH | srcX
	NEG64      = classALU64 | opNEG | srcK
	MOD64_IMM  = classALU64 | opMOD | srcK
	MOD64_REG  = classALU64 | opMOD | srcX
	XOR64_IMM  = classALU64 | opXOR | srcK
	XOR64_REG  = classALU64 | opXOR | srcX
	MOV64_IMM  = classALU64 | opMOV | srcK
	MOV64_REG  = classALU64 | opMOV | srcX
	ARSH64_IMM = classALU64 | opARSH | srcK
	ARSH64_REG = classALU64 | opARSH | srcX
	HOR64_IMM  = classALU64 | opEND | srcK // sbpf: load imm into the high 32 bits
)

// BPF_PQR class (sbpf extension, active when enable_pqr): extended
// multiply/divide/modulo. The op nibble packs (operation, width) together
// since the class byte has no separate width bit to spare.
const (
	pqrLMUL32  = classPQR | (0 << 4) | srcK
	pqrLMUL32X = classPQR | (0 << 4) | srcX
	pqrLMUL64  = classPQR | (1 << 4) | srcK
	pqrLMUL64X = classPQR | (1 << 4) | srcX

	pqrUHMUL64  = classPQR | (3 << 4) | srcK
	pqrUHMUL64X = classPQR | (3 << 4) | srcX
	pqrSHMUL64  = classPQR | (5 << 4) | srcK
	pqrSHMUL64X = classPQR | (5 << 4) | srcX

	pqrUDIV32  = classPQR | (6 << 4) | srcK
	pqrUDIV32X = classPQR | (6 << 4) | srcX
	pqrUDIV64  = classPQR | (7 << 4) | srcK
	pqrUDIV64X = classPQR | (7 << 4) | srcX

	pqrUREM32  = classPQR | (8 << 4) | srcK
	pqrUREM32X = classPQR | (8 << 4) | srcX
	pqrUREM64  = classPQR | (9 << 4) | srcK
	pqrUREM64X = classPQR | (9 << 4) | srcX

	pqrSDIV32  = classPQR | (10 << 4) | srcK
	pqrSDIV32X = classPQR | (10 << 4) | srcX
	pqrSDIV64  = classPQR | (11 << 4) | srcK
	pqrSDIV64X = classPQR | (11 << 4) | srcX

	pqrSREM32  = classPQR | (12 << 4) | srcK
	pqrSREM32X = classPQR | (12 << 4) | srcX
	pqrSREM64  = classPQR | (13 << 4) | srcK
	pqrSREM64X = classPQR | (13 << 4) | srcX
)

const (
	LMUL32_IMM  = pqrLMUL32
	LMUL32_REG  = pqrLMUL32X
	LMUL64_IMM  = pqrLMUL64
	LMUL64_REG  = pqrLMUL64X
	UHMUL64_IMM = pqrUHMUL64
	UHMUL64_REG = pqrUHMUL64X
	SHMUL64_IMM = pqrSHMUL64
	SHMUL64_REG = pqrSHMUL64X
	UDIV32_IMM  = pqrUDIV32
	UDIV32_REG  = pqrUDIV32X
	UDIV64_IMM  = pqrUDIV64
	UDIV64_REG  = pqrUDIV64X
	UREM32_IMM  = pqrUREM32
	UREM32_REG  = pqrUREM32X
	UREM64_IMM  = pqrUREM64
	UREM64_REG  = pqrUREM64X
	SDIV32_IMM  = pqrSDIV32
	SDIV32_REG  = pqrSDIV32X
	SDIV64_IMM  = pqrSDIV64
	SDIV64_REG  = pqrSDIV64X
	SREM32_IMM  = pqrSREM32
	SREM32_REG  = pqrSREM32X
	SREM64_IMM  = pqrSREM64
	SREM64_REG  = pqrSREM64X
)

// Jump op bits (mask 0xf0).
const (
	opJA   = 0x00
	opJEQ  = 0x10
	opJGT  = 0x20
	opJGE  = 0x30
	opJSET = 0x40
	opJNE  = 0x50
	opJSGT = 0x60
	opJSGE = 0x70
	opCALL = 0x80
	opEXIT = 0x90
	opSYS  = 0xa0
	opJLT  = 0xb0
	opJLE  = 0xc0
	opJSLT = 0xd0
	opJSLE = 0xe0
)

// BPF_JMP class.
const (
	JA       = classJMP | opJA | srcK
	JEQ_IMM  = classJMP | opJEQ | srcK
	JEQ_REG  = classJMP | opJEQ | srcX
	JGT_IMM  = classJMP | opJGT | srcK
	JGT_REG  = classJMP | opJGT | srcX
	JGE_IMM  = classJMP | opJGE | srcK
	JGE_REG  = classJMP | opJGE | srcX
	JSET_IMM = classJMP | opJSET | srcK
	JSET_REG = classJMP | opJSET | srcX
	JNE_IMM  = classJMP | opJNE | srcK
	JNE_REG  = classJMP | opJNE | srcX
	JSGT_IMM = classJMP | opJSGT | srcK
	JSGT_REG = classJMP | opJSGT | srcX
	JSGE_IMM = classJMP | opJSGE | srcK
	JSGE_REG = classJMP | opJSGE | srcX
	CALL_IMM = classJMP | opCALL | srcK
	CALL_REG = classJMP | opCALL | srcX
	EXIT     = classJMP | opEXIT | srcK
	RETURN   = classJMP | opEXIT | srcX // active when static_syscalls, replaces EXIT
	SYSCALL  = classJMP | opSYS | srcK  // active when static_syscalls
	JLT_IMM  = classJMP | opJLT | srcK
	JLT_REG  = classJMP | opJLT | srcX
	JLE_IMM  = classJMP | opJLE | srcK
	JLE_REG  = classJMP | opJLE | srcX
	JSLT_IMM = classJMP | opJSLT | srcK
	JSLT_REG = classJMP | opJSLT | srcX
	JSLE_IMM = classJMP | opJSLE | srcK
	JSLE_REG = classJMP | opJSLE | srcX
)
