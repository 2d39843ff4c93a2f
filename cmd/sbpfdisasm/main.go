package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/Counter-Counter/sbpf/disasm"
	"github.com/Counter-Counter/sbpf/ebpf"
	"github.com/Counter-Counter/sbpf/elf"
)

const insnSize = 8

// decodeInsn reads one 8-byte slot (plus, for lddw, the following 8-byte
// slot) into an ebpf.Insn. This glue lives in the example binary, not the
// ebpf package: a real loader would also validate slot counts against
// program-length invariants this toy sweep does not attempt.
func decodeInsn(raw []byte, ptr uint64) (ebpf.Insn, int) {
	insn := ebpf.Insn{
		Opc: raw[0],
		Dst: raw[1] & 0x0f,
		Src: raw[1] >> 4,
		Off: int16(binary.LittleEndian.Uint16(raw[2:4])),
		Imm: int64(int32(binary.LittleEndian.Uint32(raw[4:8]))),
		Ptr: ptr,
	}

	if insn.Opc == ebpf.LD_DW_IMM && len(raw) >= 2*insnSize {
		hi := int64(int32(binary.LittleEndian.Uint32(raw[12:16])))
		insn.Imm = (hi << 32) | (insn.Imm & 0xffffffff)
		return insn, 2 * insnSize
	}

	return insn, insnSize
}

// buildToyCfg labels every slot index a jump targets. It is a
// linear-sweep substitute for a real basic-block partitioner: it does not
// detect unreachable code, does not follow indirect calls, and assumes
// straight-line decoding never misaligns on a lddw's second slot.
func buildToyCfg(insns []ebpf.Insn) ebpf.CfgNodes {
	nodes := ebpf.CfgNodes{}
	label := func(pc uint64) {
		if _, ok := nodes[pc]; !ok {
			nodes[pc] = ebpf.CfgNode{Label: fmt.Sprintf("L%d", pc)}
		}
	}

	for _, insn := range insns {
		pc := insn.Ptr
		switch insn.Opc {
		case ebpf.JA,
			ebpf.JEQ_IMM, ebpf.JEQ_REG, ebpf.JGT_IMM, ebpf.JGT_REG,
			ebpf.JGE_IMM, ebpf.JGE_REG, ebpf.JSET_IMM, ebpf.JSET_REG,
			ebpf.JNE_IMM, ebpf.JNE_REG, ebpf.JSGT_IMM, ebpf.JSGT_REG,
			ebpf.JSGE_IMM, ebpf.JSGE_REG, ebpf.JLT_IMM, ebpf.JLT_REG,
			ebpf.JLE_IMM, ebpf.JLE_REG, ebpf.JSLT_IMM, ebpf.JSLT_REG,
			ebpf.JSLE_IMM, ebpf.JSLE_REG:

			label(pc + uint64(int64(insn.Off)) + 1)
		}
	}

	return nodes
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("USAGE: sbpfdisasm <file>")
		os.Exit(1)
	}

	content, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}

	file, err := elf.ParseBytes(content)
	if err != nil {
		panic(err)
	}

	section, ok := file.GetSection(".text")
	if !ok {
		fmt.Println("no .text section")
		os.Exit(1)
	}

	raw, ok := sectionBytes(section)
	if !ok {
		fmt.Println(".text section has no readable content")
		os.Exit(1)
	}

	var insns []ebpf.Insn
	for offset := 0; offset+insnSize <= len(raw); {
		insn, consumed := decodeInsn(raw[offset:], uint64(offset/insnSize))
		insns = append(insns, insn)
		offset += consumed
	}

	cfgNodes := buildToyCfg(insns)
	version := ebpf.V3

	for _, insn := range insns {
		label, hasLabel := cfgNodes.Label(insn.Ptr)
		prefix := ""
		if hasLabel {
			prefix = label + ": "
		}

		text := disasm.DisassembleInstruction(
			insn,
			insn.Ptr,
			cfgNodes,
			nil,
			nil,
			version,
			func(note string) { fmt.Fprintln(os.Stderr, note) })

		fmt.Printf("%4d: %s%s\n", insn.Ptr, prefix, text)
	}
}

func sectionBytes(section elf.Section) ([]byte, bool) {
	content, err := section.RawContent()
	if err != nil {
		return nil, false
	}
	return content, true
}
