package ebpf

// CfgNode labels one instruction index as a basic block leader. The
// control-flow graph builder that partitions a program and assigns these
// labels is out of scope for this module; CfgNodes only carries the shape
// the disassembler reads from.
type CfgNode struct {
	Label string
}

// CfgNodes is the read-only index-to-node mapping the disassembler
// resolves branch targets against.
type CfgNodes map[uint64]CfgNode

// Label returns the node label at pc, or ok=false if pc has no node.
func (nodes CfgNodes) Label(pc uint64) (string, bool) {
	node, ok := nodes[pc]
	if !ok {
		return "", false
	}
	return node.Label, true
}
