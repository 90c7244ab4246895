// Package freqlist implements the frequency-ordered linked structure used
// to fold byte frequencies into a Huffman tree, and the dual-role Node type
// that serves as both a list link and a tree node: leaves carry a byte
// value, internal nodes carry two children, and every node is threaded
// through Prev/Next while it is still part of a List.
package freqlist

// SentinelByte is the reserved element value used to force fresh insertion
// of internal (non-leaf) nodes during list construction. A literal 0xFF
// input byte is still treated as an ordinary leaf, disambiguated by the
// caller passing a zero frequency for genuine byte occurrences.
const SentinelByte byte = 0xFF

// Node is both a frequency-list link and a Huffman tree node: leaves carry
// a meaningful Byte, internal nodes carry two children, and every node
// carries the Prev/Next pointers used only while it is still part of a
// List.
type Node struct {
	Byte      byte
	IsLeaf    bool
	Frequency uint64

	Left  *Node
	Right *Node

	Prev *Node
	Next *Node
}

func newLeaf(b byte, frequency uint64) *Node {
	return &Node{Byte: b, IsLeaf: true, Frequency: frequency}
}

func newInternal(frequency uint64) *Node {
	// The sentinel byte value occupies the Byte field at construction time
	// only; readers must not trust it; decode ignores it entirely.
	return &Node{Byte: SentinelByte, IsLeaf: false, Frequency: frequency}
}
