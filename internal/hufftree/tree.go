// Package hufftree builds a Huffman tree from a frequency list, extracts a
// per-byte codebook from it by depth-first traversal, and serializes or
// deserializes the tree using a canonical pre-order binary layout. Grounded
// on huffman_tree.c/.h and the connect/parse/input/output/state_step
// functions therein.
package hufftree

import (
	"encoding/binary"
	"io"

	"github.com/nwillc/huffgo/internal/freqlist"
	"github.com/nwillc/huffgo/internal/herrors"
)

// Tree is a Huffman tree built from a frequency list, parsed for encoding,
// or reconstructed from a serialized container.
type Tree struct {
	Root   *freqlist.Node
	Count  uint64
	Parsed bool
}

// connect places children on parent following a fixed convention: the
// non-leaf child goes on the left unless both children are leaves, which
// keeps internal subtrees on the left and makes pre-order serialization
// predictable.
func connect(parent, a, b *freqlist.Node) error {
	if parent == nil {
		return herrors.New(herrors.InvalidArgument, "connect: nil parent")
	}
	if parent.IsLeaf {
		return herrors.New(herrors.InvalidArgument, "connect: parent must not be a leaf")
	}
	if b.IsLeaf {
		parent.Left = a
		parent.Right = b
	} else {
		parent.Left = b
		parent.Right = a
	}
	return nil
}

// Build repeatedly folds the two smallest-frequency entries of list into a
// fresh internal node until a single node remains, which becomes the root.
// It returns an error if list has fewer than two distinct entries, since a
// single-distinct-byte input cannot produce a usable codeword.
func Build(list *freqlist.List) (*Tree, error) {
	if list.Count() < 2 {
		return nil, herrors.New(herrors.InvalidState,
			"cannot build a tree from %d distinct byte value(s); inputs must contain at least two distinct bytes", list.Count())
	}

	var last *freqlist.Node
	for {
		a, b, err := list.ExtractTwoMinima()
		if err != nil {
			break
		}
		combined := a.Frequency + b.Frequency
		parent := list.AddOrIncrement(freqlist.SentinelByte, combined)
		if err := connect(parent, a, b); err != nil {
			return nil, err
		}
		last = parent
	}

	return &Tree{Root: last}, nil
}

// Codebook maps a byte value to its codeword, a string of '0'/'1'
// characters. Entries for bytes absent from the input are the empty
// string's absence, represented here by a false ok on lookup.
type Codebook [256]string

// Lookup reports the codeword for b and whether one exists.
func (c *Codebook) Lookup(b byte) (string, bool) {
	code := c[b]
	return code, code != ""
}

// Parse walks the tree depth-first (left before right), assigning '0' on
// every left step and '1' on every right step, and recomputes Count from
// scratch. It sets Parsed, which gates Serialize.
func (t *Tree) Parse() (*Codebook, error) {
	if t == nil || t.Root == nil {
		return nil, herrors.New(herrors.InvalidState, "cannot parse an empty tree")
	}

	var table Codebook
	var count uint64
	var buf []byte

	var walk func(n *freqlist.Node)
	walk = func(n *freqlist.Node) {
		count++
		if n.IsLeaf {
			table[n.Byte] = string(buf)
			return
		}
		if n.Left != nil {
			buf = append(buf, '0')
			walk(n.Left)
			buf = buf[:len(buf)-1]
		}
		if n.Right != nil {
			buf = append(buf, '1')
			walk(n.Right)
			buf = buf[:len(buf)-1]
		}
	}
	walk(t.Root)

	t.Count = count
	t.Parsed = true
	return &table, nil
}

// Serialize writes a little-endian u64 node count followed by a pre-order
// sequence of {byte, is_leaf} pairs to w at offset, gated on the tree
// having been parsed. It returns the offset immediately past the last node.
func (t *Tree) Serialize(w io.WriterAt, offset uint64) (uint64, error) {
	if t == nil || !t.Parsed {
		return 0, herrors.New(herrors.InvalidState, "cannot serialize an unparsed tree")
	}
	if t.Count < 1 {
		return 0, herrors.New(herrors.InvalidState, "cannot serialize an empty tree")
	}

	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], t.Count)
	if err := pwriteAll(w, countBuf[:], offset); err != nil {
		return 0, herrors.Wrap(herrors.IoShort, err, "writing tree node count")
	}
	offset += 8

	var writeNode func(n *freqlist.Node) error
	writeNode = func(n *freqlist.Node) error {
		isLeaf := byte(0)
		if n.IsLeaf {
			isLeaf = 1
		}
		if err := pwriteAll(w, []byte{n.Byte, isLeaf}, offset); err != nil {
			return herrors.Wrap(herrors.IoShort, err, "writing tree node")
		}
		offset += 2

		if n.Left != nil {
			if err := writeNode(n.Left); err != nil {
				return err
			}
		}
		if n.Right != nil {
			if err := writeNode(n.Right); err != nil {
				return err
			}
		}
		return nil
	}
	if err := writeNode(t.Root); err != nil {
		return 0, err
	}
	return offset, nil
}

// HeaderSize returns the byte offset at which the payload begins for a
// serialized tree of count nodes: 8 bytes for the count plus 2 bytes per
// node.
func HeaderSize(count uint64) uint64 {
	return 8 + 2*count
}

// Deserialize reads a tree written by Serialize from r starting at offset
// 0. It uses an explicit recursive reader that threads the next unread
// node index rather than relying on index arithmetic over returned values.
func Deserialize(r io.ReaderAt) (*Tree, error) {
	var countBuf [8]byte
	if err := preadAll(r, countBuf[:], 0); err != nil {
		return nil, herrors.Wrap(herrors.IoShort, err, "reading tree node count")
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	if count < 1 {
		return nil, herrors.New(herrors.InvalidState, "serialized tree has zero nodes")
	}

	next := uint64(0)
	readNode := func() (*freqlist.Node, error) {
		if next >= count {
			return nil, herrors.New(herrors.IoShort, "tree container truncated: expected %d nodes", count)
		}
		offset := 8 + 2*next
		var buf [2]byte
		if err := preadAll(r, buf[:], offset); err != nil {
			return nil, herrors.Wrap(herrors.IoShort, err, "reading tree node %d", next)
		}
		next++
		return &freqlist.Node{Byte: buf[0], IsLeaf: buf[1] != 0}, nil
	}

	var decode func() (*freqlist.Node, error)
	decode = func() (*freqlist.Node, error) {
		n, err := readNode()
		if err != nil {
			return nil, err
		}
		if n.IsLeaf {
			return n, nil
		}
		left, err := decode()
		if err != nil {
			return nil, err
		}
		right, err := decode()
		if err != nil {
			return nil, err
		}
		n.Left = left
		n.Right = right
		return n, nil
	}

	root, err := decode()
	if err != nil {
		return nil, err
	}
	if next != count {
		return nil, herrors.New(herrors.IoShort, "tree container declared %d nodes, read %d", count, next)
	}

	return &Tree{Root: root, Count: count, Parsed: true}, nil
}

// StateStep moves cursor to its left child on opcode 0 or right child on
// opcode 1. If the new cursor is a leaf, it emits the leaf's byte and
// resets cursor to root; otherwise nothing is emitted. opcode must be 0 or
// 1 and cursor must be non-nil.
func (t *Tree) StateStep(cursor *freqlist.Node, opcode int) (next *freqlist.Node, emitted byte, ok bool, err error) {
	if cursor == nil {
		return nil, 0, false, herrors.New(herrors.InvalidArgument, "state_step: nil cursor")
	}
	switch opcode {
	case 0:
		next = cursor.Left
	case 1:
		next = cursor.Right
	default:
		return nil, 0, false, herrors.New(herrors.InvalidArgument, "state_step: invalid opcode %d", opcode)
	}
	if next == nil {
		return nil, 0, false, herrors.New(herrors.InvalidState, "state_step: walked off the tree")
	}
	if next.IsLeaf {
		return t.Root, next.Byte, true, nil
	}
	return next, 0, false, nil
}

func pwriteAll(w io.WriterAt, p []byte, offset uint64) error {
	n, err := w.WriteAt(p, int64(offset))
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

func preadAll(r io.ReaderAt, p []byte, offset uint64) error {
	n, err := r.ReadAt(p, int64(offset))
	if n == len(p) {
		return nil
	}
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return err
}
