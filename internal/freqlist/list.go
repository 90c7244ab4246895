package freqlist

import "github.com/nwillc/huffgo/internal/herrors"

// BadCount is the sentinel returned by (*List).Count for a nil receiver.
const BadCount uint64 = 0xFFFFFFFFFFFFFFFF

// List is a singly/doubly linked sequence of Nodes kept in non-decreasing
// Frequency order. New nodes are always inserted at the head and the list
// is re-sorted with a single forward sweep (fixOrder), which is sufficient
// because insertions start at the low end of the ordering.
type List struct {
	Head  *Node
	count uint64
}

// New returns an empty frequency list.
func New() *List {
	return &List{}
}

// Count returns the number of nodes currently in the list, or BadCount if
// the receiver is nil.
func (l *List) Count() uint64 {
	if l == nil {
		return BadCount
	}
	return l.count
}

func (l *List) push(n *Node) {
	if l.Head == nil {
		l.Head = n
		l.count++
		return
	}
	old := l.Head
	old.Prev = n
	n.Next = old
	n.Prev = nil
	l.Head = n
	l.count++
}

func (l *List) search(b byte) *Node {
	for n := l.Head; n != nil; n = n.Next {
		if n.IsLeaf && n.Byte == b {
			return n
		}
	}
	return nil
}

// swapForward exchanges n with its successor in the list, updating all
// neighboring links. n must have a non-nil Next.
func (l *List) swapForward(n *Node) {
	next := n.Next
	prev := n.Prev
	after := next.Next

	if prev != nil {
		prev.Next = next
	}
	next.Prev = prev
	next.Next = n
	n.Prev = next
	n.Next = after
	if after != nil {
		after.Prev = n
	}

	if l.Head == n {
		l.Head = next
	}
}

// fixOrder repeatedly swaps n forward while its successor has a strictly
// smaller frequency, restoring sort order after an increment or a head
// insertion. Comparison is strict (<): equal-frequency neighbors are left
// in place, so extraction order among ties reflects insertion recency.
func (l *List) fixOrder(n *Node) {
	for n.Next != nil && n.Next.Frequency < n.Frequency {
		l.swapForward(n)
	}
}

// AddOrIncrement implements two insertion regimes:
//
//   - byte == SentinelByte and freq != 0: insert a fresh internal node with
//     the given frequency at the head, without searching for an existing
//     entry.
//   - otherwise: search for an existing leaf with that byte. If found,
//     increment its frequency by exactly 1 (never by freq). If not found,
//     insert a fresh leaf at the head with frequency 1 (freq is ignored).
//
// In both insertion cases the list is re-sorted by a forward sweep from the
// affected node. AddOrIncrement returns the node that was inserted or
// incremented.
func (l *List) AddOrIncrement(b byte, freq uint64) *Node {
	special := b == SentinelByte && freq != 0

	var n *Node
	if special {
		n = newInternal(freq)
		l.push(n)
	} else {
		if existing := l.search(b); existing != nil {
			existing.Frequency++
			n = existing
		} else {
			n = newLeaf(b, 1)
			l.push(n)
		}
	}

	l.fixOrder(n)
	return n
}

// ExtractTwoMinima removes and returns the two smallest-frequency nodes
// (the list is kept sorted, so these are always the first two). It requires
// at least two nodes and severs the returned nodes' list links; the third
// node, if any, becomes the new head with Prev reset to nil.
func (l *List) ExtractTwoMinima() (first, second *Node, err error) {
	if l.Count() < 2 {
		return nil, nil, herrors.New(herrors.InvalidState, "extract_two_minima requires count >= 2, got %d", l.Count())
	}

	first = l.Head
	second = first.Next
	third := second.Next

	first.Next = nil
	first.Prev = nil
	second.Prev = nil
	second.Next = nil
	if third != nil {
		third.Prev = nil
	}

	l.Head = third
	l.count -= 2
	return first, second, nil
}
