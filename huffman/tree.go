package huffman

import "container/heap"

// noChild marks a missing child link in the node arena.
const noChild = -1

// node is one slot in a Tree's arena. Leaves carry a symbol and no
// children; internal nodes carry no symbol.
type node struct {
	freq        uint64
	left, right int32
	symbol      byte
	leaf        bool
}

func (n *node) isLeaf() bool {
	return n.leaf
}

// Tree is a binary prefix tree stored as an arena of nodes referenced by
// index. Parents own their children exclusively; the whole tree is released
// at once when the Tree is dropped.
type Tree struct {
	nodes []node
	root  int32
}

func (t *Tree) add(n node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Leaves returns the number of leaves, i.e. the number of coded symbols.
func (t *Tree) Leaves() int {
	if t == nil {
		return 0
	}
	n := 0
	for i := range t.nodes {
		if t.nodes[i].isLeaf() {
			n++
		}
	}
	return n
}

// BuildTree builds the Huffman tree for ft by repeatedly merging the two
// lowest-frequency nodes.
//
// Ties are broken by insertion order: leaves are queued in ascending symbol
// order and every merged node is queued after everything already present, so
// among equal frequencies the older node is taken first. The first node taken
// in a merge becomes the left child.
//
// BuildTree returns nil when ft is empty. A table with a single distinct
// symbol yields a tree whose root is that symbol's leaf.
func BuildTree(ft FrequencyTable) *Tree {
	distinct := ft.Distinct()
	if distinct == 0 {
		return nil
	}
	t := &Tree{nodes: make([]node, 0, 2*distinct-1)}
	q := make(mergeQueue, 0, distinct)
	var seq uint32
	for sym, freq := range ft {
		if freq == 0 {
			continue
		}
		idx := t.add(node{freq: freq, left: noChild, right: noChild, symbol: byte(sym), leaf: true})
		q = append(q, mergeItem{freq: freq, seq: seq, node: idx})
		seq++
	}
	heap.Init(&q)
	for q.Len() > 1 {
		a := heap.Pop(&q).(mergeItem)
		b := heap.Pop(&q).(mergeItem)
		sum := a.freq + b.freq
		idx := t.add(node{freq: sum, left: a.node, right: b.node})
		heap.Push(&q, mergeItem{freq: sum, seq: seq, node: idx})
		seq++
	}
	t.root = heap.Pop(&q).(mergeItem).node
	return t
}

// mergeQueue is the priority queue used while building a tree.

type mergeItem struct {
	freq uint64
	seq  uint32
	node int32
}

type mergeQueue []mergeItem

func (q mergeQueue) Len() int { return len(q) }
func (q mergeQueue) Less(i, j int) bool {
	if q[i].freq != q[j].freq {
		return q[i].freq < q[j].freq
	}
	return q[i].seq < q[j].seq
}
func (q mergeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *mergeQueue) Push(x any) {
	*q = append(*q, x.(mergeItem))
}

func (q *mergeQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[0 : n-1]
	return x
}
