package huffpack

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"
)

// Tree is a Huffman code tree stored as an arena of nodes.  Children are
// referenced by index, so the whole tree is released with the slice.
//
// Leaves occupy indices [0, NumLeaves()) in ascending symbol order; internal
// nodes follow in the order they were created, and the root is always the
// last node.
type Tree struct {
	nodes     []treeNode
	numLeaves int
}

type treeNode struct {
	symbol Symbol
	weight uint64
	left   int32
	right  int32
}

const noChild = int32(-1)

func (n treeNode) isLeaf() bool {
	return n.left == noChild
}

// BuildTree constructs the Huffman tree for the given frequencies by
// repeatedly merging the two lightest nodes.
//
// Ties are broken by creation order: leaves (in ascending symbol order)
// before internal nodes, and older internal nodes before newer ones.  The
// first node taken from the queue becomes the left child.  The resulting
// tree is therefore a pure function of the frequency table.
//
// A table with a single distinct symbol yields a tree consisting of one
// leaf.  An empty table yields ErrEmptyInput.
//
func BuildTree(ft FrequencyTable) (*Tree, error) {
	symbols := ft.Symbols()
	numLeaves := len(symbols)
	if numLeaves == 0 {
		return nil, ErrEmptyInput
	}

	t := &Tree{
		nodes:     make([]treeNode, 0, 2*numLeaves-1),
		numLeaves: numLeaves,
	}

	// Step 1: one leaf per symbol, then build a minheap over them.

	h := nodeHeap{tree: t, list: make([]int32, 0, numLeaves)}
	for _, symbol := range symbols {
		index := int32(len(t.nodes))
		t.nodes = append(t.nodes, treeNode{
			symbol: symbol,
			weight: ft.Count(symbol),
			left:   noChild,
			right:  noChild,
		})
		h.list = append(h.list, index)
	}
	h.Init()

	// Step 2: pop the two lightest nodes, combine them into a new internal
	// node, and push that back until only the root remains.

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		index := int32(len(t.nodes))
		t.nodes = append(t.nodes, treeNode{
			symbol: InvalidSymbol,
			weight: t.nodes[a].weight + t.nodes[b].weight,
			left:   a,
			right:  b,
		})
		heap.Push(&h, index)
	}

	return t, nil
}

// NumLeaves returns the number of distinct symbols in the tree.
func (t *Tree) NumLeaves() int {
	return t.numLeaves
}

// IsSingleSymbol returns true iff the tree holds exactly one symbol, in which
// case no merge took place and the root is itself a leaf.
func (t *Tree) IsSingleSymbol() bool {
	return t.numLeaves == 1
}

// Weight returns the total weight of the tree, i.e. the input length.
func (t *Tree) Weight() uint64 {
	return t.nodes[t.root()].weight
}

func (t *Tree) root() int32 {
	return int32(len(t.nodes) - 1)
}

// walk visits every leaf with its root-to-leaf path, going left
// (bit 0) before right (bit 1).  The single-symbol tree reports its lone leaf
// at depth 0 with an empty path.
func (t *Tree) walk(visit func(symbol Symbol, path Code)) {
	// We use stackItem.x to keep track of where we are in the tree walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		node int32
		path Code
		x    byte
	}

	root := t.root()
	if t.nodes[root].isLeaf() {
		visit(t.nodes[root].symbol, Code{})
		return
	}

	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: root})

	processChild := func(child int32, path Code) {
		n := t.nodes[child]
		if n.isLeaf() {
			visit(n.symbol, path)
			return
		}
		stack = append(stack, stackItem{node: child, path: path})
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(t.nodes[top.node].left, top.path.Append(0))
		case 1:
			processChild(t.nodes[top.node].right, top.path.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// Dump writes a programmer-readable debugging dump of the Tree to the given
// writer.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	for index, n := range t.nodes {
		if n.isLeaf() {
			fmt.Fprintf(&buf, "\t[%d] = {symbol: %d, weight: %d}\n", index, n.symbol, n.weight)
		} else {
			fmt.Fprintf(&buf, "\t[%d] = {left: %d, right: %d, weight: %d}\n", index, n.left, n.right, n.weight)
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	list []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	ai, bi := h.list[i], h.list[j]
	a, b := h.tree.nodes[ai].weight, h.tree.nodes[bi].weight
	if a != b {
		return a < b
	}
	return ai < bi
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
