package huffman

import (
	"fmt"
	"strings"
)

// A Code is the bit path from the root to a leaf, written as '0' (left) and
// '1' (right) characters.
type Code string

// CodeTable maps each symbol to its code. The zero value has no entries.
type CodeTable struct {
	codes [NumSymbols]Code
	has   [NumSymbols]bool
}

// Lookup returns the code for sym and whether sym has one.
func (ct *CodeTable) Lookup(sym byte) (Code, bool) {
	return ct.codes[sym], ct.has[sym]
}

// Set assigns code c to sym.
func (ct *CodeTable) Set(sym byte, c Code) {
	ct.codes[sym] = c
	ct.has[sym] = true
}

// Len returns the number of symbols that have a code.
func (ct *CodeTable) Len() int {
	n := 0
	for _, ok := range ct.has {
		if ok {
			n++
		}
	}
	return n
}

// Symbols returns the coded symbols in ascending order.
func (ct *CodeTable) Symbols() []byte {
	syms := make([]byte, 0, NumSymbols)
	for sym, ok := range ct.has {
		if ok {
			syms = append(syms, byte(sym))
		}
	}
	return syms
}

func (ct *CodeTable) String() string {
	var sb strings.Builder
	for _, sym := range ct.Symbols() {
		fmt.Fprintf(&sb, "(%d %s) ", sym, ct.codes[sym])
	}
	return strings.TrimSpace(sb.String())
}

// Codes walks the tree depth first and returns the code of every leaf.
// A tree that is a single leaf assigns that symbol the empty code.
func (t *Tree) Codes() CodeTable {
	var ct CodeTable
	if t == nil || len(t.nodes) == 0 {
		return ct
	}
	type frame struct {
		idx  int32
		path string
	}
	stack := []frame{{idx: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.idx]
		if n.isLeaf() {
			ct.Set(n.symbol, Code(f.path))
			continue
		}
		// right is pushed first so the left subtree is visited first
		stack = append(stack, frame{idx: n.right, path: f.path + "1"})
		stack = append(stack, frame{idx: n.left, path: f.path + "0"})
	}
	return ct
}

// DecodingTree rebuilds a tree from the code table by replaying every code
// as a path from the root, creating internal nodes on the way and placing the
// symbol at the end of the path.
//
// It fails with ErrInvalidCode if a code contains a character other than '0'
// or '1', if one code is a prefix of another, or if the empty code appears
// next to other codes.
func (ct *CodeTable) DecodingTree() (*Tree, error) {
	syms := ct.Symbols()
	if len(syms) == 0 {
		return nil, nil
	}
	t := &Tree{nodes: make([]node, 0, 2*len(syms)-1)}
	if len(syms) == 1 && ct.codes[syms[0]] == "" {
		t.root = t.add(node{left: noChild, right: noChild, symbol: syms[0], leaf: true})
		return t, nil
	}
	t.root = t.add(node{left: noChild, right: noChild})
	for _, sym := range syms {
		code := ct.codes[sym]
		if code == "" {
			return nil, fmt.Errorf("%w: empty code for symbol %d", ErrInvalidCode, sym)
		}
		cur := t.root
		for i := 0; i < len(code); i++ {
			if t.nodes[cur].isLeaf() {
				return nil, fmt.Errorf("%w: code for symbol %d extends another code", ErrInvalidCode, sym)
			}
			last := i == len(code)-1
			var next *int32
			switch code[i] {
			case '0':
				next = &t.nodes[cur].left
			case '1':
				next = &t.nodes[cur].right
			default:
				return nil, fmt.Errorf("%w: bit %q in code for symbol %d", ErrInvalidCode, code[i], sym)
			}
			if *next != noChild {
				if last {
					return nil, fmt.Errorf("%w: code for symbol %d is a prefix of another code", ErrInvalidCode, sym)
				}
				cur = *next
				continue
			}
			child := node{left: noChild, right: noChild}
			if last {
				child.symbol = sym
				child.leaf = true
			}
			// add may grow the arena, so the link is written through the index afterwards
			idx := t.add(child)
			if code[i] == '0' {
				t.nodes[cur].left = idx
			} else {
				t.nodes[cur].right = idx
			}
			cur = idx
		}
	}
	return t, nil
}
