// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ptree implements the arena-allocated axis-aligned partition tree
// explored by the Metropolis–Hastings sampler: bump allocation of node
// storage, the doubly-linked leaf-order traversal list, and the structural
// operations (attach, detach, replace, range computation) that the
// proposal kernels build on.
//
// Nodes are never freed individually. A node detached by Tree.Replace or
// Tree.Detach keeps its storage (and its children) in the arena, so a
// proposal kernel can restore the previous tree state by replacing the
// new node back with the old one.
package ptree

import (
	"fmt"

	"github.com/js-arias/tcluster/paramdef"
)

// Node is a node of a partition tree.
//
// A leaf has no children. A metric internal node holds len(Children)-1
// non-decreasing Cuts partitioning its inherited range along Param. A
// nominal internal node holds a Categories mapping from category index to
// child index.
type Node struct {
	Tree   *Tree
	Parent *Node
	Param  int

	Children   []*Node
	Cuts       []float64
	Categories []int

	// Prev and Next thread the tree's leaf-order traversal list.
	Prev, Next *Node

	// Aux is a transient slot used by segment extraction to stash a
	// pointer from a leaf to its Segment.
	Aux any
}

// IsLeaf reports whether node has no children.
func (node *Node) IsLeaf() bool {
	return len(node.Children) == 0
}

// Tree owns a contiguous, fixed-capacity arena of nodes, the parameter
// definition table it partitions, and the root and leaf-order list of the
// current tree state.
type Tree struct {
	ParamDef []paramdef.Def
	K        int

	arena []Node

	Root        *Node
	First, Last *Node
}

// NewTree creates a tree with a single leaf root and an arena able to
// hold up to capacity nodes.
func NewTree(capacity int, pd []paramdef.Def) (*Tree, error) {
	t := &Tree{
		ParamDef: pd,
		K:        len(pd),
		arena:    make([]Node, 0, capacity),
	}
	root, err := t.NewLeaf()
	if err != nil {
		return nil, err
	}
	t.Root = root
	t.Attach(root)
	return t, nil
}

// alloc bump-allocates a zero-valued node from the tree's arena. It
// returns ErrOutOfMemory when the arena has no room left.
func (t *Tree) alloc() (*Node, error) {
	if len(t.arena) == cap(t.arena) {
		return nil, ErrOutOfMemory
	}
	t.arena = append(t.arena, Node{Tree: t})
	return &t.arena[len(t.arena)-1], nil
}

// NewLeaf allocates a leaf node.
func (t *Tree) NewLeaf() (*Node, error) {
	return t.NewNode(0, 0, nil)
}

// NewNode allocates a node on parameter param with nchildren fresh leaf
// children. For a Metric parameter, partitioning is a []float64 of length
// nchildren-1 holding the sorted cuts. For a Nominal parameter, it is a
// []int of length pd.NCategories mapping category index to child index. A
// node with nchildren == 0 is a leaf and partitioning/param are ignored.
func (t *Tree) NewNode(param, nchildren int, partitioning any) (*Node, error) {
	node, err := t.alloc()
	if err != nil {
		return nil, err
	}
	node.Param = param
	node.Children = make([]*Node, nchildren)

	if nchildren > 0 {
		pd := t.ParamDef[param]
		switch pd.Type {
		case paramdef.Metric:
			cuts, ok := partitioning.([]float64)
			if !ok || len(cuts) != nchildren-1 {
				return nil, fmt.Errorf("ptree: NewNode: %w: want %d cuts", ErrInvalidArgument, nchildren-1)
			}
			node.Cuts = append([]float64(nil), cuts...)
		case paramdef.Nominal:
			cats, ok := partitioning.([]int)
			if !ok || len(cats) != pd.NCategories {
				return nil, fmt.Errorf("ptree: NewNode: %w: want %d categories", ErrInvalidArgument, pd.NCategories)
			}
			node.Categories = append([]int(nil), cats...)
		default:
			return nil, fmt.Errorf("ptree: NewNode: %w: unknown parameter type %v", ErrInvalidArgument, pd.Type)
		}
	}

	for i := 0; i < nchildren; i++ {
		child, err := t.NewLeaf()
		if err != nil {
			return nil, err
		}
		child.Parent = node
		node.Children[i] = child
	}
	return node, nil
}

// Attach appends node, and recursively its subtree, to the tail of the
// tree's leaf-order list.
func (t *Tree) Attach(node *Node) {
	node.Next = nil
	node.Prev = t.Last
	if t.Last != nil {
		t.Last.Next = node
	}
	t.Last = node
	if t.First == nil {
		t.First = node
	}
	for _, c := range node.Children {
		t.Attach(c)
	}
}

// Detach removes node, and recursively its subtree, from the tree's
// leaf-order list. The node's storage remains in the arena.
func (t *Tree) Detach(node *Node) {
	for _, c := range node.Children {
		t.Detach(c)
	}
	if node.Prev != nil {
		node.Prev.Next = node.Next
	}
	if node.Next != nil {
		node.Next.Prev = node.Prev
	}
	if t.Last == node {
		t.Last = node.Prev
	}
	if t.First == node {
		t.First = node.Next
	}
	node.Prev = nil
	node.Next = nil
}

// Replace splices node in place of orig: in orig.Parent.Children (or at
// the tree root if orig has no parent), then detaches orig and attaches
// node. It returns ErrInvalidArgument if orig and node belong to
// different trees.
func (t *Tree) Replace(orig, node *Node) error {
	if orig.Tree != node.Tree {
		return fmt.Errorf("ptree: Replace: %w", ErrInvalidArgument)
	}
	if orig.Parent != nil {
		i := FindChild(orig.Parent, orig)
		orig.Parent.Children[i] = node
		node.Parent = orig.Parent
		orig.Parent = nil
	} else {
		t.Root = node
	}
	t.Detach(orig)
	t.Attach(node)
	return nil
}

// FindChild returns the index of child in node.Children, or -1 if child
// is not a direct child of node.
func FindChild(node, child *Node) int {
	for i, c := range node.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// CheckTree reports whether tree satisfies the structural invariants
// (exactly one root with no parent, children pointing back to their
// parent, non-decreasing cuts). It is a debug assertion, not an
// acceptance-path check.
func CheckTree(t *Tree) bool {
	if t.ParamDef == nil || t.Root == nil || t.First == nil || t.Last == nil {
		return false
	}
	if t.Root.Parent != nil {
		return false
	}
	return checkSubtree(t, t.Root)
}

func checkSubtree(t *Tree, node *Node) bool {
	for _, c := range node.Children {
		if c.Parent != node {
			return false
		}
		if !checkSubtree(t, c) {
			return false
		}
	}
	if len(node.Children) > 0 && t.ParamDef[node.Param].Type == paramdef.Metric {
		for i := 1; i < len(node.Cuts); i++ {
			if node.Cuts[i] < node.Cuts[i-1] {
				return false
			}
		}
	}
	return true
}
