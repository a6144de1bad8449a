// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ptree

import "github.com/js-arias/tcluster/paramdef"

// IsSegment reports whether node is a leaf, i.e. a segment of the current
// partitioning.
func IsSegment(node *Node) bool {
	return node.IsLeaf()
}

// CountSegments returns the number of leaves in tree, walking the
// leaf-order list.
func CountSegments(t *Tree) int {
	n := 0
	for node := t.First; node != nil; node = node.Next {
		if IsSegment(node) {
			n++
		}
	}
	return n
}

// SelectSegment returns the s-th segment of tree in leaf-order, or nil if
// s is out of range. It is consistent with CountSegments: a uniform draw
// over [0, CountSegments(t)) selects each leaf with equal probability.
func SelectSegment(t *Tree, s int) *Node {
	n := 0
	for node := t.First; node != nil; node = node.Next {
		if IsSegment(node) {
			if n == s {
				return node
			}
			n++
		}
	}
	return nil
}

// IsSupersegment reports whether node is a candidate for merge or
// cut-move: an internal metric node with at least two adjacent leaf
// children, or (not implemented by the core kernels) an internal nominal
// node with at least two leaf children regardless of position.
func IsSupersegment(node *Node) bool {
	if node.IsLeaf() {
		return false
	}
	pd := node.Tree.ParamDef[node.Param]
	switch pd.Type {
	case paramdef.Metric:
		for i := 1; i < len(node.Children); i++ {
			if IsSegment(node.Children[i-1]) && IsSegment(node.Children[i]) {
				return true
			}
		}
		return false
	case paramdef.Nominal:
		s := 0
		for _, c := range node.Children {
			if IsSegment(c) {
				s++
			}
		}
		return s >= 2
	default:
		return false
	}
}

// CountSupersegments returns the number of supersegments in tree.
func CountSupersegments(t *Tree) int {
	n := 0
	for node := t.First; node != nil; node = node.Next {
		if IsSupersegment(node) {
			n++
		}
	}
	return n
}

// SelectSupersegment returns the ss-th supersegment of tree in
// leaf-order, or nil if ss is out of range.
func SelectSupersegment(t *Tree, ss int) *Node {
	i := 0
	for node := t.First; node != nil; node = node.Next {
		if IsSupersegment(node) {
			if i == ss {
				return node
			}
			i++
		}
	}
	return nil
}

// IsMovableCut reports whether cut i of the metric node node separates
// two leaves.
func IsMovableCut(node *Node, i int) bool {
	return IsSegment(node.Children[i]) && IsSegment(node.Children[i+1])
}

// CountMovableCuts returns the number of movable cuts of node.
func CountMovableCuts(node *Node) int {
	n := 0
	for i := 0; i+1 < len(node.Children); i++ {
		if IsMovableCut(node, i) {
			n++
		}
	}
	return n
}

// SelectMovableCut returns the index of the c-th movable cut of node, or
// -1 if c is out of range.
func SelectMovableCut(node *Node, c int) int {
	n := 0
	for i := 0; i+1 < len(node.Children); i++ {
		if IsMovableCut(node, i) {
			if n == c {
				return i
			}
			n++
		}
	}
	return -1
}
