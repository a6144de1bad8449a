// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package segment extracts the leaf-order segments of a partition tree:
// for each leaf, the inherited per-parameter range, its volume, and the
// count of observations routed to it.
package segment

import (
	"fmt"
	"math"

	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/rng"
)

// Segment is a leaf of a partition tree together with the count of
// observations that landed in it and its volume.
type Segment struct {
	// NX is the number of observations routed to this segment.
	NX int

	// V is the volume of the segment: the product over parameters of
	// (max - min) for the segment's range, with a zero-width range
	// contributing a factor of 1.
	V float64

	// Ranges holds the per-parameter range of the segment, in
	// parameter order.
	Ranges []ptree.Range
}

// Extract walks tree in leaf order to build one Segment per leaf, then
// routes every one of the n observations in ds (ds[k][i] is the value of
// parameter k for observation i) to its leaf, incrementing that leaf's
// NX.
//
// A NaN value for a metric parameter is routed probabilistically, weighted
// by the width of each child in that parameter.
func Extract(tree *ptree.Tree, ds [][]float64, n int) ([]Segment, error) {
	s := ptree.CountSegments(tree)
	segments := make([]Segment, s)

	i := 0
	for node := tree.First; node != nil; node = node.Next {
		if !ptree.IsSegment(node) {
			continue
		}
		seg := &segments[i]
		seg.Ranges = make([]ptree.Range, tree.K)
		seg.V = 1
		for k := 0; k < tree.K; k++ {
			r := ptree.NodeRange(node, k)
			seg.Ranges[k] = r
			if w := r.Width(); w > 0 {
				seg.V *= w
			}
		}
		node.Aux = seg
		i++
	}

	for row := 0; row < n; row++ {
		node := tree.Root
		for !ptree.IsSegment(node) {
			child, err := route(tree, node, ds, row)
			if err != nil {
				return nil, err
			}
			node = child
		}
		seg := node.Aux.(*Segment)
		seg.NX++
	}

	return segments, nil
}

// route picks the child of node that observation row is assigned to.
func route(tree *ptree.Tree, node *ptree.Node, ds [][]float64, row int) (*ptree.Node, error) {
	pd := tree.ParamDef[node.Param]
	switch pd.Type {
	case paramdef.Metric:
		x := ds[node.Param][row]
		if math.IsNaN(x) {
			weights := make([]float64, len(node.Children))
			for i, c := range node.Children {
				weights[i] = ptree.NodeRange(c, node.Param).Width()
			}
			return node.Children[rng.SampleWeighted(weights)], nil
		}
		idx := len(node.Cuts)
		for i, c := range node.Cuts {
			if x <= c {
				idx = i
				break
			}
		}
		return node.Children[idx], nil
	case paramdef.Nominal:
		x := int(ds[node.Param][row])
		if x < 0 || x >= len(node.Categories) {
			return nil, fmt.Errorf("segment: category %d out of range for parameter %d", x, node.Param)
		}
		return node.Children[node.Categories[x]], nil
	default:
		return nil, fmt.Errorf("segment: unknown parameter type %v", pd.Type)
	}
}
