// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ptree

import (
	"math"

	"github.com/js-arias/tcluster/paramdef"
)

// Range is the domain of a parameter as inherited by a node: the
// metric bounds Min/Max, plus the category list for a nominal parameter
// (unused by the core, reserved for the nominal code paths).
type Range struct {
	Min, Max   float64
	Categories []int
}

// Width returns Max - Min.
func (r Range) Width() float64 {
	return r.Max - r.Min
}

// NodeRange computes the range of node in parameter param: the domain
// declared in the parameter table, intersected with every cut imposed by
// an ancestor that splits on param, choosing the side corresponding to
// the child actually taken. Cuts are treated as inclusive upper bounds on
// the lower child.
func NodeRange(node *Node, param int) Range {
	pd := node.Tree.ParamDef[param]
	r := Range{Min: pd.Min, Max: pd.Max}

	n := node.Parent
	child := node
	for n != nil {
		if n.Param == param {
			switch pd.Type {
			case paramdef.Metric:
				i := FindChild(n, child)
				if i != 0 {
					r.Min = math.Max(r.Min, n.Cuts[i-1])
				}
				if i+1 != len(n.Children) {
					r.Max = math.Min(r.Max, n.Cuts[i])
				}
			default:
				// Nominal ranges are not implemented.
			}
		}
		child = n
		n = n.Parent
	}
	return r
}
