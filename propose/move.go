// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package propose

import (
	"math"

	"github.com/js-arias/tcluster/likelihood"
	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/rng"
)

// Move proposes displacing one movable cut of a randomly chosen
// supersegment by a truncated-normal step. l is the tree's current
// log-likelihood and moveSDFrac scales the proposal's standard deviation
// as a fraction of the combined width of the two leaves the cut
// separates.
func Move(tree *ptree.Tree, ds [][]float64, n int, l float64, moveSDFrac float64) (float64, Outcome, error) {
	SS := ptree.CountSupersegments(tree)
	if SS == 0 {
		return l, Skipped, nil
	}
	ss := rng.SampleUniform(SS)
	node := ptree.SelectSupersegment(tree, ss)

	pd := tree.ParamDef[node.Param]
	if pd.Type != paramdef.Metric {
		return l, Rejected, ErrNotImplemented
	}

	c := rng.SampleUniform(ptree.CountMovableCuts(node))
	i := ptree.SelectMovableCut(node, c)
	cut := node.Cuts[i]

	w1 := ptree.NodeRange(node.Children[i], node.Param).Width()
	w2 := ptree.NodeRange(node.Children[i+1], node.Param).Width()
	if w1 <= pd.FragmentSize && w2 <= pd.FragmentSize {
		return l, Skipped, nil
	}

	delta := rng.Rtnorm(0, (w1+w2)*moveSDFrac, -w1, w2)
	if pd.FragmentSize > 0 {
		delta -= math.Mod(delta, pd.FragmentSize)
	}
	if delta == 0 {
		return l, Skipped, nil
	}

	node.Cuts[i] = cut + delta
	lx := likelihood.LogLikelihood(tree, ds, n)
	if rng.Bernoulli(math.Min(1, math.Exp(lx-l))) {
		return lx, Accepted, nil
	}
	node.Cuts[i] = cut
	return l, Rejected, nil
}
