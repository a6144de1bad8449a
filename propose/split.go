// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package propose

import (
	"math"
	"slices"

	"github.com/js-arias/tcluster/likelihood"
	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/rng"
)

// Split proposes introducing a new cut inside a randomly chosen segment,
// on a randomly chosen parameter. l is the tree's current log-likelihood.
// maxSegments, when positive, skips the proposal once the tree already
// holds that many segments.
//
// It returns the tree's log-likelihood after the trial (unchanged from l
// on Rejected or Skipped) and the trial's Outcome.
func Split(tree *ptree.Tree, ds [][]float64, n int, l float64, maxSegments int) (float64, Outcome, error) {
	S := ptree.CountSegments(tree)
	if maxSegments > 0 && S >= maxSegments {
		return l, Skipped, nil
	}

	s := rng.SampleUniform(S)
	node := ptree.SelectSegment(tree, s)
	k := rng.SampleUniform(tree.K)
	parent := node.Parent

	pd := tree.ParamDef[k]
	if pd.Type != paramdef.Metric {
		return l, Rejected, ErrNotImplemented
	}

	r := ptree.NodeRange(node, k)
	if r.Width() <= pd.FragmentSize {
		return l, Skipped, nil
	}
	cut := (r.Min + pd.FragmentSize) + rng.Frand1()*(r.Max-(r.Min+pd.FragmentSize))
	if pd.FragmentSize > 0 {
		cut -= math.Mod(cut, pd.FragmentSize)
	}

	if parent != nil && k == parent.Param {
		return splitSameParam(tree, ds, n, l, parent, node, cut)
	}
	return splitNewNode(tree, ds, n, l, k, node, cut)
}

// splitNewNode handles the case where node's parent does not already
// split on the chosen parameter: a fresh binary node replaces node.
func splitNewNode(tree *ptree.Tree, ds [][]float64, n int, l float64, k int, node *ptree.Node, cut float64) (float64, Outcome, error) {
	newNode, err := tree.NewNode(k, 2, []float64{cut})
	if err != nil {
		return l, Rejected, err
	}
	if err := tree.Replace(node, newNode); err != nil {
		return l, Rejected, err
	}

	lx := likelihood.LogLikelihood(tree, ds, n)
	if rng.Bernoulli(math.Min(1, math.Exp(lx-l))) {
		return lx, Accepted, nil
	}
	if err := tree.Replace(newNode, node); err != nil {
		return l, Rejected, err
	}
	return l, Rejected, nil
}

// splitSameParam handles the case where node's parent already splits on
// the chosen parameter: the cut is inserted into the parent's cut
// vector, and the parent is replaced by a node with one more child,
// migrating every original sibling but node itself into the
// corresponding position.
func splitSameParam(tree *ptree.Tree, ds [][]float64, n int, l float64, parent, node *ptree.Node, cut float64) (float64, Outcome, error) {
	i := ptree.FindChild(parent, node)
	cuts := slices.Insert(slices.Clone(parent.Cuts), i, cut)

	newNode, err := tree.NewNode(parent.Param, len(parent.Children)+1, cuts)
	if err != nil {
		return l, Rejected, err
	}
	siblings := slices.Clone(parent.Children)
	if err := tree.Replace(parent, newNode); err != nil {
		return l, Rejected, err
	}

	for j := 0; j < i; j++ {
		if err := tree.Replace(newNode.Children[j], siblings[j]); err != nil {
			return l, Rejected, err
		}
	}
	for j := i + 1; j < len(siblings); j++ {
		if err := tree.Replace(newNode.Children[j+1], siblings[j]); err != nil {
			return l, Rejected, err
		}
	}

	lx := likelihood.LogLikelihood(tree, ds, n)
	if rng.Bernoulli(math.Min(1, math.Exp(lx-l))) {
		return lx, Accepted, nil
	}

	if err := tree.Replace(newNode, parent); err != nil {
		return l, Rejected, err
	}
	for _, c := range parent.Children {
		c.Parent = parent
	}
	return l, Rejected, nil
}
