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

// Merge proposes removing one movable cut of a randomly chosen
// supersegment, collapsing the two leaves it separates into one wider
// leaf. l is the tree's current log-likelihood.
func Merge(tree *ptree.Tree, ds [][]float64, n int, l float64) (float64, Outcome, error) {
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
	cuts := slices.Delete(slices.Clone(node.Cuts), i, i+1)

	var newNode *ptree.Node
	var err error
	if len(node.Children) > 2 {
		newNode, err = tree.NewNode(node.Param, len(node.Children)-1, cuts)
	} else {
		newNode, err = tree.NewLeaf()
	}
	if err != nil {
		return l, Rejected, err
	}

	siblings := slices.Clone(node.Children)
	if err := tree.Replace(node, newNode); err != nil {
		return l, Rejected, err
	}

	// newNode.Children[i] (or the whole of newNode, if it is now a
	// leaf) is the freshly merged cell and stays a fresh leaf; every
	// other sibling migrates, skipping the removed pair.
	for newIdx := range newNode.Children {
		oldIdx := newIdx
		if newIdx == i {
			continue
		}
		if newIdx > i {
			oldIdx = newIdx + 1
		}
		if err := tree.Replace(newNode.Children[newIdx], siblings[oldIdx]); err != nil {
			return l, Rejected, err
		}
	}

	lx := likelihood.LogLikelihood(tree, ds, n)
	if rng.Bernoulli(math.Min(1, math.Exp(lx-l))) {
		return lx, Accepted, nil
	}

	if err := tree.Replace(newNode, node); err != nil {
		return l, Rejected, err
	}
	for _, c := range node.Children {
		c.Parent = node
	}
	return l, Rejected, nil
}
