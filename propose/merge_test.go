// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package propose_test

import (
	"testing"

	"github.com/js-arias/tcluster/likelihood"
	"github.com/js-arias/tcluster/propose"
	"github.com/js-arias/tcluster/ptree"
)

func TestMergeSkipsWithoutSupersegment(t *testing.T) {
	tr, err := ptree.NewTree(1024, uniformParams())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	ds, n := uniformDataset()
	l := likelihood.LogLikelihood(tr, ds, n)

	_, outcome, err := propose.Merge(tr, ds, n, l)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if outcome != propose.Skipped {
		t.Fatalf("Merge outcome = %v, want Skipped on a single-leaf tree", outcome)
	}
}

func TestMergeCollapsesThreeWaySplit(t *testing.T) {
	tr, err := ptree.NewTree(1024, uniformParams())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	node, err := tr.NewNode(0, 3, []float64{3, 7})
	if err != nil {
		t.Fatalf("NewNode: %v", err)
	}
	if err := tr.Replace(tr.Root, node); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	ds, n := uniformDataset()
	l := likelihood.LogLikelihood(tr, ds, n)

	merged := false
	for i := 0; i < 200 && !merged; i++ {
		lx, outcome, err := propose.Merge(tr, ds, n, l)
		if err != nil {
			t.Fatalf("Merge: %v", err)
		}
		if !ptree.CheckTree(tr) {
			t.Fatalf("CheckTree failed after Merge (%s)", outcome)
		}
		l = lx
		if outcome == propose.Accepted {
			merged = true
		}
	}
	if !merged {
		t.Fatalf("Merge never accepted a proposal in 200 trials")
	}
	if ptree.CountSegments(tr) > 3 {
		t.Fatalf("CountSegments = %d, want at most 3 after a merge", ptree.CountSegments(tr))
	}
}
