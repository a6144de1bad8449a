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

func TestMoveSkipsWithoutSupersegment(t *testing.T) {
	tr, err := ptree.NewTree(1024, uniformParams())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	ds, n := uniformDataset()
	l := likelihood.LogLikelihood(tr, ds, n)

	_, outcome, err := propose.Move(tr, ds, n, l, 0.1)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if outcome != propose.Skipped {
		t.Fatalf("Move outcome = %v, want Skipped on a single-leaf tree", outcome)
	}
}

func TestMovePreservesCutOrdering(t *testing.T) {
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

	for i := 0; i < 200; i++ {
		lx, outcome, err := propose.Move(tr, ds, n, l, 0.1)
		if err != nil {
			t.Fatalf("Move: %v", err)
		}
		if !ptree.CheckTree(tr) {
			t.Fatalf("CheckTree failed after Move (%s)", outcome)
		}
		l = lx
		if node.Cuts[0] >= node.Cuts[1] {
			t.Fatalf("cuts out of order after Move: %v", node.Cuts)
		}
		if node.Cuts[0] <= 0 || node.Cuts[1] >= 10 {
			t.Fatalf("cuts left the parameter range after Move: %v", node.Cuts)
		}
	}
}
