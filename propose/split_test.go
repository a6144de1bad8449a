// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package propose_test

import (
	"testing"

	"github.com/js-arias/tcluster/likelihood"
	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/propose"
	"github.com/js-arias/tcluster/ptree"
)

func uniformParams() []paramdef.Def {
	return []paramdef.Def{
		{Type: paramdef.Metric, Min: 0, Max: 10},
		{Type: paramdef.Metric, Min: 0, Max: 10},
	}
}

func uniformDataset() ([][]float64, int) {
	ds := [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8, 9},
		{9, 8, 7, 6, 5, 4, 3, 2, 1},
	}
	return ds, len(ds[0])
}

func TestSplitEventuallyGrows(t *testing.T) {
	tr, err := ptree.NewTree(1024, uniformParams())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	ds, n := uniformDataset()
	l := likelihood.LogLikelihood(tr, ds, n)

	grew := false
	for i := 0; i < 200 && !grew; i++ {
		lx, outcome, err := propose.Split(tr, ds, n, l, 0)
		if err != nil {
			t.Fatalf("Split: %v", err)
		}
		if !ptree.CheckTree(tr) {
			t.Fatalf("CheckTree failed after Split (%s)", outcome)
		}
		l = lx
		if outcome == propose.Accepted {
			grew = true
		}
	}
	if !grew {
		t.Fatalf("Split never accepted a proposal in 200 trials")
	}
	if ptree.CountSegments(tr) < 2 {
		t.Fatalf("CountSegments = %d, want at least 2 after an accepted split", ptree.CountSegments(tr))
	}
}

func TestSplitRespectsMaxSegments(t *testing.T) {
	tr, err := ptree.NewTree(1024, uniformParams())
	if err != nil {
		t.Fatalf("NewTree: %v", err)
	}
	ds, n := uniformDataset()
	l := likelihood.LogLikelihood(tr, ds, n)

	_, outcome, err := propose.Split(tr, ds, n, l, 1)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if outcome != propose.Skipped {
		t.Fatalf("Split outcome = %v, want Skipped when maxSegments already reached", outcome)
	}
	if ptree.CountSegments(tr) != 1 {
		t.Fatalf("CountSegments = %d, want 1 (tree unchanged)", ptree.CountSegments(tr))
	}
}
