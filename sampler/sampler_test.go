// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package sampler_test

import (
	"errors"
	"testing"

	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/propose"
	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/sampler"
)

func twoMetricParams() []paramdef.Def {
	return []paramdef.Def{
		{Type: paramdef.Metric, Min: 0, Max: 10},
		{Type: paramdef.Metric, Min: 0, Max: 10},
	}
}

func sampleDataset() ([][]float64, int) {
	ds := [][]float64{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 1.5},
		{9, 8, 7, 6, 5, 4, 3, 2, 1, 8.5},
	}
	return ds, len(ds[0])
}

func TestClusterRejectsBadOptions(t *testing.T) {
	ds, n := sampleDataset()
	opts := sampler.Defaults()
	opts.SplitP = 0.5 // no longer sums to 1 with MergeP+MoveP

	err := sampler.Cluster(ds, n, twoMetricParams(), 2, 1024, nil, nil, opts)
	if err == nil {
		t.Fatalf("Cluster: expected an error for unnormalised action probabilities")
	}
}

func TestClusterEmitsRequestedSamples(t *testing.T) {
	ds, n := sampleDataset()
	opts := sampler.Defaults()
	opts.NSamples = 5

	count := 0
	cb := func(tree *ptree.Tree, l float64, ds [][]float64, n int, userData any) bool {
		count++
		if !ptree.CheckTree(tree) {
			t.Errorf("CheckTree failed on accepted sample %d", count)
		}
		return true
	}

	if err := sampler.Cluster(ds, n, twoMetricParams(), 2, 4096, cb, nil, opts); err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if count != opts.NSamples {
		t.Fatalf("accepted samples = %d, want %d", count, opts.NSamples)
	}
}

func TestClusterZeroSamplesTerminatesImmediately(t *testing.T) {
	ds, n := sampleDataset()
	opts := sampler.Defaults()
	opts.NSamples = 0
	opts.MaxIter = 500

	called := false
	cb := func(tree *ptree.Tree, l float64, ds [][]float64, n int, userData any) bool {
		called = true
		return true
	}

	if err := sampler.Cluster(ds, n, twoMetricParams(), 2, 4096, cb, nil, opts); err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if called {
		t.Fatalf("Cluster: callback invoked with NSamples = 0, want no iterations at all")
	}
}

func TestClusterNominalParameterIsFatal(t *testing.T) {
	ds, n := sampleDataset()
	pd := []paramdef.Def{
		{Type: paramdef.Nominal, Min: 0, Max: 1, NCategories: 2},
		{Type: paramdef.Metric, Min: 0, Max: 10},
	}
	opts := sampler.Defaults()
	opts.NSamples = 1 << 30
	opts.MaxIter = 1000

	err := sampler.Cluster(ds, n, pd, 2, 4096, nil, nil, opts)
	if err == nil {
		t.Fatalf("Cluster: expected an error for a nominal parameter")
	}
	if !errors.Is(err, propose.ErrNotImplemented) {
		t.Fatalf("Cluster error = %v, want it to wrap propose.ErrNotImplemented", err)
	}
}

func TestClusterCallbackCanStopEarly(t *testing.T) {
	ds, n := sampleDataset()
	opts := sampler.Defaults()
	opts.NSamples = 100

	count := 0
	cb := func(tree *ptree.Tree, l float64, ds [][]float64, n int, userData any) bool {
		count++
		return count < 3
	}

	if err := sampler.Cluster(ds, n, twoMetricParams(), 2, 4096, cb, nil, opts); err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if count != 3 {
		t.Fatalf("accepted samples before stop = %d, want 3", count)
	}
}

func TestClusterRespectsMaxIter(t *testing.T) {
	ds, n := sampleDataset()
	opts := sampler.Defaults()
	opts.NSamples = 1 << 30 // bounded only by MaxIter
	opts.MaxIter = 50

	iters := 0
	cb := func(tree *ptree.Tree, l float64, ds [][]float64, n int, userData any) bool {
		iters++
		return true
	}

	if err := sampler.Cluster(ds, n, twoMetricParams(), 2, 4096, cb, nil, opts); err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if iters > opts.MaxIter {
		t.Fatalf("accepted samples = %d, cannot exceed MaxIter = %d", iters, opts.MaxIter)
	}
}

func TestClusterRespectsMaxSegments(t *testing.T) {
	ds, n := sampleDataset()
	opts := sampler.Defaults()
	opts.NSamples = 1 << 30 // bounded only by MaxIter
	opts.MaxIter = 500
	opts.MaxSegments = 2

	var last *ptree.Tree
	cb := func(tree *ptree.Tree, l float64, ds [][]float64, n int, userData any) bool {
		last = tree
		return true
	}

	if err := sampler.Cluster(ds, n, twoMetricParams(), 2, 4096, cb, nil, opts); err != nil {
		t.Fatalf("Cluster: %v", err)
	}
	if last != nil && ptree.CountSegments(last) > opts.MaxSegments {
		t.Fatalf("CountSegments = %d, want at most MaxSegments = %d", ptree.CountSegments(last), opts.MaxSegments)
	}
}
