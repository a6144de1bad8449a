// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package sampler drives the Metropolis–Hastings random walk over
// partition trees: it owns the single tree for a run, draws from the
// process-wide generator of package rng, selects an action each
// iteration, dispatches to the propose kernels,
// and emits every accepted sample to a caller-supplied callback.
package sampler

import (
	"fmt"
	"math"

	"github.com/js-arias/tcluster/likelihood"
	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/propose"
	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/rng"
)

// Options configures a Cluster run. The zero value is not valid; use
// Defaults to obtain a starting point.
type Options struct {
	// NSamples is the number of accepted proposals to collect before
	// stopping: the run terminates as soon as samples >= NSamples,
	// including immediately, before any iteration, when NSamples is 0.
	// A caller wanting a run bounded only by MaxIter or the callback
	// must set NSamples to a sufficiently large value.
	NSamples int

	// MaxIter bounds the total number of proposal trials, accepted or
	// not. 0 means unbounded.
	MaxIter int

	// SplitP, MergeP, MoveP are the per-iteration action probabilities.
	// They must sum to 1.
	SplitP, MergeP, MoveP float64

	// MoveSDFrac scales a cut-move proposal's standard deviation as a
	// fraction of the combined width of the two leaves it separates.
	MoveSDFrac float64

	// MaxSegments caps the number of leaves a split proposal may grow
	// the tree to. 0 means unbounded.
	MaxSegments int
}

// Defaults returns the reference option set: NSamples=10, MaxIter=0,
// SplitP=0.1, MergeP=0.1, MoveP=0.8, MoveSDFrac=0.1, MaxSegments=0.
func Defaults() Options {
	return Options{
		NSamples:    10,
		MaxIter:     0,
		SplitP:      0.1,
		MergeP:      0.1,
		MoveP:       0.8,
		MoveSDFrac:  0.1,
		MaxSegments: 0,
	}
}

// check validates opts, returning ptree.ErrInvalidArgument when the
// action probabilities do not sum to 1.
func (o Options) check() error {
	sum := o.SplitP + o.MergeP + o.MoveP
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("sampler: split+merge+move probabilities = %v, want 1: %w", sum, ptree.ErrInvalidArgument)
	}
	if o.SplitP < 0 || o.MergeP < 0 || o.MoveP < 0 {
		return fmt.Errorf("sampler: action probabilities must be non-negative: %w", ptree.ErrInvalidArgument)
	}
	return nil
}

// Callback is invoked once per accepted sample with a tree pointer that
// is only valid until the call returns. Returning false stops the run.
type Callback func(tree *ptree.Tree, l float64, ds [][]float64, n int, userData any) bool

const (
	actionSplit = iota
	actionMerge
	actionMove
)

// Cluster runs the Metropolis–Hastings random walk over the space of
// partitionings of ds (N observations of K parameters described by pd),
// starting from a single-leaf tree, until opts.NSamples accepted samples
// have been emitted, opts.MaxIter trials have run, or cb returns false.
// An opts.NSamples of 0 terminates the run before any iteration.
//
// arenaCapacity bounds the number of nodes the run's tree may ever hold;
// a run that exhausts it fails with ptree.ErrOutOfMemory.
//
// Invalid options, or a parameter definition that fails paramdef.Check,
// make Cluster return an error wrapping ptree.ErrInvalidArgument.
//
// A nominal parameter selected by a proposal kernel is a fatal error:
// Cluster returns an error wrapping propose.ErrNotImplemented rather
// than skipping the iteration, since nominal support is a genuinely
// unimplemented code path, not a legal proposal that found no move.
func Cluster(ds [][]float64, n int, pd []paramdef.Def, k int, arenaCapacity int, cb Callback, userData any, opts Options) error {
	if err := opts.check(); err != nil {
		return err
	}
	for i, p := range pd {
		if !paramdef.Check(p) {
			return fmt.Errorf("sampler: parameter %d: bounds are not multiples of fragment size: %w", i, ptree.ErrInvalidArgument)
		}
	}

	tree, err := ptree.NewTree(arenaCapacity, pd)
	if err != nil {
		return fmt.Errorf("sampler: allocating tree: %w", err)
	}

	l := likelihood.LogLikelihood(tree, ds, n)
	weights := []float64{opts.SplitP, opts.MergeP, opts.MoveP}

	samples := 0
	for iter := 0; opts.MaxIter == 0 || iter < opts.MaxIter; iter++ {
		if samples >= opts.NSamples {
			break
		}

		var outcome propose.Outcome
		switch rng.SampleWeighted(weights) {
		case actionSplit:
			l, outcome, err = propose.Split(tree, ds, n, l, opts.MaxSegments)
		case actionMerge:
			l, outcome, err = propose.Merge(tree, ds, n, l)
		case actionMove:
			l, outcome, err = propose.Move(tree, ds, n, l, opts.MoveSDFrac)
		}
		if err != nil {
			return fmt.Errorf("sampler: iteration %d: %w", iter, err)
		}
		if outcome != propose.Accepted {
			continue
		}

		samples++
		if cb != nil && !cb(tree, l, ds, n, userData) {
			return nil
		}
	}
	return nil
}
