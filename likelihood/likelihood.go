// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package likelihood implements the closed-form log-likelihood of a
// partition tree over its leaf volumes and observation counts.
package likelihood

import (
	"math"

	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/segment"
)

// LogLikelihood computes the log-likelihood of tree against the dataset
// ds (n observations, tree.K parameters).
//
// It returns NaN if segment extraction fails.
func LogLikelihood(tree *ptree.Tree, ds [][]float64, n int) float64 {
	segs, err := segment.Extract(tree, ds, n)
	if err != nil {
		return math.NaN()
	}
	return logLikelihood(segs)
}

// logLikelihood evaluates the two-part likelihood over already-extracted
// segments:
//
//	l1 = -Σ NX_s·ln V_s              (over segments with NX_s>0, V_s>0)
//	l2 = Σ ln B(NX_s+1, b_s)         (s from S-1 down to 0)
//
// where b_s accumulates NX_{s+1}+1 (or 1 at the last segment) for every
// later segment, added before ln B is evaluated at s. The accumulation
// order matches the reference implementation exactly: b starts at 0, and
// each step adds the next segment's contribution before calling logBeta,
// so the last segment sees b=1.
func logLikelihood(segs []Segment) float64 {
	var l1 float64
	for _, s := range segs {
		if s.NX == 0 || s.V == 0 {
			continue
		}
		l1 -= float64(s.NX) * math.Log(s.V)
	}

	var l2, b float64
	S := len(segs)
	for s := S - 1; s >= 0; s-- {
		a := float64(segs[s].NX) + 1
		next := 1.0
		if s+1 < S {
			next = float64(segs[s+1].NX) + 1
		}
		b += next
		l2 += logBeta(a, b)
	}

	return l1 + l2
}

// logBeta approximates ln B(a, b) using Stirling's approximation:
//
//	ln B(a, b) = ½ ln(2π) + (a-½) ln a + (b-½) ln b - (a+b-½) ln(a+b)
func logBeta(a, b float64) float64 {
	return 0.5*math.Log(2*math.Pi) +
		(a-0.5)*math.Log(a) +
		(b-0.5)*math.Log(b) -
		(a+b-0.5)*math.Log(a+b)
}

// Segment is an alias of segment.Segment, the per-leaf record that
// logLikelihood evaluates; the likelihood reads only its NX and V fields.
type Segment = segment.Segment
