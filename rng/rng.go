// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rng is the process-wide random number source shared by the
// sampler and its proposal kernels: a single, non-reentrant generator,
// seeded once from the environment, exactly like the reference
// implementation's one GSL generator per process.
//
// Correctness of the sampler depends on single-threaded access to this
// package; two concurrent sampler runs in the same process would race on
// it, and this package makes no attempt to prevent that (see the
// project's concurrency notes).
package rng

import (
	"os"
	"strconv"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// SeedEnv is the environment variable used to seed the shared generator,
// in the same spirit as the GSL_RNG_SEED convention of the reference
// implementation's RNG library.
const SeedEnv = "TCLUSTER_RNG_SEED"

// defaultSeed is used when SeedEnv is unset or unparsable.
const defaultSeed = 1

var once sync.Once

func seed() {
	s := uint64(defaultSeed)
	if v := os.Getenv(SeedEnv); v != "" {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			s = parsed
		}
	}
	rand.Seed(s)
}

func ensureSeeded() {
	once.Do(seed)
}

// Frand returns a pseudo-random float64 drawn from the half-open
// interval [0, 1).
func Frand() float64 {
	ensureSeeded()
	return rand.Float64()
}

// Frand1 returns a pseudo-random float64 drawn from the open interval
// (0, 1).
func Frand1() float64 {
	ensureSeeded()
	// A 53-bit draw keeps numerator and denominator exact in float64,
	// so the result never rounds to 1.
	const span = 1 << 53
	return (float64(rand.Uint64()>>11) + 1) / (span + 2)
}

// SampleUniform draws a uniform integer from the interval [0, n). n must
// be greater than 0.
func SampleUniform(n int) int {
	ensureSeeded()
	return rand.Intn(n)
}

// SampleWeighted draws a categorical index from [0, len(weights))
// proportional to weights. weights must be non-empty and sum to a
// positive value.
func SampleWeighted(weights []float64) int {
	ensureSeeded()
	var sum float64
	for _, w := range weights {
		sum += w
	}
	r := Frand()
	var f float64
	for i, w := range weights {
		f += w / sum
		if r < f {
			return i
		}
	}
	return len(weights) - 1
}

// Bernoulli returns true with probability p.
func Bernoulli(p float64) bool {
	ensureSeeded()
	return Frand() < p
}

// Rtnorm draws from the normal distribution with the given mean and
// standard deviation, truncated to the open interval (a, b) by rejection
// sampling. Like the reference implementation, this is a trivial
// rejection sampler and can perform poorly for bounds far from the mean.
func Rtnorm(mean, sd, a, b float64) float64 {
	ensureSeeded()
	n := distuv.Normal{Mu: mean, Sigma: sd}
	x := n.Rand()
	for !(x > a && x < b) {
		x = n.Rand()
	}
	return x
}
