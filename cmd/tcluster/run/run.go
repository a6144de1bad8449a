// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package run implements a command to run a clustering analysis over a
// dataset.
package run

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/tcluster/ingest"
	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/sampler"
)

var Command = &command.Command{
	Usage: `run [--params <file>] [--output <file>]
	[--samples <value>] [--max-iter <value>] [--stop-after <value>]
	[--split <value>] [--merge <value>] [--move <value>]
	[--move-sd-frac <value>] [--max-segments <value>]
	[--arena <value>] <data-file>`,
	Short: "run a clustering analysis over a dataset",
	Long: `
Command run reads a tab-delimited observation matrix and runs the
Metropolis-Hastings partition sampler over it, writing one JSON line per
accepted sample to the standard output, or to the file given with
--output.

The parameter table describing the matrix's columns is read from the file
given with --params. If no parameter table is given, every column is
treated as a continuous metric parameter with no fragment quantisation.

--stop-after bounds the number of accepted samples a single invocation
will emit, independent of --samples; it is meant for smoke-testing a run
without waiting for the full sample count.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var (
	paramsFile  string
	outputFile  string
	samples     int
	maxIter     int
	stopAfter   int
	splitP      float64
	mergeP      float64
	moveP       float64
	moveSDFrac  float64
	maxSegments int
	arenaBudget int
)

func setFlags(c *command.Command) {
	c.Flags().StringVar(&paramsFile, "params", "", "")
	c.Flags().StringVar(&outputFile, "output", "", "")
	c.Flags().IntVar(&samples, "samples", 10, "")
	c.Flags().IntVar(&maxIter, "max-iter", 0, "")
	c.Flags().IntVar(&stopAfter, "stop-after", 0, "")
	c.Flags().Float64Var(&splitP, "split", 0.1, "")
	c.Flags().Float64Var(&mergeP, "merge", 0.1, "")
	c.Flags().Float64Var(&moveP, "move", 0.8, "")
	c.Flags().Float64Var(&moveSDFrac, "move-sd-frac", 0.1, "")
	c.Flags().IntVar(&maxSegments, "max-segments", 0, "")
	c.Flags().IntVar(&arenaBudget, "arena", 1<<16, "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting data file")
	}
	dataFile := args[0]

	f, err := os.Open(dataFile)
	if err != nil {
		return fmt.Errorf("run: %v", err)
	}
	matrix, err := ingest.ReadMatrix(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("run: %v", err)
	}

	paramNames := matrix.Names
	paramDefs := make([]paramdef.Def, len(matrix.Names))
	if paramsFile != "" {
		pf, err := os.Open(paramsFile)
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
		pn, pd, err := ingest.ParamTable(pf)
		pf.Close()
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
		paramNames = pn
		paramDefs = pd
	}

	ds, err := ingest.Build(matrix, paramNames, paramDefs)
	if err != nil {
		return fmt.Errorf("run: %v", err)
	}

	out := os.Stdout
	if outputFile != "" {
		of, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("run: %v", err)
		}
		defer of.Close()
		out = of
	}
	enc := json.NewEncoder(out)

	opts := sampler.Defaults()
	opts.NSamples = samples
	opts.MaxIter = maxIter
	opts.SplitP = splitP
	opts.MergeP = mergeP
	opts.MoveP = moveP
	opts.MoveSDFrac = moveSDFrac
	opts.MaxSegments = maxSegments

	emitted := 0
	cb := func(tree *ptree.Tree, l float64, data [][]float64, n int, userData any) bool {
		emitted++
		record := struct {
			Sample   int     `json:"sample"`
			Segments int     `json:"segments"`
			L        float64 `json:"log_likelihood"`
		}{Sample: emitted, Segments: ptree.CountSegments(tree), L: l}
		if err := enc.Encode(record); err != nil {
			return false
		}
		return stopAfter == 0 || emitted < stopAfter
	}

	if err := sampler.Cluster(ds.Data, ds.N, ds.Params, len(ds.Params), arenaBudget, cb, nil, opts); err != nil {
		return fmt.Errorf("run: %v", err)
	}
	return nil
}
