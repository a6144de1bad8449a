// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Tcluster performs probabilistic cluster analysis on multivariate
// datasets by sampling axis-aligned partition trees with a
// Metropolis–Hastings random walk.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/tcluster/cmd/tcluster/dumpcmd"
	"github.com/js-arias/tcluster/cmd/tcluster/run"
)

var app = &command.Command{
	Usage: "tcluster <command> [<argument>...]",
	Short: "probabilistic cluster analysis by partition-tree sampling",
}

func init() {
	app.Add(run.Command)
	app.Add(dumpcmd.Command)
}

func main() {
	app.Main()
}
