// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dumpcmd implements a command to print a textual dump of a
// manually constructed partition tree, for inspection and testing.
package dumpcmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/tcluster/dump"
	"github.com/js-arias/tcluster/paramdef"
	"github.com/js-arias/tcluster/ptree"
)

var Command = &command.Command{
	Usage: `dump [--min <value>] [--max <value>] <cuts>`,
	Short: "print a textual dump of a single-parameter partition tree",
	Long: `
Command dump builds a one-parameter metric partition tree from a
comma-separated list of cuts and prints its parenthetical textual dump.
It is meant for manually inspecting the tree shape a given set of cuts
produces, without running a full clustering analysis.

<cuts> is a comma-separated, non-decreasing list of cut values, for
example "3,7". An empty list prints the single-leaf tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var min, max float64

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&min, "min", 0, "")
	c.Flags().Float64Var(&max, "max", 10, "")
}

func run(c *command.Command, args []string) error {
	if len(args) == 0 {
		return c.UsageError("expecting a comma-separated list of cuts")
	}

	var cuts []float64
	if args[0] != "" {
		for _, f := range strings.Split(args[0], ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("dump: %v", err)
			}
			cuts = append(cuts, v)
		}
	}

	pd := []paramdef.Def{{Type: paramdef.Metric, Min: min, Max: max}}
	tr, err := ptree.NewTree(len(cuts)*2+2, pd)
	if err != nil {
		return fmt.Errorf("dump: %v", err)
	}
	if len(cuts) > 0 {
		node, err := tr.NewNode(0, len(cuts)+1, cuts)
		if err != nil {
			return fmt.Errorf("dump: %v", err)
		}
		if err := tr.Replace(tr.Root, node); err != nil {
			return fmt.Errorf("dump: %v", err)
		}
	}

	if err := dump.Tree(os.Stdout, tr); err != nil {
		return fmt.Errorf("dump: %v", err)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
