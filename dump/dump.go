// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package dump renders a partition tree and its segments for inspection:
// a parenthetical textual form and a JSON segment listing.
package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/js-arias/tcluster/ptree"
	"github.com/js-arias/tcluster/segment"
)

// Tree writes a recursive parenthetical dump of tree to w: a leaf is
// "()"; an internal node is "(param [cuts] child...)".
func Tree(w io.Writer, tree *ptree.Tree) error {
	return dumpNode(w, tree.Root)
}

func dumpNode(w io.Writer, node *ptree.Node) error {
	if node.IsLeaf() {
		_, err := fmt.Fprint(w, "()")
		return err
	}
	if _, err := fmt.Fprintf(w, "(%d %v", node.Param, node.Cuts); err != nil {
		return err
	}
	for _, c := range node.Children {
		if _, err := fmt.Fprint(w, " "); err != nil {
			return err
		}
		if err := dumpNode(w, c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, ")")
	return err
}

// segmentJSON is the JSON shape of a single dumped segment: per-parameter
// ranges plus the observation count and volume already computed by
// segment.Extract.
type segmentJSON struct {
	NX     int          `json:"nx"`
	V      float64      `json:"v"`
	Ranges [][2]float64 `json:"ranges"`
}

// SegmentsJSON extracts the segments of tree over ds (n observations) and
// writes them as a JSON array to w.
func SegmentsJSON(w io.Writer, tree *ptree.Tree, ds [][]float64, n int) error {
	segs, err := segment.Extract(tree, ds, n)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	out := make([]segmentJSON, len(segs))
	for i, s := range segs {
		ranges := make([][2]float64, len(s.Ranges))
		for k, r := range s.Ranges {
			ranges[k] = [2]float64{r.Min, r.Max}
		}
		out[i] = segmentJSON{NX: s.NX, V: s.V, Ranges: ranges}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(out)
}
