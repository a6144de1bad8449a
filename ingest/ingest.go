// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ingest reads the tab-delimited inputs of a clustering run: the
// observation matrix and the parameter table that describes its columns.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/js-arias/tcluster/paramdef"
)

// Dataset is a fully loaded clustering input: an N×K observation matrix
// stored column-major (one []float64 per parameter, matching
// paramdef.Def's float64-only value representation), the parameter
// definitions for its K columns, and their names in column order.
type Dataset struct {
	Names  []string
	Params []paramdef.Def
	Data   [][]float64
	N      int
}

// ReadMatrix reads an observation matrix from a TSV file: the header row
// gives the parameter names; every following row is one observation. A
// field of "NA" or the empty string decodes to NaN, realizing the
// missing-value routing policy against real input.
func ReadMatrix(r io.Reader) (*Dataset, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("ingest: reading header: %v", err)
	}
	names := make([]string, len(head))
	for i, h := range head {
		names[i] = strings.TrimSpace(h)
	}

	cols := make([][]float64, len(names))
	n := 0
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("ingest: on row %d: %v", ln, err)
		}
		if len(row) != len(names) {
			return nil, fmt.Errorf("ingest: on row %d: expecting %d fields, found %d", ln, len(names), len(row))
		}

		for i, field := range row {
			field = strings.TrimSpace(field)
			var v float64
			if field == "" || strings.EqualFold(field, "NA") {
				v = math.NaN()
			} else {
				v, err = strconv.ParseFloat(field, 64)
				if err != nil {
					return nil, fmt.Errorf("ingest: on row %d, field %q: %v", ln, names[i], err)
				}
			}
			cols[i] = append(cols[i], v)
		}
		n++
	}

	return &Dataset{Names: names, Data: cols, N: n}, nil
}

// ParamTable reads a parameter table from a TSV file with columns name,
// kind (metric or nominal), value (int64 or float64), and an optional
// fragment_size. Bounds are not read from the file: the caller must call
// paramdef.Init against the corresponding data column, matching
// tc_param_def_init's contract of deriving bounds from the data.
func ParamTable(r io.Reader) ([]string, []paramdef.Def, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("ingest: reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range []string{"name", "kind", "value"} {
		if _, ok := fields[h]; !ok {
			return nil, nil, fmt.Errorf("ingest: expecting field %q", h)
		}
	}
	fragCol, hasFrag := fields["fragment_size"]

	var names []string
	var defs []paramdef.Def
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, nil, fmt.Errorf("ingest: on row %d: %v", ln, err)
		}

		name := strings.TrimSpace(row[fields["name"]])
		var pd paramdef.Def
		switch strings.ToLower(strings.TrimSpace(row[fields["kind"]])) {
		case "metric":
			pd.Type = paramdef.Metric
		case "nominal":
			pd.Type = paramdef.Nominal
		default:
			return nil, nil, fmt.Errorf("ingest: on row %d: unknown kind %q", ln, row[fields["kind"]])
		}
		switch strings.ToLower(strings.TrimSpace(row[fields["value"]])) {
		case "int64":
			pd.Kind = paramdef.Int64
		case "float64":
			pd.Kind = paramdef.Float64
		default:
			return nil, nil, fmt.Errorf("ingest: on row %d: unknown value kind %q", ln, row[fields["value"]])
		}
		if hasFrag {
			f := strings.TrimSpace(row[fragCol])
			if f != "" {
				pd.FragmentSize, err = strconv.ParseFloat(f, 64)
				if err != nil {
					return nil, nil, fmt.Errorf("ingest: on row %d, field fragment_size: %v", ln, err)
				}
			}
		}

		names = append(names, name)
		defs = append(defs, pd)
	}
	return names, defs, nil
}

// Build assembles a Dataset from a loaded observation matrix and a
// loaded parameter table, matching columns by name and calling
// paramdef.Init on each to derive its bounds from the data.
func Build(matrix *Dataset, paramNames []string, defs []paramdef.Def) (*Dataset, error) {
	if len(paramNames) != len(defs) {
		return nil, fmt.Errorf("ingest: %d parameter names but %d definitions", len(paramNames), len(defs))
	}

	index := make(map[string]int, len(matrix.Names))
	for i, name := range matrix.Names {
		index[name] = i
	}

	data := make([][]float64, len(paramNames))
	for i, name := range paramNames {
		col, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("ingest: parameter %q not found in observation matrix", name)
		}
		data[i] = matrix.Data[col]
		paramdef.Init(&defs[i], data[i], matrix.N)
		if !paramdef.Check(defs[i]) {
			return nil, fmt.Errorf("ingest: parameter %q: %v", name, errCheck)
		}
	}

	return &Dataset{Names: paramNames, Params: defs, Data: data, N: matrix.N}, nil
}

var errCheck = errors.New("bounds are not exact multiples of fragment size")
