// Package render prints solve results for humans and machines.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/bigm"
)

// Format of the output.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts text, json and yaml.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, YAML:
		return f, nil
	case "":
		return Text, nil
	case "yml":
		return YAML, nil
	}
	return "", errors.Errorf("unknown output format %q", s)
}

// Write renders res to w.
func Write(w io.Writer, res *bigm.Result, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(res), "encode json result")
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return errors.Wrap(err, "encode yaml result")
		}
		return errors.Wrap(enc.Close(), "encode yaml result")
	default:
		return Report(w, res)
	}
}

// Report writes the standardization steps, every tableau of the history and the solution.
func Report(w io.Writer, res *bigm.Result) error {
	ew := &errWriter{w: w}
	sf := res.StandardizedForm

	ew.printf("Problem\n  %s\n", sf.OriginalObjective)
	for _, c := range sf.OriginalConstraints {
		ew.printf("  %s\n", c)
	}
	ew.printf("\nStandardization\n")
	for i, step := range sf.Transformations {
		ew.printf("  %d. %s\n", i+1, step)
	}
	ew.printf("\n  %s\n", sf.StandardizedObjective)
	for _, c := range sf.StandardizedConstraints {
		ew.printf("  %s\n", c)
	}
	ew.printf("  added: %d slack, %d surplus, %d artificial\n",
		sf.VariablesAdded.Slack, sf.VariablesAdded.Surplus, sf.VariablesAdded.Artificial)

	for k, tab := range res.History {
		if k == 0 {
			ew.printf("\nInitial tableau\n")
		} else {
			ew.printf("\nIteration %d\n", k)
		}
		ew.tableau(tab)
		if pv := tab.Pivot; pv != nil {
			ew.printf("pivot: %s enters, %s leaves, row %d column %d, element %s\n",
				pv.Entering, pv.Leaving, pv.Row+1, pv.Col+1, number(pv.Element))
		}
	}

	ew.printf("\nOptimal value: %s\n", number(res.Solution.OptimalValue))
	for j, x := range res.Solution.Variables {
		ew.printf("  x%d = %s\n", j+1, number(x))
	}
	return ew.err
}

func (ew *errWriter) tableau(t *bigm.Tableau) {
	if ew.err != nil {
		return
	}
	tw := tabwriter.NewWriter(ew.w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(t.ColumnLabels(), "\t"))
	labels := t.BasicLabels()
	for i, row := range t.Rows() {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = number(v)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", labels[i], strings.Join(cells, "\t"))
	}
	ew.err = tw.Flush()
}

// number prints at most six significant digits and never -0.
func number(v float64) string {
	s := strconv.FormatFloat(v, 'g', 6, 64)
	if s == "-0" {
		return "0"
	}
	return s
}

// errWriter keeps the first write error so that the report can be printed without checking each line.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
