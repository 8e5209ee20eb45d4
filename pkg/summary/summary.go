// Package summary computes per-sample statistics of a protein dataset.
package summary

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ChrisMcGann/potomato/pkg/core"
)

// Sample holds statistics over the detected intensities of one sample.
// Statistics are NaN when they are undefined for the number of detected values.
type Sample struct {
	Name      string
	Condition string
	Detected  int
	Missing   int
	Mean      float64
	StdDev    float64
	Median    float64
	Min       float64
	Max       float64
}

// Condition counts the samples assigned to one condition tag.
type Condition struct {
	Name    string
	Samples int
}

// Summary describes a whole dataset.
type Summary struct {
	Proteins   int
	Records    int
	Scale      core.Scale
	Samples    []Sample
	Conditions []Condition
}

// Summarize computes a Summary of d.
func Summarize(d *core.ProteinDataset) Summary {
	s := Summary{
		Proteins: len(d.Proteins()),
		Records:  d.Len(),
		Scale:    d.Scale(),
	}

	values := make(map[string][]float64)
	missing := make(map[string]int)
	for _, rec := range d.Records() {
		if rec.Intensity.Valid {
			values[rec.Sample] = append(values[rec.Sample], rec.Intensity.Float64)
		} else {
			missing[rec.Sample]++
		}
	}

	perCondition := make(map[string]int)
	for _, name := range d.Samples() {
		cond, _ := d.Condition(name)
		if cond != "" {
			perCondition[cond]++
		}
		s.Samples = append(s.Samples, describe(name, cond, values[name], missing[name]))
	}

	for _, tag := range d.Conditions().Tags() {
		s.Conditions = append(s.Conditions, Condition{Name: tag, Samples: perCondition[tag]})
	}
	return s
}

func describe(name, cond string, x []float64, missing int) Sample {
	nan := math.NaN()
	out := Sample{
		Name:      name,
		Condition: cond,
		Detected:  len(x),
		Missing:   missing,
		Mean:      nan,
		StdDev:    nan,
		Median:    nan,
		Min:       nan,
		Max:       nan,
	}
	if len(x) == 0 {
		return out
	}

	out.Mean = stat.Mean(x, nil)
	if len(x) > 1 {
		out.StdDev = stat.StdDev(x, nil)
	}
	if m, err := stats.Median(x); err == nil {
		out.Median = m
	}
	out.Min = floats.Min(x)
	out.Max = floats.Max(x)
	return out
}

// Write prints s as an aligned table.
func (s Summary) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Proteins: %d\nRecords: %d\nScale: %s\n\n", s.Proteins, s.Records, s.Scale); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "sample\tcondition\tdetected\tmissing\tmean\tsd\tmedian\tmin\tmax")
	for _, smp := range s.Samples {
		cond := smp.Condition
		if cond == "" {
			cond = "NA"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%s\n",
			smp.Name, cond, smp.Detected, smp.Missing,
			format(smp.Mean), format(smp.StdDev), format(smp.Median), format(smp.Min), format(smp.Max))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(s.Conditions) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "condition\tsamples")
	for _, c := range s.Conditions {
		fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Samples)
	}
	return tw.Flush()
}

func format(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
