package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
)

// ColumnStats mirrors a describe() row set for a single numeric column.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	P25    float64
	P50    float64
	P75    float64
	Max    float64
}

type ValueCount struct {
	Value string
	Count int
}

// Describe computes summary statistics over the parsable cells of each column.
// Std is the sample standard deviation and is NaN with fewer than two values.
func Describe(t *Table, columns []string) ([]ColumnStats, error) {
	stats := make([]ColumnStats, 0, len(columns))
	for _, name := range columns {
		cells, err := t.Values(name)
		if err != nil {
			return nil, err
		}
		values := make([]float64, 0, len(cells))
		for _, cell := range cells {
			if v, ok := parseNumber(cell); ok {
				values = append(values, v)
			}
		}
		stats = append(stats, describeValues(name, values))
	}
	return stats, nil
}

func describeValues(name string, values []float64) ColumnStats {
	s := ColumnStats{Column: name, Count: len(values)}
	if len(values) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.P25, s.P50, s.P75, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	s.Mean = sum / float64(len(sorted))

	if len(sorted) > 1 {
		var sq float64
		for _, v := range sorted {
			d := v - s.Mean
			sq += d * d
		}
		s.Std = math.Sqrt(sq / float64(len(sorted)-1))
	} else {
		s.Std = math.NaN()
	}

	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P25 = quantile(sorted, 0.25)
	s.P50 = quantile(sorted, 0.50)
	s.P75 = quantile(sorted, 0.75)
	return s
}

// quantile uses linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower]
	}
	frac := pos - float64(lower)
	return sorted[lower] + (sorted[upper]-sorted[lower])*frac
}

// WriteStats writes one row per statistic and one column per described column.
func WriteStats(w io.Writer, stats []ColumnStats) error {
	writer := csv.NewWriter(w)
	header := []string{""}
	for _, s := range stats {
		header = append(header, s.Column)
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	rows := []struct {
		name string
		get  func(ColumnStats) float64
	}{
		{"count", func(s ColumnStats) float64 { return float64(s.Count) }},
		{"mean", func(s ColumnStats) float64 { return s.Mean }},
		{"std", func(s ColumnStats) float64 { return s.Std }},
		{"min", func(s ColumnStats) float64 { return s.Min }},
		{"25%", func(s ColumnStats) float64 { return s.P25 }},
		{"50%", func(s ColumnStats) float64 { return s.P50 }},
		{"75%", func(s ColumnStats) float64 { return s.P75 }},
		{"max", func(s ColumnStats) float64 { return s.Max }},
	}
	for _, r := range rows {
		record := []string{r.name}
		for _, s := range stats {
			record = append(record, formatStat(r.get(s)))
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValueCounts counts non-empty values of a column, most frequent first and
// ties broken alphabetically.
func ValueCounts(t *Table, column string) ([]ValueCount, error) {
	cells, err := t.Values(column)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, cell := range cells {
		if cell != "" {
			counts[cell]++
		}
	}
	out := make([]ValueCount, 0, len(counts))
	for value, count := range counts {
		out = append(out, ValueCount{Value: value, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Value < out[j].Value
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// LabelColumns maps dataset columns onto the reference tables they feed.
var LabelColumns = map[string]string{
	ColGender:            "genders",
	ColDietaryPreference: "diet_types",
	ColFitnessGoal:       "goals",
}

// Labels returns the distinct non-empty values of every label column present
// in t, keyed by reference table name and in order of first appearance.
func Labels(t *Table) map[string][]string {
	out := make(map[string][]string)
	for column, table := range LabelColumns {
		cells, err := t.Values(column)
		if err != nil {
			continue
		}
		seen := make(map[string]struct{})
		for _, cell := range cells {
			if cell == "" {
				continue
			}
			if _, ok := seen[cell]; ok {
				continue
			}
			seen[cell] = struct{}{}
			out[table] = append(out[table], cell)
		}
	}
	return out
}

func (s ColumnStats) String() string {
	return fmt.Sprintf("%s: count=%d mean=%.2f std=%.2f min=%.2f max=%.2f", s.Column, s.Count, s.Mean, s.Std, s.Min, s.Max)
}
