package dataset

import (
	"math"
	"strconv"
	"strings"

	"github.com/smith3v/fitness-ai/pkg/logger"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ColGender             = "Gender"
	ColActivityLevel      = "Activity Level"
	ColFitnessGoal        = "Fitness Goal"
	ColDietaryPreference  = "Dietary Preference"
	ColAge                = "Age"
	ColHeight             = "Height"
	ColWeight             = "Weight"
	ColDailyCalorieTarget = "Daily Calorie Target"
	ColProtein            = "Protein"
	ColCarbohydrates      = "Carbohydrates"
	ColFat                = "Fat"
)

var CategoricalColumns = []string{ColGender, ColActivityLevel, ColFitnessGoal, ColDietaryPreference}

var NumericColumns = []string{
	ColAge, ColHeight, ColWeight, ColDailyCalorieTarget, ColProtein, ColCarbohydrates, ColFat,
}

var categoryReplacements = map[string]map[string]string{
	ColFitnessGoal: {"Weight Maintenance": "Maintenance"},
}

type bounds struct {
	column   string
	min, max float64
}

// Inclusive plausibility ranges; rows outside any of them are dropped.
var plausibleRanges = []bounds{
	{ColAge, 10, 100},
	{ColHeight, 100, 250},
	{ColWeight, 30, 250},
	{ColDailyCalorieTarget, 800, 5000},
}

// Report summarises one Clean run. It is stored as the import summary.
type Report struct {
	RowsIn          int            `json:"rows_in"`
	HeaderRepeats   int            `json:"header_repeats"`
	CoercedCells    map[string]int `json:"coerced_cells,omitempty"`
	Replacements    int            `json:"replacements"`
	OutliersDropped int            `json:"outliers_dropped"`
	RowsOut         int            `json:"rows_out"`
}

// TitleCaseCategories trims and title-cases the categorical columns present in t.
func TitleCaseCategories(t *Table) *Table {
	out := t.clone()
	caser := cases.Title(language.Und)
	for _, name := range CategoricalColumns {
		idx := out.Column(name)
		if idx < 0 {
			continue
		}
		for _, row := range out.Rows {
			row[idx] = caser.String(strings.TrimSpace(row[idx]))
		}
	}
	return out
}

// Clean trims every cell, drops rows that repeat the header, coerces numeric
// columns (unparsable cells become empty), harmonises category names and
// removes physiologically implausible rows. The input table is not modified.
func Clean(t *Table) (*Table, Report) {
	out := t.clone()
	report := Report{RowsIn: len(out.Rows), CoercedCells: map[string]int{}}

	for _, row := range out.Rows {
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
	}

	kept := out.Rows[:0]
	for _, row := range out.Rows {
		if repeatsHeader(out, row) {
			report.HeaderRepeats++
			continue
		}
		kept = append(kept, row)
	}
	out.Rows = kept

	for _, name := range NumericColumns {
		idx := out.Column(name)
		if idx < 0 {
			continue
		}
		for _, row := range out.Rows {
			if row[idx] == "" {
				continue
			}
			v, ok := parseNumber(row[idx])
			if !ok {
				row[idx] = ""
				report.CoercedCells[name]++
				continue
			}
			row[idx] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	for name, mapping := range categoryReplacements {
		idx := out.Column(name)
		if idx < 0 {
			continue
		}
		for _, row := range out.Rows {
			if replacement, ok := mapping[row[idx]]; ok {
				row[idx] = replacement
				report.Replacements++
			}
		}
	}

	kept = out.Rows[:0]
	for _, row := range out.Rows {
		if !withinRanges(out, row) {
			report.OutliersDropped++
			continue
		}
		kept = append(kept, row)
	}
	out.Rows = kept
	report.RowsOut = len(out.Rows)

	logger.Info("dataset cleaned",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"header_repeats", report.HeaderRepeats,
		"outliers", report.OutliersDropped)
	return out, report
}

func repeatsHeader(t *Table, row []string) bool {
	for _, name := range CategoricalColumns {
		idx := t.Column(name)
		if idx >= 0 && strings.EqualFold(row[idx], name) {
			return true
		}
	}
	return false
}

// withinRanges treats a missing value in a bounded column as out of range.
func withinRanges(t *Table, row []string) bool {
	for _, b := range plausibleRanges {
		idx := t.Column(b.column)
		if idx < 0 {
			continue
		}
		v, ok := parseNumber(row[idx])
		if !ok || v < b.min || v > b.max {
			return false
		}
	}
	return true
}

// parseNumber accepts finite numbers only; "NaN" and "Inf" count as missing.
func parseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
