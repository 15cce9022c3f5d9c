// Package dataset loads the four CSO Ireland CSV extracts into typed
// in-memory tables. The CSVs share a 5-column shape (Statistic,
// Year|Month, Category|Item|Region, Unit, Value) that is reinterpreted
// positionally; headers in the files are ignored. Malformed numeric or
// date cells become nulls rather than errors, so downstream
// computations skip them. A missing file is a hard error.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Name identifies one of the four datasets.
type Name string

const (
	AnnualHICP  Name = "annual_hicp"
	MonthlyHICP Name = "monthly_hicp"
	Consumption Name = "consumption"
	Income      Name = "income"
)

// Names lists all datasets in load order.
var Names = []Name{AnnualHICP, MonthlyHICP, Consumption, Income}

// FileName returns the expected CSV basename inside the data directory.
func (n Name) FileName() string {
	return string(n) + ".csv"
}

// Observation is one normalized row. Value is nil when the cell was
// missing or malformed; Year is 0 when the time column did not parse,
// which keeps the row out of every year-range filter. Date is set only
// for monthly series.
type Observation struct {
	Statistic string
	Year      int
	Month     int
	Date      time.Time
	Label     string // category, consumption item or region
	Unit      string
	Value     *float64
}

// Table is a loaded dataset.
type Table struct {
	Name Name
	Rows []Observation
}

var ErrShortRow = errors.New("row has fewer than 5 columns")

// monthLayout matches CSO month strings such as "2015 January".
const monthLayout = "2006 January"

// Read parses a dataset from r. Row-level problems degrade to nulls;
// only unreadable input is an error.
func Read(name Name, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows become nulls, not failures

	t := &Table{Name: name}
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s csv: %w", name, err)
		}
		if first {
			first = false
			if looksLikeHeader(rec) {
				continue
			}
		}
		obs, err := parseRow(name, rec)
		if err != nil {
			// Short rows carry no usable observation; skip them.
			continue
		}
		t.Rows = append(t.Rows, obs)
	}
	return t, nil
}

// ReadFile loads a dataset from disk. A missing file is fatal to the
// caller; there is no fallback source.
func ReadFile(name Name, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s dataset: %w", name, err)
	}
	defer f.Close()
	return Read(name, f)
}

func parseRow(name Name, rec []string) (Observation, error) {
	if len(rec) < 5 {
		return Observation{}, ErrShortRow
	}
	obs := Observation{
		Statistic: strings.TrimSpace(rec[0]),
		Label:     strings.TrimSpace(rec[2]),
		Unit:      strings.TrimSpace(rec[3]),
		Value:     parseValue(rec[4]),
	}
	if name == MonthlyHICP {
		if d, err := time.Parse(monthLayout, strings.TrimSpace(rec[1])); err == nil {
			obs.Date = d
			obs.Year = d.Year()
			obs.Month = int(d.Month())
		}
	} else {
		if y, err := strconv.Atoi(strings.TrimSpace(rec[1])); err == nil {
			obs.Year = y
		}
	}
	return obs, nil
}

// parseValue applies non-strict numeric coercion: anything that is not
// a clean number becomes nil.
func parseValue(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil
	}
	return &v
}

// looksLikeHeader reports whether the first record is a column header
// rather than data. The CSO exports sometimes ship without one.
func looksLikeHeader(rec []string) bool {
	if len(rec) < 5 {
		return true
	}
	lower := strings.ToLower(strings.TrimSpace(rec[0]))
	return lower == "statistic" || lower == "statistic label"
}

// Select returns the rows matching statistic (exact, empty matches
// all), one of labels (nil matches all) and the inclusive year range.
func (t *Table) Select(statistic string, labels []string, from, to int) []Observation {
	var set map[string]bool
	if labels != nil {
		set = make(map[string]bool, len(labels))
		for _, l := range labels {
			set[l] = true
		}
	}
	var out []Observation
	for _, o := range t.Rows {
		if statistic != "" && o.Statistic != statistic {
			continue
		}
		if set != nil && !set[o.Label] {
			continue
		}
		if o.Year < from || o.Year > to {
			continue
		}
		out = append(out, o)
	}
	return out
}

// SelectContains is Select with substring matching on the statistic,
// used for the income dataset whose statistic names vary by vintage.
func (t *Table) SelectContains(statisticPart string, from, to int) []Observation {
	var out []Observation
	for _, o := range t.Rows {
		if !strings.Contains(o.Statistic, statisticPart) {
			continue
		}
		if o.Year < from || o.Year > to {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Labels returns the distinct labels in first-seen order.
func (t *Table) Labels() []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range t.Rows {
		if o.Label == "" || seen[o.Label] {
			continue
		}
		seen[o.Label] = true
		out = append(out, o.Label)
	}
	return out
}

// YearBounds returns the minimum and maximum parsed years across rows
// with a value. Zero years (unparsed) are ignored.
func (t *Table) YearBounds() (min, max int) {
	for _, o := range t.Rows {
		if o.Year == 0 {
			continue
		}
		if min == 0 || o.Year < min {
			min = o.Year
		}
		if o.Year > max {
			max = o.Year
		}
	}
	return min, max
}
