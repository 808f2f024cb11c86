package timeseries

// CSV-backed time series: column 0 is a Unix epoch timestamp in seconds,
// column 1 is a numeric value. Row order is preserved, never re-sorted.

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Point is one (time, value) sample.
type Point struct {
	T time.Time
	V float64
}

// Series is an ordered sequence of points plus the header the file carried,
// if any.
type Series struct {
	Points []Point
	Header []string
}

// LoadCSV reads a two-or-more-column CSV. A header row is detected by the
// first row's column 0 not parsing as a number. Extra columns are ignored.
func LoadCSV(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column count checked per row below

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no rows", path)
	}

	s := &Series{}

	start := 0
	if _, err := strconv.ParseFloat(strings.TrimSpace(records[0][0]), 64); err != nil {
		s.Header = records[0]
		start = 1
	}

	for i := start; i < len(records); i++ {
		row := records[i]
		if len(row) < 2 {
			return nil, fmt.Errorf("%s: row %d has %d columns, need at least 2", path, i+1, len(row))
		}

		epoch, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid timestamp %q: %w", path, i+1, row[0], err)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d: invalid value %q: %w", path, i+1, row[1], err)
		}

		s.Points = append(s.Points, Point{T: EpochToTime(epoch), V: value})
	}

	if len(s.Points) == 0 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	return s, nil
}

// EpochToTime converts epoch seconds to UTC time, keeping fractional seconds.
func EpochToTime(epoch float64) time.Time {
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*float64(time.Second))).UTC()
}

// WriteCSV writes the series in the collector's step-chart format.
func WriteCSV(path string, header []string, points []Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write header to %s: %w", path, err)
		}
	}
	for _, p := range points {
		row := []string{
			strconv.FormatInt(p.T.Unix(), 10),
			strconv.FormatFloat(p.V, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// Stem returns the base name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputName derives the chart file name from the input path: its stem
// with a .png extension, no directory component.
func OutputName(inputPath string) string {
	return Stem(inputPath) + ".png"
}
