package curve

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"loan-amortizer/domain"
)

// RawPoint is a curve point as written in a file or request body.
type RawPoint struct {
	Date string  `json:"date" yaml:"date"`
	Rate float64 `json:"rate" yaml:"rate"`
}

// Normalize parses raw dates into curve points.
func Normalize(raw []RawPoint) ([]domain.CurvePoint, error) {
	points := make([]domain.CurvePoint, 0, len(raw))
	for i, r := range raw {
		d, err := domain.ParseDate("date", r.Date)
		if err != nil {
			return nil, &domain.CurveDataError{Reason: fmt.Sprintf("row %d: unparseable date %q", i+1, r.Date)}
		}
		points = append(points, domain.CurvePoint{Date: d, Rate: r.Rate})
	}
	return points, nil
}

// ParseCSV reads a Date/Rate table. Lines before the header row, such as a
// title or a source note, are skipped; extra columns are ignored.
func ParseCSV(r io.Reader) ([]domain.CurvePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	dateCol, rateCol := -1, -1
	var raw []RawPoint
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.CurveDataError{Reason: fmt.Sprintf("line %d: %v", line, err)}
		}

		if dateCol < 0 {
			dateCol, rateCol = headerColumns(record)
			continue
		}
		if max(dateCol, rateCol) >= len(record) || strings.TrimSpace(record[dateCol]) == "" {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(record[rateCol]), 64)
		if err != nil {
			return nil, &domain.CurveDataError{Reason: fmt.Sprintf("line %d: bad rate %q", line, record[rateCol])}
		}
		raw = append(raw, RawPoint{Date: record[dateCol], Rate: rate})
	}
	if dateCol < 0 {
		return nil, &domain.CurveDataError{Reason: "no header row with Date and Rate columns"}
	}
	return Normalize(raw)
}

func headerColumns(record []string) (int, int) {
	dateCol, rateCol := -1, -1
	for i, h := range record {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "date":
			dateCol = i
		case "rate":
			rateCol = i
		}
	}
	if dateCol < 0 || rateCol < 0 {
		return -1, -1
	}
	return dateCol, rateCol
}

// ParseJSON reads a JSON array of {"date", "rate"} objects.
func ParseJSON(r io.Reader) ([]domain.CurvePoint, error) {
	var raw []RawPoint
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &domain.CurveDataError{Reason: fmt.Sprintf("decode json: %v", err)}
	}
	return Normalize(raw)
}

// ParseYAML reads a YAML sequence of {date, rate} mappings.
func ParseYAML(r io.Reader) ([]domain.CurvePoint, error) {
	var raw []RawPoint
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &domain.CurveDataError{Reason: fmt.Sprintf("decode yaml: %v", err)}
	}
	return Normalize(raw)
}

// LoadFile parses a curve table, choosing the format by file extension.
func LoadFile(path string) ([]domain.CurvePoint, error) {
	var parse func(io.Reader) ([]domain.CurvePoint, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		parse = ParseCSV
	case ".json":
		parse = ParseJSON
	case ".yaml", ".yml":
		parse = ParseYAML
	default:
		return nil, fmt.Errorf("curve file %s: unsupported extension", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curve file: %w", err)
	}
	defer f.Close()

	points, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("curve file %s: %w", path, err)
	}
	return points, nil
}
