package graph

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"sunnyway/internal/domain/entities"
)

var requiredColumns = []string{
	"start_lat", "start_lon", "end_lat", "end_lon",
	"left_shadow", "right_shadow", "distance", "direction",
}

const avoidColumn = "avoid"

// LoadFile reads segments from the CSV file at path.
func LoadFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	segments, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// LoadCSV parses segments from a CSV stream. The first record is a header
// naming the columns; order is free and unknown columns are ignored. The
// avoid column is optional and defaults to false.
func LoadCSV(r io.Reader) ([]Segment, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input, no header", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrMalformedRow, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	avoidIdx, hasAvoid := columns[avoidColumn]

	var segments []Segment
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, parseErr.Line, parseErr.Err)
			}
			return nil, fmt.Errorf("read graph csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		values := make(map[string]float64, len(requiredColumns))
		for _, name := range requiredColumns {
			raw := strings.TrimSpace(record[columns[name]])
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: column %s: %q is not a number", ErrMalformedRow, line, name, raw)
			}
			values[name] = v
		}

		avoid := false
		if hasAvoid {
			raw := strings.TrimSpace(record[avoidIdx])
			if raw != "" {
				avoid, err = strconv.ParseBool(raw)
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: column %s: %q is not a boolean", ErrMalformedRow, line, avoidColumn, raw)
				}
			}
		}

		s := Segment{
			Start:       entities.NewGeoPoint(values["start_lat"], values["start_lon"]),
			End:         entities.NewGeoPoint(values["end_lat"], values["end_lon"]),
			LeftShadow:  values["left_shadow"],
			RightShadow: values["right_shadow"],
			Distance:    values["distance"],
			Direction:   values["direction"],
			Avoid:       avoid,
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		segments = append(segments, s)
	}
	return segments, nil
}
