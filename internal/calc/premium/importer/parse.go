package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"Girder/internal/calc/loads"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingColumns    = errors.New("could not identify position, shear and moment columns")
)

type field int

const (
	position field = iota
	shear
	moment
)

var aliases = [...][]string{
	position: {"distance", "length", "position", "x"},
	shear:    {"shear", "sf", "shear force"},
	moment:   {"moment", "bm", "bending moment"},
}

// Report describes what was read from a table.
type Report struct {
	Columns [3]string `json:"columns"`
	Rows    int       `json:"rows"`
	Dropped int       `json:"dropped"`
}

// Parse reads a load table from CSV or XLSX, picking the format from the
// file name. Rows with a missing or non-numeric cell are dropped; the result
// is validated as a load profile.
func Parse(r io.Reader, filename string) (loads.Profile, Report, error) {
	var rows [][]string
	var err error
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		rows, err = readCSV(r)
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(r)
	default:
		return loads.Profile{}, Report{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
	if err != nil {
		return loads.Profile{}, Report{}, err
	}
	return FromRows(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	defer f.Close()
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	return rows, nil
}

// FromRows maps a header row plus data rows onto a load profile.
func FromRows(rows [][]string) (loads.Profile, Report, error) {
	var rep Report
	if len(rows) == 0 {
		return loads.Profile{}, rep, ErrMissingColumns
	}
	idx := [3]int{-1, -1, -1}
	for col, h := range rows[0] {
		f, ok := match(h)
		if ok && idx[f] < 0 {
			idx[f] = col
			rep.Columns[f] = strings.TrimSpace(h)
		}
	}
	if idx[position] < 0 || idx[shear] < 0 || idx[moment] < 0 {
		return loads.Profile{}, rep, fmt.Errorf("%w: header %q", ErrMissingColumns, rows[0])
	}

	var p loads.Profile
	for _, row := range rows[1:] {
		var v [3]float64
		ok := true
		for f, col := range idx {
			if col >= len(row) {
				ok = false
				break
			}
			x, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				ok = false
				break
			}
			v[f] = x
		}
		if !ok {
			rep.Dropped++
			continue
		}
		p.Samples = append(p.Samples, loads.Sample{PositionM: v[position], ShearKN: v[shear], MomentKNM: v[moment]})
	}
	rep.Rows = len(p.Samples)
	if err := p.Validate(); err != nil {
		return loads.Profile{}, rep, err
	}
	return p, rep, nil
}

// match identifies a header, ignoring case and a trailing unit in brackets.
func match(header string) (field, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if i := strings.IndexAny(h, "(["); i >= 0 {
		h = strings.TrimSpace(h[:i])
	}
	for f, names := range aliases {
		for _, a := range names {
			if h == a {
				return field(f), true
			}
		}
	}
	for f, names := range aliases {
		for _, a := range names {
			if len(a) > 2 && strings.Contains(h, a) {
				return field(f), true
			}
		}
	}
	return 0, false
}
