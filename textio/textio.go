// Package textio reads and writes lightcurves as whitespace delimited text with one sample per
// line: time, value and an optional uncertainty.
package textio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/go-lightcurve/series"
)

var ErrMalformedRecord = errors.New("malformed record")

// ReadOptions configures how a lightcurve file is parsed. With TwoColumn set every line holds
// only time and value and the uncertainties are all set to zero.
type ReadOptions struct {
	TwoColumn bool
	Meta      series.Meta
}

// NewDefaultReadOptions expects three columns and the default metadata
func NewDefaultReadOptions() *ReadOptions {
	return &ReadOptions{
		Meta: series.NewDefaultMeta(),
	}
}

// ReadFile parses the lightcurve stored at path
func ReadFile(path string, opt *ReadOptions) (*series.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	s, err := Read(file, opt)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s, %w", path, err)
	}
	return s, nil
}

// Read parses a lightcurve from r. Blank lines and lines starting with # are skipped.
func Read(r io.Reader, opt *ReadOptions) (*series.Series, error) {
	if opt == nil {
		opt = NewDefaultReadOptions()
	}
	cols := 3
	if opt.TwoColumn {
		cols = 2
	}

	var t, y, e []float64
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != cols {
			return nil, fmt.Errorf(
				"line %d has %d columns, expected %d, %w",
				lineNum, len(fields), cols, ErrMalformedRecord,
			)
		}

		record := make([]float64, cols)
		for i, field := range fields {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d, %w, %w", lineNum, i+1, ErrMalformedRecord, err)
			}
			record[i] = val
		}

		t = append(t, record[0])
		y = append(y, record[1])
		if opt.TwoColumn {
			e = append(e, 0.0)
		} else {
			e = append(e, record[2])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if e == nil {
		e = []float64{}
	}
	return series.New(t, y, e, opt.Meta)
}

// Write renders the series as three whitespace delimited columns without a header
func Write(w io.Writer, s *series.Series) error {
	bw := bufio.NewWriter(w)
	t := s.Times()
	y := s.Values()
	e := s.Uncertainties()
	for i := range t {
		bw.WriteString(strconv.FormatFloat(t[i], 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(y[i], 'g', -1, 64))
		bw.WriteByte(' ')
		bw.WriteString(strconv.FormatFloat(e[i], 'g', -1, 64))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile writes the series to path, replacing any existing file. Nothing is written if the
// series cannot be rendered.
func WriteFile(path string, s *series.Series) error {
	var buf bytes.Buffer
	if err := Write(&buf, s); err != nil {
		return fmt.Errorf("unable to render series, %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
