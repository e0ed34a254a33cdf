// Package rgefile reads TRIM.SP rge-files: two whitespace separated numeric
// columns (depth in Å, number of stopped particles), with optional header lines.
package rgefile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/ports"
)

// angstromPerNM converts the TRIM.SP depth unit (Å) to nm.
const angstromPerNM = 10.0

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

var _ ports.RgeReader = (*Reader)(nil)

// ReadRge returns depth (nm) and amplitude columns. Lines not starting with a
// digit are treated as header lines and skipped.
func (r *Reader) ReadRge(path string) ([]float64, []float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &domain.OpError{
			Op:   "rgefile.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return Parse(path, b)
}

// Parse parses the content of an rge-file. path is only used for error context.
func Parse(path string, content []byte) ([]float64, []float64, error) {
	var depth, ampl []float64

	sc := bufio.NewScanner(bytes.NewReader(content))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !unicode.IsDigit(rune(line[0])) {
			continue
		}

		tok := strings.FieldsFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
		if len(tok) != 2 {
			return nil, nil, invalidLine(path, lineNo, fmt.Errorf("unexpected number of tokens (%d)", len(tok)))
		}

		zz, err := parseNumber(tok[0])
		if err != nil {
			return nil, nil, invalidLine(path, lineNo, fmt.Errorf("depth %q is not a number: %w", tok[0], err))
		}
		nn, err := parseNumber(tok[1])
		if err != nil {
			return nil, nil, invalidLine(path, lineNo, fmt.Errorf("#particles %q is not a number: %w", tok[1], err))
		}

		z := zz / angstromPerNM
		if n := len(depth); n > 0 && z <= depth[n-1] {
			return nil, nil, invalidLine(path, lineNo, fmt.Errorf("depth %g is not ascending", zz))
		}

		depth = append(depth, z)
		ampl = append(ampl, nn)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, &domain.OpError{
			Op:   "rgefile.read",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if len(depth) == 0 {
		return nil, nil, &domain.OpError{
			Op:   "rgefile.read",
			Kind: domain.KindInvalidData,
			Path: path,
			Err:  fmt.Errorf("no data lines: %w", domain.ErrInvalidData),
		}
	}

	return depth, ampl, nil
}

// parseNumber rejects the nan and inf spellings strconv accepts.
func parseNumber(tok string) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not finite")
	}
	return v, nil
}

func invalidLine(path string, lineNo int, err error) error {
	return &domain.OpError{
		Op:   "rgefile.read",
		Kind: domain.KindInvalidData,
		Path: path,
		Line: lineNo,
		Err:  fmt.Errorf("%w: %w", domain.ErrInvalidData, err),
	}
}
