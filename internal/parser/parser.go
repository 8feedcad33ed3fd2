// Package parser turns raw puzzle text into an fd.Constraint. It
// recognizes a bare shape spec ("9x9"), a short one-char(ish)-per-cell
// digit run, and a whitespace/punctuation-tolerant grid of decimal
// numbers.
package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/gitrdm/sudokufd/pkg/fd"
)

const (
	minNumValues = 2
	maxNumValues = 512
)

var (
	shapeRegex   = regexp.MustCompile(`^(\d+)x(\d+)$`)
	commentRegex = regexp.MustCompile(`(?m)#.*$`)
	xSudokuRegex = regexp.MustCompile(`(?i)x[- ]sudoku|sudoku[ -]x`)
	cellRegex    = regexp.MustCompile(`[.]|\d+`)
)

// Parse parses raw puzzle text into a Constraint, trying a bare shape
// spec first, then the short format, then the grid format.
func Parse(input string) (*fd.Constraint, error) {
	input = commentRegex.ReplaceAllString(input, "")
	xSudoku := xSudokuRegex.MatchString(input)
	if xSudoku {
		input = xSudokuRegex.ReplaceAllString(input, "")
	}

	if shape, ok := parseShapeSpec(input); ok {
		return &fd.Constraint{Shape: shape, XSudoku: xSudoku}, nil
	}

	errs := []string{"could not parse grid:"}

	if c, err := parseShortText(input); err == nil {
		c.XSudoku = xSudoku
		return c, nil
	} else {
		errs = append(errs, fmt.Sprintf("[short-format] %s", err))
	}

	if c, err := parseGridLayout(input); err == nil {
		c.XSudoku = xSudoku
		return c, nil
	} else {
		errs = append(errs, fmt.Sprintf("[grid-format] %s", err))
	}

	return nil, fmt.Errorf("%s", strings.Join(errs, "\n"))
}

// IsShapeSpec reports whether input is a bare "NxN" shape spec rather than
// a path or an inline grid, the same check the loader uses to decide
// whether to treat its argument as a filename.
func IsShapeSpec(input string) bool {
	_, ok := parseShapeSpec(input)
	return ok
}

func parseShapeSpec(input string) (fd.Shape, bool) {
	m := shapeRegex.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil || m[1] != m[2] {
		return fd.Shape{}, false
	}
	sideLen, err := strconv.Atoi(m[1])
	if err != nil {
		return fd.Shape{}, false
	}
	dim, err := guessDimension(sideLen * sideLen)
	if err != nil {
		return fd.Shape{}, false
	}
	return fd.NewShape(dim), true
}

// guessDimension recovers a box size from a cell count: numCells must be
// a perfect fourth power, and its square root (the side length) must lie
// in the supported range.
func guessDimension(numCells int) (int, error) {
	dim := int(math.Sqrt(math.Sqrt(float64(numCells))))
	// math.Sqrt twice can land one off either way on the exact boundary;
	// nudge within a small window rather than trust the float truncation.
	for _, candidate := range [...]int{dim - 1, dim, dim + 1, dim + 2} {
		if candidate > 0 && candidate*candidate*candidate*candidate == numCells {
			dim = candidate
			break
		}
	}
	if dim*dim*dim*dim != numCells {
		return 0, fmt.Errorf("cell count does not make a valid grid size: %d", numCells)
	}
	numValues := dim * dim
	if numValues < minNumValues || numValues > maxNumValues {
		return 0, fmt.Errorf("grid size not supported - side length: %d", numValues)
	}
	return dim, nil
}

func removeWhitespace(s string) string {
	var b strings.Builder
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseShortText(input string) (*fd.Constraint, error) {
	stripped := removeWhitespace(input)
	dim, err := guessDimension(len(stripped))
	if err != nil {
		return nil, err
	}
	numValues := dim * dim
	radix := numValues + 1
	if radix > 36 {
		return nil, fmt.Errorf("too many values for short input: %d", numValues)
	}

	var fixed fd.FixedValues
	for i, ch := range stripped {
		if ch == '.' || ch == '0' {
			continue
		}
		v, err := strconv.ParseUint(string(ch), radix, 64)
		if err != nil {
			return nil, fmt.Errorf("unrecognized character: %q", ch)
		}
		fixed = append(fixed, fd.FixedValue{Cell: i, Value: fd.DisplayValue(int(v))})
	}

	return &fd.Constraint{Shape: fd.NewShape(dim), FixedValues: fixed}, nil
}

func parseGridLayout(input string) (*fd.Constraint, error) {
	parts := cellRegex.FindAllString(input, -1)
	dim, err := guessDimension(len(parts))
	if err != nil {
		return nil, err
	}
	numValues := dim * dim

	var fixed fd.FixedValues
	for i, part := range parts {
		if part == "." {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("unparsable number: %s", part)
		}
		if value == 0 || value > numValues {
			return nil, fmt.Errorf("value out of range: %d", value)
		}
		fixed = append(fixed, fd.FixedValue{Cell: i, Value: fd.DisplayValue(value)})
	}

	return &fd.Constraint{Shape: fd.NewShape(dim), FixedValues: fixed}, nil
}
