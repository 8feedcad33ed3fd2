package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gitrdm/sudokufd/internal/parser"
	"github.com/gitrdm/sudokufd/pkg/fd"
)

// loadConstraint loads a puzzle from one of three forms: '-' for stdin, a
// bare 'NxN' shape spec for an empty grid, or a path to a file holding
// puzzle text.
func loadConstraint(input string) (*fd.Constraint, error) {
	text, err := loadText(input)
	if err != nil {
		return nil, err
	}
	c, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("could not parse puzzle: %w", err)
	}
	return c, nil
}

func loadText(input string) (string, error) {
	if input == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("could not read stdin: %w", err)
		}
		return string(content), nil
	}

	if parser.IsShapeSpec(input) {
		return input, nil
	}

	content, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("could not read file %s: %w", input, err)
	}
	return string(content), nil
}
