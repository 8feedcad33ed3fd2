package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/sudokufd/internal/render"
	"github.com/gitrdm/sudokufd/pkg/fd"
)

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <input>",
		Short: "Generate a new puzzle using the input as a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConstraint(args[0])
			if err != nil {
				return err
			}
			if flags.xSudoku {
				c.XSudoku = true
			}

			rng := newRand(flags)

			// Solve once in guess-recording mode to get one random solution's
			// branch trail, then minimize that trail into a puzzle.
			solveConfig := fd.Config{OutputType: fd.OutputGuesses, SearchRandomizer: rng}
			iter := fd.NewSolutionIter(c, solveConfig)
			out, ok := iter.Next()
			if !ok {
				return fmt.Errorf("input has no solution - puzzle could not be generated")
			}

			template := &fd.Constraint{Shape: c.Shape, FixedValues: out.Guesses, XSudoku: c.XSudoku}

			minConfig := fd.Config{NoGuesses: flags.noGuesses}
			m := fd.NewMinimizer(template, minConfig, rng, nil)

			printer := newItemPrinter(flags.outputLast)
			defer printer.flush(cmd, template)

			// Always show the unminimized template first: if the
			// minimizer can't drop anything, it's already the result.
			printer.add(render.Guesses(template, out.Guesses))

			for {
				fixed, ok := m.Next()
				if !ok {
					break
				}
				reduced := &fd.Constraint{Shape: c.Shape, FixedValues: fixed, XSudoku: c.XSudoku}
				printer.add(render.Guesses(reduced, fixed))
			}
			return nil
		},
	}
}
