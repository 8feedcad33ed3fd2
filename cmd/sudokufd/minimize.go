package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/sudokufd/internal/render"
	"github.com/gitrdm/sudokufd/pkg/fd"
)

func newMinimizeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "minimize <input>",
		Short: "Remove as many clues as possible while keeping the solution unique",
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
			config := fd.Config{NoGuesses: flags.noGuesses}
			m := fd.NewMinimizer(c, config, rng, nil)

			printer := newItemPrinter(flags.outputLast)
			defer printer.flush(cmd, c)

			for {
				fixed, ok := m.Next()
				if !ok {
					break
				}
				reduced := &fd.Constraint{Shape: c.Shape, FixedValues: fixed, XSudoku: c.XSudoku}
				printer.add(render.Guesses(reduced, fixed))
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Minimization complete.")
			return nil
		},
	}
}
