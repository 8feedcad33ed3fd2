package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/sudokufd/internal/render"
	"github.com/gitrdm/sudokufd/pkg/fd"
)

func newSolveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "solve <input>",
		Short: "Solve the input and prove uniqueness",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConstraint(args[0])
			if err != nil {
				return err
			}
			if flags.xSudoku {
				c.XSudoku = true
			}

			config := fd.Config{NoGuesses: flags.noGuesses}
			iter := fd.NewSolutionIter(c, config)

			printer := newItemPrinter(flags.outputLast)
			defer printer.flush(cmd, c)

			found := 0
			for found < 2 {
				out, ok := iter.Next()
				if !ok {
					break
				}
				printer.add(render.Output(c, out))
				found++
			}

			switch found {
			case 0:
				return fmt.Errorf("no solution")
			case 1:
				fmt.Fprintln(cmd.OutOrStdout(), "Unique solution found.")
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "Puzzle has multiple solutions.")
			}
			return nil
		},
	}
}

// itemPrinter buffers rendered items and, when outputLast is set, only
// prints the final one rather than every one as it is produced.
type itemPrinter struct {
	outputLast bool
	last       string
}

func newItemPrinter(outputLast bool) *itemPrinter {
	return &itemPrinter{outputLast: outputLast}
}

func (p *itemPrinter) add(s string) {
	if s == "" {
		return
	}
	if p.outputLast {
		p.last = s
		return
	}
	fmt.Print(s)
	fmt.Println()
}

func (p *itemPrinter) flush(cmd *cobra.Command, _ *fd.Constraint) {
	if p.outputLast && p.last != "" {
		fmt.Fprint(cmd.OutOrStdout(), p.last)
	}
}
