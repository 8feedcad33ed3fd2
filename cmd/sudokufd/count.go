package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/sudokufd/internal/render"
	"github.com/gitrdm/sudokufd/pkg/fd"
)

func newCountCmd(flags *globalFlags) *cobra.Command {
	var printEvery int

	cmd := &cobra.Command{
		Use:   "count <input>",
		Short: "Count solutions without printing any of them, reporting progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadConstraint(args[0])
			if err != nil {
				return err
			}
			if flags.xSudoku {
				c.XSudoku = true
			}

			var lastPrinted uint64
			config := fd.Config{
				NoGuesses:  flags.noGuesses,
				OutputType: fd.OutputEmpty,
				ProgressCallback: func(counters *fd.Counters) {
					if printEvery > 0 && counters.Solutions != lastPrinted && counters.Solutions%uint64(printEvery) == 0 {
						lastPrinted = counters.Solutions
						fmt.Fprintln(cmd.OutOrStdout(), render.Counters(counters))
					}
				},
			}
			iter := fd.NewSolutionIter(c, config)

			var count uint64
			for {
				if _, ok := iter.Next(); !ok {
					break
				}
				count++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d solution(s)\n", count)
			return nil
		},
	}

	cmd.Flags().IntVar(&printEvery, "progress-every", 0, "print a progress line every N solutions found (0 disables)")
	return cmd
}
