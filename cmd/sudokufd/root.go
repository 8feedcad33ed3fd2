package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	xSudoku    bool
	noGuesses  bool
	seed       int64
	hasSeed    bool
	outputLast bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "sudokufd",
		Short: "Solves and generates square constraint puzzles up to 512x512",
		Long: `sudokufd solves, minimizes, generates, and counts solutions for
square constraint-grid puzzles (classical Sudoku and X-Sudoku) with grid
sizes up to 512x512.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&flags.xSudoku, "x-sudoku", "x", false,
		"add X-Sudoku diagonal constraints (can also be set by an 'X-Sudoku' token in the puzzle file)")
	root.PersistentFlags().BoolVar(&flags.noGuesses, "no-guesses", false,
		"don't allow guessing (search); fail unless propagation alone solves the puzzle")
	root.PersistentFlags().Int64Var(&flags.seed, "seed", 0,
		"RNG seed for generate/minimize (random if unset)")
	root.PersistentFlags().BoolVar(&flags.outputLast, "output-last", false,
		"only keep the last item produced, instead of printing every one")

	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		flags.hasSeed = cmd.Flags().Changed("seed")
	}

	root.AddCommand(
		newSolveCmd(flags),
		newMinimizeCmd(flags),
		newGenerateCmd(flags),
		newCountCmd(flags),
	)

	return root
}
