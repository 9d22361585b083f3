package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ubck/survey-cli/internal/roster"
)

var warningsCmd = &cobra.Command{
	Use:   "warnings <day>",
	Short: "Check a day's stored roster against history",
	Long: "Recomputes history statistics and reports repeated roles, repeated " +
		"team slots and repeated pairings in the day's stored roster. Useful " +
		"after hand-editing an imported spreadsheet.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		day, err := strconv.Atoi(args[0])
		if err != nil || day < 1 {
			return eris.Errorf("invalid day %q", args[0])
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := st.GetDay(ctx, day)
		if err != nil {
			return err
		}
		if rec == nil {
			return eris.Errorf("day %d has no record", day)
		}

		stats, err := roster.Aggregate(ctx, st, day)
		if err != nil {
			return err
		}

		warnings := roster.Warnings(rec.Teams, stats)
		if len(warnings) == 0 {
			fmt.Println("no warnings")
			return nil
		}
		for _, w := range warnings {
			fmt.Println("warning:", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warningsCmd)
}
