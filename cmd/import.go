package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/export"
	"github.com/ubck/survey-cli/internal/model"
	"github.com/ubck/survey-cli/internal/roster"
)

var importCmd = &cobra.Command{
	Use:   "import <day> <file.xlsx>",
	Short: "Import an edited roster spreadsheet as a day's record",
	Long: "Replaces a day's stored roster with the contents of an edited " +
		"spreadsheet. Carrier markers in the cells are stripped and recorded " +
		"as the day's carrier set. Later days pick up the edit on their next " +
		"build.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		day, err := strconv.Atoi(args[0])
		if err != nil || day < 1 {
			return eris.Errorf("invalid day %q", args[0])
		}

		table, err := export.ReadXLSX(args[1])
		if err != nil {
			return err
		}

		partition, carriers, err := export.ParseTable(table, export.DefaultLabels())
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		rec := model.DayRecord{Day: day, Teams: partition, Carriers: carriers}
		if err := st.SaveDay(ctx, rec); err != nil {
			return err
		}

		zap.L().Info("roster imported",
			zap.Int("day", day),
			zap.Int("teams", len(partition)),
			zap.Int("people", len(partition.Names())),
		)

		stats, err := roster.Aggregate(ctx, st, day)
		if err != nil {
			return err
		}
		for _, w := range roster.Warnings(partition, stats) {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
