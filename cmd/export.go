package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <day>",
	Short: "Export a day's roster to a spreadsheet",
	Args:  cobra.ExactArgs(1),
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

		out := exportOut
		if out == "" {
			out = "day_" + args[0] + ".xlsx"
		}

		table := export.FormatTable(rec.Teams, rec.CarrierSet(), export.DefaultLabels())
		if err := export.SaveXLSX(out, table, ""); err != nil {
			return err
		}

		zap.L().Info("roster exported", zap.Int("day", day), zap.String("path", out))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default day_<N>.xlsx)")
	rootCmd.AddCommand(exportCmd)
}
