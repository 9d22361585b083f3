package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ubck/survey-cli/internal/export"
	"github.com/ubck/survey-cli/internal/roster"
)

var daysCmd = &cobra.Command{
	Use:   "days",
	Short: "Inspect stored day records",
}

var daysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List days with stored rosters",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		days, err := st.ListDays(ctx)
		if err != nil {
			return err
		}
		if len(days) == 0 {
			fmt.Println("no stored days")
			return nil
		}
		for _, d := range days {
			rec, err := st.GetDay(ctx, d)
			if err != nil {
				return err
			}
			fmt.Printf("day %d: %d teams, %d people (updated %s)\n",
				d, len(rec.Teams), len(rec.Teams.Names()), rec.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var daysShowCmd = &cobra.Command{
	Use:   "show <day>",
	Short: "Show a day's roster and history warnings",
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

		printTable(export.FormatTable(rec.Teams, rec.CarrierSet(), export.DefaultLabels()))

		stats, err := roster.Aggregate(ctx, st, day)
		if err != nil {
			return err
		}
		for _, w := range roster.Warnings(rec.Teams, stats) {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
		return nil
	},
}

var daysDeleteCmd = &cobra.Command{
	Use:   "delete <day>",
	Short: "Delete a day's roster",
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

		return st.DeleteDay(ctx, day)
	},
}

func init() {
	daysCmd.AddCommand(daysListCmd, daysShowCmd, daysDeleteCmd)
	rootCmd.AddCommand(daysCmd)
}
