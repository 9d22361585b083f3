package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/export"
	"github.com/ubck/survey-cli/internal/input"
	"github.com/ubck/survey-cli/internal/model"
	"github.com/ubck/survey-cli/internal/roster"
)

var (
	buildDay      int
	buildTeams    int
	buildInput    string
	buildInvs     string
	buildLeaders  string
	buildFillers  string
	buildCarriers string
	buildTogether string
	buildApart    string
	buildTries    int
	buildSeed     int64
	buildOut      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build one day's team assignment",
	Long: "Builds a constraint-valid, history-aware team assignment for a day and " +
		"stores it as that day's record. Candidates come from a YAML day file " +
		"(--input) or from pasted lists (--investigators etc., separated by " +
		"comma, newline or tab).",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		req, day, err := assembleBuildRequest()
		if err != nil {
			return err
		}

		stats, err := roster.Aggregate(ctx, st, day)
		if err != nil {
			return eris.Wrap(err, "aggregate history")
		}

		partition, err := roster.Build(req, stats)
		if err != nil {
			return eris.Wrapf(err, "build day %d", day)
		}

		rec := model.DayRecord{Day: day, Teams: partition, Carriers: req.Carriers}
		if err := st.SaveDay(ctx, rec); err != nil {
			return eris.Wrap(err, "save day record")
		}

		table := export.FormatTable(partition, rec.CarrierSet(), export.DefaultLabels())
		printTable(table)

		for _, warning := range roster.Warnings(partition, stats) {
			fmt.Fprintln(os.Stderr, "warning:", warning)
		}

		if buildOut != "" {
			if err := export.SaveXLSX(buildOut, table, ""); err != nil {
				return err
			}
			zap.L().Info("roster exported", zap.Int("day", day), zap.String("path", buildOut))
		}

		return nil
	},
}

// assembleBuildRequest merges the day file and flag inputs into a build
// request. Flags win over the file so a stored day can be tweaked without
// editing it.
func assembleBuildRequest() (roster.BuildRequest, int, error) {
	day := buildDay
	teams := buildTeams

	var req roster.BuildRequest

	if buildInput != "" {
		f, err := input.LoadDayFile(buildInput)
		if err != nil {
			return req, 0, err
		}
		if day == 0 {
			day = f.Day
		}
		if teams == 0 {
			teams = f.Teams
		}
		req.Investigators = f.Investigators
		req.Leaders = f.Leaders
		req.Fillers = f.Fillers
		req.Carriers = f.Carriers
		req.Together = f.TogetherPairs()
		req.Apart = f.ApartPairs()
	}

	if buildInvs != "" {
		req.Investigators = input.ParseNames(buildInvs)
	}
	if buildLeaders != "" {
		req.Leaders = input.ParseNames(buildLeaders)
	}
	if buildFillers != "" {
		req.Fillers = input.ParseNames(buildFillers)
	}
	if buildCarriers != "" {
		req.Carriers = input.ParseNames(buildCarriers)
	}
	if buildTogether != "" {
		req.Together = input.ParsePairs(buildTogether)
	}
	if buildApart != "" {
		req.Apart = input.ParsePairs(buildApart)
	}

	if day < 1 {
		return req, 0, eris.New("day must be >= 1 (--day or the day file)")
	}
	if teams < 1 {
		return req, 0, eris.New("teams must be >= 1 (--teams or the day file)")
	}

	carrierOnly, err := cfg.Roster.CarrierOnlyPolicy()
	if err != nil {
		return req, 0, err
	}

	req.Teams = teams
	req.MaxTries = buildTries
	if req.MaxTries <= 0 {
		req.MaxTries = cfg.Roster.MaxTries
	}
	req.Weights = cfg.Roster.Weights()
	req.CarrierOnly = carrierOnly
	req.Seed = buildSeed

	return req, day, nil
}

// printTable renders a table for the terminal.
func printTable(t export.Table) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Header, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func init() {
	buildCmd.Flags().IntVar(&buildDay, "day", 0, "day index (>= 1)")
	buildCmd.Flags().IntVar(&buildTeams, "teams", 0, "number of teams")
	buildCmd.Flags().StringVar(&buildInput, "input", "", "day-input YAML file")
	buildCmd.Flags().StringVar(&buildInvs, "investigators", "", "investigator candidates")
	buildCmd.Flags().StringVar(&buildLeaders, "leaders", "", "section-leader candidates")
	buildCmd.Flags().StringVar(&buildFillers, "fillers", "", "filler candidates")
	buildCmd.Flags().StringVar(&buildCarriers, "carriers", "", "equipment carriers (any role)")
	buildCmd.Flags().StringVar(&buildTogether, "together", "", "must-be-together pairs, A-B")
	buildCmd.Flags().StringVar(&buildApart, "apart", "", "must-be-apart pairs, A-B")
	buildCmd.Flags().IntVar(&buildTries, "max-tries", 0, "search attempt budget (default from config)")
	buildCmd.Flags().Int64Var(&buildSeed, "seed", 0, "random seed (0 = time-based)")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "also write the roster to this .xlsx file")
	rootCmd.AddCommand(buildCmd)
}
