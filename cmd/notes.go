package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/ubck/survey-cli/internal/notes"
	"github.com/ubck/survey-cli/pkg/anthropic"
)

var notesFile string

var notesCmd = &cobra.Command{
	Use:   "format-notes",
	Short: "Reformat pasted field notes into a single summary line",
	Long: "Relays two-column species/count text (pasted from a spreadsheet, " +
		"or --file) through the configured model and prints the formatted " +
		"line. Reads stdin when no file is given.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic.key is not configured")
		}

		var raw []byte
		var err error
		if notesFile != "" {
			raw, err = os.ReadFile(notesFile)
			if err != nil {
				return eris.Wrapf(err, "read %s", notesFile)
			}
		} else {
			raw, err = io.ReadAll(os.Stdin)
			if err != nil {
				return eris.Wrap(err, "read stdin")
			}
		}

		formatter := notes.NewFormatter(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model)
		formatted, err := formatter.Format(ctx, string(raw))
		if err != nil {
			return err
		}

		fmt.Println(formatted)
		return nil
	},
}

func init() {
	notesCmd.Flags().StringVar(&notesFile, "file", "", "read input from a file instead of stdin")
	rootCmd.AddCommand(notesCmd)
}
