// Package export renders an accepted partition as the row-oriented table
// organizers edit and exchange as spreadsheets, and parses such tables
// back. The carrier marker exists only at this boundary; everywhere else
// carrier status is a structured flag.
package export

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/ubck/survey-cli/internal/model"
)

// Labels holds the display strings used in exported tables. The defaults
// match the spreadsheets the field teams already use, so a file produced
// before this tool existed still round-trips.
type Labels struct {
	RoleHeader   string
	TeamFmt      string // fmt verb receives the 1-based slot index
	Investigator string
	Leader       string
	FillerFmt    string // fmt verb receives the 1-based filler depth
	CarrierMark  string // appended to a name, stripped on parse
}

// DefaultLabels are the Korean labels of the original survey sheets.
func DefaultLabels() Labels {
	return Labels{
		RoleHeader:   "역할",
		TeamFmt:      "%d조",
		Investigator: "조사자",
		Leader:       "섹장",
		FillerFmt:    "쩌리%d",
		CarrierMark:  " 📷",
	}
}

// Table is a rendered roster: a header row and one row per role level.
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// FormatTable renders a partition. One column per team slot; investigator
// row, leader row, then one row per filler depth up to the deepest team.
// Shorter filler lists pad with empty cells. Formatting is pure: calling
// it twice on the same inputs yields identical tables.
func FormatTable(p model.Partition, carriers map[string]bool, labels Labels) Table {
	mark := func(name string) string {
		if name == "" {
			return ""
		}
		if carriers[name] {
			return name + labels.CarrierMark
		}
		return name
	}

	header := []string{labels.RoleHeader}
	for _, t := range p {
		header = append(header, fmt.Sprintf(labels.TeamFmt, t.Slot))
	}

	invRow := []string{labels.Investigator}
	leadRow := []string{labels.Leader}
	for _, t := range p {
		invRow = append(invRow, mark(t.Investigator))
		leadRow = append(leadRow, mark(t.Leader))
	}
	rows := [][]string{invRow, leadRow}

	for depth := 0; depth < p.MaxFillers(); depth++ {
		row := []string{fmt.Sprintf(labels.FillerFmt, depth+1)}
		for _, t := range p {
			if depth < len(t.Fillers) {
				row = append(row, mark(t.Fillers[depth]))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

// ParseTable reverses FormatTable: it rebuilds the partition and recovers
// the carrier set from the markers. Row labels decide roles; any row that
// is neither the investigator nor the leader row contributes fillers.
// Empty cells are skipped, so a hand-edited table with holes still parses.
func ParseTable(t Table, labels Labels) (model.Partition, []string, error) {
	if len(t.Header) < 2 {
		return nil, nil, eris.New("export: table has no team columns")
	}
	k := len(t.Header) - 1

	partition := make(model.Partition, k)
	for i := range partition {
		partition[i] = model.Team{Slot: i + 1}
	}

	var carriers []string
	carrierSeen := make(map[string]bool)
	strip := func(cell string) string {
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cell), strings.TrimSpace(labels.CarrierMark)))
		if name != strings.TrimSpace(cell) && name != "" && !carrierSeen[name] {
			carrierSeen[name] = true
			carriers = append(carriers, name)
		}
		return name
	}

	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])

		for col := 1; col < len(row) && col <= k; col++ {
			name := strip(row[col])
			if name == "" {
				continue
			}
			team := &partition[col-1]
			switch label {
			case labels.Investigator:
				if team.Investigator != "" {
					return nil, nil, eris.Errorf("export: team %d has two investigators", col)
				}
				team.Investigator = name
			case labels.Leader:
				if team.Leader != "" {
					return nil, nil, eris.Errorf("export: team %d has two leaders", col)
				}
				team.Leader = name
			default:
				team.Fillers = append(team.Fillers, name)
			}
		}
	}

	return partition, carriers, nil
}
