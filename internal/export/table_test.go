package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubck/survey-cli/internal/model"
)

func samplePartition() model.Partition {
	return model.Partition{
		{Slot: 1, Investigator: "김철수", Leader: "이영희", Fillers: []string{"박민수", "최지우"}},
		{Slot: 2, Investigator: "정하나", Leader: "윤두리", Fillers: []string{"강산"}},
	}
}

func TestFormatTable(t *testing.T) {
	carriers := map[string]bool{"김철수": true, "강산": true}
	table := FormatTable(samplePartition(), carriers, DefaultLabels())

	assert.Equal(t, []string{"역할", "1조", "2조"}, table.Header)
	require.Len(t, table.Rows, 4)
	assert.Equal(t, []string{"조사자", "김철수 📷", "정하나"}, table.Rows[0])
	assert.Equal(t, []string{"섹장", "이영희", "윤두리"}, table.Rows[1])
	assert.Equal(t, []string{"쩌리1", "박민수", "강산 📷"}, table.Rows[2])
	// The shorter filler list pads with an empty cell.
	assert.Equal(t, []string{"쩌리2", "최지우", ""}, table.Rows[3])
}

func TestFormatTableDeterministic(t *testing.T) {
	carriers := map[string]bool{"강산": true}
	first := FormatTable(samplePartition(), carriers, DefaultLabels())
	second := FormatTable(samplePartition(), carriers, DefaultLabels())
	assert.Equal(t, first, second)
}

func TestFormatTableCustomLabels(t *testing.T) {
	labels := Labels{
		RoleHeader:   "Role",
		TeamFmt:      "Team %d",
		Investigator: "Investigator",
		Leader:       "Leader",
		FillerFmt:    "Member %d",
		CarrierMark:  " *",
	}
	table := FormatTable(samplePartition(), map[string]bool{"김철수": true}, labels)

	assert.Equal(t, []string{"Role", "Team 1", "Team 2"}, table.Header)
	assert.Equal(t, "김철수 *", table.Rows[0][1])
	assert.Equal(t, "Member 1", table.Rows[2][0])
}

func TestRoundTrip(t *testing.T) {
	p := samplePartition()
	carriers := map[string]bool{"김철수": true, "강산": true}

	table := FormatTable(p, carriers, DefaultLabels())
	gotPartition, gotCarriers, err := ParseTable(table, DefaultLabels())
	require.NoError(t, err)

	assert.Equal(t, p, gotPartition)
	assert.ElementsMatch(t, []string{"김철수", "강산"}, gotCarriers)
}

func TestParseTableSkipsEmptyCells(t *testing.T) {
	table := Table{
		Header: []string{"역할", "1조", "2조"},
		Rows: [][]string{
			{"조사자", "A", ""},
			{"섹장", "", "B"},
			{"쩌리1", "C", "  "},
		},
	}

	p, carriers, err := ParseTable(table, DefaultLabels())
	require.NoError(t, err)
	assert.Empty(t, carriers)

	assert.Equal(t, "A", p[0].Investigator)
	assert.Empty(t, p[0].Leader)
	assert.Equal(t, []string{"C"}, p[0].Fillers)
	assert.Equal(t, "B", p[1].Leader)
	assert.Empty(t, p[1].Fillers)
}

func TestParseTableUnknownRowsAreFillers(t *testing.T) {
	// A hand-added extra row with an unrecognized label still contributes
	// members rather than being silently lost.
	table := Table{
		Header: []string{"역할", "1조"},
		Rows: [][]string{
			{"조사자", "A"},
			{"섹장", "B"},
			{"비고", "C"},
		},
	}

	p, _, err := ParseTable(table, DefaultLabels())
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, p[0].Fillers)
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{name: "no team columns", table: Table{Header: []string{"역할"}}},
		{
			name: "duplicate investigator",
			table: Table{
				Header: []string{"역할", "1조"},
				Rows: [][]string{
					{"조사자", "A"},
					{"조사자", "B"},
				},
			},
		},
		{
			name: "duplicate leader",
			table: Table{
				Header: []string{"역할", "1조"},
				Rows: [][]string{
					{"섹장", "A"},
					{"섹장", "B"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseTable(tt.table, DefaultLabels())
			assert.Error(t, err)
		})
	}
}

func TestParseTableIgnoresOverflowCells(t *testing.T) {
	table := Table{
		Header: []string{"역할", "1조"},
		Rows: [][]string{
			{"조사자", "A", "stray"},
		},
	}

	p, _, err := ParseTable(table, DefaultLabels())
	require.NoError(t, err)
	require.Len(t, p, 1)
	assert.Equal(t, "A", p[0].Investigator)
}
