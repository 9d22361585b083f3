package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubck/survey-cli/internal/model"
)

func writeDayFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "day.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDayFile(t *testing.T) {
	path := writeDayFile(t, `
day: 3
teams: 2
investigators:
  - 김철수
  - 이영희
leaders: [박민수, 최지우]
fillers:
  - "정하나, 윤두리"
carriers: [김철수]
together:
  - 정하나-윤두리
apart:
  - 김철수-박민수, 이영희-최지우
`)

	f, err := LoadDayFile(path)
	require.NoError(t, err)

	assert.Equal(t, 3, f.Day)
	assert.Equal(t, 2, f.Teams)
	assert.Equal(t, []string{"김철수", "이영희"}, f.Investigators)
	assert.Equal(t, []string{"박민수", "최지우"}, f.Leaders)
	// A single pasted blob expands to its individual names.
	assert.Equal(t, []string{"정하나", "윤두리"}, f.Fillers)
	assert.Equal(t, []string{"김철수"}, f.Carriers)

	assert.Equal(t, []model.PairConstraint{{A: "정하나", B: "윤두리"}}, f.TogetherPairs())
	assert.Equal(t, []model.PairConstraint{
		{A: "김철수", B: "박민수"},
		{A: "이영희", B: "최지우"},
	}, f.ApartPairs())
}

func TestLoadDayFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing day", content: "teams: 2\n"},
		{name: "zero teams", content: "day: 1\nteams: 0\n"},
		{name: "bad yaml", content: "day: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDayFile(writeDayFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadDayFileMissing(t *testing.T) {
	_, err := LoadDayFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
