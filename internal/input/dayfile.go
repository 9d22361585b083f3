package input

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/ubck/survey-cli/internal/model"
)

// DayFile is the on-disk YAML form of one day's build inputs. List fields
// accept either YAML sequences or a single pasted blob in the same format
// the interactive flags take.
type DayFile struct {
	Day           int      `yaml:"day"`
	Teams         int      `yaml:"teams"`
	Investigators []string `yaml:"investigators"`
	Leaders       []string `yaml:"leaders"`
	Fillers       []string `yaml:"fillers"`
	Carriers      []string `yaml:"carriers"`
	Together      []string `yaml:"together"`
	Apart         []string `yaml:"apart"`
}

// LoadDayFile reads and validates a day-input YAML file.
func LoadDayFile(path string) (*DayFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: read day file")
	}

	var f DayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrap(err, "input: parse day file")
	}

	if f.Day < 1 {
		return nil, eris.Errorf("input: day must be >= 1, got %d", f.Day)
	}
	if f.Teams < 1 {
		return nil, eris.Errorf("input: teams must be >= 1, got %d", f.Teams)
	}

	f.Investigators = reparse(f.Investigators)
	f.Leaders = reparse(f.Leaders)
	f.Fillers = reparse(f.Fillers)
	f.Carriers = reparse(f.Carriers)

	return &f, nil
}

// TogetherPairs returns the parsed must-be-together rules.
func (f *DayFile) TogetherPairs() []model.PairConstraint {
	return parsePairLines(f.Together)
}

// ApartPairs returns the parsed must-be-apart rules.
func (f *DayFile) ApartPairs() []model.PairConstraint {
	return parsePairLines(f.Apart)
}

// reparse runs every entry back through ParseNames so a single pasted
// "a, b, c" blob and a proper YAML list behave the same.
func reparse(entries []string) []string {
	var out []string
	for _, e := range entries {
		out = append(out, ParseNames(e)...)
	}
	return out
}

func parsePairLines(lines []string) []model.PairConstraint {
	var out []model.PairConstraint
	for _, l := range lines {
		out = append(out, ParsePairs(l)...)
	}
	return out
}
