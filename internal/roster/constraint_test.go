package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ubck/survey-cli/internal/model"
)

func testPartition() model.Partition {
	return model.Partition{
		{Slot: 1, Investigator: "A", Leader: "B", Fillers: []string{"C"}},
		{Slot: 2, Investigator: "D", Leader: "E"},
	}
}

func TestCheckConstraints(t *testing.T) {
	tests := []struct {
		name     string
		together []model.PairConstraint
		apart    []model.PairConstraint
		wantOK   bool
		contains string
	}{
		{name: "no constraints", wantOK: true},
		{
			name:     "together satisfied",
			together: []model.PairConstraint{{A: "A", B: "C"}},
			wantOK:   true,
		},
		{
			name:     "together violated",
			together: []model.PairConstraint{{A: "A", B: "D"}},
			contains: "together rule violated",
		},
		{
			name:     "together absent person",
			together: []model.PairConstraint{{A: "A", B: "Z"}},
			contains: "not on any team",
		},
		{
			name:   "apart satisfied",
			apart:  []model.PairConstraint{{A: "A", B: "D"}},
			wantOK: true,
		},
		{
			name:     "apart violated",
			apart:    []model.PairConstraint{{A: "B", B: "C"}},
			contains: "apart rule violated",
		},
		{
			name:     "apart absent person",
			apart:    []model.PairConstraint{{A: "Z", B: "D"}},
			contains: "not on any team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := CheckConstraints(testPartition(), tt.together, tt.apart)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Empty(t, reason)
			} else {
				assert.Contains(t, reason, tt.contains)
			}
		})
	}
}

func TestCheckConstraintsShortCircuits(t *testing.T) {
	together := []model.PairConstraint{
		{A: "A", B: "D"}, // violated first
		{A: "A", B: "Z"}, // would be an absence failure
	}
	ok, reason := CheckConstraints(testPartition(), together, nil)
	assert.False(t, ok)
	assert.Contains(t, reason, "together rule violated")
}
