package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTeamMembers(t *testing.T) {
	team := Team{Slot: 1, Investigator: "A", Leader: "B", Fillers: []string{"C", "", "D"}}
	assert.Equal(t, []string{"A", "B", "C", "D"}, team.Members())

	empty := Team{Slot: 2}
	assert.Empty(t, empty.Members())
}

func TestPartitionSlotOf(t *testing.T) {
	p := Partition{
		{Slot: 1, Investigator: "A", Leader: "B"},
		{Slot: 2, Investigator: "C", Leader: "D", Fillers: []string{"E"}},
	}

	slots := p.SlotOf()
	assert.Equal(t, 1, slots["A"])
	assert.Equal(t, 2, slots["E"])
	_, ok := slots["Z"]
	assert.False(t, ok)
}

func TestPartitionNamesAndMaxFillers(t *testing.T) {
	p := Partition{
		{Slot: 1, Investigator: "A", Leader: "B", Fillers: []string{"C", "D"}},
		{Slot: 2, Investigator: "E", Leader: "F"},
	}

	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F"}, p.Names())
	assert.Equal(t, 2, p.MaxFillers())
}

func TestNewPairCanonical(t *testing.T) {
	assert.Equal(t, NewPair("b", "a"), NewPair("a", "b"))
	assert.Equal(t, Pair{A: "a", B: "b"}, NewPair("b", "a"))
}

func TestCarrierSet(t *testing.T) {
	rec := DayRecord{Carriers: []string{"A", "", "B"}}
	set := rec.CarrierSet()
	assert.True(t, set["A"])
	assert.True(t, set["B"])
	assert.False(t, set[""])
	assert.Len(t, set, 2)
}
