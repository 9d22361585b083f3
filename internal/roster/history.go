package roster

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ubck/survey-cli/internal/model"
	"github.com/ubck/survey-cli/internal/store"
)

// Stats holds the fairness statistics derived from prior days' rosters.
// It is recomputed from the store on every build and never cached across
// builds, so manual edits to earlier days are always reflected.
type Stats struct {
	// RoleCounts counts how often a person held a required role.
	RoleCounts map[string]map[model.Role]int
	// PairCounts counts how often two people shared a team, keyed by the
	// canonical sorted pair.
	PairCounts map[model.Pair]int
	// SlotCounts counts how often a person was placed in a given team slot.
	SlotCounts map[string]map[int]int
}

// NewStats returns empty statistics (the day-one case).
func NewStats() Stats {
	return Stats{
		RoleCounts: make(map[string]map[model.Role]int),
		PairCounts: make(map[model.Pair]int),
		SlotCounts: make(map[string]map[int]int),
	}
}

// RoleCount returns how often name held role on earlier days.
func (s Stats) RoleCount(name string, role model.Role) int {
	return s.RoleCounts[name][role]
}

// PairCount returns how often a and b shared a team on earlier days.
func (s Stats) PairCount(a, b string) int {
	return s.PairCounts[model.NewPair(a, b)]
}

// SlotCount returns how often name sat in slot on earlier days.
func (s Stats) SlotCount(name string, slot int) int {
	return s.SlotCounts[name][slot]
}

func (s Stats) addRole(name string, role model.Role) {
	if s.RoleCounts[name] == nil {
		s.RoleCounts[name] = make(map[model.Role]int)
	}
	s.RoleCounts[name][role]++
}

func (s Stats) addSlot(name string, slot int) {
	if s.SlotCounts[name] == nil {
		s.SlotCounts[name] = make(map[int]int)
	}
	s.SlotCounts[name][slot]++
}

// Aggregate scans the finalized rosters for all days before day and
// derives role, pair and slot counts. Days without a record contribute
// nothing; empty name cells are skipped. The store is read fresh on every
// call.
func Aggregate(ctx context.Context, st store.Store, day int) (Stats, error) {
	stats := NewStats()

	for d := 1; d < day; d++ {
		rec, err := st.GetDay(ctx, d)
		if err != nil {
			return Stats{}, eris.Wrapf(err, "roster: read day %d", d)
		}
		if rec == nil {
			continue
		}
		stats.addRecord(*rec)
	}
	return stats, nil
}

func (s Stats) addRecord(rec model.DayRecord) {
	for _, t := range rec.Teams {
		if t.Investigator != "" {
			s.addRole(t.Investigator, model.RoleInvestigator)
		}
		if t.Leader != "" {
			s.addRole(t.Leader, model.RoleSectionLeader)
		}

		members := t.Members()
		for _, m := range members {
			s.addSlot(m, t.Slot)
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				s.PairCounts[model.NewPair(members[i], members[j])]++
			}
		}
	}
}
