package roster

import (
	"fmt"

	"github.com/ubck/survey-cli/internal/model"
)

// Warnings inspects a (possibly hand-edited) partition against history
// and reports every repeated role, repeated slot and repeated pairing.
// Unlike the builder these are advisory only: a manual edit may well
// accept a repeat, the organizer just needs to see it. Duplicate messages
// are collapsed, first occurrence order preserved.
func Warnings(p model.Partition, stats Stats) []string {
	var out []string

	for _, t := range p {
		if n := stats.RoleCount(t.Investigator, model.RoleInvestigator); t.Investigator != "" && n > 0 {
			out = append(out, fmt.Sprintf("%s already served as investigator %d time(s)", t.Investigator, n))
		}
		if n := stats.RoleCount(t.Leader, model.RoleSectionLeader); t.Leader != "" && n > 0 {
			out = append(out, fmt.Sprintf("%s already served as section leader %d time(s)", t.Leader, n))
		}

		for _, m := range t.Members() {
			if n := stats.SlotCount(m, t.Slot); n > 0 {
				out = append(out, fmt.Sprintf("%s was already placed in team %d on %d earlier day(s)", m, t.Slot, n))
			}
		}

		members := t.Members()
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				pair := model.NewPair(members[i], members[j])
				if n := stats.PairCounts[pair]; n > 0 {
					out = append(out, fmt.Sprintf("team %d: %s and %s were already teamed up %d time(s)", t.Slot, pair.A, pair.B, n))
				}
			}
		}
	}

	return dedupe(out)
}

func dedupe(msgs []string) []string {
	seen := make(map[string]bool, len(msgs))
	var out []string
	for _, m := range msgs {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
