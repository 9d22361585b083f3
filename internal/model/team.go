package model

// Team is one survey team for a single day. Slot is the 1-based team index
// and is stable across days: being placed in slot 2 on consecutive days is
// itself a fairness dimension, independent of who else is in the team.
type Team struct {
	Slot         int      `json:"slot"`
	Investigator string   `json:"investigator"`
	Leader       string   `json:"leader"`
	Fillers      []string `json:"fillers,omitempty"`
}

// Members returns every non-empty name in the team, required roles first.
func (t Team) Members() []string {
	members := make([]string, 0, 2+len(t.Fillers))
	if t.Investigator != "" {
		members = append(members, t.Investigator)
	}
	if t.Leader != "" {
		members = append(members, t.Leader)
	}
	for _, f := range t.Fillers {
		if f != "" {
			members = append(members, f)
		}
	}
	return members
}

// Partition assigns every candidate of a day to exactly one team.
type Partition []Team

// SlotOf builds a name → slot index lookup over the whole partition.
func (p Partition) SlotOf() map[string]int {
	slots := make(map[string]int)
	for _, t := range p {
		for _, m := range t.Members() {
			slots[m] = t.Slot
		}
	}
	return slots
}

// Names returns all member names across the partition, in slot order.
func (p Partition) Names() []string {
	var names []string
	for _, t := range p {
		names = append(names, t.Members()...)
	}
	return names
}

// MaxFillers returns the deepest filler list across all teams.
func (p Partition) MaxFillers() int {
	max := 0
	for _, t := range p {
		if len(t.Fillers) > max {
			max = len(t.Fillers)
		}
	}
	return max
}
