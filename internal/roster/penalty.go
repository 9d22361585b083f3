package roster

// Weights controls how history feeds placement cost. Repeating a team
// slot is the more visible fairness failure, so it is weighted an order
// of magnitude above repeating a pairing.
type Weights struct {
	Pair int
	Slot int
}

// DefaultWeights is the 1:10 pair-to-slot ratio the engine was tuned with.
var DefaultWeights = Weights{Pair: 1, Slot: 10}

// placementCost is the penalty for adding candidate to the team currently
// holding members in the given slot: repeated pairings with current
// members, plus repeated placement in this slot.
func placementCost(stats Stats, w Weights, slot int, members []string, candidate string) int {
	cost := 0
	for _, m := range members {
		cost += stats.PairCount(m, candidate) * w.Pair
	}
	cost += stats.SlotCount(candidate, slot) * w.Slot
	return cost
}
