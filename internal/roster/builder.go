package roster

import (
	"math/rand"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/model"
)

// DefaultMaxTries bounds the stochastic search. There is no convergence
// guarantee; the budget is the only bound on runtime.
const DefaultMaxTries = 1500

// Filler placement is a weighted cascade: team size balance dominates,
// then history penalty, then carrier spread. The ordering of the weights
// matters, their exact magnitudes less so.
const (
	sizeWeight    = 1000
	penaltyWeight = 500
	carrierWeight = 300
)

// slotRepeatWeight scores a finished partition; it is intentionally a
// separate metric from the in-loop Weights.Slot used during placement.
const slotRepeatWeight = 2

// CarrierOnlyPolicy decides what happens to a name listed only as an
// equipment carrier, with no role pool.
type CarrierOnlyPolicy int

const (
	// CarrierOnlyPromote silently adds the name to the filler pool.
	CarrierOnlyPromote CarrierOnlyPolicy = iota
	// CarrierOnlyReject fails the build before the search starts.
	CarrierOnlyReject
)

// DuplicatePolicy decides how a name appearing in several role pools is
// handled.
type DuplicatePolicy int

const (
	// DuplicatesReject fails the build before the search starts.
	DuplicatesReject DuplicatePolicy = iota
	// DuplicatesAllow lets pools overlap; whichever role picks the person
	// first wins and the other pools no longer see them that attempt.
	DuplicatesAllow
)

// BuildRequest carries one day's candidate pools and rules.
type BuildRequest struct {
	Teams         int
	Investigators []string
	Leaders       []string
	Fillers       []string
	Carriers      []string
	Together      []model.PairConstraint
	Apart         []model.PairConstraint

	MaxTries    int               // 0 → DefaultMaxTries
	Weights     Weights           // zero value → DefaultWeights
	CarrierOnly CarrierOnlyPolicy
	Duplicates  DuplicatePolicy
	Seed        int64 // 0 → time-derived; fix for reproducible builds
}

type teamState struct {
	investigator string
	leader       string
	fillers      []string
	carrierCount int
}

func (t *teamState) members() []string {
	members := make([]string, 0, 2+len(t.fillers))
	members = append(members, t.investigator, t.leader)
	return append(members, t.fillers...)
}

func (t *teamState) size() int { return 2 + len(t.fillers) }

// Build searches for the lowest-penalty partition satisfying all hard
// constraints within the attempt budget. Pool validation failures
// (*PoolError, *DuplicateError) abort before the first attempt; budget
// exhaustion returns a *SearchError. No partial partition is ever
// returned.
func Build(req BuildRequest, stats Stats) (model.Partition, error) {
	if req.Teams < 1 {
		return nil, eris.Errorf("roster: team count must be >= 1, got %d", req.Teams)
	}
	if req.MaxTries <= 0 {
		req.MaxTries = DefaultMaxTries
	}
	if req.Weights == (Weights{}) {
		req.Weights = DefaultWeights
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	fillers, err := validatePools(req)
	if err != nil {
		return nil, err
	}

	k := req.Teams
	if len(req.Investigators) < k {
		return nil, &PoolError{Role: model.RoleInvestigator, Need: k, Have: len(req.Investigators)}
	}
	// A leader pool smaller than k can never succeed; only the
	// post-exclusion shortfall inside the loop is worth retrying.
	if len(req.Leaders) < k {
		return nil, &PoolError{Role: model.RoleSectionLeader, Need: k, Have: len(req.Leaders)}
	}

	carriers := make(map[string]bool, len(req.Carriers))
	for _, c := range req.Carriers {
		carriers[c] = true
	}

	log := zap.L().With(zap.String("component", "roster.builder"))
	log.Debug("starting search",
		zap.Int("teams", k),
		zap.Int("candidates", len(req.Investigators)+len(req.Leaders)+len(fillers)),
		zap.Int("max_tries", req.MaxTries),
	)

	var best model.Partition
	bestPenalty := 0
	lastReason := ""

	for try := 0; try < req.MaxTries; try++ {
		invCandidates := fatigueSort(rng, req.Investigators, stats, model.RoleInvestigator)
		leadCandidates := fatigueSort(rng, req.Leaders, stats, model.RoleSectionLeader)

		teams := make([]*teamState, k)
		for i := range teams {
			teams[i] = &teamState{}
		}

		used := make(map[string]bool)
		for i, p := range invCandidates[:k] {
			teams[i].investigator = p
			used[p] = true
			if carriers[p] {
				teams[i].carrierCount++
			}
		}

		// Leaders already picked as investigators drop out for this
		// attempt. A shortfall here depends on the random ordering above,
		// so it retries rather than failing the build.
		validLeaders := exclude(leadCandidates, used)
		if len(validLeaders) < k {
			continue
		}
		for i, p := range validLeaders[:k] {
			teams[i].leader = p
			used[p] = true
			if carriers[p] {
				teams[i].carrierCount++
			}
		}

		// Everyone left over fills out team sizes, carriers first so the
		// carrier-spread term sees them before the teams fill up.
		leftovers := leftoverPool(fillers, invCandidates[k:], validLeaders[k:], used)
		var withCam, withoutCam []string
		for _, p := range leftovers {
			if carriers[p] {
				withCam = append(withCam, p)
			} else {
				withoutCam = append(withoutCam, p)
			}
		}
		rng.Shuffle(len(withCam), func(i, j int) { withCam[i], withCam[j] = withCam[j], withCam[i] })
		rng.Shuffle(len(withoutCam), func(i, j int) { withoutCam[i], withoutCam[j] = withoutCam[j], withoutCam[i] })

		placeFillers(rng, teams, withCam, stats, req.Weights, carriers)
		placeFillers(rng, teams, withoutCam, stats, req.Weights, carriers)

		partition := make(model.Partition, k)
		for i, t := range teams {
			partition[i] = model.Team{
				Slot:         i + 1,
				Investigator: t.investigator,
				Leader:       t.leader,
				Fillers:      t.fillers,
			}
		}

		ok, reason := CheckConstraints(partition, req.Together, req.Apart)
		if !ok {
			lastReason = reason
			continue
		}

		penalty := totalPenalty(partition, stats)
		if best == nil || penalty < bestPenalty {
			best = partition
			bestPenalty = penalty
			if penalty == 0 {
				log.Debug("zero-penalty partition found", zap.Int("attempt", try+1))
				break
			}
		}
	}

	if best == nil {
		return nil, &SearchError{Attempts: req.MaxTries, LastReason: lastReason}
	}

	log.Info("team assignment built",
		zap.Int("teams", k),
		zap.Int("penalty", bestPenalty),
	)
	return best, nil
}

// validatePools enforces pool disjointness and the carrier-only policy,
// returning the effective filler pool.
func validatePools(req BuildRequest) ([]string, error) {
	fillers := append([]string(nil), req.Fillers...)

	if req.Duplicates == DuplicatesReject {
		pools := map[string][]string{}
		record := func(pool string, names []string) {
			for _, n := range names {
				pools[n] = append(pools[n], pool)
			}
		}
		record("investigators", req.Investigators)
		record("leaders", req.Leaders)
		record("fillers", req.Fillers)

		names := make([]string, 0, len(pools))
		for n := range pools {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			if len(pools[n]) > 1 {
				return nil, &DuplicateError{Name: n, Pools: pools[n]}
			}
		}
	}

	rostered := make(map[string]bool)
	for _, pool := range [][]string{req.Investigators, req.Leaders, req.Fillers} {
		for _, n := range pool {
			rostered[n] = true
		}
	}
	for _, c := range req.Carriers {
		if rostered[c] {
			continue
		}
		if req.CarrierOnly == CarrierOnlyReject {
			return nil, &DuplicateError{Name: c, Pools: []string{"carriers"}}
		}
		fillers = append(fillers, c)
		rostered[c] = true
	}

	return fillers, nil
}

// fatigueSort orders candidates by ascending historical count for the
// role, breaking ties randomly so equally rested candidates rotate.
func fatigueSort(rng *rand.Rand, candidates []string, stats Stats, role model.Role) []string {
	type keyed struct {
		name  string
		count int
		tie   float64
	}
	keys := make([]keyed, len(candidates))
	for i, c := range candidates {
		keys[i] = keyed{name: c, count: stats.RoleCount(c, role), tie: rng.Float64()}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].count != keys[j].count {
			return keys[i].count < keys[j].count
		}
		return keys[i].tie < keys[j].tie
	})

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.name
	}
	return out
}

func exclude(names []string, used map[string]bool) []string {
	var out []string
	for _, n := range names {
		if !used[n] {
			out = append(out, n)
		}
	}
	return out
}

// leftoverPool merges the filler pool with unselected investigators and
// leaders, dropping anyone already placed and collapsing duplicates from
// overlapping pools.
func leftoverPool(fillers, invLeft, leadLeft []string, used map[string]bool) []string {
	var out []string
	seen := make(map[string]bool)
	for _, group := range [][]string{fillers, invLeft, leadLeft} {
		for _, n := range group {
			if used[n] || seen[n] {
				continue
			}
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

// placeFillers assigns each candidate greedily to the cheapest team. Team
// evaluation order is shuffled per candidate so score ties don't always
// break toward the same slot.
func placeFillers(rng *rand.Rand, teams []*teamState, candidates []string, stats Stats, w Weights, carriers map[string]bool) {
	order := make([]int, len(teams))
	for i := range order {
		order[i] = i
	}

	for _, p := range candidates {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		bestIdx := -1
		bestScore := 0
		for _, idx := range order {
			t := teams[idx]
			score := t.size() * sizeWeight
			score += placementCost(stats, w, idx+1, t.members(), p) * penaltyWeight
			if carriers[p] {
				score += t.carrierCount * carrierWeight
			}
			if bestIdx < 0 || score < bestScore {
				bestIdx = idx
				bestScore = score
			}
		}

		teams[bestIdx].fillers = append(teams[bestIdx].fillers, p)
		if carriers[p] {
			teams[bestIdx].carrierCount++
		}
	}
}

// totalPenalty is the post-hoc score for a finished partition: every
// repeated pairing counts once, every repeated slot placement counts
// double.
func totalPenalty(p model.Partition, stats Stats) int {
	total := 0
	for _, t := range p {
		members := t.Members()
		for _, m := range members {
			total += stats.SlotCount(m, t.Slot) * slotRepeatWeight
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				total += stats.PairCount(members[i], members[j])
			}
		}
	}
	return total
}
