package model

import "time"

// DayRecord is the finalized roster for one survey day. Once accepted it is
// the sole input to fairness statistics for later days. Records are
// re-read at build time, so editing a past day changes what later builds
// see without any cache invalidation step.
type DayRecord struct {
	Day       int       `json:"day"`
	Teams     Partition `json:"teams"`
	Carriers  []string  `json:"carriers,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarrierSet returns the carrier list as a membership set.
func (r DayRecord) CarrierSet() map[string]bool {
	set := make(map[string]bool, len(r.Carriers))
	for _, c := range r.Carriers {
		if c != "" {
			set[c] = true
		}
	}
	return set
}
