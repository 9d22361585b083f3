package roster

import (
	"fmt"

	"github.com/ubck/survey-cli/internal/model"
)

// PoolError reports that a required role pool has fewer candidates than
// team slots. It is raised before the search loop and is never retried.
type PoolError struct {
	Role model.Role
	Need int
	Have int
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("not enough %s candidates: need %d, have %d", e.Role, e.Need, e.Have)
}

// DuplicateError reports a name listed in more than one role pool. Raised
// before the search loop.
type DuplicateError struct {
	Name  string
	Pools []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%q appears in multiple pools: %v", e.Name, e.Pools)
}

// SearchError reports that the attempt budget was exhausted without a
// single constraint-valid partition. LastReason carries the most recent
// constraint failure, which is usually the diagnosis (a constraint naming
// an absent person fails every attempt the same way).
type SearchError struct {
	Attempts   int
	LastReason string
}

func (e *SearchError) Error() string {
	if e.LastReason == "" {
		return fmt.Sprintf("no valid team assignment found in %d attempts", e.Attempts)
	}
	return fmt.Sprintf("no valid team assignment found in %d attempts (last failure: %s)", e.Attempts, e.LastReason)
}
