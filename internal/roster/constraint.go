package roster

import (
	"fmt"

	"github.com/ubck/survey-cli/internal/model"
)

// CheckConstraints validates a completed partition against the hard
// pairing rules. The first failing constraint short-circuits and its
// reason is returned. A constraint naming a person absent from the
// partition is a failure in its own right, reported distinctly from a
// slot mismatch.
func CheckConstraints(p model.Partition, together, apart []model.PairConstraint) (bool, string) {
	slots := p.SlotOf()

	for _, c := range together {
		sa, okA := slots[c.A]
		sb, okB := slots[c.B]
		if !okA || !okB {
			return false, fmt.Sprintf("together rule %s-%s names someone not on any team", c.A, c.B)
		}
		if sa != sb {
			return false, fmt.Sprintf("together rule violated: %s is in team %d, %s in team %d", c.A, sa, c.B, sb)
		}
	}

	for _, c := range apart {
		sa, okA := slots[c.A]
		sb, okB := slots[c.B]
		if !okA || !okB {
			return false, fmt.Sprintf("apart rule %s-%s names someone not on any team", c.A, c.B)
		}
		if sa == sb {
			return false, fmt.Sprintf("apart rule violated: %s and %s are both in team %d", c.A, c.B, sa)
		}
	}

	return true, ""
}
