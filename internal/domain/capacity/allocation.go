package capacity

import (
	"sort"
	"time"
)

// SlotSource is one unit of backing capacity chosen for an activation.
// Token-backed sources carry the token whose quantity is to be consumed.
type SlotSource struct {
	Type       SourceType
	SourceID   uint
	Token      *CapacityToken
	ValidUntil time.Time
}

// SelectSources decides which concrete slot backs each of the requested
// units, in fixed precedence:
//
//  1. remaining room under the current plan assignment's limit — the plan
//     is a recurring ceiling, "free" per cycle, so it is exhausted first;
//  2. tokens, soonest expiration first, so a token never expires unused
//     while a later one is drawn down. Ties on expiration break by creation
//     order (ID ascending) for determinism.
//
// planBoundCount is the number of active students currently bound to this
// assignment. The returned slice covers all requested units or the request
// is rejected whole; callers must not observe partial allocation.
func SelectSources(assignment *PlanAssignment, plan *PlanDefinition, planBoundCount int, tokens []*CapacityToken, count int, now time.Time) ([]SlotSource, error) {
	if count <= 0 {
		return nil, nil
	}

	sources := make([]SlotSource, 0, count)

	if assignment != nil && plan != nil && assignment.IsEffective(now) {
		planRoom := plan.StudentLimit() - planBoundCount
		for i := 0; i < planRoom && len(sources) < count; i++ {
			sources = append(sources, SlotSource{
				Type:       SourceTypePlan,
				SourceID:   assignment.ID(),
				ValidUntil: assignment.EndDate(),
			})
		}
	}

	if len(sources) < count {
		usable := make([]*CapacityToken, 0, len(tokens))
		for _, token := range tokens {
			if token.IsUsable(now) {
				usable = append(usable, token)
			}
		}
		sort.SliceStable(usable, func(i, j int) bool {
			if usable[i].ExpirationDate().Equal(usable[j].ExpirationDate()) {
				return usable[i].ID() < usable[j].ID()
			}
			return usable[i].ExpirationDate().Before(usable[j].ExpirationDate())
		})

		for _, token := range usable {
			remaining := token.Quantity()
			for i := 0; i < remaining && len(sources) < count; i++ {
				sources = append(sources, SlotSource{
					Type:       SourceTypeToken,
					SourceID:   token.ID(),
					Token:      token,
					ValidUntil: token.ExpirationDate(),
				})
			}
			if len(sources) == count {
				break
			}
		}
	}

	if len(sources) < count {
		return nil, ErrInsufficientSources
	}

	return sources, nil
}
