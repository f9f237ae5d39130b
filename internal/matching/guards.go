package matching

import (
	"heartmatch-backend/internal/models"

	"github.com/rs/zerolog/log"
)

// guard is an in-memory re-check of a storage-level filter
type guard struct {
	name string
	keep func(p *models.Profile) bool
}

func guardsFor(filter CandidateFilter) []guard {
	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	guards := []guard{
		{name: "self", keep: func(p *models.Profile) bool { return p.ID != filter.ExcludeID }},
		{name: "already_swiped", keep: func(p *models.Profile) bool {
			_, gone := excluded[p.ID]
			return !gone
		}},
	}
	if filter.Gender != "" {
		guards = append(guards, guard{name: "gender", keep: func(p *models.Profile) bool {
			return p.Gender == filter.Gender
		}})
	}
	return guards
}

// applyGuards drops nil profiles and anything the store should already have excluded
func applyGuards(filter CandidateFilter, pool []*models.Profile) []*models.Profile {
	out := make([]*models.Profile, 0, len(pool))
	for _, p := range pool {
		if p != nil {
			out = append(out, p)
		}
	}

	for _, g := range guardsFor(filter) {
		initial := len(out)
		kept := out[:0]
		for _, p := range out {
			if g.keep(p) {
				kept = append(kept, p)
			}
		}
		out = kept

		if dropped := initial - len(out); dropped > 0 {
			log.Warn().
				Str("guard", g.name).
				Int("initial", initial).
				Int("dropped", dropped).
				Int("left", len(out)).
				Msg("Store returned excluded candidates")
		}
	}
	return out
}
