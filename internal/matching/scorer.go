// Package matching implements candidate discovery and compatibility scoring.
package matching

import (
	"math"
	"sort"

	"heartmatch-backend/internal/models"
)

const (
	pointsPerSharedHobby = 10
	maxHobbyPoints       = 50
	traitSimilarityBase  = 5
	traitPointsScale     = 10
)

// Breakdown explains how a compatibility score was composed
type Breakdown struct {
	SharedHobbies []string `json:"shared_hobbies"`
	HobbyPoints   float64  `json:"hobby_points"`
	MatchedTraits int      `json:"matched_traits"`
	TraitPoints   float64  `json:"trait_points"`
	Score         int      `json:"score"`
}

// Score returns the compatibility of candidate c for requester r.
// Nil profiles score zero.
func Score(r, c *models.Profile) int {
	return Explain(r, c).Score
}

// Explain computes the score together with its components
func Explain(r, c *models.Profile) Breakdown {
	if r == nil || c == nil {
		return Breakdown{SharedHobbies: []string{}}
	}

	shared := sharedHobbies(r.Hobbies, c.Hobbies)
	hobby := HobbyScore(len(shared))
	trait, matched := TraitScore(r.Traits, c.Traits)

	return Breakdown{
		SharedHobbies: shared,
		HobbyPoints:   hobby,
		MatchedTraits: matched,
		TraitPoints:   trait,
		Score:         int(math.Round(hobby + trait)),
	}
}

// HobbyScore rewards each shared hobby linearly, capped at 50 points
func HobbyScore(shared int) float64 {
	return math.Min(float64(shared*pointsPerSharedHobby), maxHobbyPoints)
}

// TraitScore averages 5-|a-b| over the traits present in both vectors and scales it by 10.
// The result is not clamped. It also returns how many traits were compared.
func TraitScore(a, b models.TraitVector) (float64, int) {
	sum, count := 0, 0
	for name, av := range a {
		bv, ok := b[name]
		if !ok {
			continue
		}
		diff := av - bv
		if diff < 0 {
			diff = -diff
		}
		sum += traitSimilarityBase - diff
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count) * traitPointsScale, count
}

// sharedHobbies returns the sorted lower-cased intersection of a and b
func sharedHobbies(a, b models.HobbySet) []string {
	other := b.Lower()
	shared := []string{}
	for tag := range a.Lower() {
		if _, ok := other[tag]; ok {
			shared = append(shared, tag)
		}
	}
	sort.Strings(shared)
	return shared
}
