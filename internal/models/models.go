package models

import "time"

// Gender values a profile can declare
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// LookingFor values a profile can declare
const (
	LookingForMale     = "male"
	LookingForFemale   = "female"
	LookingForEveryone = "everyone"
)

// Personality trait names
const (
	TraitExtroverted = "extroverted"
	TraitAdventurous = "adventurous"
	TraitCreative    = "creative"
	TraitHumorous    = "humorous"
	TraitEmpathetic  = "empathetic"
)

// Trait value bounds
const (
	MinTraitValue = 1
	MaxTraitValue = 5
	MinAge        = 18
)

// TraitNames is the fixed trait vocabulary in display order
var TraitNames = []string{
	TraitExtroverted,
	TraitAdventurous,
	TraitCreative,
	TraitHumorous,
	TraitEmpathetic,
}

// User represents an account that can sign in
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// HobbySet is a list of free-text interest tags compared case-insensitively
type HobbySet []string

// TraitVector maps a trait name to a value in [1,5]
type TraitVector map[string]int

// Profile represents a user's dating profile
type Profile struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"display_name"`
	Age         int         `json:"age"`
	Bio         string      `json:"bio"`
	Gender      string      `json:"gender"`
	LookingFor  string      `json:"looking_for"`
	Location    string      `json:"location"`
	Hobbies     HobbySet    `json:"hobbies"`
	Traits      TraitVector `json:"traits"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ScoredProfile is a candidate profile with its compatibility score
type ScoredProfile struct {
	Profile
	CompatibilityScore int `json:"compatibility_score"`
}

// Swipe represents a like or dislike from one user toward another
type Swipe struct {
	SwiperID  string    `json:"swiper_id"`
	SwipedID  string    `json:"swiped_id"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// Match represents two users who liked each other.
// User1ID is always lexicographically smaller than User2ID.
type Match struct {
	ID        string    `json:"id"`
	User1ID   string    `json:"user1_id"`
	User2ID   string    `json:"user2_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OtherUserID returns the participant that is not userID
func (m *Match) OtherUserID(userID string) string {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// SwipeResult reports whether a swipe completed a match
type SwipeResult struct {
	Match   bool   `json:"match"`
	MatchID string `json:"match_id,omitempty"`
}

// OrderedPair returns the two ids with the smaller one first
func OrderedPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}
