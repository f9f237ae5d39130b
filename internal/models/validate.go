package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidProfile is returned when profile fields fail validation
var ErrInvalidProfile = errors.New("invalid profile")

// NormalizeHobbies trims tags, drops blanks and collapses case-insensitive duplicates.
// The first spelling of a tag wins. The result is never nil.
func NormalizeHobbies(hobbies []string) HobbySet {
	out := make(HobbySet, 0, len(hobbies))
	seen := make(map[string]struct{}, len(hobbies))
	for _, h := range hobbies {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		key := strings.ToLower(h)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Lower returns the lower-cased tags as a set
func (h HobbySet) Lower() map[string]struct{} {
	set := make(map[string]struct{}, len(h))
	for _, tag := range h {
		set[strings.ToLower(strings.TrimSpace(tag))] = struct{}{}
	}
	delete(set, "")
	return set
}

// IsTraitName reports whether name belongs to the trait vocabulary
func IsTraitName(name string) bool {
	for _, t := range TraitNames {
		if t == name {
			return true
		}
	}
	return false
}

// Normalize fills nil collections and cleans free-text fields
func (p *Profile) Normalize() {
	p.DisplayName = strings.TrimSpace(p.DisplayName)
	p.Bio = strings.TrimSpace(p.Bio)
	p.Location = strings.TrimSpace(p.Location)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.LookingFor = strings.ToLower(strings.TrimSpace(p.LookingFor))
	p.Hobbies = NormalizeHobbies(p.Hobbies)
	if p.Traits == nil {
		p.Traits = TraitVector{}
	}
}

// Validate checks the profile against the data model rules
func (p *Profile) Validate() error {
	if p.DisplayName == "" {
		return fmt.Errorf("%w: display_name is required", ErrInvalidProfile)
	}
	if p.Age < MinAge {
		return fmt.Errorf("%w: age must be at least %d", ErrInvalidProfile, MinAge)
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return fmt.Errorf("%w: gender must be one of male, female, other", ErrInvalidProfile)
	}
	switch p.LookingFor {
	case LookingForMale, LookingForFemale, LookingForEveryone:
	default:
		return fmt.Errorf("%w: looking_for must be one of male, female, everyone", ErrInvalidProfile)
	}
	for name, value := range p.Traits {
		if !IsTraitName(name) {
			return fmt.Errorf("%w: unknown trait %q", ErrInvalidProfile, name)
		}
		if value < MinTraitValue || value > MaxTraitValue {
			return fmt.Errorf("%w: trait %q must be between %d and %d", ErrInvalidProfile, name, MinTraitValue, MaxTraitValue)
		}
	}
	return nil
}
