// Package model contains domain models passed between layers.
package model

// Silhouette is the garment cut a user shops for.
type Silhouette string

// Silhouettes.
const (
	SilhouetteMenswear   Silhouette = "menswear"
	SilhouetteWomenswear Silhouette = "womenswear"
	SilhouetteAll        Silhouette = "all"
)

// UserProfile is a user's declared style preferences. Empty aesthetic,
// palette or vibe means the user stated no preference for that dimension.
type UserProfile struct {
	ID             int64
	Name           string
	Aesthetic      Aesthetic
	Palette        Palette
	Vibe           Vibe
	Silhouette     Silhouette
	FollowedBrands []string
}

// Follows reports whether brand is in the user's followed set.
func (u UserProfile) Follows(brand string) bool {
	if brand == "" {
		return false
	}
	for _, b := range u.FollowedBrands {
		if b == brand {
			return true
		}
	}
	return false
}

// AllowedGenders returns the item genders compatible with the user's
// silhouette, or nil when every gender is allowed.
func (u UserProfile) AllowedGenders() []Gender {
	switch u.Silhouette {
	case SilhouetteMenswear:
		return []Gender{GenderMens, GenderUnisex}
	case SilhouetteWomenswear:
		return []Gender{GenderWomens, GenderUnisex}
	default:
		return nil
	}
}

// RequiredGender returns the gender an item must declare (or unisex) for
// this user, and false when the silhouette imposes no restriction.
func (u UserProfile) RequiredGender() (Gender, bool) {
	switch u.Silhouette {
	case SilhouetteMenswear:
		return GenderMens, true
	case SilhouetteWomenswear:
		return GenderWomens, true
	default:
		return "", false
	}
}

// RejectionSet holds the ids of items a user reacted negatively to.
type RejectionSet map[int64]struct{}

// NewRejectionSet builds a set from ids.
func NewRejectionSet(ids ...int64) RejectionSet {
	s := make(RejectionSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id was rejected. Safe on a nil set.
func (s RejectionSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}
