package matching

import "github.com/okian/stylematch/internal/domain/model"

// Subject identifies who a ranking is computed for: a stored user resolved
// through the Source, or a transient profile used for previews.
type Subject interface {
	subject()
}

// StoredUser is a persisted user looked up by id.
type StoredUser struct {
	ID int64
}

// TransientUser is an unsaved profile. Rejection history is never loaded
// for it.
type TransientUser struct {
	Profile model.UserProfile
}

func (StoredUser) subject()    {}
func (TransientUser) subject() {}
