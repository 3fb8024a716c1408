package application

import (
	"time"

	"github.com/authbox/authbox/internal/domain"
)

// Profile is the read model behind whoami: the active session plus the
// matching registry record's registration time, when the record still exists.
type Profile struct {
	Authenticated bool
	User          domain.PublicUser
	Token         string
	Scope         Scope
	RegisteredAt  time.Time
}

func (s *AuthService) Profile() Profile {
	user, ok := s.sessions.CurrentUser()
	if !ok {
		return Profile{}
	}

	profile := Profile{
		Authenticated: true,
		User:          user,
		Token:         s.sessions.Token(),
		Scope:         s.sessions.CurrentScope(),
	}

	if account, found := s.registry.FindByUsername(user.Username); found {
		profile.RegisteredAt = account.CreatedAt
	}

	return profile
}
