package domain

import "time"

// Account keeps the password as plain text. authbox is a local demo and
// deliberately carries no hashing.
type Account struct {
	Username  string
	Password  string
	Name      string
	CreatedAt time.Time
}

// PublicUser is the redacted projection of an Account, the only shape the
// session stores and presentation code see.
type PublicUser struct {
	Username string
	Name     string
}

func (a Account) Redact() PublicUser {
	return PublicUser{Username: a.Username, Name: a.Name}
}

// DisplayName prefers the optional display name over the username.
func (u PublicUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
