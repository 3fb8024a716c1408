package application

import (
	"context"
	"errors"

	"github.com/authbox/authbox/internal/domain"
	"github.com/authbox/authbox/internal/logging"
	"github.com/authbox/authbox/internal/ports"
)

const (
	sessionUserKey  = "session/user"
	sessionTokenKey = "session/token"
)

// Scope names the backend a session pair lives in.
type Scope string

const (
	// ScopeDurable survives restarts; chosen by "remember me".
	ScopeDurable Scope = "durable"
	// ScopeSession lasts until the login session ends.
	ScopeSession Scope = "session"
)

// SessionManager tracks the active public user and token and keeps the
// persisted copy in exactly one of the two backends. Storage failures are
// logged and absorbed; the in-memory session stays valid for the run.
type SessionManager struct {
	durable ports.StateStore
	session ports.StateStore
	tokens  ports.TokenSource
	log     logging.Logger

	user  *domain.PublicUser
	token string
	scope Scope
}

func NewSessionManager(durable, session ports.StateStore, tokens ports.TokenSource, log logging.Logger) *SessionManager {
	if tokens == nil {
		tokens = ports.UUIDTokenSource{}
	}
	if log == nil {
		log = logging.NewNoOp()
	}

	return &SessionManager{
		durable: durable,
		session: session,
		tokens:  tokens,
		log:     log,
	}
}

func (m *SessionManager) storeFor(scope Scope) ports.StateStore {
	if scope == ScopeDurable {
		return m.durable
	}

	return m.session
}

func otherScope(scope Scope) Scope {
	if scope == ScopeDurable {
		return ScopeSession
	}

	return ScopeDurable
}

// Restore picks up a previously persisted session, preferring the durable
// backend over the session-scoped one. A remembered session always wins even
// if both backends somehow hold a pair.
func (m *SessionManager) Restore(ctx context.Context) {
	for _, scope := range []Scope{ScopeDurable, ScopeSession} {
		user, token, ok := m.read(ctx, scope)
		if !ok {
			continue
		}

		m.user = &user
		m.token = token
		m.scope = scope
		m.log.Debug("session restored", "scope", scope, "username", user.Username)
		return
	}
}

func (m *SessionManager) read(ctx context.Context, scope Scope) (domain.PublicUser, string, bool) {
	store := m.storeFor(scope)

	rawUser, err := store.Get(ctx, sessionUserKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			m.log.Warn("read session user", "scope", scope, "error", err)
		}
		return domain.PublicUser{}, "", false
	}

	token, err := store.Get(ctx, sessionTokenKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			m.log.Warn("read session token", "scope", scope, "error", err)
		}
		return domain.PublicUser{}, "", false
	}

	user, err := decodeSessionUser(rawUser)
	if err != nil {
		m.log.Warn("read session user", "scope", scope, "error", err)
		return domain.PublicUser{}, "", false
	}

	return user, token, true
}

// Activate makes the account's public projection the current session with a
// fresh token, persists the pair to the backend chosen by remember, and
// purges the other backend's copy.
func (m *SessionManager) Activate(ctx context.Context, account domain.Account, remember bool) {
	scope := ScopeSession
	if remember {
		scope = ScopeDurable
	}

	user := account.Redact()
	m.user = &user
	m.token = m.tokens.NewToken()
	m.scope = scope

	m.write(ctx, scope, user, m.token)
	m.purge(ctx, otherScope(scope))
	m.log.Debug("session activated", "scope", scope, "username", user.Username)
}

func (m *SessionManager) write(ctx context.Context, scope Scope, user domain.PublicUser, token string) {
	store := m.storeFor(scope)

	raw, err := encodeSessionUser(user)
	if err != nil {
		m.log.Error("persist session user", "scope", scope, "error", err)
		return
	}

	if err := store.Set(ctx, sessionUserKey, raw); err != nil {
		m.log.Error("persist session user", "scope", scope, "error", err)
	}
	if err := store.Set(ctx, sessionTokenKey, token); err != nil {
		m.log.Error("persist session token", "scope", scope, "error", err)
	}
}

func (m *SessionManager) purge(ctx context.Context, scope Scope) {
	store := m.storeFor(scope)

	if err := store.Remove(ctx, sessionUserKey); err != nil {
		m.log.Warn("remove session user", "scope", scope, "error", err)
	}
	if err := store.Remove(ctx, sessionTokenKey); err != nil {
		m.log.Warn("remove session token", "scope", scope, "error", err)
	}
}

// Clear drops the current session and removes the persisted pair from both
// backends. Logout does not know which backend was used, so it clears both.
func (m *SessionManager) Clear(ctx context.Context) {
	m.user = nil
	m.token = ""
	m.scope = ""

	m.purge(ctx, ScopeDurable)
	m.purge(ctx, ScopeSession)
	m.log.Debug("session cleared")
}

// Authenticated reports whether a token is currently held.
func (m *SessionManager) Authenticated() bool {
	return m.token != ""
}

// CurrentUser returns the active public user, if any.
func (m *SessionManager) CurrentUser() (domain.PublicUser, bool) {
	if m.user == nil {
		return domain.PublicUser{}, false
	}

	return *m.user, true
}

func (m *SessionManager) Token() string {
	return m.token
}

// CurrentScope returns the backend the active session was persisted to. It is
// empty when no session is active.
func (m *SessionManager) CurrentScope() Scope {
	return m.scope
}
