package application

import (
	"context"
	"strings"

	"github.com/authbox/authbox/internal/domain"
	"github.com/authbox/authbox/internal/logging"
)

const (
	msgMissingFields      = "Provide username and password"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
)

// Result is the outcome of an auth operation. Message is set only on failure.
type Result struct {
	OK      bool
	Message string
}

func succeed() Result {
	return Result{OK: true}
}

func fail(msg string) Result {
	return Result{OK: false, Message: msg}
}

// AuthService composes the registry and session manager into the register,
// login and logout operations. Validation failures come back as a Result,
// never as an error.
type AuthService struct {
	registry *Registry
	sessions *SessionManager
	log      logging.Logger
}

func NewAuthService(registry *Registry, sessions *SessionManager, log logging.Logger) *AuthService {
	if log == nil {
		log = logging.NewNoOp()
	}

	return &AuthService{
		registry: registry,
		sessions: sessions,
		log:      log,
	}
}

// Startup loads the registry and restores any persisted session. It is called
// once before the first operation.
func (s *AuthService) Startup(ctx context.Context) {
	s.registry.Load(ctx)
	s.sessions.Restore(ctx)
}

// Register creates an account and immediately activates a session for it.
func (s *AuthService) Register(ctx context.Context, username, password, name string, remember bool) Result {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	name = strings.TrimSpace(name)

	if username == "" || password == "" {
		return fail(msgMissingFields)
	}

	if _, exists := s.registry.FindByUsername(username); exists {
		return fail(msgUserExists)
	}

	account := domain.Account{
		Username: username,
		Password: password,
		Name:     name,
	}
	s.registry.Add(ctx, account)
	s.sessions.Activate(ctx, account, remember)
	s.log.Info("account registered", "username", username, "remember", remember)

	return succeed()
}

func (s *AuthService) Login(ctx context.Context, username, password string, remember bool) Result {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	account, found := s.registry.FindByCredentials(username, password)
	if !found {
		return fail(msgInvalidCredentials)
	}

	s.sessions.Activate(ctx, account, remember)
	s.log.Info("login", "username", username, "remember", remember)

	return succeed()
}

// Logout clears the session. It always succeeds, signed in or not.
func (s *AuthService) Logout(ctx context.Context) Result {
	s.sessions.Clear(ctx)
	s.log.Info("logout")

	return succeed()
}

func (s *AuthService) Authenticated() bool {
	return s.sessions.Authenticated()
}

func (s *AuthService) CurrentUser() (domain.PublicUser, bool) {
	return s.sessions.CurrentUser()
}

func (s *AuthService) Token() string {
	return s.sessions.Token()
}

func (s *AuthService) Usernames() []string {
	return s.registry.Usernames()
}

func (s *AuthService) Roster() []domain.PublicUser {
	return s.registry.Roster()
}
