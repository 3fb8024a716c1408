package application

import (
	"context"
	"errors"

	"github.com/authbox/authbox/internal/domain"
	"github.com/authbox/authbox/internal/logging"
	"github.com/authbox/authbox/internal/ports"
)

const registryKey = "accounts"

// Registry holds the ordered sequence of registered accounts and mirrors it to
// the durable store on every change. Storage failures are logged and absorbed;
// the in-memory sequence stays authoritative for the rest of the run.
type Registry struct {
	store    ports.StateStore
	clock    ports.Clock
	log      logging.Logger
	accounts []domain.Account
}

func NewRegistry(store ports.StateStore, clock ports.Clock, log logging.Logger) *Registry {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logging.NewNoOp()
	}

	return &Registry{
		store: store,
		clock: clock,
		log:   log,
	}
}

// Load replaces the in-memory sequence with whatever the durable store holds.
// An absent or undecodable payload leaves the registry empty.
func (r *Registry) Load(ctx context.Context) {
	r.accounts = nil

	raw, err := r.store.Get(ctx, registryKey)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			r.log.Warn("load registry", "error", err)
		}
		return
	}

	accounts, err := decodeRegistry(raw)
	if err != nil {
		r.log.Warn("load registry", "error", err)
		return
	}

	r.accounts = accounts
	r.log.Debug("registry loaded", "accounts", len(accounts))
}

// Add appends the account and persists the whole sequence. A persistence
// failure is logged but does not undo the append.
func (r *Registry) Add(ctx context.Context, account domain.Account) {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = r.clock.Now()
	}

	r.accounts = append(r.accounts, account)
	r.persist(ctx)
}

func (r *Registry) persist(ctx context.Context) {
	raw, err := encodeRegistry(r.accounts)
	if err != nil {
		r.log.Error("persist registry", "error", err)
		return
	}

	if err := r.store.Set(ctx, registryKey, raw); err != nil {
		r.log.Error("persist registry", "error", err)
	}
}

func (r *Registry) FindByUsername(username string) (domain.Account, bool) {
	for _, account := range r.accounts {
		if account.Username == username {
			return account, true
		}
	}

	return domain.Account{}, false
}

func (r *Registry) FindByCredentials(username, password string) (domain.Account, bool) {
	for _, account := range r.accounts {
		if account.Username == username && account.Password == password {
			return account, true
		}
	}

	return domain.Account{}, false
}

// Usernames returns the registered usernames in insertion order.
func (r *Registry) Usernames() []string {
	names := make([]string, 0, len(r.accounts))
	for _, account := range r.accounts {
		names = append(names, account.Username)
	}

	return names
}

// Roster returns the redacted projection of every account, in insertion order.
func (r *Registry) Roster() []domain.PublicUser {
	users := make([]domain.PublicUser, 0, len(r.accounts))
	for _, account := range r.accounts {
		users = append(users, account.Redact())
	}

	return users
}
