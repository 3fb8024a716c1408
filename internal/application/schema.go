package application

import (
	"fmt"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/authbox/authbox/internal/domain"
)

const currentRegistryVersion = 1

type registrySchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *registrySchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentRegistryVersion
	}
}

func (s registrySchema) validateVersion() error {
	if s.Version > currentRegistryVersion {
		return fmt.Errorf("unsupported registry version %d (current %d)", s.Version, currentRegistryVersion)
	}

	return nil
}

type accountSchema struct {
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	Name      string `toml:"name,omitempty"`
	CreatedAt string `toml:"created_at,omitempty"`
}

type sessionUserSchema struct {
	Username string `toml:"username"`
	Name     string `toml:"name,omitempty"`
}

func encodeRegistry(accounts []domain.Account) (string, error) {
	file := registrySchema{Version: currentRegistryVersion}
	file.Accounts = make([]accountSchema, 0, len(accounts))
	for _, account := range accounts {
		file.Accounts = append(file.Accounts, toAccountSchema(account))
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return "", fmt.Errorf("encode registry: %w", err)
	}

	return string(data), nil
}

func decodeRegistry(raw string) ([]domain.Account, error) {
	var file registrySchema
	if err := toml.Unmarshal([]byte(raw), &file); err != nil {
		return nil, fmt.Errorf("decode registry: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return nil, err
	}
	file.applyDefaults()

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, entry := range file.Accounts {
		accounts = append(accounts, fromAccountSchema(entry))
	}

	return accounts, nil
}

func encodeSessionUser(user domain.PublicUser) (string, error) {
	data, err := toml.Marshal(sessionUserSchema{Username: user.Username, Name: user.Name})
	if err != nil {
		return "", fmt.Errorf("encode session user: %w", err)
	}

	return string(data), nil
}

func decodeSessionUser(raw string) (domain.PublicUser, error) {
	var entry sessionUserSchema
	if err := toml.Unmarshal([]byte(raw), &entry); err != nil {
		return domain.PublicUser{}, fmt.Errorf("decode session user: %w", err)
	}
	if entry.Username == "" {
		return domain.PublicUser{}, fmt.Errorf("decode session user: username is empty")
	}

	return domain.PublicUser{Username: entry.Username, Name: entry.Name}, nil
}

func toAccountSchema(account domain.Account) accountSchema {
	return accountSchema{
		Username:  account.Username,
		Password:  account.Password,
		Name:      account.Name,
		CreatedAt: formatTime(account.CreatedAt),
	}
}

func fromAccountSchema(account accountSchema) domain.Account {
	return domain.Account{
		Username:  account.Username,
		Password:  account.Password,
		Name:      account.Name,
		CreatedAt: parseTime(account.CreatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
