package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	profileadapter "github.com/authbox/authbox/internal/adapters/render/profile"
	filestore "github.com/authbox/authbox/internal/adapters/store/file"
	"github.com/authbox/authbox/internal/application"
	"github.com/authbox/authbox/internal/config"
	"github.com/authbox/authbox/internal/logging"
	"github.com/authbox/authbox/internal/ports"
)

type app struct {
	auth            *application.AuthService
	profileRenderer func(application.Profile, profileadapter.RenderOptions) (string, error)
	now             func() time.Time
	logLevel        *slog.LevelVar
	verbose         *bool
}

func wireApp() (*app, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelWarn)
	log := logging.NewSlogLogger(os.Stderr, logLevel)

	durable := filestore.NewStore(cfg.StateDir)
	session := filestore.NewStore(cfg.RuntimeDir)

	registry := application.NewRegistry(durable, ports.SystemClock{}, log)
	sessions := application.NewSessionManager(durable, session, ports.UUIDTokenSource{}, log)

	return &app{
		auth:            application.NewAuthService(registry, sessions, log),
		profileRenderer: profileadapter.Render,
		now:             time.Now,
		logLevel:        logLevel,
	}, nil
}

// startup applies the verbose flag and brings the service to its persisted
// state. Every state-touching command calls it first.
func (a *app) startup(cmd *cobra.Command) {
	if a.verbose != nil && *a.verbose {
		a.logLevel.Set(slog.LevelDebug)
	}

	a.auth.Startup(cmd.Context())
}
