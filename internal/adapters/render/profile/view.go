package profile

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/authbox/authbox/internal/application"
	"github.com/authbox/authbox/internal/domain"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(profile application.Profile, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Authbox Session"),
	}

	if !profile.Authenticated {
		lines = append(lines, s.empty.Render("Not signed in."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		s.header.Render(fmt.Sprintf("user: %s", profile.User.Username)),
		s.section.Render(renderProfile(profile, opts, s)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProfile(profile application.Profile, opts RenderOptions, s styles) string {
	parts := []string{
		s.user.Render(userTitle(profile.User)),
		s.detail.Render(fmt.Sprintf("token: %s", truncateToken(profile.Token))),
		s.scope.Render(fmt.Sprintf("scope: %s", scopeLabel(profile.Scope))),
	}

	if line := registeredLine(profile.RegisteredAt, opts.Now); line != "" {
		parts = append(parts, s.detail.Render(line))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func userTitle(user domain.PublicUser) string {
	if user.Name != "" && user.Name != user.Username {
		return fmt.Sprintf("%s (%s)", user.Name, user.Username)
	}

	return user.Username
}

func scopeLabel(scope application.Scope) string {
	switch scope {
	case application.ScopeDurable:
		return "remembered (survives restarts)"
	case application.ScopeSession:
		return "this session only"
	default:
		return "unknown"
	}
}

func truncateToken(token string) string {
	const visible = 8
	if len(token) <= visible {
		return token
	}

	return token[:visible] + "..."
}

func registeredLine(registeredAt, now time.Time) string {
	if registeredAt.IsZero() {
		return ""
	}
	if now.IsZero() {
		return fmt.Sprintf("registered %s", registeredAt.Format("02 Jan 2006"))
	}

	days := int(now.Sub(registeredAt).Hours() / 24)
	switch {
	case days <= 0:
		return fmt.Sprintf("registered today (%s)", registeredAt.Format("15:04"))
	case days == 1:
		return "registered 1 day ago"
	default:
		return fmt.Sprintf("registered %d days ago", days)
	}
}
