// Package auth issues and validates admin bearer tokens.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// Repository defines what the app layer needs from the session store.
type Repository interface {
	CreateAdminSession(ctx context.Context, session models.AdminSession) error
	GetAdminSession(ctx context.Context, token uuid.UUID) (*models.AdminSession, error)
}

// Credentials are the static admin credentials from configuration.
type Credentials struct {
	AdminID  string
	Password string
}

// App handles admin authentication.
type App struct {
	repo  Repository
	creds Credentials
}

// NewApp creates the auth app.
func NewApp(repo Repository, creds Credentials) *App {
	return &App{repo: repo, creds: creds}
}

// Login checks credentials and issues a session token.
func (a *App) Login(ctx context.Context, adminID, password string) (uuid.UUID, error) {
	if adminID != a.creds.AdminID || password != a.creds.Password {
		return uuid.Nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	token := uuid.New()
	if err := a.repo.CreateAdminSession(ctx, models.AdminSession{Token: token, CreatedAt: time.Now().UTC()}); err != nil {
		return uuid.Nil, fmt.Errorf("create session: %w", err)
	}
	log.Info().Str("admin_id", adminID).Msg("admin logged in")
	return token, nil
}

// Require validates a "Bearer <token>" Authorization header value.
func (a *App) Require(ctx context.Context, authorization string) error {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return fmt.Errorf("%w: missing admin token", apperrors.ErrUnauthorized)
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer "))
	token, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: invalid admin token", apperrors.ErrUnauthorized)
	}
	if _, err := a.repo.GetAdminSession(ctx, token); err != nil {
		return fmt.Errorf("%w: invalid admin token", apperrors.ErrUnauthorized)
	}
	return nil
}
