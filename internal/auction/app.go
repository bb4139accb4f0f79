// Package auction manages auction rooms: creation, listing and the
// invite-code join flow.
package auction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// Repository defines what the app layer needs from the auction store.
type Repository interface {
	CreateAuction(ctx context.Context, a models.Auction) error
	GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	GetAuctionByInviteCode(ctx context.Context, code string) (*models.Auction, error)
	ListAuctions(ctx context.Context) ([]models.Auction, error)
	GetGameState(ctx context.Context, auctionID uuid.UUID) (*models.GameState, error)
}

// App handles auction room management.
type App struct {
	repo          Repository
	inviteBaseURL string
}

// NewApp creates the auction app. inviteBaseURL is the frontend join URL
// prefix an invite code is appended to.
func NewApp(repo Repository, inviteBaseURL string) *App {
	return &App{repo: repo, inviteBaseURL: inviteBaseURL}
}

// InviteLink builds the shareable join link for an invite code.
func (a *App) InviteLink(code string) string {
	return a.inviteBaseURL + code
}

// Create makes a new DRAFT auction with a unique 6-char invite code and
// provisions its game-state row.
func (a *App) Create(ctx context.Context, title string) (*models.Auction, error) {
	auction := models.Auction{
		ID:         uuid.New(),
		Title:      title,
		Status:     models.AuctionStatusDraft,
		InviteCode: newInviteCode(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := a.repo.CreateAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("create auction: %w", err)
	}
	if _, err := a.repo.GetGameState(ctx, auction.ID); err != nil {
		return nil, fmt.Errorf("provision game state: %w", err)
	}
	log.Info().Str("auction_id", auction.ID.String()).Str("invite_code", auction.InviteCode).Msg("auction created")
	return &auction, nil
}

// Get retrieves one auction.
func (a *App) Get(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	auction, err := a.repo.GetAuction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get auction: %w", err)
	}
	return auction, nil
}

// List returns every auction, newest first.
func (a *App) List(ctx context.Context) ([]models.Auction, error) {
	auctions, err := a.repo.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

// ValidateInvite resolves an invite code to its auction. Codes are matched
// case-insensitively.
func (a *App) ValidateInvite(ctx context.Context, code string) (*models.Auction, error) {
	return a.repo.GetAuctionByInviteCode(ctx, strings.ToUpper(code))
}

// newInviteCode takes the first six hex chars of a fresh UUID, uppercased.
func newInviteCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return strings.ToUpper(raw[:6])
}
