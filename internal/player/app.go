// Package player manages draftable players outside the live round and the
// free-text roster import.
package player

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// Repository defines what the app layer needs from the store.
type Repository interface {
	CreatePlayer(ctx context.Context, p models.Player) error
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	ListPlayersByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Player, error)
	SavePlayer(ctx context.Context, p *models.Player) error
	DeletePlayer(ctx context.Context, id uuid.UUID) error
	GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error)
}

// LobbyNotifier re-broadcasts the lobby snapshot of a room.
type LobbyNotifier interface {
	PublishLobby(ctx context.Context, auctionID uuid.UUID)
}

// CreatePlayerRequest adds a player to an auction.
type CreatePlayerRequest struct {
	ID    *uuid.UUID     `json:"id"`
	Name  string         `json:"name"`
	Tiers models.TierSet `json:"tiers"`
}

// UpdatePlayerRequest is a partial update; nil fields are left unchanged.
type UpdatePlayerRequest struct {
	Name         *string         `json:"name"`
	Tiers        *models.TierSet `json:"tiers"`
	Status       *string         `json:"status"`
	SoldToTeamID *uuid.UUID      `json:"soldToTeamId"`
	SoldPrice    *int            `json:"soldPrice"`
	OrderIndex   *int            `json:"orderIndex"`
}

// App handles player business logic.
type App struct {
	repo  Repository
	lobby LobbyNotifier
}

// NewApp creates the player app.
func NewApp(repo Repository, lobby LobbyNotifier) *App {
	return &App{repo: repo, lobby: lobby}
}

// Create adds a player to an auction.
func (a *App) Create(ctx context.Context, auctionID uuid.UUID, req CreatePlayerRequest) (*models.Player, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: player name is required", apperrors.ErrInvalidInput)
	}
	if _, err := a.repo.GetAuction(ctx, auctionID); err != nil {
		return nil, err
	}
	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}
	p := models.Player{
		ID:        id,
		AuctionID: auctionID,
		Name:      req.Name,
		Tiers:     req.Tiers,
		Status:    models.PlayerStatusWaiting,
	}
	if err := a.repo.CreatePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	a.lobby.PublishLobby(ctx, auctionID)
	return &p, nil
}

// Get retrieves a player scoped to an auction.
func (a *App) Get(ctx context.Context, auctionID, playerID uuid.UUID) (*models.Player, error) {
	p, err := a.repo.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.AuctionID != auctionID {
		return nil, fmt.Errorf("%w: player %s", apperrors.ErrNotFound, playerID)
	}
	return p, nil
}

// List returns all players of an auction in draft order.
func (a *App) List(ctx context.Context, auctionID uuid.UUID) ([]models.Player, error) {
	return a.repo.ListPlayersByAuction(ctx, auctionID)
}

// Update applies a partial update.
func (a *App) Update(ctx context.Context, auctionID, playerID uuid.UUID, req UpdatePlayerRequest) (*models.Player, error) {
	p, err := a.Get(ctx, auctionID, playerID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Tiers != nil {
		p.Tiers = *req.Tiers
	}
	if req.Status != nil {
		p.Status = models.PlayerStatus(*req.Status)
	}
	if req.SoldToTeamID != nil {
		p.SoldToTeamID = req.SoldToTeamID
	}
	if req.SoldPrice != nil {
		p.SoldPrice = req.SoldPrice
	}
	if req.OrderIndex != nil {
		p.OrderIndex = req.OrderIndex
	}
	if err := a.repo.SavePlayer(ctx, p); err != nil {
		return nil, fmt.Errorf("save player: %w", err)
	}
	a.lobby.PublishLobby(ctx, auctionID)
	return p, nil
}

// Delete removes a player.
func (a *App) Delete(ctx context.Context, auctionID, playerID uuid.UUID) error {
	if _, err := a.Get(ctx, auctionID, playerID); err != nil {
		return err
	}
	if err := a.repo.DeletePlayer(ctx, playerID); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	a.lobby.PublishLobby(ctx, auctionID)
	return nil
}
