// Package team manages drafting teams: CRUD, the invite-code join flow and
// admin point overrides.
package team

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// JoinPoints is the starting budget of a team joining via invite code.
const JoinPoints = 1000

// Repository defines what the app layer needs from the store.
type Repository interface {
	CreateTeam(ctx context.Context, t models.Team) error
	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	ListTeamsByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error)
	SaveTeam(ctx context.Context, t *models.Team) error
	DeleteTeam(ctx context.Context, id uuid.UUID) error
	RosterPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)
	GetAuctionByInviteCode(ctx context.Context, code string) (*models.Auction, error)
	AppendBidLog(ctx context.Context, auctionID uuid.UUID, message string) error
}

// Publisher defines what the app needs from the broadcaster.
type Publisher interface {
	Broadcast(room uuid.UUID, e events.Event)
}

// Engine is what the team app needs from the auction engine: lobby
// refreshes, and the per-room critical section so point overrides
// serialize with a running sale.
type Engine interface {
	PublishLobby(ctx context.Context, auctionID uuid.UUID)
	LockRoom(auctionID uuid.UUID) func()
}

// CreateTeamRequest creates a team inside an auction.
type CreateTeamRequest struct {
	ID           *uuid.UUID     `json:"id"`
	Name         string         `json:"name"`
	CaptainName  string         `json:"captainName"`
	Points       int            `json:"points"`
	CaptainStats models.TierSet `json:"captainStats"`
}

// UpdateTeamRequest is a partial update; nil fields are left unchanged.
type UpdateTeamRequest struct {
	Name         *string         `json:"name"`
	CaptainName  *string         `json:"captainName"`
	Points       *int            `json:"points"`
	CaptainStats *models.TierSet `json:"captainStats"`
}

// JoinRequest is the captain-facing lobby join via invite code.
type JoinRequest struct {
	TeamName   string         `json:"teamName"`
	Captain    string         `json:"captain"`
	Tiers      models.TierSet `json:"tiers"`
	InviteCode string         `json:"inviteCode"`
}

// App handles team business logic.
type App struct {
	repo   Repository
	pub    Publisher
	engine Engine
}

// NewApp creates the team app.
func NewApp(repo Repository, pub Publisher, engine Engine) *App {
	return &App{repo: repo, pub: pub, engine: engine}
}

// Create adds a team to an auction (admin flow).
func (a *App) Create(ctx context.Context, auctionID uuid.UUID, req CreateTeamRequest) (*models.Team, error) {
	if req.Name == "" || req.CaptainName == "" {
		return nil, fmt.Errorf("%w: team and captain names are required", apperrors.ErrInvalidInput)
	}
	id := uuid.New()
	if req.ID != nil {
		id = *req.ID
	}
	t := models.Team{
		ID:           id,
		AuctionID:    auctionID,
		Name:         req.Name,
		CaptainName:  req.CaptainName,
		Points:       req.Points,
		CaptainStats: req.CaptainStats,
	}
	if err := a.repo.CreateTeam(ctx, t); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	a.engine.PublishLobby(ctx, auctionID)
	return &t, nil
}

// Join creates a team from a captain's invite-code join request.
func (a *App) Join(ctx context.Context, req JoinRequest) (*models.Team, error) {
	auction, err := a.repo.GetAuctionByInviteCode(ctx, strings.ToUpper(req.InviteCode))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invite code", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("resolve invite: %w", err)
	}
	t := models.Team{
		ID:           uuid.New(),
		AuctionID:    auction.ID,
		Name:         req.TeamName,
		CaptainName:  req.Captain,
		Points:       JoinPoints,
		CaptainStats: req.Tiers,
	}
	if err := a.repo.CreateTeam(ctx, t); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	log.Info().
		Str("auction_id", auction.ID.String()).
		Str("team", t.Name).
		Str("captain", t.CaptainName).
		Msg("team joined via invite")
	a.engine.PublishLobby(ctx, auction.ID)
	return &t, nil
}

// Get retrieves a team scoped to an auction.
func (a *App) Get(ctx context.Context, auctionID, teamID uuid.UUID) (*models.Team, error) {
	t, err := a.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if t.AuctionID != auctionID {
		return nil, fmt.Errorf("%w: team %s", apperrors.ErrNotFound, teamID)
	}
	return t, nil
}

// List returns all teams of an auction.
func (a *App) List(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error) {
	return a.repo.ListTeamsByAuction(ctx, auctionID)
}

// Update applies a partial update and announces the (possibly changed)
// point total.
func (a *App) Update(ctx context.Context, auctionID, teamID uuid.UUID, req UpdateTeamRequest) (*models.Team, error) {
	// Under the room lock: a sale deducting points concurrently must not
	// be overwritten by this read-modify-write.
	unlock := a.engine.LockRoom(auctionID)
	defer unlock()

	t, err := a.Get(ctx, auctionID, teamID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.CaptainName != nil {
		t.CaptainName = *req.CaptainName
	}
	if req.Points != nil {
		t.Points = *req.Points
	}
	if req.CaptainStats != nil {
		t.CaptainStats = *req.CaptainStats
	}
	if err := a.repo.SaveTeam(ctx, t); err != nil {
		return nil, fmt.Errorf("save team: %w", err)
	}
	a.pub.Broadcast(auctionID, events.Event{Type: events.TypePointChange, Payload: events.PointChange{
		AuctionID: auctionID,
		TeamID:    t.ID,
		NewPoints: t.Points,
	}})
	a.engine.PublishLobby(ctx, auctionID)
	return t, nil
}

// SetPoints is the logged admin override of a team's budget.
func (a *App) SetPoints(ctx context.Context, auctionID, teamID uuid.UUID, points int) (*models.Team, error) {
	unlock := a.engine.LockRoom(auctionID)
	defer unlock()

	t, err := a.Get(ctx, auctionID, teamID)
	if err != nil {
		return nil, err
	}
	t.Points = points
	if err := a.repo.SaveTeam(ctx, t); err != nil {
		return nil, fmt.Errorf("save team: %w", err)
	}
	if err := a.repo.AppendBidLog(ctx, auctionID, fmt.Sprintf("POINT UPDATE: %s -> %d", t.Name, t.Points)); err != nil {
		log.Error().Err(err).Str("team_id", teamID.String()).Msg("failed to log point update")
	}
	a.pub.Broadcast(auctionID, events.Event{Type: events.TypePointChange, Payload: events.PointChange{
		AuctionID: auctionID,
		TeamID:    t.ID,
		NewPoints: t.Points,
	}})
	a.engine.PublishLobby(ctx, auctionID)
	return t, nil
}

// Delete removes a team.
func (a *App) Delete(ctx context.Context, auctionID, teamID uuid.UUID) error {
	if _, err := a.Get(ctx, auctionID, teamID); err != nil {
		return err
	}
	if err := a.repo.DeleteTeam(ctx, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	a.engine.PublishLobby(ctx, auctionID)
	return nil
}

// Payload builds the wire representation of a team including its roster.
func (a *App) Payload(ctx context.Context, t models.Team) (events.TeamPayload, error) {
	roster, err := a.repo.RosterPlayers(ctx, t.ID)
	if err != nil {
		return events.TeamPayload{}, fmt.Errorf("list roster: %w", err)
	}
	return events.FromTeam(t, roster), nil
}
