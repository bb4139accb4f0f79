package game

import (
	"context"

	"github.com/google/uuid"

	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// Draft-round constants. The default equals the cap, so the bid bonus only
// keeps the timer from running out immediately rather than extending it
// past the opening value.
const (
	DefaultTimer   = 20.0
	MaxTimer       = 20.0
	BonusTimeOnBid = 2.0
	MaxRosterSize  = 4

	BidHistoryWindow = 50
)

// OrderType selects how draft order is assigned at round start.
type OrderType string

const (
	OrderSeq  OrderType = "seq"
	OrderRand OrderType = "rand"
)

// DecisionAction is the admin's resolution for the player on the block.
type DecisionAction string

const (
	DecisionSold DecisionAction = "sold"
	DecisionPass DecisionAction = "pass"
)

// TimerAction is an admin timer control.
type TimerAction string

const (
	TimerStart TimerAction = "start"
	TimerPause TimerAction = "pause"
	TimerReset TimerAction = "reset"
)

// PlayerEntry is one player of a fresh draft list.
type PlayerEntry struct {
	ID    *uuid.UUID     `json:"id"`
	Name  string         `json:"name"`
	Tiers models.TierSet `json:"tiers"`
}

// StartRoundRequest starts a fresh draft for an auction.
type StartRoundRequest struct {
	Players   []PlayerEntry `json:"playerList"`
	OrderType OrderType     `json:"orderType"`
}

// Store defines what the engine needs from the repository layer.
type Store interface {
	GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	UpdateAuctionStatus(ctx context.Context, id uuid.UUID, status models.AuctionStatus) error

	GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error)
	UpdateTeamPoints(ctx context.Context, id uuid.UUID, points int) error
	ListTeamsByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error)

	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
	SavePlayer(ctx context.Context, player *models.Player) error
	CreatePlayers(ctx context.Context, players []models.Player) error
	DeletePlayersByAuction(ctx context.Context, auctionID uuid.UUID) error
	// ListPlayersByAuction returns players ordered by order index, players
	// without one last.
	ListPlayersByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Player, error)
	// ListPlayersByStatus returns matching players ordered by order index.
	ListPlayersByStatus(ctx context.Context, auctionID uuid.UUID, status models.PlayerStatus) ([]models.Player, error)
	RosterCount(ctx context.Context, teamID uuid.UUID) (int, error)
	RosterPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error)

	// GetGameState creates the state row on first access.
	GetGameState(ctx context.Context, auctionID uuid.UUID) (*models.GameState, error)
	SaveGameState(ctx context.Context, state *models.GameState) error
	ListRunningStates(ctx context.Context) ([]models.GameState, error)

	AppendBidLog(ctx context.Context, auctionID uuid.UUID, message string) error
	// ListBidLogs returns the newest entries first.
	ListBidLogs(ctx context.Context, auctionID uuid.UUID, limit int) ([]models.BidLog, error)
	DeleteBidLogsByAuction(ctx context.Context, auctionID uuid.UUID) error
}

// Publisher defines what the engine needs from the broadcaster.
type Publisher interface {
	Broadcast(room uuid.UUID, e events.Event)
}
