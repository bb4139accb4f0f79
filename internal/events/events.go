// Package events defines the typed room events pushed to subscribers and
// the camelCase wire payloads they carry.
package events

import "github.com/google/uuid"

// Type identifies a room event.
type Type string

const (
	TypeLobbyUpdate Type = "lobby_update"
	TypeStateSync   Type = "state_sync"
	TypeGameStarted Type = "game_started"
	TypeNewRound    Type = "new_round"
	TypeBidUpdate   Type = "bid_update"
	TypeTimerSync   Type = "timer_sync"
	TypeRoundEnd    Type = "round_end"
	TypePointChange Type = "point_change"
)

// Event is the delivery envelope: {"event": ..., "payload": ...}.
type Event struct {
	Type    Type `json:"event"`
	Payload any  `json:"payload"`
}

// PlayerPayload mirrors a player on the wire.
type PlayerPayload struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Tiers        TierTriple `json:"tiers"`
	Status       string     `json:"status"`
	SoldToTeamID *uuid.UUID `json:"soldToTeamId"`
	SoldPrice    *int       `json:"soldPrice"`
	OrderIndex   *int       `json:"orderIndex"`
}

// TierTriple is the tank/dps/supp rating triple.
type TierTriple struct {
	Tank string `json:"tank"`
	DPS  string `json:"dps"`
	Supp string `json:"supp"`
}

// TeamPayload mirrors a team, roster included, on the wire.
type TeamPayload struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	CaptainName  string          `json:"captainName"`
	Points       int             `json:"points"`
	CaptainStats TierTriple      `json:"captainStats"`
	Roster       []PlayerPayload `json:"roster"`
}

// TeamSlim is the id+name projection used for the high bidder.
type TeamSlim struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// LobbyUpdate carries the full team and player lists of a room.
type LobbyUpdate struct {
	AuctionID uuid.UUID       `json:"auctionId"`
	Teams     []TeamPayload   `json:"teams"`
	Players   []PlayerPayload `json:"players"`
}

// StateSync carries a full game-state snapshot with the recent bid history.
type StateSync struct {
	Phase          string         `json:"phase"`
	CurrentPlayer  *PlayerPayload `json:"currentPlayer"`
	CurrentBid     int            `json:"currentBid"`
	HighBidder     *TeamSlim      `json:"highBidder"`
	TimerValue     float64        `json:"timerValue"`
	IsTimerRunning bool           `json:"isTimerRunning"`
	BidHistory     []string       `json:"bidHistory"`
}

// GameStarted announces a fresh draft in a room.
type GameStarted struct {
	AuctionID uuid.UUID `json:"auctionId"`
}

// NewRound announces the next player up for bidding. EndTime is the
// projected expiry as unix seconds; clients count down locally and the
// server timer stays authoritative.
type NewRound struct {
	AuctionID uuid.UUID     `json:"auctionId"`
	Player    PlayerPayload `json:"player"`
	EndTime   float64       `json:"endTime"`
}

// BidUpdate announces a new standing bid.
type BidUpdate struct {
	AuctionID      uuid.UUID `json:"auctionId"`
	CurrentBid     int       `json:"currentBid"`
	HighBidder     uuid.UUID `json:"highBidder"`
	HighBidderName string    `json:"highBidderName"`
	Log            string    `json:"log"`
}

// TimerSync carries the authoritative countdown value of a room.
type TimerSync struct {
	AuctionID uuid.UUID `json:"auctionId"`
	TimeLeft  float64   `json:"timeLeft"`
	IsRunning bool      `json:"isRunning"`
}

// RoundEnd announces the admin's sold/pass resolution for a player.
type RoundEnd struct {
	AuctionID uuid.UUID     `json:"auctionId"`
	Result    string        `json:"result"`
	Player    PlayerPayload `json:"player"`
	Price     *int          `json:"price"`
	TeamID    *uuid.UUID    `json:"teamId"`
}

// PointChange announces an admin override of a team's points.
type PointChange struct {
	AuctionID uuid.UUID `json:"auctionId"`
	TeamID    uuid.UUID `json:"teamId"`
	NewPoints int       `json:"newPoints"`
}
