package models

import "github.com/google/uuid"

// GamePhase defines the phase of a room's state machine.
type GamePhase string

const (
	GamePhaseSetup   GamePhase = "SETUP"
	GamePhaseAuction GamePhase = "AUCTION"
	GamePhaseEnded   GamePhase = "ENDED"
)

// GameState is the authoritative per-room bidding state, keyed by auction id.
// Invariant: IsTimerRunning implies Phase == AUCTION and CurrentPlayerID != nil.
type GameState struct {
	AuctionID       uuid.UUID  `json:"auction_id"`
	Phase           GamePhase  `json:"phase"`
	CurrentPlayerID *uuid.UUID `json:"current_player_id,omitempty"`
	CurrentBid      int        `json:"current_bid"`
	HighBidderID    *uuid.UUID `json:"high_bidder_id,omitempty"`
	LastBidTeamID   *uuid.UUID `json:"last_bid_team_id,omitempty"`
	TimerValue      float64    `json:"timer_value"`
	IsTimerRunning  bool       `json:"is_timer_running"`
}
