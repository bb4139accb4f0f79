package models

import "github.com/google/uuid"

// PlayerStatus defines where a player currently sits in the draft.
type PlayerStatus string

const (
	PlayerStatusWaiting PlayerStatus = "waiting"
	PlayerStatusBidding PlayerStatus = "bidding"
	PlayerStatusSold    PlayerStatus = "sold"
	PlayerStatusUnsold  PlayerStatus = "unsold"
)

// Player represents a draftable participant. At most one player per auction
// is in status "bidding" at any time. SoldToTeamID is a back-reference used
// for roster lookups, never an ownership edge.
type Player struct {
	ID           uuid.UUID    `json:"id"`
	AuctionID    uuid.UUID    `json:"auction_id"`
	Name         string       `json:"name"`
	Tiers        TierSet      `json:"tiers"`
	Status       PlayerStatus `json:"status"`
	SoldToTeamID *uuid.UUID   `json:"sold_to_team_id,omitempty"`
	SoldPrice    *int         `json:"sold_price,omitempty"`
	OrderIndex   *int         `json:"order_index,omitempty"`
}
