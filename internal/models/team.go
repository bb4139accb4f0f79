package models

import "github.com/google/uuid"

// TierSet holds the three role ratings attached to a player or captain.
type TierSet struct {
	Tank string `json:"tank"`
	DPS  string `json:"dps"`
	Supp string `json:"supp"`
}

// Team represents a drafting team inside an auction room. Points are
// mutated only by the game engine (sale deduction) and the admin point
// override; they never go negative because every bid is validated against
// the team's ceiling before it can become the standing bid.
type Team struct {
	ID           uuid.UUID `json:"id"`
	AuctionID    uuid.UUID `json:"auction_id"`
	Name         string    `json:"name"`
	CaptainName  string    `json:"captain_name"`
	Points       int       `json:"points"`
	CaptainStats TierSet   `json:"captain_stats"`
}
