package models

import (
	"time"

	"github.com/google/uuid"
)

// AuctionStatus defines the lifecycle status of an auction room.
type AuctionStatus string

const (
	AuctionStatusDraft AuctionStatus = "DRAFT"
	AuctionStatusLive  AuctionStatus = "LIVE"
	AuctionStatusEnded AuctionStatus = "ENDED"
)

// Auction represents a single auction room.
type Auction struct {
	ID         uuid.UUID     `json:"id"`
	Title      string        `json:"title"`
	Status     AuctionStatus `json:"status"`
	InviteCode string        `json:"invite_code"`
	CreatedAt  time.Time     `json:"created_at"`
}
