package models

import (
	"time"

	"github.com/google/uuid"
)

// BidLog is one append-only room log entry. Retention is unbounded; reads
// window the newest entries.
type BidLog struct {
	ID        int64     `json:"id"`
	AuctionID uuid.UUID `json:"auction_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// AdminSession is an issued admin bearer token.
type AdminSession struct {
	Token     uuid.UUID `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}
