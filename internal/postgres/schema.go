package postgres

import "context"

// schema is applied on startup. Statements are idempotent so a restart
// against an existing database is a no-op.
const schema = `
CREATE TABLE IF NOT EXISTS auctions (
    id          UUID PRIMARY KEY,
    title       TEXT NOT NULL,
    status      TEXT NOT NULL,
    invite_code TEXT NOT NULL UNIQUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS teams (
    id           UUID PRIMARY KEY,
    auction_id   UUID NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
    name         TEXT NOT NULL,
    captain_name TEXT NOT NULL,
    points       INTEGER NOT NULL,
    captain_tank TEXT NOT NULL DEFAULT 'N/A',
    captain_dps  TEXT NOT NULL DEFAULT 'N/A',
    captain_supp TEXT NOT NULL DEFAULT 'N/A'
);
CREATE INDEX IF NOT EXISTS idx_teams_auction ON teams(auction_id);

CREATE TABLE IF NOT EXISTS players (
    id              UUID PRIMARY KEY,
    auction_id      UUID NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
    name            TEXT NOT NULL,
    tier_tank       TEXT NOT NULL DEFAULT 'N/A',
    tier_dps        TEXT NOT NULL DEFAULT 'N/A',
    tier_supp       TEXT NOT NULL DEFAULT 'N/A',
    status          TEXT NOT NULL,
    sold_to_team_id UUID,
    sold_price      INTEGER,
    order_index     INTEGER,
    seq             BIGSERIAL
);
CREATE INDEX IF NOT EXISTS idx_players_auction ON players(auction_id);
CREATE INDEX IF NOT EXISTS idx_players_sold_to ON players(sold_to_team_id);

CREATE TABLE IF NOT EXISTS game_states (
    auction_id       UUID PRIMARY KEY REFERENCES auctions(id) ON DELETE CASCADE,
    phase            TEXT NOT NULL,
    current_player_id UUID,
    current_bid      INTEGER NOT NULL DEFAULT 0,
    high_bidder_id   UUID,
    last_bid_team_id UUID,
    timer_value      DOUBLE PRECISION NOT NULL,
    is_timer_running BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS bid_logs (
    id         BIGSERIAL PRIMARY KEY,
    auction_id UUID NOT NULL REFERENCES auctions(id) ON DELETE CASCADE,
    message    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_bid_logs_auction ON bid_logs(auction_id, id DESC);

CREATE TABLE IF NOT EXISTS admin_sessions (
    token      UUID PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates all tables and indexes if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}
