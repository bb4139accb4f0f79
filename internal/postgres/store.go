// Package postgres is the durable implementation of the repository
// interfaces on top of pgx. Row ordering mirrors the in-memory store:
// players sort by order index with unassigned indexes last and insertion
// order as tiebreaker, bid logs read newest first.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/game"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

var _ game.Store = (*Store)(nil)

// --- auctions ---

func (s *Store) CreateAuction(ctx context.Context, a models.Auction) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO auctions (id, title, status, invite_code, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Title, a.Status, a.InviteCode, a.CreatedAt,
	)
	return err
}

func (s *Store) GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, status, invite_code, created_at
		FROM auctions WHERE id = $1`, id)
	a, err := scanAuction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: auction %s", apperrors.ErrNotFound, id)
	}
	return a, err
}

func (s *Store) GetAuctionByInviteCode(ctx context.Context, code string) (*models.Auction, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, status, invite_code, created_at
		FROM auctions WHERE invite_code = $1`, code)
	a, err := scanAuction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: invite code %s", apperrors.ErrNotFound, code)
	}
	return a, err
}

func (s *Store) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, status, invite_code, created_at
		FROM auctions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Auction, 0)
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (s *Store) UpdateAuctionStatus(ctx context.Context, id uuid.UUID, status models.AuctionStatus) error {
	tag, err := s.pool.Exec(ctx, `UPDATE auctions SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: auction %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func scanAuction(row pgx.Row) (*models.Auction, error) {
	var a models.Auction
	err := row.Scan(&a.ID, &a.Title, &a.Status, &a.InviteCode, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// --- teams ---

func (s *Store) CreateTeam(ctx context.Context, t models.Team) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO teams (id, auction_id, name, captain_name, points, captain_tank, captain_dps, captain_supp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.AuctionID, t.Name, t.CaptainName, t.Points,
		t.CaptainStats.Tank, t.CaptainStats.DPS, t.CaptainStats.Supp,
	)
	return err
}

func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, auction_id, name, captain_name, points, captain_tank, captain_dps, captain_supp
		FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: team %s", apperrors.ErrNotFound, id)
	}
	return t, err
}

func (s *Store) ListTeamsByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, auction_id, name, captain_name, points, captain_tank, captain_dps, captain_supp
		FROM teams WHERE auction_id = $1 ORDER BY name`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (s *Store) SaveTeam(ctx context.Context, t *models.Team) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE teams
		SET name = $2, captain_name = $3, points = $4,
		    captain_tank = $5, captain_dps = $6, captain_supp = $7
		WHERE id = $1`,
		t.ID, t.Name, t.CaptainName, t.Points,
		t.CaptainStats.Tank, t.CaptainStats.DPS, t.CaptainStats.Supp,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: team %s", apperrors.ErrNotFound, t.ID)
	}
	return nil
}

func (s *Store) UpdateTeamPoints(ctx context.Context, id uuid.UUID, points int) error {
	tag, err := s.pool.Exec(ctx, `UPDATE teams SET points = $2 WHERE id = $1`, id, points)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: team %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *Store) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: team %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.AuctionID, &t.Name, &t.CaptainName, &t.Points,
		&t.CaptainStats.Tank, &t.CaptainStats.DPS, &t.CaptainStats.Supp)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// --- players ---

const playerColumns = `id, auction_id, name, tier_tank, tier_dps, tier_supp,
	status, sold_to_team_id, sold_price, order_index`

const playerOrder = `ORDER BY order_index ASC NULLS LAST, seq ASC`

func (s *Store) CreatePlayer(ctx context.Context, p models.Player) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO players (id, auction_id, name, tier_tank, tier_dps, tier_supp,
			status, sold_to_team_id, sold_price, order_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.AuctionID, p.Name, p.Tiers.Tank, p.Tiers.DPS, p.Tiers.Supp,
		p.Status, p.SoldToTeamID, p.SoldPrice, p.OrderIndex,
	)
	return err
}

func (s *Store) CreatePlayers(ctx context.Context, players []models.Player) error {
	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(`
			INSERT INTO players (id, auction_id, name, tier_tank, tier_dps, tier_supp,
				status, sold_to_team_id, sold_price, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			p.ID, p.AuctionID, p.Name, p.Tiers.Tank, p.Tiers.DPS, p.Tiers.Supp,
			p.Status, p.SoldToTeamID, p.SoldPrice, p.OrderIndex,
		)
	}
	return s.pool.SendBatch(ctx, batch).Close()
}

func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: player %s", apperrors.ErrNotFound, id)
	}
	return p, err
}

func (s *Store) SavePlayer(ctx context.Context, p *models.Player) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE players
		SET name = $2, tier_tank = $3, tier_dps = $4, tier_supp = $5,
		    status = $6, sold_to_team_id = $7, sold_price = $8, order_index = $9
		WHERE id = $1`,
		p.ID, p.Name, p.Tiers.Tank, p.Tiers.DPS, p.Tiers.Supp,
		p.Status, p.SoldToTeamID, p.SoldPrice, p.OrderIndex,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: player %s", apperrors.ErrNotFound, p.ID)
	}
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: player %s", apperrors.ErrNotFound, id)
	}
	return nil
}

func (s *Store) DeletePlayersByAuction(ctx context.Context, auctionID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM players WHERE auction_id = $1`, auctionID)
	return err
}

func (s *Store) ListPlayersByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Player, error) {
	return s.queryPlayers(ctx,
		`SELECT `+playerColumns+` FROM players WHERE auction_id = $1 `+playerOrder,
		auctionID)
}

func (s *Store) ListPlayersByStatus(ctx context.Context, auctionID uuid.UUID, status models.PlayerStatus) ([]models.Player, error) {
	return s.queryPlayers(ctx,
		`SELECT `+playerColumns+` FROM players WHERE auction_id = $1 AND status = $2 `+playerOrder,
		auctionID, status)
}

func (s *Store) RosterCount(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT count(*) FROM players WHERE sold_to_team_id = $1`, teamID,
	).Scan(&count)
	return count, err
}

func (s *Store) RosterPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	return s.queryPlayers(ctx,
		`SELECT `+playerColumns+` FROM players WHERE sold_to_team_id = $1 `+playerOrder,
		teamID)
}

func (s *Store) queryPlayers(ctx context.Context, sql string, args ...any) ([]models.Player, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Player, 0)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPlayer(row pgx.Row) (*models.Player, error) {
	var p models.Player
	err := row.Scan(&p.ID, &p.AuctionID, &p.Name,
		&p.Tiers.Tank, &p.Tiers.DPS, &p.Tiers.Supp,
		&p.Status, &p.SoldToTeamID, &p.SoldPrice, &p.OrderIndex)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// --- game state ---

func (s *Store) GetGameState(ctx context.Context, auctionID uuid.UUID) (*models.GameState, error) {
	// Ensure-create keeps callers free of a separate provisioning step.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_states (auction_id, phase, timer_value)
		VALUES ($1, $2, $3)
		ON CONFLICT (auction_id) DO NOTHING`,
		auctionID, models.GamePhaseSetup, game.DefaultTimer,
	)
	if err != nil {
		return nil, err
	}

	var st models.GameState
	err = s.pool.QueryRow(ctx, `
		SELECT auction_id, phase, current_player_id, current_bid,
		       high_bidder_id, last_bid_team_id, timer_value, is_timer_running
		FROM game_states WHERE auction_id = $1`, auctionID,
	).Scan(&st.AuctionID, &st.Phase, &st.CurrentPlayerID, &st.CurrentBid,
		&st.HighBidderID, &st.LastBidTeamID, &st.TimerValue, &st.IsTimerRunning)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) SaveGameState(ctx context.Context, state *models.GameState) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO game_states (auction_id, phase, current_player_id, current_bid,
			high_bidder_id, last_bid_team_id, timer_value, is_timer_running)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (auction_id) DO UPDATE
		SET phase = EXCLUDED.phase,
		    current_player_id = EXCLUDED.current_player_id,
		    current_bid = EXCLUDED.current_bid,
		    high_bidder_id = EXCLUDED.high_bidder_id,
		    last_bid_team_id = EXCLUDED.last_bid_team_id,
		    timer_value = EXCLUDED.timer_value,
		    is_timer_running = EXCLUDED.is_timer_running`,
		state.AuctionID, state.Phase, state.CurrentPlayerID, state.CurrentBid,
		state.HighBidderID, state.LastBidTeamID, state.TimerValue, state.IsTimerRunning,
	)
	return err
}

func (s *Store) ListRunningStates(ctx context.Context) ([]models.GameState, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT auction_id, phase, current_player_id, current_bid,
		       high_bidder_id, last_bid_team_id, timer_value, is_timer_running
		FROM game_states WHERE is_timer_running`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.GameState, 0)
	for rows.Next() {
		var st models.GameState
		err := rows.Scan(&st.AuctionID, &st.Phase, &st.CurrentPlayerID, &st.CurrentBid,
			&st.HighBidderID, &st.LastBidTeamID, &st.TimerValue, &st.IsTimerRunning)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// --- bid log ---

func (s *Store) AppendBidLog(ctx context.Context, auctionID uuid.UUID, message string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bid_logs (auction_id, message) VALUES ($1, $2)`,
		auctionID, message,
	)
	return err
}

func (s *Store) ListBidLogs(ctx context.Context, auctionID uuid.UUID, limit int) ([]models.BidLog, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, auction_id, message, created_at
		FROM bid_logs WHERE auction_id = $1
		ORDER BY id DESC LIMIT $2`, auctionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.BidLog, 0, limit)
	for rows.Next() {
		var l models.BidLog
		if err := rows.Scan(&l.ID, &l.AuctionID, &l.Message, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *Store) DeleteBidLogsByAuction(ctx context.Context, auctionID uuid.UUID) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM bid_logs WHERE auction_id = $1`, auctionID)
	return err
}

// --- admin sessions ---

func (s *Store) CreateAdminSession(ctx context.Context, session models.AdminSession) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO admin_sessions (token, created_at) VALUES ($1, $2)`,
		session.Token, session.CreatedAt,
	)
	return err
}

func (s *Store) GetAdminSession(ctx context.Context, token uuid.UUID) (*models.AdminSession, error) {
	var sess models.AdminSession
	err := s.pool.QueryRow(ctx,
		`SELECT token, created_at FROM admin_sessions WHERE token = $1`, token,
	).Scan(&sess.Token, &sess.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: unknown admin token", apperrors.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}
