// Package memstore is an in-memory implementation of the repository
// interfaces. It backs the unit tests and the `storage: memory` deployment
// mode for casual single-night events where nothing needs to survive a
// restart.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/game"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// Store holds everything behind one RWMutex. Values are copied in and out
// so callers never alias internal state.
type Store struct {
	mu sync.RWMutex

	auctions map[uuid.UUID]models.Auction
	teams    map[uuid.UUID]models.Team
	players  map[uuid.UUID]models.Player
	states   map[uuid.UUID]models.GameState
	sessions map[uuid.UUID]models.AdminSession

	logs      map[uuid.UUID][]models.BidLog
	logSeq    int64
	playerSeq map[uuid.UUID]int
	seq       int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		auctions:  make(map[uuid.UUID]models.Auction),
		teams:     make(map[uuid.UUID]models.Team),
		players:   make(map[uuid.UUID]models.Player),
		states:    make(map[uuid.UUID]models.GameState),
		sessions:  make(map[uuid.UUID]models.AdminSession),
		logs:      make(map[uuid.UUID][]models.BidLog),
		playerSeq: make(map[uuid.UUID]int),
	}
}

var _ game.Store = (*Store)(nil)

// --- auctions ---

func (s *Store) CreateAuction(ctx context.Context, a models.Auction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auctions[a.ID] = a
	return nil
}

func (s *Store) GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.auctions[id]
	if !ok {
		return nil, fmt.Errorf("%w: auction %s", apperrors.ErrNotFound, id)
	}
	return &a, nil
}

func (s *Store) GetAuctionByInviteCode(ctx context.Context, code string) (*models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.auctions {
		if a.InviteCode == code {
			out := a
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: invite code %s", apperrors.ErrNotFound, code)
}

func (s *Store) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Auction, 0, len(s.auctions))
	for _, a := range s.auctions {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateAuctionStatus(ctx context.Context, id uuid.UUID, status models.AuctionStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.auctions[id]
	if !ok {
		return fmt.Errorf("%w: auction %s", apperrors.ErrNotFound, id)
	}
	a.Status = status
	s.auctions[id] = a
	return nil
}

// --- teams ---

func (s *Store) CreateTeam(ctx context.Context, t models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = t
	return nil
}

func (s *Store) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return nil, fmt.Errorf("%w: team %s", apperrors.ErrNotFound, id)
	}
	return &t, nil
}

func (s *Store) ListTeamsByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Team, 0)
	for _, t := range s.teams {
		if t.AuctionID == auctionID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) SaveTeam(ctx context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[t.ID]; !ok {
		return fmt.Errorf("%w: team %s", apperrors.ErrNotFound, t.ID)
	}
	s.teams[t.ID] = *t
	return nil
}

func (s *Store) UpdateTeamPoints(ctx context.Context, id uuid.UUID, points int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[id]
	if !ok {
		return fmt.Errorf("%w: team %s", apperrors.ErrNotFound, id)
	}
	t.Points = points
	s.teams[id] = t
	return nil
}

func (s *Store) DeleteTeam(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return fmt.Errorf("%w: team %s", apperrors.ErrNotFound, id)
	}
	delete(s.teams, id)
	return nil
}

// --- players ---

func (s *Store) CreatePlayer(ctx context.Context, p models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertPlayer(p)
	return nil
}

func (s *Store) CreatePlayers(ctx context.Context, players []models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		s.insertPlayer(p)
	}
	return nil
}

func (s *Store) insertPlayer(p models.Player) {
	s.players[p.ID] = p
	s.seq++
	s.playerSeq[p.ID] = s.seq
}

func (s *Store) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return nil, fmt.Errorf("%w: player %s", apperrors.ErrNotFound, id)
	}
	return &p, nil
}

func (s *Store) SavePlayer(ctx context.Context, p *models.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[p.ID]; !ok {
		return fmt.Errorf("%w: player %s", apperrors.ErrNotFound, p.ID)
	}
	s.players[p.ID] = *p
	return nil
}

func (s *Store) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return fmt.Errorf("%w: player %s", apperrors.ErrNotFound, id)
	}
	delete(s.players, id)
	delete(s.playerSeq, id)
	return nil
}

func (s *Store) DeletePlayersByAuction(ctx context.Context, auctionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.players {
		if p.AuctionID == auctionID {
			delete(s.players, id)
			delete(s.playerSeq, id)
		}
	}
	return nil
}

func (s *Store) ListPlayersByAuction(ctx context.Context, auctionID uuid.UUID) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Player, 0)
	for _, p := range s.players {
		if p.AuctionID == auctionID {
			out = append(out, p)
		}
	}
	s.sortByOrder(out)
	return out, nil
}

func (s *Store) ListPlayersByStatus(ctx context.Context, auctionID uuid.UUID, status models.PlayerStatus) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Player, 0)
	for _, p := range s.players {
		if p.AuctionID == auctionID && p.Status == status {
			out = append(out, p)
		}
	}
	s.sortByOrder(out)
	return out, nil
}

// sortByOrder sorts by order index ascending with unassigned indexes last,
// insertion order as tiebreaker.
func (s *Store) sortByOrder(players []models.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i].OrderIndex, players[j].OrderIndex
		switch {
		case a == nil && b == nil:
			return s.playerSeq[players[i].ID] < s.playerSeq[players[j].ID]
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		default:
			return s.playerSeq[players[i].ID] < s.playerSeq[players[j].ID]
		}
	})
}

func (s *Store) RosterCount(ctx context.Context, teamID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, p := range s.players {
		if p.SoldToTeamID != nil && *p.SoldToTeamID == teamID {
			count++
		}
	}
	return count, nil
}

func (s *Store) RosterPlayers(ctx context.Context, teamID uuid.UUID) ([]models.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Player, 0)
	for _, p := range s.players {
		if p.SoldToTeamID != nil && *p.SoldToTeamID == teamID {
			out = append(out, p)
		}
	}
	s.sortByOrder(out)
	return out, nil
}

// --- game state ---

func (s *Store) GetGameState(ctx context.Context, auctionID uuid.UUID) (*models.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[auctionID]
	if !ok {
		st = models.GameState{
			AuctionID:  auctionID,
			Phase:      models.GamePhaseSetup,
			TimerValue: game.DefaultTimer,
		}
		s.states[auctionID] = st
	}
	return &st, nil
}

func (s *Store) SaveGameState(ctx context.Context, state *models.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.AuctionID] = *state
	return nil
}

func (s *Store) ListRunningStates(ctx context.Context) ([]models.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.GameState, 0)
	for _, st := range s.states {
		if st.IsTimerRunning {
			out = append(out, st)
		}
	}
	return out, nil
}

// --- bid log ---

func (s *Store) AppendBidLog(ctx context.Context, auctionID uuid.UUID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logSeq++
	s.logs[auctionID] = append(s.logs[auctionID], models.BidLog{
		ID:        s.logSeq,
		AuctionID: auctionID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	return nil
}

func (s *Store) ListBidLogs(ctx context.Context, auctionID uuid.UUID, limit int) ([]models.BidLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.logs[auctionID]
	out := make([]models.BidLog, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

func (s *Store) DeleteBidLogsByAuction(ctx context.Context, auctionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.logs, auctionID)
	return nil
}

// --- admin sessions ---

func (s *Store) CreateAdminSession(ctx context.Context, session models.AdminSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *Store) GetAdminSession(ctx context.Context, token uuid.UUID) (*models.AdminSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, fmt.Errorf("%w: unknown admin token", apperrors.ErrUnauthorized)
	}
	return &sess, nil
}
