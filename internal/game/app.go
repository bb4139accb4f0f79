// Package game owns the per-room auction state machine and the shared
// countdown ticker. All GameState mutations go through a per-room mutex so
// concurrent bids, admin decisions and timer ticks serialize on the same
// critical section.
package game

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// App is the auction engine.
type App struct {
	store  Store
	pub    Publisher
	clock  clockwork.Clock
	ticker *Ticker

	rngMu sync.Mutex
	rng   *rand.Rand

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

// NewApp creates the engine with a real clock.
func NewApp(store Store, pub Publisher) *App {
	return NewAppWithClock(store, pub, clockwork.NewRealClock())
}

// NewAppWithClock creates the engine with the given clock. Tests pass a
// clockwork fake clock to drive the ticker deterministically.
func NewAppWithClock(store Store, pub Publisher, clock clockwork.Clock) *App {
	a := &App{
		store: store,
		pub:   pub,
		clock: clock,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
	a.ticker = newTicker(a, clock, tickInterval)
	return a
}

// Ticker exposes the shared countdown ticker.
func (a *App) Ticker() *Ticker {
	return a.ticker
}

// lockRoom acquires the mutex for one auction room.
func (a *App) lockRoom(auctionID uuid.UUID) func() {
	a.locksMu.Lock()
	mu, ok := a.locks[auctionID]
	if !ok {
		mu = &sync.Mutex{}
		a.locks[auctionID] = mu
	}
	a.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// StartRound wipes the previous draft of the auction, inserts the given
// player list, assigns draft order and puts the first player on the block.
// The timer starts paused; the admin opens bidding explicitly.
func (a *App) StartRound(ctx context.Context, auctionID uuid.UUID, req StartRoundRequest) (*events.StateSync, error) {
	if len(req.Players) == 0 {
		return nil, fmt.Errorf("%w: player list is empty", apperrors.ErrInvalidInput)
	}

	unlock := a.lockRoom(auctionID)
	defer unlock()

	auction, err := a.store.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get auction: %w", err)
	}

	if err := a.store.DeletePlayersByAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("clear players: %w", err)
	}
	if err := a.store.DeleteBidLogsByAuction(ctx, auctionID); err != nil {
		return nil, fmt.Errorf("clear bid log: %w", err)
	}

	players := make([]models.Player, len(req.Players))
	for i, entry := range req.Players {
		id := uuid.New()
		if entry.ID != nil {
			id = *entry.ID
		}
		players[i] = models.Player{
			ID:        id,
			AuctionID: auctionID,
			Name:      entry.Name,
			Tiers:     entry.Tiers,
			Status:    models.PlayerStatusWaiting,
		}
	}
	if req.OrderType == OrderRand {
		a.rngMu.Lock()
		a.rng.Shuffle(len(players), func(i, j int) {
			players[i], players[j] = players[j], players[i]
		})
		a.rngMu.Unlock()
	}
	for i := range players {
		idx := i
		players[i].OrderIndex = &idx
	}
	players[0].Status = models.PlayerStatusBidding

	if err := a.store.CreatePlayers(ctx, players); err != nil {
		return nil, fmt.Errorf("insert players: %w", err)
	}

	st, err := a.store.GetGameState(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	st.Phase = models.GamePhaseAuction
	st.CurrentBid = 0
	st.HighBidderID = nil
	st.LastBidTeamID = nil
	st.TimerValue = DefaultTimer
	st.IsTimerRunning = false
	st.CurrentPlayerID = &players[0].ID
	if err := a.store.SaveGameState(ctx, st); err != nil {
		return nil, fmt.Errorf("save game state: %w", err)
	}

	if err := a.store.UpdateAuctionStatus(ctx, auctionID, models.AuctionStatusLive); err != nil {
		return nil, fmt.Errorf("update auction status: %w", err)
	}
	a.appendLog(ctx, auctionID, "GAME STARTED")

	log.Info().
		Str("auction_id", auctionID.String()).
		Str("title", auction.Title).
		Int("players", len(players)).
		Str("order", string(req.OrderType)).
		Msg("draft started")

	a.pub.Broadcast(auctionID, events.Event{Type: events.TypeGameStarted, Payload: events.GameStarted{AuctionID: auctionID}})
	a.pub.Broadcast(auctionID, events.Event{Type: events.TypeNewRound, Payload: events.NewRound{
		AuctionID: auctionID,
		Player:    events.FromPlayer(players[0]),
		EndTime:   a.endTime(st.TimerValue),
	}})
	a.broadcastLobby(ctx, auctionID)

	return a.statePayload(ctx, auctionID)
}

// PlaceBid validates and applies a team's raise on the standing bid.
// Precondition order matters: closed bidding, self-raise, roster, amount,
// then the points ceiling.
func (a *App) PlaceBid(ctx context.Context, teamID uuid.UUID, amount int) (*events.StateSync, error) {
	// Resolve the room first; the row is re-read under the lock below.
	team, err := a.store.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}

	unlock := a.lockRoom(team.AuctionID)
	defer unlock()

	// Fresh read inside the critical section: a sale committed between the
	// lookup above and the lock may have spent this team's points, and the
	// ceiling check is the only thing keeping balances non-negative.
	team, err = a.store.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}

	st, err := a.store.GetGameState(ctx, team.AuctionID)
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}

	if st.TimerValue <= 0 || !st.IsTimerRunning {
		return nil, fmt.Errorf("%w: bidding is closed", apperrors.ErrInvalidState)
	}
	if st.LastBidTeamID != nil && *st.LastBidTeamID == teamID {
		return nil, fmt.Errorf("%w: consecutive bid not allowed", apperrors.ErrInvalidState)
	}
	count, err := a.store.RosterCount(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("count roster: %w", err)
	}
	if count >= MaxRosterSize {
		return nil, fmt.Errorf("%w: roster is full", apperrors.ErrInvalidState)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: invalid bid amount", apperrors.ErrInvalidInput)
	}
	newBid := st.CurrentBid + amount
	if newBid > team.Points {
		return nil, fmt.Errorf("%w: not enough points", apperrors.ErrInvalidState)
	}

	st.CurrentBid = newBid
	st.HighBidderID = &team.ID
	st.LastBidTeamID = &team.ID
	st.TimerValue = math.Min(MaxTimer, st.TimerValue+BonusTimeOnBid)
	if err := a.store.SaveGameState(ctx, st); err != nil {
		return nil, fmt.Errorf("save game state: %w", err)
	}

	logMsg := fmt.Sprintf("%s bid %d", team.Name, newBid)
	a.appendLog(ctx, team.AuctionID, logMsg)

	a.pub.Broadcast(team.AuctionID, events.Event{Type: events.TypeBidUpdate, Payload: events.BidUpdate{
		AuctionID:      team.AuctionID,
		CurrentBid:     newBid,
		HighBidder:     team.ID,
		HighBidderName: team.Name,
		Log:            logMsg,
	}})
	a.pub.Broadcast(team.AuctionID, events.Event{Type: events.TypeTimerSync, Payload: events.TimerSync{
		AuctionID: team.AuctionID,
		TimeLeft:  st.TimerValue,
		IsRunning: st.IsTimerRunning,
	}})

	return a.statePayload(ctx, team.AuctionID)
}

// AdminDecision resolves the player on the block as sold or passed, then
// advances the round: next waiting player first, requeued unsold players
// second, end of auction last. Decision and advancement are one critical
// section so readers never observe a sold player still marked current.
func (a *App) AdminDecision(ctx context.Context, auctionID uuid.UUID, action DecisionAction) (*events.StateSync, error) {
	if action != DecisionSold && action != DecisionPass {
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrInvalidInput, action)
	}

	unlock := a.lockRoom(auctionID)
	defer unlock()

	st, err := a.store.GetGameState(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}
	if st.CurrentPlayerID == nil {
		return nil, fmt.Errorf("%w: no active player", apperrors.ErrInvalidState)
	}
	player, err := a.store.GetPlayer(ctx, *st.CurrentPlayerID)
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	if action == DecisionSold {
		if st.HighBidderID == nil {
			return nil, fmt.Errorf("%w: no high bidder", apperrors.ErrInvalidState)
		}
		team, err := a.store.GetTeam(ctx, *st.HighBidderID)
		if err != nil {
			return nil, fmt.Errorf("get team: %w", err)
		}
		count, err := a.store.RosterCount(ctx, team.ID)
		if err != nil {
			return nil, fmt.Errorf("count roster: %w", err)
		}
		if count >= MaxRosterSize {
			return nil, fmt.Errorf("%w: roster is full", apperrors.ErrInvalidState)
		}

		price := st.CurrentBid
		player.Status = models.PlayerStatusSold
		player.SoldToTeamID = &team.ID
		player.SoldPrice = &price
		if err := a.store.SavePlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("save player: %w", err)
		}
		// The only place points are spent. No negative check needed: every
		// bid was validated against this team's ceiling at bid time.
		if err := a.store.UpdateTeamPoints(ctx, team.ID, team.Points-price); err != nil {
			return nil, fmt.Errorf("deduct points: %w", err)
		}
		a.appendLog(ctx, auctionID, fmt.Sprintf("SOLD %s to %s for %d", player.Name, team.Name, price))
	} else {
		player.Status = models.PlayerStatusUnsold
		if err := a.store.SavePlayer(ctx, player); err != nil {
			return nil, fmt.Errorf("save player: %w", err)
		}
		a.appendLog(ctx, auctionID, fmt.Sprintf("PASS %s", player.Name))
	}

	st.CurrentBid = 0
	st.HighBidderID = nil
	st.LastBidTeamID = nil
	st.TimerValue = DefaultTimer
	st.IsTimerRunning = true

	if err := a.advance(ctx, st); err != nil {
		return nil, err
	}
	if err := a.store.SaveGameState(ctx, st); err != nil {
		return nil, fmt.Errorf("save game state: %w", err)
	}
	if st.IsTimerRunning {
		a.ticker.Start()
	}

	a.pub.Broadcast(auctionID, events.Event{Type: events.TypeRoundEnd, Payload: events.RoundEnd{
		AuctionID: auctionID,
		Result:    string(action),
		Player:    events.FromPlayer(*player),
		Price:     player.SoldPrice,
		TeamID:    player.SoldToTeamID,
	}})
	if st.CurrentPlayerID != nil {
		if next, err := a.store.GetPlayer(ctx, *st.CurrentPlayerID); err == nil {
			a.pub.Broadcast(auctionID, events.Event{Type: events.TypeNewRound, Payload: events.NewRound{
				AuctionID: auctionID,
				Player:    events.FromPlayer(*next),
				EndTime:   a.endTime(st.TimerValue),
			}})
		}
	}
	a.broadcastLobby(ctx, auctionID)

	return a.statePayload(ctx, auctionID)
}

// advance picks the next player on the block or ends the auction.
func (a *App) advance(ctx context.Context, st *models.GameState) error {
	waiting, err := a.store.ListPlayersByStatus(ctx, st.AuctionID, models.PlayerStatusWaiting)
	if err != nil {
		return fmt.Errorf("list waiting players: %w", err)
	}
	if len(waiting) > 0 {
		next := waiting[0]
		next.Status = models.PlayerStatusBidding
		if err := a.store.SavePlayer(ctx, &next); err != nil {
			return fmt.Errorf("promote player: %w", err)
		}
		st.CurrentPlayerID = &next.ID
		return nil
	}

	unsold, err := a.store.ListPlayersByStatus(ctx, st.AuctionID, models.PlayerStatusUnsold)
	if err != nil {
		return fmt.Errorf("list unsold players: %w", err)
	}
	if len(unsold) > 0 {
		// Requeue: every unsold player gets another pass per full cycle.
		for i := range unsold {
			p := unsold[i]
			if i == 0 {
				p.Status = models.PlayerStatusBidding
			} else {
				p.Status = models.PlayerStatusWaiting
			}
			if err := a.store.SavePlayer(ctx, &p); err != nil {
				return fmt.Errorf("requeue player: %w", err)
			}
		}
		st.CurrentPlayerID = &unsold[0].ID
		st.Phase = models.GamePhaseAuction
		a.appendLog(ctx, st.AuctionID, "UNSOLD REQUEUE")
		return nil
	}

	st.CurrentPlayerID = nil
	st.Phase = models.GamePhaseEnded
	st.IsTimerRunning = false
	if err := a.store.UpdateAuctionStatus(ctx, st.AuctionID, models.AuctionStatusEnded); err != nil {
		return fmt.Errorf("end auction: %w", err)
	}
	log.Info().Str("auction_id", st.AuctionID.String()).Msg("auction ended")
	return nil
}

// TimerControl applies an admin start/pause/reset on the room timer.
func (a *App) TimerControl(ctx context.Context, auctionID uuid.UUID, action TimerAction, value *float64) (*events.StateSync, error) {
	unlock := a.lockRoom(auctionID)
	defer unlock()

	st, err := a.store.GetGameState(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}

	switch action {
	case TimerStart:
		if st.Phase != models.GamePhaseAuction || st.CurrentPlayerID == nil {
			return nil, fmt.Errorf("%w: no active player", apperrors.ErrInvalidState)
		}
		st.IsTimerRunning = true
	case TimerPause:
		st.IsTimerRunning = false
	case TimerReset:
		if value != nil && *value < 0 {
			return nil, fmt.Errorf("%w: negative timer value", apperrors.ErrInvalidInput)
		}
		st.IsTimerRunning = false
		st.TimerValue = DefaultTimer
		if value != nil {
			// The timer lives in [0, MaxTimer] everywhere else.
			st.TimerValue = math.Min(MaxTimer, *value)
		}
	default:
		return nil, fmt.Errorf("%w: unknown timer action %q", apperrors.ErrInvalidInput, action)
	}

	if err := a.store.SaveGameState(ctx, st); err != nil {
		return nil, fmt.Errorf("save game state: %w", err)
	}
	if action == TimerStart {
		a.ticker.Start()
	}
	a.appendLog(ctx, auctionID, fmt.Sprintf("TIMER %s", strings.ToUpper(string(action))))

	a.pub.Broadcast(auctionID, events.Event{Type: events.TypeTimerSync, Payload: events.TimerSync{
		AuctionID: auctionID,
		TimeLeft:  st.TimerValue,
		IsRunning: st.IsTimerRunning,
	}})
	if state, err := a.statePayload(ctx, auctionID); err == nil {
		a.pub.Broadcast(auctionID, events.Event{Type: events.TypeStateSync, Payload: state})
	}

	return a.statePayload(ctx, auctionID)
}

// Logs returns the newest bid-log entries of a room.
func (a *App) Logs(ctx context.Context, auctionID uuid.UUID, limit int) ([]models.BidLog, error) {
	logs, err := a.store.ListBidLogs(ctx, auctionID, limit)
	if err != nil {
		return nil, fmt.Errorf("list bid logs: %w", err)
	}
	return logs, nil
}

// State returns the state_sync snapshot of a room.
func (a *App) State(ctx context.Context, auctionID uuid.UUID) (*events.StateSync, error) {
	unlock := a.lockRoom(auctionID)
	defer unlock()
	return a.statePayload(ctx, auctionID)
}

// PublishLobby rebuilds and broadcasts the lobby snapshot of a room. Other
// services call this after mutating teams or players outside an auction turn.
func (a *App) PublishLobby(ctx context.Context, auctionID uuid.UUID) {
	a.broadcastLobby(ctx, auctionID)
}

// LockRoom hands out the room's critical section so external writers, like
// admin point overrides, serialize with bids and decisions instead of racing
// a sale's deduction.
func (a *App) LockRoom(auctionID uuid.UUID) func() {
	return a.lockRoom(auctionID)
}

// Lobby returns the lobby_update snapshot of a room.
func (a *App) Lobby(ctx context.Context, auctionID uuid.UUID) (*events.LobbyUpdate, error) {
	return a.lobbyPayload(ctx, auctionID)
}

func (a *App) statePayload(ctx context.Context, auctionID uuid.UUID) (*events.StateSync, error) {
	st, err := a.store.GetGameState(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("get game state: %w", err)
	}

	out := &events.StateSync{
		Phase:          string(st.Phase),
		CurrentBid:     st.CurrentBid,
		TimerValue:     st.TimerValue,
		IsTimerRunning: st.IsTimerRunning,
		BidHistory:     []string{},
	}
	if st.CurrentPlayerID != nil {
		if p, err := a.store.GetPlayer(ctx, *st.CurrentPlayerID); err == nil {
			payload := events.FromPlayer(*p)
			out.CurrentPlayer = &payload
		}
	}
	if st.HighBidderID != nil {
		if t, err := a.store.GetTeam(ctx, *st.HighBidderID); err == nil {
			slim := events.SlimTeam(*t)
			out.HighBidder = &slim
		}
	}
	logs, err := a.store.ListBidLogs(ctx, auctionID, BidHistoryWindow)
	if err != nil {
		return nil, fmt.Errorf("list bid logs: %w", err)
	}
	for _, entry := range logs {
		out.BidHistory = append(out.BidHistory, entry.Message)
	}
	return out, nil
}

func (a *App) lobbyPayload(ctx context.Context, auctionID uuid.UUID) (*events.LobbyUpdate, error) {
	teams, err := a.store.ListTeamsByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	players, err := a.store.ListPlayersByAuction(ctx, auctionID)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := &events.LobbyUpdate{
		AuctionID: auctionID,
		Teams:     []events.TeamPayload{},
		Players:   events.FromPlayers(players),
	}
	for _, t := range teams {
		roster, err := a.store.RosterPlayers(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("list roster: %w", err)
		}
		out.Teams = append(out.Teams, events.FromTeam(t, roster))
	}
	return out, nil
}

// broadcastLobby re-broadcasts the lobby snapshot after a mutation so every
// observer converges even if it missed an intermediate event.
func (a *App) broadcastLobby(ctx context.Context, auctionID uuid.UUID) {
	lobby, err := a.lobbyPayload(ctx, auctionID)
	if err != nil {
		log.Error().Err(err).Str("auction_id", auctionID.String()).Msg("failed to build lobby payload")
		return
	}
	a.pub.Broadcast(auctionID, events.Event{Type: events.TypeLobbyUpdate, Payload: lobby})
}

func (a *App) appendLog(ctx context.Context, auctionID uuid.UUID, message string) {
	if err := a.store.AppendBidLog(ctx, auctionID, message); err != nil {
		log.Error().Err(err).Str("auction_id", auctionID.String()).Msg("failed to append bid log")
	}
}

func (a *App) endTime(timerValue float64) float64 {
	return float64(a.clock.Now().UnixNano())/float64(time.Second) + timerValue
}
