package game_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8954sood/overwatch-civilwar/internal/apperrors"
	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/game"
	"github.com/8954sood/overwatch-civilwar/internal/memstore"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

// recorder captures broadcast events for assertions.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Broadcast(room uuid.UUID, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) types() []events.Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Type, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

func (r *recorder) last(t events.Type) (events.Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Type == t {
			return r.events[i], true
		}
	}
	return events.Event{}, false
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

type fixture struct {
	app   *game.App
	store *memstore.Store
	rec   *recorder
	clock *clockwork.FakeClock

	auctionID uuid.UUID
}

// newFixture builds an engine over the in-memory store with a fake clock so
// the ticker never fires on its own.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	rec := &recorder{}
	clock := clockwork.NewFakeClock()
	app := game.NewAppWithClock(store, rec, clock)
	t.Cleanup(app.Ticker().Stop)

	auctionID := uuid.New()
	err := store.CreateAuction(context.Background(), models.Auction{
		ID:         auctionID,
		Title:      "scrim night",
		Status:     models.AuctionStatusDraft,
		InviteCode: "A1B2C3",
	})
	require.NoError(t, err)

	return &fixture{app: app, store: store, rec: rec, clock: clock, auctionID: auctionID}
}

func (f *fixture) addTeam(t *testing.T, name string, points int) models.Team {
	t.Helper()
	team := models.Team{
		ID:          uuid.New(),
		AuctionID:   f.auctionID,
		Name:        name,
		CaptainName: name + " captain",
		Points:      points,
	}
	require.NoError(t, f.store.CreateTeam(context.Background(), team))
	return team
}

func (f *fixture) startDraft(t *testing.T, names ...string) []models.Player {
	t.Helper()
	entries := make([]game.PlayerEntry, len(names))
	for i, n := range names {
		entries[i] = game.PlayerEntry{Name: n}
	}
	_, err := f.app.StartRound(context.Background(), f.auctionID, game.StartRoundRequest{
		Players:   entries,
		OrderType: game.OrderSeq,
	})
	require.NoError(t, err)
	players, err := f.store.ListPlayersByAuction(context.Background(), f.auctionID)
	require.NoError(t, err)
	return players
}

func (f *fixture) state(t *testing.T) *models.GameState {
	t.Helper()
	st, err := f.store.GetGameState(context.Background(), f.auctionID)
	require.NoError(t, err)
	return st
}

// openBidding flips the timer on the way an admin would.
func (f *fixture) openBidding(t *testing.T) {
	t.Helper()
	_, err := f.app.TimerControl(context.Background(), f.auctionID, game.TimerStart, nil)
	require.NoError(t, err)
}

func TestStartRoundEmptyListRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.app.StartRound(context.Background(), f.auctionID, game.StartRoundRequest{OrderType: game.OrderSeq})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestStartRoundSequentialOrder(t *testing.T) {
	f := newFixture(t)
	players := f.startDraft(t, "alpha", "bravo", "charlie")

	require.Len(t, players, 3)
	assert.Equal(t, "alpha", players[0].Name)
	assert.Equal(t, models.PlayerStatusBidding, players[0].Status)
	assert.Equal(t, models.PlayerStatusWaiting, players[1].Status)
	assert.Equal(t, models.PlayerStatusWaiting, players[2].Status)
	for i, p := range players {
		require.NotNil(t, p.OrderIndex)
		assert.Equal(t, i, *p.OrderIndex)
	}

	st := f.state(t)
	assert.Equal(t, models.GamePhaseAuction, st.Phase)
	require.NotNil(t, st.CurrentPlayerID)
	assert.Equal(t, players[0].ID, *st.CurrentPlayerID)
	assert.Equal(t, 0, st.CurrentBid)
	assert.Equal(t, game.DefaultTimer, st.TimerValue)
	assert.False(t, st.IsTimerRunning, "bidding opens only on an explicit timer start")

	auction, err := f.store.GetAuction(context.Background(), f.auctionID)
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusLive, auction.Status)

	types := f.rec.types()
	assert.Contains(t, types, events.TypeGameStarted)
	assert.Contains(t, types, events.TypeNewRound)
	assert.Contains(t, types, events.TypeLobbyUpdate)
}

func TestStartRoundRandomKeepsAllPlayers(t *testing.T) {
	f := newFixture(t)
	entries := []game.PlayerEntry{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}
	_, err := f.app.StartRound(context.Background(), f.auctionID, game.StartRoundRequest{
		Players:   entries,
		OrderType: game.OrderRand,
	})
	require.NoError(t, err)

	players, err := f.store.ListPlayersByAuction(context.Background(), f.auctionID)
	require.NoError(t, err)
	require.Len(t, players, 4)

	names := make(map[string]bool)
	bidding := 0
	for i, p := range players {
		names[p.Name] = true
		require.NotNil(t, p.OrderIndex)
		assert.Equal(t, i, *p.OrderIndex)
		if p.Status == models.PlayerStatusBidding {
			bidding++
		}
	}
	assert.Len(t, names, 4)
	assert.Equal(t, 1, bidding, "exactly one player on the block")
}

func TestStartRoundWipesPreviousDraft(t *testing.T) {
	f := newFixture(t)
	f.startDraft(t, "old1", "old2")
	f.startDraft(t, "new1")

	players, err := f.store.ListPlayersByAuction(context.Background(), f.auctionID)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "new1", players[0].Name)

	logs, err := f.app.Logs(context.Background(), f.auctionID, game.BidHistoryWindow)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "GAME STARTED", logs[0].Message)
}

func TestPlaceBidPreconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("closed while paused", func(t *testing.T) {
		f := newFixture(t)
		team := f.addTeam(t, "Team A", 1000)
		f.startDraft(t, "alpha")

		_, err := f.app.PlaceBid(ctx, team.ID, 100)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		assert.ErrorContains(t, err, "bidding is closed")
	})

	t.Run("closed at zero", func(t *testing.T) {
		f := newFixture(t)
		team := f.addTeam(t, "Team A", 1000)
		f.startDraft(t, "alpha")
		st := f.state(t)
		st.TimerValue = 0
		st.IsTimerRunning = true
		require.NoError(t, f.store.SaveGameState(ctx, st))

		_, err := f.app.PlaceBid(ctx, team.ID, 100)
		assert.ErrorContains(t, err, "bidding is closed")
	})

	t.Run("consecutive bid", func(t *testing.T) {
		f := newFixture(t)
		team := f.addTeam(t, "Team A", 1000)
		f.addTeam(t, "Team B", 1000)
		f.startDraft(t, "alpha")
		f.openBidding(t)

		_, err := f.app.PlaceBid(ctx, team.ID, 100)
		require.NoError(t, err)
		_, err = f.app.PlaceBid(ctx, team.ID, 100)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		assert.ErrorContains(t, err, "consecutive bid not allowed")
	})

	t.Run("invalid amount", func(t *testing.T) {
		f := newFixture(t)
		team := f.addTeam(t, "Team A", 1000)
		f.startDraft(t, "alpha")
		f.openBidding(t)

		_, err := f.app.PlaceBid(ctx, team.ID, 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		_, err = f.app.PlaceBid(ctx, team.ID, -5)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("not enough points", func(t *testing.T) {
		f := newFixture(t)
		team := f.addTeam(t, "Team A", 50)
		f.startDraft(t, "alpha")
		f.openBidding(t)

		_, err := f.app.PlaceBid(ctx, team.ID, 51)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		assert.ErrorContains(t, err, "not enough points")
	})

	t.Run("unknown team", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")
		_, err := f.app.PlaceBid(ctx, uuid.New(), 100)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPlaceBidRaisesAndExtendsTimer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	teamA := f.addTeam(t, "Team A", 1000)
	teamB := f.addTeam(t, "Team B", 1000)
	f.startDraft(t, "alpha")
	f.openBidding(t)

	// Drain part of the timer so the bonus is visible below the cap.
	st := f.state(t)
	st.TimerValue = 10
	require.NoError(t, f.store.SaveGameState(ctx, st))
	f.rec.reset()

	state, err := f.app.PlaceBid(ctx, teamA.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, state.CurrentBid)
	require.NotNil(t, state.HighBidder)
	assert.Equal(t, teamA.ID, state.HighBidder.ID)
	assert.InDelta(t, 12.0, state.TimerValue, 1e-9)

	// Raises are cumulative: +150 on a standing 100 makes 250.
	state, err = f.app.PlaceBid(ctx, teamB.ID, 150)
	require.NoError(t, err)
	assert.Equal(t, 250, state.CurrentBid)
	assert.Equal(t, teamB.ID, state.HighBidder.ID)

	bid, ok := f.rec.last(events.TypeBidUpdate)
	require.True(t, ok)
	payload := bid.Payload.(events.BidUpdate)
	assert.Equal(t, 250, payload.CurrentBid)
	assert.Equal(t, "Team B", payload.HighBidderName)
	assert.Equal(t, "Team B bid 250", payload.Log)

	timer, ok := f.rec.last(events.TypeTimerSync)
	require.True(t, ok)
	assert.True(t, timer.Payload.(events.TimerSync).IsRunning)
}

func TestPlaceBidBonusCappedAtMax(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team := f.addTeam(t, "Team A", 1000)
	f.startDraft(t, "alpha")
	f.openBidding(t)

	state, err := f.app.PlaceBid(ctx, team.ID, 100)
	require.NoError(t, err)
	assert.InDelta(t, game.MaxTimer, state.TimerValue, 1e-9)
}

// gateStore parks one team lookup, exposing the window between a bidder's
// room resolution and the room lock.
type gateStore struct {
	game.Store
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func (g *gateStore) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team, err := g.Store.GetTeam(ctx, id)
	if g.armed.CompareAndSwap(true, false) {
		close(g.entered)
		<-g.release
	}
	return team, err
}

func TestPlaceBidRevalidatesPointsUnderRoomLock(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	gs := &gateStore{Store: store, entered: make(chan struct{}), release: make(chan struct{})}
	rec := &recorder{}
	app := game.NewAppWithClock(gs, rec, clockwork.NewFakeClock())
	t.Cleanup(app.Ticker().Stop)

	auctionID := uuid.New()
	require.NoError(t, store.CreateAuction(ctx, models.Auction{
		ID:         auctionID,
		Title:      "race room",
		Status:     models.AuctionStatusDraft,
		InviteCode: "C0FFEE",
	}))
	team := models.Team{ID: uuid.New(), AuctionID: auctionID, Name: "Team A", CaptainName: "cap", Points: 1000}
	require.NoError(t, store.CreateTeam(ctx, team))

	_, err := app.StartRound(ctx, auctionID, game.StartRoundRequest{
		Players:   []game.PlayerEntry{{Name: "alpha"}, {Name: "bravo"}},
		OrderType: game.OrderSeq,
	})
	require.NoError(t, err)
	_, err = app.TimerControl(ctx, auctionID, game.TimerStart, nil)
	require.NoError(t, err)
	_, err = app.PlaceBid(ctx, team.ID, 300)
	require.NoError(t, err)

	// Park the next bid between its room lookup and the room lock, and let
	// the sale commit its 300-point deduction inside that window. The bid
	// must be validated against the post-sale balance, not the stale one.
	gs.armed.Store(true)
	bidErr := make(chan error, 1)
	go func() {
		_, err := app.PlaceBid(ctx, team.ID, 800)
		bidErr <- err
	}()
	<-gs.entered
	_, err = app.AdminDecision(ctx, auctionID, game.DecisionSold)
	require.NoError(t, err)
	close(gs.release)

	err = <-bidErr
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.ErrorContains(t, err, "not enough points")

	after, err := store.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, after.Points)
	assert.GreaterOrEqual(t, after.Points, 0)
}

func TestAdminDecisionSold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team := f.addTeam(t, "Team A", 1000)
	players := f.startDraft(t, "alpha", "bravo")
	f.openBidding(t)

	_, err := f.app.PlaceBid(ctx, team.ID, 300)
	require.NoError(t, err)
	f.rec.reset()

	state, err := f.app.AdminDecision(ctx, f.auctionID, game.DecisionSold)
	require.NoError(t, err)

	sold, err := f.store.GetPlayer(ctx, players[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStatusSold, sold.Status)
	require.NotNil(t, sold.SoldToTeamID)
	assert.Equal(t, team.ID, *sold.SoldToTeamID)
	require.NotNil(t, sold.SoldPrice)
	assert.Equal(t, 300, *sold.SoldPrice)

	buyer, err := f.store.GetTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, 700, buyer.Points)

	// Next round opens on the next waiting player with a fresh running timer.
	require.NotNil(t, state.CurrentPlayer)
	assert.Equal(t, "bravo", state.CurrentPlayer.Name)
	assert.Equal(t, 0, state.CurrentBid)
	assert.Nil(t, state.HighBidder)
	assert.InDelta(t, game.DefaultTimer, state.TimerValue, 1e-9)
	assert.True(t, state.IsTimerRunning)

	end, ok := f.rec.last(events.TypeRoundEnd)
	require.True(t, ok)
	endPayload := end.Payload.(events.RoundEnd)
	assert.Equal(t, "sold", endPayload.Result)
	require.NotNil(t, endPayload.Price)
	assert.Equal(t, 300, *endPayload.Price)

	_, ok = f.rec.last(events.TypeNewRound)
	assert.True(t, ok)

	logs, err := f.app.Logs(ctx, f.auctionID, game.BidHistoryWindow)
	require.NoError(t, err)
	assert.Equal(t, "SOLD alpha to Team A for 300", logs[0].Message)
}

func TestAdminDecisionSoldRequiresHighBidder(t *testing.T) {
	f := newFixture(t)
	f.startDraft(t, "alpha")

	_, err := f.app.AdminDecision(context.Background(), f.auctionID, game.DecisionSold)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.ErrorContains(t, err, "no high bidder")
}

func TestAdminDecisionNoActivePlayer(t *testing.T) {
	f := newFixture(t)
	_, err := f.app.AdminDecision(context.Background(), f.auctionID, game.DecisionPass)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.ErrorContains(t, err, "no active player")
}

func TestAdminDecisionUnknownAction(t *testing.T) {
	f := newFixture(t)
	f.startDraft(t, "alpha")
	_, err := f.app.AdminDecision(context.Background(), f.auctionID, game.DecisionAction("burn"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestAdminDecisionPassRequeuesUnsold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	players := f.startDraft(t, "alpha", "bravo")

	// Pass both players: the second resolution finds no waiting players and
	// requeues the unsold ones instead of ending the auction.
	_, err := f.app.AdminDecision(ctx, f.auctionID, game.DecisionPass)
	require.NoError(t, err)
	state, err := f.app.AdminDecision(ctx, f.auctionID, game.DecisionPass)
	require.NoError(t, err)

	assert.Equal(t, string(models.GamePhaseAuction), state.Phase)
	require.NotNil(t, state.CurrentPlayer)
	assert.Equal(t, players[0].ID, state.CurrentPlayer.ID, "first passed player comes back first")

	second, err := f.store.GetPlayer(ctx, players[1].ID)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStatusWaiting, second.Status)

	logs, err := f.app.Logs(ctx, f.auctionID, game.BidHistoryWindow)
	require.NoError(t, err)
	assert.Equal(t, "UNSOLD REQUEUE", logs[0].Message)
}

func TestAuctionEndsWhenAllPlayersSold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team := f.addTeam(t, "Team A", 1000)
	f.startDraft(t, "alpha")
	f.openBidding(t)

	_, err := f.app.PlaceBid(ctx, team.ID, 100)
	require.NoError(t, err)
	state, err := f.app.AdminDecision(ctx, f.auctionID, game.DecisionSold)
	require.NoError(t, err)

	assert.Equal(t, string(models.GamePhaseEnded), state.Phase)
	assert.Nil(t, state.CurrentPlayer)
	assert.False(t, state.IsTimerRunning, "ended auction never keeps a running timer")

	auction, err := f.store.GetAuction(ctx, f.auctionID)
	require.NoError(t, err)
	assert.Equal(t, models.AuctionStatusEnded, auction.Status)
}

func TestRosterCapBlocksFifthPlayer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team := f.addTeam(t, "Team A", 1000)
	f.startDraft(t, "p1", "p2", "p3", "p4", "p5")
	f.openBidding(t)

	for i := 0; i < game.MaxRosterSize; i++ {
		_, err := f.app.PlaceBid(ctx, team.ID, 1)
		require.NoError(t, err)
		_, err = f.app.AdminDecision(ctx, f.auctionID, game.DecisionSold)
		require.NoError(t, err)
	}

	count, err := f.store.RosterCount(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, game.MaxRosterSize, count)

	_, err = f.app.PlaceBid(ctx, team.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.ErrorContains(t, err, "roster is full")
}

func TestTimerControl(t *testing.T) {
	ctx := context.Background()

	t.Run("start requires active player", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.app.TimerControl(ctx, f.auctionID, game.TimerStart, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidState)
		assert.ErrorContains(t, err, "no active player")
	})

	t.Run("start then pause", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")

		state, err := f.app.TimerControl(ctx, f.auctionID, game.TimerStart, nil)
		require.NoError(t, err)
		assert.True(t, state.IsTimerRunning)
		assert.True(t, f.app.Ticker().Running())

		state, err = f.app.TimerControl(ctx, f.auctionID, game.TimerPause, nil)
		require.NoError(t, err)
		assert.False(t, state.IsTimerRunning)
	})

	t.Run("reset to default", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")
		st := f.state(t)
		st.TimerValue = 3.0
		require.NoError(t, f.store.SaveGameState(ctx, st))

		state, err := f.app.TimerControl(ctx, f.auctionID, game.TimerReset, nil)
		require.NoError(t, err)
		assert.InDelta(t, game.DefaultTimer, state.TimerValue, 1e-9)
		assert.False(t, state.IsTimerRunning)
	})

	t.Run("reset to explicit value", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")
		value := 7.5

		state, err := f.app.TimerControl(ctx, f.auctionID, game.TimerReset, &value)
		require.NoError(t, err)
		assert.InDelta(t, 7.5, state.TimerValue, 1e-9)
	})

	t.Run("reset rejects negative value", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")
		value := -3.0

		_, err := f.app.TimerControl(ctx, f.auctionID, game.TimerReset, &value)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("reset clamps to the cap", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")
		value := 90.0

		state, err := f.app.TimerControl(ctx, f.auctionID, game.TimerReset, &value)
		require.NoError(t, err)
		assert.InDelta(t, game.MaxTimer, state.TimerValue, 1e-9)
	})

	t.Run("unknown action", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.app.TimerControl(ctx, f.auctionID, game.TimerAction("warp"), nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("actions are logged", func(t *testing.T) {
		f := newFixture(t)
		f.startDraft(t, "alpha")
		_, err := f.app.TimerControl(ctx, f.auctionID, game.TimerStart, nil)
		require.NoError(t, err)

		logs, err := f.app.Logs(ctx, f.auctionID, game.BidHistoryWindow)
		require.NoError(t, err)
		assert.Equal(t, "TIMER START", logs[0].Message)
	})
}

func TestStatePayloadBidHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	teamA := f.addTeam(t, "Team A", 1000)
	teamB := f.addTeam(t, "Team B", 1000)
	f.startDraft(t, "alpha")
	f.openBidding(t)

	_, err := f.app.PlaceBid(ctx, teamA.ID, 100)
	require.NoError(t, err)
	state, err := f.app.PlaceBid(ctx, teamB.ID, 100)
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(state.BidHistory), 2)
	assert.Equal(t, "Team B bid 200", state.BidHistory[0])
	assert.Equal(t, "Team A bid 100", state.BidHistory[1])
}

func TestLobbySnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	team := f.addTeam(t, "Team A", 1000)
	f.startDraft(t, "alpha", "bravo")
	f.openBidding(t)

	_, err := f.app.PlaceBid(ctx, team.ID, 100)
	require.NoError(t, err)
	_, err = f.app.AdminDecision(ctx, f.auctionID, game.DecisionSold)
	require.NoError(t, err)

	lobby, err := f.app.Lobby(ctx, f.auctionID)
	require.NoError(t, err)
	assert.Equal(t, f.auctionID, lobby.AuctionID)
	require.Len(t, lobby.Teams, 1)
	require.Len(t, lobby.Teams[0].Roster, 1)
	assert.Equal(t, "alpha", lobby.Teams[0].Roster[0].Name)
	assert.Len(t, lobby.Players, 2)
}
