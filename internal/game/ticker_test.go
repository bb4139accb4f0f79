package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/8954sood/overwatch-civilwar/internal/events"
	"github.com/8954sood/overwatch-civilwar/internal/game"
	"github.com/8954sood/overwatch-civilwar/internal/models"
)

const tick = 50 * time.Millisecond

// advanceTick waits for the loop to arm its timer, then fires it. BlockUntil
// returns once the loop goroutine is parked on the fake clock, so the
// subsequent Advance is guaranteed to wake exactly that waiter.
func advanceTick(f *fixture, d time.Duration) {
	f.clock.BlockUntil(1)
	f.clock.Advance(d)
}

// runningState puts the room mid-countdown with the ticker loop active.
func runningState(t *testing.T, f *fixture, timerValue float64) {
	t.Helper()
	f.startDraft(t, "alpha")
	st := f.state(t)
	st.TimerValue = timerValue
	require.NoError(t, f.store.SaveGameState(context.Background(), st))
	f.openBidding(t)
}

func TestTickerDecrementsByElapsed(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 10)

	advanceTick(f, tick)
	f.clock.BlockUntil(1)

	st := f.state(t)
	assert.InDelta(t, 9.95, st.TimerValue, 1e-9)
	assert.True(t, st.IsTimerRunning)
}

func TestTickerUsesMeasuredElapsedNotNominal(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 10)

	// A delayed wakeup must subtract the real elapsed time, not the tick
	// interval, so countdowns stay honest under scheduler jitter.
	advanceTick(f, 120*time.Millisecond)
	f.clock.BlockUntil(1)

	st := f.state(t)
	assert.InDelta(t, 9.88, st.TimerValue, 1e-9)
}

func TestTickerFreezesAtZeroWithoutResolving(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 0.03)

	advanceTick(f, tick)

	require.Eventually(t, func() bool {
		st := f.state(t)
		return st.TimerValue == 0 && !st.IsTimerRunning
	}, time.Second, 5*time.Millisecond)

	// Expiry only freezes the clock. The round stays open until an admin
	// rules on it.
	players, err := f.store.ListPlayersByAuction(context.Background(), f.auctionID)
	require.NoError(t, err)
	assert.Equal(t, models.PlayerStatusBidding, players[0].Status)

	require.Eventually(t, func() bool {
		sync, ok := f.rec.last(events.TypeTimerSync)
		if !ok {
			return false
		}
		payload := sync.Payload.(events.TimerSync)
		return payload.TimeLeft == 0 && !payload.IsRunning
	}, time.Second, 5*time.Millisecond)
}

func TestTickerStopsWhenIdle(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 0.03)

	// First tick zeroes the room, the next pass finds nothing running and
	// the loop exits on its own.
	advanceTick(f, tick)
	f.clock.BlockUntil(1)
	f.clock.Advance(tick)

	require.Eventually(t, func() bool {
		return !f.app.Ticker().Running()
	}, time.Second, 5*time.Millisecond)
}

func TestTickerRestartsAfterIdleStop(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 0.03)

	advanceTick(f, tick)
	f.clock.BlockUntil(1)
	f.clock.Advance(tick)
	require.Eventually(t, func() bool {
		return !f.app.Ticker().Running()
	}, time.Second, 5*time.Millisecond)

	// A fresh timer start brings the loop back.
	value := 5.0
	_, err := f.app.TimerControl(context.Background(), f.auctionID, game.TimerReset, &value)
	require.NoError(t, err)
	f.openBidding(t)
	require.True(t, f.app.Ticker().Running())

	advanceTick(f, tick)
	f.clock.BlockUntil(1)
	assert.InDelta(t, 4.95, f.state(t).TimerValue, 1e-9)
}

func TestTickerStartIsIdempotent(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 10)

	f.app.Ticker().Start()
	f.app.Ticker().Start()

	advanceTick(f, tick)
	f.clock.BlockUntil(1)

	// A second Start must not spawn a second loop that double-decrements.
	assert.InDelta(t, 9.95, f.state(t).TimerValue, 1e-9)
}

func TestTickerSkipsPausedRooms(t *testing.T) {
	f := newFixture(t)
	runningState(t, f, 10)

	pausedID := uuid.New()
	require.NoError(t, f.store.CreateAuction(context.Background(), models.Auction{
		ID:         pausedID,
		Title:      "waiting room",
		Status:     models.AuctionStatusDraft,
		InviteCode: "D4E5F6",
	}))
	_, err := f.store.GetGameState(context.Background(), pausedID)
	require.NoError(t, err)

	advanceTick(f, tick)
	f.clock.BlockUntil(1)

	assert.InDelta(t, 9.95, f.state(t).TimerValue, 1e-9)

	paused, err := f.store.GetGameState(context.Background(), pausedID)
	require.NoError(t, err)
	assert.InDelta(t, game.DefaultTimer, paused.TimerValue, 1e-9)
}
