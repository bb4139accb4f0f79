package game

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/events"
)

const tickInterval = 50 * time.Millisecond

// Ticker is the single shared countdown loop for every room. It decrements
// running timers by measured wall-clock elapsed time rather than the
// nominal interval, so scheduler jitter does not accumulate. The loop
// stops itself when no room is running and is restarted on demand; Start
// is idempotent and single-flight under concurrent callers.
type Ticker struct {
	app      *App
	clock    clockwork.Clock
	interval time.Duration

	mu      sync.Mutex
	running bool
	wake    chan struct{}
	quit    chan struct{}
}

func newTicker(app *App, clock clockwork.Clock, interval time.Duration) *Ticker {
	return &Ticker{
		app:      app,
		clock:    clock,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Start launches the tick loop if it is not already alive. A concurrent
// Start while the loop is deciding whether to self-stop wakes it instead,
// so a freshly started room timer is never missed.
func (t *Ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		select {
		case t.wake <- struct{}{}:
		default:
		}
		return
	}
	t.running = true
	t.quit = make(chan struct{})
	go t.loop(t.quit)
	log.Debug().Msg("ticker started")
}

// Stop halts the loop. Used for shutdown; pause/reset never call it, the
// loop notices idle rooms on its own.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		close(t.quit)
		t.running = false
	}
}

// Running reports whether the tick loop is alive.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

func (t *Ticker) loop(quit chan struct{}) {
	ctx := context.Background()
	last := t.clock.Now()
	for {
		select {
		case <-quit:
			return
		case <-t.clock.After(t.interval):
		}

		now := t.clock.Now()
		elapsed := now.Sub(last).Seconds()
		last = now

		active := t.tickRooms(ctx, elapsed)
		if active > 0 {
			continue
		}

		// Idle. Self-stop unless someone started a room timer while we
		// were ticking; the wake signal is pushed under the same mutex.
		t.mu.Lock()
		select {
		case <-t.wake:
			t.mu.Unlock()
		default:
			t.running = false
			t.mu.Unlock()
			log.Debug().Msg("ticker idle, stopping")
			return
		}
	}
}

// tickRooms decrements every running room and reports how many rooms still
// need ticking. A momentary storage failure is treated as transient: the
// loop stays alive and retries next tick.
func (t *Ticker) tickRooms(ctx context.Context, elapsed float64) int {
	states, err := t.app.store.ListRunningStates(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("ticker failed to list running rooms, retrying next tick")
		return 1
	}
	for _, st := range states {
		t.tickRoom(ctx, st.AuctionID, elapsed)
	}
	return len(states)
}

// tickRoom applies one decrement under the room lock. The state is re-read
// inside the critical section so a pause committed between listing and
// ticking is honored; a stale read one tick earlier is acceptable, a
// half-applied write is not.
func (t *Ticker) tickRoom(ctx context.Context, auctionID uuid.UUID, elapsed float64) {
	unlock := t.app.lockRoom(auctionID)
	defer unlock()

	st, err := t.app.store.GetGameState(ctx, auctionID)
	if err != nil {
		log.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("ticker failed to read room state")
		return
	}
	if !st.IsTimerRunning {
		return
	}

	st.TimerValue = math.Max(0, st.TimerValue-elapsed)
	if st.TimerValue <= 0 {
		// Freeze and wait for the admin decision; no auto sold/pass.
		st.TimerValue = 0
		st.IsTimerRunning = false
	}
	if err := t.app.store.SaveGameState(ctx, st); err != nil {
		log.Warn().Err(err).Str("auction_id", auctionID.String()).Msg("ticker failed to save room state")
		return
	}

	t.app.pub.Broadcast(auctionID, events.Event{Type: events.TypeTimerSync, Payload: events.TimerSync{
		AuctionID: auctionID,
		TimeLeft:  st.TimerValue,
		IsRunning: st.IsTimerRunning,
	}})
}
