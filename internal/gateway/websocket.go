package gateway

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/broadcast"
	"github.com/8954sood/overwatch-civilwar/internal/events"
)

// WSConfig holds the websocket connection tuning.
type WSConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultWSConfig returns the default websocket tuning.
func DefaultWSConfig() WSConfig {
	return WSConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
}

var errSendBufferFull = errors.New("send buffer full")

// wsConn adapts one websocket client to the broadcaster. The broadcaster
// pushes marshaled frames through Send; writePump drains them onto the
// socket so a slow client never blocks delivery to the rest of the room.
type wsConn struct {
	id     string
	room   uuid.UUID
	conn   *websocket.Conn
	send   chan []byte
	config WSConfig
}

var _ broadcast.Subscriber = (*wsConn)(nil)

// Send queues a frame for the client. A full buffer reports an error so
// the broadcaster drops the subscriber.
func (c *wsConn) Send(data []byte) error {
	select {
	case c.send <- data:
		return nil
	default:
		return errSendBufferFull
	}
}

func (g *Gateway) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  g.wsConfig.ReadBufferSize,
		WriteBufferSize: g.wsConfig.WriteBufferSize,
		CheckOrigin:     g.wsConfig.CheckOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	room := broadcast.GlobalRoom
	if raw := r.URL.Query().Get("auctionId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			conn.Close()
			return
		}
		room = id
	}

	c := &wsConn{
		id:     uuid.New().String(),
		room:   room,
		conn:   conn,
		send:   make(chan []byte, 256),
		config: g.wsConfig,
	}
	g.broadcaster.Subscribe(room, c)

	log.Info().
		Str("connection_id", c.id).
		Str("room", room.String()).
		Msg("websocket connection established")

	if room != broadcast.GlobalRoom {
		g.sendSnapshot(r, c, room)
	}

	go c.writePump(g.broadcaster)
	go c.readPump(g.broadcaster)
}

// sendSnapshot delivers the connect-time lobby and state frames so a fresh
// client renders without waiting for the next room event.
func (g *Gateway) sendSnapshot(r *http.Request, c *wsConn, room uuid.UUID) {
	lobby, err := g.game.Lobby(r.Context(), room)
	if err != nil {
		log.Warn().Err(err).Str("room", room.String()).Msg("failed to build lobby snapshot")
		return
	}
	state, err := g.game.State(r.Context(), room)
	if err != nil {
		log.Warn().Err(err).Str("room", room.String()).Msg("failed to build state snapshot")
		return
	}
	g.broadcaster.SnapshotTo(c, events.Event{Type: events.TypeLobbyUpdate, Payload: lobby})
	g.broadcaster.SnapshotTo(c, events.Event{Type: events.TypeStateSync, Payload: state})
}

func (c *wsConn) writePump(b *broadcast.Broadcaster) {
	ticker := time.NewTicker(c.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		b.Unsubscribe(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *wsConn) readPump(b *broadcast.Broadcaster) {
	defer func() {
		b.Unsubscribe(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
		return nil
	})

	// Clients only listen; inbound frames just refresh the read deadline.
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("connection_id", c.id).Msg("unexpected websocket close")
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(c.config.ReadTimeout))
	}
}
