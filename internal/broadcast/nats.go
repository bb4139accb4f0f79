package broadcast

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/events"
)

// NATSSink mirrors every delivered room event onto NATS subjects of the
// form <prefix>.<auctionId>.<eventType>, so external consumers (stream
// overlays, bots) can follow a room without holding a websocket.
// Publishing is fire-and-forget.
type NATSSink struct {
	nc     *nats.Conn
	prefix string
}

// NewNATSSink connects to NATS with infinite reconnects.
func NewNATSSink(url, prefix string) (*NATSSink, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSSink{nc: nc, prefix: prefix}, nil
}

// Publish implements Sink.
func (s *NATSSink) Publish(room uuid.UUID, eventType events.Type, data []byte) {
	subject := fmt.Sprintf("%s.%s.%s", s.prefix, room, eventType)
	if err := s.nc.Publish(subject, data); err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to publish event to NATS")
	}
}

// Close drains the connection.
func (s *NATSSink) Close() {
	if err := s.nc.Drain(); err != nil {
		s.nc.Close()
	}
}
