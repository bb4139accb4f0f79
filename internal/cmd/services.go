package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/8954sood/overwatch-civilwar/internal/auction"
	"github.com/8954sood/overwatch-civilwar/internal/auth"
	"github.com/8954sood/overwatch-civilwar/internal/broadcast"
	"github.com/8954sood/overwatch-civilwar/internal/game"
	"github.com/8954sood/overwatch-civilwar/internal/gateway"
	"github.com/8954sood/overwatch-civilwar/internal/memstore"
	"github.com/8954sood/overwatch-civilwar/internal/player"
	"github.com/8954sood/overwatch-civilwar/internal/postgres"
	"github.com/8954sood/overwatch-civilwar/internal/team"
)

// Store is the union of every app's repository interface. Both storage
// drivers implement all of it.
type Store interface {
	game.Store
	auth.Repository
	auction.Repository
	team.Repository
	player.Repository
}

type Services struct {
	Broadcaster *broadcast.Broadcaster
	Game        *game.App
	Gateway     *gateway.Gateway

	natsSink *broadcast.NATSSink
}

// Close releases external connections.
func (s *Services) Close() {
	if s.natsSink != nil {
		s.natsSink.Close()
	}
}

func setupServices(ctx context.Context, cfg *Config) (*Services, error) {
	store, err := setupStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var sinks []broadcast.Sink
	var natsSink *broadcast.NATSSink
	if cfg.NATS.URL != "" {
		natsSink, err = broadcast.NewNATSSink(cfg.NATS.URL, cfg.NATS.SubjectPrefix)
		if err != nil {
			return nil, fmt.Errorf("setup NATS sink: %w", err)
		}
		sinks = append(sinks, natsSink)
		log.Info().Str("url", cfg.NATS.URL).Msg("NATS event mirror enabled")
	}
	broadcaster := broadcast.New(sinks...)

	gameApp := game.NewApp(store, broadcaster)
	authApp := auth.NewApp(store, auth.Credentials{
		AdminID:  cfg.Admin.ID,
		Password: cfg.Admin.Password,
	})
	auctionApp := auction.NewApp(store, cfg.Server.InviteBaseURL)
	teamApp := team.NewApp(store, broadcaster, gameApp)
	playerApp := player.NewApp(store, gameApp)

	gw := gateway.New(authApp, auctionApp, teamApp, playerApp, gameApp, broadcaster)

	return &Services{
		Broadcaster: broadcaster,
		Game:        gameApp,
		Gateway:     gw,
		natsSink:    natsSink,
	}, nil
}

func setupStore(ctx context.Context, cfg *Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		pool, err := setupDatabase(ctx, cfg.Storage.Database)
		if err != nil {
			return nil, err
		}
		store := postgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		return store, nil
	case "memory", "":
		log.Warn().Msg("using in-memory storage, state is lost on restart")
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
