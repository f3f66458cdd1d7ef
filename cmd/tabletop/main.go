package main

import (
	"context"
	"os"

	"github.com/KirkDiggler/coupd/internal/common/clock"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/config"
	"github.com/KirkDiggler/coupd/internal/handlers/console"
	"github.com/KirkDiggler/coupd/internal/repositories/match_history"
	"github.com/KirkDiggler/coupd/internal/repositories/session"
	gameService "github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/KirkDiggler/coupd/internal/shuffle"
	"github.com/pterm/pterm"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		pterm.Fatal.Printfln("Failed to load config: %v", err)
	}

	var history match_history.Repository
	if cfg.Redis.Enabled() {
		repo, err := match_history.NewRedis(&match_history.Config{
			RedisClient: redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			}),
		})
		if err != nil {
			pterm.Warning.Printfln("Match history disabled: %v", err)
		} else {
			history = repo
		}
	}

	gameSvc, err := gameService.New(&gameService.Config{
		Directory:     session.NewMemory(),
		MatchHistory:  history,
		Shuffler:      shuffle.New(&shuffle.Config{Seed: cfg.ShuffleSeed}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		pterm.Fatal.Printfln("Failed to create game service: %v", err)
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		DefaultLocale: cfg.DefaultLocale,
	})
	if err != nil {
		pterm.Fatal.Printfln("Failed to create messaging service: %v", err)
	}

	tabletop, err := console.New(&console.Config{
		GameService:      gameSvc,
		MessagingService: messagingSvc,
		Locale:           cfg.DefaultLocale,
		Out:              os.Stdout,
	})
	if err != nil {
		pterm.Fatal.Printfln("Failed to create tabletop: %v", err)
	}

	pterm.DefaultHeader.WithFullWidth().Println("Coup")

	if err := tabletop.Run(context.Background(), os.Stdin); err != nil {
		pterm.Error.Printfln("Tabletop stopped: %v", err)
		os.Exit(1)
	}
}
