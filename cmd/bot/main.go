package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/KirkDiggler/coupd/internal/common/clock"
	"github.com/KirkDiggler/coupd/internal/common/uuid"
	"github.com/KirkDiggler/coupd/internal/config"
	"github.com/KirkDiggler/coupd/internal/handlers/discord"
	"github.com/KirkDiggler/coupd/internal/repositories/match_history"
	"github.com/KirkDiggler/coupd/internal/repositories/session"
	gameService "github.com/KirkDiggler/coupd/internal/services/game"
	"github.com/KirkDiggler/coupd/internal/services/messaging"
	"github.com/KirkDiggler/coupd/internal/shuffle"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.RequireDiscord(); err != nil {
		log.Fatal(err)
	}

	// Match history is optional; without Redis there is no leaderboard or history
	var history match_history.Repository
	if cfg.Redis.Enabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		// NewRedis pings the server before handing back the repository
		repo, err := match_history.NewRedis(&match_history.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			log.Fatalf("Failed to create match history repository: %v", err)
		}
		history = repo
	} else {
		log.Println("REDIS_ADDR not set, match history disabled")
	}

	gameSvc, err := gameService.New(&gameService.Config{
		Directory:     session.NewMemory(),
		MatchHistory:  history,
		Shuffler:      shuffle.New(&shuffle.Config{Seed: cfg.ShuffleSeed}),
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		log.Fatalf("Failed to create game service: %v", err)
	}

	messagingSvc, err := messaging.New(&messaging.Config{
		DefaultLocale: cfg.DefaultLocale,
	})
	if err != nil {
		log.Fatalf("Failed to create messaging service: %v", err)
	}

	bot, err := discord.New(&discord.Config{
		Token:            cfg.Discord.Token,
		ApplicationID:    cfg.Discord.ApplicationID,
		GuildID:          cfg.Discord.GuildID,
		DefaultLocale:    cfg.DefaultLocale,
		GameService:      gameSvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatalf("Failed to create Discord bot: %v", err)
	}

	if err := bot.Start(); err != nil {
		log.Fatalf("Failed to start Discord bot: %v", err)
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if err := bot.Stop(); err != nil {
		log.Printf("Error stopping bot: %v", err)
	}

	log.Println("Bot has been shut down")
}
