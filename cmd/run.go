package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"pointsbot/bot"
	"pointsbot/config"
	"pointsbot/database"
	"pointsbot/events"
	"pointsbot/repository"
	"pointsbot/service"
	"pointsbot/web"

	logrus "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting pointsbot...")

	// Load configuration
	cfg := config.Get()

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus and observers
	eventBus := events.NewBus()
	subscribeObservers(eventBus)

	// Initialize repository and services
	userRepo := repository.NewUserRepository(db)
	cooldown := service.NewChatCooldown(service.ChatCooldownWindow)

	userService := service.NewUserService(userRepo, eventBus)
	activityService := service.NewActivityService(userRepo, cooldown, eventBus)
	economyService := service.NewEconomyService(userRepo, eventBus)
	leaderboardService := service.NewLeaderboardService(userRepo)
	log.Println("Services initialized successfully")

	// Start keep-alive HTTP server
	keepAlive := web.NewKeepAlive(cfg.KeepAlivePort)
	keepAlive.Start()
	log.Printf("Keep-alive server listening on port %d", cfg.KeepAlivePort)

	// Initialize Discord bot
	log.Println("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
		Prefix:  cfg.CommandPrefix,
	}
	discordBot, err := bot.New(botConfig, userService, activityService, economyService, leaderboardService, cooldown)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Println("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Printf("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Println("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := keepAlive.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down keep-alive server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// subscribeObservers attaches structured-log observers to the domain
// events
func subscribeObservers(bus *events.Bus) {
	bus.Subscribe(events.EventTypeUserCreated, func(ctx context.Context, event events.Event) {
		if created, ok := event.(events.UserCreatedEvent); ok {
			logrus.WithField("userID", created.UserID).Info("New user record created")
		}
	})
	bus.Subscribe(events.EventTypePointsChange, func(ctx context.Context, event events.Event) {
		if change, ok := event.(events.PointsChangeEvent); ok {
			logrus.WithFields(logrus.Fields{
				"userID": change.UserID,
				"delta":  change.Delta,
				"total":  change.NewPoints,
				"reason": change.Reason,
			}).Debug("Points changed")
		}
	})
	bus.Subscribe(events.EventTypeVoiceSessionEnded, func(ctx context.Context, event events.Event) {
		if ended, ok := event.(events.VoiceSessionEndedEvent); ok {
			logrus.WithFields(logrus.Fields{
				"userID":  ended.UserID,
				"minutes": ended.Minutes,
				"total":   ended.Total,
				"tier":    ended.Tier,
			}).Info("Voice session ended")
		}
	})
}
