package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fishing-game-backend/handlers"
	"fishing-game-backend/middleware"
	"fishing-game-backend/models"
	"fishing-game-backend/services"
	"fishing-game-backend/store"
	"fishing-game-backend/workers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading environment variables directly")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("PRETTY_LOGS") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	app := fiber.New(fiber.Config{
		AppName: "fishing-game-backend",
	})

	// Only gateway requests are allowed, no exceptions.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.TrimSpace(allowedOrigins),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-Username",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.PlayerInventory{},
		&models.PlayerDailyRewards{},
		&models.SeasonPass{},
		&models.PlayerSeasonPass{},
		&models.Purchase{},
		&models.PlayerQuest{},
		&models.Guild{},
		&models.GuildMember{},
		&models.GuildApplication{},
		&models.GuildChallenge{},
		&models.Tournament{},
		&models.TournamentEntry{},
		&models.TournamentResult{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Gift{},
		&models.Notification{},
		&models.Activity{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	stores := store.NewGormStores(db)

	rewardService := services.NewRewardService(stores.Users, stores.Inventories)
	dailyService := services.NewDailyRewardService(stores.Daily, rewardService)
	seasonService := services.NewSeasonPassService(stores.Seasons, stores.PlayerSeasons, stores.Purchases, rewardService)
	questService := services.NewQuestService(stores.PlayerQuests, stores.Users, rewardService, seasonService)
	guildService := services.NewGuildService(stores.Guilds, stores.GuildMembers, stores.GuildApplications, stores.GuildChallenges, rewardService)
	tournamentService := services.NewTournamentService(stores.Tournaments, stores.TournamentEntries, stores.TournamentResults, stores.Users, rewardService)
	socialService := services.NewSocialService(stores.FriendRequests, stores.Friendships, stores.Gifts, stores.Notifications, stores.Activities, stores.Users, rewardService)

	handlers.SetupDailyRoutes(app, dailyService)
	handlers.SetupSeasonRoutes(app, seasonService)
	handlers.SetupQuestRoutes(app, questService)
	handlers.SetupGuildRoutes(app, guildService)
	handlers.SetupTournamentRoutes(app, tournamentService)
	handlers.SetupSocialRoutes(app, socialService)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tournamentService.StartScheduler(ctx)
	go workers.PollGiftExpiry(ctx, socialService, 10*time.Minute)
	go workers.PollWeeklyReset(ctx, stores.Guilds, stores.GuildMembers, 15*time.Minute)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", port).Msg("fishing game backend listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}
