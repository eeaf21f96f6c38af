package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/crownbeat/crownbeat/internal/adapter"
	"github.com/crownbeat/crownbeat/internal/bot"
	"github.com/crownbeat/crownbeat/internal/config"
	"github.com/crownbeat/crownbeat/internal/crown"
	"github.com/crownbeat/crownbeat/internal/indexer"
	"github.com/crownbeat/crownbeat/internal/logger"
	"github.com/crownbeat/crownbeat/internal/roster"
	"github.com/crownbeat/crownbeat/internal/scrobble"
	"github.com/crownbeat/crownbeat/internal/store"
	"github.com/crownbeat/crownbeat/internal/whoknows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadBotConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "bot",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Bot")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize clock adapter
	clock := adapter.NewClock()

	// Initialize Last.fm client
	scrobbleClient := scrobble.NewClient(scrobble.Config{
		APIKey:            cfg.LastFM.APIKey,
		APISecret:         cfg.LastFM.APISecret,
		RequestsPerSecond: cfg.LastFM.RequestsPerSecond,
		Burst:             cfg.LastFM.Burst,
		MaxRetryElapsed:   cfg.LastFM.MaxRetryElapsed,
		TopArtistDepth:    cfg.Indexer.TopArtistLimit,
	})

	// Open the Discord session
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create Discord session", zap.Error(err))
	}
	rosterProvider := roster.NewDiscordProvider(session)

	// Initialize services
	indexService := indexer.NewService(dataStore, scrobbleClient, clock, indexer.Config{
		MemberExpiry:   cfg.Indexer.MemberExpiry,
		GuildCooldown:  cfg.Indexer.GuildCooldown,
		ReentryWindow:  cfg.Indexer.ReentryWindow,
		TopArtistLimit: cfg.Indexer.TopArtistLimit,
		PoolSize:       cfg.Indexer.PoolSize,
		CrawlTimeout:   cfg.Indexer.CrawlTimeout,
	})
	crownService := crown.NewService(dataStore, clock)
	whoknowsService := whoknows.NewService(dataStore, scrobbleClient, rosterProvider, crownService, clock, whoknows.Config{
		RequesterStaleAfter: cfg.WhoKnows.RequesterStaleAfter,
	})

	b := bot.New(cfg, session, dataStore, scrobbleClient, rosterProvider, indexService, whoknowsService, crownService, clock)
	if err := b.Start(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to start bot", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Bot started")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	cancel()

	if err := b.Stop(); err != nil {
		logger.Error(err)
	}
	logger.Info("Bot stopped")
}
