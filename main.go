package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/raine/telegram-sushi-bot/internal/bot"
	"github.com/raine/telegram-sushi-bot/internal/config"
	"github.com/raine/telegram-sushi-bot/internal/menu"
	"github.com/raine/telegram-sushi-bot/internal/scrape"
	"github.com/raine/telegram-sushi-bot/internal/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const logFileName = "sushi-bot.log"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	config.LoadEnvFile()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	// JOURNAL_STREAM is set by systemd when running as a service.
	// Skip file logging under systemd (journald handles it).
	if _, underSystemd := os.LookupEnv("JOURNAL_STREAM"); underSystemd {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open log file")
		}
		defer logFile.Close()

		consoleWriter := zerolog.ConsoleWriter{Out: os.Stderr}
		fileWriter := zerolog.ConsoleWriter{Out: logFile, NoColor: true}
		log.Logger = log.Output(io.MultiWriter(consoleWriter, fileWriter))

		log.Info().Str("logFile", logFileName).Msg("logging to file")
	}

	tg, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telegram bot")
	}
	tg.Debug = false
	log.Info().Str("username", tg.Self.UserName).Msg("authorized on account")

	bot.RegisterCommands(tg)

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer store.Close()
	log.Info().Str("dbPath", cfg.DBPath).Msg("database initialized")

	catalog := storage.NewCatalogCache(storage.NewCatalogFile(cfg.CatalogPath))

	var alert scrape.AlertFunc
	if cfg.AdminID != 0 {
		alert = bot.NewAdminAlert(tg, cfg.AdminID)
	}
	refresher := scrape.NewService(
		scrape.NewClient(cfg.MenuURL),
		&menu.Extractor{Strict: cfg.StrictExtract},
		catalog,
		store,
		alert,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// The catalog is built before any draw is served. A failed build falls
	// back to the catalog persisted by an earlier run.
	if cfg.ScrapeOnStart {
		if _, err := refresher.RunOnce(ctx); err != nil {
			if _, loadErr := catalog.Catalog(); loadErr != nil {
				log.Fatal().Err(err).AnErr("loadErr", loadErr).Msg("no menu catalog available")
			}
			log.Warn().Str("catalogPath", cfg.CatalogPath).Msg("serving previously saved menu catalog")
		}
	} else if _, err := catalog.Catalog(); err != nil {
		log.Warn().Err(err).Msg("no saved menu catalog yet; draws will fail until one is built")
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return runBot(ctx, tg, bot.NewBot(tg, store, catalog, store))
	})

	if cfg.RefreshInterval > 0 {
		g.Go(func() error {
			refresher.Run(ctx, cfg.RefreshInterval)
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("shutdown with error")
	} else {
		log.Info().Msg("shutdown complete")
	}
}

func runBot(ctx context.Context, tg *tgbotapi.BotAPI, b *bot.Bot) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := tg.GetUpdatesChan(updateConfig)

	var wg sync.WaitGroup

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stopping bot update loop")
			tg.StopReceivingUpdates()
			log.Info().Msg("waiting for active handlers to finish")
			wg.Wait()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				log.Warn().Msg("updates channel closed")
				wg.Wait()
				return nil
			}
			wg.Add(1)
			go func(u tgbotapi.Update) {
				defer wg.Done()
				b.HandleUpdate(ctx, u)
			}(update)
		}
	}
}
