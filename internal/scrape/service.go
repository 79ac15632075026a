package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raine/telegram-sushi-bot/internal/menu"
	"github.com/raine/telegram-sushi-bot/internal/storage"
	"github.com/rs/zerolog/log"
)

// CatalogSaver persists a freshly built catalog.
type CatalogSaver interface {
	Save(catalog menu.Catalog) error
}

// RunRecorder keeps the history of refresh runs.
type RunRecorder interface {
	StartRun() (*storage.ScrapeRun, error)
	FinishRun(run *storage.ScrapeRun, entries int, runErr error) error
}

// AlertFunc is told about failed runs so an operator can look at them.
type AlertFunc func(err error)

// Service rebuilds the menu catalog from the live page.
type Service struct {
	fetcher   Fetcher
	extractor *menu.Extractor
	saver     CatalogSaver
	runs      RunRecorder
	alert     AlertFunc

	// mu serializes runs; a refresh never overlaps another.
	mu sync.Mutex
}

// NewService creates a refresh service. runs and alert may be nil.
func NewService(fetcher Fetcher, extractor *menu.Extractor, saver CatalogSaver, runs RunRecorder, alert AlertFunc) *Service {
	return &Service{
		fetcher:   fetcher,
		extractor: extractor,
		saver:     saver,
		runs:      runs,
		alert:     alert,
	}
}

// RunOnce fetches the page, builds the catalog and saves it. On any failure
// nothing is saved and the previous catalog stays in place.
func (s *Service) RunOnce(ctx context.Context) (menu.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var run *storage.ScrapeRun
	if s.runs != nil {
		var err error
		if run, err = s.runs.StartRun(); err != nil {
			log.Warn().Err(err).Msg("failed to record scrape run start")
		}
	}

	logger := log.Logger
	if run != nil {
		logger = log.With().Str("runID", run.ID).Logger()
	}
	logger.Info().Msg("refreshing menu catalog")

	catalog, err := s.build(ctx)

	if run != nil {
		if finishErr := s.runs.FinishRun(run, len(catalog), err); finishErr != nil {
			logger.Warn().Err(finishErr).Msg("failed to record scrape run result")
		}
	}

	if err != nil {
		logger.Error().Err(err).Msg("menu catalog refresh failed")
		if s.alert != nil {
			s.alert(err)
		}
		return nil, err
	}

	logger.Info().Int("entries", len(catalog)).Msg("menu catalog refreshed")
	return catalog, nil
}

func (s *Service) build(ctx context.Context) (menu.Catalog, error) {
	document, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	extraction, err := s.extractor.Extract(document)
	if err != nil {
		return nil, err
	}
	if extraction.SkippedSections > 0 || extraction.SkippedItems > 0 {
		log.Warn().
			Int("skippedSections", extraction.SkippedSections).
			Int("skippedItems", extraction.SkippedItems).
			Msg("menu page had incomplete entries")
	}

	catalog, err := menu.BuildCatalog(extraction.Sections)
	if err != nil {
		return nil, err
	}

	if err := s.saver.Save(catalog); err != nil {
		return nil, fmt.Errorf("failed to save catalog: %w", err)
	}
	return catalog, nil
}

// Run refreshes the catalog every interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	log.Info().Dur("interval", interval).Msg("starting menu refresh service")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("menu refresh service stopped")
			return
		case <-ticker.C:
			// Failures are logged and alerted inside RunOnce.
			_, _ = s.RunOnce(ctx)
		}
	}
}
