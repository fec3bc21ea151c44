package scheduler

import (
	"github.com/mdehtemam/bagquote-backend/internal/app/service"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// QuoteScheduler closes pending quotes that nobody has touched for the
// configured number of days.
type QuoteScheduler struct {
	cron           *cron.Cron
	quoteService   service.QuoteService
	staleAfterDays int
}

func NewQuoteScheduler(quoteService service.QuoteService, staleAfterDays int) *QuoteScheduler {
	return &QuoteScheduler{
		cron:           cron.New(),
		quoteService:   quoteService,
		staleAfterDays: staleAfterDays,
	}
}

// Start registers the daily job. "0 3 * * *" runs at 03:00 server time,
// outside business hours.
func (s *QuoteScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		logger.Info("Starting scheduled stale quote cleanup", map[string]interface{}{
			"stale_after_days": s.staleAfterDays,
		})

		closed, err := s.quoteService.CloseStalePending(s.staleAfterDays)
		if err != nil {
			logger.Error("Scheduled stale quote cleanup failed", err)
			return
		}

		logger.Info("Scheduled stale quote cleanup finished", map[string]interface{}{
			"closed_count": closed,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for stale quote cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Quote scheduler started successfully (daily at 3:00 AM)")

	return nil
}

func (s *QuoteScheduler) Stop() {
	logger.Info("Stopping quote scheduler...")
	s.cron.Stop()
	logger.Info("Quote scheduler stopped")
}
