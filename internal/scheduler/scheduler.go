// Package scheduler runs the periodic exchange-rate refresh.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/adapters/ratefeed"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/SscSPs/storefront_backoffice/internal/middleware"
	"github.com/SscSPs/storefront_backoffice/internal/platform/config"
	"github.com/robfig/cron/v3"
)

// FeedOperator is recorded as the author of rates pulled from the feed.
const FeedOperator = "rate-feed"

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron    *cron.Cron
	feed    ratefeed.Client
	pricing portssvc.PricingAdminSvc
	cfg     *config.Config
	logger  *slog.Logger
	timeout time.Duration
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg *config.Config, feed ratefeed.Client, pricing portssvc.PricingAdminSvc, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:    cron.New(),
		feed:    feed,
		pricing: pricing,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "scheduler")),
		timeout: cfg.RecalcTimeout + time.Minute,
	}
}

// Start schedules the rate refresh on cfg.RateFeedCron and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler", slog.String("spec", s.cfg.RateFeedCron))

	if _, err := s.cron.AddFunc(s.cfg.RateFeedCron, s.refreshJob); err != nil {
		return fmt.Errorf("failed to schedule rate refresh %q: %w", s.cfg.RateFeedCron, err)
	}
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) refreshJob() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RefreshRates(middleware.WithLogger(ctx, s.logger))
}

// RefreshRates pulls every configured currency from the feed and records it with source=api.
// A failing currency is logged and does not stop the others. It returns the number of rates recorded.
func (s *Scheduler) RefreshRates(ctx context.Context) int {
	apply := s.cfg.RateFeedApplyToProducts
	recorded := 0

	for _, code := range s.cfg.RateFeedCurrencies {
		if code == s.cfg.LocalCurrency {
			continue
		}
		rate, err := s.feed.FetchRate(ctx, code, s.cfg.LocalCurrency)
		if err != nil {
			s.logger.Error("Failed to fetch rate", slog.String("currency", code), slog.String("error", err.Error()))
			continue
		}

		outcome, err := s.pricing.UpdateExchangeRate(ctx, dto.UpdateExchangeRateRequest{
			Currency:        code,
			NewRate:         rate,
			Source:          domain.RateSourceAPI,
			Notes:           "scheduled feed refresh",
			ApplyToProducts: &apply,
		}, FeedOperator)
		if err != nil {
			s.logger.Error("Failed to record feed rate", slog.String("currency", code), slog.String("error", err.Error()))
			continue
		}

		recorded++
		s.logger.Info("Feed rate recorded",
			slog.String("currency", code),
			slog.String("rate", rate.String()),
			slog.String("previous_rate", outcome.PreviousRate.String()),
			slog.Int("updated_products", outcome.Report.Updated),
		)
	}
	return recorded
}
