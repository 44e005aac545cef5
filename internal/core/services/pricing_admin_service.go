package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
)

type pricingAdminService struct {
	BaseService
	rates  portssvc.ExchangeRateSvcFacade
	engine portssvc.RecalculationSvc
}

// NewPricingAdminService creates the service behind the update and simulate rate operations.
func NewPricingAdminService(rates portssvc.ExchangeRateSvcFacade, engine portssvc.RecalculationSvc) portssvc.PricingAdminSvc {
	return &pricingAdminService{rates: rates, engine: engine}
}

// UpdateExchangeRate records the new rate first and then reprices the catalog.
// The rate stays recorded even when repricing fails part way; the failures are in the report.
func (s *pricingAdminService) UpdateExchangeRate(ctx context.Context, req dto.UpdateExchangeRateRequest, userID string) (*domain.RateUpdateOutcome, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !req.NewRate.IsPositive() {
		return nil, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, req.NewRate.String())
	}

	// The rate in effect before recording; the synthesized default when the currency has no record yet.
	inEffect, err := s.rates.GetCurrentRate(ctx, code)
	if err != nil {
		return nil, err
	}

	rate, err := s.rates.RecordNewRate(ctx, dto.CreateExchangeRateRequest{
		CurrencyCode: code,
		Rate:         req.NewRate,
		Source:       req.Source,
		Notes:        req.Notes,
	}, userID)
	if err != nil {
		return nil, err
	}

	previous := rate.UpdateStatistics.PreviousRate
	if !previous.IsPositive() {
		previous = inEffect.RateToLocal
	}
	outcome := &domain.RateUpdateOutcome{
		CurrencyCode:     code,
		NewRate:          rate.RateToLocal,
		PreviousRate:     previous,
		Change:           rate.RateToLocal.Sub(previous),
		ChangePercentage: domain.ChangePercentage(rate.RateToLocal, previous),
		Rate:             rate,
	}

	if !req.ShouldApply() {
		outcome.Report = domain.NewRecalculationReport(domain.RecalculationRequest{Currency: code, NewRate: rate.RateToLocal})
		return outcome, nil
	}

	report, err := s.engine.Recalculate(ctx, domain.RecalculationRequest{
		Currency:  code,
		NewRate:   rate.RateToLocal,
		Apply:     true,
		Formula:   domain.FormulaMarginOnPrice,
		UpdatedBy: userID,
	})
	if err != nil {
		s.LogError(ctx, err, "Rate recorded but product recalculation failed",
			slog.String("currency", code), slog.String("rate_id", rate.ExchangeRateID))
		return nil, fmt.Errorf("rate %s recorded, recalculation failed: %w", rate.ExchangeRateID, err)
	}
	outcome.Report = report

	stats := report.Statistics(rate.UpdateStatistics.PreviousRate)
	if err := s.rates.AttachStatistics(ctx, rate.ExchangeRateID, stats); err != nil {
		// Products are already repriced; only the statistics are lost.
		s.LogError(ctx, err, "Failed to store update statistics", slog.String("rate_id", rate.ExchangeRateID))
	} else {
		rate.UpdateStatistics = stats
	}

	return outcome, nil
}

func (s *pricingAdminService) SimulateExchangeRate(ctx context.Context, req dto.SimulateExchangeRateRequest) (*domain.RateUpdateOutcome, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Currency))
	if !req.NewRate.IsPositive() {
		return nil, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, req.NewRate.String())
	}

	current, err := s.rates.GetCurrentRate(ctx, code)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.Recalculate(ctx, domain.RecalculationRequest{
		Currency:  code,
		NewRate:   req.NewRate,
		Apply:     false,
		TargetIDs: req.ProductIDs,
		Formula:   req.Formula,
	})
	if err != nil {
		return nil, err
	}

	return &domain.RateUpdateOutcome{
		CurrencyCode:     code,
		NewRate:          req.NewRate,
		PreviousRate:     current.RateToLocal,
		Change:           req.NewRate.Sub(current.RateToLocal),
		ChangePercentage: domain.ChangePercentage(req.NewRate, current.RateToLocal),
		Report:           report,
	}, nil
}
