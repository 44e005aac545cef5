package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
)

type currencyService struct {
	BaseService
	currencyRepo  portsrepo.CurrencyRepositoryFacade
	localCurrency string
}

// NewCurrencyService creates the currency catalog service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, localCurrency string) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo, localCurrency: strings.ToUpper(localCurrency)}
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(req.CurrencyCode)
	if req.IsLocal != (code == s.localCurrency) {
		return nil, fmt.Errorf("%w: only %s can be the local currency", apperrors.ErrValidation, s.localCurrency)
	}

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency %s: %w", code, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, code)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		PluralName:   req.PluralName,
		Precision:    req.Precision,
		IsLocal:      req.IsLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(currencyCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}
