package services

import (
	"context"

	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
)

// SaleSvc builds sale documents and exposes the document utilities.
type SaleSvc interface {
	// QuoteSale prices a sale. Persisting it is up to the caller.
	QuoteSale(ctx context.Context, req dto.QuoteSaleRequest, userID string) (*domain.Sale, error)

	CalculateTax(ctx context.Context, req dto.TaxRequest) (*domain.TaxCalculation, error)
	AmountInWords(ctx context.Context, req dto.AmountInWordsRequest) (string, error)
	DueDate(ctx context.Context, req dto.DueDateRequest) (*dto.DueDateResponse, error)
}
