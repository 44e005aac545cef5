package terms_test

import (
	"testing"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/utils/terms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var saleDate = time.Date(2025, time.January, 31, 10, 0, 0, 0, time.UTC)

func TestDueDate(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		custom string
		want   time.Time
	}{
		{"immediate", "immediate", "", saleDate},
		{"legacy cash alias", "efectivo", "", saleDate},
		{"net15", "net15", "", saleDate.AddDate(0, 0, 15)},
		{"net15 snake case", "net_15", "", saleDate.AddDate(0, 0, 15)},
		{"net30", "net30", "", saleDate.AddDate(0, 0, 30)},
		{"net60", "NET60", "", saleDate.AddDate(0, 0, 60)},
		{"net90", "net90", "", saleDate.AddDate(0, 0, 90)},
		{"custom days", "custom", "45 días", saleDate.AddDate(0, 0, 45)},
		{"custom days without accent", "personalizado", "pago a 10 dias", saleDate.AddDate(0, 0, 10)},
		{"custom english days", "custom", "20 days", saleDate.AddDate(0, 0, 20)},
		{"custom months", "custom", "2 meses", saleDate.AddDate(0, 2, 0)},
		{"custom single month", "custom", "1 month", saleDate.AddDate(0, 1, 0)},
		{"custom unparseable falls back", "custom", "cuando pueda", saleDate.AddDate(0, 0, 30)},
		{"unknown code falls back", "someday", "", saleDate.AddDate(0, 0, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, terms.DueDate(saleDate, tt.code, tt.custom))
		})
	}
}

func TestDueDate_NeverBeforeSaleDate(t *testing.T) {
	for _, code := range []string{"immediate", "net15", "net30", "net60", "net90", "custom", "bogus"} {
		assert.False(t, terms.DueDate(saleDate, code, "3 meses").Before(saleDate), code)
	}
}

func TestDueDateStrict_Errors(t *testing.T) {
	_, err := terms.DueDateStrict(saleDate, "someday", "")
	assert.ErrorIs(t, err, apperrors.ErrUnknownPaymentTerms)

	_, err = terms.DueDateStrict(saleDate, "custom", "whenever")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCustomTerms)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseTerms(t *testing.T) {
	got, ok := terms.ParseTerms(" Personalizado ")
	require.True(t, ok)
	assert.Equal(t, domain.TermsCustom, got)

	_, ok = terms.ParseTerms("")
	assert.False(t, ok)
}
