package accounting_test

import (
	"testing"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeTax_Gross(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		category domain.TaxCategory
		base     string
		tax      string
	}{
		{"standard", "1100", domain.TaxStandard, "1000", "100"},
		{"reduced", "1050", domain.TaxReduced, "1000", "50"},
		{"exempt", "1000", domain.TaxExempt, "1000", "0"},
		{"standard rounds half up", "105", domain.TaxStandard, "95", "10"},
		{"zero", "0", domain.TaxStandard, "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounting.ComputeTax(dec(tt.amount), tt.category, true)
			require.NoError(t, err)
			assert.True(t, dec(tt.base).Equal(got.BaseAmount), "base %s", got.BaseAmount)
			assert.True(t, dec(tt.tax).Equal(got.TaxAmount), "tax %s", got.TaxAmount)
			assert.True(t, dec(tt.amount).Equal(got.TotalAmount))
		})
	}
}

func TestComputeTax_Net(t *testing.T) {
	got, err := accounting.ComputeTax(dec("1000"), domain.TaxStandard, false)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(got.TaxAmount))
	assert.True(t, dec("1100").Equal(got.TotalAmount))
	assert.True(t, dec("10").Equal(got.TaxRatePercent))

	got, err = accounting.ComputeTax(dec("1000"), domain.TaxReduced, false)
	require.NoError(t, err)
	assert.True(t, dec("50").Equal(got.TaxAmount))
	assert.True(t, dec("1050").Equal(got.TotalAmount))
}

func TestComputeTax_BasePlusTaxIsGross(t *testing.T) {
	for _, category := range []domain.TaxCategory{domain.TaxExempt, domain.TaxReduced, domain.TaxStandard} {
		for amount := int64(0); amount <= 5000; amount += 37 {
			got, err := accounting.ComputeTax(decimal.NewFromInt(amount), category, true)
			require.NoError(t, err)
			assert.True(t, got.BaseAmount.Add(got.TaxAmount).Equal(decimal.NewFromInt(amount)), "%s %d", category, amount)
			assert.False(t, got.TaxAmount.IsNegative())
		}
	}
}

func TestComputeTax_Errors(t *testing.T) {
	_, err := accounting.ComputeTax(dec("-1"), domain.TaxStandard, true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = accounting.ComputeTax(dec("1000.5"), domain.TaxStandard, true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	got, err := accounting.ComputeTax(dec("1100.00"), domain.TaxStandard, true)
	require.NoError(t, err)
	assert.True(t, got.BaseAmount.Equal(dec("1000")))

	_, err = accounting.ComputeTax(dec("100"), domain.TaxCategory("luxury"), true)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTaxCategory)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestParseTaxCategory(t *testing.T) {
	tests := map[string]domain.TaxCategory{
		"exempt":   domain.TaxExempt,
		"EXENTA":   domain.TaxExempt,
		"iva_5":    domain.TaxReduced,
		"reduced":  domain.TaxReduced,
		" iva10 ":  domain.TaxStandard,
		"standard": domain.TaxStandard,
	}
	for in, want := range tests {
		got, err := accounting.ParseTaxCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := accounting.ParseTaxCategory("iva_22")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTaxCategory)
}
