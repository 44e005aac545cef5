package words_test

import (
	"testing"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/utils/words"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		want     string
	}{
		{"zero", 0, "PYG", "Cero guaraníes"},
		{"single unit", 1, "PYG", "Uno guaraníes"},
		{"teen", 16, "PYG", "Dieciséis guaraníes"},
		{"tens with units", 21, "PYG", "Veinte y uno guaraníes"},
		{"round hundred", 100, "PYG", "Ciento guaraníes"},
		{"hundreds", 345, "PYG", "Trescientos cuarenta y cinco guaraníes"},
		{"one thousand", 1000, "PYG", "Mil guaraníes"},
		{"thousands", 7300, "PYG", "Siete mil trescientos guaraníes"},
		{"one million", 1_000_000, "PYG", "Un millón guaraníes"},
		{"millions with rest", 2_500_010, "PYG", "Dos millones quinientos mil diez guaraníes"},
		{"one billion", 1_000_000_000, "PYG", "Mil millones guaraníes"},
		{"billions", 3_000_000_001, "PYG", "Tres mil millones uno guaraníes"},
		{"dollars", 150, "USD", "Ciento cincuenta dólares estadounidenses"},
		{"lowercase code", 2, "eur", "Dos euros"},
		{"unknown currency uses local name", 5, "XYZ", "Cinco guaraníes"},
		{"negative", -40, "PYG", "Menos cuarenta guaraníes"},
		{"out of range falls back to digits", 1_000_000_000_000, "PYG", "1000000000000 guaraníes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, words.ToWords(tt.amount, tt.currency))
		})
	}
}

func TestToWordsStrict(t *testing.T) {
	got, err := words.ToWordsStrict(1_000_000, "PYG")
	require.NoError(t, err)
	assert.Equal(t, "Un millón guaraníes", got)

	got, err = words.ToWordsStrict(2_001_000_000, "PYG")
	require.NoError(t, err)
	assert.Equal(t, "Dos mil millones un millón guaraníes", got)

	_, err = words.ToWordsStrict(-1, "PYG")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = words.ToWordsStrict(words.MaxAmount+1, "PYG")
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = words.ToWordsStrict(10, "XYZ")
	assert.ErrorIs(t, err, apperrors.ErrUnknownCurrency)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestSpeller_CatalogNames(t *testing.T) {
	s := words.NewSpeller("PYG", map[string]string{"brl": "reales brasileños", "CLP": "pesos chilenos"})

	assert.Equal(t, "Diez reales brasileños", s.ToWords(10, "BRL"))
	assert.Equal(t, "Diez pesos chilenos", s.ToWords(10, "CLP"))
	assert.True(t, s.HasCurrency("clp"))
	assert.False(t, s.HasCurrency("JPY"))
}
