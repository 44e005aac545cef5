// Package words spells monetary amounts out in Spanish for printed sale documents.
package words

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount that can be spelled out (999 999 999 999).
const MaxAmount int64 = 999_999_999_999

var (
	units    = [...]string{"", "uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve"}
	teens    = [...]string{"diez", "once", "doce", "trece", "catorce", "quince", "dieciséis", "diecisiete", "dieciocho", "diecinueve"}
	tens     = [...]string{"", "", "veinte", "treinta", "cuarenta", "cincuenta", "sesenta", "setenta", "ochenta", "noventa"}
	hundreds = [...]string{"", "ciento", "doscientos", "trescientos", "cuatrocientos", "quinientos", "seiscientos", "setecientos", "ochocientos", "novecientos"}
)

// DefaultNames holds the plural currency names known without a catalog.
func DefaultNames() map[string]string {
	return map[string]string{
		"PYG": "guaraníes",
		"USD": "dólares estadounidenses",
		"EUR": "euros",
		"BRL": "reales",
		"ARS": "pesos argentinos",
	}
}

// Speller renders amounts followed by a currency's plural name.
type Speller struct {
	names         map[string]string
	localCurrency string
}

// NewSpeller builds a speller. Unknown currencies render with localCurrency's name.
func NewSpeller(localCurrency string, names map[string]string) *Speller {
	s := &Speller{names: DefaultNames(), localCurrency: strings.ToUpper(localCurrency)}
	for code, name := range names {
		if name != "" {
			s.names[strings.ToUpper(code)] = name
		}
	}
	if _, ok := s.names[s.localCurrency]; !ok {
		s.localCurrency = "PYG"
	}
	return s
}

var defaultSpeller = NewSpeller("PYG", nil)

// ToWords spells amount with the default currency names.
func ToWords(amount int64, currency string) string {
	return defaultSpeller.ToWords(amount, currency)
}

// ToWordsStrict spells amount with the default currency names, rejecting unknown currencies.
func ToWordsStrict(amount int64, currency string) (string, error) {
	return defaultSpeller.ToWordsStrict(amount, currency)
}

// ToWords spells amount, falling back to the local currency name for unknown codes.
// Negative amounts are prefixed with "menos"; amounts past MaxAmount are written in digits.
func (s *Speller) ToWords(amount int64, currency string) string {
	name := s.name(currency)
	if amount < -MaxAmount || amount > MaxAmount {
		return strconv.FormatInt(amount, 10) + " " + name
	}
	text := spell(abs(amount))
	if amount < 0 {
		text = "menos " + text
	}
	return capitalize(text) + " " + name
}

// ToWordsDecimal spells the integer part of amount. Amounts past MaxAmount, including
// those beyond int64, are written in digits.
func (s *Speller) ToWordsDecimal(amount decimal.Decimal, currency string) string {
	whole := amount.Truncate(0)
	if whole.Abs().GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return whole.String() + " " + s.name(currency)
	}
	return s.ToWords(whole.IntPart(), currency)
}

func (s *Speller) name(currency string) string {
	if name, ok := s.names[strings.ToUpper(currency)]; ok {
		return name
	}
	return s.names[s.localCurrency]
}

// ToWordsStrict is ToWords without the lenient branches.
func (s *Speller) ToWordsStrict(amount int64, currency string) (string, error) {
	if _, ok := s.names[strings.ToUpper(currency)]; !ok {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownCurrency, currency)
	}
	if amount < 0 || amount > MaxAmount {
		return "", fmt.Errorf("%w: %d is outside 0..%d", apperrors.ErrInvalidAmount, amount, MaxAmount)
	}
	return s.ToWords(amount, currency), nil
}

// HasCurrency reports whether the speller knows currency's name.
func (s *Speller) HasCurrency(currency string) bool {
	_, ok := s.names[strings.ToUpper(currency)]
	return ok
}

func spell(n int64) string {
	if n == 0 {
		return "cero"
	}
	return billions(n)
}

func billions(n int64) string {
	if n < 1_000_000_000 {
		return millions(n)
	}
	count, rest := n/1_000_000_000, n%1_000_000_000
	var out string
	if count == 1 {
		out = "mil millones"
	} else {
		out = belowThousand(count) + " mil millones"
	}
	if rest > 0 {
		out += " " + millions(rest)
	}
	return out
}

func millions(n int64) string {
	if n < 1_000_000 {
		return thousands(n)
	}
	count, rest := n/1_000_000, n%1_000_000
	var out string
	if count == 1 {
		out = "un millón"
	} else {
		out = belowThousand(count) + " millones"
	}
	if rest > 0 {
		out += " " + thousands(rest)
	}
	return out
}

func thousands(n int64) string {
	if n < 1000 {
		return belowThousand(n)
	}
	count, rest := n/1000, n%1000
	var out string
	if count == 1 {
		out = "mil"
	} else {
		out = belowThousand(count) + " mil"
	}
	if rest > 0 {
		out += " " + belowThousand(rest)
	}
	return out
}

func belowThousand(n int64) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return units[n]
	case n < 20:
		return teens[n-10]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + " y " + units[n%10]
	}
	out := hundreds[n/100]
	if rest := n % 100; rest > 0 {
		out += " " + belowThousand(rest)
	}
	return out
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
