// Package terms resolves payment-terms codes into due dates.
package terms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
)

// DefaultNetDays is applied when terms cannot be resolved.
const DefaultNetDays = 30

var customPattern = regexp.MustCompile(`(?i)(\d+)\s*(días?|dias?|days?|meses?|months?)`)

var netDays = map[domain.PaymentTerms]int{
	domain.TermsNet15: 15,
	domain.TermsNet30: 30,
	domain.TermsNet60: 60,
	domain.TermsNet90: 90,
}

// ParseTerms normalizes a terms code, accepting the legacy Spanish and snake_case spellings.
func ParseTerms(code string) (domain.PaymentTerms, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "immediate", "efectivo", "cash", "contado":
		return domain.TermsImmediate, true
	case "net15", "net_15":
		return domain.TermsNet15, true
	case "net30", "net_30":
		return domain.TermsNet30, true
	case "net60", "net_60":
		return domain.TermsNet60, true
	case "net90", "net_90":
		return domain.TermsNet90, true
	case "custom", "personalizado":
		return domain.TermsCustom, true
	}
	return "", false
}

// DueDate maps a sale date and terms code to the payment due date.
// Unknown codes and unparseable custom text fall back to DefaultNetDays.
func DueDate(saleDate time.Time, code string, customText string) time.Time {
	due, err := DueDateStrict(saleDate, code, customText)
	if err != nil {
		return saleDate.AddDate(0, 0, DefaultNetDays)
	}
	return due
}

// DueDateStrict is DueDate without the fallback.
func DueDateStrict(saleDate time.Time, code string, customText string) (time.Time, error) {
	terms, ok := ParseTerms(code)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownPaymentTerms, code)
	}
	switch terms {
	case domain.TermsImmediate:
		return saleDate, nil
	case domain.TermsCustom:
		return customDueDate(saleDate, customText)
	}
	return saleDate.AddDate(0, 0, netDays[terms]), nil
}

func customDueDate(saleDate time.Time, text string) (time.Time, error) {
	m := customPattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCustomTerms, text)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidCustomTerms, text)
	}
	unit := strings.ToLower(m[2])
	if strings.HasPrefix(unit, "mes") || strings.HasPrefix(unit, "month") {
		return saleDate.AddDate(0, n, 0), nil
	}
	return saleDate.AddDate(0, 0, n), nil
}
