package handlers

import (
	"fmt"
	"regexp"

	"github.com/SscSPs/storefront_backoffice/internal/utils/accounting"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// RegisterValidators adds the currency_code and tax_category binding rules to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("currency_code", validCurrencyCode); err != nil {
		return fmt.Errorf("register currency_code: %w", err)
	}
	if err := v.RegisterValidation("tax_category", validTaxCategory); err != nil {
		return fmt.Errorf("register tax_category: %w", err)
	}
	return nil
}

func validCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}

func validTaxCategory(fl validator.FieldLevel) bool {
	_, err := accounting.ParseTaxCategory(fl.Field().String())
	return err == nil
}
