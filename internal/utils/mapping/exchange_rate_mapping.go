package mapping

import (
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	st := d.UpdateStatistics
	return models.ExchangeRate{
		ExchangeRateID:     d.ExchangeRateID,
		CurrencyCode:       d.CurrencyCode,
		RateToLocal:        d.RateToLocal,
		EffectiveDate:      d.EffectiveDate,
		Source:             string(d.Source),
		IsActive:           d.IsActive,
		Notes:              d.Notes,
		PreviousRate:       st.PreviousRate,
		AffectedProducts:   st.AffectedProducts,
		PriceIncreaseCount: st.PriceIncreaseCount,
		PriceDecreaseCount: st.PriceDecreaseCount,
		TotalPriceChange:   st.TotalPriceChange,
		AveragePriceChange: st.AveragePriceChange,
		UpdateDurationMs:   st.UpdateDurationMs,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID: m.ExchangeRateID,
		CurrencyCode:   m.CurrencyCode,
		RateToLocal:    m.RateToLocal,
		EffectiveDate:  m.EffectiveDate,
		Source:         domain.RateSource(m.Source),
		IsActive:       m.IsActive,
		Notes:          m.Notes,
		UpdateStatistics: domain.UpdateStatistics{
			PreviousRate:       m.PreviousRate,
			AffectedProducts:   m.AffectedProducts,
			PriceIncreaseCount: m.PriceIncreaseCount,
			PriceDecreaseCount: m.PriceDecreaseCount,
			TotalPriceChange:   m.TotalPriceChange,
			AveragePriceChange: m.AveragePriceChange,
			UpdateDurationMs:   m.UpdateDurationMs,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts a slice of model rates to domain rates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
