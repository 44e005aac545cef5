package models

// Currency represents a row of the currencies table.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	PluralName   string `json:"pluralName"`
	Precision    int    `json:"precision"`
	IsLocal      bool   `json:"isLocal"`
	AuditFields
}
