package domain

// Currency represents a supported currency in the domain.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	PluralName   string `json:"pluralName"`   // e.g., "dólares estadounidenses", used for amounts in words
	Precision    int    `json:"precision"`    // Decimal places; 0 for the local currency
	IsLocal      bool   `json:"isLocal"`
	AuditFields
}
