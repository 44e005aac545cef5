package domain

import (
	"github.com/shopspring/decimal"
)

// ChangeType classifies the effect of a recalculation on one product's selling price.
type ChangeType string

const (
	ChangeIncrease  ChangeType = "increase"
	ChangeDecrease  ChangeType = "decrease"
	ChangeUnchanged ChangeType = "unchanged"
)

// PricingFormula names the formula used to derive a selling price.
type PricingFormula string

const (
	// FormulaMarginOnPrice is the canonical formula used by every persisted write.
	FormulaMarginOnPrice PricingFormula = "margin_on_price"
	// FormulaMarkupOnCost is the legacy simulation formula, accepted only when nothing is written.
	FormulaMarkupOnCost PricingFormula = "markup_on_cost"
)

// RecalculationRequest drives one run of the batch recalculation engine.
type RecalculationRequest struct {
	Currency  string
	NewRate   decimal.Decimal
	Apply     bool
	TargetIDs []string
	Formula   PricingFormula
	UpdatedBy string
}

// ProductRecalculation is the per-product outcome of a run.
type ProductRecalculation struct {
	ProductID             string          `json:"productID"`
	Name                  string          `json:"name"`
	Code                  string          `json:"code"`
	OldSellingPrice       decimal.Decimal `json:"oldSellingPrice"`
	NewSellingPrice       decimal.Decimal `json:"newSellingPrice"`
	PriceChange           decimal.Decimal `json:"priceChange"`
	PriceChangePercentage decimal.Decimal `json:"priceChangePercentage"`
	ChangeType            ChangeType      `json:"changeType"`
	PurchasePriceForeign  decimal.Decimal `json:"purchasePriceForeign"`
	PreviousRate          decimal.Decimal `json:"previousRate"`
	NewRate               decimal.Decimal `json:"newRate"`
	Applied               bool            `json:"applied"`
}

// ProductError records a product that could not be recalculated or written.
type ProductError struct {
	ProductID string `json:"productID"`
	Name      string `json:"name"`
	Error     string `json:"error"`
}

// RecalculationReport aggregates one run of the engine. It is never persisted directly.
type RecalculationReport struct {
	Currency            string                 `json:"currency"`
	NewRate             decimal.Decimal        `json:"newRate"`
	Applied             bool                   `json:"applied"`
	Formula             PricingFormula         `json:"formula"`
	TotalCandidates     int                    `json:"totalCandidates"`
	Updated             int                    `json:"updated"`
	Skipped             int                    `json:"skipped"`
	Increased           int                    `json:"increased"`
	Decreased           int                    `json:"decreased"`
	Unchanged           int                    `json:"unchanged"`
	Changed             int                    `json:"changed"` // products whose delta was not zero
	TotalAbsoluteChange decimal.Decimal        `json:"totalAbsoluteChange"`
	AverageChange       decimal.Decimal        `json:"averageChange"`
	DurationMs          int64                  `json:"durationMs"`
	Partial             bool                   `json:"partial"`
	Products            []ProductRecalculation `json:"products"`
	Errors              []ProductError         `json:"errors"`
}

// NewRecalculationReport returns an empty report with non-nil slices.
func NewRecalculationReport(req RecalculationRequest) *RecalculationReport {
	return &RecalculationReport{
		Currency: req.Currency,
		NewRate:  req.NewRate,
		Applied:  req.Apply,
		Formula:  req.Formula,
		Products: []ProductRecalculation{},
		Errors:   []ProductError{},
	}
}

// Record adds one product outcome to the counters.
func (r *RecalculationReport) Record(res ProductRecalculation) {
	switch res.ChangeType {
	case ChangeIncrease:
		r.Increased++
	case ChangeDecrease:
		r.Decreased++
	default:
		r.Unchanged++
	}
	if !res.PriceChange.IsZero() {
		r.TotalAbsoluteChange = r.TotalAbsoluteChange.Add(res.PriceChange.Abs())
		r.Changed++
	}
	if res.Applied {
		r.Updated++
	} else if !r.Applied {
		r.Skipped++
	}
	r.Products = append(r.Products, res)
	r.recomputeAverage()
}

// RecordError adds a failed product.
func (r *RecalculationReport) RecordError(e ProductError) {
	r.Errors = append(r.Errors, e)
}

// Merge folds other into r. Counts and sums add; the average is recomputed from the merged
// sums, so merging is associative and commutative up to the order of Products and Errors.
func (r *RecalculationReport) Merge(other *RecalculationReport) {
	if other == nil {
		return
	}
	r.TotalCandidates += other.TotalCandidates
	r.Updated += other.Updated
	r.Skipped += other.Skipped
	r.Increased += other.Increased
	r.Decreased += other.Decreased
	r.Unchanged += other.Unchanged
	r.Changed += other.Changed
	r.TotalAbsoluteChange = r.TotalAbsoluteChange.Add(other.TotalAbsoluteChange)
	r.Partial = r.Partial || other.Partial
	r.Products = append(r.Products, other.Products...)
	r.Errors = append(r.Errors, other.Errors...)
	r.recomputeAverage()
}

// Processed is the number of candidates that produced either a result or an error.
func (r *RecalculationReport) Processed() int {
	return len(r.Products) + len(r.Errors)
}

// Statistics projects the report onto the fields stored with the triggering rate.
func (r *RecalculationReport) Statistics(previousRate decimal.Decimal) UpdateStatistics {
	return UpdateStatistics{
		PreviousRate:       previousRate,
		AffectedProducts:   r.Updated,
		PriceIncreaseCount: r.Increased,
		PriceDecreaseCount: r.Decreased,
		TotalPriceChange:   r.TotalAbsoluteChange,
		AveragePriceChange: r.AverageChange,
		UpdateDurationMs:   r.DurationMs,
	}
}

func (r *RecalculationReport) recomputeAverage() {
	if r.Changed == 0 {
		r.AverageChange = decimal.Zero
		return
	}
	r.AverageChange = r.TotalAbsoluteChange.Div(decimal.NewFromInt(int64(r.Changed)))
}
