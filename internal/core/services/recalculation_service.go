package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/storefront_backoffice/internal/core/ports/services"
	"github.com/SscSPs/storefront_backoffice/internal/utils/accounting"
	"golang.org/x/sync/errgroup"
)

type recalculationService struct {
	BaseService
	productRepo portsrepo.ProductRepositoryFacade
	workers     int
	timeout     time.Duration
	now         func() time.Time
}

// RecalculationOption configures the batch engine.
type RecalculationOption func(*recalculationService)

// WithRecalcWorkers sets the number of workers. One means a single sequential pass.
func WithRecalcWorkers(n int) RecalculationOption {
	return func(s *recalculationService) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithRecalcTimeout bounds a run. Zero means no bound besides the caller's context.
func WithRecalcTimeout(d time.Duration) RecalculationOption {
	return func(s *recalculationService) {
		s.timeout = d
	}
}

// WithRecalcClock replaces time.Now for the written LastPricingUpdate, for tests.
func WithRecalcClock(now func() time.Time) RecalculationOption {
	return func(s *recalculationService) {
		s.now = now
	}
}

// NewRecalculationService creates the batch price recalculation engine.
func NewRecalculationService(productRepo portsrepo.ProductRepositoryFacade, opts ...RecalculationOption) portssvc.RecalculationSvc {
	s := &recalculationService{
		productRepo: productRepo,
		workers:     1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *recalculationService) Recalculate(ctx context.Context, req domain.RecalculationRequest) (*domain.RecalculationReport, error) {
	start := time.Now()
	req.Currency = strings.ToUpper(strings.TrimSpace(req.Currency))
	if req.Currency == "" {
		return nil, fmt.Errorf("%w: currency is required", apperrors.ErrUnknownCurrency)
	}
	if !req.NewRate.IsPositive() {
		return nil, fmt.Errorf("%w: rate %s must be positive", apperrors.ErrInvalidRate, req.NewRate.String())
	}
	if req.Formula == "" {
		req.Formula = domain.FormulaMarginOnPrice
	}
	if req.Formula == domain.FormulaMarkupOnCost && req.Apply {
		return nil, fmt.Errorf("%w: the markup_on_cost formula is only available for simulations", apperrors.ErrValidation)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	logger := s.GetLogger(ctx).With(
		slog.String("currency", req.Currency),
		slog.String("new_rate", req.NewRate.String()),
		slog.Bool("apply", req.Apply),
	)

	products, err := s.productRepo.ListPricingCandidates(ctx, req.Currency, req.TargetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing candidates: %w", err)
	}
	candidates := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.IsRecalculable() && strings.EqualFold(p.PurchaseCurrency, req.Currency) {
			candidates = append(candidates, p)
		}
	}
	logger.Info("Price recalculation started", slog.Int("candidates", len(candidates)), slog.Int("workers", s.workers))

	report := domain.NewRecalculationReport(req)
	report.TotalCandidates = len(candidates)

	workers := min(s.workers, len(candidates))
	if workers <= 1 {
		report.Merge(s.runBatch(ctx, req, candidates))
	} else {
		partials := make([]*domain.RecalculationReport, workers)
		var g errgroup.Group
		g.SetLimit(workers)
		for i, chunk := range splitCandidates(candidates, workers) {
			i, chunk := i, chunk
			g.Go(func() error {
				partials[i] = s.runBatch(ctx, req, chunk)
				return nil
			})
		}
		_ = g.Wait()
		for _, partial := range partials {
			report.Merge(partial)
		}
		sortByCandidateOrder(report, candidates)
	}

	report.DurationMs = time.Since(start).Milliseconds()
	logger.Info("Price recalculation finished",
		slog.Int("updated", report.Updated),
		slog.Int("skipped", report.Skipped),
		slog.Int("increased", report.Increased),
		slog.Int("decreased", report.Decreased),
		slog.Int("unchanged", report.Unchanged),
		slog.Int("errors", len(report.Errors)),
		slog.Bool("partial", report.Partial),
		slog.Int64("duration_ms", report.DurationMs),
	)
	return report, nil
}

// runBatch processes products in order and returns their partial report.
// It stops taking products once ctx is done.
func (s *recalculationService) runBatch(ctx context.Context, req domain.RecalculationRequest, products []domain.Product) *domain.RecalculationReport {
	partial := domain.NewRecalculationReport(req)
	for _, p := range products {
		if ctx.Err() != nil {
			partial.Partial = true
			break
		}
		res, err := s.recalculateOne(ctx, req, p)
		if err != nil {
			if ctx.Err() != nil {
				partial.Partial = true
				break
			}
			s.LogError(ctx, err, "Product recalculation failed",
				slog.String("product_id", p.ProductID),
				slog.String("currency", req.Currency))
			partial.RecordError(domain.ProductError{ProductID: p.ProductID, Name: p.Name, Error: err.Error()})
			continue
		}
		partial.Record(res)
	}
	return partial
}

func (s *recalculationService) recalculateOne(ctx context.Context, req domain.RecalculationRequest, p domain.Product) (domain.ProductRecalculation, error) {
	price, err := accounting.PriceWith(req.Formula, accounting.InputsOf(p), req.NewRate)
	if err != nil {
		return domain.ProductRecalculation{}, err
	}

	oldPrice := p.SellingPriceLocal
	// Classified on the rounded price that gets stored, so 100.4 counts as 100 and is unchanged.
	delta := price.SellingPrice.Sub(oldPrice)
	res := domain.ProductRecalculation{
		ProductID:             p.ProductID,
		Name:                  p.Name,
		Code:                  p.Code,
		OldSellingPrice:       oldPrice,
		NewSellingPrice:       price.SellingPrice,
		PriceChange:           delta,
		PriceChangePercentage: accounting.PercentChange(delta, oldPrice),
		ChangeType:            accounting.ClassifyChange(delta),
		PurchasePriceForeign:  p.PurchasePriceForeign,
		PreviousRate:          *p.RateUsedAtPurchase,
		NewRate:               req.NewRate,
	}
	if !req.Apply {
		return res, nil
	}

	update := domain.PricingUpdate{
		SellingPriceLocal:  price.SellingPrice,
		PurchasePriceLocal: price.PurchasePriceLocal,
		RateUsedAtPurchase: req.NewRate,
		ProfitAmountLocal:  price.ProfitAmount,
		UpdatedAt:          s.now().UTC(),
		UpdatedBy:          req.UpdatedBy,
	}
	if err := s.productRepo.UpdateProductPricing(ctx, p.ProductID, update); err != nil {
		return domain.ProductRecalculation{}, fmt.Errorf("%w: %v", apperrors.ErrProductWriteFailed, err)
	}
	res.Applied = true
	return res, nil
}

// splitCandidates cuts products into n contiguous, disjoint chunks.
func splitCandidates(products []domain.Product, n int) [][]domain.Product {
	chunks := make([][]domain.Product, 0, n)
	size := (len(products) + n - 1) / n
	for start := 0; start < len(products); start += size {
		end := min(start+size, len(products))
		chunks = append(chunks, products[start:end])
	}
	return chunks
}

func sortByCandidateOrder(report *domain.RecalculationReport, candidates []domain.Product) {
	position := make(map[string]int, len(candidates))
	for i, p := range candidates {
		position[p.ProductID] = i
	}
	sort.SliceStable(report.Products, func(i, j int) bool {
		return position[report.Products[i].ProductID] < position[report.Products[j].ProductID]
	})
	sort.SliceStable(report.Errors, func(i, j int) bool {
		return position[report.Errors[i].ProductID] < position[report.Errors[j].ProductID]
	})
}
