package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	"github.com/SscSPs/storefront_backoffice/internal/utils/pagination"
)

// cloneProduct detaches the pointer fields so callers never share state with the store.
func cloneProduct(p domain.Product) domain.Product {
	if p.RateUsedAtPurchase != nil {
		rate := *p.RateUsedAtPurchase
		p.RateUsedAtPurchase = &rate
	}
	if p.LastPricingUpdate != nil {
		at := *p.LastPricingUpdate
		p.LastPricingUpdate = &at
	}
	return p
}

// sortedProductsLocked returns every product ordered by (created_at, product_id).
func (s *Store) sortedProductsLocked() []domain.Product {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, cloneProduct(p))
	}
	sort.Slice(out, func(i, j int) bool {
		return pagination.After(out[j].CreatedAt, out[j].ProductID, out[i].CreatedAt, out[i].ProductID)
	})
	return out
}

func (s *Store) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[productID]
	if !ok {
		return nil, apperrors.NewNotFoundError("product " + productID + " not found")
	}
	p = cloneProduct(p)
	return &p, nil
}

// SaveProduct inserts or replaces a product. Product codes are unique.
func (s *Store) SaveProduct(_ context.Context, product domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range s.products {
		if id != product.ProductID && p.Code == product.Code {
			return fmt.Errorf("%w: product code %s", apperrors.ErrDuplicate, product.Code)
		}
	}
	if existing, ok := s.products[product.ProductID]; ok {
		product.CreatedAt = existing.CreatedAt
		product.CreatedBy = existing.CreatedBy
	}
	s.products[product.ProductID] = cloneProduct(product)
	return nil
}

func (s *Store) UpdateProductPricing(_ context.Context, productID string, update domain.PricingUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[productID]
	if !ok {
		return apperrors.NewNotFoundError("product " + productID + " not found")
	}
	rate := update.RateUsedAtPurchase
	at := update.UpdatedAt
	p.SellingPriceLocal = update.SellingPriceLocal
	p.PurchasePriceLocal = update.PurchasePriceLocal
	p.RateUsedAtPurchase = &rate
	p.ProfitAmountLocal = update.ProfitAmountLocal
	p.LastPricingUpdate = &at
	p.LastUpdatedAt = update.UpdatedAt
	p.LastUpdatedBy = update.UpdatedBy
	s.products[productID] = p
	return nil
}

func (s *Store) ListPricingCandidates(_ context.Context, currencyCode string, productIDs []string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var wanted map[string]struct{}
	if len(productIDs) > 0 {
		wanted = make(map[string]struct{}, len(productIDs))
		for _, id := range productIDs {
			wanted[id] = struct{}{}
		}
	}

	out := make([]domain.Product, 0)
	for _, p := range s.sortedProductsLocked() {
		if p.PurchaseCurrency != currencyCode || !p.IsRecalculable() {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[p.ProductID]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) ListProducts(_ context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.RLock()
	all := s.sortedProductsLocked()
	s.mu.RUnlock()

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		start := len(all)
		for i, p := range all {
			if pagination.After(p.CreatedAt, p.ProductID, cursorAt, cursorID) {
				start = i
				break
			}
		}
		all = all[start:]
	}

	var next *string
	if len(all) > limit {
		last := all[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ProductID)
		next = &token
		all = all[:limit]
	}
	return all, next, nil
}
