package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/storefront_backoffice/internal/models"
	"github.com/SscSPs/storefront_backoffice/internal/utils/mapping"
	"github.com/SscSPs/storefront_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `product_id, name, code, purchase_currency, purchase_price_foreign, purchase_price_local,
	rate_used_at_purchase, financing_rate_percent, delivery_cost_local, profit_margin_percent,
	selling_price_local, profit_amount_local, last_pricing_update,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxProductRepository reads and writes the pricing columns of the products table.
type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(db *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.Code,
		&m.PurchaseCurrency,
		&m.PurchasePriceForeign,
		&m.PurchasePriceLocal,
		&m.RateUsedAtPurchase,
		&m.FinancingRatePercent,
		&m.DeliveryCostLocal,
		&m.ProfitMarginPercent,
		&m.SellingPriceLocal,
		&m.ProfitAmountLocal,
		&m.LastPricingUpdate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func collectProducts(rows pgx.Rows) ([]models.Product, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		return scanProduct(row)
	})
}

// FindProductByID retrieves a product by its ID.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`

	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product " + productID + " not found")
		}
		return nil, fmt.Errorf("failed to find product %s: %w", productID, err)
	}
	product := mapping.ToDomainProduct(m)
	return &product, nil
}

// SaveProduct inserts a product or replaces every column of an existing one except its creation audit.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			code = EXCLUDED.code,
			purchase_currency = EXCLUDED.purchase_currency,
			purchase_price_foreign = EXCLUDED.purchase_price_foreign,
			purchase_price_local = EXCLUDED.purchase_price_local,
			rate_used_at_purchase = EXCLUDED.rate_used_at_purchase,
			financing_rate_percent = EXCLUDED.financing_rate_percent,
			delivery_cost_local = EXCLUDED.delivery_cost_local,
			profit_margin_percent = EXCLUDED.profit_margin_percent,
			selling_price_local = EXCLUDED.selling_price_local,
			profit_amount_local = EXCLUDED.profit_amount_local,
			last_pricing_update = EXCLUDED.last_pricing_update,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID, m.Name, m.Code, m.PurchaseCurrency, m.PurchasePriceForeign, m.PurchasePriceLocal,
		m.RateUsedAtPurchase, m.FinancingRatePercent, m.DeliveryCostLocal, m.ProfitMarginPercent,
		m.SellingPriceLocal, m.ProfitAmountLocal, m.LastPricingUpdate,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product code %s", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// UpdateProductPricing overwrites the derived pricing columns of one product.
func (r *PgxProductRepository) UpdateProductPricing(ctx context.Context, productID string, update domain.PricingUpdate) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE products
		SET selling_price_local = $2, purchase_price_local = $3, rate_used_at_purchase = $4,
			profit_amount_local = $5, last_pricing_update = $6, last_updated_at = $6, last_updated_by = $7
		WHERE product_id = $1;`,
		productID, update.SellingPriceLocal, update.PurchasePriceLocal, update.RateUsedAtPurchase,
		update.ProfitAmountLocal, update.UpdatedAt, update.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update pricing of product %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("product " + productID + " not found")
	}
	return nil
}

// ListPricingCandidates returns the recalculable products of a currency ordered by creation.
func (r *PgxProductRepository) ListPricingCandidates(ctx context.Context, currencyCode string, productIDs []string) ([]domain.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE purchase_currency = $1
		  AND purchase_price_foreign > 0
		  AND rate_used_at_purchase IS NOT NULL`
	args := []any{currencyCode}
	if len(productIDs) > 0 {
		query += ` AND product_id = ANY($2)`
		args = append(args, productIDs)
	}
	query += ` ORDER BY created_at, product_id;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query pricing candidates for %s: %w", currencyCode, err)
	}
	defer rows.Close()

	ms, err := collectProducts(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pricing candidates for %s: %w", currencyCode, err)
	}
	return mapping.ToDomainProductSlice(ms), nil
}

// ListProducts pages through products by (created_at, product_id).
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, nextToken *string) ([]domain.Product, *string, error) {
	if limit <= 0 {
		limit = 50
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	query := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` WHERE (created_at, product_id) > ($1, $2)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += ` ORDER BY created_at, product_id LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	ms, err := collectProducts(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan products: %w", err)
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ProductID)
		next = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainProductSlice(ms), next, nil
}
