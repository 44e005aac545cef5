package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/storefront_backoffice/internal/apperrors"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/storefront_backoffice/internal/models"
	"github.com/SscSPs/storefront_backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const exchangeRateColumns = `exchange_rate_id, currency_code, rate_to_local, effective_date, source, is_active, notes,
	previous_rate, affected_products, price_increase_count, price_decrease_count,
	total_price_change, average_price_change, update_duration_ms,
	created_at, created_by, last_updated_at, last_updated_by`

// PgxExchangeRateRepository implements the append-only rate ledger using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID,
		&m.CurrencyCode,
		&m.RateToLocal,
		&m.EffectiveDate,
		&m.Source,
		&m.IsActive,
		&m.Notes,
		&m.PreviousRate,
		&m.AffectedProducts,
		&m.PriceIncreaseCount,
		&m.PriceDecreaseCount,
		&m.TotalPriceChange,
		&m.AveragePriceChange,
		&m.UpdateDurationMs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindActiveRate returns the single active record of a currency.
func (r *PgxExchangeRateRepository) FindActiveRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE currency_code = $1 AND is_active LIMIT 1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, currencyCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLedgerNotFound
		}
		return nil, fmt.Errorf("failed to find active rate for %s: %w", currencyCode, err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// FindExchangeRateByID retrieves an exchange rate by its ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`

	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
		}
		return nil, fmt.Errorf("failed to find exchange rate %s: %w", rateID, err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListRatesSince returns the records of a currency created at or after since, most recent first.
func (r *PgxExchangeRateRepository) ListRatesSince(ctx context.Context, currencyCode string, since time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE currency_code = $1 AND created_at >= $2
		ORDER BY created_at DESC, exchange_rate_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, currencyCode, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate history for %s: %w", currencyCode, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan rate history for %s: %w", currencyCode, err)
	}
	return mapping.ToDomainExchangeRateSlice(ms), nil
}

// ActivateExchangeRate inserts rate as the active record of its currency and deactivates the
// previous one in a single transaction. Concurrent activations of one currency are serialized
// by a transaction-scoped advisory lock; the partial unique index on is_active backs it up.
func (r *PgxExchangeRateRepository) ActivateExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, rate.CurrencyCode); err != nil {
		return nil, fmt.Errorf("failed to lock rate ledger for %s: %w", rate.CurrencyCode, err)
	}

	var previous decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT rate_to_local FROM exchange_rates WHERE currency_code = $1 AND is_active LIMIT 1;`,
		rate.CurrencyCode,
	).Scan(&previous)
	switch {
	case err == nil:
		rate.UpdateStatistics.PreviousRate = previous
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return nil, fmt.Errorf("failed to read active rate for %s: %w", rate.CurrencyCode, err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE exchange_rates
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE currency_code = $1 AND is_active;`,
		rate.CurrencyCode, rate.CreatedAt, rate.CreatedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to deactivate rates for %s: %w", rate.CurrencyCode, err)
	}

	m := mapping.ToModelExchangeRate(rate)
	_, err = tx.Exec(ctx, `
		INSERT INTO exchange_rates (`+exchangeRateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`,
		m.ExchangeRateID, m.CurrencyCode, m.RateToLocal, m.EffectiveDate, m.Source, m.IsActive, m.Notes,
		m.PreviousRate, m.AffectedProducts, m.PriceIncreaseCount, m.PriceDecreaseCount,
		m.TotalPriceChange, m.AveragePriceChange, m.UpdateDurationMs,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: exchange rate %s", apperrors.ErrDuplicate, m.ExchangeRateID)
		}
		return nil, fmt.Errorf("failed to insert exchange rate for %s: %w", rate.CurrencyCode, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &rate, nil
}

// UpdateRateStatistics overwrites the statistics columns of one record.
func (r *PgxExchangeRateRepository) UpdateRateStatistics(ctx context.Context, rateID string, stats domain.UpdateStatistics) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE exchange_rates
		SET previous_rate = $2, affected_products = $3, price_increase_count = $4, price_decrease_count = $5,
			total_price_change = $6, average_price_change = $7, update_duration_ms = $8, last_updated_at = NOW()
		WHERE exchange_rate_id = $1;`,
		rateID, stats.PreviousRate, stats.AffectedProducts, stats.PriceIncreaseCount, stats.PriceDecreaseCount,
		stats.TotalPriceChange, stats.AveragePriceChange, stats.UpdateDurationMs,
	)
	if err != nil {
		return fmt.Errorf("failed to update statistics of rate %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("exchange rate " + rateID + " not found")
	}
	return nil
}
