package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SscSPs/storefront_backoffice/internal/adapters/database/memory"
	"github.com/SscSPs/storefront_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/storefront_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/storefront_backoffice/internal/core/services"
	"github.com/SscSPs/storefront_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pausingRateRepo holds the first FindActiveRate call after it has read the store
// until release is closed.
type pausingRateRepo struct {
	portsrepo.ExchangeRateRepositoryFacade
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (r *pausingRateRepo) FindActiveRate(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	rate, err := r.ExchangeRateRepositoryFacade.FindActiveRate(ctx, currencyCode)
	r.once.Do(func() {
		close(r.loaded)
		<-r.release
	})
	return rate, err
}

func TestGetCurrentRate_SlowReadDoesNotOverwriteNewerRate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSeededStore("PYG")
	_, err := store.ActivateExchangeRate(ctx, domain.ExchangeRate{
		ExchangeRateID: "usd-7000",
		CurrencyCode:   "USD",
		RateToLocal:    decimal.NewFromInt(7000),
		Source:         domain.RateSourceManual,
		IsActive:       true,
	})
	require.NoError(t, err)

	repo := &pausingRateRepo{ExchangeRateRepositoryFacade: store, loaded: make(chan struct{}), release: make(chan struct{})}
	ledger := services.NewExchangeRateService(repo, services.WithLocalCurrency("PYG"))

	done := make(chan *domain.ExchangeRate)
	go func() {
		rate, _ := ledger.GetCurrentRate(ctx, "USD")
		done <- rate
	}()

	<-repo.loaded
	recorded, err := ledger.RecordNewRate(ctx, dto.CreateExchangeRateRequest{CurrencyCode: "USD", Rate: decimal.NewFromInt(7500)}, "ops")
	require.NoError(t, err)
	close(repo.release)

	slow := <-done
	require.NotNil(t, slow)
	assert.True(t, slow.RateToLocal.Equal(decimal.NewFromInt(7000)))

	current, err := ledger.GetCurrentRate(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, recorded.ExchangeRateID, current.ExchangeRateID)
	assert.True(t, current.RateToLocal.Equal(decimal.NewFromInt(7500)), "got %s", current.RateToLocal)

	active, err := store.FindActiveRate(ctx, "USD")
	require.NoError(t, err)
	assert.Equal(t, active.ExchangeRateID, current.ExchangeRateID)
}

func TestGetHistory_FirstRecordHasNoChange(t *testing.T) {
	ctx := context.Background()
	ledger := services.NewExchangeRateService(memory.NewSeededStore("PYG"), services.WithLocalCurrency("PYG"))

	first, err := ledger.RecordNewRate(ctx, dto.CreateExchangeRateRequest{CurrencyCode: "USD", Rate: decimal.NewFromInt(7500)}, "ops")
	require.NoError(t, err)
	assert.True(t, first.UpdateStatistics.PreviousRate.IsZero())

	history, err := ledger.GetHistory(ctx, "USD", 9999)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Change.IsZero(), "got %s", history[0].Change)
	assert.True(t, history[0].ChangePercentage.IsZero())

	_, err = ledger.RecordNewRate(ctx, dto.CreateExchangeRateRequest{CurrencyCode: "USD", Rate: decimal.NewFromInt(7650)}, "ops")
	require.NoError(t, err)

	history, err = ledger.GetHistory(ctx, "USD", 9999)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Change.Equal(decimal.NewFromInt(150)))
	assert.True(t, history[0].UpdateStatistics.PreviousRate.Equal(decimal.NewFromInt(7500)))
	assert.True(t, history[1].Change.IsZero())
	assert.True(t, history[0].IsActive)
	assert.False(t, history[1].IsActive)
}
