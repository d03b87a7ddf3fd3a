package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-analyzer/domain"
	"deal-analyzer/repository"
)

type MockCache struct {
	Data      map[string]string
	GetCalls  int
	SetCalls  int
	ForceErr  bool
	ForceMiss bool
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string]string)}
}

func (m *MockCache) Get(_ context.Context, key string) (string, bool) {
	m.GetCalls++
	if m.ForceMiss {
		return "", false
	}
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(_ context.Context, key string, value string) error {
	m.SetCalls++
	if m.ForceErr {
		return errors.New("set error")
	}
	m.Data[key] = value
	return nil
}

func flipInput() domain.DealAnalysisInput {
	return domain.DealAnalysisInput{
		Property: domain.Property{PurchasePrice: 200000, RepairCost: 50000, ARV: 350000},
	}
}

func TestDealAnalysisService_CachesResult(t *testing.T) {
	ctx := context.Background()
	cache := NewMockCache()
	svc := NewDealAnalysisService(cache)

	first := svc.Analyze(ctx, flipInput())
	second := svc.Analyze(ctx, flipInput())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.SetCalls)
	assert.Equal(t, 2, cache.GetCalls)
	assert.Len(t, cache.Data, 1)
}

func TestDealAnalysisService_ReturnsCachedValue(t *testing.T) {
	ctx := context.Background()
	cache := NewMockCache()
	svc := NewDealAnalysisService(cache)

	key, err := CacheKey(flipInput())
	require.NoError(t, err)
	cache.Data[key] = `{"mao":12345}`

	got := svc.Analyze(ctx, flipInput())
	assert.Equal(t, 12345.0, got.MAO)
	assert.Zero(t, cache.SetCalls)
}

func TestDealAnalysisService_CorruptEntryIsRecomputed(t *testing.T) {
	ctx := context.Background()
	cache := NewMockCache()
	svc := NewDealAnalysisService(cache)

	key, err := CacheKey(flipInput())
	require.NoError(t, err)
	cache.Data[key] = `not json`

	got := svc.Analyze(ctx, flipInput())
	assert.Equal(t, 195000.0, got.MAO)
	assert.Equal(t, 1, cache.SetCalls)
}

func TestDealAnalysisService_CacheFailureDoesNotFail(t *testing.T) {
	cache := NewMockCache()
	cache.ForceErr = true
	svc := NewDealAnalysisService(cache)

	got := svc.Analyze(context.Background(), flipInput())
	assert.Equal(t, 62000.0, got.NetProfit)
}

func TestDealAnalysisService_NilCache(t *testing.T) {
	svc := NewDealAnalysisService(nil)
	got := svc.Analyze(context.Background(), flipInput())
	assert.Equal(t, 260000.0, got.TotalInvestment)
}

func TestDealAnalysisService_WithMemoryCache(t *testing.T) {
	cache := repository.NewMemoryCache(time.Hour, 100)
	svc := NewDealAnalysisService(cache)

	got := svc.Analyze(context.Background(), flipInput())
	again := svc.Analyze(context.Background(), flipInput())

	assert.Equal(t, got, again)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheKey(t *testing.T) {
	base := flipInput()

	withZero := flipInput()
	withZero.BuyingCriteria = &domain.BuyingCriteria{ClosingExpensesPct: domain.Float(0)}

	k1, err := CacheKey(base)
	require.NoError(t, err)
	k2, err := CacheKey(flipInput())
	require.NoError(t, err)
	k3, err := CacheKey(withZero)
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
	assert.Contains(t, k1, cacheKeyPrefix)
}

func TestAnalyzeBatch(t *testing.T) {
	svc := NewDealAnalysisService(repository.NewMemoryCache(time.Hour, 100))

	inputs := []domain.DealAnalysisInput{
		flipInput(),
		{Property: domain.Property{ARV: 300000, RepairCost: 40000}},
	}

	results, err := svc.AnalyzeBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 195000.0, results[0].MAO)
	assert.Equal(t, 170000.0, results[1].MAO)
}

func TestAnalyzeBatch_TooLarge(t *testing.T) {
	svc := NewDealAnalysisService(nil)

	_, err := svc.AnalyzeBatch(context.Background(), make([]domain.DealAnalysisInput, MaxBatchDeals+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestAnalyzeBatch_Canceled(t *testing.T) {
	svc := NewDealAnalysisService(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AnalyzeBatch(ctx, []domain.DealAnalysisInput{flipInput()})
	assert.ErrorIs(t, err, context.Canceled)
}
