package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"deal-analyzer/domain"
	"deal-analyzer/repository"
)

// DealAnalysisService memoizes Analyze behind a CacheRepository.
type DealAnalysisService struct {
	cache repository.CacheRepository
}

// NewDealAnalysisService creates a service backed by cache. A nil cache
// disables memoization.
func NewDealAnalysisService(cache repository.CacheRepository) *DealAnalysisService {
	return &DealAnalysisService{cache: cache}
}

// Analyze returns the metrics for input, from cache when possible.
func (s *DealAnalysisService) Analyze(
	ctx context.Context,
	input domain.DealAnalysisInput,
) domain.DealMetrics {

	if s.cache == nil {
		return analyzeInput(input)
	}

	key, err := CacheKey(input)
	if err != nil {
		slog.Default().WarnContext(ctx, "deal analysis cache key failed", "error", err)
		return analyzeInput(input)
	}

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached domain.DealMetrics
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached
		}
		slog.Default().WarnContext(ctx, "discarding corrupt cached deal analysis", "key", key)
	}

	metrics := analyzeInput(input)

	// Caching is best effort.
	payload, err := json.Marshal(metrics)
	if err == nil {
		err = s.cache.Set(ctx, key, string(payload))
	}
	if err != nil {
		slog.Default().WarnContext(ctx, "failed to cache deal analysis", "key", key, "error", err)
	}

	return metrics
}

// AnalyzeBatch analyzes each input in order.
func (s *DealAnalysisService) AnalyzeBatch(
	ctx context.Context,
	inputs []domain.DealAnalysisInput,
) ([]domain.DealMetrics, error) {

	if len(inputs) > MaxBatchDeals {
		return nil, fmt.Errorf("%w: %d deals exceeds the maximum of %d", ErrBatchTooLarge, len(inputs), MaxBatchDeals)
	}

	results := make([]domain.DealMetrics, 0, len(inputs))
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, s.Analyze(ctx, in))
	}
	return results, nil
}

// CacheKey derives a stable key from the canonical JSON form of input.
// Absent overrides and explicit zero overrides hash differently.
func CacheKey(input domain.DealAnalysisInput) (string, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return "", fmt.Errorf("encode deal input: %w", err)
	}
	sum := sha256.Sum256(raw)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}

func analyzeInput(input domain.DealAnalysisInput) domain.DealMetrics {
	return Analyze(input.Property, input.RentalAssumptions, input.BuyingCriteria)
}
