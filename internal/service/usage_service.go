package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/cjex-salaj/site-api/internal/blob"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
)

const usageCacheKey = "storage_usage_report"

// UsageReport is the informational storage summary shown on the
// dashboard. It has no enforcement role in upload admission.
type UsageReport struct {
	TotalSize      int64   `json:"totalSize"`
	UsedSize       int64   `json:"usedSize"`
	AvailableSize  int64   `json:"availableSize"`
	TotalBytes     int64   `json:"totalBytes"`
	TotalMB        float64 `json:"totalMB"`
	StorageLimitMB float64 `json:"storageLimit"`
	PercentageUsed float64 `json:"percentageUsed"`
	FilesCount     int     `json:"filesCount"`
}

// UsageService computes bucket-wide usage, optionally cached in redis so
// the dashboard's periodic refresh does not walk the whole store every
// few seconds.
type UsageService struct {
	store      blob.Store
	cache      *redis.Client
	logger     *zap.Logger
	limitBytes int64
	cacheTTL   time.Duration
}

// NewUsageService constructs the service. cache may be nil.
func NewUsageService(store blob.Store, cache *redis.Client, logger *zap.Logger, limitBytes int64, cacheTTL time.Duration) *UsageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limitBytes <= 0 {
		limitBytes = 1 << 30
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &UsageService{store: store, cache: cache, logger: logger, limitBytes: limitBytes, cacheTTL: cacheTTL}
}

// Report returns the current usage summary.
func (s *UsageService) Report(ctx context.Context) (*UsageReport, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	usage, err := s.store.Usage(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch storage usage")
	}

	available := s.limitBytes - usage.TotalSize
	if available < 0 {
		available = 0
	}
	report := &UsageReport{
		TotalSize:      s.limitBytes,
		UsedSize:       usage.TotalSize,
		AvailableSize:  available,
		TotalBytes:     usage.TotalSize,
		TotalMB:        float64(usage.TotalSize) / (1024 * 1024),
		StorageLimitMB: float64(s.limitBytes) / (1024 * 1024),
		PercentageUsed: float64(usage.TotalSize) / float64(s.limitBytes) * 100,
		FilesCount:     usage.FileCount,
	}

	s.toCache(ctx, report)
	return report, nil
}

func (s *UsageService) fromCache(ctx context.Context) *UsageReport {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, usageCacheKey).Bytes()
	if err != nil {
		return nil
	}
	report := &UsageReport{}
	if err := json.Unmarshal(raw, report); err != nil {
		return nil
	}
	return report
}

func (s *UsageService) toCache(ctx context.Context, report *UsageReport) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, usageCacheKey, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache usage report", zap.Error(err))
	}
}
