package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stewartad1/RapidEdge/internal/dxf/domain"
)

const (
	reportKeyPrefix = "dxf:report:" // dxf:report:{content-hash}:{unit}:{tol}
	reportTTL       = 24 * time.Hour
)

// ReportCache keeps finished dimension reports in Redis, keyed by the
// upload's content hash plus the analysis parameters. Identical uploads
// re-use the cached report instead of re-measuring.
type ReportCache struct {
	client *redis.Client
}

func NewReportCache(client *redis.Client) *ReportCache {
	return &ReportCache{client: client}
}

// Key derives the cache key for one analysis request. The parameters are
// part of the key because they change the report.
func (c *ReportCache) Key(content []byte, unit string, tol float64) string {
	sum := sha256.Sum256(content)
	return fmt.Sprintf("%s%s:%s:%g", reportKeyPrefix, hex.EncodeToString(sum[:]), unit, tol)
}

// Get returns the cached report for a key, or nil on a miss.
func (c *ReportCache) Get(ctx context.Context, key string) (*domain.DimensionReport, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var report domain.DimensionReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &report, nil
}

// Put stores a report under the key with the cache TTL.
func (c *ReportCache) Put(ctx context.Context, key string, report *domain.DimensionReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, key, data, reportTTL).Err(); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
