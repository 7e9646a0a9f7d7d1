package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tickerboard/internal/config"
	"tickerboard/internal/domain/models"
)

// Adapter implements the CachePort interface for Redis. Snapshots are
// stored as JSON values with a TTL; the data only changes on reseed, so a
// stale-until-expiry entry is acceptable.
type Adapter struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Redis adapter
func New(cfg config.CacheConfig) (*Adapter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &Adapter{
		client: client,
		ttl:    ttl,
	}, nil
}

func snapshotKey(collection string) string {
	return fmt.Sprintf("latest:%s", collection)
}

// GetLatestPerSymbol returns the cached snapshot for a collection.
func (a *Adapter) GetLatestPerSymbol(ctx context.Context, collection string) ([]models.PriceRecord, bool, error) {
	data, err := a.client.Get(ctx, snapshotKey(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var records []models.PriceRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

// SetLatestPerSymbol stores the snapshot for a collection with the
// configured TTL.
func (a *Adapter) SetLatestPerSymbol(ctx context.Context, collection string, records []models.PriceRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return a.client.Set(ctx, snapshotKey(collection), data, a.ttl).Err()
}

// Ping verifies the cache connection.
func (a *Adapter) Ping(ctx context.Context) error {
	return a.client.Ping(ctx).Err()
}

// Close closes the cache connection
func (a *Adapter) Close() error {
	return a.client.Close()
}
