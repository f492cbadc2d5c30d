package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/agriprofit/agriprofit/pkg/models"
)

// Client caches prediction responses in Redis. Identical inputs hit the
// cache instead of re-running inference.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// Key derives the cache key for a prediction request.
func Key(req *models.PredictionRequest) string {
	sum := sha256.Sum256([]byte(req.CacheKey()))
	return "prediction:" + hex.EncodeToString(sum[:])
}

// GetPrediction returns a cached response, or nil on a miss.
func (c *Client) GetPrediction(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResponse, error) {
	data, err := c.rdb.Get(ctx, Key(req)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp models.PredictionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal cached prediction: %w", err)
	}
	return &resp, nil
}

// SetPrediction stores a response under the request's key.
func (c *Client) SetPrediction(ctx context.Context, req *models.PredictionRequest, resp *models.PredictionResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}
	return c.rdb.Set(ctx, Key(req), data, c.ttl).Err()
}

// HealthCheck pings the Redis server.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
