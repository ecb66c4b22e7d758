package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// After repeated failures the breaker opens and calls skip redis entirely
// until the timeout elapses.
type Client struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

// New creates a new Redis client.
func New(addr, password string, db int, log *logrus.Logger) *Client {
	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	return &Client{
		client: redis.NewClient(opts),
		cb:     newBreaker("redis", log),
	}
}

func newBreaker(name string, log *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			if log != nil {
				log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).
					Warn("circuit breaker state changed")
			}
		},
		// a missing key is an answer, not a failure
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	})
}

// Ping reports whether redis answers. Used by the health check.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("cache disabled")
	}
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Ping(ctx).Err()
	})
	return err
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	res, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.Get(ctx, key).Bytes()
	})
	if err != nil {
		// fail safe: behave like cache miss
		return nil, nil
	}
	return res.([]byte), nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}
	_, _ = c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, key, value, ttl).Err()
	})
	return nil
}

// Delete removes keys, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	_, _ = c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Del(ctx, keys...).Err()
	})
	return nil
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
