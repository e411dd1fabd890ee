package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/branchledger/internal/core/domain"
	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/SscSPs/branchledger/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const glAccountNamespace = "gl:account"

// GLAccountCache keeps GL account records in Redis. Cache failures are logged
// and treated as misses so lookups fall through to Postgres.
type GLAccountCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewGLAccountCache(client redis.UniversalClient, ttl time.Duration) *GLAccountCache {
	return &GLAccountCache{client: client, ttl: ttl}
}

var _ portssvc.GLAccountCache = (*GLAccountCache)(nil)

func key(accountID string) string {
	return glAccountNamespace + ":" + accountID
}

func (c *GLAccountCache) Get(ctx context.Context, accountID string) (*domain.GLAccount, bool) {
	raw, err := c.client.Get(ctx, key(accountID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.GetLoggerFromCtx(ctx).Warn("GL account cache read failed",
				slog.String("account_id", accountID), slog.String("error", err.Error()))
		}
		return nil, false
	}
	var acc domain.GLAccount
	if err := json.Unmarshal(raw, &acc); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Discarding undecodable GL account cache entry",
			slog.String("account_id", accountID), slog.String("error", err.Error()))
		_ = c.client.Del(ctx, key(accountID)).Err()
		return nil, false
	}
	return &acc, true
}

func (c *GLAccountCache) Set(ctx context.Context, account domain.GLAccount) {
	raw, err := json.Marshal(account)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(account.ID), raw, c.ttl).Err(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("GL account cache write failed",
			slog.String("account_id", account.ID), slog.String("error", err.Error()))
	}
}

// NewRedisClient parses a redis:// URL into a client.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
