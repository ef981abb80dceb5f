package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hrms-dev/hrms/backend/internal/config"
	"github.com/hrms-dev/hrms/backend/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Cache keeps short lived state in redis: password reset codes and revoked tokens.
type Cache struct {
	cfg *config.Config
	rdb redis.Cmdable
}

func NewCache(cfg *config.Config, rdb redis.Cmdable) *Cache {
	return &Cache{
		cfg: cfg,
		rdb: rdb,
	}
}

func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})
}

func (c *Cache) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Redis.OperationTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(c.cfg.Redis.OperationTimeout)*time.Second)
}

func otpKey(email string) string {
	return fmt.Sprintf("otp_%s_reset_password", email)
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("revoked_token_%s", tokenID)
}

func (c *Cache) SetResetOTP(ctx context.Context, email, otp string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	return c.rdb.Set(ctx, otpKey(email), otp, time.Duration(c.cfg.OTP.Expiration)*time.Second).Err()
}

// ResetOTP returns domain.ErrInvalidOTP when no code is pending for email.
func (c *Cache) ResetOTP(ctx context.Context, email string) (string, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	otp, err := c.rdb.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidOTP
	}
	if err != nil {
		return "", err
	}

	return otp, nil
}

func (c *Cache) DeleteResetOTP(ctx context.Context, email string) error {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	return c.rdb.Del(ctx, otpKey(email)).Err()
}

// RevokeToken blocks tokenID until ttl elapses. A non positive ttl means the token
// has already expired and nothing needs to be stored.
func (c *Cache) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	return c.rdb.Set(ctx, revokedKey(tokenID), 1, ttl).Err()
}

func (c *Cache) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	n, err := c.rdb.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
