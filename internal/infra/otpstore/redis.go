package otpstore

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/redis/go-redis/v9"

	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/config"
	"campus-booking/internal/usecase/shared"
)

// RedisStore keeps one-time verification codes under a short TTL.
// Codes disappear on expiry or first successful verification.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) shared.OTPStore {
	return &RedisStore{client: client}
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func key(email string) string {
	return "otp:" + email
}

func (s *RedisStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(email), code, ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store otp", err)
	}
	return nil
}

func (s *RedisStore) Verify(ctx context.Context, email, code string) (bool, error) {
	stored, err := s.client.Get(ctx, key(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to read otp", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return false, nil
	}
	if err := s.client.Del(ctx, key(email)).Err(); err != nil {
		return false, infra.WrapRepoErr("failed to consume otp", err)
	}
	return true, nil
}
