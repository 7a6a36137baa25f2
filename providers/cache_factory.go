package providers

import (
	"time"

	"weatherreport.app/config"
	"weatherreport.app/pkg/errors"
	"weatherreport.app/providers/cache"
)

// NewCacheFromConfig builds the configured cache backend. An unknown type is
// a configuration error, not a silent fallback.
func NewCacheFromConfig(cfg *config.CacheConfig) (cache.GenericCache, error) {
	switch cfg.Type {
	case config.CacheTypeMemory:
		return cache.NewMemoryCache(), nil
	case config.CacheTypeRedis:
		redisCache, err := cache.NewRedisCache(&cache.RedisCacheConfig{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err != nil {
			return nil, errors.NewConfigurationError("failed to connect to redis cache", err)
		}
		return redisCache, nil
	default:
		return nil, errors.NewConfigurationError("unknown cache type: "+cfg.Type, nil)
	}
}
