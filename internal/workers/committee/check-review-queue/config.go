// internal/workers/committee/check-review-queue/config.go
package checkreviewqueue

import "time"

type Config struct {
	Timeout  time.Duration
	CacheKey string
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		CacheKey: "committee:review-queue",
		CacheTTL: 60 * time.Second,
	}
}
