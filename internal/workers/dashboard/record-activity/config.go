// internal/workers/dashboard/record-activity/config.go
package recordactivity

import "time"

type Config struct {
	Timeout time.Duration

	// FeedKey is the Redis list holding the most recent events.
	FeedKey string
	// FeedLimit caps the feed length; older entries are trimmed away.
	FeedLimit int64
	// FeedTTL expires an idle feed entirely.
	FeedTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   10 * time.Second,
		FeedKey:   "dashboard:activity",
		FeedLimit: 200,
		FeedTTL:   7 * 24 * time.Hour,
	}
}
