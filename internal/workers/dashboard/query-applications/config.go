// internal/workers/dashboard/query-applications/config.go
package queryapplications

import "time"

type Config struct {
	Timeout    time.Duration
	MaxRecords int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MaxRecords: 10000,
	}
}
