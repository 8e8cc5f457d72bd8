// internal/workers/roster/ingest-roster/config.go
package ingestroster

import "time"

type Config struct {
	Timeout       time.Duration
	MaxBatchSize  int
	DefaultMarket string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       60 * time.Second,
		MaxBatchSize:  500,
		DefaultMarket: "Dallas",
	}
}
