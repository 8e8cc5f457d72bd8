// internal/workers/data-access/search-providers/config.go
package searchproviders

import "time"

type Config struct {
	Timeout      time.Duration
	DefaultIndex string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      15 * time.Second,
		DefaultIndex: "providers",
	}
}
