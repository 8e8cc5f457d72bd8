// internal/workers/credentialing/generate-checklist/config.go
package generatechecklist

import "time"

type Config struct {
	Timeout      time.Duration
	GenAIBaseURL string
	APIKey       string
	MaxRetries   int
	MaxItems     int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      60 * time.Second,
		GenAIBaseURL: "http://localhost:8090",
		MaxRetries:   2,
		MaxItems:     12,
	}
}
