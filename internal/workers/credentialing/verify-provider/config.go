// internal/workers/credentialing/verify-provider/config.go
package verifyprovider

import "time"

type Config struct {
	Timeout time.Duration

	// MinCoverageAmount is the malpractice coverage floor in dollars.
	MinCoverageAmount int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:           30 * time.Second,
		MinCoverageAmount: 1000000,
	}
}
