// internal/workers/application/send-notification/config.go
package sendnotification

import "time"

type Config struct {
	Timeout time.Duration

	SenderAddress string
	SMSEnabled    bool
	// SMSImpactThreshold is the network impact level that also triggers an
	// SMS alongside email.
	SMSImpactThreshold string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            30 * time.Second,
		SenderAddress:      "credentialing@example.com",
		SMSEnabled:         false,
		SMSImpactThreshold: "High",
	}
}
