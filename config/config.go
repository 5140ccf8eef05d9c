package config

import "time"

// AppConfig holds the application configuration. It is built once in main
// and passed down explicitly; nothing reads the environment after startup.
type AppConfig struct {
	DBURL               string
	RedisAddress        string
	BearerToken         string
	SlotIntervalMinutes int
	Timezone            *time.Location
	SMTP                SMTPConfig
	Clinic              ClinicConfig
	Blob                BlobConfig
	DocIntel            DocIntelConfig
}

// SMTPConfig configures the outgoing mail account used for appointment
// confirmations.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

// ClinicConfig carries the clinic details rendered into notification emails.
type ClinicConfig struct {
	Name          string
	Location      string
	ContactNumber string
}

// BlobConfig configures the bucket holding uploaded medical documents.
type BlobConfig struct {
	Bucket     string
	PresignTTL time.Duration
}

// DocIntelConfig points at the external document-analysis service.
type DocIntelConfig struct {
	Endpoint string
	APIKey   string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}
