package cmd

import "time"

// Config carries everything the composition root needs to wire the service.
// Values come from the environment; parsing happens at the edge in main.
type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	ViewRefreshInterval time.Duration
}
