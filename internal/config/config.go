package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

const (
	defaultPort         = "8080"
	defaultQueryTimeout = 15 * time.Second
	defaultFormCacheTTL = 5 * time.Minute
	defaultPalette      = "default"
)

type Config struct {
	ProjectID          string
	Region             string
	LogLevel           string
	Port               string
	QueryServiceURL    string
	QueryServiceSecret string
	QueryTimeout       time.Duration
	FormCacheTTL       time.Duration
	DefaultPalette     string
}

func New() *Config {
	return &Config{
		ProjectID:          os.Getenv("PROJECTID"),
		Region:             os.Getenv("REGION"),
		LogLevel:           os.Getenv("LOGLEVEL"),
		Port:               getString("PORT", defaultPort),
		QueryServiceURL:    os.Getenv("QUERYSERVICEURL"),
		QueryServiceSecret: os.Getenv("QUERYSERVICESECRET"),
		QueryTimeout:       getDuration("QUERYTIMEOUT", defaultQueryTimeout),
		FormCacheTTL:       getDuration("FORMCACHETTL", defaultFormCacheTTL),
		DefaultPalette:     getString("DEFAULTPALETTE", defaultPalette),
	}
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration accepts Go duration strings ("15s") or plain nanoseconds.
// Unparseable or non-positive values fall back to the default.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
