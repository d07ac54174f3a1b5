package config

import (
	"os"
	"strconv"
	"time"
)

const (
	DefaultPageSize = 10
	DefaultCacheTTL = 20 * time.Second
)

type Config struct {
	DBUrl     string
	JWTSecret string
	Port      string

	// Feed tuning. PageSize is the fixed page length for every timeline,
	// CacheTTL bounds staleness of the global timeline cache.
	PageSize int
	CacheTTL time.Duration

	AWSBucket string
	AWSRegion string
}

func LoadConfig() *Config {
	cfg := &Config{
		DBUrl:     os.Getenv("DATABASE_URL"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		Port:      os.Getenv("PORT"),
		PageSize:  DefaultPageSize,
		CacheTTL:  DefaultCacheTTL,
		AWSBucket: os.Getenv("AWS_BUCKET_NAME"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if v, err := strconv.Atoi(os.Getenv("FEED_PAGE_SIZE")); err == nil && v > 0 {
		cfg.PageSize = v
	}
	if d, err := time.ParseDuration(os.Getenv("TIMELINE_CACHE_TTL")); err == nil && d > 0 {
		cfg.CacheTTL = d
	}

	return cfg
}
