package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned by NewClient when no URL is set
var ErrNotConfigured = errors.New("redis: UPSTASH_REDIS_URL not configured")

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://... or rediss://... for TLS
	Password string // overrides the password embedded in URL
}

// Options translates Config into go-redis options without dialing.
func Options(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("redis: URL %q has no host", cfg.URL)
	}

	useTLS := parsedURL.Scheme == "rediss"

	addr := parsedURL.Host
	if parsedURL.Port() == "" {
		addr = parsedURL.Host + ":6379"
	}

	password := cfg.Password
	if password == "" && parsedURL.User != nil {
		password, _ = parsedURL.User.Password()
	}

	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	return opts, nil
}

// NewClient dials Redis and verifies the connection with a PING.
// The caller owns the returned client and must Close it.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}
	return client, nil
}
