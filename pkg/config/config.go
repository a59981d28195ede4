// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envAPIKey                 = "CURSEFORGE_API"
	envPort                   = "PORT"
	envPublicURL              = "PUBLIC_URL"
	envNgrokURL               = "NGROK_URL"
	envListenHost             = "PROXY_LISTEN_HOST"
	envAllowedOrigins         = "PROXY_ALLOWED_ORIGINS"
	envUpstreamURL            = "PROXY_UPSTREAM_URL"
	envUserAgent              = "PROXY_USER_AGENT"
	envRequestTimeout         = "PROXY_REQUEST_TIMEOUT"
	envLogLevel               = "PROXY_LOG_LEVEL"
	envMetricsAddr            = "PROXY_METRICS_ADDR"
	envServerReadTimeout      = "PROXY_SERVER_READ_TIMEOUT"
	envServerWriteTimeout     = "PROXY_SERVER_WRITE_TIMEOUT"
	envServerIdleTimeout      = "PROXY_SERVER_IDLE_TIMEOUT"
	envGracefulShutdown       = "PROXY_GRACEFUL_SHUTDOWN"
	defaultPort               = 3000
	defaultUpstreamURL        = "https://api.curseforge.com/v1"
	defaultUserAgent          = "ReaLauncher-Proxy/1.0.0"
	defaultAllowedOrigins     = "http://localhost:14592,http://127.0.0.1:14592"
	defaultRequestTimeout     = 15 * time.Second
	defaultLogLevel           = "info"
	defaultServerReadTimeout  = 30 * time.Second
	defaultServerWriteTimeout = 30 * time.Second
	defaultServerIdleTimeout  = 120 * time.Second
	defaultGracefulShutdown   = 10 * time.Second
	dotEnvFile                = ".env"
)

// Config captures runtime settings for the proxy. It is built once at
// startup and handed to every component by value.
type Config struct {
	ListenHost              string
	Port                    int
	Upstream                *url.URL
	APIKey                  string
	UserAgent               string
	PublicURL               string
	Origins                 []string
	RequestTimeout          time.Duration
	LogLevel                string
	MetricsAddr             string
	ServerReadTimeout       time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	GracefulShutdownTimeout time.Duration
}

// Load reads configuration from the process environment, after merging in
// an optional .env file from the working directory.
func Load() (Config, error) {
	if err := LoadDotEnv(dotEnvFile); err != nil {
		return Config{}, err
	}

	upstreamRaw := getString(envUpstreamURL, defaultUpstreamURL)
	upstream, err := url.Parse(upstreamRaw)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", envUpstreamURL, err)
	}
	if !upstream.IsAbs() {
		return Config{}, fmt.Errorf("%s must be absolute (scheme://host)", envUpstreamURL)
	}

	port := defaultPort
	if raw := strings.TrimSpace(os.Getenv(envPort)); raw != "" {
		port, err = strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return Config{}, fmt.Errorf("invalid %s %q", envPort, raw)
		}
	}

	publicURL := getString(envPublicURL, strings.TrimSpace(os.Getenv(envNgrokURL)))

	cfg := Config{
		ListenHost:              strings.TrimSpace(os.Getenv(envListenHost)),
		Port:                    port,
		Upstream:                upstream,
		APIKey:                  strings.TrimSpace(os.Getenv(envAPIKey)),
		UserAgent:               getString(envUserAgent, defaultUserAgent),
		PublicURL:               strings.TrimSuffix(publicURL, "/"),
		Origins:                 splitList(getString(envAllowedOrigins, defaultAllowedOrigins)),
		RequestTimeout:          getDuration(envRequestTimeout, defaultRequestTimeout),
		LogLevel:                strings.ToLower(getString(envLogLevel, defaultLogLevel)),
		MetricsAddr:             strings.TrimSpace(os.Getenv(envMetricsAddr)),
		ServerReadTimeout:       getDuration(envServerReadTimeout, defaultServerReadTimeout),
		ServerWriteTimeout:      getDuration(envServerWriteTimeout, defaultServerWriteTimeout),
		ServerIdleTimeout:       getDuration(envServerIdleTimeout, defaultServerIdleTimeout),
		GracefulShutdownTimeout: getDuration(envGracefulShutdown, defaultGracefulShutdown),
	}

	if len(cfg.Origins) == 0 {
		return Config{}, errors.New(envAllowedOrigins + " must list at least one origin")
	}

	return cfg, nil
}

// ListenAddr is the host:port the API server binds to.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.ListenHost, strconv.Itoa(c.Port))
}

// APIKeyConfigured reports whether an upstream credential was supplied.
func (c Config) APIKeyConfigured() bool {
	return c.APIKey != ""
}

// AllowedOrigins returns the CORS allow-list: the configured origins plus
// the public URL when one is set.
func (c Config) AllowedOrigins() []string {
	origins := make([]string, 0, len(c.Origins)+1)
	origins = append(origins, c.Origins...)
	if c.PublicURL != "" {
		origins = append(origins, c.PublicURL)
	}
	return origins
}

func getString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSuffix(strings.TrimSpace(item), "/"); item != "" {
			out = append(out, item)
		}
	}
	return out
}
