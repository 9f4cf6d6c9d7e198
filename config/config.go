// Package config loads runtime configuration from the environment and
// selects the authentication strategy. The strategy is a runtime choice
// (AUTH_MODE), so one binary serves key-table, session-store, and
// disabled deployments.
package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/davrow/mcp-auth-go/auth"
	"github.com/davrow/mcp-auth-go/auth/apikey"
	"github.com/davrow/mcp-auth-go/auth/sessionauth"
	"github.com/davrow/mcp-auth-go/internal/logctx"
	kvredis "github.com/davrow/mcp-auth-go/kv/redis"
	"github.com/joeshaw/envdecode"
)

// Authentication modes selectable via AUTH_MODE.
const (
	ModeAPIKey   = "apikey"
	ModeSession  = "session"
	ModeDisabled = "disabled"
)

// Config is populated from the environment via envdecode.
type Config struct {
	// ServerName identifies this server to MCP clients. ENV: SERVER_NAME
	ServerName string `env:"SERVER_NAME,default=mcp-auth-demo"`

	// AuthMode selects the provider: apikey, session, or disabled.
	// ENV: AUTH_MODE
	AuthMode string `env:"AUTH_MODE,default=disabled"`

	// APIKeys holds "key1:user1,key2:user2" pairs for apikey mode.
	// ENV: API_KEYS
	APIKeys string `env:"API_KEYS"`

	// RedisAddr like "localhost:6379" for session mode. ENV: REDIS_ADDR
	RedisAddr string `env:"REDIS_ADDR,default=localhost:6379"`
	// RedisDB selects the Redis logical database. ENV: REDIS_DB
	RedisDB int `env:"REDIS_DB,default=0"`

	// SessionKeyPrefix prefixes session record keys.
	// ENV: SESSION_KEY_PREFIX
	SessionKeyPrefix string `env:"SESSION_KEY_PREFIX,default=mcp_session:"`
	// LinkedAccountKeyPrefix prefixes linked-account record keys.
	// ENV: LINKED_ACCOUNT_KEY_PREFIX
	LinkedAccountKeyPrefix string `env:"LINKED_ACCOUNT_KEY_PREFIX,default=linked_account:"`

	// LogLevel is one of debug, info, warn, error. ENV: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL,default=info"`
	// LogFormat is "text" or "json". ENV: LOG_FORMAT
	LogFormat string `env:"LOG_FORMAT,default=text"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		// envdecode errors when a struct has no required fields set;
		// all fields here have defaults or are optional, so a strict
		// failure is a real decode problem.
		if err != envdecode.ErrNoTargetFieldsAreSet {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}
	switch cfg.AuthMode {
	case ModeAPIKey, ModeSession, ModeDisabled:
	default:
		return nil, fmt.Errorf("invalid AUTH_MODE %q: want apikey, session, or disabled", cfg.AuthMode)
	}
	return &cfg, nil
}

// NewProvider builds the configured authentication provider. The returned
// close function releases any store connection the provider holds; it is
// never nil.
func (c *Config) NewProvider(ctx context.Context) (auth.Provider, func() error, error) {
	noop := func() error { return nil }
	switch c.AuthMode {
	case ModeAPIKey:
		return apikey.New(apikey.ParsePairs(c.APIKeys)), noop, nil
	case ModeSession:
		store, err := kvredis.NewFromAddr(ctx, c.RedisAddr, c.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect session store: %w", err)
		}
		svc, err := sessionauth.New(store, sessionauth.Config{
			SessionKeyPrefix:       c.SessionKeyPrefix,
			LinkedAccountKeyPrefix: c.LinkedAccountKeyPrefix,
		})
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		return svc, store.Close, nil
	case ModeDisabled:
		return auth.Disabled{}, noop, nil
	default:
		return nil, nil, fmt.Errorf("invalid AUTH_MODE %q", c.AuthMode)
	}
}

// NewLogger builds a slog.Logger honoring LogLevel and LogFormat, wrapped
// with the context-enriching handler.
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var inner slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		inner = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		inner = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(logctx.Handler{Handler: inner})
}
