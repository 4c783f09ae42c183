// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/core/idgen"
	"codeberg.org/dialectfe/dialectfe/markup"
)

// Global exposes the server configuration.
var Global ServerConfig

// ServerConfig holds the application configuration.
type ServerConfig struct {
	Build buildInfo `yaml:"-"`

	Basic struct {
		Host                     string      `env:"DIALECTFE_HOST,overwrite" yaml:"host"`
		Port                     string      `env:"DIALECTFE_PORT,overwrite" yaml:"port"`
		UnixSocket               string      `env:"DIALECTFE_UNIXSOCKET" yaml:"unixSocket"`
		RawUnixSocketPermissions string      `env:"DIALECTFE_UNIXSOCKET_PERMISSIONS" yaml:"unixSocketPermissions"`
		UnixSocketPermissions    os.FileMode `yaml:"-"`
		UnixSocketUser           string      `env:"DIALECTFE_UNIXSOCKET_USER" yaml:"unixSocketUser"`
		UnixSocketGroup          string      `env:"DIALECTFE_UNIXSOCKET_GROUP" yaml:"unixSocketGroup"`
		// hex of the v4.public secret key that signs session cookies
		SessionSecret string                       `env:"DIALECTFE_SECRET" yaml:"secret"`
		SessionKey    paseto.V4AsymmetricSecretKey `yaml:"-"`
	} `yaml:"basic"`

	API struct {
		BaseURL string        `env:"DIALECTFE_API_URL,overwrite" yaml:"baseUrl"`
		Timeout time.Duration `env:"DIALECTFE_API_TIMEOUT,overwrite" yaml:"timeout"`
	} `yaml:"api"`

	Auth struct {
		CacheSize       int           `env:"DIALECTFE_AUTH_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		CacheTTL        time.Duration `env:"DIALECTFE_AUTH_CACHE_TTL,overwrite" yaml:"cacheTTL"`
		ChecksPerSecond float64       `env:"DIALECTFE_AUTH_CHECKS_PER_SECOND,overwrite" yaml:"checksPerSecond"`
		Burst           int           `env:"DIALECTFE_AUTH_BURST,overwrite" yaml:"burst"`
	} `yaml:"auth"`

	Cache struct {
		Enabled  bool          `env:"DIALECTFE_CACHE,overwrite" yaml:"enabled"`
		Size     int           `env:"DIALECTFE_CACHE_SIZE,overwrite" yaml:"cacheSize"`
		TTL      time.Duration `env:"DIALECTFE_CACHE_TTL,overwrite" yaml:"cacheTTL"`
		Compress bool          `env:"DIALECTFE_CACHE_COMPRESS,overwrite" yaml:"compress"`
	} `yaml:"cache"`

	HTTPCache struct {
		MaxAge               time.Duration `env:"DIALECTFE_CACHE_CONTROL_MAX_AGE,overwrite" yaml:"cacheControlMaxAge"`
		StaleWhileRevalidate time.Duration `env:"DIALECTFE_CACHE_CONTROL_STALE_WHILE_REVALIDATE,overwrite" yaml:"cacheControlStaleWhileRevalidate"`
	} `yaml:"httpCache"`

	Limiter struct {
		Enabled bool `env:"DIALECTFE_LIMITER,overwrite" yaml:"enabled"`
		// requests per second allowed for each client network on form endpoints
		Rate       float64 `env:"DIALECTFE_LIMITER_RATE,overwrite" yaml:"rate"`
		Burst      int     `env:"DIALECTFE_LIMITER_BURST,overwrite" yaml:"burst"`
		IPv4Prefix int     `env:"DIALECTFE_LIMITER_IPV4_PREFIX,overwrite" yaml:"ipv4Prefix"`
		IPv6Prefix int     `env:"DIALECTFE_LIMITER_IPV6_PREFIX,overwrite" yaml:"ipv6Prefix"`
	} `yaml:"limiter"`

	Markup struct {
		Variant            string `env:"DIALECTFE_MARKUP_VARIANT,overwrite" yaml:"variant"`
		LegacyBracketStrip bool   `env:"DIALECTFE_MARKUP_LEGACY_BRACKET_STRIP,overwrite" yaml:"legacyBracketStrip"`
		LinkTargetPrefix   string `env:"DIALECTFE_MARKUP_LINK_PREFIX,overwrite" yaml:"linkTargetPrefix"`
		StylesFile         string `env:"DIALECTFE_MARKUP_STYLES_FILE,overwrite" yaml:"stylesFile"`

		// Renderer is built from the fields above during validation.
		Renderer       *markup.Renderer `yaml:"-"`
		RendererConfig markup.Config    `yaml:"-"`
	} `yaml:"markup"`

	Instance struct {
		StartingTime      string `yaml:"-"`
		FileServerCacheID string `yaml:"-"`
		RepoURL           string `env:"DIALECTFE_REPO_URL,overwrite" yaml:"repoUrl"`
	} `yaml:"instance"`

	Development struct {
		InDevelopment bool `env:"DIALECTFE_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`

	Log struct {
		Level   string   `env:"DIALECTFE_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"DIALECTFE_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"DIALECTFE_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`

	Internationalization struct {
		// Strict mode for missing keys.
		//
		// When enabled, missing keys are logged (deduplicated per locale+key) and
		// visibly wrapped using markers.
		StrictMissingKeys bool `env:"DIALECTFE_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`

		// DefaultLocale is the catalogue used when nothing in the request matches.
		DefaultLocale string `env:"DIALECTFE_DEFAULT_LOCALE,overwrite" yaml:"defaultLocale"`
	} `yaml:"internationalization"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *ServerConfig) LoadConfig() error {
	path := configFilePath()

	cfg.SetDefaults()

	cfg.Build.load()

	cfg.Instance.FileServerCacheID = idgen.Make()
	cfg.Instance.StartingTime = time.Now().UTC().Format("2006-01-02 15:04")

	if err := cfg.readYAML(path); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	cfg.print()

	// Heuristically check for containerized environment and warn if host is not a wildcard address.
	if isContainerized() && cfg.Basic.UnixSocket == "" && cfg.Basic.Host != "0.0.0.0" && cfg.Basic.Host != "::" {
		log.Warn().
			Str("host", cfg.Basic.Host).
			Msg("Running in a containerized environment but host is not a wildcard address (e.g., '0.0.0.0' or '::'). This may prevent the service from being accessible outside the container.")
	}

	return nil
}

var staticSkippedPathPrefixes = []string{"/css/", "/robots.txt"}

// ShouldSkipServerLogging determines if a request should bypass the logging middleware.
func (cfg *ServerConfig) ShouldSkipServerLogging(path string) bool {
	if cfg.Development.InDevelopment {
		return false
	}

	for _, prefix := range staticSkippedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// Renderer returns the configured markup renderer, or the default one when
// the configuration has not been loaded.
func (cfg *ServerConfig) Renderer() *markup.Renderer {
	if cfg.Markup.Renderer == nil {
		return markup.New(markup.DefaultConfig())
	}

	return cfg.Markup.Renderer
}

// RendererFor returns a renderer for variant that otherwise follows the
// configured markup settings.
func (cfg *ServerConfig) RendererFor(variant markup.Variant) *markup.Renderer {
	current := cfg.Renderer()
	if current.Variant() == variant {
		return current
	}

	mc := cfg.Markup.RendererConfig
	if cfg.Markup.Renderer == nil {
		mc = markup.DefaultConfig()
	}

	mc.Variant = variant

	return markup.New(mc)
}

// isContainerized checks for common indicators of a containerized environment.
//
// This is a heuristic and may not be 100% accurate.
func isContainerized() bool {
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true
	}

	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}

	if _, err := os.Stat("/.containerenv"); err == nil {
		return true
	}

	// #nosec G304 -- We are checking for the existence and content of a well-known system file for heuristics.
	cgroup, err := os.ReadFile("/proc/self/cgroup")
	if err == nil {
		content := string(cgroup)

		return strings.Contains(content, "docker") ||
			strings.Contains(content, "kubepods") ||
			strings.Contains(content, "containerd") ||
			strings.Contains(content, "lxc") ||
			strings.Contains(content, "crio") ||
			// systemd-nspawn containers
			strings.Contains(content, ".machine")
	}

	return false
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
