// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"regexp"
	"strconv"

	"aidanwoods.dev/go-paseto"
	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/markup"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// validation errors.
var (
	errUnixSocketWithHostPort       = errors.New("unix socket configured - cannot specify Host and Port simultaneously")
	errUnixSocketInvalidPermissions = errors.New("invalid Basic.UnixSocketPermissions value")
	errUnixSocketUserDoesNotExist   = errors.New("user does not exist")
	errUnixSocketGroupDoesNotExist  = errors.New("group does not exist")
	errSessionSecretInvalid         = errors.New("basic.secret is not a valid paseto key")
	errNonPositiveTimeout           = errors.New("api.timeout must be positive")
	errInvalidAuthLimits            = errors.New("auth.cacheSize, auth.checksPerSecond and auth.burst must be positive")
	errInvalidLimiter               = errors.New("limiter.rate and limiter.burst must be positive and the prefixes must fit their address family")
	errNonPositiveAuthTTL           = errors.New("auth.cacheTTL must be positive")
	errInvalidCacheSize             = errors.New("cache.cacheSize must be positive when the cache is enabled")
	errInvalidLogFormat             = errors.New("log.logFormat must be console or json")
)

var (
	fileModeOctalRegexp  = regexp.MustCompile(`^0?[0-7]{3}$`)
	fileModeStringRegexp = regexp.MustCompile(`^(?:[r-][w-][x-]){3}$`)
	digitsRegexp         = regexp.MustCompile(`^[0-9]+$`)
)

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if err := cfg.validateListener(); err != nil {
		return err
	}

	apiURL, err := utils.ParseURL(cfg.API.BaseURL, "Dictionary API")
	if err != nil {
		return fmt.Errorf("invalid api URL: %w", err)
	}

	cfg.API.BaseURL = apiURL.String()

	if cfg.API.Timeout <= 0 {
		return errNonPositiveTimeout
	}

	repoURL, err := utils.ParseURL(cfg.Instance.RepoURL, "Repo")
	if err != nil {
		return fmt.Errorf("invalid repo URL: %w", err)
	}

	cfg.Instance.RepoURL = repoURL.String()

	if cfg.Auth.CacheSize <= 0 || cfg.Auth.ChecksPerSecond <= 0 || cfg.Auth.Burst <= 0 {
		return errInvalidAuthLimits
	}

	if cfg.Auth.CacheTTL <= 0 {
		return errNonPositiveAuthTTL
	}

	if cfg.Cache.Enabled && cfg.Cache.Size <= 0 {
		return errInvalidCacheSize
	}

	if cfg.Limiter.Enabled && (cfg.Limiter.Rate <= 0 || cfg.Limiter.Burst <= 0 ||
		cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 ||
		cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128) {
		return errInvalidLimiter
	}

	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return errInvalidLogFormat
	}

	if err := cfg.loadSessionKey(); err != nil {
		return err
	}

	renderer, err := cfg.buildRenderer()
	if err != nil {
		return err
	}

	cfg.Markup.Renderer = renderer

	return nil
}

func (cfg *ServerConfig) validateListener() error {
	if cfg.Basic.UnixSocket == "" {
		if cfg.Basic.Host == "" {
			cfg.Basic.Host = "localhost"
			log.Info().
				Str("host", cfg.Basic.Host).
				Msg("Binding to default host")
		}

		if cfg.Basic.Port == "" {
			cfg.Basic.Port = "8383"
			log.Info().
				Str("port", cfg.Basic.Port).
				Msg("Using default port")
		}

		return nil
	}

	if cfg.Basic.Host != "" || cfg.Basic.Port != "" {
		return errUnixSocketWithHostPort
	}

	mode, err := parseFileMode(cfg.Basic.RawUnixSocketPermissions)
	if err != nil {
		return err
	}

	cfg.Basic.UnixSocketPermissions = mode

	if cfg.Basic.UnixSocketUser != "" && !accountExists(cfg.Basic.UnixSocketUser, lookupUserID, lookupUser) {
		return errUnixSocketUserDoesNotExist
	}

	if cfg.Basic.UnixSocketGroup != "" && !accountExists(cfg.Basic.UnixSocketGroup, lookupGroupID, lookupGroup) {
		return errUnixSocketGroupDoesNotExist
	}

	return nil
}

// parseFileMode accepts "660", "0660" or "rw-rw----". The empty string means 0666.
func parseFileMode(raw string) (os.FileMode, error) {
	switch {
	case raw == "":
		return 0o666, nil
	case fileModeOctalRegexp.MatchString(raw):
		mode, _ := strconv.ParseUint(raw, 8, 32)

		return os.FileMode(mode), nil
	case fileModeStringRegexp.MatchString(raw):
		const highestBit = 8

		mode := os.FileMode(0)

		for i, c := range raw {
			if c != '-' {
				mode |= 1 << (highestBit - i)
			}
		}

		return mode, nil
	default:
		return 0, errUnixSocketInvalidPermissions
	}
}

func lookupUserID(id string) error {
	_, err := user.LookupId(id)

	return err
}

func lookupUser(name string) error {
	_, err := user.Lookup(name)

	return err
}

func lookupGroupID(id string) error {
	_, err := user.LookupGroupId(id)

	return err
}

func lookupGroup(name string) error {
	_, err := user.LookupGroup(name)

	return err
}

// accountExists looks value up as a numeric id when it is all digits, as a name otherwise.
func accountExists(value string, byID, byName func(string) error) bool {
	if digitsRegexp.MatchString(value) {
		return byID(value) == nil
	}

	return byName(value) == nil
}

// loadSessionKey parses basic.secret. Without one, a key is generated for
// this process only, so sessions do not survive a restart.
func (cfg *ServerConfig) loadSessionKey() error {
	if cfg.Basic.SessionSecret == "" {
		cfg.Basic.SessionKey = paseto.NewV4AsymmetricSecretKey()

		log.Warn().
			Msgf("basic.secret is not set; sessions will not survive a restart. To keep them, add this to config.yaml:\nbasic:\n  secret: %q",
				cfg.Basic.SessionKey.ExportHex())

		return nil
	}

	key, err := paseto.NewV4AsymmetricSecretKeyFromHex(cfg.Basic.SessionSecret)
	if err != nil {
		return fmt.Errorf("%w: %w", errSessionSecretInvalid, err)
	}

	cfg.Basic.SessionKey = key

	// the parsed key is all we need from here on
	cfg.Basic.SessionSecret = ""

	return nil
}

func (cfg *ServerConfig) buildRenderer() (*markup.Renderer, error) {
	variant, err := markup.ParseVariant(cfg.Markup.Variant)
	if err != nil {
		return nil, fmt.Errorf("invalid markup.variant: %w", err)
	}

	mc := markup.Config{
		Variant:            variant,
		LegacyBracketStrip: cfg.Markup.LegacyBracketStrip,
		LinkTargetPrefix:   cfg.Markup.LinkTargetPrefix,
	}

	if cfg.Markup.StylesFile != "" {
		styles, err := markup.LoadStylesFile(cfg.Markup.StylesFile)
		if err != nil {
			return nil, fmt.Errorf("invalid markup.stylesFile: %w", err)
		}

		mc.Styles = styles

		log.Info().
			Str("path", cfg.Markup.StylesFile).
			Int("roles", len(styles)).
			Msg("Loaded markup style overrides")
	}

	cfg.Markup.RendererConfig = mc

	return markup.New(mc), nil
}
