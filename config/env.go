// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var errUnsupportedFieldType = errors.New("unsupported field type")

// readEnv fills the fields of cfg that carry an `env:"NAME[,overwrite]"` tag
// from the process environment.
//
// Without overwrite a variable only fills a field that is still zero, so the
// YAML file wins over it.
func readEnv(cfg *ServerConfig) error {
	return walkEnv(reflect.ValueOf(cfg).Elem())
}

func walkEnv(v reflect.Value) error {
	t := v.Type()

	for i := range t.NumField() {
		sf := t.Field(i)
		field := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		tag, ok := sf.Tag.Lookup("env")
		if !ok {
			if field.Kind() == reflect.Struct {
				if err := walkEnv(field); err != nil {
					return err
				}
			}

			continue
		}

		name, opts, _ := strings.Cut(tag, ",")

		raw, set := os.LookupEnv(name)
		if !set || (opts != "overwrite" && !field.IsZero()) {
			continue
		}

		if err := assign(field.Addr().Interface(), raw); err != nil {
			return fmt.Errorf("env var %s=%q: %w", name, raw, err)
		}
	}

	return nil
}

// assign parses raw into the field p points to.
func assign(p any, raw string) error {
	var err error

	switch dst := p.(type) {
	case *string:
		*dst = raw
	case *bool:
		*dst, err = strconv.ParseBool(raw)
	case *int:
		*dst, err = strconv.Atoi(raw)
	case *float64:
		*dst, err = strconv.ParseFloat(raw, 64)
	case *time.Duration:
		*dst, err = time.ParseDuration(raw)
	case *[]string:
		*dst = splitList(raw)
	default:
		err = fmt.Errorf("%w %T", errUnsupportedFieldType, p)
	}

	return err
}

// splitList splits a comma separated value, dropping blank items.
func splitList(raw string) []string {
	var items []string

	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

// useDotEnv loads the first .env file found in the working directory or next
// to the binary. Variables already in the environment are kept.
func useDotEnv() error {
	var dirs []string

	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}

	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, ".env")

		if _, err := os.Stat(path); err != nil {
			continue
		}

		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}

		log.Info().Str("path", path).Msg("Loaded configuration from .env file")

		return nil
	}

	return nil
}
