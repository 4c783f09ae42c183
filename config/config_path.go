// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
)

const configFlag = "config"

// configFilePath picks the YAML file to read: the -config flag when given,
// then DIALECTFE_CONFIGFILE, then config.yaml or config.yml in the working
// directory. A missing default file is not an error; readYAML skips it.
func configFilePath() string {
	if flag.Lookup(configFlag) == nil {
		flag.String(configFlag, defaultConfigFile, "Path to a DialectFE configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	explicit := false

	flag.Visit(func(f *flag.Flag) {
		explicit = explicit || f.Name == configFlag
	})

	if explicit {
		return flag.Lookup(configFlag).Value.String()
	}

	if env := os.Getenv("DIALECTFE_CONFIGFILE"); env != "" {
		return env
	}

	for _, candidate := range []string{defaultConfigFile, "./config.yml"} {
		if _, err := os.Stat(candidate); !errors.Is(err, fs.ErrNotExist) {
			return candidate
		}
	}

	return defaultConfigFile
}
