// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/user"
	"strconv"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/config"
)

var (
	errChmodSocket = errors.New("failed to change unix socket permissions")
	errChownSocket = errors.New("failed to change unix socket ownership")
)

// listen opens the unix socket when one is configured, and the TCP address
// otherwise.
func listen(ctx context.Context) (net.Listener, error) {
	var lc net.ListenConfig

	basic := config.Global.Basic

	if basic.UnixSocket != "" {
		l, err := lc.Listen(ctx, "unix", basic.UnixSocket)
		if err != nil {
			return nil, fmt.Errorf("failed to listen on unix socket %s: %w", basic.UnixSocket, err)
		}

		if err := prepareSocket(basic.UnixSocket, basic.UnixSocketUser, basic.UnixSocketGroup, basic.UnixSocketPermissions); err != nil {
			_ = l.Close()

			return nil, err
		}

		log.Info().Str("address", basic.UnixSocket).Msg("Listening on Unix domain socket")

		return l, nil
	}

	l, err := lc.Listen(ctx, "tcp", net.JoinHostPort(basic.Host, basic.Port))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s:%s: %w", basic.Host, basic.Port, err)
	}

	// the port is only known here when 0 was configured
	port := strconv.Itoa(l.Addr().(*net.TCPAddr).Port)

	log.Info().
		Str("address", l.Addr().String()).
		Str("url", "http://localhost:"+port+"/").
		Msg("Listening on address")

	return l, nil
}

// prepareSocket hands the socket to the configured owner and applies its mode.
func prepareSocket(path, owner, group string, mode os.FileMode) error {
	uid, err := resolveID(owner, func(name string) (string, error) {
		u, err := user.Lookup(name)
		if err != nil {
			return "", err
		}

		return u.Uid, nil
	})
	if err != nil {
		return fmt.Errorf("%w: user %q: %w", errChownSocket, owner, err)
	}

	gid, err := resolveID(group, func(name string) (string, error) {
		g, err := user.LookupGroup(name)
		if err != nil {
			return "", err
		}

		return g.Gid, nil
	})
	if err != nil {
		return fmt.Errorf("%w: group %q: %w", errChownSocket, group, err)
	}

	if uid != -1 || gid != -1 {
		if err := os.Chown(path, uid, gid); err != nil {
			return fmt.Errorf("%w: %w", errChownSocket, err)
		}
	}

	if err := os.Chmod(path, mode); err != nil {
		return fmt.Errorf("%w: %w", errChmodSocket, err)
	}

	return nil
}

// resolveID turns a numeric ID or a name into an ID. An empty value is -1,
// which os.Chown leaves unchanged.
func resolveID(value string, lookup func(string) (string, error)) (int, error) {
	if value == "" {
		return -1, nil
	}

	if id, err := strconv.Atoi(value); err == nil {
		return id, nil
	}

	raw, err := lookup(value)
	if err != nil {
		return -1, err
	}

	return strconv.Atoi(raw)
}
