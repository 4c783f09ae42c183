// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package i18n

import (
	"context"
	"io"
)

// MsgKey is a msgid held for later translation, such as a navigation label
// declared at package level. It is the English text itself.
type MsgKey string

// Tr translates the key into the locale of ctx.
func (k MsgKey) Tr(ctx context.Context) string {
	return Tr(ctx, string(k))
}

// Render writes the translation unescaped, which makes a MsgKey usable as a
// templ.Component.
func (k MsgKey) Render(ctx context.Context, w io.Writer) error {
	_, err := io.WriteString(w, k.Tr(ctx))

	return err
}

// UserError is an error whose message is already translated and can be shown
// to the reader as is.
type UserError struct {
	msg string
}

// NewUserError translates msgid for ctx and wraps it as an error.
func NewUserError(ctx context.Context, msgid string, kv ...any) *UserError {
	return &UserError{msg: Tr(ctx, msgid, kv...)}
}

func (e *UserError) Error() string {
	return e.msg
}
