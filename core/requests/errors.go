// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

var (
	errInvalidJSON      = errors.New("response contained invalid JSON")
	errAPIResponseError = errors.New("API response indicated error")
)

// APIError is a failed exchange with the dictionary API.
type APIError struct {
	// StatusCode is zero when no response arrived.
	StatusCode int

	// Message is the API's explanation, or the start of an unparsable body.
	Message string

	Err error
}

func (e *APIError) Error() string {
	msg := e.Err.Error()

	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}

	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status code: %d)", msg, e.StatusCode)
	}

	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// StatusCode returns the status of the first *APIError in err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}

// statusError describes an error status, preferring the message field of a
// JSON body over the status text.
func statusError(status int, body []byte) *APIError {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = http.StatusText(status)
	}

	if msg == "" {
		msg = "An unknown API error occurred"
	}

	return &APIError{StatusCode: status, Message: msg, Err: errAPIResponseError}
}

// unwrapPayload validates a JSON document from the API and returns its body
// field, or the whole document when it has none. A document flagged with
// "error": true is an *APIError even though it came with 200 OK.
func unwrapPayload(raw []byte) ([]byte, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &APIError{Err: errInvalidJSON, Message: truncate(string(raw))}
	}

	doc := gjson.ParseBytes(raw)

	if doc.Get("error").Bool() {
		msg := doc.Get("message").String()
		if msg == "" {
			msg = "API response contained an error with no message"
		}

		return nil, &APIError{StatusCode: http.StatusOK, Message: msg, Err: errAPIResponseError}
	}

	if body := doc.Get("body"); body.Exists() {
		return []byte(body.Raw), nil
	}

	return raw, nil
}

const maxLoggedBody = 256

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}

	return s[:maxLoggedBody] + "…"
}
