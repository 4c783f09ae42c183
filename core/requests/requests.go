// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package requests talks to the dictionary API: it builds requests, times
// and logs them, caches public responses and turns error payloads into
// [*APIError] values.
package requests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"codeberg.org/dialectfe/dialectfe/config"
	"codeberg.org/dialectfe/dialectfe/core/audit"
	"codeberg.org/dialectfe/dialectfe/core/idgen"
	"codeberg.org/dialectfe/dialectfe/server/request_context"
	"codeberg.org/dialectfe/dialectfe/server/utils"
)

// Endpoint joins the configured API base URL with path and query.
func Endpoint(path string, query url.Values) string {
	u := config.Global.API.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	return u
}

// GetJSON makes a GET request and extracts the JSON payload from the response.
//
// When the response wraps its payload in a `body` field, the content of that
// field is returned; otherwise the whole document is.
//
// Returns an error if:
//   - The request fails or the status is 400 or above
//   - The response contains invalid JSON
//   - The "error" field is a boolean true
func GetJSON(ctx context.Context, url string, incomingHeaders http.Header) ([]byte, error) {
	respBody, err := do(ctx, RequestOptions{
		Method:          http.MethodGet,
		URL:             url,
		IncomingHeaders: incomingHeaders,
	})
	if err != nil {
		return nil, err
	}

	return unwrapPayload(respBody)
}

// PostForm sends form as a urlencoded POST and extracts the JSON payload the
// same way as GetJSON.
func PostForm(ctx context.Context, url string, form url.Values) ([]byte, error) {
	respBody, err := do(ctx, RequestOptions{
		Method: http.MethodPost,
		URL:    url,
		Form:   form,
	})
	if err != nil {
		return nil, err
	}

	return unwrapPayload(respBody)
}

// Do sends an HTTP request and returns the response and its body.
//
// GET responses may be served from the cache. The `Body` field of the
// returned response is a NopCloser over the same bytes.
//
// This function does not check for non-OK status codes, leaving that task to the caller.
func Do(ctx context.Context, opts RequestOptions) (*http.Response, []byte, error) {
	policy := determineCachePolicy(opts)
	if item := policy.cachedItem; item != nil {
		logCacheHit(ctx, opts, item)

		return &http.Response{
			StatusCode: item.StatusCode,
			Header:     item.Header.Clone(),
			Body:       io.NopCloser(bytes.NewReader(item.Body)),
		}, item.Body, nil
	}

	req, err := newRequest(ctx, opts)
	if err != nil {
		return nil, nil, err
	}

	resp, bodyBytes, err := sendRequest(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode == http.StatusOK && policy.shouldStore {
		if err := storeResponse(opts.URL, resp, bodyBytes); err != nil {
			// Log the error but don't fail the request.
			log.Ctx(ctx).Warn().Err(err).Msg("Failed to cache API response")
		}
	}

	return resp, bodyBytes, nil
}

// do performs a request and turns an error status into an *APIError.
func do(ctx context.Context, opts RequestOptions) ([]byte, error) {
	resp, body, err := Do(ctx, opts)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, statusError(resp.StatusCode, body)
	}

	return body, nil
}

// newRequest constructs an *http.Request from RequestOptions.
func newRequest(ctx context.Context, opts RequestOptions) (*http.Request, error) {
	var reqBody io.Reader

	if opts.Method == http.MethodPost && opts.Form != nil {
		reqBody = strings.NewReader(opts.Form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, opts.Method, opts.URL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "DialectFE/"+config.BuildVersion)
	req.Header.Set("Accept", "application/json")

	if lang := opts.IncomingHeaders.Get("Accept-Language"); lang != "" {
		req.Header.Set("Accept-Language", lang)
	}

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return req, nil
}

// sendRequest executes the HTTP request under the configured timeout and
// reads the body for auditing.
func sendRequest(
	ctx context.Context,
	req *http.Request,
) (_ *http.Response, _ []byte, err error) {
	span := audit.Span{
		Destination: audit.ToDictionary,
		RequestID:   request_context.FromContext(ctx).RequestID + "-" + idgen.Make(),
		Method:      req.Method,
		URL:         redactURL(req.URL),
	}

	defer func() {
		span.Error = err
		span.End()

		if err != nil {
			span.Log()
		}
	}()

	_ = span.Begin(ctx)

	if timeout := config.Global.API.Timeout; timeout > 0 {
		timeoutCtx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		req = req.WithContext(timeoutCtx)
	}

	resp, err := utils.APIClient.Do(req)
	if err != nil {
		return nil, nil, &APIError{Err: fmt.Errorf("failed to make HTTP request: %w", err)}
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	span.Size = len(body)

	span.End()
	span.Log()

	// Replace the consumed body with a new reader so the caller can still read it.
	resp.Body = io.NopCloser(bytes.NewReader(body))

	return resp, body, nil
}

// redactURL hides the token query parameter from logs.
func redactURL(u *url.URL) string {
	query := u.Query()
	if !query.Has("token") {
		return u.String()
	}

	query.Set("token", "redacted")

	redacted := *u
	redacted.RawQuery = query.Encode()

	return redacted.String()
}

func logCacheHit(ctx context.Context, opts RequestOptions, item *cachedItem) {
	span := audit.Span{
		Destination: audit.ToDictionary,
		RequestID:   request_context.FromContext(ctx).RequestID,
		Method:      opts.Method,
		URL:         item.URL,
		StatusCode:  item.StatusCode,
		Size:        len(item.Body),
		Cached:      true,
	}

	_ = span.Begin(ctx)
	span.End()
	span.Log()
}

// IsContextCanceled returns true if the error is due to context cancellation or deadline exceeded.
func IsContextCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
