// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package entry fetches dictionary entries from the dictionary API.
package entry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"

	"codeberg.org/dialectfe/dialectfe/core/requests"
)

var (
	// ErrNotFound means the API has no entry for the word.
	ErrNotFound = errors.New("entry not found")

	ErrEmptyWord = errors.New("empty word")
)

// maxRelated bounds how many related entries are previewed at once.
const maxRelated = 8

// Entry is one headword with its entry text in dictionary markup.
type Entry struct {
	Word    string
	Text    string
	Dialect string
	Related []string
}

// Preview is a related entry shown below the main one.
type Preview struct {
	Word string
	// Text is the first line of the related entry's text, still in markup.
	Text string
}

// endpoint returns the API URL for word.
func endpoint(word string) string {
	return requests.Endpoint("/api/entry", url.Values{"word": {word}})
}

// Fetch returns the entry for word.
func Fetch(ctx context.Context, word string, incomingHeaders http.Header) (*Entry, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, ErrEmptyWord
	}

	body, err := requests.GetJSON(ctx, endpoint(word), incomingHeaders)
	if err != nil {
		if requests.StatusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, word)
		}

		return nil, fmt.Errorf("fetching entry %q: %w", word, err)
	}

	return parse(word, body)
}

func parse(word string, body []byte) (*Entry, error) {
	result := gjson.ParseBytes(body)

	text := result.Get("text")
	if !text.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, word)
	}

	e := &Entry{
		Word:    result.Get("word").String(),
		Text:    text.String(),
		Dialect: result.Get("dialect").String(),
	}

	if e.Word == "" {
		e.Word = word
	}

	for _, related := range result.Get("related").Array() {
		if w := strings.TrimSpace(related.String()); w != "" && w != e.Word {
			e.Related = append(e.Related, w)
		}
	}

	return e, nil
}

// FetchPreviews fetches the related entries of e concurrently. Related words
// the API does not know are skipped; any other failure fails the batch.
func FetchPreviews(ctx context.Context, e *Entry, incomingHeaders http.Header) ([]Preview, error) {
	words := e.Related
	if len(words) > maxRelated {
		words = words[:maxRelated]
	}

	previews := make([]Preview, len(words))
	found := make([]bool, len(words))

	g, gctx := errgroup.WithContext(ctx)

	for i, word := range words {
		g.Go(func() error {
			related, err := Fetch(gctx, word, incomingHeaders)
			if errors.Is(err, ErrNotFound) {
				return nil
			}

			if err != nil {
				return err
			}

			previews[i] = Preview{Word: related.Word, Text: firstLine(related.Text)}
			found[i] = true

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Preview, 0, len(previews))

	for i, p := range previews {
		if found[i] {
			out = append(out, p)
		}
	}

	return out, nil
}

// Forget drops the cached API response for word. A blank word forgets nothing.
func Forget(word string) int {
	word = strings.TrimSpace(word)
	if word == "" {
		return 0
	}

	return requests.InvalidateURLs([]string{endpoint(word)})
}

func firstLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	line, _, _ := strings.Cut(s, "\n")

	return line
}
