// Copyright 2025, the DialectFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"runtime/trace"
	"strconv"
	"strings"
	"time"

	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TrafficDestination names the side of the proxy a request went to.
type TrafficDestination string

const (
	ToUser       TrafficDestination = "user"
	ToDictionary TrafficDestination = "dictionary"
)

// Span times one HTTP exchange, served or sent, and logs it when done.
//
// The exported fields are filled in by the caller. Begin and End manage the
// rest.
type Span struct {
	Destination TrafficDestination
	RequestID   string
	Method      string
	URL         string
	StatusCode  int
	Error       error

	// Size is the length of the response body.
	Size int

	// Cached marks a dictionary response served from the entry cache.
	Cached bool

	task     *trace.Task
	metric   *servertiming.Metric
	start    time.Time
	duration time.Duration
}

// ServerTimingName identifies the span in a Server-Timing header. Header
// tokens cannot hold the URL as is, so it is base64 encoded without padding.
func (span *Span) ServerTimingName() string {
	return strings.Join([]string{
		string(span.Destination),
		span.Method,
		base64.RawURLEncoding.EncodeToString([]byte(span.URL)),
	}, "$")
}

// Begin starts the clock. When ctx carries a Server-Timing header the span
// adds a metric to it.
func (span *Span) Begin(ctx context.Context) context.Context {
	span.start = time.Now()

	ctx, span.task = trace.NewTask(ctx, "http."+string(span.Destination))

	if h := servertiming.FromContext(ctx); h != nil {
		span.metric = h.NewMetric(span.ServerTimingName())
		span.metric.Extra = map[string]string{
			"start": strconv.FormatFloat(float64(span.start.UnixMicro())/1e3, 'f', -1, 64),
		}
	}

	return ctx
}

// End stops the clock. Only the first call counts.
func (span *Span) End() {
	if span.task == nil {
		return
	}

	span.duration = time.Since(span.start)
	span.task.End()
	span.task = nil

	if span.metric != nil {
		span.metric.Duration = span.duration
	}
}

func (span *Span) Duration() time.Duration {
	return span.duration
}

// Log writes the span at debug level, or at warn level when it failed.
func (span *Span) Log() {
	var event *zerolog.Event

	if span.Error != nil || span.StatusCode >= 500 {
		event = log.Warn().Err(span.Error)
	} else {
		event = log.Debug()
	}

	event.
		Str("sys", "http").
		Str("destination", string(span.Destination)).
		Str("request_id", span.RequestID).
		Str("method", span.Method).
		Str("url", span.URL).
		Int("status_code", span.StatusCode).
		Str("len", humanizeSize(span.Size)).
		Dur("dur", span.duration)

	if span.Cached {
		event.Bool("cached", true)
	}

	event.Send()
}

// humanizeSize formats n bytes with a binary unit suffix.
func humanizeSize(n int) string {
	if n < 1024 {
		return strconv.Itoa(n)
	}

	size := float64(n)
	unit := 0

	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}

	return strconv.FormatFloat(size, 'f', 2, 64) + sizeUnits[unit]
}

var sizeUnits = []string{"", "K", "M", "G"}
