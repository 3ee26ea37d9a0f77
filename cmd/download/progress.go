// Package download renders the progress and results of a download run.
package download

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/common/i18n"
	"github.com/krau/download-manager/common/i18n/i18nk"
	"github.com/krau/download-manager/core/engine"
)

const lineInterval = 2 * time.Second

// NewTracker returns the progress bar UI when interactive is set and it was compiled in,
// and a plain line based tracker otherwise.
func NewTracker(c *console.Console, interactive bool) engine.ProgressTracker {
	if interactive && teaEnabled {
		return newTeaTracker(c)
	}
	return newLineTracker(c)
}

func announce(c *console.Console, req engine.Request) {
	key := i18nk.DownloadAttempt
	if req.Playlist {
		key = i18nk.DownloadAttemptList
	}
	c.Info(i18n.T(key, map[string]any{"ID": req.DisplayID}))
}

// lineTracker prints a throttled progress line per item.
type lineTracker struct {
	console *console.Console
	limiter *rate.Limiter
}

func newLineTracker(c *console.Console) *lineTracker {
	return &lineTracker{
		console: c,
		limiter: rate.NewLimiter(rate.Every(lineInterval), 1),
	}
}

func (t *lineTracker) OnStart(_ context.Context, req engine.Request) {
	announce(t.console, req)
}

func (t *lineTracker) OnProgress(_ context.Context, req engine.Request, p engine.Progress) {
	if p.Finished() {
		t.console.Info(i18n.T(i18nk.DownloadStreamDone))
		return
	}
	if !t.limiter.Allow() {
		return
	}
	t.console.Info(i18n.T(i18nk.DownloadProgress, map[string]any{
		"ID":         req.DisplayID,
		"Status":     p.Status,
		"Downloaded": humanize.Bytes(uint64(max(p.Downloaded, 0))),
		"Total":      humanize.Bytes(uint64(max(p.Total, 0))),
	}))
}

func (t *lineTracker) OnDone(context.Context, engine.Request, error) {}
