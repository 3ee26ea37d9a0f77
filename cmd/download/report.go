package download

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/common/i18n"
	"github.com/krau/download-manager/common/i18n/i18nk"
	"github.com/krau/download-manager/core"
	"github.com/krau/download-manager/pkg/platform"
)

var _ core.Reporter = (*Reporter)(nil)

// Reporter prints the outcome of every item and platform to the console.
type Reporter struct {
	console *console.Console
}

func NewReporter(c *console.Console) *Reporter {
	return &Reporter{console: c}
}

func (r *Reporter) PlatformStart(ctx context.Context, id platform.ID, queued int) {
	log.FromContext(ctx).Debug("Platform queue started", "platform", id, "queued", queued)
	r.console.Banner(i18n.T(i18nk.DownloadPlatformStart, map[string]any{"Platform": id}))
}

func (r *Reporter) ItemDone(ctx context.Context, res core.ItemResult, _ core.PlatformStats, left int) {
	id := res.Request.DisplayID
	if res.Err != nil {
		r.console.Error(i18n.T(i18nk.DownloadFailed, map[string]any{"ID": id, "Error": res.Err}))
	} else {
		r.console.Success(i18n.T(i18nk.DownloadSucceeded, map[string]any{"ID": id}))
	}
	if res.IndexErr != nil {
		r.console.Error(i18n.T(i18nk.DownloadIndexFailed, map[string]any{"ID": id, "Error": res.IndexErr}))
	}
	log.FromContext(ctx).Debug("Item finished", "id", id, "left", left)
}

func (r *Reporter) PlatformDone(_ context.Context, ps core.PlatformStats) {
	r.console.Success(i18n.T(i18nk.DownloadPlatformDone, map[string]any{
		"Platform":   ps.Platform,
		"Downloaded": ps.Downloaded,
		"Indexed":    ps.Indexed,
		"Total":      ps.Queued,
	}))
	r.console.Blank()
}

// Summary prints the totals of a finished run.
func (r *Reporter) Summary(report core.Report) {
	r.console.Banner(i18n.T(i18nk.DownloadAllDone, map[string]any{
		"Downloaded": report.Total.Downloaded,
		"Indexed":    report.Total.Indexed,
		"Total":      report.Queued,
	}))
	if report.Interrupted {
		r.console.Error(i18n.T(i18nk.Interrupted))
	}
}
