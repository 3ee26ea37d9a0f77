package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/rs/xid"

	"github.com/krau/download-manager/core/engine"
	"github.com/krau/download-manager/pkg/indexer"
	"github.com/krau/download-manager/pkg/platform"
)

var ErrEmptyPlaylist = errors.New("playlist has no downloadable entries")

// Indexer records downloaded items. *indexer.Indexer implements it.
type Indexer interface {
	AppendSingle(url, title string, creators []string, platform string) error
	AppendPlaylist(url, title string, entries []indexer.Entry, creators [][]string, platform string) error
}

// Stats counts the outcome of a group of items.
type Stats struct {
	Attempted  int
	Downloaded int
	Indexed    int
}

func (s *Stats) add(o Stats) {
	s.Attempted += o.Attempted
	s.Downloaded += o.Downloaded
	s.Indexed += o.Indexed
}

type PlatformStats struct {
	Platform platform.ID
	Queued   int
	Stats
}

type Report struct {
	Platforms []PlatformStats
	Total     Stats
	Queued    int
	// Interrupted is set when the context was canceled before every item was attempted.
	Interrupted bool
}

// ItemResult is the outcome of one queued URL.
type ItemResult struct {
	Request    engine.Request
	Info       *engine.Info
	Err        error
	Downloaded bool
	Indexed    bool
	IndexErr   error
}

// Reporter is told about progress through the batch.
type Reporter interface {
	PlatformStart(ctx context.Context, id platform.ID, queued int)
	ItemDone(ctx context.Context, res ItemResult, stats PlatformStats, left int)
	PlatformDone(ctx context.Context, stats PlatformStats)
}

type nopReporter struct{}

func (nopReporter) PlatformStart(context.Context, platform.ID, int)          {}
func (nopReporter) ItemDone(context.Context, ItemResult, PlatformStats, int) {}
func (nopReporter) PlatformDone(context.Context, PlatformStats)              {}

// Runner drains a batch through the engine one item at a time and indexes what was
// downloaded. A nil Indexer disables indexing.
type Runner struct {
	Engine   engine.Engine
	Indexer  Indexer
	Tracker  engine.ProgressTracker
	Reporter Reporter
}

// Run processes every platform queue in collection order. A failing item never aborts the
// batch. Cancellation is checked between items only.
func (r *Runner) Run(ctx context.Context, batch *Batch) Report {
	if r.Tracker == nil {
		r.Tracker = engine.NopTracker
	}
	if r.Reporter == nil {
		r.Reporter = nopReporter{}
	}
	report := Report{Queued: batch.Len()}
	for _, id := range batch.Platforms() {
		if ctx.Err() != nil {
			report.Interrupted = true
			break
		}
		items := batch.Items(id)
		ps := PlatformStats{Platform: id, Queued: len(items)}
		r.Reporter.PlatformStart(ctx, id, len(items))
		for k, u := range items {
			if ctx.Err() != nil {
				report.Interrupted = true
				break
			}
			res := r.runItem(ctx, id, u)
			ps.Attempted++
			if res.Downloaded {
				ps.Downloaded++
			}
			if res.Indexed {
				ps.Indexed++
			}
			r.Reporter.ItemDone(ctx, res, ps, len(items)-k-1)
		}
		r.Reporter.PlatformDone(ctx, ps)
		report.Platforms = append(report.Platforms, ps)
		report.Total.add(ps.Stats)
		if report.Interrupted {
			break
		}
	}
	return report
}

func (r *Runner) runItem(ctx context.Context, id platform.ID, u platform.SanitizedURL) ItemResult {
	req := engine.Request{
		ID:        xid.New().String(),
		URL:       u.CanonicalURL,
		DisplayID: u.DisplayID,
		Platform:  id,
		Playlist:  u.IsPlaylist,
	}
	logger := log.FromContext(ctx).With("job", req.ID, "platform", id, "id", req.DisplayID)
	res := ItemResult{Request: req}

	r.Tracker.OnStart(ctx, req)
	info, err := r.Engine.Fetch(ctx, req, r.Tracker)
	if err == nil && req.Playlist && len(info.Entries) == 0 {
		err = ErrEmptyPlaylist
	}
	if err != nil {
		logger.Error("Download failed, skipping", "error", err)
		res.Err = err
		r.Tracker.OnDone(ctx, req, err)
		return res
	}
	res.Info = info
	res.Downloaded = true
	r.Tracker.OnDone(ctx, req, nil)
	logger.Info("Downloaded", "title", info.Title)

	if r.Indexer == nil {
		return res
	}
	if err := r.index(req, info); err != nil {
		logger.Error("Indexing failed", "error", err)
		res.IndexErr = err
		return res
	}
	res.Indexed = true
	return res
}

func (r *Runner) index(req engine.Request, info *engine.Info) error {
	name := req.Platform.String()
	if !req.Playlist {
		return r.Indexer.AppendSingle(req.URL, info.Title, info.Creators, name)
	}
	entries := make([]indexer.Entry, 0, len(info.Entries))
	creators := make([][]string, 0, len(info.Entries))
	for _, e := range info.Entries {
		entries = append(entries, indexer.Entry{URL: e.URL, Title: e.Title})
		creators = append(creators, e.Creators)
	}
	if err := r.Indexer.AppendPlaylist(req.URL, info.Title, entries, creators, name); err != nil {
		return fmt.Errorf("playlist %s: %w", req.DisplayID, err)
	}
	return nil
}
