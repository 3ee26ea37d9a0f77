// Package engine describes the external media extraction engine the core delegates
// fetching, muxing and transcoding to.
package engine

import (
	"context"
	"time"

	"github.com/krau/download-manager/pkg/platform"
)

// Request is one engine invocation. Playlists are fetched with a single request.
type Request struct {
	// ID correlates log lines of one item.
	ID        string
	URL       string
	DisplayID string
	Platform  platform.ID
	Playlist  bool
}

// Info is the metadata returned for a fetched item. Entries is only set for playlists.
type Info struct {
	ID       string
	Title    string
	Uploader string
	URL      string
	Creators []string
	// Files are the paths of the saved media files, when the engine reports them.
	Files   []string
	Entries []*Info
}

// Engine fetches one URL. A returned error means nothing usable was retrieved.
type Engine interface {
	Fetch(ctx context.Context, req Request, tracker ProgressTracker) (*Info, error)
}

// Progress is a snapshot reported while an item downloads.
type Progress struct {
	Status     string
	Filename   string
	Title      string
	Downloaded int
	Total      int
	ETA        time.Duration
}

// Finished reports whether the current stream is fully downloaded.
func (p Progress) Finished() bool {
	return p.Status == "finished"
}

// ProgressTracker observes the lifecycle of every request.
type ProgressTracker interface {
	OnStart(ctx context.Context, req Request)
	OnProgress(ctx context.Context, req Request, p Progress)
	OnDone(ctx context.Context, req Request, err error)
}

type nopTracker struct{}

func (nopTracker) OnStart(context.Context, Request)              {}
func (nopTracker) OnProgress(context.Context, Request, Progress) {}
func (nopTracker) OnDone(context.Context, Request, error)        {}

// NopTracker discards every event.
var NopTracker ProgressTracker = nopTracker{}
