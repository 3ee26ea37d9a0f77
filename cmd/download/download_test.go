package download_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/krau/download-manager/cmd/download"
	"github.com/krau/download-manager/common/console"
	"github.com/krau/download-manager/core"
	"github.com/krau/download-manager/core/engine"
	"github.com/krau/download-manager/pkg/platform"
)

func TestLineTracker(t *testing.T) {
	var out bytes.Buffer
	tracker := download.NewTracker(console.New(strings.NewReader(""), &out), false)
	ctx := context.Background()
	req := engine.Request{DisplayID: "PL1", Playlist: true}

	tracker.OnStart(ctx, req)
	tracker.OnProgress(ctx, req, engine.Progress{Status: "downloading", Downloaded: 1024, Total: 2048})
	tracker.OnProgress(ctx, req, engine.Progress{Status: "downloading", Downloaded: 1536, Total: 2048})
	tracker.OnProgress(ctx, req, engine.Progress{Status: "finished", Downloaded: 2048, Total: 2048})
	tracker.OnDone(ctx, req, nil)

	got := out.String()
	if !strings.Contains(got, "Attempting to download playlist: PL1") {
		t.Errorf("missing attempt line: %q", got)
	}
	if strings.Count(got, "PL1: downloading") != 1 {
		t.Errorf("progress lines are not throttled: %q", got)
	}
	if !strings.Contains(got, "1.0 kB / 2.0 kB") {
		t.Errorf("missing humanized sizes: %q", got)
	}
	if !strings.Contains(got, "Done downloading a stream") {
		t.Errorf("missing stream done line: %q", got)
	}
}

func TestReporter(t *testing.T) {
	var out bytes.Buffer
	r := download.NewReporter(console.New(strings.NewReader(""), &out))
	ctx := context.Background()

	r.PlatformStart(ctx, platform.Youtube, 2)
	ok := core.ItemResult{Request: engine.Request{DisplayID: "aaaaaaaaaaa"}, Downloaded: true, IndexErr: errors.New("disk full")}
	bad := core.ItemResult{Request: engine.Request{DisplayID: "bbbbbbbbbbb"}, Err: errors.New("private video")}
	stats := core.PlatformStats{Platform: platform.Youtube, Queued: 2, Stats: core.Stats{Attempted: 2, Downloaded: 1}}
	r.ItemDone(ctx, ok, stats, 1)
	r.ItemDone(ctx, bad, stats, 0)
	r.PlatformDone(ctx, stats)
	r.Summary(core.Report{Platforms: []core.PlatformStats{stats}, Total: stats.Stats, Queued: 2, Interrupted: true})

	for _, want := range []string{
		"entries for platform Youtube",
		"Downloaded: aaaaaaaaaaa",
		"failed to index it: disk full",
		"Failed to download bbbbbbbbbbb: private video",
		"downloaded 1 and indexed 0 entries out of 2",
		"Downloaded 1 and indexed 0 entries out of 2",
		"Interrupted",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output does not contain %q", want)
		}
	}
}
