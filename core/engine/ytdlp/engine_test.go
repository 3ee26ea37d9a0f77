package ytdlp

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/krau/download-manager/config"
	"github.com/krau/download-manager/core/engine"
)

func testOptions() Options {
	return Options{
		SaveDir:         "/media",
		VideoHeight:     "1080",
		AudioBitrate:    "128",
		Preset:          "medium",
		CRF:             "23",
		Retries:         3,
		FragmentRetries: 5,
	}
}

func hasFlag(args []string, flag, value string) bool {
	i := slices.Index(args, flag)
	if i == -1 {
		return false
	}
	if value == "" {
		return true
	}
	return i+1 < len(args) && args[i+1] == value
}

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// argv returns the arguments yt-dlp would be started with, without the executable.
func argv(t *testing.T, cmd *ytdlp.Command, url string) []string {
	t.Helper()
	if err := cmd.GetFlagConfig().Validate(); err != nil {
		t.Fatalf("invalid flags: %v", err)
	}
	args := cmd.SetExecutable("yt-dlp").BuildCommand(context.Background(), url).Args
	if len(args) < 2 || args[len(args)-1] != url {
		t.Fatalf("url must be the last argument: %v", args)
	}
	return args[1:]
}

func TestCommandDefaultMode(t *testing.T) {
	args := argv(t, testOptions().Command(false), testURL)
	checks := []struct{ flag, value string }{
		{"--output", filepath.Join("/media", OutputTemplate)},
		{"--format", "bestvideo[height<=1080]+bestaudio/best[height<=1080]"},
		{"--merge-output-format", "mkv"},
		{"--recode-video", "mkv"},
		{"--postprocessor-args", "VideoConvertor:-c:v libx264 -c:a libopus -crf 23 -b:a 128k -preset medium"},
		{"--retries", "3"},
		{"--fragment-retries", "5"},
		{"--no-playlist", ""},
		{"--ignore-errors", ""},
		{"--no-write-subs", ""},
		{"--dump-single-json", ""},
		{"--no-simulate", ""},
		{"--progress", ""},
	}
	for _, c := range checks {
		if !hasFlag(args, c.flag, c.value) {
			t.Fatalf("args %v missing %s %s", args, c.flag, c.value)
		}
	}
	for _, flag := range []string{"--max-filesize", "--extract-audio", "--yes-playlist", "--verbose"} {
		if hasFlag(args, flag, "") {
			t.Fatalf("unexpected %s in %v", flag, args)
		}
	}
}

func TestCommandAudioOnly(t *testing.T) {
	o := testOptions()
	o.AudioOnly = true
	o.VideoHeight = ""
	o.MaxSizeMiB = 200
	o.Verbose = true
	args := argv(t, o.Command(true), testURL)
	for _, c := range []struct{ flag, value string }{
		{"--format", "bestaudio/best"},
		{"--extract-audio", ""},
		{"--audio-format", "opus"},
		{"--audio-quality", "128K"},
		{"--max-filesize", "200M"},
		{"--yes-playlist", ""},
		{"--playlist-items", "1:"},
		{"--verbose", ""},
	} {
		if !hasFlag(args, c.flag, c.value) {
			t.Fatalf("args %v missing %s %s", args, c.flag, c.value)
		}
	}
	if hasFlag(args, "--recode-video", "") || hasFlag(args, "--no-playlist", "") {
		t.Fatalf("unexpected flags in %v", args)
	}
}

func TestCommandVideoOnly(t *testing.T) {
	o := testOptions()
	o.VideoOnly = true
	o.UseH265 = true
	args := argv(t, o.Command(false), testURL)
	if !hasFlag(args, "--postprocessor-args", "VideoConvertor:-c:v libx265 -crf 23 -preset medium -an") {
		t.Fatalf("unexpected postprocessor args: %v", args)
	}
	if !hasFlag(args, "--format", "bestvideo[height<=1080]/best[height<=1080]") {
		t.Fatalf("unexpected format: %v", args)
	}
	if hasFlag(args, "--merge-output-format", "") {
		t.Fatalf("video only must not merge audio: %v", args)
	}
}

func TestNewOptions(t *testing.T) {
	s := &config.Settings{VideoHeight: "", AudioBitrate: "64", Preset: "fast", CRF: "28", MaxDownloadSizeMiB: 10}
	o := NewOptions(s, "/out")
	if !o.AudioOnly || o.MaxSizeMiB != 10 || o.SaveDir != "/out" {
		t.Fatalf("unexpected options: %+v", o)
	}
	if !strings.HasSuffix(o.Output(), OutputTemplate) {
		t.Fatalf("Output() = %q", o.Output())
	}
}

const singleJSON = `{"_type":"video","id":"dQw4w9WgXcQ","title":"Never Gonna Give You Up","uploader":"Rick Astley","webpage_url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`

const playlistJSON = `{"_type":"playlist","id":"PL1","title":"Mix","uploader":null,"channel":"Someone","entries":[` +
	`{"id":"aaaaaaaaaaa","title":"first","uploader":"A","webpage_url":"https://www.youtube.com/watch?v=aaaaaaaaaaa"},` +
	`null,` +
	`{"id":"bbbbbbbbbbb","title":"second","channel":"B","webpage_url":"https://www.youtube.com/watch?v=bbbbbbbbbbb"}]}`

func TestDecodeInfo(t *testing.T) {
	stdout := "[download] progress line\n{\"status\":\"downloading\"}\n" + singleJSON + "\n"
	info, err := decodeInfo(stdout)
	if err != nil {
		t.Fatalf("decodeInfo: %v", err)
	}
	if info.Title != "Never Gonna Give You Up" || info.ID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(info.Creators) != 1 || info.Creators[0] != "Rick Astley" {
		t.Fatalf("Creators = %v", info.Creators)
	}
}

func TestDecodePlaylist(t *testing.T) {
	info, err := decodeInfo(playlistJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Entries) != 2 {
		t.Fatalf("expected null entries to be dropped, got %d", len(info.Entries))
	}
	if info.Creators[0] != "Someone" || info.Entries[1].Creators[0] != "B" {
		t.Fatalf("unexpected creators: %+v", info)
	}
}

func TestDecodeInfoWithoutMetadata(t *testing.T) {
	if _, err := decodeInfo("ERROR: video unavailable\n{\"status\":\"error\"}"); !errors.Is(err, ErrNoMetadata) {
		t.Fatalf("expected ErrNoMetadata, got %v", err)
	}
}

type recordingTracker struct {
	progress []engine.Progress
}

func (r *recordingTracker) OnStart(context.Context, engine.Request) {}
func (r *recordingTracker) OnProgress(_ context.Context, _ engine.Request, p engine.Progress) {
	r.progress = append(r.progress, p)
}
func (r *recordingTracker) OnDone(context.Context, engine.Request, error) {}

func TestFetch(t *testing.T) {
	e := New(testOptions())
	var gotArgs []string
	e.run = func(ctx context.Context, cmd *ytdlp.Command, url string, onProgress func(engine.Progress)) (string, error) {
		gotArgs = argv(t, cmd, url)
		onProgress(engine.Progress{Status: "finished"})
		return singleJSON, nil
	}
	tracker := &recordingTracker{}
	req := engine.Request{ID: "job", URL: testURL}
	info, err := e.Fetch(context.Background(), req, tracker)
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "Never Gonna Give You Up" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if !hasFlag(gotArgs, "--no-playlist", "") {
		t.Fatalf("single video fetched as playlist: %v", gotArgs)
	}
	if len(tracker.progress) != 1 || !tracker.progress[0].Finished() {
		t.Fatalf("progress not forwarded: %+v", tracker.progress)
	}
}

func TestFetchFailures(t *testing.T) {
	errExit := errors.New("exit status 1")
	tests := []struct {
		name     string
		stdout   string
		err      error
		playlist bool
		wantErr  bool
	}{
		{name: "no output", err: errExit, wantErr: true},
		{name: "clean exit without metadata", stdout: "nothing", wantErr: true},
		{name: "single with error", stdout: singleJSON, err: errExit, wantErr: true},
		{name: "partial playlist", stdout: playlistJSON, err: errExit, playlist: true},
		{name: "canceled", stdout: singleJSON, err: context.Canceled, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testOptions())
			e.run = func(context.Context, *ytdlp.Command, string, func(engine.Progress)) (string, error) {
				return tt.stdout, tt.err
			}
			info, err := e.Fetch(context.Background(), engine.Request{URL: "u", Playlist: tt.playlist}, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && info == nil {
				t.Fatal("expected info")
			}
		})
	}
}

func TestFetchInspectsSavedFiles(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "song.txt")
	if err := os.WriteFile(saved, []byte("plain text content\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "gone.mkv")
	stdout := `{"id":"dQw4w9WgXcQ","title":"t","requested_downloads":[{"filepath":"` + saved + `"},{"filepath":"` + missing + `"},{}]}`

	e := New(testOptions())
	e.run = func(context.Context, *ytdlp.Command, string, func(engine.Progress)) (string, error) {
		return stdout, nil
	}
	var buf bytes.Buffer
	ctx := log.WithContext(context.Background(), log.New(&buf))
	info, err := e.Fetch(ctx, engine.Request{URL: "u"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Files) != 2 {
		t.Fatalf("Files = %v", info.Files)
	}
	if !strings.Contains(buf.String(), "text/plain") {
		t.Fatalf("media type not logged: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "not readable") {
		t.Fatalf("missing file not reported: %q", buf.String())
	}
}
