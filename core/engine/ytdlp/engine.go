// Package ytdlp implements the download engine on top of the yt-dlp binary.
package ytdlp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-json"
	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/krau/download-manager/core/engine"
)

const progressInterval = 500 * time.Millisecond

var ErrNoMetadata = errors.New("yt-dlp returned no metadata")

type runFunc func(ctx context.Context, cmd *ytdlp.Command, url string, onProgress func(engine.Progress)) (string, error)

var _ engine.Engine = (*Engine)(nil)

type Engine struct {
	opts Options
	run  runFunc
}

func New(opts Options) *Engine {
	return &Engine{
		opts: opts,
		run:  runYtdlp,
	}
}

// Install downloads the yt-dlp binary into the go-ytdlp cache when it is missing.
func Install(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}

// Fetch implements engine.Engine.
func (e *Engine) Fetch(ctx context.Context, req engine.Request, tracker engine.ProgressTracker) (*engine.Info, error) {
	logger := log.FromContext(ctx).With("job", req.ID)
	if tracker == nil {
		tracker = engine.NopTracker
	}
	cmd := e.opts.Command(req.Playlist)
	logger.Debug("Executing yt-dlp", "url", req.URL, "playlist", req.Playlist)

	stdout, runErr := e.run(ctx, cmd, req.URL, func(p engine.Progress) {
		tracker.OnProgress(ctx, req, p)
	})
	if errors.Is(runErr, context.Canceled) {
		return nil, runErr
	}
	info, decodeErr := decodeInfo(stdout)
	if decodeErr != nil {
		if runErr != nil {
			return nil, fmt.Errorf("yt-dlp execution failed: %w", runErr)
		}
		return nil, decodeErr
	}
	if runErr != nil {
		if !req.Playlist {
			return nil, fmt.Errorf("yt-dlp execution failed: %w", runErr)
		}
		// entries that failed are already dropped by --ignore-errors
		logger.Warn("yt-dlp reported errors for some playlist entries", "error", runErr)
	}
	if info.URL == "" {
		info.URL = req.URL
	}
	inspectFiles(logger, info)
	return info, nil
}

// inspectFiles logs the detected media type of every saved file.
func inspectFiles(logger *log.Logger, info *engine.Info) {
	for _, f := range info.Files {
		mt, err := mimetype.DetectFile(f)
		if err != nil {
			logger.Warn("Saved file is not readable", "file", f, "error", err)
			continue
		}
		logger.Info("Saved file", "file", filepath.Base(f), "type", mt.String())
	}
	for _, entry := range info.Entries {
		inspectFiles(logger, entry)
	}
}

func runYtdlp(ctx context.Context, cmd *ytdlp.Command, url string, onProgress func(engine.Progress)) (string, error) {
	cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		p := engine.Progress{
			Status:     string(update.Status),
			Filename:   update.Filename,
			Downloaded: update.DownloadedBytes,
			Total:      update.TotalBytes,
			ETA:        update.ETA(),
		}
		if update.Info != nil && update.Info.Title != nil {
			p.Title = *update.Info.Title
		}
		onProgress(p)
	})
	result, err := cmd.Run(ctx, url)
	if result == nil {
		return "", err
	}
	if err == nil && result.ExitCode != 0 {
		err = fmt.Errorf("yt-dlp exited with code %d: %s", result.ExitCode, result.Stderr)
	}
	return result.Stdout, err
}

type extractedInfo struct {
	Type       string           `json:"_type"`
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	Uploader   string           `json:"uploader"`
	Channel    string           `json:"channel"`
	WebpageURL string           `json:"webpage_url"`
	Entries    []*extractedInfo `json:"entries"`

	RequestedDownloads []struct {
		Filepath string `json:"filepath"`
	} `json:"requested_downloads"`
}

func (x *extractedInfo) toInfo() *engine.Info {
	info := &engine.Info{
		ID:       x.ID,
		Title:    x.Title,
		Uploader: x.Uploader,
		URL:      x.WebpageURL,
	}
	switch {
	case x.Uploader != "":
		info.Creators = []string{x.Uploader}
	case x.Channel != "":
		info.Creators = []string{x.Channel}
	}
	for _, d := range x.RequestedDownloads {
		if d.Filepath != "" {
			info.Files = append(info.Files, d.Filepath)
		}
	}
	for _, entry := range x.Entries {
		if entry == nil {
			continue
		}
		info.Entries = append(info.Entries, entry.toInfo())
	}
	return info
}

// decodeInfo finds the metadata document printed by --dump-single-json. It is the last JSON
// object line carrying an id; other lines are progress or log output.
func decodeInfo(stdout string) (*engine.Info, error) {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(stdout))
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); strings.HasPrefix(line, "{") {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read yt-dlp output: %w", err)
	}
	for i := len(lines) - 1; i >= 0; i-- {
		var x extractedInfo
		if err := json.Unmarshal([]byte(lines[i]), &x); err != nil {
			continue
		}
		if x.ID != "" {
			return x.toInfo(), nil
		}
	}
	return nil, ErrNoMetadata
}
