package ytdlp

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/krau/download-manager/config"
)

// OutputTemplate is the yt-dlp file name template inside the save directory.
const OutputTemplate = "%(title)s.%(ext)s"

// Options is the engine configuration derived from the validated settings.
type Options struct {
	SaveDir         string
	VideoOnly       bool
	AudioOnly       bool
	VideoHeight     string
	AudioBitrate    string
	Preset          string
	CRF             string
	UseH265         bool
	MaxSizeMiB      uint64
	Retries         int
	FragmentRetries int
	Verbose         bool
}

func NewOptions(s *config.Settings, saveDir string) Options {
	return Options{
		SaveDir:         saveDir,
		VideoOnly:       s.VideoOnly,
		AudioOnly:       s.AudioOnly(),
		VideoHeight:     s.VideoHeight,
		AudioBitrate:    s.AudioBitrate,
		Preset:          s.Preset,
		CRF:             s.CRF,
		UseH265:         s.UseH265,
		MaxSizeMiB:      s.MaxDownloadSizeMiB,
		Retries:         s.Retries,
		FragmentRetries: s.FragmentRetries,
		Verbose:         s.Verbose,
	}
}

func (o Options) Output() string {
	return filepath.Join(o.SaveDir, OutputTemplate)
}

func (o Options) videoCodec() string {
	if o.UseH265 {
		return "libx265"
	}
	return "libx264"
}

// Format returns the yt-dlp format selector.
func (o Options) Format() string {
	switch {
	case o.AudioOnly:
		return "bestaudio/best"
	case o.VideoOnly && o.VideoHeight != "":
		return fmt.Sprintf("bestvideo[height<=%s]/best[height<=%s]", o.VideoHeight, o.VideoHeight)
	case o.VideoOnly:
		return "bestvideo/best"
	default:
		return fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best[height<=%s]", o.VideoHeight, o.VideoHeight)
	}
}

// Command returns the yt-dlp command for one fetch. Only the URL is left to pass to Run.
func (o Options) Command(playlist bool) *ytdlp.Command {
	cmd := ytdlp.New().
		Output(o.Output()).
		IgnoreErrors().
		NoWriteSubs().
		Retries(strconv.Itoa(o.Retries)).
		FragmentRetries(strconv.Itoa(o.FragmentRetries)).
		Format(o.Format())
	if playlist {
		cmd.YesPlaylist().PlaylistItems("1:")
	} else {
		cmd.NoPlaylist()
	}

	switch {
	case o.AudioOnly:
		cmd.ExtractAudio().
			AudioFormat("opus").
			AudioQuality(o.AudioBitrate + "K")
	case o.VideoOnly:
		cmd.RecodeVideo("mkv").
			PostProcessorArgs(convertorArgs(
				"-c:v", o.videoCodec(),
				"-crf", o.CRF,
				"-preset", o.Preset,
				"-an",
			))
	default:
		cmd.MergeOutputFormat("mkv").
			RecodeVideo("mkv").
			PostProcessorArgs(convertorArgs(
				"-c:v", o.videoCodec(),
				"-c:a", "libopus",
				"-crf", o.CRF,
				"-b:a", o.AudioBitrate+"k",
				"-preset", o.Preset,
			))
	}

	if o.MaxSizeMiB > 0 {
		cmd.MaxFileSize(strconv.FormatUint(o.MaxSizeMiB, 10) + "M")
	}
	if o.Verbose {
		cmd.Verbose()
	}
	// metadata of the fetched item, printed once everything is downloaded. It implies quiet
	// mode, Progress keeps the progress lines coming.
	return cmd.DumpSingleJSON().NoSimulate().Progress()
}

func convertorArgs(args ...string) string {
	return "VideoConvertor:" + strings.Join(args, " ")
}
