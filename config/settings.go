package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/dustin/go-humanize"

	"github.com/krau/download-manager/pkg/indexer"
)

// Error is a fatal configuration error. Accepted lists the values the key may take.
type Error struct {
	Key      string
	Value    string
	Accepted []string
	Mapping  string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s %q", e.Key, e.Value)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %s", e.Err)
	}
	if len(e.Accepted) > 0 {
		fmt.Fprintf(&b, ". Must be one of the following: %s", strings.Join(e.Accepted, ", "))
	}
	if e.Mapping != "" {
		fmt.Fprintf(&b, ". Mapping: %s", e.Mapping)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

type tier struct {
	code  string
	value string
}

type tierTable struct {
	key   string
	tiers []tier
}

func (t tierTable) codes() []string {
	return slice.Map(t.tiers, func(_ int, tr tier) string { return tr.code })
}

func (t tierTable) mapping() string {
	return strings.Join(slice.Map(t.tiers, func(_ int, tr tier) string {
		value := tr.value
		if value == "" {
			value = "none"
		}
		return tr.code + ": " + value
	}), ", ")
}

func (t tierTable) lookup(code string) (string, error) {
	code = strings.TrimSpace(code)
	for _, tr := range t.tiers {
		if tr.code == code {
			return tr.value, nil
		}
	}
	return "", &Error{Key: t.key, Value: code, Accepted: t.codes(), Mapping: t.mapping()}
}

// VideoQualities maps max_video_quality codes to a maximum height. The empty value means
// no video at all (audio only download).
var VideoQualities = tierTable{key: "max_video_quality", tiers: []tier{
	{"-1", ""}, {"0", "144"}, {"1", "240"}, {"2", "360"}, {"3", "480"},
	{"4", "720"}, {"5", "1080"}, {"6", "2160"},
}}

// AudioQualities maps max_audio_quality codes to a bitrate in kbit/s.
var AudioQualities = tierTable{key: "max_audio_quality", tiers: []tier{
	{"0", "64"}, {"1", "96"}, {"2", "128"}, {"3", "160"},
}}

// EncodingPresets maps encoding_standard codes to x264/x265 presets.
var EncodingPresets = tierTable{key: "encoding_standard", tiers: []tier{
	{"0", "faster"}, {"1", "fast"}, {"2", "medium"}, {"3", "slow"}, {"4", "slower"},
}}

// CRFValues maps crf codes to constant rate factors, higher codes trade size for quality.
var CRFValues = tierTable{key: "crf", tiers: []tier{
	{"0", "32"}, {"1", "28"}, {"2", "23"}, {"3", "21"}, {"4", "18"},
}}

const invalidFileNameChars = `/\:*?"<>|`

// Settings are the validated and mapped values the core consumes.
type Settings struct {
	IndexFileName  string
	IndexTemplate  string
	IndexDate      string
	DefaultSaveDir string
	VideoOnly      bool
	// MaxDownloadSizeMiB is zero when unlimited.
	MaxDownloadSizeMiB uint64
	// VideoHeight is empty for audio only downloads.
	VideoHeight     string
	AudioBitrate    string
	Preset          string
	CRF             string
	UseH265         bool
	AutoInstall     bool
	Verbose         bool
	Retries         int
	FragmentRetries int
}

// AudioOnly reports whether video streams are skipped entirely.
func (s Settings) AudioOnly() bool {
	return !s.VideoOnly && s.VideoHeight == ""
}

// Settings validates c and maps every tier code to its value.
func (c *Config) Settings() (*Settings, error) {
	s := &Settings{
		VideoOnly:       c.Downloading.VideoOnly,
		UseH265:         c.Encoding.UseH265,
		AutoInstall:     c.Engine.AutoInstall,
		Verbose:         c.Engine.Verbose,
		Retries:         c.Engine.Retries,
		FragmentRetries: c.Engine.FragmentRetries,
		IndexDate:       c.Indexing.Date,
	}
	var err error
	if s.VideoHeight, err = VideoQualities.lookup(c.Downloading.MaxVideoQuality); err != nil {
		return nil, err
	}
	if s.AudioBitrate, err = AudioQualities.lookup(c.Downloading.MaxAudioQuality); err != nil {
		return nil, err
	}
	if s.Preset, err = EncodingPresets.lookup(c.Encoding.EncodingStandard); err != nil {
		return nil, err
	}
	if s.CRF, err = CRFValues.lookup(c.Encoding.CRF); err != nil {
		return nil, err
	}
	if s.MaxDownloadSizeMiB, err = parseMaxSize(c.Downloading.MaxDownloadSize); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.Indexing.IndexFileName)
	if name == "" || strings.ContainsAny(name, invalidFileNameChars) {
		return nil, &Error{Key: "index_file_name", Value: name, Err: fmt.Errorf("must not be empty or contain any of %s", invalidFileNameChars)}
	}
	s.IndexFileName = filepath.Clean(name) + ".txt"

	if err := indexer.ValidateTemplate(c.Indexing.IndexingFormat); err != nil {
		return nil, &Error{Key: "indexing_format", Value: c.Indexing.IndexingFormat, Err: err}
	}
	s.IndexTemplate = c.Indexing.IndexingFormat

	if loc := strings.TrimSpace(c.Indexing.DefaultDownloadLocation); loc != "" && loc != "none" {
		s.DefaultSaveDir = filepath.Clean(loc)
	}

	if s.Retries < 0 || s.FragmentRetries < 0 {
		return nil, &Error{Key: "engine.retries", Value: fmt.Sprintf("%d/%d", s.Retries, s.FragmentRetries), Err: fmt.Errorf("must not be negative")}
	}
	return s, nil
}

// parseMaxSize accepts -1 (unlimited), a plain number of MiB or a humanized size like 500MB.
func parseMaxSize(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-1" {
		return 0, nil
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		if n == 0 {
			return 0, &Error{Key: "max_download_size", Value: raw, Err: fmt.Errorf("must be -1 or greater than 0")}
		}
		return n, nil
	}
	bytes, err := humanize.ParseBytes(raw)
	if err != nil {
		return 0, &Error{Key: "max_download_size", Value: raw, Err: err}
	}
	mib := bytes / humanize.MiByte
	if mib == 0 {
		return 0, &Error{Key: "max_download_size", Value: raw, Err: fmt.Errorf("must be at least 1MiB")}
	}
	return mib, nil
}
