package platform

import "strings"

const (
	youtubeScheme    = "https://www.youtube.com/watch?v="
	youtubeListParam = "&list="
	youtubeIDLength  = 11
)

type youtube struct{}

// NewYoutube returns the sanitizer for youtube.com watch URLs.
func NewYoutube() Sanitizer {
	return youtube{}
}

func (youtube) Platform() ID {
	return Youtube
}

func (youtube) URLScheme() string {
	return youtubeScheme
}

func (youtube) SampleURLs() []string {
	return []string{
		youtubeScheme + "[VIDEO_CODE]",
		youtubeScheme + "[VIDEO_CODE]" + youtubeListParam + "[PLAYLIST_CODE]",
	}
}

func (youtube) SupportsPlaylists() bool {
	return true
}

func (youtube) IsPlaylist(url string) bool {
	if len(url) < len(youtubeScheme) {
		return false
	}
	return strings.Contains(url[len(youtubeScheme):], youtubeListParam)
}

func (youtube) ExtractVideoPart(url string, schemeLen int) (string, int) {
	next := strings.IndexByte(url[schemeLen:], '&')
	if next == -1 {
		return url[schemeLen:], NoTrailing
	}
	next += schemeLen
	return url[schemeLen:next], next
}

func (y youtube) ExtractVideoAndPlaylistParts(url string, schemeLen int) (string, string) {
	video, _ := y.ExtractVideoPart(url, schemeLen)
	listAt := strings.Index(url[schemeLen:], youtubeListParam)
	if listAt == -1 {
		return video, ""
	}
	rest := url[schemeLen+listAt+len(youtubeListParam):]
	if end := strings.IndexByte(rest, '&'); end != -1 {
		rest = rest[:end]
	}
	return video, rest
}

func (youtube) PlaylistURL(video, list string) string {
	return youtubeScheme + video + youtubeListParam + list
}

func (youtube) ValidateVideoPart(part string) bool {
	return len(part) == youtubeIDLength && allIDChars(part)
}

func (youtube) ValidatePlaylist(part string) bool {
	return part != "" && allIDChars(part)
}
