package platform

import "strings"

const (
	twitchScheme   = "https://www.twitch.tv/videos/"
	twitchIDLength = 10
)

type twitch struct{}

// NewTwitch returns the sanitizer for twitch.tv VOD URLs. Twitch has no playlist support.
func NewTwitch() Sanitizer {
	return twitch{}
}

func (twitch) Platform() ID {
	return Twitch
}

func (twitch) URLScheme() string {
	return twitchScheme
}

func (twitch) SampleURLs() []string {
	return []string{twitchScheme + "[VIDEO_CODE]"}
}

func (twitch) SupportsPlaylists() bool {
	return false
}

func (twitch) IsPlaylist(string) bool {
	return false
}

func (twitch) ExtractVideoPart(url string, schemeLen int) (string, int) {
	next := strings.IndexAny(url[schemeLen:], "?&")
	if next == -1 {
		return url[schemeLen:], NoTrailing
	}
	next += schemeLen
	return url[schemeLen:next], next
}

// ExtractVideoAndPlaylistParts returns empty parts, which never validate.
func (twitch) ExtractVideoAndPlaylistParts(string, int) (string, string) {
	return "", ""
}

func (twitch) PlaylistURL(string, string) string {
	return ""
}

func (twitch) ValidateVideoPart(part string) bool {
	if len(part) != twitchIDLength {
		return false
	}
	for i := 0; i < len(part); i++ {
		if part[i] < '0' || part[i] > '9' {
			return false
		}
	}
	return true
}

func (twitch) ValidatePlaylist(string) bool {
	return false
}
