package platform

import "strings"

// NoTrailing is returned by ExtractVideoPart when the item id runs to the end of the URL.
const NoTrailing = -1

// SanitizedURL is the canonical form of one accepted URL.
type SanitizedURL struct {
	// CanonicalURL is the fetch key with every non essential parameter removed.
	CanonicalURL string
	// DisplayID is the video id for single items and the playlist id for playlists.
	DisplayID  string
	VideoID    string
	PlaylistID string
	IsPlaylist bool
}

// Sanitizer validates and decomposes URLs of one platform.
type Sanitizer interface {
	Platform() ID
	URLScheme() string
	SampleURLs() []string
	// SupportsPlaylists must be checked before calling ExtractVideoAndPlaylistParts.
	SupportsPlaylists() bool
	IsPlaylist(url string) bool
	// ExtractVideoPart returns the item id starting at schemeLen and the index where the
	// trailing parameters begin, or NoTrailing.
	ExtractVideoPart(url string, schemeLen int) (string, int)
	ExtractVideoAndPlaylistParts(url string, schemeLen int) (string, string)
	// PlaylistURL builds the canonical URL of a playlist from its validated parts.
	PlaylistURL(video, list string) string
	ValidateVideoPart(part string) bool
	ValidatePlaylist(part string) bool
}

// Sanitize checks url against s and returns its canonical form. It has no side effects and
// reports every invalid input as false. url is taken as is, surrounding whitespace included.
func Sanitize(s Sanitizer, url string) (SanitizedURL, bool) {
	scheme := s.URLScheme()
	if len(url) <= len(scheme) || !strings.HasPrefix(url, scheme) {
		return SanitizedURL{}, false
	}
	schemeLen := len(scheme)

	if s.SupportsPlaylists() && s.IsPlaylist(url) {
		video, list := s.ExtractVideoAndPlaylistParts(url, schemeLen)
		if !s.ValidateVideoPart(video) || !s.ValidatePlaylist(list) {
			return SanitizedURL{}, false
		}
		return SanitizedURL{
			CanonicalURL: s.PlaylistURL(video, list),
			DisplayID:    list,
			VideoID:      video,
			PlaylistID:   list,
			IsPlaylist:   true,
		}, true
	}

	video, next := s.ExtractVideoPart(url, schemeLen)
	if !s.ValidateVideoPart(video) {
		return SanitizedURL{}, false
	}
	canonical := url
	if next != NoTrailing {
		canonical = url[:next]
	}
	return SanitizedURL{
		CanonicalURL: canonical,
		DisplayID:    video,
		VideoID:      video,
	}, true
}

func isIDChar(c byte) bool {
	return c >= '0' && c <= '9' ||
		c >= 'A' && c <= 'Z' ||
		c >= 'a' && c <= 'z' ||
		c == '-' || c == '_'
}

func allIDChars(part string) bool {
	for i := 0; i < len(part); i++ {
		if !isIDChar(part[i]) {
			return false
		}
	}
	return true
}
