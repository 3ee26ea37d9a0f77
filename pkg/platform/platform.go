package platform

import "strings"

// ID identifies a supported source site.
type ID string

const (
	Youtube ID = "Youtube"
	Twitch  ID = "Twitch"
)

func (id ID) String() string {
	return string(id)
}

// IDNames returns the registered platform ids in match priority order.
func IDNames() []string {
	names := make([]string, 0, len(matchTokens))
	for _, t := range matchTokens {
		names = append(names, t.id.String())
	}
	return names
}

// ParseID parses a platform id, ignoring case.
func ParseID(name string) (ID, bool) {
	for _, t := range matchTokens {
		if strings.EqualFold(t.id.String(), name) {
			return t.id, true
		}
	}
	return "", false
}

// HostPrefix is the transport and host boilerplate every supported URL starts with.
const HostPrefix = "https://www."

type matchToken struct {
	token string
	id    ID
}

// match tokens must stay disjoint, the first one that matches wins
var matchTokens = []matchToken{
	{token: "youtube", id: Youtube},
	{token: "twitch", id: Twitch},
}

// Match classifies a raw URL by its host prefix. It never fails: anything that is not
// https://www.<registered host> is reported as no match, including input with leading
// whitespace.
func Match(raw string) (ID, bool) {
	rest, ok := strings.CutPrefix(raw, HostPrefix)
	if !ok {
		return "", false
	}
	for _, t := range matchTokens {
		if strings.HasPrefix(rest, t.token) {
			return t.id, true
		}
	}
	return "", false
}
