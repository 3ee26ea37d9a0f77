package platform

import "errors"

var (
	ErrNoMatch       = errors.New("url does not match any registered platform")
	ErrNotRegistered = errors.New("no sanitizer registered for platform")
	ErrMalformed     = errors.New("url matches platform but does not meet its requirements")
)

// Registry holds one sanitizer per platform in registration order.
type Registry struct {
	sanitizers []Sanitizer
}

func NewRegistry(sanitizers ...Sanitizer) *Registry {
	r := &Registry{}
	for _, s := range sanitizers {
		r.Register(s)
	}
	return r
}

// Default returns a registry with every built in platform.
func Default() *Registry {
	return NewRegistry(NewYoutube(), NewTwitch())
}

// Register adds s, replacing an earlier sanitizer for the same platform.
func (r *Registry) Register(s Sanitizer) {
	for i, existing := range r.sanitizers {
		if existing.Platform() == s.Platform() {
			r.sanitizers[i] = s
			return
		}
	}
	r.sanitizers = append(r.sanitizers, s)
}

func (r *Registry) Get(id ID) (Sanitizer, bool) {
	for _, s := range r.sanitizers {
		if s.Platform() == id {
			return s, true
		}
	}
	return nil, false
}

func (r *Registry) Sanitizers() []Sanitizer {
	return r.sanitizers
}

func (r *Registry) Len() int {
	return len(r.sanitizers)
}

// Classify runs the matcher and the platform sanitizer on raw. The returned error tells
// which stage rejected the input: ErrNoMatch, ErrNotRegistered or ErrMalformed.
func (r *Registry) Classify(raw string) (ID, SanitizedURL, error) {
	id, ok := Match(raw)
	if !ok {
		return "", SanitizedURL{}, ErrNoMatch
	}
	s, ok := r.Get(id)
	if !ok {
		return id, SanitizedURL{}, ErrNotRegistered
	}
	su, ok := Sanitize(s, raw)
	if !ok {
		return id, SanitizedURL{}, ErrMalformed
	}
	return id, su, nil
}
