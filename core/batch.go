package core

import "github.com/krau/download-manager/pkg/platform"

// Batch groups the collected URLs per platform. Platforms are drained in the order their
// first URL was added, URLs in the order they were added.
type Batch struct {
	order []platform.ID
	items map[platform.ID][]platform.SanitizedURL
	last  []platform.ID
}

func NewBatch() *Batch {
	return &Batch{items: make(map[platform.ID][]platform.SanitizedURL)}
}

func (b *Batch) Add(id platform.ID, u platform.SanitizedURL) {
	if _, ok := b.items[id]; !ok {
		b.order = append(b.order, id)
	}
	b.items[id] = append(b.items[id], u)
	b.last = append(b.last, id)
}

// RemoveLast drops the most recently added URL.
func (b *Batch) RemoveLast() (platform.SanitizedURL, bool) {
	if len(b.last) == 0 {
		return platform.SanitizedURL{}, false
	}
	id := b.last[len(b.last)-1]
	b.last = b.last[:len(b.last)-1]
	queue := b.items[id]
	u := queue[len(queue)-1]
	queue = queue[:len(queue)-1]
	if len(queue) > 0 {
		b.items[id] = queue
		return u, true
	}
	delete(b.items, id)
	for i, p := range b.order {
		if p == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	return u, true
}

// Len returns the number of URLs over all platforms.
func (b *Batch) Len() int {
	return len(b.last)
}

func (b *Batch) Platforms() []platform.ID {
	return b.order
}

func (b *Batch) Items(id platform.ID) []platform.SanitizedURL {
	return b.items[id]
}
