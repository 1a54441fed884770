package filter

import (
	"time"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// Filter applies Criteria to batches of posts and tracks, per group, the
// creation time of the newest post it has evaluated (the watermark).
//
// A Filter is not safe for concurrent use. It is owned by a single monitor
// loop and discarded when that loop stops.
type Filter struct {
	criteria domain.Criteria
	lastSeen map[string]time.Time
}

// New creates a Filter with empty watermarks.
func New(c domain.Criteria) *Filter {
	return &Filter{
		criteria: c,
		lastSeen: make(map[string]time.Time),
	}
}

// Apply returns, in input order, the posts for groupID that carry a
// message, have a price within range, contain every keyword, and are newer
// than the group's watermark.
//
// Recency is judged against the watermark as it stood before this batch.
// Every recent post with a message advances the watermark, including posts
// rejected on price or keywords, so no post is evaluated twice.
func (f *Filter) Apply(groupID string, posts []domain.Post) []domain.Post {
	prev, hasPrev := f.lastSeen[groupID]
	newest, advanced := prev, false

	var out []domain.Post
	for i := range posts {
		p := &posts[i]
		if !p.HasMessage {
			continue
		}
		if hasPrev && !p.CreatedTime.After(prev) {
			continue
		}

		if !advanced || p.CreatedTime.After(newest) {
			newest = p.CreatedTime
			advanced = true
		}

		if f.Match(p.Message) {
			out = append(out, *p)
		}
	}

	if advanced {
		f.lastSeen[groupID] = newest
	}
	return out
}

// Match reports whether msg satisfies the price and keyword criteria.
func (f *Filter) Match(msg string) bool {
	price, ok := ExtractPrice(msg)
	if !ok || !InRange(price, f.criteria.MinPrice, f.criteria.MaxPrice) {
		return false
	}
	return KeywordsPresent(msg, f.criteria.Keywords)
}

// LastSeen returns the watermark for groupID, if one has been recorded.
func (f *Filter) LastSeen(groupID string) (time.Time, bool) {
	t, ok := f.lastSeen[groupID]
	return t, ok
}
