package graph

import (
	"time"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// timeLayout is the timestamp format the Graph API uses for created_time.
const timeLayout = "2006-01-02T15:04:05-0700"

// FeedItem is a single entry of a feed response's data array.
type FeedItem struct {
	ID          string  `json:"id"`
	Message     *string `json:"message,omitempty"`
	CreatedTime string  `json:"created_time"`
}

// ToPosts converts feed items into domain posts, preserving order. Items
// whose created_time cannot be parsed are dropped and counted in skipped.
func ToPosts(groupID string, items []FeedItem) (posts []domain.Post, skipped int) {
	posts = make([]domain.Post, 0, len(items))
	for i := range items {
		p, ok := toPost(groupID, &items[i])
		if !ok {
			skipped++
			continue
		}
		posts = append(posts, p)
	}
	return posts, skipped
}

func toPost(groupID string, item *FeedItem) (domain.Post, bool) {
	created, err := ParseTime(item.CreatedTime)
	if err != nil {
		return domain.Post{}, false
	}

	p := domain.Post{
		ID:          item.ID,
		GroupID:     groupID,
		CreatedTime: created,
	}
	if item.Message != nil {
		p.Message = *item.Message
		p.HasMessage = true
	}
	return p, true
}

// ParseTime parses a Graph API timestamp. RFC 3339 is accepted as well.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err == nil {
		return t, nil
	}
	if t, rerr := time.Parse(time.RFC3339, s); rerr == nil {
		return t, nil
	}
	return time.Time{}, err
}
