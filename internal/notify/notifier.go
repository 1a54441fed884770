// Package notify defines the notification interface and implementations
// for matched-post delivery.
package notify

import (
	"context"
	"fmt"

	domain "github.com/donaldgifford/group-post-monitor/pkg/types"
)

// PostSubject is the subject line of every matched-post notification.
const PostSubject = "New Apartment Post Matching Your Criteria"

// Message is a plain-text notification.
type Message struct {
	Subject string
	Body    string
}

// Notifier defines the interface for delivering notifications.
type Notifier interface {
	Send(ctx context.Context, msg *Message) error
}

// PostMessage renders the notification for a matched post.
func PostMessage(p *domain.Post) *Message {
	return &Message{
		Subject: PostSubject,
		Body: fmt.Sprintf(
			"New post found in group %s:\n\n%s\n\nLink: %s",
			p.GroupID, p.Message, p.URL(),
		),
	}
}
