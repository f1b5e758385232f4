package notify

import (
	"context"
	"log"

	"github.com/jaehokim/nalssibot/internal/models"
)

// TargetKind discriminates a delivery target.
type TargetKind int

const (
	// TargetDirect delivers to the subscription owner's DMs.
	TargetDirect TargetKind = iota
	// TargetChannel delivers to a shared channel.
	TargetChannel
)

// Target is a resolved delivery destination.
type Target struct {
	Kind TargetKind
	ID   string // user id for TargetDirect, channel id for TargetChannel
}

func DirectTarget(userID string) Target {
	return Target{Kind: TargetDirect, ID: userID}
}

func ChannelTarget(channelID string) Target {
	return Target{Kind: TargetChannel, ID: channelID}
}

// ResolveTarget converts the stored row encoding into a tagged target. This
// is the only place the legacy "DM" sentinel is interpreted.
func ResolveTarget(sub models.Subscription) Target {
	if sub.ChannelID == models.DirectSentinel {
		return DirectTarget(sub.UserID)
	}
	return ChannelTarget(sub.ChannelID)
}

// Message is rendered notification content. How (or whether) a channel
// decorates it further is the channel's business.
type Message struct {
	Title string
	Body  string
}

// Channel delivers messages. Implementations must be safe for concurrent
// use; a tick fans out across subscriptions.
type Channel interface {
	Send(ctx context.Context, target Target, msg Message) error
}

// LogChannel writes deliveries to the process log. Used when no delivery
// backend is configured, and by tests.
type LogChannel struct{}

func (LogChannel) Send(_ context.Context, target Target, msg Message) error {
	log.Printf("notify: [%s → %v/%s] %s", msg.Title, target.Kind, target.ID, msg.Body)
	return nil
}
