package board

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Notification is the user-facing event emitted after every board
// operation, success or failure.
type Notification struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

const (
	NoteSuccess = "success"
	NoteError   = "error"
	NoteWarning = "warning"
	NoteInfo    = "info"
)

// Notifier delivers notifications to whatever UI sink is listening.
type Notifier interface {
	Publish(ctx context.Context, n Notification)
}

// RedisNotifier broadcasts notifications over a redis pub/sub channel so
// connected clients receive them as toasts. With no redis client
// configured it degrades to structured logging.
type RedisNotifier struct {
	client  *redis.Client
	channel string
	log     *logrus.Logger
}

func NewRedisNotifier(client *redis.Client, channel string, log *logrus.Logger) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		channel: channel,
		log:     log,
	}
}

func (n *RedisNotifier) Publish(ctx context.Context, note Notification) {
	entry := n.log.WithFields(logrus.Fields{
		"type":  note.Type,
		"title": note.Title,
	})

	if n.client == nil {
		entry.Info(note.Message)
		return
	}

	payload, err := json.Marshal(note)
	if err != nil {
		entry.WithError(err).Error("failed to encode notification")
		return
	}
	if err := n.client.Publish(ctx, n.channel, payload).Err(); err != nil {
		// The notification channel is a side channel; losing one must
		// never fail the operation that produced it.
		entry.WithError(err).Warn("failed to publish notification")
		return
	}
	entry.Debug(note.Message)
}
