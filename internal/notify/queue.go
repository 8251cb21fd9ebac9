package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"ptslot/internal/logger"
	"ptslot/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey  = "notifications"
	failedKey = "notifications:failed"

	defaultMaxTries   = 3
	defaultRetryDelay = 5 * time.Second
	popTimeout        = 2 * time.Second
)

// Queue is a Redis list of pending messages drained by a single worker.
// Push is preferred when the recipient has a device and a push sender is
// configured; email is the fallback.
type Queue struct {
	redis      *redis.Client
	email      Sender
	push       Sender
	maxTries   int
	retryDelay time.Duration
}

// NewQueue builds a queue; push may be nil when push delivery is disabled.
func NewQueue(rdb *redis.Client, email, push Sender) *Queue {
	return &Queue{
		redis:      rdb,
		email:      email,
		push:       push,
		maxTries:   defaultMaxTries,
		retryDelay: defaultRetryDelay,
	}
}

func (q *Queue) Enqueue(ctx context.Context, msg Message) error {
	if msg.Created.IsZero() {
		msg.Created = time.Now()
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if err := q.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		logger.Error("failed to queue notification", "user_id", msg.UserID, "error", err)
		return err
	}

	logger.Debug("notification queued", "user_id", msg.UserID, "subject", msg.Subject)
	return nil
}

// Start drains the queue until ctx is cancelled.
func (q *Queue) Start(ctx context.Context) {
	logger.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		default:
			q.processNext(ctx)
		}
	}
}

func (q *Queue) processNext(ctx context.Context) {
	result, err := q.redis.BRPop(ctx, popTimeout, queueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.Warn("notification queue pop failed", "error", err)
			sleep(ctx, time.Second)
		}
		return
	}

	var msg Message
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		logger.Error("dropping malformed notification", "error", err)
		return
	}

	msg.Tries++
	channel, err := q.Deliver(ctx, msg)
	if err != nil {
		q.retryOrFail(ctx, msg, channel, err)
	}

	metrics.SetNotificationQueueLength(q.QueueLength(ctx))
}

// Deliver sends msg right away and reports the channel it used.
func (q *Queue) Deliver(ctx context.Context, msg Message) (string, error) {
	if msg.PushID != "" && q.push != nil {
		err := q.push.Send(ctx, msg)
		if err == nil {
			metrics.RecordNotification(ChannelPush, "sent")
			return ChannelPush, nil
		}
		metrics.RecordNotification(ChannelPush, "error")
		if msg.Email == "" {
			return ChannelPush, err
		}
		logger.Warn("push failed, falling back to email", "user_id", msg.UserID, "error", err)
	}

	if msg.Email == "" {
		return "", ErrNoRecipient
	}

	if err := q.email.Send(ctx, msg); err != nil {
		metrics.RecordNotification(ChannelEmail, "error")
		return ChannelEmail, err
	}
	metrics.RecordNotification(ChannelEmail, "sent")
	return ChannelEmail, nil
}

func (q *Queue) retryOrFail(ctx context.Context, msg Message, channel string, cause error) {
	if msg.Tries < q.maxTries && !errors.Is(cause, ErrNoRecipient) {
		logger.Warn("notification delivery failed, retrying",
			"user_id", msg.UserID, "channel", channel, "attempt", msg.Tries, "error", cause)
		sleep(ctx, q.retryDelay)

		data, _ := json.Marshal(msg)
		if err := q.redis.LPush(context.WithoutCancel(ctx), queueKey, string(data)).Err(); err != nil {
			logger.Error("failed to requeue notification", "user_id", msg.UserID, "error", err)
		}
		return
	}

	logger.Error("notification moved to failed list",
		"user_id", msg.UserID, "channel", channel, "attempts", msg.Tries, "error", cause)
	metrics.RecordNotification(channelOrNone(channel), "failed")

	failed := map[string]interface{}{
		"message": msg,
		"error":   cause.Error(),
		"time":    time.Now(),
	}
	data, _ := json.Marshal(failed)
	if err := q.redis.LPush(context.WithoutCancel(ctx), failedKey, string(data)).Err(); err != nil {
		logger.Error("failed to record failed notification", "user_id", msg.UserID, "error", err)
	}
}

func channelOrNone(channel string) string {
	if channel == "" {
		return "none"
	}
	return channel
}

func (q *Queue) QueueLength(ctx context.Context) int64 {
	length, _ := q.redis.LLen(ctx, queueKey).Result()
	return length
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
