package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/AntonStoeckl/library-circulation-go/library/shell"
)

const (
	DefaultStream = "lms:notifications"
	defaultMaxLen = 10000

	FieldUserID  = "user_id"
	FieldSubject = "subject"
	FieldMessage = "message"
	FieldPayload = "payload"
)

var (
	ErrNilRedisClient        = errors.New("redis client must not be nil")
	ErrEmptyStreamName       = errors.New("stream name must not be empty")
	ErrPublishingFailed      = errors.New("publishing notification failed")
	ErrEncodingPayloadFailed = errors.New("encoding notification payload failed")
)

// streamPayload is the JSON document in the payload field. The flat fields duplicate it for
// consumers that do not parse JSON.
type streamPayload struct {
	UserID   string    `json:"userId"`
	Subject  string    `json:"subject"`
	Message  string    `json:"message"`
	QueuedAt time.Time `json:"queuedAt"`
}

// RedisStreamNotifier appends every notification to a capped Redis stream.
type RedisStreamNotifier struct {
	client *redis.Client
	stream string
	maxLen int64
	now    func() time.Time
}

// RedisOption configures a RedisStreamNotifier.
type RedisOption func(*RedisStreamNotifier) error

// WithStream overrides DefaultStream.
func WithStream(stream string) RedisOption {
	return func(n *RedisStreamNotifier) error {
		stream = strings.TrimSpace(stream)
		if stream == "" {
			return ErrEmptyStreamName
		}

		n.stream = stream

		return nil
	}
}

// WithMaxLen caps the stream approximately. Values <= 0 keep the default.
func WithMaxLen(maxLen int64) RedisOption {
	return func(n *RedisStreamNotifier) error {
		if maxLen > 0 {
			n.maxLen = maxLen
		}

		return nil
	}
}

// WithClock sets the source of the queuedAt timestamp.
func WithClock(clock shell.Clock) RedisOption {
	return func(n *RedisStreamNotifier) error {
		n.now = clock.Now

		return nil
	}
}

func NewRedisStreamNotifier(client *redis.Client, options ...RedisOption) (*RedisStreamNotifier, error) {
	if client == nil {
		return nil, ErrNilRedisClient
	}

	n := &RedisStreamNotifier{
		client: client,
		stream: DefaultStream,
		maxLen: defaultMaxLen,
		now:    shell.SystemClock{}.Now,
	}

	for _, option := range options {
		if err := option(n); err != nil {
			return nil, err
		}
	}

	return n, nil
}

func (n *RedisStreamNotifier) Notify(ctx context.Context, notification shell.Notification) error {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(streamPayload{
		UserID:   notification.UserID,
		Subject:  notification.Subject,
		Message:  notification.Message,
		QueuedAt: n.now(),
	})
	if err != nil {
		return errors.Join(ErrEncodingPayloadFailed, err)
	}

	err = n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		MaxLen: n.maxLen,
		Approx: true,
		Values: map[string]any{
			FieldUserID:  notification.UserID,
			FieldSubject: notification.Subject,
			FieldMessage: notification.Message,
			FieldPayload: string(payload),
		},
	}).Err()
	if err != nil {
		return errors.Join(ErrPublishingFailed, err)
	}

	return nil
}

func (n *RedisStreamNotifier) Stream() string {
	return n.stream
}
