// Package events publishes command lifecycle events to a Redis stream.
package events

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream every command event is appended to.
const DefaultStream = "stackbuddy.commands"

const maxStreamLen = 10000

// Event statuses.
const (
	StatusDispatched = "dispatched"
	StatusAnswered   = "answered"
	StatusFailed     = "failed"
)

// Event describes one step of a command invocation.
type Event struct {
	ID      string
	Token   string
	Channel string
	Author  string
	Stage   string
	Status  string
	Error   string
	Time    time.Time
}

// Values flattens the event into stream fields.
func (e Event) Values() map[string]interface{} {
	ts := e.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	return map[string]interface{}{
		"id":      e.ID,
		"token":   e.Token,
		"channel": e.Channel,
		"author":  e.Author,
		"stage":   e.Stage,
		"status":  e.Status,
		"error":   e.Error,
		"time":    ts.Unix(),
	}
}

// Publisher records command events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// RedisPublisher appends events to a capped Redis stream.
type RedisPublisher struct {
	rdb    redis.Cmdable
	stream string
}

// NewRedisPublisher creates a publisher writing to stream (DefaultStream when empty).
func NewRedisPublisher(rdb redis.Cmdable, stream string) *RedisPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisPublisher{rdb: rdb, stream: stream}
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	return p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: e.Values(),
	}).Err()
}
