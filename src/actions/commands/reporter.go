package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/stake-plus/stackbuddy/src/events"
	"github.com/stake-plus/stackbuddy/src/logging"
)

// Failure stages.
const (
	StageLoading  = "loading"
	StageAnimate  = "animate"
	StageIdentity = "identity"
	StageFetch    = "fetch"
	StageSend     = "send"
)

// Failure is a dropped error from one invocation.
type Failure struct {
	InvocationID string
	Token        string
	ChannelID    string
	AuthorID     string
	Stage        string
	Err          error
}

// Reporter is the single place failures end up. Nothing reported is retried
// or shown to the user.
type Reporter interface {
	ReportFailure(ctx context.Context, f Failure)
}

// LogReporter logs failures and mirrors them onto the event stream.
type LogReporter struct {
	log    *zap.Logger
	events events.Publisher
}

// NewLogReporter creates a reporter. pub may be nil.
func NewLogReporter(log *zap.Logger, pub events.Publisher) *LogReporter {
	if log == nil {
		log = zap.NewNop()
	}
	if pub == nil {
		pub = events.Nop{}
	}
	return &LogReporter{log: log, events: pub}
}

// ReportFailure implements Reporter.
func (r *LogReporter) ReportFailure(ctx context.Context, f Failure) {
	errText := ""
	if f.Err != nil {
		errText = f.Err.Error()
	}
	r.log.Error("commands: invocation failed",
		zap.String("invocation", f.InvocationID),
		zap.String("token", f.Token),
		zap.String("channel", f.ChannelID),
		zap.String("author", f.AuthorID),
		zap.String("stage", f.Stage),
		zap.Bool("rate_limited", logging.IsRateLimit(f.Err)),
		zap.Error(f.Err),
	)

	err := r.events.Publish(ctx, events.Event{
		ID:      f.InvocationID,
		Token:   f.Token,
		Channel: f.ChannelID,
		Author:  f.AuthorID,
		Stage:   f.Stage,
		Status:  events.StatusFailed,
		Error:   errText,
		Time:    time.Now(),
	})
	if err != nil {
		r.log.Warn("commands: publish failure event", zap.String("invocation", f.InvocationID), zap.Error(err))
	}
}
