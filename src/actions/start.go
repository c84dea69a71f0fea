// Package actions assembles the bot's modules from configuration.
package actions

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stake-plus/stackbuddy/src/actions/commands"
	"github.com/stake-plus/stackbuddy/src/actions/core"
	"github.com/stake-plus/stackbuddy/src/api/webserver"
	"github.com/stake-plus/stackbuddy/src/config"
	"github.com/stake-plus/stackbuddy/src/data"
	"github.com/stake-plus/stackbuddy/src/events"
	"github.com/stake-plus/stackbuddy/src/render"
	"github.com/stake-plus/stackbuddy/src/stackup"
	"github.com/stake-plus/stackbuddy/src/webclient"
)

// UserAgent is sent on every StackUp request.
const UserAgent = "stackbuddy/1.0"

// Runtime is the set of started modules plus the connections they share.
type Runtime struct {
	Manager *core.Manager
	db      *gorm.DB
	rdb     *redis.Client
	log     *zap.Logger
}

// NewStackUpClient builds the API client described by cfg.
func NewStackUpClient(cfg config.Config) *stackup.Client {
	return stackup.NewClient(cfg.APIURL,
		stackup.WithHTTPClient(webclient.NewDefault(cfg.HTTPTimeout)),
		stackup.WithRateLimit(cfg.RateLimit),
		stackup.WithUserAgent(UserAgent),
	)
}

// BuildDependencies resolves the handler collaborators that do not depend on
// a live Discord session. db and pub may be nil.
func BuildDependencies(cfg config.Config, db *gorm.DB, pub events.Publisher, log *zap.Logger) (commands.Dependencies, error) {
	texts, err := render.LoadTexts(cfg.TextsPath)
	if err != nil {
		return commands.Dependencies{}, fmt.Errorf("actions: texts: %w", err)
	}
	if pub == nil {
		pub = events.Nop{}
	}
	links := data.NewIdentityLinks(db, cfg.DefaultUserID)
	return commands.Dependencies{
		Source:       NewStackUpClient(cfg),
		Texts:        texts,
		Identity:     links.Lookup,
		Reporter:     commands.NewLogReporter(log, pub),
		Events:       pub,
		Logger:       log,
		FailureReply: cfg.FailureReply,
	}, nil
}

// StartAll connects the optional stores, builds every enabled module and
// starts them. db may be nil, in which case MYSQL_DSN is not consulted again.
func StartAll(ctx context.Context, cfg config.Config, db *gorm.DB, log *zap.Logger) (*Runtime, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rt := &Runtime{db: db, log: log}

	var pub events.Publisher = events.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := data.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("actions: %w", err)
		}
		rt.rdb = rdb
		pub = events.NewRedisPublisher(rdb, events.DefaultStream)
		log.Info("actions: publishing command events", zap.String("stream", events.DefaultStream))
	} else {
		log.Info("actions: redis disabled, command events are not published")
	}

	deps, err := BuildDependencies(cfg, db, pub, log)
	if err != nil {
		rt.closeStores()
		return nil, err
	}

	bot, err := commands.NewModule(cfg.Token, deps)
	if err != nil {
		rt.closeStores()
		return nil, fmt.Errorf("actions: init commands module: %w", err)
	}

	rt.Manager = core.NewManager(log, bot)
	if cfg.StatusAddr != "" {
		if err := rt.Manager.Add(webserver.NewServer(cfg.StatusAddr, cfg.StatusAllowOrigins, log)); err != nil {
			rt.closeStores()
			return nil, fmt.Errorf("actions: add status module: %w", err)
		}
	} else {
		log.Info("actions: status server disabled via configuration")
	}

	if err := rt.Manager.Start(ctx); err != nil {
		rt.closeStores()
		return nil, err
	}
	log.Info("actions: started", zap.Strings("modules", rt.Manager.Names()))
	return rt, nil
}

// Stop stops every module, then closes the shared connections.
func (rt *Runtime) Stop(ctx context.Context) {
	rt.Manager.Stop(ctx)
	rt.closeStores()
}

func (rt *Runtime) closeStores() {
	if rt.rdb != nil {
		if err := rt.rdb.Close(); err != nil {
			rt.log.Warn("actions: redis close", zap.Error(err))
		}
		rt.rdb = nil
	}
	if rt.db != nil {
		if sqlDB, err := rt.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		rt.db = nil
	}
}
