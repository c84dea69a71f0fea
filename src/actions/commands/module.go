package commands

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/stake-plus/stackbuddy/src/actions/core"
)

var _ core.Module = (*Module)(nil)

// gateway is the connection half of *discordgo.Session.
type gateway interface {
	Open() error
	Close() error
}

// Module owns the Discord session and routes message events to the Handler.
type Module struct {
	gateway   gateway
	handler   *Handler
	log       *zap.Logger
	connected atomic.Bool

	mu       sync.Mutex
	stopping bool
	inflight sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewModule creates the Discord session for token. deps.Session is ignored;
// the module's own session is used.
func NewModule(token string, deps Dependencies) (*Module, error) {
	if token == "" {
		return nil, errors.New("commands: discord token is empty")
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("commands: discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsMessageContent

	deps.Session = session
	handler, err := NewHandler(deps)
	if err != nil {
		return nil, err
	}

	m := newModule(session, handler, deps.Logger)
	session.AddHandler(m.onReady)
	session.AddHandler(m.onDisconnect)
	session.AddHandler(m.onMessageCreate)
	return m, nil
}

func newModule(gw gateway, handler *Handler, log *zap.Logger) *Module {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Module{gateway: gw, handler: handler, log: log, ctx: ctx, cancel: cancel}
}

// Name implements core.Module.
func (m *Module) Name() string { return "stackbuddy" }

// Start opens the gateway connection. Invocations run under a context
// derived from ctx.
func (m *Module) Start(ctx context.Context) error {
	m.mu.Lock()
	m.cancel()
	m.ctx, m.cancel = context.WithCancel(ctx)
	m.stopping = false
	m.mu.Unlock()

	if err := m.gateway.Open(); err != nil {
		m.cancel()
		return fmt.Errorf("commands: discord open: %w", err)
	}
	return nil
}

// Stop refuses new invocations, lets running ones finish and closes the
// session. Invocations still running when ctx is done are cancelled.
func (m *Module) Stop(ctx context.Context) {
	m.mu.Lock()
	m.stopping = true
	m.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		m.inflight.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-ctx.Done():
		m.log.Warn("commands: stop deadline reached, cancelling invocations", zap.Error(ctx.Err()))
		m.cancel()
		<-drained
	}
	m.cancel()

	if err := m.gateway.Close(); err != nil {
		m.log.Warn("commands: discord close", zap.Error(err))
	}
	m.connected.Store(false)
}

// Connected reports whether the gateway session is ready.
func (m *Module) Connected() bool { return m.connected.Load() }

func (m *Module) onReady(s *discordgo.Session, r *discordgo.Ready) {
	m.connected.Store(true)
	m.log.Info("commands: logged in", zap.String("user", r.User.Username))
}

func (m *Module) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	m.connected.Store(false)
	m.log.Warn("commands: gateway disconnected")
}

// onMessageCreate runs on discordgo's per-event goroutine, so invocations
// from different channels proceed independently.
func (m *Module) onMessageCreate(s *discordgo.Session, mc *discordgo.MessageCreate) {
	if mc == nil || mc.Message == nil {
		return
	}
	if mc.Author != nil && s.State != nil && s.State.User != nil && mc.Author.ID == s.State.User.ID {
		return
	}

	m.dispatch(mc.Message)
}

// dispatch runs msg unless the module is stopping.
func (m *Module) dispatch(msg *discordgo.Message) bool {
	m.mu.Lock()
	if m.stopping {
		m.mu.Unlock()
		return false
	}
	m.inflight.Add(1)
	ctx := m.ctx
	m.mu.Unlock()

	defer m.inflight.Done()
	return m.handler.Handle(ctx, msg)
}
