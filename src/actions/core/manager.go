// Package core runs the bot's long-lived modules.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Module is one long-lived part of the bot: the Discord gateway or the
// status server.
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context)
}

// ErrStarted is returned by Add and Start once the manager is running.
var ErrStarted = errors.New("core: manager already started")

// Manager starts modules in registration order and stops them in reverse.
type Manager struct {
	log *zap.Logger

	mu      sync.Mutex
	modules []Module
	running []Module
}

// NewManager registers mods. Nil modules are skipped.
func NewManager(log *zap.Logger, mods ...Module) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{log: log}
	for _, mod := range mods {
		if mod != nil {
			m.modules = append(m.modules, mod)
		}
	}
	return m
}

// Add registers mod. It fails once Start has succeeded.
func (m *Manager) Add(mod Module) error {
	if mod == nil {
		return errors.New("core: nil module")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return fmt.Errorf("add %s: %w", mod.Name(), ErrStarted)
	}
	m.modules = append(m.modules, mod)
	return nil
}

// Start brings every module up. On the first failure the modules already
// running are stopped again and nothing is left running.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running != nil {
		return ErrStarted
	}

	running := make([]Module, 0, len(m.modules))
	for _, mod := range m.modules {
		if err := mod.Start(ctx); err != nil {
			stopAll(ctx, m.log, running)
			return fmt.Errorf("module %s failed: %w", mod.Name(), err)
		}
		m.log.Info("core: module started", zap.String("module", mod.Name()))
		running = append(running, mod)
	}
	m.running = running
	return nil
}

// Stop stops whatever Start brought up. Calling it without a successful
// Start does nothing.
func (m *Manager) Stop(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stopAll(ctx, m.log, m.running)
	m.running = nil
}

// Names lists registered modules in start order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, len(m.modules))
	for i, mod := range m.modules {
		names[i] = mod.Name()
	}
	return names
}

func stopAll(ctx context.Context, log *zap.Logger, mods []Module) {
	for i := len(mods) - 1; i >= 0; i-- {
		mods[i].Stop(ctx)
		log.Info("core: module stopped", zap.String("module", mods[i].Name()))
	}
}
