package core

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	name    string
	failOn  bool
	journal *[]string
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) Start(context.Context) error {
	if r.failOn {
		return errors.New("boom")
	}
	*r.journal = append(*r.journal, "start "+r.name)
	return nil
}

func (r *recorder) Stop(context.Context) { *r.journal = append(*r.journal, "stop "+r.name) }

func TestManager_StartStopOrder(t *testing.T) {
	var journal []string
	m := NewManager(nil, &recorder{name: "a", journal: &journal})
	require.NoError(t, m.Add(&recorder{name: "b", journal: &journal}))

	ctx := context.Background()
	require.NoError(t, m.Start(ctx))
	assert.ErrorIs(t, m.Start(ctx), ErrStarted, "second start")
	assert.ErrorIs(t, m.Add(&recorder{name: "c", journal: &journal}), ErrStarted, "add after start")

	m.Stop(ctx)
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, journal)
	assert.Equal(t, []string{"a", "b"}, m.Names())
}

func TestManager_RollsBackOnFailure(t *testing.T) {
	var journal []string
	m := NewManager(nil,
		&recorder{name: "a", journal: &journal},
		&recorder{name: "b", failOn: true, journal: &journal},
	)

	err := m.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module b failed")
	assert.Equal(t, []string{"start a", "stop a"}, journal)

	m.Stop(context.Background())
	assert.Equal(t, []string{"start a", "stop a"}, journal, "stop is a no-op when not started")
}

func TestManager_SkipsNilModules(t *testing.T) {
	var journal []string
	m := NewManager(nil, nil, &recorder{name: "a", journal: &journal})
	assert.Error(t, m.Add(nil))
	assert.Equal(t, []string{"a"}, m.Names())

	require.NoError(t, m.Start(context.Background()))
	m.Stop(context.Background())
	m.Stop(context.Background())
	assert.Equal(t, []string{"start a", "stop a"}, journal, "second stop does nothing")
}

func TestManager_RestartAfterStop(t *testing.T) {
	var journal []string
	m := NewManager(nil, &recorder{name: "a", journal: &journal})
	ctx := context.Background()

	require.NoError(t, m.Start(ctx))
	m.Stop(ctx)
	require.NoError(t, m.Start(ctx))
	m.Stop(ctx)
	assert.Equal(t, []string{"start a", "stop a", "start a", "stop a"}, journal)
}
