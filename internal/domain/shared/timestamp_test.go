package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskline/hexsim/internal/domain/shared"
)

func TestTimestamp_HasPassed(t *testing.T) {
	now := shared.Timestamp(1000)

	assert.True(t, now.HasPassed(500))
	assert.True(t, now.HasPassed(1000))
	assert.False(t, now.HasPassed(1500))
}

func TestTimestamp_HasNotPassed(t *testing.T) {
	now := shared.Timestamp(1000)

	assert.False(t, now.HasNotPassed(500))
	assert.True(t, now.HasNotPassed(1500))
}

func TestTimestamp_Plus(t *testing.T) {
	now := shared.Timestamp(1000)
	future := now.Plus(shared.Seconds(2))

	assert.Equal(t, shared.Timestamp(3000), future)
}

func TestLifecycleStateMachine_HappyPath(t *testing.T) {
	tick := shared.Timestamp(0)
	sm := shared.NewLifecycleStateMachine(func() shared.Timestamp { return tick })

	assert.Equal(t, shared.LifecycleQueued, sm.Status())

	tick = 100
	require := assert.New(t)
	require.NoError(sm.Start())
	require.Equal(shared.LifecycleActive, sm.Status())
	require.NotNil(sm.StartedAt())
	require.Equal(shared.Timestamp(100), *sm.StartedAt())

	tick = 300
	require.NoError(sm.Complete())
	require.Equal(shared.LifecycleCompleted, sm.Status())
	require.Equal(shared.Timestamp(300), *sm.StoppedAt())

	require.Error(sm.Start())
}

func TestLifecycleStateMachine_CancelFromQueued(t *testing.T) {
	sm := shared.NewLifecycleStateMachine(func() shared.Timestamp { return 0 })
	assert.NoError(t, sm.Cancel())
	assert.Equal(t, shared.LifecycleCanceled, sm.Status())
	assert.Error(t, sm.Start())
}
