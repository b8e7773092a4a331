package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlow_AdvanceAccumulatesAllFields(t *testing.T) {
	f := NewFlow()

	steps := []map[string]any{
		{},
		{"username": "a1", "bio": "hi"},
		{"user_type": "Mentor", "employment_type": "Part-Time"},
		{"skills": []string{"go", "sql"}},
	}
	for i, partial := range steps {
		merged, ready := f.Advance(partial)
		require.False(t, ready, "step %d should not be terminal", i)
		assert.Equal(t, i+1, f.Step())
		for k := range partial {
			assert.Contains(t, merged, k)
		}
	}

	merged, ready := f.Advance(map[string]any{"github_url": "https://github.com/a1"})
	require.True(t, ready, "advance at the last step should be ready for submission")

	// every field supplied at any step is present
	assert.Equal(t, "a1", merged["username"])
	assert.Equal(t, "hi", merged["bio"])
	assert.Equal(t, "Mentor", merged["user_type"])
	assert.Equal(t, "Part-Time", merged["employment_type"])
	assert.Equal(t, []string{"go", "sql"}, merged["skills"])
	assert.Equal(t, "https://github.com/a1", merged["github_url"])
}

func TestFlow_LaterStepsOverrideEarlierValues(t *testing.T) {
	f := NewFlow()

	f.Advance(map[string]any{"username": "first"})
	f.Advance(map[string]any{"username": "second", "bio": "keep"})

	data := f.Data()
	assert.Equal(t, "second", data["username"])
	assert.Equal(t, "keep", data["bio"])
}

func TestFlow_RetreatRetainsAccumulatedData(t *testing.T) {
	f := NewFlow()

	f.Advance(map[string]any{})
	f.Advance(map[string]any{"username": "a1", "bio": "hi"})
	require.Equal(t, 2, f.Step())

	require.Equal(t, 1, f.Retreat())

	// retreat then advance with nothing new must not lose fields
	merged, ready := f.Advance(map[string]any{})
	require.False(t, ready)
	assert.Equal(t, "a1", merged["username"])
	assert.Equal(t, "hi", merged["bio"])
}

func TestFlow_RetreatIsNoopAtStepZero(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, 0, f.Retreat())
	assert.Equal(t, 0, f.Step())
}

func TestFlow_TerminalAdvanceDoesNotMove(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.JumpToStep(TotalSteps-1))

	_, ready := f.Advance(map[string]any{"linkedin_url": "https://linkedin.com/in/a1"})
	require.True(t, ready)
	// the flow stays on the terminal step so a failed submission can retry
	assert.Equal(t, TotalSteps-1, f.Step())

	_, ready = f.Advance(map[string]any{})
	assert.True(t, ready, "retrying the terminal advance should still be ready")
}

func TestFlow_JumpToStepBounds(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.JumpToStep(3))
	assert.Equal(t, 3, f.Step())

	assert.Error(t, f.JumpToStep(-1))
	assert.Error(t, f.JumpToStep(TotalSteps))
	assert.Equal(t, 3, f.Step(), "failed jump must not move the flow")
}

func TestFlow_ProgressIsDerived(t *testing.T) {
	f := NewFlow()
	assert.InDelta(t, 20.0, f.Progress(), 0.001)

	f.Advance(map[string]any{})
	assert.InDelta(t, 40.0, f.Progress(), 0.001)

	require.NoError(t, f.JumpToStep(TotalSteps-1))
	assert.InDelta(t, 100.0, f.Progress(), 0.001)
}

func TestManager_GetCreatesPerSession(t *testing.T) {
	m := NewManager(time.Hour, zap.NewNop())

	a := m.Get("session-a")
	b := m.Get("session-b")
	require.NotSame(t, a, b)

	a.Advance(map[string]any{"username": "a1"})
	assert.Empty(t, b.Data(), "flows must not share state across sessions")

	assert.Same(t, a, m.Get("session-a"))
	assert.Equal(t, 2, m.Len())
}

func TestManager_RemoveDropsFlow(t *testing.T) {
	m := NewManager(time.Hour, zap.NewNop())

	f := m.Get("session-a")
	f.Advance(map[string]any{"username": "a1"})
	m.Remove("session-a")

	fresh := m.Get("session-a")
	assert.Equal(t, 0, fresh.Step(), "a removed session starts over")
	assert.Empty(t, fresh.Data())
}

func TestManager_SweepDropsIdleFlows(t *testing.T) {
	m := NewManager(time.Minute, zap.NewNop())

	m.Get("stale")
	m.sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 0, m.Len())
}

func TestManager_RunStopsOnCancel(t *testing.T) {
	m := NewManager(time.Minute, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
