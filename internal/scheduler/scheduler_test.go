package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestScheduler_RunsImmediatelyAndOnTrigger(t *testing.T) {
	var runs atomic.Int32
	s, err := New(t.Context(), time.Hour, func(context.Context) { runs.Add(1) })
	require.NoError(t, err)

	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, s.Trigger())
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	next, err := s.NextRun()
	require.NoError(t, err)
	assert.True(t, next.After(time.Now()))
}

func TestFileWatcher_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "research.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(watched, []byte("a: 1\n"), 0o600))

	var calls atomic.Int32
	fw, err := NewFileWatcher([]string{watched}, 200*time.Millisecond, func() { calls.Add(1) })
	require.NoError(t, err)
	fw.Start(t.Context())
	t.Cleanup(func() { _ = fw.Stop() })

	require.NoError(t, os.WriteFile(other, []byte("x\n"), 0o600))
	for i := range 3 {
		require.NoError(t, os.WriteFile(watched, []byte{byte('a' + i), '\n'}, 0o600))
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fw, err := NewFileWatcher([]string{filepath.Join(t.TempDir(), "f")}, time.Millisecond, func() {})
	require.NoError(t, err)
	fw.Start(t.Context())
	require.NoError(t, fw.Stop())
	require.NoError(t, fw.Stop())
}
