package template

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher(t *testing.T) {
	t.Run("should coalesce a burst of writes into one run", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "bug_report.md")
		require.NoError(t, os.WriteFile(file, []byte("first draft\n"), 0644))

		var runs atomic.Int32
		w, err := NewWatcher([]string{file}, func(ctx context.Context) {
			runs.Add(1)
		})
		require.NoError(t, err)
		w.debounce = 100 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- w.Run(ctx)
		}()

		for i := 0; i < 5; i++ {
			require.NoError(t, os.WriteFile(file, []byte("edited\n"), 0644))
			time.Sleep(10 * time.Millisecond)
		}

		require.Eventually(t, func() bool {
			return runs.Load() == 1
		}, 2*time.Second, 20*time.Millisecond, "expected the burst to trigger exactly one run")

		// No further events: the count must stay where it is.
		time.Sleep(300 * time.Millisecond)
		assert.EqualValues(t, 1, runs.Load())

		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})

	t.Run("should ignore changes to unwatched siblings", func(t *testing.T) {
		dir := t.TempDir()
		watched := filepath.Join(dir, "bug_report.md")
		sibling := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(watched, []byte("watched\n"), 0644))

		var runs atomic.Int32
		w, err := NewWatcher([]string{watched}, func(ctx context.Context) {
			runs.Add(1)
		})
		require.NoError(t, err)
		w.debounce = 50 * time.Millisecond

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- w.Run(ctx)
		}()

		require.NoError(t, os.WriteFile(sibling, []byte("scratch\n"), 0644))
		time.Sleep(300 * time.Millisecond)

		assert.EqualValues(t, 0, runs.Load())

		cancel()
		<-done
	})
}

func TestWatcherRelevant(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "bug_report.md")
	require.NoError(t, os.WriteFile(watched, []byte("draft\n"), 0644))

	w, err := NewWatcher([]string{watched}, func(ctx context.Context) {})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fsWatcher.Close() })

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"should react to a write on a watched file", fsnotify.Event{Name: watched, Op: fsnotify.Write}, true},
		{"should react to an editor replacing the file", fsnotify.Event{Name: watched, Op: fsnotify.Create}, true},
		{"should ignore permission changes", fsnotify.Event{Name: watched, Op: fsnotify.Chmod}, false},
		{"should ignore events on other files", fsnotify.Event{Name: filepath.Join(dir, "other.md"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}
