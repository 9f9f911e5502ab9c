// pkg/watch/watcher_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: fsnotify, temp dir
// PURPOSE: Verify stylesheet changes are batched and other files ignored

package watch

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/stylelint-loader/pkg/testutil"
)

func startWatcher(t *testing.T, roots []string) <-chan []string {
	t.Helper()
	batches := make(chan []string, 10)
	w, err := New(roots, func(paths []string) { batches <- paths }, Options{Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch received")
		return nil
	}
}

func TestWatcher_DirectoryRoot(t *testing.T) {
	dir := testutil.TempDir(t)
	batches := startWatcher(t, []string{dir})

	testutil.CreateFile(t, dir, "notes.txt", "x")
	testutil.CreateFile(t, dir, "a.css", "a {}")
	css := testutil.CreateFile(t, dir, "a.css", "a { color: red; }")

	assert.Equal(t, []string{css}, waitBatch(t, batches))
}

func TestWatcher_FileRoot(t *testing.T) {
	dir := testutil.TempDir(t)
	target := testutil.CreateFile(t, dir, "main.scss", "a {}")

	batches := startWatcher(t, []string{target})

	testutil.CreateFile(t, dir, "other.scss", "b {}")
	testutil.CreateFile(t, dir, "main.scss", "a { b: c; }")

	assert.Equal(t, []string{target}, waitBatch(t, batches))
}

func TestWatcher_Wanted(t *testing.T) {
	w := &Watcher{
		dirs:  []string{"/proj/src"},
		files: map[string]bool{"/proj/theme.less": true},
	}

	assert.True(t, w.wanted("/proj/src/a.css"))
	assert.True(t, w.wanted("/proj/src/nested/b.scss"))
	assert.True(t, w.wanted("/proj/theme.less"))
	assert.False(t, w.wanted("/proj/src/a.js"))
	assert.False(t, w.wanted("/proj/other.css"))
	assert.False(t, w.wanted("/proj/srcx/a.css"))
}

func TestNew_RequiresHandler(t *testing.T) {
	_, err := New([]string{t.TempDir()}, nil, Options{})
	assert.Error(t, err)
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "missing")}, func([]string) {}, Options{})
	assert.Error(t, err)
}
