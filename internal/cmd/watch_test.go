package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppxi/lumen/internal/engine"
	"github.com/hoppxi/lumen/internal/notify"
	"github.com/hoppxi/lumen/pkg/backlight"
)

type chanPoster struct {
	posted chan int
}

func (p *chanPoster) Post(summary, body string, replaces uint32, percent int, timeoutMS int32) (uint32, error) {
	p.posted <- percent
	return 7, nil
}

func fakeSysfs(t *testing.T, max, current int) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "panel")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "max_brightness"), []byte(strconv.Itoa(max)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte(strconv.Itoa(current)), 0o644))
	return root
}

func setBrightness(t *testing.T, root string, value int) {
	t.Helper()
	path := filepath.Join(root, "panel", "brightness")
	require.NoError(t, os.WriteFile(path, []byte(strconv.Itoa(value)), 0o644))
}

func watchTestBuild(t *testing.T, root string, poster notify.Poster) func() *engine.Engine {
	t.Helper()
	stateDir := t.TempDir()
	return func() *engine.Engine {
		return &engine.Engine{
			Root:   root,
			Curve:  backlight.NewCurve(2.0),
			Writer: &backlight.Writer{Direct: backlight.DirectWrite{}},
			Notifier: &notify.Coordinator{
				Store:     notify.NewStore(filepath.Join(stateDir, "notify.json"), 5*time.Second),
				Poster:    poster,
				TimeoutMS: 2000,
			},
		}
	}
}

func TestWatchLoopAnnouncesExternalChanges(t *testing.T) {
	root := fakeSysfs(t, 100, 50)
	poster := &chanPoster{posted: make(chan int, 4)}

	events := make(chan struct{}, 1)
	reload := make(chan struct{}, 1)
	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)

	go func() {
		done <- watchLoop(watchTestBuild(t, root, poster), events, reload, stop)
	}()

	// An event for an unchanged value must not announce anything.
	events <- struct{}{}

	setBrightness(t, root, 64)
	events <- struct{}{}

	select {
	case percent := <-poster.posted:
		// sqrt(64/100) = 0.80
		assert.Equal(t, 80, percent)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification for external change")
	}

	stop <- syscall.SIGTERM
	require.NoError(t, <-done)
	assert.Empty(t, poster.posted, "unchanged value must not be announced")
}

func TestWatchLoopRebuildsEngineOnReload(t *testing.T) {
	root := fakeSysfs(t, 100, 50)
	poster := &chanPoster{posted: make(chan int, 4)}
	inner := watchTestBuild(t, root, poster)

	builds := make(chan int, 4)
	count := 0
	build := func() *engine.Engine {
		count++
		builds <- count
		return inner()
	}

	events := make(chan struct{}, 1)
	reload := make(chan struct{}, 1)
	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)

	go func() {
		done <- watchLoop(build, events, reload, stop)
	}()

	require.Equal(t, 1, <-builds)

	reload <- struct{}{}
	select {
	case n := <-builds:
		assert.Equal(t, 2, n, "reload must rebuild the engine inside the loop")
	case <-time.After(2 * time.Second):
		t.Fatal("reload signal not handled")
	}

	stop <- syscall.SIGTERM
	require.NoError(t, <-done)
}

func TestWatchLoopStopsWhenEventsClose(t *testing.T) {
	root := fakeSysfs(t, 100, 50)
	poster := &chanPoster{posted: make(chan int, 4)}

	events := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- watchLoop(watchTestBuild(t, root, poster), events, make(chan struct{}), make(chan os.Signal))
	}()

	close(events)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after event source closed")
	}
}

func TestWatchLoopNoDevice(t *testing.T) {
	build := watchTestBuild(t, t.TempDir(), &chanPoster{posted: make(chan int, 1)})
	err := watchLoop(build, make(chan struct{}), make(chan struct{}), make(chan os.Signal))
	assert.ErrorIs(t, err, backlight.ErrNoDevice)
}
