package main

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchFileSeesWritesBeforeRun(t *testing.T) {
	_, input := setup(t)
	sibling := filepath.Join(filepath.Dir(input), "other.md")

	watcher, err := watchFile(input)
	require.NoError(t, err)

	// Written before Run is entered, still delivered once it is.
	require.NoError(t, ioutil.WriteFile(input, []byte(talk+"# Appendix\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watcher.Run(ctx, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
	}()

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported for the watched file")
	}

	// Drain any duplicate events of the first write, then touch a sibling.
	time.Sleep(200 * time.Millisecond)
	for len(changes) > 0 {
		<-changes
	}
	require.NoError(t, ioutil.WriteFile(sibling, []byte("# Other\n"), 0644))
	time.Sleep(200 * time.Millisecond)
	assert.Len(t, changes, 0, "sibling files must not trigger a change")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	_, err := watchFile(filepath.Join(t.TempDir(), "missing", "talk.md"))
	require.Error(t, err)
}
