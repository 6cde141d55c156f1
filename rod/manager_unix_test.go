//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/taxdoc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alive reports whether pid exists; signal 0 only probes.
func alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestBrowserManager_Processes(t *testing.T) {
	t.Parallel()

	t.Run("close kills the launcher", func(t *testing.T) {
		t.Parallel()

		f, err := rod.NewFetcher()
		require.NoError(t, err)

		pid := f.LauncherPID()
		require.NotZero(t, pid)
		require.True(t, alive(pid))

		require.NoError(t, f.Close())

		assert.Eventually(t, func() bool { return !alive(pid) }, 2*time.Second, 50*time.Millisecond)
	})

	t.Run("recycling kills the replaced launcher", func(t *testing.T) {
		t.Parallel()

		bm, err := rod.NewBrowserManager(rod.WithMaxPages(1))
		require.NoError(t, err)
		defer bm.Close()

		old := bm.LauncherPID()
		bm.IncrementPageCount()
		_ = bm.Browser()

		assert.NotEqual(t, old, bm.LauncherPID())
		assert.Eventually(t, func() bool { return !alive(old) }, 2*time.Second, 50*time.Millisecond)
	})
}
