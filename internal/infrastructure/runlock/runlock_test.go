package runlock_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/prun-pricer/internal/infrastructure/runlock"
)

func TestLock_AcquireAndRelease(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "cache", "pricer.lock")
	lock := runlock.New(path)

	// Act
	require.NoError(t, lock.Acquire())

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))

	require.NoError(t, lock.Release())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLock_HeldByLiveProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricer.lock")
	// PID 1 is always alive
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	err := runlock.New(path).Acquire()

	assert.True(t, errors.Is(err, runlock.ErrLocked))
}

func TestLock_ReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricer.lock")
	require.NoError(t, os.WriteFile(path, []byte("not a pid\n"), 0o644))
	lock := runlock.New(path)

	require.NoError(t, lock.Acquire())
	defer lock.Release()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid())+"\n", string(data))
}

func TestLock_ReleaseWithoutAcquireKeepsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricer.lock")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o644))

	require.NoError(t, runlock.New(path).Release())

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
