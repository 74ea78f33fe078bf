package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrLocked is returned when another live pricer process holds the lock
var ErrLocked = errors.New("another pricer process is running")

// Lock guards the catalog cache and report directory against two pricer
// processes writing them at the same time. The lock file holds the owner PID.
type Lock struct {
	path string
	held bool
}

// New creates a lock backed by the file at path
func New(path string) *Lock {
	return &Lock{path: path}
}

// Path returns the lock file location
func (l *Lock) Path() string {
	return l.path
}

// Acquire takes the lock. A lock file left by a dead process is replaced.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(l.path)
				return fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			l.held = true
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("failed to create lock file: %w", err)
		}

		pid, ok := l.owner()
		if ok && pid != os.Getpid() && isProcessRunning(pid) {
			return fmt.Errorf("%w (PID %d holds %s)", ErrLocked, pid, l.path)
		}
		// Stale or unreadable lock file
		_ = os.Remove(l.path)
	}

	return fmt.Errorf("failed to acquire lock %s", l.path)
}

// Release removes the lock file if this lock holds it
func (l *Lock) Release() error {
	if !l.held {
		return nil
	}
	l.held = false
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

func (l *Lock) owner() (int, bool) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// isProcessRunning sends signal 0, which only checks that the process exists
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// Exists but owned by another user
		return true
	default:
		return false
	}
}
