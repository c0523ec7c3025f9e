package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
)

var unsafeLockChars = regexp.MustCompile(`[^\w\-.]`)

// InstanceLock keeps a single process per bot username on this host.
// The game server kicks one side of a duplicate login, so two processes
// with the same name would knock each other off in a reconnect loop.
type InstanceLock struct {
	lockFile *flock.Flock
	lockPath string
}

func sanitizeLockName(name string) string {
	sanitized := unsafeLockChars.ReplaceAllString(strings.TrimSpace(name), "-")
	sanitized = strings.Trim(sanitized, ".-")
	if sanitized == "" {
		sanitized = "default"
	}
	return sanitized
}

// NewInstanceLock creates a lock under <dir>/pantherasmp/<username>.lock.
// An empty dir means the system temp directory.
func NewInstanceLock(dir, username string) (*InstanceLock, error) {
	if dir == "" {
		dir = os.TempDir()
	}

	lockDir := filepath.Join(dir, "pantherasmp")
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockPath := filepath.Join(lockDir, sanitizeLockName(username)+".lock")
	return &InstanceLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock attempts to acquire the lock without blocking
func (l *InstanceLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another bot process is already running with lock %s", l.lockPath)
	}

	return nil
}

// Unlock releases the lock and removes the lock file
func (l *InstanceLock) Unlock() error {
	if l.lockFile == nil {
		return nil
	}

	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	return nil
}

func (l *InstanceLock) Path() string {
	return l.lockPath
}
