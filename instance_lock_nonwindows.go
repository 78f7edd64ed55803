//go:build !windows

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

type instanceLock struct {
	lock *flock.Flock
}

func (l *instanceLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock output lock: %w", err)
	}
	return nil
}

// acquireInstanceLock takes an exclusive lock keyed on the output directory so
// two runs never interleave writes into the same icons folder.
func acquireInstanceLock(outDir string) (*instanceLock, bool, error) {
	lockPath, err := instanceLockPath(outDir)
	if err != nil {
		return nil, false, err
	}
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, false, fmt.Errorf("create lock directory: %w", err)
	}
	f := flock.New(lockPath)
	locked, err := f.TryLock()
	if err != nil {
		return nil, false, fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return nil, true, nil
	}
	return &instanceLock{lock: f}, false, nil
}

func instanceLockPath(outDir string) (string, error) {
	key, err := outputKey(outDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(os.TempDir(), "envswitch-icons", key+".lock"), nil
}
