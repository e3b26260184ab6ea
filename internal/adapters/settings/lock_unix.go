//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly

package settings

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// withFileLock holds an exclusive advisory lock on lockPath while fn runs, so
// another process editing the settings cannot interleave with our merge.
func withFileLock(lockPath string, fn func() error) error {
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, defaultFilePerm)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer f.Close()

	fd := int(f.Fd())
	for {
		err = unix.Flock(fd, unix.LOCK_EX)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("failed to lock settings: %w", err)
	}
	defer func() {
		_ = unix.Flock(fd, unix.LOCK_UN)
	}()

	return fn()
}
