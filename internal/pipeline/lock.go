package pipeline

import (
	"fmt"

	"github.com/gofrs/flock"

	"vidtext/internal/services"
)

// jobLock keeps a second vidtext process from writing the same temp audio
// file. The lock file sits next to the temp file.
type jobLock struct {
	lock *flock.Flock
}

func lockPath(audioPath string) string {
	return audioPath + ".lock"
}

func acquireJobLock(audioPath string) (*jobLock, error) {
	path := lockPath(audioPath)
	lock := flock.New(path)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrOutput, "lock", "acquire", path, err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrValidation, "lock", "", fmt.Sprintf("another vidtext run is already using %s", audioPath), nil)
	}
	return &jobLock{lock: lock}, nil
}

// release unlocks the lock file. The file stays on disk: removing it would let
// a waiter lock the unlinked inode while a later run locks a fresh file at the
// same path.
func (l *jobLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", l.lock.Path(), err)
	}
	return nil
}
