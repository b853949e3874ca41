// Package layout owns the on-disk working directory: the audio and video
// output folders yt-dlp writes into and the lock that keeps two servers from
// sharing them.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/datallboy/ytweb/internal/domain"
	"github.com/gofrs/flock"
)

// FilenameTemplate is the yt-dlp output template used for every download.
const FilenameTemplate = "%(title)s.%(ext)s"

const lockName = ".ytweb.lock"

type Layout struct {
	Root  string
	Audio string
	Video string

	lock *flock.Flock
}

func New(root string) *Layout {
	return &Layout{
		Root:  root,
		Audio: filepath.Join(root, "audio"),
		Video: filepath.Join(root, "video"),
	}
}

// Prepare creates the root and both output directories if absent.
func (l *Layout) Prepare() error {
	for _, dir := range []string{l.Root, l.Audio, l.Video} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// DirFor picks the output directory for a format classification.
func (l *Layout) DirFor(t domain.FormatType) string {
	if t == domain.FormatAudio {
		return l.Audio
	}
	return l.Video
}

// OutputTemplate is the -o argument for downloads landing in dir.
func OutputTemplate(dir string) string {
	return filepath.Join(dir, FilenameTemplate)
}

// Lock takes an exclusive, non-blocking lock on the root directory.
func (l *Layout) Lock() error {
	if l.lock == nil {
		l.lock = flock.New(filepath.Join(l.Root, lockName))
	}
	ok, err := l.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock %s: %w", l.Root, err)
	}
	if !ok {
		return fmt.Errorf("another ytweb instance is already using %s", l.Root)
	}
	return nil
}

func (l *Layout) Unlock() error {
	if l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
