// Package gallery manages the members-page image set.
package gallery

import (
	"fmt"
	"math/rand"
	"os"
	"sync"
)

// Gallery serves random picks from a directory of images. The directory
// listing is scanned once and cached; Reload rescans it. The set is expected
// to be small and static for the life of the process.
type Gallery struct {
	dir string

	mu     sync.RWMutex
	images []string
}

func New(dir string) *Gallery {
	return &Gallery{dir: dir}
}

// Random returns one file name from the set, chosen uniformly. The listing is
// loaded on first use; an empty or unreadable directory is an error.
func (g *Gallery) Random() (string, error) {
	g.mu.RLock()
	images := g.images
	g.mu.RUnlock()

	if len(images) == 0 {
		if err := g.Reload(); err != nil {
			return "", err
		}
		g.mu.RLock()
		images = g.images
		g.mu.RUnlock()
	}

	return images[rand.Intn(len(images))], nil
}

// Reload rescans the directory, replacing the cached listing.
func (g *Gallery) Reload() error {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return fmt.Errorf("read image dir %q: %w", g.dir, err)
	}

	images := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			images = append(images, e.Name())
		}
	}
	if len(images) == 0 {
		return fmt.Errorf("image dir %q is empty", g.dir)
	}

	g.mu.Lock()
	g.images = images
	g.mu.Unlock()
	return nil
}
