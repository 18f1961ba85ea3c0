package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/launchkit/mccore/pkg/layout"
)

// maxMirrorWorkers bounds MirrorLibraries' fan-out, generalizing the
// teacher's downloadMissingFiles worker pool (pkg/game/folder/game_folder.go,
// numWorkers := runtime.NumCPU()) into a fixed cap rather than a per-host
// CPU count, since a remote source has its own concurrency ceiling
// regardless of the local machine's core count.
const maxMirrorWorkers = 8

// MirrorLibraries fetches every relative libraries/ path in relPaths from
// src into localRoot, fanning out over a bounded worker pool and
// reporting progress via pkg/source.PrintProgress. It returns the first
// error encountered, if any, after letting in-flight workers finish.
func MirrorLibraries(src Source, localRoot string, relPaths []string) error {
	total := len(relPaths)
	if total == 0 {
		return nil
	}

	workers := maxMirrorWorkers
	if workers > total {
		workers = total
	}

	pathCh := make(chan string, total)
	for _, p := range relPaths {
		pathCh <- p
	}
	close(pathCh)

	var done int64
	var mu sync.Mutex
	var firstErr error
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for relPath := range pathCh {
				_, err := MirrorLibrary(src, localRoot, relPath)
				n := atomic.AddInt64(&done, 1)
				PrintProgress("Fetching libraries:", int(n), total, relPath)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}

// MirrorFile reads remotePath from src and writes it under localRoot at
// the same relative path, creating parent directories as needed. It
// skips the write (and reports skipped=true) when the destination
// already exists, so a fetch run is cheap to re-run — mirroring the
// teacher's own "skip files already present" behavior in its
// downloadMissingFiles worker pool (pkg/game/folder/game_folder.go).
func MirrorFile(src Source, localRoot, remotePath string) (skipped bool, err error) {
	dest := filepath.Join(localRoot, remotePath)
	if _, statErr := os.Stat(dest); statErr == nil {
		return true, nil
	}

	data, err := src.Fetch(remotePath, -1)
	if err != nil {
		return false, fmt.Errorf("source: fetching %s: %w", remotePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, fmt.Errorf("source: creating %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return false, fmt.Errorf("source: writing %s: %w", dest, err)
	}
	return false, nil
}

// MirrorVersionManifest fetches versions/{versionID}/{versionID}.json,
// relative to src's own root, into the same path under localRoot (the
// path pkg/layout.VersionJSON names).
func MirrorVersionManifest(src Source, localRoot, versionID string) (bool, error) {
	rel := filepath.Join("versions", versionID, versionID+".json")
	return MirrorFile(src, localRoot, rel)
}

// MirrorLibrary fetches a relative libraries/ path (library.Info.Path)
// into localRoot.
func MirrorLibrary(src Source, localRoot, relPath string) (bool, error) {
	return MirrorFile(src, localRoot, filepath.Join("libraries", relPath))
}

// MirrorAssetObject fetches an asset object addressed by its SHA-1 hash
// into localRoot's content-addressed assets/objects tree.
func MirrorAssetObject(src Source, localRoot, hash string) (bool, error) {
	rel, err := filepath.Rel(localRoot, layout.Asset(localRoot, hash))
	if err != nil {
		return false, err
	}
	return MirrorFile(src, localRoot, rel)
}
