// Package scanner provides component discovery for the editor.
//
// The scanner traverses configured scan paths for .jsx and .tsx files,
// extracts an editable structure from each component definition found, and
// registers the results with the component registry, which broadcasts
// change events to the development server. File content hashes (CRC32)
// provide cheap change detection so unmodified files are not re-extracted.
package scanner

import (
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/registry"
	"github.com/chisel-ui/chisel/internal/types"
)

// componentExts are the source extensions the scanner considers.
var componentExts = map[string]bool{".jsx": true, ".tsx": true}

// ComponentScanner discovers component files and feeds the registry.
type ComponentScanner struct {
	registry  *registry.ComponentRegistry
	extractor *extractor.Extractor
	excludes  []string

	mu     sync.Mutex
	hashes map[string]string
}

// New creates a scanner over the given registry and extractor. Exclude
// patterns are matched against path base names with filepath.Match.
func New(reg *registry.ComponentRegistry, ex *extractor.Extractor, excludes []string) *ComponentScanner {
	return &ComponentScanner{
		registry:  reg,
		extractor: ex,
		excludes:  excludes,
		hashes:    make(map[string]string),
	}
}

// Registry returns the scanner's registry.
func (s *ComponentScanner) Registry() *registry.ComponentRegistry {
	return s.registry
}

// ScanDirectory walks a directory tree and scans every component file.
func (s *ComponentScanner) ScanDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	if !info.IsDir() {
		return s.ScanFile(dir)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if s.excluded(d.Name()) || strings.HasPrefix(d.Name(), ".") && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !componentExts[filepath.Ext(path)] || s.excluded(d.Name()) {
			return nil
		}
		if err := s.ScanFile(path); err != nil {
			// A single unparsable file must not abort the walk.
			return nil
		}
		return nil
	})
}

// ScanFile extracts and registers the component in one file. Files whose
// content hash is unchanged since the last scan are skipped.
func (s *ComponentScanner) ScanFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	source := string(data)
	hash := fmt.Sprintf("%08x", crc32.ChecksumIEEE(data))

	s.mu.Lock()
	prev, seen := s.hashes[path]
	s.hashes[path] = hash
	s.mu.Unlock()
	if seen && prev == hash {
		return nil
	}

	structure, err := s.extractor.Extract(source, "")
	if err != nil {
		return fmt.Errorf("extracting %s: %w", path, err)
	}

	info, _ := os.Stat(path)
	modTime := time.Now()
	if info != nil {
		modTime = info.ModTime()
	}
	s.registry.Register(&types.ComponentRecord{
		Name:      structure.Name,
		FilePath:  path,
		Source:    source,
		Structure: structure,
		LastMod:   modTime,
		Hash:      hash,
	})
	return nil
}

// ScanPaths scans each configured path, collecting per-path errors without
// aborting the remaining paths.
func (s *ComponentScanner) ScanPaths(paths []string) error {
	var firstErr error
	for _, p := range paths {
		if err := s.ScanDirectory(p); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Forget drops the cached hash for a path and removes its components, used
// when a watched file is deleted.
func (s *ComponentScanner) Forget(path string) {
	s.mu.Lock()
	delete(s.hashes, path)
	s.mu.Unlock()
	s.registry.RemoveByPath(path)
}

func (s *ComponentScanner) excluded(name string) bool {
	for _, pattern := range s.excludes {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
