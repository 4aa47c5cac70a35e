package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/registry"
)

func writeComponent(t *testing.T, dir, name, component string) string {
	t.Helper()
	src := "export default function " + component + "() {\n  return <div className=\"p-4\">x</div>;\n}\n"
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func newScanner(excludes []string) (*ComponentScanner, *registry.ComponentRegistry) {
	reg := registry.NewComponentRegistry()
	return New(reg, extractor.New(nil), excludes), reg
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "Button.tsx", "Button")
	writeComponent(t, dir, "Card.jsx", "Card")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	scanner, reg := newScanner(nil)
	require.NoError(t, scanner.ScanDirectory(dir))

	assert.Equal(t, 2, reg.Count())
	button, ok := reg.Get("Button")
	require.True(t, ok)
	assert.NotNil(t, button.Structure)
	assert.NotEmpty(t, button.Source)
	assert.NotEmpty(t, button.Hash)
}

func TestScanDirectory_Nested(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "widgets")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeComponent(t, sub, "Widget.tsx", "Widget")

	scanner, reg := newScanner(nil)
	require.NoError(t, scanner.ScanDirectory(dir))
	_, ok := reg.Get("Widget")
	assert.True(t, ok)
}

func TestScanDirectory_Excludes(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "Button.tsx", "Button")
	writeComponent(t, dir, "Button.test.tsx", "ButtonTest")

	scanner, reg := newScanner([]string{"*.test.tsx"})
	require.NoError(t, scanner.ScanDirectory(dir))

	assert.Equal(t, 1, reg.Count())
	_, ok := reg.Get("ButtonTest")
	assert.False(t, ok)
}

func TestScanDirectory_HiddenDirsSkipped(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, ".cache")
	require.NoError(t, os.MkdirAll(hidden, 0o755))
	writeComponent(t, hidden, "Ghost.tsx", "Ghost")

	scanner, reg := newScanner(nil)
	require.NoError(t, scanner.ScanDirectory(dir))
	assert.Equal(t, 0, reg.Count())
}

func TestScanDirectory_BrokenFileDoesNotAbort(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.tsx"),
		[]byte("const X = () => (<div><span></div>);"), 0o644))
	writeComponent(t, dir, "Good.tsx", "Good")

	scanner, reg := newScanner(nil)
	require.NoError(t, scanner.ScanDirectory(dir))
	_, ok := reg.Get("Good")
	assert.True(t, ok)
}

func TestScanFile_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeComponent(t, dir, "Button.tsx", "Button")

	scanner, reg := newScanner(nil)
	events := reg.Watch()
	defer reg.UnWatch(events)

	require.NoError(t, scanner.ScanFile(path))
	require.NoError(t, scanner.ScanFile(path))
	assert.Len(t, events, 1)

	// Changed content triggers a fresh registration.
	src := "export default function Button() {\n  return <div className=\"p-6\">x</div>;\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	require.NoError(t, scanner.ScanFile(path))
	assert.Len(t, events, 2)
}

func TestForget(t *testing.T) {
	dir := t.TempDir()
	path := writeComponent(t, dir, "Button.tsx", "Button")

	scanner, reg := newScanner(nil)
	require.NoError(t, scanner.ScanFile(path))
	require.Equal(t, 1, reg.Count())

	scanner.Forget(path)
	assert.Equal(t, 0, reg.Count())

	// A re-scan after Forget registers again even with identical content.
	require.NoError(t, scanner.ScanFile(path))
	assert.Equal(t, 1, reg.Count())
}

func TestScanPaths_MissingPathReported(t *testing.T) {
	dir := t.TempDir()
	writeComponent(t, dir, "Button.tsx", "Button")

	scanner, reg := newScanner(nil)
	err := scanner.ScanPaths([]string{filepath.Join(dir, "absent"), dir})
	assert.Error(t, err)
	assert.Equal(t, 1, reg.Count())
}
