package filex

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestReadLines(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fsys, "notes.txt", []byte("one\ntwo\nthree\n"), 0o644))

	lines, err := ReadLines(fsys, "notes.txt")
	assert.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestReadLines_Missing(t *testing.T) {
	fsys := afero.NewMemMapFs()
	_, err := ReadLines(fsys, "missing.txt")
	assert.Error(t, err)
}

func TestReadLines_Empty(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fsys, "empty.txt", nil, 0o644))
	lines, err := ReadLines(fsys, "empty.txt")
	assert.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEachLine_EarlyExit(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, WriteLines(fsys, "notes.txt", []string{"a", "b", "c"}, 0o644))

	var seen []string
	for _, line := range EachLine(fsys, "notes.txt") {
		seen = append(seen, line)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestWriteLines_RoundTrip(t *testing.T) {
	fsys := afero.NewMemMapFs()
	lines := []string{"alpha", "beta"}
	assert.NoError(t, WriteLines(fsys, "out.txt", lines, 0o644))

	back, err := ReadLines(fsys, "out.txt")
	assert.NoError(t, err)
	assert.Equal(t, lines, back)
}

func TestReplaceAtomic(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fsys, "/data/config.json", []byte("old"), 0o644))
	assert.NoError(t, ReplaceAtomic(fsys, "/data/config.json", []byte("new"), 0o600))

	data, err := afero.ReadFile(fsys, "/data/config.json")
	assert.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// No stray temp files should remain.
	entries, err := afero.ReadDir(fsys, "/data")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestCopyFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fsys, "src.txt", []byte("payload"), 0o644))
	assert.NoError(t, CopyFile(fsys, "src.txt", "dst.txt"))

	data, err := afero.ReadFile(fsys, "dst.txt")
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(data))
}

func TestEnsureDir(t *testing.T) {
	fsys := afero.NewMemMapFs()
	assert.NoError(t, EnsureDir(fsys, "a/b/c", os.FileMode(0o755)))
	exists, err := afero.DirExists(fsys, "a/b/c")
	assert.NoError(t, err)
	assert.True(t, exists)
}
