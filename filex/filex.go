// Package filex provides file handling helpers over an [afero.Fs], so everything here
// works the same against the real filesystem and an in-memory one in tests.
package filex

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// OS is the default filesystem used by tests and callers that don't carry their own [afero.Fs].
var OS = afero.NewOsFs()

// ReadLines reads the whole file at path and splits it into lines, without trailing line separators.
func ReadLines(fsys afero.Fs, path string) ([]string, error) {
	var lines []string
	for _, line := range EachLine(fsys, path) {
		lines = append(lines, line)
	}
	if lines == nil {
		// Distinguish an empty file from an unreadable one.
		if _, err := fsys.Stat(path); err != nil {
			return nil, err
		}
	}
	return lines, nil
}

// EachLine iterates the lines of the file at path without loading the whole file.
// Read errors end the iteration early; use [ReadLines] when the error matters.
func EachLine(fsys afero.Fs, path string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		file, err := fsys.Open(path)
		if err != nil {
			return
		}
		defer func() {
			_ = file.Close()
		}()
		var (
			scanner = bufio.NewScanner(file)
			num     int
		)
		for scanner.Scan() {
			if !yield(num, scanner.Text()) {
				return
			}
			num++
		}
	}
}

// WriteLines writes lines to path joined with '\n', ending with a trailing newline.
func WriteLines(fsys afero.Fs, path string, lines []string, perm os.FileMode) error {
	data := strings.Join(lines, "\n") + "\n"
	return afero.WriteFile(fsys, path, []byte(data), perm)
}

// ReplaceAtomic writes data to a temporary sibling of path and renames it into place,
// so readers never observe a partially written file.
func ReplaceAtomic(fsys afero.Fs, path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Chmod(tmpName, perm); err != nil {
		_ = fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		_ = fsys.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// CopyFile copies the file at src to dst, preserving the source's permission bits.
func CopyFile(fsys afero.Fs, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	in, err := fsys.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()
	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// EnsureDir creates the directory at path, along with any missing parents.
func EnsureDir(fsys afero.Fs, path string, perm os.FileMode) error {
	return fsys.MkdirAll(path, perm)
}
