// Package archive walks source documents packed into zip files.
package archive

import (
	"fmt"
	"path"
	"slices"
	"strings"

	fixzip "github.com/hidez8891/zip"
	"github.com/maruel/natural"
)

// WalkFunc is called for each file in archive visited by Walk. The archive
// argument is the path passed to Walk. If an error is returned, processing
// stops.
type WalkFunc func(archive string, file *fixzip.File) error

// Walk visits regular files in archive whose base name matches pattern
// (path.Match syntax, case insensitive, empty pattern matches everything).
// Files are visited in natural order of their names, so "faktura-2.xml"
// comes before "faktura-10.xml" regardless of how archive was written.
// Entries with absolute paths or ".." components make Walk fail.
func Walk(archive, pattern string, walkFn WalkFunc) error {
	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	r, err := fixzip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make([]*fixzip.File, 0, len(r.File))
	for _, f := range r.File {
		if !isSafePath(f.Name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", f.Name)
		}
		if f.FileInfo().IsDir() || !matches(pattern, f.Name) {
			continue
		}
		files = append(files, f)
	}
	slices.SortStableFunc(files, func(a, b *fixzip.File) int {
		switch {
		case natural.Less(a.Name, b.Name):
			return -1
		case natural.Less(b.Name, a.Name):
			return 1
		}
		return 0
	})

	for _, f := range files {
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

func matches(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	ok, _ := path.Match(strings.ToLower(pattern), strings.ToLower(path.Base(name)))
	return ok
}

// isSafePath returns false for absolute paths and those containing ".."
// components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	return !slices.Contains(strings.Split(strings.ReplaceAll(name, `\`, "/"), "/"), "..")
}
