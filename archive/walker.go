// Package archive reads deck bundles - zip files carrying a deck document
// along with its local assets - on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// WalkFunc is the type of the function called for each file in the bundle
// visited by Walk. The archive argument contains path to the bundle passed to
// Walk. The file argument is the zip.File structure for a file in the bundle
// which satisfies match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all files in the bundle with names starting with pattern,
// calling walkFn for each item. Entries with path traversal components
// ("..") or absolute paths fail the walk to prevent Zip Slip attacks.
func Walk(archive, pattern string, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if !f.FileInfo().IsDir() && strings.HasPrefix(name, pattern) {
			if err := walkFn(archive, f); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReadFile returns content of a single named entry of the bundle.
func ReadFile(archive, name string) ([]byte, error) {

	var data []byte
	found := false

	err := Walk(archive, name, func(_ string, f *zip.File) error {
		if f.FileHeader.Name != name || found {
			return nil
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()
		if data, err = io.ReadAll(r); err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("no %q in bundle %q", name, archive)
	}
	return data, nil
}

// Extract unpacks every file of the bundle under dir keeping relative paths.
func Extract(archive, dir string) error {

	return Walk(archive, "", func(_ string, f *zip.File) error {
		dst := filepath.Join(dir, filepath.FromSlash(f.FileHeader.Name))
		if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
			return err
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		defer r.Close()

		w, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return err
		}
		if _, err := io.Copy(w, r); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	})
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
