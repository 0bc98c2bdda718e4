package deck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"slidec/archive"
	"slidec/misc"
)

// BundleIndex is the name of the deck document inside a deck bundle.
const BundleIndex = "deck.json"

// Load reads a deck from path. A ".json" file is read directly, anything else
// is treated as a deck bundle - a zip with "deck.json" at its root plus local
// assets. Bundle assets are extracted into a temporary directory and relative
// image references are rewritten to extracted locations, for a plain file they
// are resolved against its directory. The returned cleanup drops extracted
// assets and is always safe to call.
func Load(path string) (*Deck, func() error, error) {

	noop := func() error { return nil }

	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, noop, fmt.Errorf("unable to read deck: %w", err)
		}
		d, err := decode(data)
		if err != nil {
			return nil, noop, fmt.Errorf("bad deck %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, noop, fmt.Errorf("bad deck %q: %w", path, err)
		}
		d.resolveAssets(filepath.Dir(path))
		return d, noop, nil
	}

	data, err := archive.ReadFile(path, BundleIndex)
	if err != nil {
		return nil, noop, fmt.Errorf("unable to read deck bundle: %w", err)
	}
	d, err := decode(data)
	if err != nil {
		return nil, noop, fmt.Errorf("bad deck bundle %q: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, noop, fmt.Errorf("bad deck bundle %q: %w", path, err)
	}

	tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-assets-")
	if err != nil {
		return nil, noop, fmt.Errorf("unable to create assets directory: %w", err)
	}
	cleanup := func() error { return os.RemoveAll(tmpDir) }

	if err := archive.Extract(path, tmpDir); err != nil {
		return nil, cleanup, fmt.Errorf("unable to unpack deck bundle %q: %w", path, err)
	}
	d.resolveAssets(tmpDir)
	return d, cleanup, nil
}

func decode(data []byte) (*Deck, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var d Deck
	if err := dec.Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// resolveAssets rewrites relative image references against base. Remote
// addresses and absolute paths are left alone.
func (d *Deck) resolveAssets(base string) {
	for _, s := range d.Slides {
		for _, img := range s.Images() {
			img.URL = resolveRef(base, img.URL)
		}
	}
}

func resolveRef(base, ref string) string {
	if len(ref) == 0 || strings.Contains(ref, "://") || filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(base, filepath.FromSlash(ref))
}
