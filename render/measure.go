package render

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/text/unicode/norm"
)

// measurer estimates average glyph widths for autofit. Measurement always
// happens against the embedded Go faces whatever family the document asks
// for - the remote renderer's metrics differ anyway, which is what the
// autofit width correction factor compensates for. Faces are built lazily
// per size and kept for the lifetime of the engine.
type measurer struct {
	mu      sync.Mutex
	regular *opentype.Font
	bold    *opentype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	sizePT float64
	bold   bool
}

func newMeasurer() (*measurer, error) {
	reg, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("unable to parse regular font: %w", err)
	}
	bld, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("unable to parse bold font: %w", err)
	}
	return &measurer{
		regular: reg,
		bold:    bld,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

func (m *measurer) face(sizePT float64, bold bool) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := faceKey{sizePT: sizePT, bold: bold}
	if f, ok := m.faces[key]; ok {
		return f, nil
	}

	src := m.regular
	if bold {
		src = m.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    sizePT,
		DPI:     96,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to build %gpt face: %w", sizePT, err)
	}
	m.faces[key] = f
	return f, nil
}

// averageCharWidthPX measures sample at sizePT points and returns the
// average advance per rune in 96dpi pixels. The sample is NFC normalized
// first so composed and decomposed inputs measure alike.
func (m *measurer) averageCharWidthPX(sample string, sizePT float64, bold bool) (float64, error) {
	sample = norm.NFC.String(sample)
	n := utf8.RuneCountInString(sample)
	if n == 0 {
		return 0, nil
	}
	f, err := m.face(sizePT, bold)
	if err != nil {
		return 0, err
	}
	adv := font.MeasureString(f, sample)
	return float64(adv) / 64.0 / float64(n), nil
}
