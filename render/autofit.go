package render

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"slidec/deck"
	"slidec/slides"
)

// fitMode is the constraint autofit sizes text under.
type fitMode int

const (
	// fitVertical requires the wrapped text to fit the full bounding box.
	fitVertical fitMode = iota
	// fitHorizontal requires the text to stay on a single line.
	fitHorizontal
)

// Autofit Sizing Constants
//
// The search starts at a candidate size derived from the text's explicit
// runs or the inherited style and walks down in fixed steps until the text
// fits or the legibility floor is reached. Width estimation is calibrated
// against the remote renderer, which lays glyphs out wider than measured
// advances suggest.

const (
	// defaultFontSizePT seeds the search when neither explicit runs nor the
	// inheritance chain carry a size.
	defaultFontSizePT = 16.0

	// minFontSizePT is the legibility floor. Overflow is accepted rather
	// than shrinking below it.
	minFontSizePT = 9.0

	// fontStepPT is the search decrement per iteration.
	fontStepPT = 1.0

	// widthCorrection widens estimated line width to match the remote
	// renderer's layout; measured glyph advances run about 10% narrow.
	widthCorrection = 1.1

	// lineHeightRatio is the rendered line box height relative to the font
	// size at single spacing.
	lineHeightRatio = 1.2

	// sampleLimit caps how many leading runes are measured per estimate.
	sampleLimit = 100

	// shapeInsetHorizontalPT and shapeInsetVerticalPT are the default text
	// box insets of the remote renderer per side: 0.1in and 0.05in.
	shapeInsetHorizontalPT = 7.2
	shapeInsetVerticalPT   = 3.6

	// fitCacheSize bounds the per snapshot memoization cache.
	fitCacheSize = 1024
)

// fitter computes autofit font sizes, memoized per (element identity, text,
// mode). Cached results are only valid for the snapshot the identities came
// from, so the engine invalidates on every reload.
type fitter struct {
	meas  *measurer
	cache *lru.Cache[fitKey, fitResult]
}

type fitKey struct {
	elementID string
	text      string
	mode      fitMode
}

type fitResult struct {
	sizePT float64
	shrunk bool
}

func newFitter(meas *measurer) (*fitter, error) {
	cache, err := lru.New[fitKey, fitResult](fitCacheSize)
	if err != nil {
		return nil, err
	}
	return &fitter{meas: meas, cache: cache}, nil
}

// invalidate drops every memoized result.
func (f *fitter) invalidate() {
	f.cache.Purge()
}

// fit returns the font size at which text fits the youngest element of the
// chain under the given mode, and whether any shrinking from the candidate
// size happened. Empty text and degenerate boxes return the candidate size
// with no measurement.
func (f *fitter) fit(chain []*slides.PageElement, style textStyle, text *deck.TextDefinition, mode fitMode) (float64, bool, error) {
	size, weight := runFontHints(text)
	if size <= 0 {
		size = style.FontSizePT
	}
	if size <= 0 {
		size = defaultFontSizePT
	}
	if weight <= 0 {
		weight = style.FontWeight
	}

	if text.Empty() || len(chain) == 0 {
		return size, false, nil
	}
	el := chain[len(chain)-1]

	key := fitKey{elementID: el.ObjectID, text: text.Raw, mode: mode}
	if r, ok := f.cache.Get(key); ok {
		return r.sizePT, r.shrunk, nil
	}

	boxW, boxH := elementBoxPT(el)
	boxW -= 2*shapeInsetHorizontalPT + style.IndentStartPT + style.IndentEndPT
	boxH -= 2 * shapeInsetVerticalPT
	if boxW <= 0 || boxH <= 0 {
		return size, false, nil
	}

	sample := text.Raw
	if runes := []rune(sample); len(runes) > sampleLimit {
		sample = string(runes[:sampleLimit])
	}
	breaks := hardBreaks(text.Raw)
	initial := size

	for {
		fits, err := f.fitsAt(sample, text.Raw, size, weight, style, mode, boxW, boxH, breaks)
		if err != nil {
			return 0, false, err
		}
		if fits || size-fontStepPT < minFontSizePT {
			break
		}
		size -= fontStepPT
	}

	res := fitResult{sizePT: size, shrunk: size < initial}
	f.cache.Add(key, res)
	return res.sizePT, res.shrunk, nil
}

// fitsAt estimates whether the full text rendered at sizePT stays inside
// the box. Characters per line come from measuring the sample; height
// accounts for line spacing on every line and paragraph spacing on hard
// breaks only.
func (f *fitter) fitsAt(sample, full string, sizePT float64, weight int, style textStyle, mode fitMode, boxW, boxH float64, breaks int) (bool, error) {
	avg, err := f.meas.averageCharWidthPX(sample, sizePT, weight >= 600)
	if err != nil {
		return false, err
	}
	if avg <= 0 {
		return true, nil
	}
	avg *= widthCorrection

	perLine := int(pointsToPixels(boxW) / avg)
	if perLine < 1 {
		perLine = 1
	}
	lines := wrapText(full, perLine)

	if mode == fitHorizontal {
		return len(lines) <= 1, nil
	}

	spacing := style.LineSpacing
	if spacing <= 0 {
		spacing = 100
	}
	lineHeight := sizePT * (spacing / 100) * lineHeightRatio
	height := float64(len(lines))*lineHeight + float64(breaks)*(style.SpaceAbovePT+style.SpaceBelowPT)
	return height <= boxH, nil
}

// runFontHints averages explicit font sizes and weights found on the text's
// style runs. Zero means no explicit value was present; averages always
// come from at least one explicit value, never from an empty division.
func runFontHints(t *deck.TextDefinition) (sizePT float64, weight int) {
	if t == nil {
		return 0, 0
	}
	var sizeSum float64
	var sizeN, weightSum, weightN int
	for _, r := range t.Runs {
		if r.Style.FontSize > 0 {
			sizeSum += r.Style.FontSize
			sizeN++
		}
		if r.Style.FontWeight > 0 {
			weightSum += r.Style.FontWeight
			weightN++
		}
	}
	if sizeN > 0 {
		sizePT = sizeSum / float64(sizeN)
	}
	if weightN > 0 {
		weight = weightSum / weightN
	}
	return sizePT, weight
}
