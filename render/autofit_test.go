package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidec/deck"
	"slidec/slides"
)

func testFitter(t *testing.T) *fitter {
	t.Helper()
	m, err := newMeasurer()
	require.NoError(t, err)
	f, err := newFitter(m)
	require.NoError(t, err)
	return f
}

func fitElement(id string, wPT, hPT float64) *slides.PageElement {
	return &slides.PageElement{
		ObjectID: id,
		Size:     &slides.Size{Width: pt(wPT), Height: pt(hPT)},
		Shape:    &slides.Shape{Placeholder: &slides.Placeholder{Type: slides.PlaceholderBody}},
	}
}

func TestFitShortTextKeepsCandidate(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 600, 300)}

	size, shrunk, err := f.fit(chain, baseTextStyle(), &deck.TextDefinition{Raw: "Hello"}, fitVertical)
	require.NoError(t, err)
	assert.False(t, shrunk)
	assert.InDelta(t, 16.0, size, 1e-9)
}

func TestFitLongTextShrinks(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 300, 100)}
	text := &deck.TextDefinition{Raw: strings.Repeat("plenty of body copy that will not fit as is ", 4)}

	size, shrunk, err := f.fit(chain, baseTextStyle(), text, fitVertical)
	require.NoError(t, err)
	assert.True(t, shrunk)
	assert.Less(t, size, 16.0)
	assert.GreaterOrEqual(t, size, minFontSizePT)
}

// Below the legibility floor overflow is accepted instead of shrinking on.
func TestFitStopsAtFloor(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 200, 60)}
	text := &deck.TextDefinition{Raw: strings.Repeat("far too much text for such a small box ", 100)}

	size, shrunk, err := f.fit(chain, baseTextStyle(), text, fitVertical)
	require.NoError(t, err)
	assert.True(t, shrunk)
	assert.InDelta(t, minFontSizePT, size, 1e-9)
}

func TestFitMonotonic(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 300, 100)}

	prev := 1000.0
	for _, n := range []int{5, 20, 40, 80, 160} {
		text := &deck.TextDefinition{Raw: strings.Repeat("word ", n)}
		size, _, err := f.fit(chain, baseTextStyle(), text, fitVertical)
		require.NoError(t, err)
		assert.LessOrEqual(t, size, prev, "size grew at n=%d", n)
		prev = size
	}
}

func TestFitHorizontalSingleLine(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 400, 80)}
	text := &deck.TextDefinition{Raw: "This heading is noticeably too long to stay on a single line"}

	size, shrunk, err := f.fit(chain, baseTextStyle(), text, fitHorizontal)
	require.NoError(t, err)
	assert.True(t, shrunk)
	assert.Less(t, size, 16.0)
	assert.GreaterOrEqual(t, size, minFontSizePT)
}

func TestFitExplicitRunSizeSeedsSearch(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 600, 300)}
	text := &deck.TextDefinition{
		Raw:  "Big",
		Runs: []*deck.TextRun{{Start: 0, End: 3, Style: deck.RunStyle{FontSize: 24}}},
	}

	size, shrunk, err := f.fit(chain, baseTextStyle(), text, fitVertical)
	require.NoError(t, err)
	assert.False(t, shrunk)
	assert.InDelta(t, 24.0, size, 1e-9)
}

func TestFitDegenerateInputs(t *testing.T) {
	f := testFitter(t)
	style := baseTextStyle()

	// empty text
	size, shrunk, err := f.fit([]*slides.PageElement{fitElement("e1", 600, 300)}, style, &deck.TextDefinition{}, fitVertical)
	require.NoError(t, err)
	assert.False(t, shrunk)
	assert.InDelta(t, 16.0, size, 1e-9)

	// no chain
	size, shrunk, err = f.fit(nil, style, &deck.TextDefinition{Raw: "text"}, fitVertical)
	require.NoError(t, err)
	assert.False(t, shrunk)
	assert.InDelta(t, 16.0, size, 1e-9)

	// box too small to ever hold text is left alone
	size, shrunk, err = f.fit([]*slides.PageElement{fitElement("e2", 10, 4)}, style, &deck.TextDefinition{Raw: "text"}, fitVertical)
	require.NoError(t, err)
	assert.False(t, shrunk)
	assert.InDelta(t, 16.0, size, 1e-9)
}

func TestFitCached(t *testing.T) {
	f := testFitter(t)
	chain := []*slides.PageElement{fitElement("e1", 300, 100)}
	text := &deck.TextDefinition{Raw: strings.Repeat("cache me if you can ", 20)}

	size1, shrunk1, err := f.fit(chain, baseTextStyle(), text, fitVertical)
	require.NoError(t, err)
	size2, shrunk2, err := f.fit(chain, baseTextStyle(), text, fitVertical)
	require.NoError(t, err)
	assert.Equal(t, size1, size2)
	assert.Equal(t, shrunk1, shrunk2)

	// sizing is deterministic, invalidation must not change the answer
	f.invalidate()
	size3, shrunk3, err := f.fit(chain, baseTextStyle(), text, fitVertical)
	require.NoError(t, err)
	assert.Equal(t, size1, size3)
	assert.Equal(t, shrunk1, shrunk3)
}

func TestRunFontHints(t *testing.T) {
	size, weight := runFontHints(nil)
	assert.Zero(t, size)
	assert.Zero(t, weight)

	size, weight = runFontHints(&deck.TextDefinition{Raw: "x"})
	assert.Zero(t, size)
	assert.Zero(t, weight)

	size, weight = runFontHints(&deck.TextDefinition{
		Raw: "xy",
		Runs: []*deck.TextRun{
			{Style: deck.RunStyle{FontSize: 20, FontWeight: 400}},
			{Style: deck.RunStyle{FontSize: 28, FontWeight: 700}},
			{Style: deck.RunStyle{}}, // no explicit values, not averaged in
		},
	})
	assert.InDelta(t, 24.0, size, 1e-9)
	assert.Equal(t, 550, weight)
}
