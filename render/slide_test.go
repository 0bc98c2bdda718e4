package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"slidec/deck"
	"slidec/slides"
)

func testBuilder(t *testing.T, pres *slides.Presentation) *slideBuilder {
	t.Helper()
	m, err := newMeasurer()
	require.NoError(t, err)
	fit, err := newFitter(m)
	require.NoError(t, err)
	return &slideBuilder{
		pres:   pres,
		ix:     buildIndex(pres),
		fit:    fit,
		styles: newStyleSet(nil),
		log:    zaptest.NewLogger(t),
	}
}

// builderPresentation holds one created slide page with the placeholders a
// populated layout instance would carry.
func builderPresentation(els ...*slides.PageElement) *slides.Presentation {
	return &slides.Presentation{
		PresentationID: "p1",
		PageSize: &slides.Size{
			Width:  &slides.Dimension{Magnitude: 9144000, Unit: slides.UnitEMU},
			Height: &slides.Dimension{Magnitude: 5143500, Unit: slides.UnitEMU},
		},
		Slides: []*slides.Page{{
			ObjectID:     "s-page",
			PageType:     slides.PageTypeSlide,
			PageElements: els,
			SlideProperties: &slides.SlideProperties{
				NotesPage: &slides.Page{
					PageType:        slides.PageTypeNotes,
					NotesProperties: &slides.NotesProperties{SpeakerNotesObjectID: "notes-1"},
				},
			},
		}},
	}
}

func sizedPlaceholder(id, typ string, index int64, wPT, hPT float64) *slides.PageElement {
	el := placeholderElement(id, typ, index, "")
	el.Size = &slides.Size{Width: pt(wPT), Height: pt(hPT)}
	return el
}

func TestPopulateFullSlide(t *testing.T) {
	pres := builderPresentation(
		sizedPlaceholder("el-title", slides.PlaceholderTitle, 0, 600, 60),
		sizedPlaceholder("el-body", slides.PlaceholderBody, 0, 600, 300),
		sizedPlaceholder("el-pic", slides.PlaceholderPicture, 0, 400, 200),
	)
	b := testBuilder(t, pres)

	s := &deck.SlideDefinition{
		Index:           1,
		ObjectID:        "s-page",
		Title:           txt("Overview"),
		BackgroundImage: &deck.ImageDefinition{URL: "https://img.example.test/bg.png"},
		Tables: []*deck.TableDefinition{{
			Rows: 1, Columns: 1,
			Cells: [][]*deck.TextDefinition{{txt("cell")}},
		}},
		Bodies: []*deck.Body{{Text: txt("Some body copy.")}},
		Notes:  txt("Remember to pause here."),
	}

	reqs, err := b.populate(s)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"insertText",                // title
		"updatePageProperties",      // background
		"createTable",               // table with header
		"updateTableCellProperties", // header fill
		"insertText",                // table cell
		"insertText",                // body
		"deleteObject",              // unclaimed picture placeholder
		"insertText",                // speaker notes
	}, kinds(reqs))

	assert.Equal(t, "el-title", reqs[0].InsertText.ObjectID)
	assert.Equal(t, "https://img.example.test/bg.png",
		reqs[1].UpdatePageProperties.PageProperties.PageBackgroundFill.StretchedPictureFill.ContentURL)
	assert.Equal(t, "s-page", reqs[1].UpdatePageProperties.ObjectID)
	assert.Equal(t, "el-body", reqs[5].InsertText.ObjectID)
	assert.Equal(t, "el-pic", reqs[6].DeleteObject.ObjectID)
	assert.Equal(t, "notes-1", reqs[7].InsertText.ObjectID)
}

func TestPopulateImagesReplacePicturePlaceholder(t *testing.T) {
	pic := sizedPlaceholder("el-pic", slides.PlaceholderPicture, 0, 400, 200)
	pic.Transform = &slides.AffineTransform{ScaleX: 1, ScaleY: 1, TranslateX: 952500, TranslateY: 476250, Unit: slides.UnitEMU}
	pres := builderPresentation(pic)
	b := testBuilder(t, pres)

	s := &deck.SlideDefinition{
		Index:    1,
		ObjectID: "s-page",
		Bodies: []*deck.Body{{Images: []*deck.ImageDefinition{
			{URL: "https://img.example.test/a.png", Width: 100, Height: 50},
			{URL: "https://img.example.test/b.png", Width: 100, Height: 50, AltText: "chart of b"},
		}}},
	}

	reqs, err := b.populate(s)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"deleteObject", // the placeholder the images take over
		"createImage",
		"createImage",
		"updatePageElementAltText",
	}, kinds(reqs))
	assert.Equal(t, "el-pic", reqs[0].DeleteObject.ObjectID)

	// images land on the page, inside the vacated region
	for _, r := range reqs[1:3] {
		props := r.CreateImage.ElementProperties
		assert.Equal(t, "s-page", props.PageObjectID)
		assert.Greater(t, props.Transform.ScaleX, 0.0)
		assert.GreaterOrEqual(t, props.Transform.TranslateX, 952500.0)
		assert.GreaterOrEqual(t, props.Transform.TranslateY, 476250.0)
	}

	// alt text pins to the object created right before it
	assert.Equal(t, reqs[2].CreateImage.ObjectID, reqs[3].UpdatePageElementAltText.ObjectID)
	assert.Equal(t, "chart of b", reqs[3].UpdatePageElementAltText.Description)
}

func TestPopulateImagesUseEmptyBodyRegion(t *testing.T) {
	pres := builderPresentation(
		sizedPlaceholder("el-body", slides.PlaceholderBody, 0, 600, 300),
	)
	b := testBuilder(t, pres)

	s := &deck.SlideDefinition{
		Index:    1,
		ObjectID: "s-page",
		Bodies: []*deck.Body{{Images: []*deck.ImageDefinition{
			{URL: "https://img.example.test/a.png", Width: 200, Height: 100},
		}}},
	}

	reqs, err := b.populate(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"createImage"}, kinds(reqs))

	// the image fills the text free body box, no placeholder is deleted
	props := reqs[0].CreateImage.ElementProperties
	assert.Equal(t, "s-page", props.PageObjectID)
	assert.InDelta(t, pointsToEMU(600)/pixelsToEMU(200), props.Transform.ScaleX, 1e-9)
}

func TestPopulateImageWithoutDimensionsSkipped(t *testing.T) {
	pres := builderPresentation(
		sizedPlaceholder("el-body", slides.PlaceholderBody, 0, 600, 300),
	)
	b := testBuilder(t, pres)

	s := &deck.SlideDefinition{
		Index:    1,
		ObjectID: "s-page",
		Bodies: []*deck.Body{{Images: []*deck.ImageDefinition{
			{URL: "https://img.example.test/unknown.png"},
			{URL: "https://img.example.test/known.png", Width: 100, Height: 100},
		}}},
	}

	reqs, err := b.populate(s)
	require.NoError(t, err)
	require.Equal(t, []string{"createImage"}, kinds(reqs))
	assert.Equal(t, "https://img.example.test/known.png", reqs[0].CreateImage.URL)
}

func TestPopulateMultipleBodies(t *testing.T) {
	pres := builderPresentation(
		sizedPlaceholder("el-right", slides.PlaceholderBody, 1, 300, 300),
		sizedPlaceholder("el-left", slides.PlaceholderBody, 0, 300, 300),
	)
	b := testBuilder(t, pres)

	s := &deck.SlideDefinition{
		Index:    1,
		ObjectID: "s-page",
		Bodies: []*deck.Body{
			{Text: txt("left column")},
			{Text: txt("right column")},
		},
	}

	reqs, err := b.populate(s)
	require.NoError(t, err)
	require.Equal(t, []string{"insertText", "insertText"}, kinds(reqs))

	// bodies match placeholders by placeholder index, not page order
	assert.Equal(t, "el-left", reqs[0].InsertText.ObjectID)
	assert.Equal(t, "el-right", reqs[1].InsertText.ObjectID)
}

func TestPopulateSkipsContentWithoutPlaceholder(t *testing.T) {
	pres := builderPresentation(
		sizedPlaceholder("el-title", slides.PlaceholderTitle, 0, 600, 60),
	)
	b := testBuilder(t, pres)

	s := &deck.SlideDefinition{
		Index:    1,
		ObjectID: "s-page",
		Title:    txt("Kept"),
		Subtitle: txt("Dropped, the layout has no subtitle"),
		Bodies:   []*deck.Body{{Text: txt("Dropped too")}},
	}

	reqs, err := b.populate(s)
	require.NoError(t, err)
	require.Equal(t, []string{"insertText"}, kinds(reqs))
	assert.Equal(t, "Kept", reqs[0].InsertText.Text)
}

func TestPopulateMissingSlideObject(t *testing.T) {
	b := testBuilder(t, builderPresentation())
	s := &deck.SlideDefinition{Index: 3, ObjectID: "gone"}

	_, err := b.populate(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slide 3")
	assert.Contains(t, err.Error(), "not present in the document snapshot")
}

func TestVideoRequests(t *testing.T) {
	target := box{x: 0, y: 0, w: pixelsToEMU(1600), h: pixelsToEMU(900)}

	reqs := videoRequests(&deck.VideoDefinition{ID: "dQw4w9WgXcQ"}, target, "page1")
	require.Len(t, reqs, 1)
	cv := reqs[0].CreateVideo
	require.NotNil(t, cv)
	assert.Equal(t, "dQw4w9WgXcQ", cv.ID)
	assert.Equal(t, slides.VideoSourceYouTube, cv.Source)
	assert.Equal(t, "page1", cv.ElementProperties.PageObjectID)

	reqs = videoRequests(&deck.VideoDefinition{ID: "v1", Source: "VIMEO", AltText: "intro"}, target, "page1")
	require.Len(t, reqs, 2)
	assert.Equal(t, "VIMEO", reqs[0].CreateVideo.Source)
	assert.Equal(t, reqs[0].CreateVideo.ObjectID, reqs[1].UpdatePageElementAltText.ObjectID)
}

func TestNewObjectID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := newObjectID()
		assert.True(t, strings.HasPrefix(id, "o"))
		assert.NotContains(t, id, "-")
		assert.False(t, seen[id], "duplicate identity %s", id)
		seen[id] = true
	}
}

func TestSnippet(t *testing.T) {
	b := &slideBuilder{}

	assert.Equal(t, "short", b.snippet("short"))

	long := strings.Repeat("x", 80)
	got := b.snippet(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(got)), 63)
}
