package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slidec/deck"
	"slidec/slides"
)

func TestPackImagesSingle(t *testing.T) {
	img := &deck.ImageDefinition{URL: "u", Width: 200, Height: 100}
	target := box{x: 0, y: 0, w: pixelsToEMU(100), h: pixelsToEMU(100)}

	got := packImages([]*deck.ImageDefinition{img}, target)
	require.Len(t, got, 1)
	pl := got[0]

	// uniform downscale to the width constrained fit, centered vertically
	assert.InDelta(t, pixelsToEMU(200), pl.widthEMU, 1e-6)
	assert.InDelta(t, pixelsToEMU(100), pl.heightEMU, 1e-6)
	assert.InDelta(t, 0.5, pl.scale, 1e-9)
	assert.InDelta(t, 0, pl.translateX, 1e-6)
	assert.InDelta(t, pixelsToEMU(25), pl.translateY, 1e-6)
}

func TestPackImagesRow(t *testing.T) {
	images := []*deck.ImageDefinition{
		{URL: "a", Width: 200, Height: 100},
		{URL: "b", Width: 100, Height: 100},
	}
	target := box{x: pixelsToEMU(10), y: pixelsToEMU(20), w: pixelsToEMU(150), h: pixelsToEMU(100)}

	got := packImages(images, target)
	require.Len(t, got, 2)

	// strip is 300x100px, width constrains the scale to 0.5
	assert.InDelta(t, 0.5, got[0].scale, 1e-9)
	assert.InDelta(t, 0.5, got[1].scale, 1e-9)

	// second image starts where the first ends
	assert.InDelta(t, got[0].translateX+pixelsToEMU(200)*0.5, got[1].translateX, 1e-6)
	assert.InDelta(t, got[0].translateY, got[1].translateY, 1e-6)

	// the packed strip is centered inside the target
	left := got[0].translateX - target.x
	right := target.x + target.w - (got[1].translateX + pixelsToEMU(100)*0.5)
	assert.InDelta(t, left, right, 1e-6)
	top := got[0].translateY - target.y
	bottom := target.y + target.h - (got[0].translateY + pixelsToEMU(100)*0.5)
	assert.InDelta(t, top, bottom, 1e-6)
}

func TestPackImagesPadding(t *testing.T) {
	images := []*deck.ImageDefinition{{URL: "a", Width: 100, Height: 100, Padding: 10}}
	// target tall enough that width constrains
	target := box{w: pixelsToEMU(100) + 2*pointsToEMU(10), h: pixelsToEMU(1000)}

	got := packImages(images, target)
	require.Len(t, got, 1)

	// padded strip exactly fills the width, so nothing scales
	assert.InDelta(t, 1.0, got[0].scale, 1e-9)
	assert.InDelta(t, pointsToEMU(10), got[0].translateX, 1e-6)
}

func TestPackImagesOffsets(t *testing.T) {
	images := []*deck.ImageDefinition{{URL: "a", Width: 100, Height: 100, OffsetX: 7, OffsetY: -3}}
	target := box{w: pixelsToEMU(100), h: pixelsToEMU(100)}

	got := packImages(images, target)
	require.Len(t, got, 1)

	// offsets nudge the placed image after packing, in pixels
	assert.InDelta(t, pixelsToEMU(7), got[0].translateX, 1e-6)
	assert.InDelta(t, pixelsToEMU(-3), got[0].translateY, 1e-6)
}

func TestPackImagesUnknownDimensions(t *testing.T) {
	images := []*deck.ImageDefinition{
		{URL: "a"},
		{URL: "b", Width: 100, Height: 100},
	}
	got := packImages(images, box{w: pixelsToEMU(100), h: pixelsToEMU(100)})
	require.Len(t, got, 2)

	// the dimensionless image gets a zero placement, the other one still packs
	assert.Zero(t, got[0].scale)
	assert.InDelta(t, 1.0, got[1].scale, 1e-9)

	// nothing placeable at all
	got = packImages([]*deck.ImageDefinition{{URL: "a"}}, box{w: 100, h: 100})
	require.Len(t, got, 1)
	assert.Zero(t, got[0].scale)
}

func TestPlaceVideo(t *testing.T) {
	target := box{x: 0, y: 0, w: pixelsToEMU(800), h: pixelsToEMU(800)}

	pl := placeVideo(&deck.VideoDefinition{ID: "v", Width: 400, Height: 200}, target)
	assert.InDelta(t, 2.0, pl.scale, 1e-9)
	assert.InDelta(t, 0, pl.translateX, 1e-6)
	assert.InDelta(t, pixelsToEMU(200), pl.translateY, 1e-6)

	// no dimensions defaults to a 16:9 frame
	pl = placeVideo(&deck.VideoDefinition{ID: "v"}, target)
	assert.InDelta(t, pixelsToEMU(defaultVideoWidth), pl.widthEMU, 1e-6)
	assert.InDelta(t, pixelsToEMU(defaultVideoHeight), pl.heightEMU, 1e-6)
	assert.InDelta(t, pixelsToEMU(800)/pixelsToEMU(1600), pl.scale, 1e-9)
}

func TestFallbackRegion(t *testing.T) {
	b := fallbackRegion(1000, 500)
	assert.Equal(t, box{x: 250, y: 125, w: 500, h: 250}, b)
}

func TestPlacementElementProperties(t *testing.T) {
	pl := placement{widthEMU: 100, heightEMU: 50, scale: 0.25, translateX: 10, translateY: 20}
	props := pl.elementProperties("page1")

	assert.Equal(t, "page1", props.PageObjectID)
	require.NotNil(t, props.Size)
	assert.InDelta(t, 100.0, props.Size.Width.Magnitude, 1e-9)
	assert.Equal(t, slides.UnitEMU, props.Size.Width.Unit)
	require.NotNil(t, props.Transform)
	assert.InDelta(t, 0.25, props.Transform.ScaleX, 1e-9)
	assert.InDelta(t, 0.25, props.Transform.ScaleY, 1e-9)
	assert.InDelta(t, 10.0, props.Transform.TranslateX, 1e-9)
	assert.InDelta(t, 20.0, props.Transform.TranslateY, 1e-9)
	assert.Equal(t, slides.UnitEMU, props.Transform.Unit)
}
