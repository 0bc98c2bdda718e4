package render

import (
	"slidec/deck"
	"slidec/slides"
)

// box is an axis aligned region of the page in EMU.
type box struct {
	x, y, w, h float64
}

// placement is a computed media transform: natural size in EMU plus a
// uniform scale and a translation placing it on the page.
type placement struct {
	widthEMU   float64
	heightEMU  float64
	scale      float64
	translateX float64
	translateY float64
}

// elementProperties renders the placement as creation properties for a
// media request on the given page.
func (p placement) elementProperties(pageID string) *slides.PageElementProperties {
	return &slides.PageElementProperties{
		PageObjectID: pageID,
		Size: &slides.Size{
			Width:  &slides.Dimension{Magnitude: p.widthEMU, Unit: slides.UnitEMU},
			Height: &slides.Dimension{Magnitude: p.heightEMU, Unit: slides.UnitEMU},
		},
		Transform: &slides.AffineTransform{
			ScaleX:     p.scale,
			ScaleY:     p.scale,
			TranslateX: p.translateX,
			TranslateY: p.translateY,
			Unit:       slides.UnitEMU,
		},
	}
}

// packImages lays images out left to right with per image padding, scales
// the packed strip uniformly to fit the target box preserving aspect ratio,
// and centers the result. Returned placements parallel the input; images
// without natural dimensions get a zero placement and are expected to be
// filtered out by the caller beforehand.
func packImages(images []*deck.ImageDefinition, target box) []placement {
	type item struct {
		x, y, w, h float64
	}

	items := make([]item, len(images))
	var cursor, maxH float64
	for i, img := range images {
		w := pixelsToEMU(float64(img.Width))
		h := pixelsToEMU(float64(img.Height))
		if w <= 0 || h <= 0 {
			continue
		}
		pad := pointsToEMU(img.Padding)
		items[i] = item{x: cursor + pad, y: pad, w: w, h: h}
		cursor += w + 2*pad
		if h+2*pad > maxH {
			maxH = h + 2*pad
		}
	}
	if cursor <= 0 || maxH <= 0 {
		return make([]placement, len(images))
	}

	scale := target.w / cursor
	if s := target.h / maxH; s < scale {
		scale = s
	}

	// residual space split evenly on both axes
	offsetX := target.x + (target.w-cursor*scale)/2
	offsetY := target.y + (target.h-maxH*scale)/2

	out := make([]placement, len(images))
	for i, img := range images {
		it := items[i]
		if it.w <= 0 || it.h <= 0 {
			continue
		}
		out[i] = placement{
			widthEMU:   it.w,
			heightEMU:  it.h,
			scale:      scale,
			translateX: offsetX + it.x*scale + pixelsToEMU(img.OffsetX),
			translateY: offsetY + it.y*scale + pixelsToEMU(img.OffsetY),
		}
	}
	return out
}

// defaultVideoWidth and defaultVideoHeight stand in for videos whose
// definition carries no natural dimensions, assuming a 16:9 frame.
const (
	defaultVideoWidth  = 1600
	defaultVideoHeight = 900
)

// placeVideo scales a single video to fit the target box and centers it,
// the same fit and center math as image packing without the multi item
// strip.
func placeVideo(v *deck.VideoDefinition, target box) placement {
	w := pixelsToEMU(float64(v.Width))
	h := pixelsToEMU(float64(v.Height))
	if w <= 0 || h <= 0 {
		w = pixelsToEMU(defaultVideoWidth)
		h = pixelsToEMU(defaultVideoHeight)
	}

	scale := target.w / w
	if s := target.h / h; s < scale {
		scale = s
	}
	return placement{
		widthEMU:   w,
		heightEMU:  h,
		scale:      scale,
		translateX: target.x + (target.w-w*scale)/2,
		translateY: target.y + (target.h-h*scale)/2,
	}
}

// fallbackRegion synthesizes a centered media region capped at half the
// page extent, used when a slide offers no usable placeholder to anchor
// media to.
func fallbackRegion(pageW, pageH float64) box {
	return box{
		x: pageW / 4,
		y: pageH / 4,
		w: pageW / 2,
		h: pageH / 2,
	}
}
