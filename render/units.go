// Package render turns a validated deck into ordered mutation batches
// against a remote presentation document: layout resolution, inherited style
// computation, autofit text sizing, media geometry and the two pass
// create/reload/populate protocol with chunked, paced dispatch.
package render

import "slidec/slides"

// Document Unit Conversion Constants
//
// The remote document measures element geometry in English Metric Units
// (EMU) and font sizes in typographic points, while deck media carries
// natural pixel dimensions. All ratios below follow from the EMU definition
// of 914400 per inch.

const (
	// emuPerPoint converts between EMU and points (72 per inch):
	// 914400 / 72 = 12700.
	emuPerPoint = 12700.0

	// emuPerPixel converts between EMU and CSS reference pixels (96 per
	// inch): 914400 / 96 = 9525.
	emuPerPixel = 9525.0

	// pixelsPerPoint converts point sizes into the 96dpi pixel space text
	// measurement works in: 96 / 72.
	pixelsPerPoint = 96.0 / 72.0
)

func emuToPoints(v float64) float64 {
	return v / emuPerPoint
}

func pointsToEMU(v float64) float64 {
	return v * emuPerPoint
}

func pixelsToEMU(v float64) float64 {
	return v * emuPerPixel
}

func pointsToPixels(v float64) float64 {
	return v * pixelsPerPoint
}

// dimensionToPoints converts a document dimension to points regardless of
// the unit it was reported in. Unknown units are treated as EMU, the
// document native unit.
func dimensionToPoints(d *slides.Dimension) float64 {
	if d == nil {
		return 0
	}
	if d.Unit == slides.UnitPT {
		return d.Magnitude
	}
	return emuToPoints(d.Magnitude)
}

// dimensionToEMU converts a document dimension to EMU regardless of the
// unit it was reported in.
func dimensionToEMU(d *slides.Dimension) float64 {
	if d == nil {
		return 0
	}
	if d.Unit == slides.UnitPT {
		return pointsToEMU(d.Magnitude)
	}
	return d.Magnitude
}

// elementBoxPT returns the rendered bounding box of a page element in
// points: native size scaled by the element transform. Shear is ignored,
// the engine only ever deals with axis aligned boxes.
func elementBoxPT(e *slides.PageElement) (w, h float64) {
	if e == nil || e.Size == nil {
		return 0, 0
	}
	w = dimensionToPoints(e.Size.Width)
	h = dimensionToPoints(e.Size.Height)
	if e.Transform != nil {
		if e.Transform.ScaleX != 0 {
			w *= e.Transform.ScaleX
		}
		if e.Transform.ScaleY != 0 {
			h *= e.Transform.ScaleY
		}
	}
	return w, h
}

// elementBoxEMU returns the rendered bounding box and page position of an
// element in EMU, the region media geometry packs into.
func elementBoxEMU(e *slides.PageElement) box {
	if e == nil || e.Size == nil {
		return box{}
	}
	b := box{
		w: dimensionToEMU(e.Size.Width),
		h: dimensionToEMU(e.Size.Height),
	}
	if e.Transform != nil {
		if e.Transform.ScaleX != 0 {
			b.w *= e.Transform.ScaleX
		}
		if e.Transform.ScaleY != 0 {
			b.h *= e.Transform.ScaleY
		}
		b.x = e.Transform.TranslateX
		b.y = e.Transform.TranslateY
	}
	return b
}
