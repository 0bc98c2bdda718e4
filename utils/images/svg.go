// Package images prepares deck assets for the remote document: the service
// only accepts raster formats, so vector art is rendered to pixels before
// upload.
package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize is used when the SVG carries no usable size at all.
const defaultSVGSize = 1024

// NormalizeSVG makes in-the-wild SVG files digestible by the rasterizer: when
// the root element has width and height attributes but no viewBox one is
// synthesized from them. Anything that cannot be parsed is returned unchanged
// and left for the rasterizer to reject.
func NormalizeSVG(data []byte) []byte {

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return data
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return data
	}
	if root.SelectAttrValue("viewBox", "") != "" {
		return data
	}

	w := svgLength(root.SelectAttrValue("width", ""))
	h := svgLength(root.SelectAttrValue("height", ""))
	if w <= 0 || h <= 0 {
		return data
	}
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s",
		strconv.FormatFloat(w, 'f', -1, 64),
		strconv.FormatFloat(h, 'f', -1, 64)))

	out, err := doc.WriteToBytes()
	if err != nil {
		return data
	}
	return out
}

// svgLength converts a length attribute to pixels. Percentages have no
// resolvable value here and report as unusable.
func svgLength(s string) float64 {

	s = strings.TrimSpace(s)
	if s == "" || strings.HasSuffix(s, "%") {
		return 0
	}

	unit := 1.0
	if len(s) > 2 {
		switch val, sfx := s[:len(s)-2], s[len(s)-2:]; sfx {
		case "px":
			s = val
		case "pt":
			s, unit = val, 96.0/72.0
		case "pc":
			s, unit = val, 16
		case "in":
			s, unit = val, 96
		case "mm":
			s, unit = val, 96.0/25.4
		case "cm":
			s, unit = val, 96.0/2.54
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return 0
	}
	return v * unit
}

// RasterizeSVG renders SVG to an RGBA image at its intrinsic size on a white
// background. maxDim, when positive, caps both pixel dimensions preserving
// aspect ratio - without the cap a malicious viewBox like "0 0 100000 100000"
// would demand a multi-gigabyte buffer.
func RasterizeSVG(data []byte, maxDim int) (image.Image, error) {

	icon, err := oksvg.ReadIconStream(bytes.NewReader(NormalizeSVG(data)))
	if err != nil {
		return nil, err
	}

	w := int(math.Ceil(icon.ViewBox.W))
	h := int(math.Ceil(icon.ViewBox.H))
	if w <= 0 {
		w = defaultSVGSize
	}
	if h <= 0 {
		h = defaultSVGSize
	}

	if maxDim > 0 && (w > maxDim || h > maxDim) {
		s := min(float64(maxDim)/float64(w), float64(maxDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}
