package images

import (
	"math"
	"strings"
	"testing"
)

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`)

	t.Run("intrinsic", func(t *testing.T) {
		img, err := RasterizeSVG(svg, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 50 {
			t.Fatalf("unexpected bounds: %v", img.Bounds())
		}
	})

	t.Run("clamped", func(t *testing.T) {
		img, err := RasterizeSVG(svg, 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 60 || img.Bounds().Dy() != 30 {
			t.Fatalf("unexpected bounds: %v", img.Bounds())
		}
	})

	t.Run("attribute size only", func(t *testing.T) {
		byAttrs := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="80" height="40"><rect width="80" height="40"/></svg>`)
		img, err := RasterizeSVG(byAttrs, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 80 || img.Bounds().Dy() != 40 {
			t.Fatalf("unexpected bounds: %v", img.Bounds())
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := RasterizeSVG([]byte("not really an svg"), 0); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestNormalizeSVG(t *testing.T) {
	t.Run("synthesizes viewBox", func(t *testing.T) {
		in := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10pt" height="20px"/>`)
		out := string(NormalizeSVG(in))
		// 10pt at 96dpi is 13.33..px wide
		if !strings.Contains(out, `viewBox="0 0 13.33`) || !strings.Contains(out, ` 20"`) {
			t.Fatalf("viewBox not synthesized: %s", out)
		}
	})

	t.Run("existing viewBox kept", func(t *testing.T) {
		in := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 5 5" width="10" height="10"/>`)
		out := string(NormalizeSVG(in))
		if !strings.Contains(out, `viewBox="0 0 5 5"`) {
			t.Fatalf("viewBox changed: %s", out)
		}
	})

	t.Run("percent sizes unusable", func(t *testing.T) {
		in := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="100%" height="100%"/>`)
		if out := NormalizeSVG(in); strings.Contains(string(out), "viewBox") {
			t.Fatalf("viewBox should not appear: %s", out)
		}
	})

	t.Run("not svg at all", func(t *testing.T) {
		in := []byte(`<html><body/></html>`)
		if out := string(NormalizeSVG(in)); out != string(in) {
			t.Fatalf("non svg content must pass through unchanged: %s", out)
		}
	})
}

func TestSVGLength(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"100", 100},
		{"100px", 100},
		{"72pt", 96},
		{"1in", 96},
		{"2pc", 32},
		{"25.4mm", 96},
		{"2.54cm", 96},
		{"100%", 0},
		{"", 0},
		{"-5", 0},
		{"wide", 0},
	}

	for _, c := range cases {
		if got := svgLength(c.in); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("svgLength(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
