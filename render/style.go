package render

import "slidec/slides"

// textStyle is the effective paragraph level style a placeholder renders
// with once inheritance is resolved. Sizes and spacing are points, weight is
// a CSS font weight, line spacing is a percentage where 100 means single.
type textStyle struct {
	FontFamily        string
	FontSizePT        float64
	FontWeight        int
	LineSpacing       float64
	SpaceAbovePT      float64
	SpaceBelowPT      float64
	IndentStartPT     float64
	IndentEndPT       float64
	IndentFirstLinePT float64
	Alignment         string
	Direction         string
}

// Bold reports whether the effective weight renders bold.
func (s *textStyle) Bold() bool {
	return s.FontWeight >= 600
}

// baseTextStyle is the style assumed when the inheritance chain provides
// nothing. The engine owns a mutable copy which stylesheet defaults may
// reseed at construction.
func baseTextStyle() textStyle {
	return textStyle{
		FontFamily:  "Arial",
		FontSizePT:  16,
		FontWeight:  400,
		LineSpacing: 100,
		Alignment:   "START",
		Direction:   "LEFT_TO_RIGHT",
	}
}

// resolveTextStyle computes the effective style for the youngest element of
// an ancestor chain by overlaying each ancestor's first paragraph onto the
// defaults, oldest first, so the youngest non empty field wins.
func resolveTextStyle(chain []*slides.PageElement, defaults textStyle) textStyle {
	style := defaults
	for _, el := range chain {
		style.overlay(firstParagraphStyle(el), firstTextStyle(el))
	}
	return style
}

func (s *textStyle) overlay(ps *slides.ParagraphStyle, ts *slides.TextStyle) {
	if ps != nil {
		if ps.LineSpacing > 0 {
			s.LineSpacing = ps.LineSpacing
		}
		if ps.SpaceAbove != nil {
			s.SpaceAbovePT = dimensionToPoints(ps.SpaceAbove)
		}
		if ps.SpaceBelow != nil {
			s.SpaceBelowPT = dimensionToPoints(ps.SpaceBelow)
		}
		if ps.IndentStart != nil {
			s.IndentStartPT = dimensionToPoints(ps.IndentStart)
		}
		if ps.IndentEnd != nil {
			s.IndentEndPT = dimensionToPoints(ps.IndentEnd)
		}
		if ps.IndentFirstLine != nil {
			s.IndentFirstLinePT = dimensionToPoints(ps.IndentFirstLine)
		}
		if len(ps.Alignment) != 0 {
			s.Alignment = ps.Alignment
		}
		if len(ps.Direction) != 0 {
			s.Direction = ps.Direction
		}
	}
	if ts != nil {
		if len(ts.FontFamily) != 0 {
			s.FontFamily = ts.FontFamily
		}
		if ts.FontSize != nil && ts.FontSize.Magnitude > 0 {
			s.FontSizePT = dimensionToPoints(ts.FontSize)
		}
		if ts.WeightedFontFamily != nil && ts.WeightedFontFamily.Weight > 0 {
			s.FontWeight = int(ts.WeightedFontFamily.Weight)
		}
		if ts.Bold && s.FontWeight < 600 {
			s.FontWeight = 700
		}
	}
}

// firstParagraphStyle returns the style of the first paragraph marker of a
// shape element, nil when the element carries no styled text.
func firstParagraphStyle(e *slides.PageElement) *slides.ParagraphStyle {
	if e == nil || e.Shape == nil || e.Shape.Text == nil {
		return nil
	}
	for _, te := range e.Shape.Text.TextElements {
		if te.ParagraphMarker != nil && te.ParagraphMarker.Style != nil {
			return te.ParagraphMarker.Style
		}
	}
	return nil
}

// firstTextStyle returns the character style of the first styled run of a
// shape element.
func firstTextStyle(e *slides.PageElement) *slides.TextStyle {
	if e == nil || e.Shape == nil || e.Shape.Text == nil {
		return nil
	}
	for _, te := range e.Shape.Text.TextElements {
		if te.TextRun != nil && te.TextRun.Style != nil {
			return te.TextRun.Style
		}
	}
	return nil
}
