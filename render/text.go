package render

import (
	"strconv"
	"strings"

	"slidec/deck"
	"slidec/slides"
)

// textFill describes one placeholder or table cell text insertion along
// with the style work derived from the deck definition.
type textFill struct {
	ObjectID string
	Cell     *slides.TableCellLocation
	Text     *deck.TextDefinition

	// FontSizePT, when positive, is applied over the whole inserted range
	// before per run overrides - the autofit result.
	FontSizePT float64
}

// requests builds the ordered mutations for the fill: the raw insert first,
// then per run style updates and per marker bullet requests. Runs and
// markers are emitted in reverse array order over the forward built spans
// so character indices stay valid as the service applies them - the insert
// length is known up front and nothing after it shifts earlier ranges.
func (f *textFill) requests() []*slides.Request {
	if f.Text.Empty() {
		return nil
	}

	out := []*slides.Request{{
		InsertText: &slides.InsertTextRequest{
			ObjectID:       f.ObjectID,
			CellLocation:   f.Cell,
			Text:           f.Text.Raw,
			InsertionIndex: 0,
		},
	}}

	if f.FontSizePT > 0 {
		out = append(out, &slides.Request{
			UpdateTextStyle: &slides.UpdateTextStyleRequest{
				ObjectID:     f.ObjectID,
				CellLocation: f.Cell,
				TextRange:    slides.FixedRange(0, int64(f.Text.RuneLen())),
				Style: &slides.TextStyle{
					FontSize: &slides.Dimension{Magnitude: f.FontSizePT, Unit: slides.UnitPT},
				},
				Fields: "fontSize",
			},
		})
	}

	for i := len(f.Text.Runs) - 1; i >= 0; i-- {
		if r := styleRequest(f.ObjectID, f.Cell, f.Text.Runs[i]); r != nil {
			out = append(out, r)
		}
	}
	for i := len(f.Text.Markers) - 1; i >= 0; i-- {
		out = append(out, markerRequest(f.ObjectID, f.Cell, f.Text.Markers[i]))
	}
	return out
}

// styleRequest converts one deck run into an update request, or nil when
// the run sets nothing - the remote service rejects empty field masks.
func styleRequest(objectID string, cell *slides.TableCellLocation, run *deck.TextRun) *slides.Request {
	style := &slides.TextStyle{}
	var fields []string

	setBool := func(name string, src *bool, dst *bool) {
		if src != nil {
			*dst = *src
			fields = append(fields, name)
		}
	}
	setBool("bold", run.Style.Bold, &style.Bold)
	setBool("italic", run.Style.Italic, &style.Italic)
	setBool("underline", run.Style.Underline, &style.Underline)
	setBool("strikethrough", run.Style.Strikethrough, &style.Strikethrough)
	setBool("smallCaps", run.Style.SmallCaps, &style.SmallCaps)

	if run.Style.FontWeight > 0 && len(run.Style.FontFamily) != 0 {
		style.WeightedFontFamily = &slides.WeightedFontFamily{
			FontFamily: run.Style.FontFamily,
			Weight:     int64(run.Style.FontWeight),
		}
		fields = append(fields, "weightedFontFamily")
	} else if len(run.Style.FontFamily) != 0 {
		style.FontFamily = run.Style.FontFamily
		fields = append(fields, "fontFamily")
	} else if run.Style.FontWeight >= 600 && run.Style.Bold == nil {
		style.Bold = true
		fields = append(fields, "bold")
	}

	if run.Style.FontSize > 0 {
		style.FontSize = &slides.Dimension{Magnitude: run.Style.FontSize, Unit: slides.UnitPT}
		fields = append(fields, "fontSize")
	}
	if c := parseColor(run.Style.Foreground); c != nil {
		style.ForegroundColor = c
		fields = append(fields, "foregroundColor")
	}
	if c := parseColor(run.Style.Background); c != nil {
		style.BackgroundColor = c
		fields = append(fields, "backgroundColor")
	}
	if len(run.Style.Link) != 0 {
		style.Link = &slides.Link{URL: run.Style.Link}
		fields = append(fields, "link")
	}
	switch run.Style.Baseline {
	case deck.BaselineOffsetSuperscript:
		style.BaselineOffset = "SUPERSCRIPT"
		fields = append(fields, "baselineOffset")
	case deck.BaselineOffsetSubscript:
		style.BaselineOffset = "SUBSCRIPT"
		fields = append(fields, "baselineOffset")
	}

	if len(fields) == 0 {
		return nil
	}
	return &slides.Request{
		UpdateTextStyle: &slides.UpdateTextStyleRequest{
			ObjectID:     objectID,
			CellLocation: cell,
			TextRange:    slides.FixedRange(int64(run.Start), int64(run.End)),
			Style:        style,
			Fields:       strings.Join(fields, ","),
		},
	}
}

func markerRequest(objectID string, cell *slides.TableCellLocation, m *deck.ListMarker) *slides.Request {
	preset := slides.BulletDiscCircleSquare
	if m.Type == deck.ListTypeOrdered {
		preset = slides.NumberedDigitAlphaRoman
	}
	return &slides.Request{
		CreateParagraphBullets: &slides.CreateParagraphBulletsRequest{
			ObjectID:     objectID,
			CellLocation: cell,
			TextRange:    slides.FixedRange(int64(m.Start), int64(m.End)),
			BulletPreset: preset,
		},
	}
}

// parseColor turns a "#RRGGBB" string into a document color. Anything else
// yields nil and the field is simply not written.
func parseColor(s string) *slides.OptionalColor {
	if len(s) != 7 || s[0] != '#' {
		return nil
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return nil
	}
	return &slides.OptionalColor{
		OpaqueColor: &slides.OpaqueColor{
			RGBColor: &slides.RGBColor{
				Red:   float64(v>>16&0xff) / 255,
				Green: float64(v>>8&0xff) / 255,
				Blue:  float64(v&0xff) / 255,
			},
		},
	}
}
