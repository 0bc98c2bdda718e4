// Package deck defines the slide deck model produced by external parsers and
// consumed by the rendering engine. The model is deliberately renderer
// agnostic: character offsets are rune based, sizes are natural pixels and
// colors are plain #RRGGBB strings.
package deck

import "unicode/utf8"

// NoHeaderSentinel in the first cell of a table marks the first row as
// structural only: the row is dropped before rendering and no header fill is
// applied.
const NoHeaderSentinel = "{.no-header}"

// Deck is a parsed presentation source: ordered slides plus a few
// presentation level attributes.
type Deck struct {
	Title string `json:"title,omitempty"`
	// Stylesheet is passed through to host side rendering, the engine itself
	// never consumes it.
	Stylesheet string             `json:"stylesheet,omitempty"`
	Slides     []*SlideDefinition `json:"slides"`
}

// SlideDefinition describes a single slide to be created and populated.
type SlideDefinition struct {
	Index           int                `json:"index"`
	CustomLayout    string             `json:"customLayout,omitempty"`
	Title           *TextDefinition    `json:"title,omitempty"`
	Subtitle        *TextDefinition    `json:"subtitle,omitempty"`
	Bodies          []*Body            `json:"bodies,omitempty"`
	BackgroundImage *ImageDefinition   `json:"backgroundImage,omitempty"`
	Tables          []*TableDefinition `json:"tables,omitempty"`
	Notes           *TextDefinition    `json:"notes,omitempty"`

	// ObjectID is assigned during the create pass and is only valid for the
	// snapshot the slide was created in. Empty before creation.
	ObjectID string `json:"-"`
}

// Body is one content region of a slide: text plus media anchored to it.
type Body struct {
	Text   *TextDefinition    `json:"text,omitempty"`
	Images []*ImageDefinition `json:"images,omitempty"`
	Videos []*VideoDefinition `json:"videos,omitempty"`
}

// TextDefinition carries raw text with ordered, non overlapping style spans
// and list marker spans. All offsets are rune offsets into Raw.
type TextDefinition struct {
	Raw     string        `json:"rawText"`
	Runs    []*TextRun    `json:"textRuns,omitempty"`
	Markers []*ListMarker `json:"listMarkers,omitempty"`
}

// Empty reports whether there is no text to render.
func (t *TextDefinition) Empty() bool {
	return t == nil || len(t.Raw) == 0
}

// RuneLen returns the length of the raw text in runes, the unit all span
// offsets are expressed in.
func (t *TextDefinition) RuneLen() int {
	if t == nil {
		return 0
	}
	return utf8.RuneCountInString(t.Raw)
}

// TextRun is a character range style override.
type TextRun struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Style RunStyle `json:"style"`
}

// RunStyle holds the style fields a run may override. Boolean fields are
// pointers so that an explicit "false" can be told apart from "not set".
type RunStyle struct {
	Bold          *bool          `json:"bold,omitempty"`
	Italic        *bool          `json:"italic,omitempty"`
	Underline     *bool          `json:"underline,omitempty"`
	Strikethrough *bool          `json:"strikethrough,omitempty"`
	SmallCaps     *bool          `json:"smallCaps,omitempty"`
	FontFamily    string         `json:"fontFamily,omitempty"`
	FontSize      float64        `json:"fontSize,omitempty"` // points
	FontWeight    int            `json:"fontWeight,omitempty"`
	Foreground    string         `json:"foregroundColor,omitempty"`
	Background    string         `json:"backgroundColor,omitempty"`
	Link          string         `json:"link,omitempty"`
	Baseline      BaselineOffset `json:"baselineOffset,omitempty"`
}

// Zero reports whether no field of the style is set.
func (s *RunStyle) Zero() bool {
	return s.Bold == nil && s.Italic == nil && s.Underline == nil &&
		s.Strikethrough == nil && s.SmallCaps == nil &&
		len(s.FontFamily) == 0 && s.FontSize == 0 && s.FontWeight == 0 &&
		len(s.Foreground) == 0 && len(s.Background) == 0 && len(s.Link) == 0 &&
		s.Baseline == BaselineOffsetNone
}

// ListMarker is a character range to be rendered as a list.
type ListMarker struct {
	Start int      `json:"start"`
	End   int      `json:"end"`
	Type  ListType `json:"type"`
}

// ImageDefinition describes an image placed on a slide. URL may be a remote
// address or a local file reference which the upload stage rewrites in place.
type ImageDefinition struct {
	URL     string  `json:"url"`
	Width   int     `json:"width,omitempty"`  // natural pixels
	Height  int     `json:"height,omitempty"` // natural pixels
	Padding float64 `json:"padding,omitempty"`
	OffsetX float64 `json:"offsetX,omitempty"`
	OffsetY float64 `json:"offsetY,omitempty"`
	AltText string  `json:"altText,omitempty"`
}

// VideoDefinition describes an embedded video. Only one video per slide is
// supported.
type VideoDefinition struct {
	ID      string `json:"id"`
	Source  string `json:"source,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	AltText string `json:"altText,omitempty"`
}

// TableDefinition describes a table; Cells is row major and may be ragged,
// missing cells render empty.
type TableDefinition struct {
	Rows    int                 `json:"rows"`
	Columns int                 `json:"columns"`
	Cells   [][]*TextDefinition `json:"cells"`
}

// NoHeader reports whether the first cell carries the structural sentinel.
func (t *TableDefinition) NoHeader() bool {
	if t == nil || len(t.Cells) == 0 || len(t.Cells[0]) == 0 {
		return false
	}
	c := t.Cells[0][0]
	return c != nil && c.Raw == NoHeaderSentinel
}

// Videos collects video definitions from all bodies of the slide.
func (s *SlideDefinition) Videos() []*VideoDefinition {
	var out []*VideoDefinition
	for _, b := range s.Bodies {
		out = append(out, b.Videos...)
	}
	return out
}

// Images collects image definitions from all bodies and the background of the
// slide. The upload stage uses it to rewrite local references in place.
func (s *SlideDefinition) Images() []*ImageDefinition {
	var out []*ImageDefinition
	if s.BackgroundImage != nil {
		out = append(out, s.BackgroundImage)
	}
	for _, b := range s.Bodies {
		out = append(out, b.Images...)
	}
	return out
}
