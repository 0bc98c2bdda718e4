// Package slides models the subset of the remote presentation document schema
// the rendering engine manipulates - pages, placeholders, layouts, masters,
// text runs, tables, images and transforms - together with the mutation
// requests and the service client used to apply them.
package slides

// Unit names used by Dimension and AffineTransform.
const (
	UnitEMU = "EMU"
	UnitPT  = "PT"
)

// Page types as reported by the remote document.
const (
	PageTypeSlide  = "SLIDE"
	PageTypeLayout = "LAYOUT"
	PageTypeMaster = "MASTER"
	PageTypeNotes  = "NOTES"
)

// Placeholder types the engine targets.
const (
	PlaceholderTitle         = "TITLE"
	PlaceholderCenteredTitle = "CENTERED_TITLE"
	PlaceholderSubtitle      = "SUBTITLE"
	PlaceholderBody          = "BODY"
	PlaceholderPicture       = "PICTURE"
)

// Predefined layout names every master carries.
const (
	LayoutTitle         = "TITLE"
	LayoutTitleAndBody  = "TITLE_AND_BODY"
	LayoutSectionHeader = "SECTION_HEADER"
	LayoutBlank         = "BLANK"
)

// Presentation is a point in time snapshot of the remote document. It is
// immutable until reloaded: any applied mutation invalidates object
// identities read from it.
type Presentation struct {
	PresentationID string  `json:"presentationId,omitempty"`
	Title          string  `json:"title,omitempty"`
	PageSize       *Size   `json:"pageSize,omitempty"`
	Slides         []*Page `json:"slides,omitempty"`
	Layouts        []*Page `json:"layouts,omitempty"`
	Masters        []*Page `json:"masters,omitempty"`
}

// Page is one slide, layout, master or notes page.
type Page struct {
	ObjectID         string            `json:"objectId,omitempty"`
	PageType         string            `json:"pageType,omitempty"`
	PageElements     []*PageElement    `json:"pageElements,omitempty"`
	LayoutProperties *LayoutProperties `json:"layoutProperties,omitempty"`
	SlideProperties  *SlideProperties  `json:"slideProperties,omitempty"`
	NotesProperties  *NotesProperties  `json:"notesProperties,omitempty"`
	PageProperties   *PageProperties   `json:"pageProperties,omitempty"`
}

type LayoutProperties struct {
	MasterObjectID string `json:"masterObjectId,omitempty"`
	Name           string `json:"name,omitempty"`
	DisplayName    string `json:"displayName,omitempty"`
}

type SlideProperties struct {
	LayoutObjectID string `json:"layoutObjectId,omitempty"`
	MasterObjectID string `json:"masterObjectId,omitempty"`
	NotesPage      *Page  `json:"notesPage,omitempty"`
}

type NotesProperties struct {
	SpeakerNotesObjectID string `json:"speakerNotesObjectId,omitempty"`
}

type PageProperties struct {
	PageBackgroundFill *PageBackgroundFill `json:"pageBackgroundFill,omitempty"`
}

type PageBackgroundFill struct {
	StretchedPictureFill *StretchedPictureFill `json:"stretchedPictureFill,omitempty"`
	SolidFill            *SolidFill            `json:"solidFill,omitempty"`
}

type StretchedPictureFill struct {
	ContentURL string `json:"contentUrl,omitempty"`
	Size       *Size  `json:"size,omitempty"`
}

type SolidFill struct {
	Color *OpaqueColor `json:"color,omitempty"`
	Alpha float64      `json:"alpha,omitempty"`
}

// PageElement is a single visual on a page. Exactly one of Shape, Image,
// Video or Table is set.
type PageElement struct {
	ObjectID    string           `json:"objectId,omitempty"`
	Size        *Size            `json:"size,omitempty"`
	Transform   *AffineTransform `json:"transform,omitempty"`
	Title       string           `json:"title,omitempty"`
	Description string           `json:"description,omitempty"`
	Shape       *Shape           `json:"shape,omitempty"`
	Image       *Image           `json:"image,omitempty"`
	Video       *Video           `json:"video,omitempty"`
	Table       *Table           `json:"table,omitempty"`
}

// Placeholder returns placeholder attributes of a shape element, nil for
// anything else.
func (e *PageElement) Placeholder() *Placeholder {
	if e == nil || e.Shape == nil {
		return nil
	}
	return e.Shape.Placeholder
}

type Size struct {
	Width  *Dimension `json:"width,omitempty"`
	Height *Dimension `json:"height,omitempty"`
}

type Dimension struct {
	Magnitude float64 `json:"magnitude,omitempty"`
	Unit      string  `json:"unit,omitempty"`
}

// AffineTransform maps element coordinates onto the page. Only axis aligned
// scale and translate are ever written by the engine; shear may still be
// present on read.
type AffineTransform struct {
	ScaleX     float64 `json:"scaleX,omitempty"`
	ScaleY     float64 `json:"scaleY,omitempty"`
	ShearX     float64 `json:"shearX,omitempty"`
	ShearY     float64 `json:"shearY,omitempty"`
	TranslateX float64 `json:"translateX,omitempty"`
	TranslateY float64 `json:"translateY,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

type Shape struct {
	ShapeType   string       `json:"shapeType,omitempty"`
	Placeholder *Placeholder `json:"placeholder,omitempty"`
	Text        *TextContent `json:"text,omitempty"`
}

// Placeholder ties a shape to the template element it inherits from via
// ParentObjectID.
type Placeholder struct {
	Type           string `json:"type,omitempty"`
	Index          int64  `json:"index,omitempty"`
	ParentObjectID string `json:"parentObjectId,omitempty"`
}

type Image struct {
	ContentURL string `json:"contentUrl,omitempty"`
	SourceURL  string `json:"sourceUrl,omitempty"`
}

type Video struct {
	ID     string `json:"id,omitempty"`
	Source string `json:"source,omitempty"`
	URL    string `json:"url,omitempty"`
}

type Table struct {
	Rows      int64       `json:"rows,omitempty"`
	Columns   int64       `json:"columns,omitempty"`
	TableRows []*TableRow `json:"tableRows,omitempty"`
}

type TableRow struct {
	RowHeight  *Dimension   `json:"rowHeight,omitempty"`
	TableCells []*TableCell `json:"tableCells,omitempty"`
}

type TableCell struct {
	Location *TableCellLocation `json:"location,omitempty"`
	Text     *TextContent       `json:"text,omitempty"`
}

type TableCellLocation struct {
	RowIndex    int64 `json:"rowIndex"`
	ColumnIndex int64 `json:"columnIndex"`
}

type TextContent struct {
	TextElements []*TextElement `json:"textElements,omitempty"`
}

// TextElement is either a paragraph marker or a run of styled characters.
type TextElement struct {
	StartIndex      int64            `json:"startIndex,omitempty"`
	EndIndex        int64            `json:"endIndex,omitempty"`
	ParagraphMarker *ParagraphMarker `json:"paragraphMarker,omitempty"`
	TextRun         *TextRun         `json:"textRun,omitempty"`
}

type ParagraphMarker struct {
	Style *ParagraphStyle `json:"style,omitempty"`
}

type TextRun struct {
	Content string     `json:"content,omitempty"`
	Style   *TextStyle `json:"style,omitempty"`
}

// ParagraphStyle carries the paragraph level attributes placeholders inherit
// down the slide -> layout -> master chain.
type ParagraphStyle struct {
	LineSpacing     float64    `json:"lineSpacing,omitempty"` // percent, 100 is single spacing
	Alignment       string     `json:"alignment,omitempty"`
	IndentStart     *Dimension `json:"indentStart,omitempty"`
	IndentEnd       *Dimension `json:"indentEnd,omitempty"`
	IndentFirstLine *Dimension `json:"indentFirstLine,omitempty"`
	SpaceAbove      *Dimension `json:"spaceAbove,omitempty"`
	SpaceBelow      *Dimension `json:"spaceBelow,omitempty"`
	SpacingMode     string     `json:"spacingMode,omitempty"`
	Direction       string     `json:"direction,omitempty"`
}

type TextStyle struct {
	Bold               bool                `json:"bold,omitempty"`
	Italic             bool                `json:"italic,omitempty"`
	Underline          bool                `json:"underline,omitempty"`
	Strikethrough      bool                `json:"strikethrough,omitempty"`
	SmallCaps          bool                `json:"smallCaps,omitempty"`
	FontFamily         string              `json:"fontFamily,omitempty"`
	FontSize           *Dimension          `json:"fontSize,omitempty"`
	ForegroundColor    *OptionalColor      `json:"foregroundColor,omitempty"`
	BackgroundColor    *OptionalColor      `json:"backgroundColor,omitempty"`
	BaselineOffset     string              `json:"baselineOffset,omitempty"`
	WeightedFontFamily *WeightedFontFamily `json:"weightedFontFamily,omitempty"`
	Link               *Link               `json:"link,omitempty"`
}

type WeightedFontFamily struct {
	FontFamily string `json:"fontFamily,omitempty"`
	Weight     int64  `json:"weight,omitempty"`
}

type Link struct {
	URL string `json:"url,omitempty"`
}

type OptionalColor struct {
	OpaqueColor *OpaqueColor `json:"opaqueColor,omitempty"`
}

type OpaqueColor struct {
	RGBColor   *RGBColor `json:"rgbColor,omitempty"`
	ThemeColor string    `json:"themeColor,omitempty"`
}

type RGBColor struct {
	Red   float64 `json:"red,omitempty"`
	Green float64 `json:"green,omitempty"`
	Blue  float64 `json:"blue,omitempty"`
}
