package slides

// Range types for text targeting requests.
const (
	RangeFixed     = "FIXED_RANGE"
	RangeFromStart = "FROM_START_INDEX"
	RangeAll       = "ALL"
)

// Video sources accepted by CreateVideo.
const VideoSourceYouTube = "YOUTUBE"

// Bullet presets the engine emits for list marker ranges.
const (
	BulletDiscCircleSquare  = "BULLET_DISC_CIRCLE_SQUARE"
	NumberedDigitAlphaRoman = "NUMBERED_DIGIT_ALPHA_ROMAN"
)

// Request is a single atomic document mutation. Exactly one field is set.
// Requests are positionally ordered within a batch and are never reordered
// by the dispatch machinery.
type Request struct {
	CreateSlide               *CreateSlideRequest               `json:"createSlide,omitempty"`
	DeleteObject              *DeleteObjectRequest              `json:"deleteObject,omitempty"`
	InsertText                *InsertTextRequest                `json:"insertText,omitempty"`
	UpdateTextStyle           *UpdateTextStyleRequest           `json:"updateTextStyle,omitempty"`
	CreateParagraphBullets    *CreateParagraphBulletsRequest    `json:"createParagraphBullets,omitempty"`
	CreateImage               *CreateImageRequest               `json:"createImage,omitempty"`
	CreateVideo               *CreateVideoRequest               `json:"createVideo,omitempty"`
	CreateTable               *CreateTableRequest               `json:"createTable,omitempty"`
	UpdateTableCellProperties *UpdateTableCellPropertiesRequest `json:"updateTableCellProperties,omitempty"`
	UpdatePageProperties      *UpdatePagePropertiesRequest      `json:"updatePageProperties,omitempty"`
	UpdatePageElementAltText  *UpdatePageElementAltTextRequest  `json:"updatePageElementAltText,omitempty"`
}

// Kind names the operation carried by the request, for logs and diagnostics.
func (r *Request) Kind() string {
	switch {
	case r == nil:
		return "nil"
	case r.CreateSlide != nil:
		return "createSlide"
	case r.DeleteObject != nil:
		return "deleteObject"
	case r.InsertText != nil:
		return "insertText"
	case r.UpdateTextStyle != nil:
		return "updateTextStyle"
	case r.CreateParagraphBullets != nil:
		return "createParagraphBullets"
	case r.CreateImage != nil:
		return "createImage"
	case r.CreateVideo != nil:
		return "createVideo"
	case r.CreateTable != nil:
		return "createTable"
	case r.UpdateTableCellProperties != nil:
		return "updateTableCellProperties"
	case r.UpdatePageProperties != nil:
		return "updatePageProperties"
	case r.UpdatePageElementAltText != nil:
		return "updatePageElementAltText"
	}
	return "empty"
}

// IsMediaCreate reports whether the request creates a rate limited media
// element. The dispatch scheduler caps the number of those per chunk.
func (r *Request) IsMediaCreate() bool {
	return r != nil && (r.CreateImage != nil || r.CreateVideo != nil)
}

type CreateSlideRequest struct {
	ObjectID             string                `json:"objectId,omitempty"`
	InsertionIndex       *int64                `json:"insertionIndex,omitempty"`
	SlideLayoutReference *SlideLayoutReference `json:"slideLayoutReference,omitempty"`
}

type SlideLayoutReference struct {
	LayoutID         string `json:"layoutId,omitempty"`
	PredefinedLayout string `json:"predefinedLayout,omitempty"`
}

type DeleteObjectRequest struct {
	ObjectID string `json:"objectId"`
}

// InsertTextRequest targets either a shape (ObjectID only) or a table cell
// (ObjectID of the table plus CellLocation).
type InsertTextRequest struct {
	ObjectID       string             `json:"objectId"`
	CellLocation   *TableCellLocation `json:"cellLocation,omitempty"`
	Text           string             `json:"text"`
	InsertionIndex int64              `json:"insertionIndex"`
}

type Range struct {
	Type       string `json:"type"`
	StartIndex *int64 `json:"startIndex,omitempty"`
	EndIndex   *int64 `json:"endIndex,omitempty"`
}

// FixedRange builds a FIXED_RANGE over [start, end).
func FixedRange(start, end int64) *Range {
	return &Range{Type: RangeFixed, StartIndex: &start, EndIndex: &end}
}

// UpdateTextStyleRequest applies Style to TextRange; only fields listed in
// the Fields mask are touched. The remote service rejects an empty mask.
type UpdateTextStyleRequest struct {
	ObjectID     string             `json:"objectId"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
	Style        *TextStyle         `json:"style,omitempty"`
	Fields       string             `json:"fields"`
}

type CreateParagraphBulletsRequest struct {
	ObjectID     string             `json:"objectId"`
	CellLocation *TableCellLocation `json:"cellLocation,omitempty"`
	TextRange    *Range             `json:"textRange,omitempty"`
	BulletPreset string             `json:"bulletPreset,omitempty"`
}

type PageElementProperties struct {
	PageObjectID string           `json:"pageObjectId,omitempty"`
	Size         *Size            `json:"size,omitempty"`
	Transform    *AffineTransform `json:"transform,omitempty"`
}

type CreateImageRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	URL               string                 `json:"url,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
}

type CreateVideoRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ID                string                 `json:"id,omitempty"`
	Source            string                 `json:"source,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
}

type CreateTableRequest struct {
	ObjectID          string                 `json:"objectId,omitempty"`
	ElementProperties *PageElementProperties `json:"elementProperties,omitempty"`
	Rows              int64                  `json:"rows"`
	Columns           int64                  `json:"columns"`
}

type TableRange struct {
	Location   *TableCellLocation `json:"location,omitempty"`
	RowSpan    int64              `json:"rowSpan"`
	ColumnSpan int64              `json:"columnSpan"`
}

type TableCellProperties struct {
	TableCellBackgroundFill *TableCellBackgroundFill `json:"tableCellBackgroundFill,omitempty"`
}

type TableCellBackgroundFill struct {
	SolidFill *SolidFill `json:"solidFill,omitempty"`
}

type UpdateTableCellPropertiesRequest struct {
	ObjectID            string               `json:"objectId"`
	TableRange          *TableRange          `json:"tableRange,omitempty"`
	TableCellProperties *TableCellProperties `json:"tableCellProperties,omitempty"`
	Fields              string               `json:"fields"`
}

type UpdatePagePropertiesRequest struct {
	ObjectID       string          `json:"objectId"`
	PageProperties *PageProperties `json:"pageProperties,omitempty"`
	Fields         string          `json:"fields"`
}

type UpdatePageElementAltTextRequest struct {
	ObjectID    string `json:"objectId"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// BatchUpdateResponse acknowledges an applied batch.
type BatchUpdateResponse struct {
	PresentationID string   `json:"presentationId,omitempty"`
	Replies        []*Reply `json:"replies,omitempty"`
}

// Reply mirrors the request union for operations that answer with a created
// object identity.
type Reply struct {
	CreateSlide *CreatedObject `json:"createSlide,omitempty"`
	CreateImage *CreatedObject `json:"createImage,omitempty"`
	CreateVideo *CreatedObject `json:"createVideo,omitempty"`
	CreateTable *CreatedObject `json:"createTable,omitempty"`
}

type CreatedObject struct {
	ObjectID string `json:"objectId,omitempty"`
}
