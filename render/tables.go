package render

import (
	"slidec/deck"
	"slidec/slides"
)

// headerGray is the fill applied behind the first row of tables that keep
// their header.
const headerGray = 0.95

// tableRequests builds the create and populate mutations for one table. The
// table object identity is chosen by the caller so that cell fills in the
// same batch can target it without waiting for a reply. A first row holding
// the structural sentinel is folded away locally: the table is created one
// row shorter, remaining rows shift up and no header fill is produced.
func tableRequests(t *deck.TableDefinition, objectID, pageID string) []*slides.Request {
	rows, cells, header := int64(t.Rows), t.Cells, true
	if t.NoHeader() {
		rows--
		cells = cells[1:]
		header = false
	}
	if rows < 1 {
		return nil
	}

	out := []*slides.Request{{
		CreateTable: &slides.CreateTableRequest{
			ObjectID:          objectID,
			ElementProperties: &slides.PageElementProperties{PageObjectID: pageID},
			Rows:              rows,
			Columns:           int64(t.Columns),
		},
	}}

	if header {
		out = append(out, &slides.Request{
			UpdateTableCellProperties: &slides.UpdateTableCellPropertiesRequest{
				ObjectID: objectID,
				TableRange: &slides.TableRange{
					Location:   &slides.TableCellLocation{RowIndex: 0, ColumnIndex: 0},
					RowSpan:    1,
					ColumnSpan: int64(t.Columns),
				},
				TableCellProperties: &slides.TableCellProperties{
					TableCellBackgroundFill: &slides.TableCellBackgroundFill{
						SolidFill: &slides.SolidFill{
							Color: &slides.OpaqueColor{
								RGBColor: &slides.RGBColor{Red: headerGray, Green: headerGray, Blue: headerGray},
							},
						},
					},
				},
				Fields: "tableCellBackgroundFill.solidFill.color",
			},
		})
	}

	// Table cells keep their natural size, no autofit pass here.
	for ri, row := range cells {
		for ci, cell := range row {
			if cell.Empty() {
				continue
			}
			fill := &textFill{
				ObjectID: objectID,
				Cell:     &slides.TableCellLocation{RowIndex: int64(ri), ColumnIndex: int64(ci)},
				Text:     cell,
			}
			out = append(out, fill.requests()...)
		}
	}
	return out
}
