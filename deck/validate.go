package deck

import "fmt"

// Validate checks constraints upstream producers are required to honor.
// Violations indicate a broken producer, not bad user input, so all of them
// are fatal for the run.
func (d *Deck) Validate() error {
	if d == nil || len(d.Slides) == 0 {
		return fmt.Errorf("deck has no slides")
	}
	for i, s := range d.Slides {
		if s == nil {
			return fmt.Errorf("slide %d: empty definition", i)
		}
		if err := s.validate(); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
	}
	return nil
}

func (s *SlideDefinition) validate() error {
	if err := checkText("title", s.Title); err != nil {
		return err
	}
	if err := checkText("subtitle", s.Subtitle); err != nil {
		return err
	}
	if err := checkText("notes", s.Notes); err != nil {
		return err
	}
	videos := 0
	for i, b := range s.Bodies {
		if b == nil {
			return fmt.Errorf("body %d: empty definition", i)
		}
		if err := checkText(fmt.Sprintf("body %d", i), b.Text); err != nil {
			return err
		}
		for _, v := range b.Videos {
			if len(v.ID) == 0 {
				return fmt.Errorf("body %d: video without id", i)
			}
		}
		videos += len(b.Videos)
	}
	if videos > 1 {
		return fmt.Errorf("%d videos requested, only one video per slide is supported", videos)
	}
	for _, img := range s.Images() {
		if len(img.URL) == 0 {
			return fmt.Errorf("image without source")
		}
	}
	if len(s.Tables) > 1 {
		return fmt.Errorf("%d tables requested, only one table per slide is supported", len(s.Tables))
	}
	for _, t := range s.Tables {
		if t.Rows <= 0 || t.Columns <= 0 {
			return fmt.Errorf("table has no geometry (%dx%d)", t.Rows, t.Columns)
		}
		for r, row := range t.Cells {
			if len(row) > t.Columns {
				return fmt.Errorf("table row %d has %d cells, table has %d columns", r, len(row), t.Columns)
			}
			for c, cell := range row {
				if err := checkText(fmt.Sprintf("table cell %d/%d", r, c), cell); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkText(what string, t *TextDefinition) error {
	if t == nil {
		return nil
	}
	l := t.RuneLen()
	for i, r := range t.Runs {
		if err := checkRange(r.Start, r.End, l); err != nil {
			return fmt.Errorf("%s: run %d: %w", what, i, err)
		}
	}
	for i, m := range t.Markers {
		if err := checkRange(m.Start, m.End, l); err != nil {
			return fmt.Errorf("%s: marker %d: %w", what, i, err)
		}
		if !m.Type.IsValid() {
			return fmt.Errorf("%s: marker %d: unknown list type %d", what, i, int(m.Type))
		}
	}
	return nil
}

func checkRange(start, end, limit int) error {
	if start < 0 || end < start || end > limit {
		return fmt.Errorf("bad range [%d,%d) for text of %d runes", start, end, limit)
	}
	return nil
}
