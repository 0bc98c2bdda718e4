package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/maruel/natural"

	"slidec/deck"
	"slidec/slides"
)

// MissingLayoutError is returned when a requested layout name matches
// nothing in the document. There is no partial slide fallback - the whole
// run aborts.
type MissingLayoutError struct {
	Name      string
	Available []string
}

func (e *MissingLayoutError) Error() string {
	return fmt.Sprintf("no layout %q in presentation, available: %s", e.Name, strings.Join(e.Available, ", "))
}

// resolveLayout picks the template layout to instantiate for a slide: the
// explicitly requested name when present, a shape derived default
// otherwise. Names match against both the layout name and its display name,
// case insensitively.
func resolveLayout(p *slides.Presentation, s *deck.SlideDefinition, forced string) (*slides.Page, error) {
	name := forced
	if len(name) == 0 {
		name = s.CustomLayout
	}
	if len(name) == 0 {
		name = defaultLayoutName(s)
	}

	for _, l := range p.Layouts {
		lp := l.LayoutProperties
		if lp == nil {
			continue
		}
		if strings.EqualFold(lp.Name, name) || strings.EqualFold(lp.DisplayName, name) {
			return l, nil
		}
	}
	return nil, &MissingLayoutError{Name: name, Available: layoutNames(p)}
}

// defaultLayoutName derives a predefined layout from the slide content
// shape.
func defaultLayoutName(s *deck.SlideDefinition) string {
	hasBody := len(s.Bodies) > 0 || len(s.Tables) > 0
	switch {
	case s.Title != nil && s.Subtitle != nil:
		return slides.LayoutTitle
	case hasBody:
		return slides.LayoutTitleAndBody
	case s.Title != nil:
		return slides.LayoutSectionHeader
	}
	return slides.LayoutBlank
}

// layoutNames lists the document layouts in natural order, for error
// messages and the layout inspection command.
func layoutNames(p *slides.Presentation) []string {
	var names []string
	for _, l := range p.Layouts {
		if l.LayoutProperties == nil {
			continue
		}
		name := l.LayoutProperties.Name
		if len(l.LayoutProperties.DisplayName) != 0 && !strings.EqualFold(name, l.LayoutProperties.DisplayName) {
			name = fmt.Sprintf("%s (%s)", name, l.LayoutProperties.DisplayName)
		}
		if len(name) != 0 {
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int {
		if natural.Less(a, b) {
			return -1
		}
		if natural.Less(b, a) {
			return 1
		}
		return 0
	})
	return names
}
