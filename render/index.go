package render

import (
	"slices"

	"slidec/slides"
)

// maxParentDepth bounds placeholder parent traversal. The remote topology is
// slide -> layout -> master; anything deeper or cyclic is a malformed
// document and terminates the walk instead of looping.
const maxParentDepth = 3

// snapshotIndex is the identity to element lookup for one document
// snapshot, covering slides, layouts and masters. Identities indexed here
// are only valid until the next applied mutation; the engine rebuilds the
// index on every reload.
type snapshotIndex struct {
	elements  map[string]*slides.PageElement
	slideByID map[string]*slides.Page
}

func buildIndex(p *slides.Presentation) *snapshotIndex {
	ix := &snapshotIndex{
		elements:  make(map[string]*slides.PageElement),
		slideByID: make(map[string]*slides.Page),
	}
	index := func(pages []*slides.Page) {
		for _, page := range pages {
			for _, el := range page.PageElements {
				ix.elements[el.ObjectID] = el
			}
		}
	}
	index(p.Slides)
	index(p.Layouts)
	index(p.Masters)
	for _, page := range p.Slides {
		ix.slideByID[page.ObjectID] = page
	}
	return ix
}

// slide returns the slide page with the given identity, nil when the
// snapshot has none.
func (ix *snapshotIndex) slide(id string) *slides.Page {
	return ix.slideByID[id]
}

// ancestorChain returns the inheritance chain for an element, oldest
// ancestor first and the element itself last, by following parent references
// through the index. Unknown parents, cycles and chains deeper than
// maxParentDepth end the walk.
func (ix *snapshotIndex) ancestorChain(e *slides.PageElement) []*slides.PageElement {
	var chain []*slides.PageElement
	seen := make(map[string]bool)
	for cur := e; cur != nil && len(chain) < maxParentDepth && !seen[cur.ObjectID]; {
		seen[cur.ObjectID] = true
		chain = append(chain, cur)
		ph := cur.Placeholder()
		if ph == nil || len(ph.ParentObjectID) == 0 {
			break
		}
		cur = ix.elements[ph.ParentObjectID]
	}
	slices.Reverse(chain)
	return chain
}

// findPlaceholder returns the first element of the page carrying any of the
// given placeholder types, in page element order.
func findPlaceholder(page *slides.Page, types ...string) *slides.PageElement {
	for _, el := range page.PageElements {
		ph := el.Placeholder()
		if ph == nil {
			continue
		}
		if slices.Contains(types, ph.Type) {
			return el
		}
	}
	return nil
}

// findPlaceholders returns every element of the page carrying the given
// placeholder type ordered by placeholder index, the order body regions are
// matched up in.
func findPlaceholders(page *slides.Page, typ string) []*slides.PageElement {
	var out []*slides.PageElement
	for _, el := range page.PageElements {
		if ph := el.Placeholder(); ph != nil && ph.Type == typ {
			out = append(out, el)
		}
	}
	slices.SortStableFunc(out, func(a, b *slides.PageElement) int {
		return int(a.Placeholder().Index - b.Placeholder().Index)
	})
	return out
}
