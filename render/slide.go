package render

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/neurosnap/sentences"
	"go.uber.org/zap"

	"slidec/deck"
	"slidec/slides"
)

// newObjectID mints a document object identity. The service accepts client
// chosen identities, which lets later requests in the same batch target
// objects created earlier in it without waiting for replies.
func newObjectID() string {
	return "o" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// slideBuilder turns created slides of one document snapshot into populate
// mutations. It is valid for exactly one snapshot: object identities and
// memoized fits go stale the moment a batch is applied.
type slideBuilder struct {
	pres   *slides.Presentation
	ix     *snapshotIndex
	fit    *fitter
	styles styleSet
	tok    *sentences.DefaultSentenceTokenizer
	log    *zap.Logger
}

// populate builds the ordered mutation list for one slide: titles first,
// then background, tables, bodies with their media, placeholder cleanup and
// finally speaker notes. Content with no matching placeholder is skipped
// with a diagnostic, a missing slide page is an error.
func (b *slideBuilder) populate(s *deck.SlideDefinition) ([]*slides.Request, error) {
	page := b.ix.slide(s.ObjectID)
	if page == nil {
		return nil, fmt.Errorf("slide %d: object %q not present in the document snapshot", s.Index, s.ObjectID)
	}

	var out []*slides.Request
	add := func(reqs []*slides.Request, err error) error {
		if err != nil {
			return err
		}
		out = append(out, reqs...)
		return nil
	}

	if !s.Title.Empty() {
		if el := findPlaceholder(page, slides.PlaceholderCenteredTitle, slides.PlaceholderTitle); el != nil {
			if err := add(b.shapeFill(el, s.Title, fitHorizontal, "title")); err != nil {
				return nil, err
			}
		} else {
			b.skip(s, "title", s.Title)
		}
	}
	if !s.Subtitle.Empty() {
		if el := findPlaceholder(page, slides.PlaceholderSubtitle); el != nil {
			if err := add(b.shapeFill(el, s.Subtitle, fitHorizontal, "subtitle")); err != nil {
				return nil, err
			}
		} else {
			b.skip(s, "subtitle", s.Subtitle)
		}
	}

	if s.BackgroundImage != nil && len(s.BackgroundImage.URL) != 0 {
		out = append(out, &slides.Request{
			UpdatePageProperties: &slides.UpdatePagePropertiesRequest{
				ObjectID: page.ObjectID,
				PageProperties: &slides.PageProperties{
					PageBackgroundFill: &slides.PageBackgroundFill{
						StretchedPictureFill: &slides.StretchedPictureFill{ContentURL: s.BackgroundImage.URL},
					},
				},
				Fields: "pageBackgroundFill.stretchedPictureFill.contentUrl",
			},
		})
	}

	for _, t := range s.Tables {
		out = append(out, tableRequests(t, newObjectID(), page.ObjectID)...)
	}

	var pageW, pageH float64
	if b.pres.PageSize != nil {
		pageW = dimensionToEMU(b.pres.PageSize.Width)
		pageH = dimensionToEMU(b.pres.PageSize.Height)
	}
	bodyEls := findPlaceholders(page, slides.PlaceholderBody)
	pictureEls := findPlaceholders(page, slides.PlaceholderPicture)
	nextPicture := 0

	for i, body := range s.Bodies {
		var bodyEl *slides.PageElement
		if i < len(bodyEls) {
			bodyEl = bodyEls[i]
		}

		if !body.Text.Empty() {
			if bodyEl != nil {
				if err := add(b.shapeFill(bodyEl, body.Text, fitVertical, "body")); err != nil {
					return nil, err
				}
			} else {
				b.skip(s, "body", body.Text)
			}
		}

		if len(body.Images) != 0 {
			// Images replace a picture placeholder when the layout offers
			// one, otherwise they pack into the body region.
			target := fallbackRegion(pageW, pageH)
			if nextPicture < len(pictureEls) {
				pic := pictureEls[nextPicture]
				nextPicture++
				target = elementBoxEMU(pic)
				out = append(out, &slides.Request{
					DeleteObject: &slides.DeleteObjectRequest{ObjectID: pic.ObjectID},
				})
			} else if bodyEl != nil && body.Text.Empty() {
				target = elementBoxEMU(bodyEl)
			}
			out = append(out, b.imageRequests(s, body.Images, target, page.ObjectID)...)
		}

		for _, v := range body.Videos {
			target := fallbackRegion(pageW, pageH)
			if bodyEl != nil && body.Text.Empty() && len(body.Images) == 0 {
				target = elementBoxEMU(bodyEl)
			}
			out = append(out, videoRequests(v, target, page.ObjectID)...)
		}
	}

	// Placeholders no image claimed would render as empty prompt boxes.
	for ; nextPicture < len(pictureEls); nextPicture++ {
		out = append(out, &slides.Request{
			DeleteObject: &slides.DeleteObjectRequest{ObjectID: pictureEls[nextPicture].ObjectID},
		})
	}

	if !s.Notes.Empty() {
		if id := speakerNotesID(page); len(id) != 0 {
			fill := &textFill{ObjectID: id, Text: s.Notes}
			out = append(out, fill.requests()...)
		} else {
			b.skip(s, "notes", s.Notes)
		}
	}
	return out, nil
}

// shapeFill resolves inherited style for the placeholder, autofits the text
// under the given mode and emits the fill. The explicit size override is
// only written when autofit actually shrank the text.
func (b *slideBuilder) shapeFill(el *slides.PageElement, text *deck.TextDefinition, mode fitMode, kind string) ([]*slides.Request, error) {
	chain := b.ix.ancestorChain(el)
	style := resolveTextStyle(chain, b.styles.forKind(kind))
	size, shrunk, err := b.fit.fit(chain, style, text, mode)
	if err != nil {
		return nil, err
	}
	if shrunk && size <= minFontSizePT {
		b.log.Debug("text shrunk to the smallest allowed size, may overflow",
			zap.String("content", kind), zap.String("object", el.ObjectID), zap.String("text", b.snippet(text.Raw)))
	}
	fill := &textFill{ObjectID: el.ObjectID, Text: text}
	if shrunk {
		fill.FontSizePT = size
	}
	return fill.requests(), nil
}

// imageRequests packs the images into the target region and emits a create
// per image, each immediately followed by its alt text update when one is
// set. Images without natural dimensions cannot be placed and are skipped
// with a diagnostic.
func (b *slideBuilder) imageRequests(s *deck.SlideDefinition, images []*deck.ImageDefinition, target box, pageID string) []*slides.Request {
	var out []*slides.Request
	for i, pl := range packImages(images, target) {
		img := images[i]
		if pl.scale <= 0 {
			b.log.Warn("skipping image with unknown dimensions",
				zap.Int("slide", s.Index), zap.String("url", img.URL))
			continue
		}
		id := newObjectID()
		out = append(out, &slides.Request{
			CreateImage: &slides.CreateImageRequest{
				ObjectID:          id,
				URL:               img.URL,
				ElementProperties: pl.elementProperties(pageID),
			},
		})
		if len(img.AltText) != 0 {
			out = append(out, &slides.Request{
				UpdatePageElementAltText: &slides.UpdatePageElementAltTextRequest{
					ObjectID:    id,
					Description: img.AltText,
				},
			})
		}
	}
	return out
}

func videoRequests(v *deck.VideoDefinition, target box, pageID string) []*slides.Request {
	source := v.Source
	if len(source) == 0 {
		source = slides.VideoSourceYouTube
	}
	id := newObjectID()
	out := []*slides.Request{{
		CreateVideo: &slides.CreateVideoRequest{
			ObjectID:          id,
			ID:                v.ID,
			Source:            source,
			ElementProperties: placeVideo(v, target).elementProperties(pageID),
		},
	}}
	if len(v.AltText) != 0 {
		out = append(out, &slides.Request{
			UpdatePageElementAltText: &slides.UpdatePageElementAltTextRequest{
				ObjectID:    id,
				Description: v.AltText,
			},
		})
	}
	return out
}

// speakerNotesID locates the notes text shape of a slide's notes page.
func speakerNotesID(page *slides.Page) string {
	if page.SlideProperties == nil || page.SlideProperties.NotesPage == nil {
		return ""
	}
	np := page.SlideProperties.NotesPage.NotesProperties
	if np == nil {
		return ""
	}
	return np.SpeakerNotesObjectID
}

// skip logs dropped content with a short human readable snippet so decks
// rendered against sparse layouts are debuggable.
func (b *slideBuilder) skip(s *deck.SlideDefinition, kind string, text *deck.TextDefinition) {
	b.log.Warn("no placeholder for slide content, skipping",
		zap.Int("slide", s.Index), zap.String("content", kind), zap.String("text", b.snippet(text.Raw)))
}

// snippet clips the text to its first sentence for diagnostics.
func (b *slideBuilder) snippet(raw string) string {
	const limit = 60
	if b.tok != nil {
		if ss := b.tok.Tokenize(raw); len(ss) > 0 {
			raw = strings.TrimSpace(ss[0].Text)
		}
	}
	if r := []rune(raw); len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return raw
}
