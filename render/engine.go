package render

import (
	"context"
	"fmt"
	"time"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"

	"slidec/config"
	"slidec/css"
	"slidec/deck"
	"slidec/slides"
)

// Options control a render run. Zero values mean "engine defaults" only
// where noted, the command layer normally fills everything from
// configuration.
type Options struct {
	// Erase picks what happens to slides already in the document. Auto is
	// resolved to always or never by the command layer before the engine
	// sees it.
	Erase config.EraseMode

	// ForceLayout overrides layout resolution for every slide.
	ForceLayout string

	// DryRun assembles, logs and stores the create pass without writing
	// anything. The populate pass is skipped entirely: identities inside
	// created slides never materialize without a dispatch and reload.
	DryRun bool

	// MaxMediaPerBatch caps media creates per dispatched chunk. Non
	// positive disables chunking.
	MaxMediaPerBatch int

	// BatchDelay paces successive chunk dispatches.
	BatchDelay time.Duration

	// Text reseeds the engine's default text styles from stylesheet
	// defaults.
	Text *css.Defaults
}

// Engine renders decks into a remote presentation document using the two
// pass create/reload/populate protocol. It owns the measurement and autofit
// machinery; both caches are engine internal and never shared.
type Engine struct {
	svc    slides.Service
	rpt    *config.Report
	log    *zap.Logger
	opts   Options
	fit    *fitter
	sleep  sleeper
	tok    *sentences.DefaultSentenceTokenizer
	styles styleSet

	batchSeq int
}

func NewEngine(svc slides.Service, rpt *config.Report, log *zap.Logger, opts Options) (*Engine, error) {
	meas, err := newMeasurer()
	if err != nil {
		return nil, fmt.Errorf("unable to prepare text measurement: %w", err)
	}
	fit, err := newFitter(meas)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare autofit cache: %w", err)
	}
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare sentence tokenizer: %w", err)
	}
	return &Engine{
		svc:    svc,
		rpt:    rpt,
		log:    log.Named("render"),
		opts:   opts,
		fit:    fit,
		sleep:  clockSleeper{},
		tok:    tok,
		styles: newStyleSet(opts.Text),
	}, nil
}

// Render runs both passes against the presentation. Slides move through
// pending, created and populated implicitly: a definition with an assigned
// object identity has been through the create pass, and the populate pass
// only ever runs after that pass was dispatched and the snapshot reloaded.
func (e *Engine) Render(ctx context.Context, d *deck.Deck, presentationID string) error {
	pres, err := e.svc.Presentation(ctx, presentationID)
	if err != nil {
		return err
	}
	e.log.Info("rendering deck",
		zap.String("presentation", presentationID),
		zap.Int("slides", len(d.Slides)),
		zap.Stringer("erase", e.opts.Erase))

	// Create pass. New slides are pinned to the front in deck order when
	// erasing, so the document never passes through an empty state; the
	// old slides shift back and are deleted in the same stream.
	erase := e.opts.Erase == config.EraseModeAlways
	var creates []*slides.Request
	for i, s := range d.Slides {
		layout, err := resolveLayout(pres, s, e.opts.ForceLayout)
		if err != nil {
			return err
		}
		s.ObjectID = newObjectID()
		create := &slides.CreateSlideRequest{
			ObjectID:             s.ObjectID,
			SlideLayoutReference: &slides.SlideLayoutReference{LayoutID: layout.ObjectID},
		}
		if erase {
			idx := int64(i)
			create.InsertionIndex = &idx
		}
		creates = append(creates, &slides.Request{CreateSlide: create})
		e.log.Debug("slide layout resolved",
			zap.Int("slide", s.Index),
			zap.String("layout", layout.LayoutProperties.Name),
			zap.String("object", s.ObjectID))
	}
	if erase {
		for _, p := range pres.Slides {
			creates = append(creates, &slides.Request{
				DeleteObject: &slides.DeleteObjectRequest{ObjectID: p.ObjectID},
			})
		}
	}
	if err := e.dispatch(ctx, presentationID, creates); err != nil {
		return fmt.Errorf("create pass: %w", err)
	}
	if e.opts.DryRun {
		e.log.Info("dry run, populate pass skipped")
		return nil
	}

	// Placeholder identities inside created slides are assigned server
	// side; a fresh snapshot is the only way to observe them. Everything
	// memoized against the old snapshot is stale now.
	pres, err = e.svc.Presentation(ctx, presentationID)
	if err != nil {
		return fmt.Errorf("snapshot reload: %w", err)
	}
	e.fit.invalidate()

	b := &slideBuilder{
		pres:   pres,
		ix:     buildIndex(pres),
		fit:    e.fit,
		styles: e.styles,
		tok:    e.tok,
		log:    e.log,
	}
	var populate []*slides.Request
	for _, s := range d.Slides {
		reqs, err := b.populate(s)
		if err != nil {
			return fmt.Errorf("populate pass: %w", err)
		}
		populate = append(populate, reqs...)
	}
	if err := e.dispatch(ctx, presentationID, populate); err != nil {
		return fmt.Errorf("populate pass: %w", err)
	}

	e.log.Info("deck rendered",
		zap.String("presentation", presentationID),
		zap.Int("slides", len(d.Slides)),
		zap.Int("requests", len(creates)+len(populate)))
	return nil
}

// styleSet carries the engine's default text style per content kind.
type styleSet struct {
	title, subtitle, body, notes textStyle
}

func newStyleSet(d *css.Defaults) styleSet {
	base := baseTextStyle()
	s := styleSet{title: base, subtitle: base, body: base, notes: base}
	if d != nil {
		s.title = overlayCSS(base, d.Title)
		s.subtitle = overlayCSS(base, d.Subtitle)
		s.body = overlayCSS(base, d.Body)
		s.notes = overlayCSS(base, d.Notes)
	}
	return s
}

func (s *styleSet) forKind(kind string) textStyle {
	switch kind {
	case "title":
		return s.title
	case "subtitle":
		return s.subtitle
	case "notes":
		return s.notes
	}
	return s.body
}

func overlayCSS(base textStyle, st css.Style) textStyle {
	if len(st.FontFamily) != 0 {
		base.FontFamily = st.FontFamily
	}
	if st.FontSizePT > 0 {
		base.FontSizePT = st.FontSizePT
	}
	if st.FontWeight > 0 {
		base.FontWeight = st.FontWeight
	}
	if st.LineHeightPct > 0 {
		base.LineSpacing = st.LineHeightPct
	}
	return base
}
