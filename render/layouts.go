package render

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"slidec/slides"
	"slidec/state"
	"slidec/utils/debug"
)

// Layouts implements the layouts subcommand: print the placeholder
// structure of every layout in a presentation. Custom layout names in a
// deck have to match what this shows.
func Layouts(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	id := cmd.Args().Get(0)
	if len(id) == 0 {
		return errors.New("no presentation has been specified")
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	svc := slides.NewClient(env.Cfg.Remote.Endpoint, string(env.Cfg.Remote.Token), env.Cfg.Remote.Timeout.Value(), env.Log)
	pres, err := svc.Presentation(ctx, id)
	if err != nil {
		return err
	}

	fmt.Print(layoutTree(pres))
	log.Debug("Listed layouts", zap.String("presentation", id), zap.Int("layouts", len(pres.Layouts)))
	return nil
}

// layoutTree renders the layout inventory of a snapshot as an indented
// tree, layouts in natural name order, placeholders in document order.
func layoutTree(pres *slides.Presentation) string {

	tw := debug.NewTreeWriter()
	tw.Line(0, "%s: %d layouts, %d masters", pres.PresentationID, len(pres.Layouts), len(pres.Masters))

	ordered := slices.Clone(pres.Layouts)
	slices.SortStableFunc(ordered, func(a, b *slides.Page) int {
		an, bn := layoutSortName(a), layoutSortName(b)
		if natural.Less(an, bn) {
			return -1
		}
		if natural.Less(bn, an) {
			return 1
		}
		return 0
	})

	for _, l := range ordered {
		var name, display string
		if l.LayoutProperties != nil {
			name, display = l.LayoutProperties.Name, l.LayoutProperties.DisplayName
		}
		if len(name) == 0 {
			name = l.ObjectID
		}
		tw.Line(1, "%s [%s]", name, l.ObjectID)
		if len(display) != 0 && display != name {
			tw.TextBlock(2, "display name", display)
		}
		for _, el := range l.PageElements {
			ph := el.Placeholder()
			if ph == nil {
				continue
			}
			w, h := elementBoxPT(el)
			tw.Line(2, "%s #%d %.0fx%.0fpt [%s]", ph.Type, ph.Index, w, h, el.ObjectID)
		}
	}
	return tw.String()
}

func layoutSortName(p *slides.Page) string {
	if p.LayoutProperties != nil && len(p.LayoutProperties.Name) != 0 {
		return p.LayoutProperties.Name
	}
	return p.ObjectID
}
