package render

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"slidec/config"
	"slidec/css"
	"slidec/deck"
	"slidec/slides"
	"slidec/state"
	"slidec/upload"
)

//go:embed default.css
var defaultStylesheet []byte

// Run implements the render subcommand: load the deck, publish its local
// assets, then drive the two pass engine against the target document. When
// no document is named a fresh one is created from the title template.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no deck source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	presentationID := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.DryRun = cmd.Bool("dry-run")
	env.ForceLayout = cmd.String("layout")

	d, cleanup, err := deck.Load(src)
	if err != nil {
		return err
	}
	defer func() {
		if er := cleanup(); er != nil {
			log.Warn("Unable to clean up deck assets", zap.Error(er))
		}
	}()

	if er := env.Rpt.StoreCopy("deck/"+filepath.Base(src), src); er != nil {
		log.Warn("Unable to store deck in debug report", zap.Error(er))
	}
	log.Info("Deck loaded", zap.String("source", src), zap.String("title", d.Title), zap.Int("slides", len(d.Slides)))

	// Stylesheet cascade: embedded defaults first so deck rules win.
	var sheet []byte
	if env.Cfg.Render.StylesheetDefaults {
		env.DefaultStyle = defaultStylesheet
		sheet = append(sheet, env.DefaultStyle...)
		sheet = append(sheet, '\n')
	}
	sheet = append(sheet, d.Stylesheet...)
	text := css.NewParser(env.Log).Parse(sheet)

	svc := slides.NewClient(env.Cfg.Remote.Endpoint, string(env.Cfg.Remote.Token), env.Cfg.Remote.Timeout.Value(), env.Log)

	fresh := false
	if len(presentationID) == 0 {
		title, err := expandTitle(env.Cfg.Render.TitleTemplate, d, src)
		if err != nil {
			return fmt.Errorf("unable to expand title template: %w", err)
		}
		p, err := svc.Create(ctx, title)
		if err != nil {
			return err
		}
		presentationID, fresh = p.PresentationID, true
	}

	env.Erase = env.Cfg.Render.Erase
	if cmd.Bool("erase") {
		env.Erase = config.EraseModeAlways
	}
	if cmd.Bool("no-erase") {
		env.Erase = config.EraseModeNever
	}
	env.Erase = env.Erase.Resolve(fresh)

	if env.Cfg.Upload.Enable {
		up, err := upload.New(&env.Cfg.Upload, &env.Cfg.Throttle, env.Rpt, env.Log)
		if err != nil {
			return err
		}
		defer func() {
			if er := up.Close(); er != nil {
				log.Warn("Unable to close upload cache", zap.Error(er))
			}
		}()
		if err := up.Process(ctx, d); err != nil {
			return fmt.Errorf("unable to publish deck assets: %w", err)
		}
	}

	eng, err := NewEngine(svc, env.Rpt, env.Log, Options{
		Erase:            env.Erase,
		ForceLayout:      env.ForceLayout,
		DryRun:           env.DryRun,
		MaxMediaPerBatch: env.Cfg.Throttle.MaxMediaPerBatch,
		BatchDelay:       env.Cfg.Throttle.BatchDelay.Value(),
		Text:             text,
	})
	if err != nil {
		return err
	}

	log.Info("Rendering starting", zap.String("source", src), zap.String("presentation", presentationID))
	defer func(start time.Time) {
		log.Info("Rendering completed", zap.String("presentation", presentationID), zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return eng.Render(ctx, d, presentationID)
}

// titleValues is what the configured title template may reference.
type titleValues struct {
	Title  string
	Source string
	Date   string
	Slides int
}

// expandTitle renders the configured document title template. An empty
// result falls back to the deck source name so a document is never created
// nameless.
func expandTitle(tmpl string, d *deck.Deck, src string) (string, error) {

	t, err := template.New("title").Funcs(sprig.FuncMap()).Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, titleValues{
		Title:  d.Title,
		Source: filepath.Base(src),
		Date:   time.Now().Format("2006-01-02"),
		Slides: len(d.Slides),
	}); err != nil {
		return "", err
	}

	title := strings.TrimSpace(buf.String())
	if len(title) == 0 {
		title = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}
	return title, nil
}
