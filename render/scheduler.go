package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"slidec/slides"
)

// chunkRequests splits an ordered request stream into batches. A boundary
// is placed only immediately before a media create that would exceed the
// per chunk media cap, so relative order is untouched and concatenating the
// chunks yields the input back. Requests that depend on a media create
// directly follow it in the stream and therefore always land in the same
// chunk as their target. A non positive limit disables splitting.
func chunkRequests(reqs []*slides.Request, limit int) [][]*slides.Request {
	if len(reqs) == 0 {
		return nil
	}
	if limit <= 0 {
		return [][]*slides.Request{reqs}
	}

	var chunks [][]*slides.Request
	start, media := 0, 0
	for i, r := range reqs {
		if !r.IsMediaCreate() {
			continue
		}
		if media == limit {
			chunks = append(chunks, reqs[start:i])
			start, media = i, 0
		}
		media++
	}
	return append(chunks, reqs[start:])
}

// sleeper paces dispatch. Tests substitute a recording fake for the real
// clock.
type sleeper interface {
	sleep(ctx context.Context, d time.Duration) error
}

type clockSleeper struct{}

func (clockSleeper) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// dispatch applies the request stream to the presentation in order: chunked
// by the media cap, paced by the batch delay, each chunk stored in the debug
// report before it goes out. In dry run mode chunks are logged and stored
// but nothing is sent.
func (e *Engine) dispatch(ctx context.Context, presentationID string, reqs []*slides.Request) error {
	chunks := chunkRequests(reqs, e.opts.MaxMediaPerBatch)
	sent := 0
	for i, chunk := range chunks {
		if i > 0 {
			if err := e.sleep.sleep(ctx, e.opts.BatchDelay); err != nil {
				return fmt.Errorf("pacing interrupted: %w", err)
			}
		}

		e.batchSeq++
		if data, err := json.MarshalIndent(map[string][]*slides.Request{"requests": chunk}, "", "  "); err == nil {
			e.rpt.StoreData(fmt.Sprintf("batches/%04d.json", e.batchSeq), data)
		}
		e.log.Debug("applying batch",
			zap.Int("chunk", i+1), zap.Int("of", len(chunks)),
			zap.Int("requests", len(chunk)), zap.String("first", chunk[0].Kind()))

		if e.opts.DryRun {
			continue
		}
		if _, err := e.svc.BatchUpdate(ctx, presentationID, chunk); err != nil {
			var be *slides.BatchError
			if errors.As(err, &be) {
				return fmt.Errorf("request %d of the stream rejected: %w", sent+be.Index, err)
			}
			return err
		}
		sent += len(chunk)
	}
	return nil
}
