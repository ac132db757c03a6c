package tracer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Config configures an Engine (C6, the trace engine).
type Config struct {
	// StartURL is the root of the crawl. Every discovered URL is
	// scoped against it (see Scope/InScope).
	StartURL string
	// Workers bounds the number of in-flight fetches (worker_pool_size).
	Workers int
	// MaxRetries is the number of retries permitted per URL beyond the
	// first attempt.
	MaxRetries uint8
	// InitialRetryDelayMs is the base of the exponential backoff: retry
	// r >= 1 waits InitialRetryDelayMs * 2^r milliseconds.
	InitialRetryDelayMs int64
	// Fetcher performs the HTTP GET (C1).
	Fetcher Fetcher
	// Extractor parses the HTML body into raw hrefs (C2).
	Extractor Extractor
	// Logger receives structured per-dispatch/retry/terminal events.
	// Pass zerolog.Nop() to disable.
	Logger zerolog.Logger
	// Progress, if non-nil, is called after every state transition with
	// a snapshot of engine progress. It is an external collaborator
	// (spec §1) for live progress display, not part of the core.
	Progress ProgressReporter
}

// ProgressReporter receives a snapshot of engine progress after every
// processed outcome and refill.
type ProgressReporter interface {
	Report(done, seen, queued, inFlight int)
}

// workerOutcome is what a dispatched worker goroutine sends back on its
// own completion channel.
type workerOutcome struct {
	url     string
	value   LinkMapValue
	attempt int
	ok      bool // false means the worker panicked; drop silently
}

// Engine is the trace engine (C6): it owns TraceState (C5) exclusively,
// fans work out over a bounded worker pool, and applies the retry
// policy until the process queue and in-flight set are both empty.
type Engine struct {
	cfg Config

	linkMap  *LinkMap
	seen     map[string]struct{}
	queue    *processQueue
	inFlight []chan workerOutcome // FIFO on dispatch order
}

// NewEngine constructs an Engine for cfg. The root URL is not validated;
// URL normalization is explicitly out of scope.
func NewEngine(cfg Config) *Engine {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Engine{
		cfg:      cfg,
		linkMap:  NewLinkMap(cfg.StartURL),
		seen:     make(map[string]struct{}),
		queue:    newProcessQueue(),
		inFlight: nil,
	}
}

// Run seeds the queue with the root URL and drives the trace to
// completion, returning the final LinkMap. It terminates exactly when
// both the process queue and the in-flight set are empty (I6).
func (e *Engine) Run(ctx context.Context) *LinkMap {
	root := e.cfg.StartURL
	e.seen[root] = struct{}{}
	e.queue.push(&ProcessItem{URL: root, Retry: 0, EligibleAt: now()})

	e.refill(ctx)
	e.reportProgress()

	for len(e.inFlight) > 0 {
		ch := e.inFlight[0]
		e.inFlight = e.inFlight[1:]

		outcome := <-ch
		e.handleOutcome(outcome)

		e.refill(ctx)
		e.reportProgress()
	}

	return e.linkMap
}

// refill dispatches new workers while the in-flight set has capacity and
// the process queue is non-empty.
func (e *Engine) refill(ctx context.Context) {
	for len(e.inFlight) < e.cfg.Workers && e.queue.Len() > 0 {
		item := e.queue.pop()
		ch := make(chan workerOutcome, 1)
		e.inFlight = append(e.inFlight, ch)

		e.cfg.Logger.Debug().Str("url", item.URL).Uint8("retry", item.Retry).Msg("dispatching")
		go e.dispatch(ctx, item, ch)
	}
}

// dispatch runs a single worker step and always sends exactly one
// outcome, recovering from panics so a misbehaving Fetcher/Extractor
// cannot hang the engine. A recovered panic is reported as ok=false and
// silently dropped by the caller, per spec §7.
func (e *Engine) dispatch(ctx context.Context, item *ProcessItem, ch chan<- workerOutcome) {
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Logger.Warn().Str("url", item.URL).Interface("panic", r).Msg("worker panic, dropping")
			ch <- workerOutcome{url: item.URL, ok: false}
		}
	}()

	value, attemptCount := attempt(ctx, item, e.cfg.StartURL, e.cfg.Fetcher, e.cfg.Extractor, now())
	ch <- workerOutcome{url: item.URL, value: value, attempt: attemptCount, ok: true}
}

// handleOutcome applies the retry policy and records terminal results,
// the sole mutation point for TraceState (§5).
func (e *Engine) handleOutcome(o workerOutcome) {
	if !o.ok {
		return
	}

	switch o.value.Kind {
	case KindLinks:
		e.linkMap.Map[o.url] = o.value
		e.cfg.Logger.Info().Str("url", o.url).Int("links", len(o.value.Links)).Msg("done")
		for _, link := range o.value.Links {
			if _, seen := e.seen[link]; seen {
				continue
			}
			e.seen[link] = struct{}{}
			e.queue.push(&ProcessItem{URL: link, Retry: 0, EligibleAt: now()})
		}

	case KindError:
		if o.attempt > int(e.cfg.MaxRetries) {
			e.linkMap.Map[o.url] = o.value
			e.cfg.Logger.Warn().Str("url", o.url).Err(o.value.Err).Msg("giving up")
			return
		}
		retry := uint8(o.attempt)
		delayMs := e.cfg.InitialRetryDelayMs * (1 << retry)
		e.cfg.Logger.Info().Str("url", o.url).Uint8("retry", retry).Int64("delay_ms", delayMs).Msg("retrying")
		e.queue.push(&ProcessItem{
			URL:        o.url,
			Retry:      retry,
			EligibleAt: now() + delayMs*int64(time.Millisecond),
		})
	}
}

func (e *Engine) reportProgress() {
	if e.cfg.Progress == nil {
		return
	}
	e.cfg.Progress.Report(len(e.linkMap.Map), len(e.seen), e.queue.Len(), len(e.inFlight))
}

func now() int64 { return time.Now().UnixNano() }
