// Package traversal drives the "Getting to Philosophy" walk: starting
// from a seed article, repeatedly follow the first valid lead-section
// link until the chain reaches the target article, loops back on
// itself, or dead-ends.
package traversal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thcipriani/getting-to-philosophy-battery-test/extractor"
	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
	"github.com/thcipriani/getting-to-philosophy-battery-test/wiki"
)

// Termination classifies how one seed's walk ended.
type Termination string

const (
	ReachedTarget Termination = "reached_target"
	CycleDetected Termination = "cycle_detected"
	DeadEnd       Termination = "dead_end"
)

// Outcome is the result of walking one seed page.
type Outcome struct {
	// Seed is the page the walk started from.
	Seed string

	// Termination says why the walk stopped.
	Termination Termination

	// Path is the ordered list of pages visited, seed first. For a
	// cycle the terminating page appears twice so the closing edge is
	// visible; for a reached target the target is the last element.
	Path []string

	// LastRendered is the content of the last page actually fetched,
	// kept for reporting. The target page itself is never fetched.
	LastRendered *wiki.ArticleContent
}

// Renderer fetches one article page. Implementations are a single
// shared, stateful resource: calls are strictly sequential and a
// failure is fatal to the whole run, never retried here.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (*wiki.ArticleContent, error)
}

// Observer records one telemetry observation per page visit. Observer
// failures must not influence the walk; the engine logs and moves on.
type Observer interface {
	Observe(ctx context.Context, pageURL string) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, pageURL string) error

func (f ObserverFunc) Observe(ctx context.Context, pageURL string) error {
	return f(ctx, pageURL)
}

// Engine walks seed pages sequentially. It holds no state across seed
// pages beyond its collaborators, so repeated passes over the same
// seed list are independent.
type Engine struct {
	site    *wiki.Site
	render  Renderer
	observe Observer // optional
	tracker *Tracker // optional
}

// NewEngine creates an Engine. observe may be nil when no telemetry
// sink is attached (the MCP tools run without one).
func NewEngine(site *wiki.Site, render Renderer, observe Observer) *Engine {
	return &Engine{site: site, render: render, observe: observe}
}

// SetTracker attaches a progress tracker for the status API.
func (e *Engine) SetTracker(t *Tracker) {
	e.tracker = t
}

// Run walks every seed in order and returns one outcome per seed. The
// first render failure aborts the whole pass; outcomes collected so
// far are returned alongside the error.
func (e *Engine) Run(ctx context.Context, seeds []string) ([]*Outcome, error) {
	outcomes := make([]*Outcome, 0, len(seeds))
	for _, seed := range seeds {
		outcome, err := e.Walk(ctx, seed)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

// Walk runs the loop for a single seed page. The visited set is owned
// by this call and discarded with it.
func (e *Engine) Walk(ctx context.Context, seed string) (*Outcome, error) {
	target := e.site.TargetURL()

	v := newVisited()
	v.add(seed)
	current := seed

	if e.tracker != nil {
		e.tracker.StartSeed(seed)
	}

	var last *wiki.ArticleContent
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if e.tracker != nil {
			e.tracker.Visit(current, v.len())
		}
		if e.observe != nil {
			if oErr := e.observe.Observe(ctx, current); oErr != nil {
				slog.Warn("observation failed, continuing walk",
					"page", current, "error", oErr)
			}
		}

		content, err := e.render.Render(ctx, current)
		if err != nil {
			return nil, categorizeRenderError(err, current)
		}
		last = content

		next, ok := extractor.FirstValidLink(e.site, content)
		switch {
		case !ok:
			slog.Info("no link found", "page", current, "seed", seed)
			return e.finish(seed, DeadEnd, v.path(), last), nil

		case v.has(next):
			slog.Info("loop detected", "page", next, "seed", seed)
			return e.finish(seed, CycleDetected, append(v.path(), next), last), nil

		case next == target:
			slog.Info("found philosophy", "seed", seed, "hops", v.len())
			return e.finish(seed, ReachedTarget, append(v.path(), next), last), nil
		}

		v.add(next)
		current = next
	}
}

// finish builds the outcome and notifies the tracker.
func (e *Engine) finish(seed string, t Termination, path []string, last *wiki.ArticleContent) *Outcome {
	if e.tracker != nil {
		e.tracker.SeedDone(t)
	}
	return &Outcome{
		Seed:         seed,
		Termination:  t,
		Path:         path,
		LastRendered: last,
	}
}

// categorizeRenderError wraps render failures into typed WalkErrors so
// the caller can report them. Context errors pass through unchanged so
// errors.Is(err, context.Canceled) keeps working for interrupts.
func categorizeRenderError(err error, page string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var walkErr *models.WalkError
	if errors.As(err, &walkErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewWalkError(models.ErrCodeTimeout, "render timed out for "+page, err)
	}
	return models.NewWalkError(models.ErrCodeNavigation, "render failed for "+page, err)
}

// visited is the per-walk page set, insertion-ordered for reporting.
// Pages are never removed within a run.
type visited struct {
	order []string
	seen  map[string]struct{}
}

func newVisited() *visited {
	return &visited{seen: make(map[string]struct{})}
}

func (v *visited) add(page string) {
	if _, ok := v.seen[page]; ok {
		return
	}
	v.seen[page] = struct{}{}
	v.order = append(v.order, page)
}

func (v *visited) has(page string) bool {
	_, ok := v.seen[page]
	return ok
}

func (v *visited) len() int {
	return len(v.order)
}

// path returns a copy so appending a cycle's closing edge never aliases
// the set's own storage.
func (v *visited) path() []string {
	path := make([]string, len(v.order))
	copy(path, v.order)
	return path
}
