package hxform

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/a-h/templ"
)

// renderTarget is a field (mirror == nil) or a mirror bound to field.
type renderTarget struct {
	field  string
	mirror Mirror
}

// renderQueue collects re-render work between flushes. Each target renders
// at most once per flush no matter how many operations queued it.
type renderQueue struct {
	pending []renderTarget
	queued  map[renderTarget]struct{}
	waiters []*Settled
}

func newRenderQueue() *renderQueue {
	return &renderQueue{queued: make(map[renderTarget]struct{})}
}

func (q *renderQueue) push(t renderTarget) {
	if _, ok := q.queued[t]; ok {
		return
	}
	q.queued[t] = struct{}{}
	q.pending = append(q.pending, t)
}

func (q *renderQueue) await() *Settled {
	s := newSettled()
	q.waiters = append(q.waiters, s)
	return s
}

func (q *renderQueue) drain() ([]renderTarget, []*Settled) {
	targets, waiters := q.pending, q.waiters
	q.pending, q.waiters = nil, nil
	clear(q.queued)
	return targets, waiters
}

// Pending reports how many re-renders are queued.
func (f *Form) Pending() int {
	return len(f.queue.pending)
}

// queueField schedules name and every mirror of name for re-render.
func (f *Form) queueField(name string) {
	f.queue.push(renderTarget{field: name})
	f.queueMirrors(name)
}

func (f *Form) queueMirrors(name string) {
	for _, m := range f.mirrors.observers(name) {
		f.queue.push(renderTarget{field: name, mirror: m})
	}
}

// settle finishes an operation: it hands out the completion handle and,
// unless rendering is deferred, flushes to the configured output.
func (f *Form) settle() *Settled {
	s := f.queue.await()
	if !f.cfg.deferred {
		_ = f.flush(context.Background(), f.cfg.output)
	}
	return s
}

// Commit renders every queued field and mirror into w and resolves the
// completion handles of the operations that queued them. With deferred
// rendering this is the draw cycle; otherwise there is rarely anything to
// commit.
func (f *Form) Commit(ctx context.Context, w io.Writer) error {
	return f.flush(ctx, w)
}

func (f *Form) flush(ctx context.Context, w io.Writer) error {
	targets, waiters := f.queue.drain()

	var first error
	for _, t := range targets {
		c := f.component(ctx, t)
		if c == nil {
			continue
		}
		if err := c.Render(ctx, w); err != nil && first == nil {
			first = fmt.Errorf("hxform: render %q: %w", t.field, err)
		}
	}
	if first != nil {
		f.log.Error("render failed", "error", first)
	}

	for _, s := range waiters {
		s.resolve(first)
	}
	return first
}

func (f *Form) component(ctx context.Context, t renderTarget) templ.Component {
	state := f.reg.state(t.field)
	if t.mirror != nil {
		if !slices.Contains(f.mirrors.bindings[t.field], t.mirror) {
			return nil
		}
		return t.mirror.Reflect(ctx, state)
	}
	e, ok := f.reg.lookup(t.field)
	if !ok || e.field == nil {
		return nil
	}
	return e.field.Render(ctx, state)
}
