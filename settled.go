package hxform

import (
	"context"
	"sync"
)

// Settled is the completion signal of a form operation. It resolves once
// every field and mirror the operation affected has re-rendered.
//
// Form state is updated before an operation returns; only the visible
// re-render may be deferred. Callers that need to order work after the
// redraw wait on the handle:
//
//	done, _ := form.SetValue("password", "xyz999", false)
//	if err := done.Wait(ctx); err != nil {
//	    return err
//	}
type Settled struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newSettled() *Settled {
	return &Settled{done: make(chan struct{})}
}

// resolved returns an already completed handle.
func resolved(err error) *Settled {
	s := newSettled()
	s.resolve(err)
	return s
}

func (s *Settled) resolve(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Done is closed when the operation's re-render has been committed.
func (s *Settled) Done() <-chan struct{} {
	return s.done
}

// Err returns the first render error. It is only meaningful after Done is
// closed.
func (s *Settled) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Wait blocks until the handle resolves or ctx ends.
func (s *Settled) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
