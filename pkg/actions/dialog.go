package actions

import (
	"context"
	"sync"

	"github.com/mokka-studios/datatable/pkg/types"
)

// Dialog is an open row dialog. Closing a dialog never cancels a request it
// has in flight.
type Dialog interface {
	Action() Action
	IsOpen() bool
	// Busy reports whether a request is in flight; the submit control is
	// disabled while it is.
	Busy() bool
	// Message is the inline error of the last failed request.
	Message() string
	Close()
}

// state is the open/busy/message lifecycle shared by every dialog.
type state struct {
	mu      sync.Mutex
	action  Action
	open    bool
	busy    bool
	message string
}

func newState(a Action) state { return state{action: a, open: true} }

func (s *state) Action() Action { return s.action }

func (s *state) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *state) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *state) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *state) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

func (s *state) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.open:
		return types.ErrDialogClosed
	case s.busy:
		return types.ErrDialogBusy
	}
	s.busy = true
	s.message = ""
	return nil
}

// end records the outcome of a request and reports whether the dialog was
// still open when it arrived. Success closes the dialog.
func (s *state) end(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	wasOpen := s.open
	if err == nil {
		s.open = false
	} else if wasOpen {
		s.message = types.MessageOf(err)
	}
	return wasOpen
}

// call runs an adapter operation, turning a panic into a failed result so a
// broken adapter cannot take the table down.
func call[T any](ctx context.Context, fn func(context.Context) types.Result[T]) (res types.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			res = types.Failed[T]("")
		}
	}()
	return fn(ctx)
}

// run drives one request of a dialog: begin, call the adapter, record the
// outcome, apply a success to the view and report a failure once.
func run[T any, K comparable](
	ctx context.Context,
	b *Binding[T, K],
	s *state,
	row T,
	op string,
	fn func(context.Context) types.Result[T],
	apply func(T),
) error {
	if err := s.begin(); err != nil {
		return err
	}
	log := b.rowLogger(s.action, row)
	res := call(ctx, fn)
	err := res.Err(op)
	wasOpen := s.end(err)

	if err == nil {
		apply(succeeded(res, row))
		if !wasOpen {
			log.Debug("applied result of closed dialog")
			return nil
		}
		if res.Message != "" {
			b.notify(LevelSuccess, s.action, res.Message)
		}
		log.Debug("row action succeeded")
		return nil
	}

	if !wasOpen {
		log.WithError(err).Info("discarded failure of closed dialog")
		return err
	}
	log.WithError(err).Warn("row action failed")
	b.notify(LevelError, s.action, types.MessageOf(err))
	return err
}
