package raw

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Session is an active raw-mode session. It owns the wrapped writer and
// forwards Write and Flush to it unchanged. Close puts back the modes that
// were found on entry.
//
// A Session must not be copied; always use the pointer returned by Enter.
type Session[W io.Writer] struct {
	_       noCopy
	sink    W
	r       *restorer
	cleanup runtime.Cleanup
}

// restorer holds everything needed to release a session. It is kept apart
// from Session so that the GC cleanup of an abandoned Session can reach it
// without keeping the Session alive.
type restorer struct {
	once    sync.Once
	done    atomic.Bool
	backend Backend
	logger  *slog.Logger

	output, input         Handle
	outputPrev, inputPrev Mode
}

type Option func(*options)

type options struct {
	backend Backend
	profile *Profile
	logger  *slog.Logger
}

// WithBackend overrides the build-selected backend.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithProfile overrides the build-selected flag profile.
func WithProfile(p Profile) Option {
	return func(o *options) { o.profile = &p }
}

// WithLogger sets where release failures are reported. The default is
// slog.Default() at the time Enter is called.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = DefaultBackend()
	}
	if o.profile == nil {
		p := DefaultProfile()
		o.profile = &p
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// Enter puts the terminal into raw mode and returns a Session wrapping w.
//
// The output endpoint is switched first, then the input endpoint. If the
// input side fails, the output endpoint is set back to the mode it had
// before Enter returns, so a failed Enter leaves the terminal as it was.
func Enter[W io.Writer](w W, opts ...Option) (*Session[W], error) {
	o := newOptions(opts)
	b, p := o.backend, o.profile

	out, outputPrev, err := enable(b, Stdout, p.Output)
	if err != nil {
		return nil, err
	}

	in, inputPrev, err := enable(b, Stdin, p.Input)
	if err != nil {
		if rerr := b.SetMode(out, outputPrev); rerr != nil {
			o.logger.Warn("could not roll back terminal mode", "stream", Stdout, "mode", outputPrev, "err", rerr)
		}
		return nil, err
	}

	o.logger.Debug("entered raw mode", "profile", p.Name, "stdout", outputPrev, "stdin", inputPrev)

	s := &Session[W]{
		sink: w,
		r: &restorer{
			backend:    b,
			logger:     o.logger,
			output:     out,
			input:      in,
			outputPrev: outputPrev,
			inputPrev:  inputPrev,
		},
	}
	s.cleanup = runtime.AddCleanup(s, (*restorer).abandoned, s.r)
	return s, nil
}

// EnterWith is Enter against an explicit backend and profile.
func EnterWith[W io.Writer](b Backend, p Profile, w W, opts ...Option) (*Session[W], error) {
	return Enter(w, append(opts, WithBackend(b), WithProfile(p))...)
}

// With runs fn inside a raw-mode session around w. The session is released
// when fn returns, returns an error, or panics; a panic continues after the
// terminal has been restored.
func With[W io.Writer](w W, fn func(*Session[W]) error, opts ...Option) error {
	s, err := Enter(w, opts...)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// enable reads the mode of one endpoint and applies next(mode) to it. It
// returns the handle and the mode found, which is only captured once the new
// mode has been accepted.
func enable(b Backend, s Stream, next func(Mode) Mode) (Handle, Mode, error) {
	h, err := b.Resolve(s)
	if err != nil {
		return Handle{}, 0, &HandleError{Stream: s, Err: err}
	}
	prev, err := b.GetMode(h)
	if err != nil {
		return Handle{}, 0, &ModeQueryError{Stream: s, Err: err}
	}
	mode := next(prev)
	if err := b.SetMode(h, mode); err != nil {
		return Handle{}, 0, &ModeSetError{Stream: s, Mode: mode, Err: err}
	}
	return h, prev, nil
}

func (s *Session[W]) Write(p []byte) (int, error) {
	if s.r.done.Load() {
		return 0, ErrClosed
	}
	return s.sink.Write(p)
}

func (s *Session[W]) WriteString(str string) (int, error) {
	if s.r.done.Load() {
		return 0, ErrClosed
	}
	return io.WriteString(s.sink, str)
}

// Flush flushes the wrapped writer if it has a Flush method.
func (s *Session[W]) Flush() error {
	if s.r.done.Load() {
		return ErrClosed
	}
	if f, ok := any(s.sink).(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Sink returns the wrapped writer while the session is active.
func (s *Session[W]) Sink() (W, error) {
	if s.r.done.Load() {
		var zero W
		return zero, ErrClosed
	}
	return s.sink, nil
}

// Restored reports whether the session has been released.
func (s *Session[W]) Restored() bool {
	return s.r.done.Load()
}

// Close puts back the modes found on entry. Only the first call does
// anything. Restore failures are logged, never returned: Close always
// returns nil.
func (s *Session[W]) Close() error {
	s.cleanup.Stop()
	s.r.restore()
	return nil
}

func (r *restorer) restore() {
	r.once.Do(func() {
		r.done.Store(true)
		// Each endpoint is attempted even if the other one fails.
		r.set(r.output, r.outputPrev)
		r.set(r.input, r.inputPrev)
	})
}

func (r *restorer) abandoned() {
	if r.done.Load() {
		return
	}
	r.logger.Warn("raw-mode session was not closed; restoring terminal mode")
	r.restore()
}

func (r *restorer) set(h Handle, m Mode) {
	err := func() (err error) {
		defer func() {
			if v := recover(); v != nil {
				err = fmt.Errorf("panic: %v", v)
			}
		}()
		return r.backend.SetMode(h, m)
	}()
	if err != nil {
		r.logger.Warn("could not restore terminal mode", "stream", h.Stream(), "mode", m, "err", err)
	}
}

// noCopy may be embedded into structs which must not be copied after first
// use; see https://golang.org/issues/8005#issuecomment-190753527
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
