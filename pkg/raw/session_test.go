package raw

import (
	"bufio"
	"bytes"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errNoHandle = errors.New("the handle is invalid")
	errDenied   = errors.New("access is denied")
)

func discard() Option {
	return WithLogger(slog.New(slog.DiscardHandler))
}

func enterConsole(t *testing.T, b Backend, w *bytes.Buffer, opts ...Option) *Session[*bytes.Buffer] {
	t.Helper()
	s, err := EnterWith(b, ConsoleProfile, w, append([]Option{discard()}, opts...)...)
	require.NoError(t, err)
	return s
}

func TestEnter_ScenarioA(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0b0000)
	b.SetStreamMode(Stdin, 0b1110)

	s := enterConsole(t, b, &bytes.Buffer{})

	out := b.StreamMode(Stdout)
	assert.True(t, out.Has(EnableVirtualTerminalProcessing|DisableNewlineAutoReturn|EnableProcessedOutput), "stdout mode %v", out)

	in := b.StreamMode(Stdin)
	assert.Zero(t, in&(EnableEchoInput|EnableLineInput|EnableProcessedInput), "stdin mode %v", in)
	assert.True(t, in.Has(EnableVirtualTerminalInput|EnableWindowInput), "stdin mode %v", in)
	assert.Equal(t, Mode(0x208), in)

	require.NoError(t, s.Close())
	assert.Equal(t, Mode(0b0000), b.StreamMode(Stdout))
	assert.Equal(t, Mode(0b1110), b.StreamMode(Stdin))
}

func TestEnter_ScenarioB(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x3)
	b.FailResolve(Stdin, errNoHandle)

	s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, discard())
	assert.Nil(t, s)

	var herr *HandleError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, Stdin, herr.Stream)
	assert.ErrorIs(t, err, errNoHandle)

	assert.Equal(t, Mode(0x3), b.StreamMode(Stdout))
	assert.Equal(t, []string{
		"resolve stdout",
		"get stdout",
		"set stdout 0xf",
		"resolve stdin",
		"set stdout 0x3",
	}, b.Calls())
}

func TestEnter_InputApplyFailureRollsBackOutput(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x3)
	b.SetStreamMode(Stdin, 0x1f7)
	b.FailSetMode(Stdin, 0, errDenied)

	s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, discard())
	assert.Nil(t, s)

	var serr *ModeSetError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, Stdin, serr.Stream)
	assert.Equal(t, ConsoleProfile.Input(0x1f7), serr.Mode)
	assert.ErrorIs(t, err, errDenied)

	assert.Equal(t, Mode(0x3), b.StreamMode(Stdout))
	assert.Equal(t, Mode(0x1f7), b.StreamMode(Stdin))
}

func TestEnter_RollbackFailureReturnsOriginalError(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	errRollback := errors.New("console detached")

	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x3)
	b.FailSetMode(Stdout, 1, errRollback) // entry succeeds, rollback fails
	b.FailSetMode(Stdin, 0, errDenied)

	s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, WithLogger(logger))
	assert.Nil(t, s)

	var serr *ModeSetError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, Stdin, serr.Stream)
	assert.ErrorIs(t, err, errDenied)
	assert.NotErrorIs(t, err, errRollback)

	assert.Contains(t, logs.String(), "could not roll back terminal mode")
	assert.Contains(t, logs.String(), "stream=stdout")
	assert.Contains(t, logs.String(), "console detached")
}

func TestEnter_InputQueryFailureRollsBackOutput(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x7)
	b.FailGetMode(Stdin, errDenied)

	_, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, discard())

	var qerr *ModeQueryError
	require.ErrorAs(t, err, &qerr)
	assert.Equal(t, Stdin, qerr.Stream)
	assert.Equal(t, Mode(0x7), b.StreamMode(Stdout))
}

func TestEnter_OutputFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(b *MemoryBackend)
		wantErr any
		calls   []string
	}{
		{
			name:    "resolve",
			setup:   func(b *MemoryBackend) { b.FailResolve(Stdout, errNoHandle) },
			wantErr: &HandleError{},
			calls:   []string{"resolve stdout"},
		},
		{
			name:    "get",
			setup:   func(b *MemoryBackend) { b.FailGetMode(Stdout, errDenied) },
			wantErr: &ModeQueryError{},
			calls:   []string{"resolve stdout", "get stdout"},
		},
		{
			name:    "set",
			setup:   func(b *MemoryBackend) { b.FailSetMode(Stdout, 0, errDenied) },
			wantErr: &ModeSetError{},
			calls:   []string{"resolve stdout", "get stdout", "set stdout 0xd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewMemoryBackend()
			b.SetStreamMode(Stdin, 0x7)
			tt.setup(b)

			s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, discard())
			assert.Nil(t, s)
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)

			// Nothing was written, so nothing needed restoring.
			assert.Equal(t, Mode(0), b.StreamMode(Stdout))
			assert.Equal(t, Mode(0x7), b.StreamMode(Stdin))
			assert.Equal(t, tt.calls, b.Calls())
		})
	}
}

func TestSession_RoundTrip(t *testing.T) {
	pairs := []struct{ out, in Mode }{
		{0, 0},
		{0x3, 0x1f7},
		{0xd, 0x208},
		{0xffffffff, 0xffffffff},
		{0x10, 0x2a0},
		{0xabc0000000000001, 0x1234_0000_0000_0005},
	}
	for _, profile := range []Profile{ConsoleProfile, DefaultProfile()} {
		for _, p := range pairs {
			b := NewMemoryBackend()
			b.SetStreamMode(Stdout, p.out)
			b.SetStreamMode(Stdin, p.in)

			s, err := EnterWith(b, profile, &bytes.Buffer{}, discard())
			require.NoError(t, err)
			require.NoError(t, s.Close())

			assert.Equal(t, p.out, b.StreamMode(Stdout), "%s stdout %v", profile.Name, p.out)
			assert.Equal(t, p.in, b.StreamMode(Stdin), "%s stdin %v", profile.Name, p.in)
		}
	}
}

func TestSession_Forwarding(t *testing.T) {
	var buf bytes.Buffer
	s := enterConsole(t, NewMemoryBackend(), &buf)
	defer s.Close()

	n, err := s.Write([]byte("\x1b[2Jhello\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	_, err = s.WriteString("world\r\n")
	require.NoError(t, err)

	assert.NoError(t, s.Flush())
	assert.Equal(t, "\x1b[2Jhello\nworld\r\n", buf.String())

	sink, err := s.Sink()
	require.NoError(t, err)
	assert.Same(t, &buf, sink)
}

func TestSession_FlushForwards(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	s, err := EnterWith(NewMemoryBackend(), ConsoleProfile, w, discard())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Write([]byte("buffered"))
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	require.NoError(t, s.Flush())
	assert.Equal(t, "buffered", buf.String())
}

func TestSession_UseAfterClose(t *testing.T) {
	var buf bytes.Buffer
	s := enterConsole(t, NewMemoryBackend(), &buf)
	require.NoError(t, s.Close())
	assert.True(t, s.Restored())

	_, err := s.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.WriteString("late")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Flush(), ErrClosed)
	sink, err := s.Sink()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, sink)

	assert.Empty(t, buf.String())
}

func TestSession_CloseOnce(t *testing.T) {
	b := NewMemoryBackend()
	s := enterConsole(t, b, &bytes.Buffer{})

	require.NoError(t, s.Close())
	calls := len(b.Calls())

	// A later change by someone else must not be overwritten by a second Close.
	b.SetStreamMode(Stdout, 0x1)
	require.NoError(t, s.Close())
	assert.Len(t, b.Calls(), calls)
	assert.Equal(t, Mode(0x1), b.StreamMode(Stdout))
}

func TestSession_RestoreFailureDoesNotSuppressOther(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x3)
	b.SetStreamMode(Stdin, 0x1f7)
	b.FailSetMode(Stdout, 1, errDenied) // entry succeeds, restore fails

	s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, WithLogger(logger))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.NoError(t, s.Close())
	})

	assert.Equal(t, ConsoleProfile.Output(0x3), b.StreamMode(Stdout), "stdout stays raw")
	assert.Equal(t, Mode(0x1f7), b.StreamMode(Stdin), "stdin restored anyway")
	assert.Contains(t, logs.String(), "could not restore terminal mode")
	assert.Contains(t, logs.String(), "stream=stdout")
	assert.Contains(t, logs.String(), "access is denied")
}

type panickingBackend struct {
	*MemoryBackend
	restoring bool
}

func (p *panickingBackend) SetMode(h Handle, m Mode) error {
	if p.restoring && h.Stream() == Stdout {
		panic("driver bug")
	}
	return p.MemoryBackend.SetMode(h, m)
}

func TestSession_RestoreNeverPanics(t *testing.T) {
	b := &panickingBackend{MemoryBackend: NewMemoryBackend()}
	b.SetStreamMode(Stdin, 0x7)

	s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, discard())
	require.NoError(t, err)

	b.restoring = true
	assert.NotPanics(t, func() { s.Close() })
	assert.Equal(t, Mode(0x7), b.StreamMode(Stdin))
}

func TestWith(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdin, 0x7)
	var buf bytes.Buffer

	err := With(&buf, func(s *Session[*bytes.Buffer]) error {
		assert.Equal(t, ConsoleProfile.Input(0x7), b.StreamMode(Stdin))
		_, err := s.WriteString("inside")
		return err
	}, WithBackend(b), WithProfile(ConsoleProfile), discard())

	require.NoError(t, err)
	assert.Equal(t, "inside", buf.String())
	assert.Equal(t, Mode(0x7), b.StreamMode(Stdin))
}

func TestWith_ErrorRestores(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdin, 0x7)

	err := With(&bytes.Buffer{}, func(*Session[*bytes.Buffer]) error {
		return errDenied
	}, WithBackend(b), WithProfile(ConsoleProfile), discard())

	assert.ErrorIs(t, err, errDenied)
	assert.Equal(t, Mode(0x7), b.StreamMode(Stdin))
}

func TestWith_PanicRestores(t *testing.T) {
	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x3)
	b.SetStreamMode(Stdin, 0x7)

	assert.PanicsWithValue(t, "boom", func() {
		With(&bytes.Buffer{}, func(*Session[*bytes.Buffer]) error {
			panic("boom")
		}, WithBackend(b), WithProfile(ConsoleProfile), discard())
	})

	assert.Equal(t, Mode(0x3), b.StreamMode(Stdout))
	assert.Equal(t, Mode(0x7), b.StreamMode(Stdin))
}

func TestWith_EnterFailure(t *testing.T) {
	b := NewMemoryBackend()
	b.FailResolve(Stdout, errNoHandle)

	called := false
	err := With(&bytes.Buffer{}, func(*Session[*bytes.Buffer]) error {
		called = true
		return nil
	}, WithBackend(b), discard())

	assert.False(t, called)
	var herr *HandleError
	assert.ErrorAs(t, err, &herr)
}

func enterAndForget(t *testing.T, b Backend, opts ...Option) {
	t.Helper()
	_, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, append([]Option{discard()}, opts...)...)
	require.NoError(t, err)
}

// lockedBuffer is written from the cleanup goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (l *lockedBuffer) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.Write(p)
}

func (l *lockedBuffer) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf.String()
}

func TestSession_AbandonedIsRestored(t *testing.T) {
	var logs lockedBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	b := NewMemoryBackend()
	b.SetStreamMode(Stdout, 0x3)
	b.SetStreamMode(Stdin, 0x7)

	enterAndForget(t, b, WithLogger(logger))
	require.NotEqual(t, Mode(0x7), b.StreamMode(Stdin))

	assert.Eventually(t, func() bool {
		runtime.GC()
		return b.StreamMode(Stdout) == 0x3 && b.StreamMode(Stdin) == 0x7
	}, 5*time.Second, 10*time.Millisecond)
	assert.Contains(t, logs.String(), "raw-mode session was not closed")
}

func TestSession_ClosedIsNotReportedAbandoned(t *testing.T) {
	var logs lockedBuffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	b := NewMemoryBackend()
	s, err := EnterWith(b, ConsoleProfile, &bytes.Buffer{}, WithLogger(logger))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	runtime.GC()
	runtime.GC()
	assert.NotContains(t, logs.String(), "was not closed")
}

func TestEnter_DefaultLogger(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	s, err := EnterWith(NewMemoryBackend(), ConsoleProfile, &bytes.Buffer{})
	require.NoError(t, err)
	s.Close()

	assert.Contains(t, logs.String(), "entered raw mode")
	assert.Contains(t, logs.String(), "profile=console")
}
