package raw

import (
	"fmt"
	"sync"
)

// MemoryBackend is a Backend that keeps modes and geometry in memory. Faults
// can be injected per operation and every call is recorded.
type MemoryBackend struct {
	mu       sync.Mutex
	modes    map[Stream]Mode
	size     Size
	resolve  map[Stream]*fault
	get      map[Stream]*fault
	set      map[Stream]*fault
	geometry *fault
	calls    []string
}

type fault struct {
	after int // successful calls left before err is returned
	err   error
}

func (f *fault) check() error {
	if f == nil {
		return nil
	}
	if f.after > 0 {
		f.after--
		return nil
	}
	return f.err
}

// NewMemoryBackend returns a backend with both streams in mode 0 and an
// 80x24 terminal.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		modes:   map[Stream]Mode{Stdin: 0, Stdout: 0},
		size:    Size{Cols: 80, Rows: 24},
		resolve: map[Stream]*fault{},
		get:     map[Stream]*fault{},
		set:     map[Stream]*fault{},
	}
}

// SetStreamMode sets the mode of s as if another program had changed it.
func (m *MemoryBackend) SetStreamMode(s Stream, mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[s] = mode
}

// StreamMode returns the current mode of s.
func (m *MemoryBackend) StreamMode(s Stream) Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modes[s]
}

// SetSize changes the reported geometry.
func (m *MemoryBackend) SetSize(cols, rows uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.size = Size{Cols: cols, Rows: rows}
}

// FailResolve makes Resolve(s) fail with err.
func (m *MemoryBackend) FailResolve(s Stream, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolve[s] = &fault{err: err}
}

// FailGetMode makes GetMode fail with err for s.
func (m *MemoryBackend) FailGetMode(s Stream, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get[s] = &fault{err: err}
}

// FailSetMode makes SetMode fail with err for s after n more successful calls.
func (m *MemoryBackend) FailSetMode(s Stream, n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set[s] = &fault{after: n, err: err}
}

// FailGeometry makes Geometry fail with err.
func (m *MemoryBackend) FailGeometry(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.geometry = &fault{err: err}
}

// Calls returns the operations performed so far, such as "set stdout 0xd".
func (m *MemoryBackend) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MemoryBackend) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *MemoryBackend) Resolve(s Stream) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("resolve %v", s)
	if err := m.resolve[s].check(); err != nil {
		return Handle{}, err
	}
	if _, ok := m.modes[s]; !ok {
		return Handle{}, fmt.Errorf("no such stream %v", s)
	}
	return NewHandle(s, 100+uintptr(s)), nil
}

func (m *MemoryBackend) GetMode(h Handle) (Mode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("get %v", h.Stream())
	if err := m.get[h.Stream()].check(); err != nil {
		return 0, err
	}
	return m.modes[h.Stream()], nil
}

func (m *MemoryBackend) SetMode(h Handle, mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("set %v %v", h.Stream(), mode)
	if err := m.set[h.Stream()].check(); err != nil {
		return err
	}
	m.modes[h.Stream()] = mode
	return nil
}

func (m *MemoryBackend) Geometry(h Handle) (Size, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("geometry %v", h.Stream())
	if err := m.geometry.check(); err != nil {
		return Size{}, err
	}
	return m.size, nil
}
