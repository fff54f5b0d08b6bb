package term

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type Term struct {
	stdout, stderr io.Writer
	out, err       *termenv.Output
	debug          bool
	json           bool

	isTerminal bool

	warnings []string
}

var DefaultTerm = NewTerm(os.Stdin, os.Stdout, os.Stderr)

type Color = termenv.ANSIColor

const (
	BrightCyan = termenv.ANSIBrightCyan
	InfoColor  = termenv.ANSIBrightMagenta
	ErrorColor = termenv.ANSIBrightRed
	WarnColor  = termenv.ANSIYellow      // not bright to improve readability on light backgrounds
	DebugColor = termenv.ANSIBrightBlack // Gray

	boldColorStr  = termenv.CSI + termenv.BoldSeq + "m"
	resetColorStr = termenv.CSI + termenv.ResetSeq + "m"
)

type FileReader interface {
	io.Reader
	Fd() uintptr
}

func NewTerm(stdin FileReader, stdout, stderr io.Writer) *Term {
	t := &Term{
		stdout: stdout,
		stderr: stderr,
		out:    termenv.NewOutput(stdout),
		err:    termenv.NewOutput(stderr),
	}
	if hasTermInEnv() {
		if fout, ok := stdout.(interface{ Fd() uintptr }); ok {
			t.isTerminal = term.IsTerminal(int(fout.Fd())) && term.IsTerminal(int(stdin.Fd()))
		}
	}
	return t
}

// Stdout returns the uncolored writer this Term was created with.
func (t *Term) Stdout() io.Writer {
	return t.stdout
}

func (t *Term) ForceColor(color bool) {
	if color {
		t.out = termenv.NewOutput(t.stdout, termenv.WithProfile(termenv.ANSI))
		t.err = termenv.NewOutput(t.stderr, termenv.WithProfile(termenv.ANSI))
	} else {
		t.out = termenv.NewOutput(t.stdout, termenv.WithProfile(termenv.Ascii))
		t.err = termenv.NewOutput(t.stderr, termenv.WithProfile(termenv.Ascii))
	}
}

func (t *Term) SetDebug(debug bool) {
	t.debug = debug
}

func (t *Term) DoDebug() bool {
	return t.debug
}

func (t *Term) SetJSON(json bool) {
	t.json = json
}

func (t *Term) JSON() bool {
	return t.json
}

func (t *Term) IsTerminal() bool {
	return t.isTerminal
}

func (t *Term) HadWarnings() bool {
	return len(t.warnings) > 0
}

func (t *Term) StdoutCanColor() bool {
	return doColor(t.out)
}

func (t *Term) StderrCanColor() bool {
	return doColor(t.err)
}

// doColor returns true if the provided output's profile is not Ascii.
func doColor(o *termenv.Output) bool {
	return o.Profile != termenv.Ascii
}

func output(w *termenv.Output, c Color, msg string) (int, error) {
	if len(msg) == 0 {
		return 0, nil
	}
	var buf strings.Builder
	if doColor(w) {
		fprintc(&buf, true, c, msg)
		msg = buf.String()
	}
	return w.WriteString(msg)
}

func fprintc(w io.Writer, canColor bool, c Color, v ...any) (l int, e error) {
	if canColor {
		n, err := io.WriteString(w, termenv.CSI+c.Sequence(false)+"m")
		l += n
		if err != nil {
			return l, err
		}
		defer func() {
			n, err := io.WriteString(w, resetColorStr)
			l += n
			e = err
		}()
	}

	n, err := fmt.Fprint(w, v...)
	l += n
	if err != nil {
		return l, err
	}
	return l, nil
}

func ensureNewline(s string) string {
	if len(s) == 0 || (s[len(s)-1] != '\n' && s[len(s)-1] != '\r') {
		return s + "\n"
	}
	return s
}

func ensurePrefix(s string, prefix string) string {
	// Don't add prefix to empty strings or strings that already have it
	if len(s) == 0 || strings.HasPrefix(s, prefix) {
		return s
	}
	return prefix + s
}

func (t *Term) Printc(c Color, v ...any) (int, error) {
	return output(t.out, c, fmt.Sprint(v...))
}

func (t *Term) Print(v ...any) (int, error) {
	return fmt.Fprint(t.out, v...)
}

func (t *Term) Println(v ...any) (int, error) {
	return fmt.Fprint(t.out, ensureNewline(fmt.Sprintln(v...)))
}

func (t *Term) Printf(format string, v ...any) (int, error) {
	return fmt.Fprint(t.out, ensureNewline(fmt.Sprintf(format, v...)))
}

// Debug, Info and Warn go to stderr so they never interleave with data
// written to stdout, which may be a terminal in raw mode.
func (t *Term) Debug(v ...any) (int, error) {
	if !t.debug {
		return 0, nil
	}
	return output(t.err, DebugColor, ensurePrefix(fmt.Sprintln(v...), " - "))
}

func (t *Term) Debugf(format string, v ...any) (int, error) {
	if !t.debug {
		return 0, nil
	}
	return output(t.err, DebugColor, ensureNewline(ensurePrefix(fmt.Sprintf(format, v...), " - ")))
}

func (t *Term) Info(v ...any) (int, error) {
	return output(t.err, InfoColor, ensurePrefix(fmt.Sprintln(v...), " * "))
}

func (t *Term) Warn(v ...any) (int, error) {
	msg := ensurePrefix(fmt.Sprintln(v...), " ! ")
	t.warnings = append(t.warnings, msg)
	return output(t.err, WarnColor, msg)
}

func (t *Term) Warnf(format string, v ...any) (int, error) {
	msg := ensureNewline(ensurePrefix(fmt.Sprintf(format, v...), " ! "))
	t.warnings = append(t.warnings, msg)
	return output(t.err, WarnColor, msg)
}

func (t *Term) Error(v ...any) (int, error) {
	return output(t.err, ErrorColor, fmt.Sprintln(v...))
}

func (t *Term) getAllWarnings() []string {
	warnings := slices.Clone(t.warnings)
	slices.Sort(warnings)
	return slices.Compact(warnings)
}

// FlushWarnings prints every distinct warning once and forgets them.
func (t *Term) FlushWarnings() (int, error) {
	uniqueWarnings := t.getAllWarnings()
	t.ResetWarnings()
	bytesWritten := 0

	for _, w := range uniqueWarnings {
		bytes, err := output(t.err, WarnColor, w)
		bytesWritten += bytes
		if err != nil {
			return bytesWritten, err
		}
	}

	return bytesWritten, nil
}

func (t *Term) ResetWarnings() {
	t.warnings = nil
}

func Print(v ...any) (int, error) {
	return DefaultTerm.Print(v...)
}

func Println(v ...any) (int, error) {
	return DefaultTerm.Println(v...)
}

func Printf(format string, v ...any) (int, error) {
	return DefaultTerm.Printf(format, v...)
}

func Printc(c Color, v ...any) (int, error) {
	return DefaultTerm.Printc(c, v...)
}

func Debug(v ...any) (int, error) {
	return DefaultTerm.Debug(v...)
}

func Debugf(format string, v ...any) (int, error) {
	return DefaultTerm.Debugf(format, v...)
}

func Info(v ...any) (int, error) {
	return DefaultTerm.Info(v...)
}

func Warn(v ...any) (int, error) {
	return DefaultTerm.Warn(v...)
}

func Warnf(format string, v ...any) (int, error) {
	return DefaultTerm.Warnf(format, v...)
}

func Error(v ...any) (int, error) {
	return DefaultTerm.Error(v...)
}

func FlushWarnings() (int, error) {
	return DefaultTerm.FlushWarnings()
}

func ResetWarnings() {
	DefaultTerm.ResetWarnings()
}

func ForceColor(color bool) {
	DefaultTerm.ForceColor(color)
}

func SetDebug(debug bool) {
	DefaultTerm.SetDebug(debug)
}

func DoDebug() bool {
	return DefaultTerm.DoDebug()
}

func SetJSON(json bool) {
	DefaultTerm.SetJSON(json)
}

func IsTerminal() bool {
	return DefaultTerm.IsTerminal()
}

func HadWarnings() bool {
	return DefaultTerm.HadWarnings()
}

func StdoutCanColor() bool {
	return DefaultTerm.StdoutCanColor()
}

func StderrCanColor() bool {
	return DefaultTerm.StderrCanColor()
}
