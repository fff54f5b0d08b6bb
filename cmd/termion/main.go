package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/mchesser/termion/cmd/termion/command"
	"github.com/mchesser/termion/pkg/logs"
	"github.com/mchesser/termion/pkg/term"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			term.Error("Panic:", r)
			term.Debug(string(skipLines(debug.Stack(), 6)))
			panic(r)
		}
	}()

	// Handle Ctrl+C so we can exit gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	slog.SetDefault(logs.NewTermLogger(term.DefaultTerm))
	command.SetupCommands(GetVersion())
	err := command.Execute(ctx)
	stop()

	if err != nil {
		// If the error is a command.ExitCode, use its value as the exit code
		ec, ok := err.(command.ExitCode)
		if !ok {
			ec = 1 // should not happen since we always return ExitCode
		}
		os.Exit(int(ec))
	}
}

// skipLines returns buf with the first n lines removed.
func skipLines(buf []byte, n int) []byte {
	lines := bytes.SplitN(buf, []byte{'\n'}, n)
	return lines[len(lines)-1]
}
