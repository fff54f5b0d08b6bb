//go:build windows

package raw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/windows"
)

func TestConsoleConstants(t *testing.T) {
	tests := []struct {
		name string
		ours Mode
		sys  uint32
	}{
		{"ENABLE_PROCESSED_OUTPUT", EnableProcessedOutput, windows.ENABLE_PROCESSED_OUTPUT},
		{"ENABLE_WRAP_AT_EOL_OUTPUT", EnableWrapAtEOLOutput, windows.ENABLE_WRAP_AT_EOL_OUTPUT},
		{"ENABLE_VIRTUAL_TERMINAL_PROCESSING", EnableVirtualTerminalProcessing, windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING},
		{"DISABLE_NEWLINE_AUTO_RETURN", DisableNewlineAutoReturn, windows.DISABLE_NEWLINE_AUTO_RETURN},
		{"ENABLE_LVB_GRID_WORLDWIDE", EnableLVBGridWorldwide, windows.ENABLE_LVB_GRID_WORLDWIDE},
		{"ENABLE_PROCESSED_INPUT", EnableProcessedInput, windows.ENABLE_PROCESSED_INPUT},
		{"ENABLE_LINE_INPUT", EnableLineInput, windows.ENABLE_LINE_INPUT},
		{"ENABLE_ECHO_INPUT", EnableEchoInput, windows.ENABLE_ECHO_INPUT},
		{"ENABLE_WINDOW_INPUT", EnableWindowInput, windows.ENABLE_WINDOW_INPUT},
		{"ENABLE_MOUSE_INPUT", EnableMouseInput, windows.ENABLE_MOUSE_INPUT},
		{"ENABLE_INSERT_MODE", EnableInsertMode, windows.ENABLE_INSERT_MODE},
		{"ENABLE_QUICK_EDIT_MODE", EnableQuickEditMode, windows.ENABLE_QUICK_EDIT_MODE},
		{"ENABLE_EXTENDED_FLAGS", EnableExtendedFlags, windows.ENABLE_EXTENDED_FLAGS},
		{"ENABLE_AUTO_POSITION", EnableAutoPosition, windows.ENABLE_AUTO_POSITION},
		{"ENABLE_VIRTUAL_TERMINAL_INPUT", EnableVirtualTerminalInput, windows.ENABLE_VIRTUAL_TERMINAL_INPUT},
	}
	for _, tt := range tests {
		assert.Equal(t, Mode(tt.sys), tt.ours, tt.name)
	}
}
