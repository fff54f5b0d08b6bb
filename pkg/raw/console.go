package raw

// Windows console mode bits. They are defined here rather than taken from
// golang.org/x/sys/windows so that ConsoleProfile can be used on any
// platform, for example against a MemoryBackend.
const (
	EnableProcessedOutput           Mode = 0x0001
	EnableWrapAtEOLOutput           Mode = 0x0002
	EnableVirtualTerminalProcessing Mode = 0x0004
	DisableNewlineAutoReturn        Mode = 0x0008
	EnableLVBGridWorldwide          Mode = 0x0010

	EnableProcessedInput       Mode = 0x0001
	EnableLineInput            Mode = 0x0002
	EnableEchoInput            Mode = 0x0004
	EnableWindowInput          Mode = 0x0008
	EnableMouseInput           Mode = 0x0010
	EnableInsertMode           Mode = 0x0020
	EnableQuickEditMode        Mode = 0x0040
	EnableExtendedFlags        Mode = 0x0080
	EnableAutoPosition         Mode = 0x0100
	EnableVirtualTerminalInput Mode = 0x0200
)

// ConsoleProfile is the raw-mode transition of the Windows console.
//
// Output keeps processed output so escape sequences still render, and turns
// on virtual terminal processing while turning off the automatic carriage
// return on line feed. Input stops line editing, echo and Ctrl-C processing,
// and reports virtual terminal sequences and window events instead.
var ConsoleProfile = Profile{
	Name: "console",

	OutputSet: EnableVirtualTerminalProcessing | DisableNewlineAutoReturn | EnableProcessedOutput,

	InputClear: EnableEchoInput | EnableLineInput | EnableProcessedInput,
	InputSet:   EnableVirtualTerminalInput | EnableWindowInput,

	OutputFlags: []Flag{
		{"PROCESSED_OUTPUT", EnableProcessedOutput},
		{"WRAP_AT_EOL_OUTPUT", EnableWrapAtEOLOutput},
		{"VIRTUAL_TERMINAL_PROCESSING", EnableVirtualTerminalProcessing},
		{"DISABLE_NEWLINE_AUTO_RETURN", DisableNewlineAutoReturn},
		{"LVB_GRID_WORLDWIDE", EnableLVBGridWorldwide},
	},
	InputFlags: []Flag{
		{"PROCESSED_INPUT", EnableProcessedInput},
		{"LINE_INPUT", EnableLineInput},
		{"ECHO_INPUT", EnableEchoInput},
		{"WINDOW_INPUT", EnableWindowInput},
		{"MOUSE_INPUT", EnableMouseInput},
		{"INSERT_MODE", EnableInsertMode},
		{"QUICK_EDIT_MODE", EnableQuickEditMode},
		{"EXTENDED_FLAGS", EnableExtendedFlags},
		{"AUTO_POSITION", EnableAutoPosition},
		{"VIRTUAL_TERMINAL_INPUT", EnableVirtualTerminalInput},
	},
}
