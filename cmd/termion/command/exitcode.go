package command

import "fmt"

type ExitCode int

func (e ExitCode) Error() string {
	return fmt.Sprintf("exit code %d", e)
}

const (
	exitFailure    ExitCode = 1
	exitNoHandle   ExitCode = 3
	exitModeFailed ExitCode = 4
	exitSizeFailed ExitCode = 5
)
