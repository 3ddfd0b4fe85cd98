package slash

import "fmt"

// CommandError wraps an error raised while performing a command, carrying
// the originating command so error handlers can act on it.
type CommandError struct {
	Command *Command
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q: %v", e.Command.Path(), e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
