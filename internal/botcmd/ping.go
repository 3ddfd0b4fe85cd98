// Package botcmd holds the example bot's commands, one file per command.
package botcmd

import (
	"github.com/keshon/slashkit/pkg/slash"
)

// Ping is the smallest possible command: no options, global scope.
func Ping() *slash.Command {
	return &slash.Command{
		Name:        "ping",
		Description: "Check whether the bot is alive",
		Handler: func(ctx *slash.Context) error {
			return ctx.Respond("Pong!")
		},
	}
}
