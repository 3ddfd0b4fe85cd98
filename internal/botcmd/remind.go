package botcmd

import (
	"github.com/keshon/slashkit/pkg/slash"
)

// Remind echoes a reminder back, demonstrating an optional-wrapped option:
// "minutes" may be absent without being an error.
func Remind() *slash.Command {
	return &slash.Command{
		Name:        "remind",
		Description: "Set a quick reminder",
		Params: []*slash.Param{
			{
				Name:        "message",
				Description: "What to be reminded of",
				Type:        slash.TypeString,
			},
			{
				Name:        "minutes",
				Description: "How many minutes from now",
				Type:        slash.OptionalOf(slash.TypeInt),
			},
		},
		Handler: runRemind,
	}
}

func runRemind(ctx *slash.Context) error {
	msg := ""
	if v, ok := ctx.Option("message"); ok {
		msg = v.(string)
	}

	v, _ := ctx.Option("minutes")
	if inner, present := v.(slash.Optional).Get(); present {
		return ctx.Respondf("⏰ Reminder in %d minute(s): %s", inner.(int64), msg)
	}
	return ctx.Respondf("⏰ Reminder noted (no time given): %s", msg)
}
