package botcmd

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/slashkit/pkg/slash"
)

// Whois is a user context-menu command: no options, the target arrives as
// the interaction's target ID with the user in the resolved map.
func Whois() *slash.Command {
	return &slash.Command{
		Name: "Who is this",
		Type: discordgo.UserApplicationCommand,
		Handler: func(ctx *slash.Context) error {
			id := ctx.Interaction.TargetID()
			r := ctx.Interaction.Resolved()
			if r == nil {
				return fmt.Errorf("no resolved data for target %s", id)
			}
			u, ok := r.Users[id]
			if !ok {
				return fmt.Errorf("target user %s not resolved", id)
			}
			return ctx.RespondEphemeral(fmt.Sprintf("That is **%s** (ID %s).", u.Username, u.ID))
		},
	}
}
