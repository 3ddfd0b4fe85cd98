package botcmd

import (
	"slices"

	"github.com/keshon/slashkit/pkg/slash"
)

// Purge is guild-only and opts out of blacklisted guilds through the
// ShouldRegister hook, so those guilds never even see the command.
func Purge(blacklist []string) *slash.Command {
	return &slash.Command{
		Name:        "purge",
		Description: "Delete recent messages in this channel",
		Scope:       slash.ScopeGuild,
		ShouldRegister: func(_ *slash.Manager, guildID string) bool {
			return !slices.Contains(blacklist, guildID)
		},
		Params: []*slash.Param{
			{
				Name:        "count",
				Description: "How many messages to delete (1-100)",
				Type:        slash.TypeInt,
			},
		},
		Handler: runPurge,
	}
}

func runPurge(ctx *slash.Context) error {
	count := int64(0)
	if v, ok := ctx.Option("count"); ok {
		count = v.(int64)
	}
	if count < 1 || count > 100 {
		return ctx.RespondEphemeral("Count must be between 1 and 100.")
	}

	channelID := ctx.Interaction.Event.ChannelID
	msgs, err := ctx.Session.ChannelMessages(channelID, int(count), "", "", "")
	if err != nil {
		return err
	}
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	if err := ctx.Session.ChannelMessagesBulkDelete(channelID, ids); err != nil {
		return err
	}
	return ctx.RespondEphemeral("🧹 Purged.")
}
