package slash

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Context is what handlers receive: the session, the matched command, and
// the wrapped interaction, plus typed option access through the manager's
// parser chain.
type Context struct {
	Session     *discordgo.Session
	Manager     *Manager
	Command     *Command
	Interaction *Interaction
}

// Option resolves the named declared option to its typed value. ok is false
// when no value was supplied and the parameter has no default. The value is
// re-derived through the same parser that produced the option's wire schema.
func (c *Context) Option(name string) (any, bool) {
	for _, o := range c.Command.options {
		if o.Param.Name == name {
			return c.Manager.ParseOption(c.Interaction, name, o.Param, o.Param.Type)
		}
	}
	return nil, false
}

// GuildID returns the guild the interaction came from, empty for DMs.
func (c *Context) GuildID() string { return c.Interaction.Event.GuildID }

// --- Interaction responses ---

// Respond sends a public message response to the interaction.
func (c *Context) Respond(content string) error {
	return c.Session.InteractionRespond(c.Interaction.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: content},
	})
}

// Respondf formats and sends a public message response.
func (c *Context) Respondf(format string, args ...any) error {
	return c.Respond(fmt.Sprintf(format, args...))
}

// RespondEphemeral sends an ephemeral message response to the interaction.
func (c *Context) RespondEphemeral(content string) error {
	return c.Session.InteractionRespond(c.Interaction.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondEmbed sends a public embed response to the interaction.
func (c *Context) RespondEmbed(embed *discordgo.MessageEmbed) error {
	return c.Session.InteractionRespond(c.Interaction.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
}

// RespondChoices answers an autocomplete interaction with suggestions.
func (c *Context) RespondChoices(choices []*discordgo.ApplicationCommandOptionChoice) error {
	return c.Session.InteractionRespond(c.Interaction.Event.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
}
