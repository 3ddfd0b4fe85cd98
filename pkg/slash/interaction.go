package slash

import (
	"github.com/bwmarrin/discordgo"
)

// Interaction wraps an application-command interaction with leaf-option
// navigation: Discord nests the actual option values under subcommand and
// subcommand-group options, and encodes the invoked path the same way.
type Interaction struct {
	Event *discordgo.InteractionCreate

	data    discordgo.ApplicationCommandInteractionData
	options []*discordgo.ApplicationCommandInteractionDataOption
	path    string
}

// NewInteraction unwraps the subcommand nesting of an interaction event.
func NewInteraction(ev *discordgo.InteractionCreate) *Interaction {
	data := ev.ApplicationCommandData()
	path := data.Name
	opts := data.Options
	for len(opts) == 1 && isSubcommand(opts[0].Type) {
		path += " " + opts[0].Name
		opts = opts[0].Options
	}
	return &Interaction{Event: ev, data: data, options: opts, path: path}
}

func isSubcommand(t discordgo.ApplicationCommandOptionType) bool {
	return t == discordgo.ApplicationCommandOptionSubCommand ||
		t == discordgo.ApplicationCommandOptionSubCommandGroup
}

// Path returns the full invoked command path ("name sub subsub").
func (ic *Interaction) Path() string { return ic.path }

// Options returns the leaf option values of the interaction.
func (ic *Interaction) Options() []*discordgo.ApplicationCommandInteractionDataOption {
	return ic.options
}

// Option returns the named leaf option, or nil.
func (ic *Interaction) Option(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range ic.options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Focused returns the currently focused option of an autocomplete
// interaction, or nil.
func (ic *Interaction) Focused() *discordgo.ApplicationCommandInteractionDataOption {
	for _, o := range ic.options {
		if o.Focused {
			return o
		}
	}
	return nil
}

// Resolved returns the resolved entity maps of the interaction, or nil.
func (ic *Interaction) Resolved() *discordgo.ApplicationCommandInteractionDataResolved {
	return ic.data.Resolved
}

// TargetID returns the target of a user or message context-menu command.
func (ic *Interaction) TargetID() string { return ic.data.TargetID }
