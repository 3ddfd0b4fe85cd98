package slash

import (
	"github.com/bwmarrin/discordgo"
)

// OptionTypeUnknown is returned by Manager.OptionType when no registered
// parser accepts a type. Discord's option type tags start at 1, so zero is
// free to act as the sentinel. Callers decide whether an unknown type is
// fatal; for command registration it is.
const OptionTypeUnknown discordgo.ApplicationCommandOptionType = 0

// OptionParser claims responsibility for a parameter type and supplies its
// wire-level option kind and value parsing. Parsers are stateless; the
// manager scans them in registration order and the first one whose Accepts
// returns true wins. Built-ins are registered before any caller-supplied
// parser, so custom parsers extend the chain rather than shadowing it.
//
// A parser may additionally implement OptionConfigurer and OptionRegistrar;
// the manager discovers those by type assertion, the same way the command
// runtime discovers provider interfaces.
type OptionParser interface {
	// Accepts reports whether this parser is responsible for the type.
	Accepts(t TypeInfo, p *Param) bool

	// OptionType returns the wire-level option kind the parameter should be
	// advertised as. Composed parsers re-enter the manager for their element
	// type.
	OptionType(m *Manager, t TypeInfo, p *Param) discordgo.ApplicationCommandOptionType

	// Parse extracts the typed value for the named option from the
	// interaction. ok is false when the parser yields no value (absent raw
	// input with no default).
	Parse(m *Manager, ic *Interaction, name string, p *Param, t TypeInfo) (v any, ok bool)
}

// OptionConfigurer lets a parser finalize the emitted option definition,
// e.g. attach enum choice lists.
type OptionConfigurer interface {
	Configure(c *Command, opt *discordgo.ApplicationCommandOption, p *Param, t TypeInfo) *discordgo.ApplicationCommandOption
}

// OptionRegistrar lets a parser decide how many wire options a declared
// parameter occupies. The slice parser is the only built-in that fans a
// parameter out into several numbered options.
type OptionRegistrar interface {
	RegisterOption(c *Command, opt *discordgo.ApplicationCommandOption, p *Param)
}

// builtinParsers returns the built-in chain in priority order.
func builtinParsers() []OptionParser {
	return []OptionParser{
		integerParser{},
		numberParser{},
		boolParser{},
		userParser{},
		memberParser{},
		roleParser{},
		channelParser{},
		mentionableParser{},
		attachmentParser{},
		stringParser{},
		optionalParser{},
		enumParser{},
		sliceParser{},
	}
}
