package slash

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Scope controls which registration targets a command is eligible for.
type Scope int

const (
	// ScopeGuildGlobal registers the command both globally and per guild.
	ScopeGuildGlobal Scope = iota
	// ScopeGlobal registers the command for the global target only.
	ScopeGlobal
	// ScopeGuild registers the command per guild only.
	ScopeGuild
)

// GlobalTarget is the target key for global registration; guild targets use
// the guild's snowflake ID.
const GlobalTarget = ""

// Handler runs a matched command. It executes on the manager's serialized
// worker lane, never on the gateway delivery goroutine.
type Handler func(*Context) error

// Command is a command declaration and, once registered, a node of the
// manager's command tree. Name, params, subcommands and scope are fixed
// before registration; only the per-target registered IDs mutate afterwards,
// and only from the synchronization path.
type Command struct {
	Name        string
	Description string

	// Type defaults to a chat-input command. User and message context-menu
	// commands carry no params.
	Type discordgo.ApplicationCommandType

	Scope   Scope
	Params  []*Param
	Handler Handler

	// Subcommands are owned by this command and travel with it as one
	// registration unit; they are never filtered independently.
	Subcommands []*Command

	// ShouldRegister lets the command opt out of a registration target
	// (guildID is GlobalTarget for the global one). Evaluated fresh on every
	// synchronization pass. Nil means always register.
	ShouldRegister func(m *Manager, guildID string) bool

	parent  *Command
	options []*Option
	wire    []*discordgo.ApplicationCommandOption

	mu  sync.Mutex
	ids map[string]string
}

// Option is a resolved command option: the declared parameter plus the
// parser that claimed it.
type Option struct {
	Param  *Param
	parser OptionParser
}

// matches reports whether the option answers to the given wire option name.
// Slice params answer to their numbered fan-out names as well.
func (o *Option) matches(name string) bool {
	if o.Param.Name == name {
		return true
	}
	if o.Param.Type.Kind == KindSlice {
		_, ok := numberedSuffix(name, o.Param.Name)
		return ok
	}
	return false
}

// Path returns the full space-joined command path, unique across the tree.
func (c *Command) Path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.Path() + " " + c.Name
}

// Parent returns the owning command, or nil for a top-level command. The
// back-link is non-owning; traversal ownership flows parent to children only.
func (c *Command) Parent() *Command { return c.parent }

// Options returns the resolved options of the command.
func (c *Command) Options() []*Option { return c.options }

// ForAll applies fn to this command and every descendant.
func (c *Command) ForAll(fn func(*Command)) {
	fn(c)
	for _, sub := range c.Subcommands {
		sub.ForAll(fn)
	}
}

// RegisteredID returns the remote command ID recorded for a target, if the
// synchronization protocol has confirmed one.
func (c *Command) RegisteredID(target string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[target]
	return id, ok
}

func (c *Command) setID(target, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ids == nil {
		c.ids = make(map[string]string)
	}
	c.ids[target] = id
}

func (c *Command) addOption(opt *discordgo.ApplicationCommandOption) {
	c.wire = append(c.wire, opt)
}

func (c *Command) commandType() discordgo.ApplicationCommandType {
	if c.Type == 0 {
		return discordgo.ChatApplicationCommand
	}
	return c.Type
}

func (c *Command) shouldRegister(m *Manager, guildID string) bool {
	if c.ShouldRegister == nil {
		return true
	}
	return c.ShouldRegister(m, guildID)
}

// resolveOptions derives the wire options for every declared parameter.
// Declaration problems are hard errors here, before any traffic is seen.
func (c *Command) resolveOptions(m *Manager) error {
	if c.Name == "" {
		return fmt.Errorf("command has no name")
	}
	if len(c.Params) > 0 && c.commandType() != discordgo.ChatApplicationCommand {
		return fmt.Errorf("context-menu command cannot declare params")
	}
	if len(c.Subcommands) > 0 && len(c.Params) > 0 {
		return fmt.Errorf("command cannot declare both params and subcommands")
	}

	for _, p := range c.Params {
		parser := m.parserFor(p.Type, p)
		if parser == nil {
			return fmt.Errorf("option %q: no parser accepts its type", p.Name)
		}
		ot := m.OptionType(p.Type, p)
		if ot == OptionTypeUnknown {
			return fmt.Errorf("option %q: unknown wire option type", p.Name)
		}
		if p.Type.Kind == KindSlice && p.MaxCount < p.MinCount {
			return fmt.Errorf("option %q: max count %d below min count %d", p.Name, p.MaxCount, p.MinCount)
		}
		if p.Autocomplete != nil && !autocompletable(ot) {
			return fmt.Errorf("option %q: wire type %d does not support autocomplete", p.Name, ot)
		}

		opt := &discordgo.ApplicationCommandOption{
			Type:         ot,
			Name:         p.Name,
			Description:  p.Description,
			Required:     p.required(),
			Autocomplete: p.Autocomplete != nil,
		}
		if cfg, ok := parser.(OptionConfigurer); ok {
			opt = cfg.Configure(c, opt, p, p.Type)
		}
		if reg, ok := parser.(OptionRegistrar); ok {
			reg.RegisterOption(c, opt, p)
		} else {
			c.addOption(opt)
		}

		c.options = append(c.options, &Option{Param: p, parser: parser})
	}
	return nil
}

func autocompletable(t discordgo.ApplicationCommandOptionType) bool {
	switch t {
	case discordgo.ApplicationCommandOptionString,
		discordgo.ApplicationCommandOptionInteger,
		discordgo.ApplicationCommandOptionNumber:
		return true
	}
	return false
}

// BuildCommand produces the wire-level command definition for a registration
// target. Subcommands nest recursively under their parent's definition.
func (c *Command) BuildCommand(guildID string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Type:        c.commandType(),
		Options:     c.buildOptions(guildID),
	}
}

func (c *Command) buildOptions(guildID string) []*discordgo.ApplicationCommandOption {
	opts := make([]*discordgo.ApplicationCommandOption, 0, len(c.wire)+len(c.Subcommands))
	opts = append(opts, c.wire...)
	for _, sub := range c.Subcommands {
		opts = append(opts, sub.buildSubcommand(guildID))
	}
	return opts
}

func (c *Command) buildSubcommand(guildID string) *discordgo.ApplicationCommandOption {
	t := discordgo.ApplicationCommandOptionSubCommand
	if len(c.Subcommands) > 0 {
		t = discordgo.ApplicationCommandOptionSubCommandGroup
	}
	return &discordgo.ApplicationCommandOption{
		Type:        t,
		Name:        c.Name,
		Description: c.Description,
		Options:     c.buildOptions(guildID),
	}
}

// eligible reports whether the command belongs in the filtered subset for a
// target: global syncs exclude guild-only commands, guild syncs exclude
// global-only ones, and ShouldRegister gets the final say.
func (c *Command) eligible(m *Manager, guildID string) bool {
	if guildID == GlobalTarget {
		if c.Scope == ScopeGuild {
			return false
		}
	} else if c.Scope == ScopeGlobal {
		return false
	}
	return c.shouldRegister(m, guildID)
}

// String implements fmt.Stringer for log output.
func (c *Command) String() string {
	return "/" + c.Path()
}
