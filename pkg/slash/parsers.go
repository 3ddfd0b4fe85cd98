package slash

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// --- Scalar parsers ---

type integerParser struct{}

func (integerParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindInt }

func (integerParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionInteger
}

func (integerParser) Parse(_ *Manager, ic *Interaction, name string, p *Param, _ TypeInfo) (any, bool) {
	if opt := ic.Option(name); opt != nil {
		if f, ok := opt.Value.(float64); ok {
			return int64(f), true
		}
	}
	if p.Default != nil && p.Default.Int != nil {
		return *p.Default.Int, true
	}
	return nil, false
}

type numberParser struct{}

func (numberParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindNumber }

func (numberParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionNumber
}

func (numberParser) Parse(_ *Manager, ic *Interaction, name string, p *Param, _ TypeInfo) (any, bool) {
	if opt := ic.Option(name); opt != nil {
		if f, ok := opt.Value.(float64); ok {
			return f, true
		}
	}
	if p.Default != nil && p.Default.Number != nil {
		return *p.Default.Number, true
	}
	return nil, false
}

type boolParser struct{}

func (boolParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindBool }

func (boolParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionBoolean
}

func (boolParser) Parse(_ *Manager, ic *Interaction, name string, p *Param, _ TypeInfo) (any, bool) {
	if opt := ic.Option(name); opt != nil {
		if b, ok := opt.Value.(bool); ok {
			return b, true
		}
	}
	if p.Default != nil && p.Default.Bool != nil {
		return *p.Default.Bool, true
	}
	return nil, false
}

type stringParser struct{}

func (stringParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindString }

func (stringParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionString
}

func (stringParser) Parse(_ *Manager, ic *Interaction, name string, p *Param, _ TypeInfo) (any, bool) {
	if opt := ic.Option(name); opt != nil {
		if s, ok := opt.Value.(string); ok {
			return s, true
		}
	}
	if p.Default != nil && p.Default.String != nil {
		return *p.Default.String, true
	}
	return nil, false
}

// --- Entity parsers ---
//
// Entity options carry the snowflake as the raw value; the actual objects
// arrive in the interaction's resolved maps.

type userParser struct{}

func (userParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindUser }

func (userParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionUser
}

func (userParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	if r := ic.Resolved(); r != nil {
		if u, ok := r.Users[snowflake(opt)]; ok {
			return u, true
		}
	}
	return nil, false
}

type memberParser struct{}

func (memberParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindMember }

func (memberParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionUser
}

func (memberParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	r := ic.Resolved()
	if r == nil {
		return nil, false
	}
	id := snowflake(opt)
	mem, ok := r.Members[id]
	if !ok {
		return nil, false
	}
	// Resolved members come without the User field populated.
	if mem.User == nil {
		mem.User = r.Users[id]
	}
	return mem, true
}

type roleParser struct{}

func (roleParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindRole }

func (roleParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionRole
}

func (roleParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	if r := ic.Resolved(); r != nil {
		if role, ok := r.Roles[snowflake(opt)]; ok {
			return role, true
		}
	}
	return nil, false
}

type channelParser struct{}

func (channelParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindChannel }

func (channelParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionChannel
}

func (channelParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	if r := ic.Resolved(); r != nil {
		if ch, ok := r.Channels[snowflake(opt)]; ok {
			return ch, true
		}
	}
	return nil, false
}

type mentionableParser struct{}

func (mentionableParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindMentionable }

func (mentionableParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionMentionable
}

func (mentionableParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	r := ic.Resolved()
	if r == nil {
		return nil, false
	}
	id := snowflake(opt)
	if u, ok := r.Users[id]; ok {
		return u, true
	}
	if role, ok := r.Roles[id]; ok {
		return role, true
	}
	return nil, false
}

type attachmentParser struct{}

func (attachmentParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindAttachment }

func (attachmentParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionAttachment
}

func (attachmentParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	if r := ic.Resolved(); r != nil {
		if a, ok := r.Attachments[snowflake(opt)]; ok {
			return a, true
		}
	}
	return nil, false
}

// --- Composed parsers ---

// optionalParser delegates to the element type's parser and wraps the result,
// so absent raw input becomes an empty Optional instead of a missing value.
type optionalParser struct{}

func (optionalParser) Accepts(t TypeInfo, _ *Param) bool {
	return t.Kind == KindOptional && t.Elem != nil
}

func (optionalParser) OptionType(m *Manager, t TypeInfo, p *Param) discordgo.ApplicationCommandOptionType {
	return m.OptionType(*t.Elem, p)
}

func (optionalParser) Parse(m *Manager, ic *Interaction, name string, p *Param, t TypeInfo) (any, bool) {
	v, ok := m.ParseOption(ic, name, p, *t.Elem)
	return Optional{Value: v, Present: ok}, true
}

// enumParser registers enums as string options with a choice per constant.
// Absent or unmatched raw values fall back to the declared default constant,
// or the first declared one when no default is named. A bad raw value is
// never a parse error.
type enumParser struct{}

func (enumParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindEnum }

func (enumParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionString
}

func (enumParser) Parse(_ *Manager, ic *Interaction, name string, p *Param, t TypeInfo) (any, bool) {
	raw := ""
	if opt := ic.Option(name); opt != nil {
		raw, _ = opt.Value.(string)
	}
	for _, c := range t.Enum {
		if c == raw {
			return c, true
		}
	}
	if p.Default != nil && p.Default.Enum != nil && *p.Default.Enum != "" {
		for _, c := range t.Enum {
			if c == *p.Default.Enum {
				return c, true
			}
		}
	}
	if len(t.Enum) > 0 {
		return t.Enum[0], true
	}
	return nil, false
}

func (enumParser) Configure(_ *Command, opt *discordgo.ApplicationCommandOption, _ *Param, t TypeInfo) *discordgo.ApplicationCommandOption {
	for _, c := range t.Enum {
		opt.Choices = append(opt.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c,
			Value: c,
		})
	}
	return opt
}

// sliceParser handles repetition: one declared parameter becomes MaxCount
// numbered wire options (name1..nameN), and parsing collects every supplied
// numbered value in suffix order.
type sliceParser struct{}

func (sliceParser) Accepts(t TypeInfo, _ *Param) bool {
	return t.Kind == KindSlice && t.Elem != nil
}

func (sliceParser) OptionType(m *Manager, t TypeInfo, p *Param) discordgo.ApplicationCommandOptionType {
	return m.OptionType(*t.Elem, p)
}

func (sliceParser) Parse(m *Manager, ic *Interaction, name string, p *Param, t TypeInfo) (any, bool) {
	type hit struct {
		idx int
		val any
	}
	var hits []hit
	for _, o := range ic.Options() {
		idx, ok := numberedSuffix(o.Name, name)
		if !ok {
			continue
		}
		if v, parsed := m.ParseOption(ic, o.Name, p, *t.Elem); parsed {
			hits = append(hits, hit{idx: idx, val: v})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].idx < hits[j].idx })
	out := make([]any, len(hits))
	for i, h := range hits {
		out[i] = h.val
	}
	return out, true
}

func (sliceParser) RegisterOption(c *Command, opt *discordgo.ApplicationCommandOption, p *Param) {
	if p.MaxCount <= 0 {
		c.addOption(opt)
		return
	}
	for i := 1; i <= p.MaxCount; i++ {
		o := cloneOption(opt)
		o.Name = fmt.Sprintf("%s%d", opt.Name, i)
		o.Required = i <= p.MinCount
		c.addOption(o)
	}
}

// snowflake returns an entity option's raw ID value.
func snowflake(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	id, _ := opt.Value.(string)
	return id
}

// numberedSuffix reports whether name is prefix followed by digits only,
// returning the numeric suffix.
func numberedSuffix(name, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func cloneOption(opt *discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	o := *opt
	if len(opt.Choices) > 0 {
		o.Choices = append([]*discordgo.ApplicationCommandOptionChoice(nil), opt.Choices...)
	}
	return &o
}
