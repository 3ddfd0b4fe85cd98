package slash

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testInteraction builds an Interaction around raw leaf options, the shape
// Discord delivers after subcommand unwrapping.
func testInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *Interaction {
	ev := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
		},
	}
	return NewInteraction(ev)
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: value,
	}
}

func newTestManager() *Manager {
	return NewWithCatalog(&fakeCatalog{})
}

func TestOptionTypeScalars(t *testing.T) {
	m := newTestManager()
	cases := []struct {
		typ  TypeInfo
		want discordgo.ApplicationCommandOptionType
	}{
		{TypeInt, discordgo.ApplicationCommandOptionInteger},
		{TypeNumber, discordgo.ApplicationCommandOptionNumber},
		{TypeBool, discordgo.ApplicationCommandOptionBoolean},
		{TypeString, discordgo.ApplicationCommandOptionString},
		{TypeUser, discordgo.ApplicationCommandOptionUser},
		{TypeMember, discordgo.ApplicationCommandOptionUser},
		{TypeRole, discordgo.ApplicationCommandOptionRole},
		{TypeChannel, discordgo.ApplicationCommandOptionChannel},
		{TypeMentionable, discordgo.ApplicationCommandOptionMentionable},
		{TypeAttachment, discordgo.ApplicationCommandOptionAttachment},
		{EnumOf("E", "A"), discordgo.ApplicationCommandOptionString},
		{OptionalOf(TypeInt), discordgo.ApplicationCommandOptionInteger},
		{SliceOf(TypeString), discordgo.ApplicationCommandOptionString},
		{OptionalOf(SliceOf(TypeNumber)), discordgo.ApplicationCommandOptionNumber},
	}
	for _, tc := range cases {
		p := &Param{Name: "x", Type: tc.typ}
		assert.Equal(t, tc.want, m.OptionType(tc.typ, p))
	}
}

func TestOptionTypeUnknownSentinel(t *testing.T) {
	m := newTestManager()
	p := &Param{Name: "x", Type: CustomOf("Widget")}
	assert.Equal(t, OptionTypeUnknown, m.OptionType(p.Type, p))

	// Parsing an unclaimed type yields the absent marker, never an error.
	ic := testInteraction("cmd", strOpt("x", "y"))
	v, ok := m.ParseOption(ic, "x", p, p.Type)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestScalarParseAndDefaults(t *testing.T) {
	m := newTestManager()
	ic := testInteraction("cmd",
		intOpt("count", 20),
		strOpt("word", "hello"),
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "flag", Type: discordgo.ApplicationCommandOptionBoolean, Value: true,
		},
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "ratio", Type: discordgo.ApplicationCommandOptionNumber, Value: 0.5,
		},
	)

	v, ok := m.ParseOption(ic, "count", &Param{Name: "count", Type: TypeInt}, TypeInt)
	require.True(t, ok)
	assert.Equal(t, int64(20), v)

	v, ok = m.ParseOption(ic, "word", &Param{Name: "word", Type: TypeString}, TypeString)
	require.True(t, ok)
	assert.Equal(t, "hello", v)

	v, ok = m.ParseOption(ic, "flag", &Param{Name: "flag", Type: TypeBool}, TypeBool)
	require.True(t, ok)
	assert.Equal(t, true, v)

	// Number options arrive as float64, matching JSON decoding.
	v, ok = m.ParseOption(ic, "ratio", &Param{Name: "ratio", Type: TypeNumber}, TypeNumber)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)

	// Absent with a default substitutes the default.
	p := &Param{Name: "missing", Type: TypeInt, Default: IntDefault(6)}
	v, ok = m.ParseOption(ic, "missing", p, TypeInt)
	require.True(t, ok)
	assert.Equal(t, int64(6), v)

	// Absent without a default is the absent marker.
	_, ok = m.ParseOption(ic, "missing", &Param{Name: "missing", Type: TypeInt}, TypeInt)
	assert.False(t, ok)
}

func TestResolvedEntityParsing(t *testing.T) {
	m := newTestManager()
	user := &discordgo.User{ID: "100", Username: "someone"}
	role := &discordgo.Role{ID: "200", Name: "mods"}
	member := &discordgo.Member{Nick: "nick"}

	ev := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type: discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name: "cmd",
				Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "who", Type: discordgo.ApplicationCommandOptionUser, Value: "100"},
					{Name: "which", Type: discordgo.ApplicationCommandOptionRole, Value: "200"},
					{Name: "target", Type: discordgo.ApplicationCommandOptionMentionable, Value: "200"},
				},
				Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
					Users:   map[string]*discordgo.User{"100": user},
					Members: map[string]*discordgo.Member{"100": member},
					Roles:   map[string]*discordgo.Role{"200": role},
				},
			},
		},
	}
	ic := NewInteraction(ev)

	v, ok := m.ParseOption(ic, "who", &Param{Name: "who", Type: TypeUser}, TypeUser)
	require.True(t, ok)
	assert.Same(t, user, v)

	// Resolved members get their User field backfilled.
	v, ok = m.ParseOption(ic, "who", &Param{Name: "who", Type: TypeMember}, TypeMember)
	require.True(t, ok)
	require.Same(t, member, v)
	assert.Same(t, user, member.User)

	v, ok = m.ParseOption(ic, "which", &Param{Name: "which", Type: TypeRole}, TypeRole)
	require.True(t, ok)
	assert.Same(t, role, v)

	// Mentionable tries users first, then roles.
	v, ok = m.ParseOption(ic, "target", &Param{Name: "target", Type: TypeMentionable}, TypeMentionable)
	require.True(t, ok)
	assert.Same(t, role, v)

	// Unresolved snowflakes yield the absent marker.
	_, ok = m.ParseOption(testInteraction("cmd",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name: "who", Type: discordgo.ApplicationCommandOptionUser, Value: "999",
		},
	), "who", &Param{Name: "who", Type: TypeUser}, TypeUser)
	assert.False(t, ok)
}

func TestOptionalComposition(t *testing.T) {
	m := newTestManager()
	typ := OptionalOf(TypeString)
	p := &Param{Name: "note", Type: typ}

	// Absent raw value: empty optional, still a produced value.
	v, ok := m.ParseOption(testInteraction("cmd"), "note", p, typ)
	require.True(t, ok)
	opt := v.(Optional)
	_, present := opt.Get()
	assert.False(t, present)

	// Present raw value: populated optional with exactly the inner result.
	v, ok = m.ParseOption(testInteraction("cmd", strOpt("note", "hi")), "note", p, typ)
	require.True(t, ok)
	inner, present := v.(Optional).Get()
	require.True(t, present)
	assert.Equal(t, "hi", inner)
}

func TestSliceParseSuffixOrder(t *testing.T) {
	m := newTestManager()
	typ := SliceOf(TypeString)
	p := &Param{Name: "name", Type: typ, MinCount: 1, MaxCount: 3}

	ic := testInteraction("cmd",
		strOpt("name2", "b"),
		strOpt("name1", "a"),
		strOpt("unrelated", "z"),
	)
	v, ok := m.ParseOption(ic, "name", p, typ)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, v)

	// Numeric suffix order, not lexicographic: name10 sorts after name2.
	ic = testInteraction("cmd",
		strOpt("name10", "late"),
		strOpt("name2", "early"),
	)
	v, _ = m.ParseOption(ic, "name", p, typ)
	assert.Equal(t, []any{"early", "late"}, v)

	// No numbered options at all parses to an empty sequence, not absence.
	v, ok = m.ParseOption(testInteraction("cmd"), "name", p, typ)
	require.True(t, ok)
	assert.Empty(t, v)
}

func TestEnumFallback(t *testing.T) {
	m := newTestManager()
	typ := EnumOf("Choice", "A", "B")

	parse := func(p *Param, opts ...*discordgo.ApplicationCommandInteractionDataOption) any {
		v, ok := m.ParseOption(testInteraction("cmd", opts...), "choice", p, typ)
		require.True(t, ok)
		return v
	}

	withDefault := &Param{Name: "choice", Type: typ, Default: EnumDefault("B")}
	noDefault := &Param{Name: "choice", Type: typ}
	firstDefault := &Param{Name: "choice", Type: typ, Default: EnumDefault("")}

	// Exact, case-sensitive match wins.
	assert.Equal(t, "A", parse(withDefault, strOpt("choice", "A")))

	// Absent or unmatched resolves to the declared default.
	assert.Equal(t, "B", parse(withDefault))
	assert.Equal(t, "B", parse(withDefault, strOpt("choice", "a")))
	assert.Equal(t, "B", parse(withDefault, strOpt("choice", "C")))

	// Without a declared default the first constant is the fallback.
	assert.Equal(t, "A", parse(noDefault, strOpt("choice", "C")))
	assert.Equal(t, "A", parse(firstDefault))
}

// customParser accepts a named custom kind, for extension-point tests.
type customParser struct {
	typeName string
}

func (p customParser) Accepts(t TypeInfo, _ *Param) bool {
	return t.Kind == KindCustom && t.Name == p.typeName
}

func (customParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionString
}

func (customParser) Parse(_ *Manager, ic *Interaction, name string, _ *Param, _ TypeInfo) (any, bool) {
	opt := ic.Option(name)
	if opt == nil {
		return nil, false
	}
	s, _ := opt.Value.(string)
	return "custom:" + s, true
}

func TestCustomParserRegistration(t *testing.T) {
	m := newTestManager()
	typ := CustomOf("Widget")
	p := &Param{Name: "w", Type: typ}

	m.RegisterOptionParser(customParser{typeName: "Widget"})

	assert.Equal(t, discordgo.ApplicationCommandOptionString, m.OptionType(typ, p))
	v, ok := m.ParseOption(testInteraction("cmd", strOpt("w", "x")), "w", p, typ)
	require.True(t, ok)
	assert.Equal(t, "custom:x", v)
}

func TestFirstMatchWins(t *testing.T) {
	m := newTestManager()

	// A caller-registered parser claiming an already-claimed type is never
	// reached: built-ins registered earlier take priority.
	m.RegisterOptionParser(shadowParser{})
	p := &Param{Name: "s", Type: TypeString}
	v, ok := m.ParseOption(testInteraction("cmd", strOpt("s", "plain")), "s", p, TypeString)
	require.True(t, ok)
	assert.Equal(t, "plain", v, "built-in string parser should win over the later shadow")
}

// shadowParser claims string types too, but is registered after built-ins.
type shadowParser struct{}

func (shadowParser) Accepts(t TypeInfo, _ *Param) bool { return t.Kind == KindString }

func (shadowParser) OptionType(_ *Manager, _ TypeInfo, _ *Param) discordgo.ApplicationCommandOptionType {
	return discordgo.ApplicationCommandOptionString
}

func (shadowParser) Parse(_ *Manager, _ *Interaction, _ string, _ *Param, _ TypeInfo) (any, bool) {
	return "shadowed", true
}
