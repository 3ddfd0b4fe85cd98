package botcmd

import (
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/slashkit/pkg/slash"
)

// tagStore is an in-memory per-guild tag list; the bot forgets it on
// restart, which is fine for a demo.
type tagStore struct {
	mu   sync.Mutex
	tags map[string][]string
}

func (s *tagStore) add(guildID string, names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[guildID] = append(s.tags[guildID], names...)
}

func (s *tagStore) list(guildID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tags[guildID]...)
}

var tags = &tagStore{tags: make(map[string][]string)}

// Tag is a parent command with subcommands, demonstrating the repetition
// fan-out (name1..name3 on the wire) and autocomplete.
func Tag() *slash.Command {
	return &slash.Command{
		Name:        "tag",
		Description: "Manage tags",
		Subcommands: []*slash.Command{
			{
				Name:        "add",
				Description: "Add up to three tags at once",
				Params: []*slash.Param{
					{
						Name:         "name",
						Description:  "Tag to add",
						Type:         slash.SliceOf(slash.TypeString),
						MinCount:     1,
						MaxCount:     3,
						Autocomplete: suggestTags,
					},
				},
				Handler: runTagAdd,
			},
			{
				Name:        "list",
				Description: "List known tags",
				Handler:     runTagList,
			},
		},
	}
}

func runTagAdd(ctx *slash.Context) error {
	v, _ := ctx.Option("name")
	raw := v.([]any)
	names := make([]string, len(raw))
	for i, n := range raw {
		names[i] = n.(string)
	}
	if len(names) == 0 {
		return ctx.RespondEphemeral("No tags given.")
	}
	tags.add(ctx.GuildID(), names)
	return ctx.Respondf("Added %d tag(s): %s", len(names), strings.Join(names, ", "))
}

func runTagList(ctx *slash.Context) error {
	known := tags.list(ctx.GuildID())
	if len(known) == 0 {
		return ctx.RespondEphemeral("No tags yet.")
	}
	return ctx.Respondf("Tags: %s", strings.Join(known, ", "))
}

// suggestTags completes against already-known tags for the guild.
func suggestTags(ctx *slash.Context) error {
	focused := ctx.Interaction.Focused()
	if focused == nil {
		return nil
	}
	raw, _ := focused.Value.(string)
	prefix := strings.ToLower(raw)

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, t := range tags.list(ctx.GuildID()) {
		if !strings.HasPrefix(strings.ToLower(t), prefix) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: t, Value: t})
		if len(choices) == 25 {
			break
		}
	}
	return ctx.RespondChoices(choices)
}
