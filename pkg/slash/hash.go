package slash

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// hashDefinitions returns a deterministic SHA-1 over the stable fields of a
// command definition set. The manager uses it to tell whether a sync pass
// actually changed anything for a target.
func hashDefinitions(defs []*discordgo.ApplicationCommand) string {
	stable := make([]map[string]interface{}, len(defs))
	for i, d := range defs {
		entry := map[string]interface{}{
			"name":        d.Name,
			"description": d.Description,
			"type":        d.Type,
		}
		if len(d.Options) > 0 {
			entry["options"] = normalizeOptions(d.Options)
		}
		stable[i] = entry
	}
	sort.Slice(stable, func(i, j int) bool {
		return stable[i]["name"].(string) < stable[j]["name"].(string)
	})
	data, _ := json.Marshal(stable)
	sum := sha1.Sum(data)
	return fmt.Sprintf("%x", sum)
}

func normalizeOptions(opts []*discordgo.ApplicationCommandOption) []map[string]interface{} {
	out := make([]map[string]interface{}, len(opts))
	for i, o := range opts {
		entry := map[string]interface{}{
			"name":        o.Name,
			"description": o.Description,
			"type":        o.Type,
			"required":    o.Required,
		}
		if len(o.Choices) > 0 {
			choices := make([]map[string]interface{}, len(o.Choices))
			for j, ch := range o.Choices {
				choices[j] = map[string]interface{}{"name": ch.Name, "value": ch.Value}
			}
			entry["choices"] = choices
		}
		if len(o.Options) > 0 {
			entry["options"] = normalizeOptions(o.Options)
		}
		out[i] = entry
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i]["name"].(string) < out[j]["name"].(string)
	})
	return out
}
