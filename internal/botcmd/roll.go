package botcmd

import (
	"fmt"
	"math/rand"

	"github.com/keshon/slashkit/pkg/slash"
)

var rollMode = slash.EnumOf("RollMode", "normal", "advantage", "disadvantage")

// Roll rolls a die, demonstrating defaulted integer and enum options.
func Roll() *slash.Command {
	return &slash.Command{
		Name:        "roll",
		Description: "Roll a die",
		Params: []*slash.Param{
			{
				Name:        "sides",
				Description: "Number of sides on the die",
				Type:        slash.TypeInt,
				Default:     slash.IntDefault(6),
			},
			{
				Name:        "mode",
				Description: "Roll once, or twice keeping the best or worst",
				Type:        rollMode,
				Default:     slash.EnumDefault("normal"),
			},
		},
		Handler: runRoll,
	}
}

func runRoll(ctx *slash.Context) error {
	sides := int64(6)
	if v, ok := ctx.Option("sides"); ok {
		sides = v.(int64)
	}
	if sides < 2 {
		return ctx.RespondEphemeral("A die needs at least two sides.")
	}

	mode := "normal"
	if v, ok := ctx.Option("mode"); ok {
		mode = v.(string)
	}

	first := rand.Int63n(sides) + 1
	switch mode {
	case "advantage", "disadvantage":
		second := rand.Int63n(sides) + 1
		result := max(first, second)
		if mode == "disadvantage" {
			result = min(first, second)
		}
		return ctx.Respondf("🎲 Rolled %d and %d with %s — result: **%d**", first, second, mode, result)
	default:
		return ctx.Respond(fmt.Sprintf("🎲 Rolled a d%d: **%d**", sides, first))
	}
}
