package slash

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"
)

// Catalog is the remote command registry. One call replaces the complete
// command set for a target, all-or-nothing, and returns the registered
// records with their assigned IDs. guildID empty means the global target.
type Catalog interface {
	BulkOverwrite(ctx context.Context, appID, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error)
}

// sessionCatalog backs Catalog with a live discordgo session. Outbound calls
// are throttled client-side to stay well under Discord's command endpoints
// limit; failures are returned as-is, retrying is the caller's call.
type sessionCatalog struct {
	s       *discordgo.Session
	limiter *rate.Limiter
}

func newSessionCatalog(s *discordgo.Session) *sessionCatalog {
	return &sessionCatalog{
		s:       s,
		limiter: rate.NewLimiter(rate.Every(time.Second/2), 1),
	}
}

func (c *sessionCatalog) BulkOverwrite(ctx context.Context, appID, guildID string, cmds []*discordgo.ApplicationCommand) ([]*discordgo.ApplicationCommand, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.s.ApplicationCommandBulkOverwrite(appID, guildID, cmds, discordgo.WithContext(ctx))
}
