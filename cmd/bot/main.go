package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/slashkit/internal/botcmd"
	"github.com/keshon/slashkit/internal/config"
	"github.com/keshon/slashkit/pkg/slash"
)

func main() {
	log.Println("[INFO] Starting slashkit example bot...")

	cfg, err := config.New()
	if err != nil {
		log.Fatal("[ERR] ", err)
	}

	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatal("[ERR] Failed to create session: ", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	mgr := slash.New(dg)
	mgr.SetErrorHandler(func(ctx *slash.Context, cerr *slash.CommandError) {
		_ = ctx.RespondEphemeral("Something went wrong running that command.")
		log.Println("[ERR] ", cerr)
	})

	err = mgr.RegisterAll(
		botcmd.Ping(),
		botcmd.Roll(),
		botcmd.Remind(),
		botcmd.Tag(),
		botcmd.Purge(cfg.GuildBlacklist),
		botcmd.Whois(),
	)
	if err != nil {
		log.Fatal("[ERR] Command registration failed: ", err)
	}

	if cfg.AutoSync {
		mgr.UpdateCommands()
	} else {
		log.Println("[INFO] Command sync disabled by config")
	}

	if err := dg.Open(); err != nil {
		log.Fatal("[ERR] Failed to open Discord session: ", err)
	}
	defer dg.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Printf("[INFO] Received signal %s, shutting down...", s)
}
