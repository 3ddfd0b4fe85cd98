package slash

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// ErrorHandler receives failures raised while performing a command. The
// failure is logged whether or not a handler is set.
type ErrorHandler func(*Context, *CommandError)

// Manager owns the option parser chain and the command tree, dispatches
// inbound interactions, and synchronizes the tree against Discord's command
// catalog per target (global, or one guild).
//
// Command registration is a startup-time, single-goroutine affair; once the
// session is open only the per-target registered IDs mutate, and only from
// the synchronization path.
type Manager struct {
	session *discordgo.Session
	catalog Catalog

	parsers  []OptionParser
	commands map[string]*Command

	lane *execLane

	errHandler ErrorHandler
	autoUpdate atomic.Bool

	syncMu sync.Mutex
	synced map[string]string // target -> definition set hash of the last sync
}

// New creates a manager bound to a session: the session backs the remote
// catalog, and ready/guild-create/interaction handlers are attached for
// auto-update and dispatch.
func New(s *discordgo.Session) *Manager {
	m := newManager(s, newSessionCatalog(s))
	s.AddHandler(m.onReady)
	s.AddHandler(m.onGuildCreate)
	s.AddHandler(m.HandleInteractionCreate)
	return m
}

// NewWithCatalog creates a manager against a custom catalog and no session.
// Interactions must be fed in through HandleInteractionCreate by the caller.
func NewWithCatalog(c Catalog) *Manager {
	return newManager(nil, c)
}

func newManager(s *discordgo.Session, c Catalog) *Manager {
	return &Manager{
		session:  s,
		catalog:  c,
		parsers:  builtinParsers(),
		commands: make(map[string]*Command),
		lane:     newExecLane(),
		synced:   make(map[string]string),
	}
}

// SetErrorHandler installs the handler invoked with the failing command and
// wrapped error when a command body fails.
func (m *Manager) SetErrorHandler(h ErrorHandler) { m.errHandler = h }

// RegisterOptionParser appends a parser to the chain. Built-ins were
// inserted first, so a custom parser is only reached for types they decline.
// Registration order is priority order.
func (m *Manager) RegisterOptionParser(p OptionParser) {
	m.parsers = append(m.parsers, p)
}

// Register inserts a command and its subcommands into the tree, resolving
// every declared parameter through the parser chain. Declaration problems
// (unclaimed types, bad repetition bounds, autocomplete on an incompatible
// wire type, duplicate paths) fail here, before any traffic is processed.
func (m *Manager) Register(c *Command) error {
	return m.register(c, nil)
}

// RegisterAll registers several top-level commands, stopping at the first
// failure.
func (m *Manager) RegisterAll(cmds ...*Command) error {
	for _, c := range cmds {
		if err := m.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) register(c *Command, parent *Command) error {
	c.parent = parent
	if err := c.resolveOptions(m); err != nil {
		return fmt.Errorf("command %q: %w", c.Path(), err)
	}
	path := c.Path()
	if _, dup := m.commands[path]; dup {
		return fmt.Errorf("duplicate command path %q", path)
	}
	m.commands[path] = c
	for _, sub := range c.Subcommands {
		if err := m.register(sub, c); err != nil {
			return err
		}
	}
	return nil
}

// Command returns the registered command for a full path, or nil.
func (m *Manager) Command(path string) *Command { return m.commands[path] }

// Commands returns all registered commands keyed by full path.
func (m *Manager) Commands() map[string]*Command { return m.commands }

// topLevel returns the top-level commands sorted by name so the bulk
// replace payload is deterministic.
func (m *Manager) topLevel() []*Command {
	var out []*Command
	for _, c := range m.commands {
		if c.parent == nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// --- Option resolution (first-match dispatch over the parser chain) ---

// parserFor returns the first parser that accepts the type, or nil.
func (m *Manager) parserFor(t TypeInfo, p *Param) OptionParser {
	for _, op := range m.parsers {
		if op.Accepts(t, p) {
			return op
		}
	}
	return nil
}

// OptionType resolves the wire-level option kind for a type, returning
// OptionTypeUnknown when no parser claims it. Never fails.
func (m *Manager) OptionType(t TypeInfo, p *Param) discordgo.ApplicationCommandOptionType {
	if op := m.parserFor(t, p); op != nil {
		return op.OptionType(m, t, p)
	}
	return OptionTypeUnknown
}

// ParseOption resolves the named option's value through the parser chain.
// ok is false when no parser claims the type or the matched parser yields no
// value. Never fails.
func (m *Manager) ParseOption(ic *Interaction, name string, p *Param, t TypeInfo) (any, bool) {
	if op := m.parserFor(t, p); op != nil {
		return op.Parse(m, ic, name, p, t)
	}
	return nil, false
}

// --- Synchronization ---

// UpdateGlobalCommands bulk-replaces the global command set and records the
// returned IDs onto the matching descriptors.
func (m *Manager) UpdateGlobalCommands(ctx context.Context) error {
	return m.updateTarget(ctx, GlobalTarget)
}

// UpdateGuildCommands bulk-replaces a guild's command set and records the
// returned IDs onto the matching descriptors.
func (m *Manager) UpdateGuildCommands(ctx context.Context, guildID string) error {
	if guildID == GlobalTarget {
		return fmt.Errorf("empty guild id; use UpdateGlobalCommands for the global target")
	}
	return m.updateTarget(ctx, guildID)
}

// updateTarget is the full filter-and-replace pass for one target. Any
// command omitted from the filtered subset is implicitly unregistered by the
// platform; there is no incremental diff and no partial state.
func (m *Manager) updateTarget(ctx context.Context, guildID string) error {
	defs := []*discordgo.ApplicationCommand{}
	for _, c := range m.topLevel() {
		if !c.eligible(m, guildID) {
			continue
		}
		defs = append(defs, c.BuildCommand(guildID))
	}

	h := hashDefinitions(defs)
	if prev, ok := m.lastSynced(guildID); ok && prev == h {
		log.Printf("[INFO] [%s] Command definitions unchanged, replacing anyway", targetLabel(guildID))
	}

	registered, err := m.catalog.BulkOverwrite(ctx, m.appID(), guildID, defs)
	if err != nil {
		return fmt.Errorf("bulk replace for %s: %w", targetLabel(guildID), err)
	}

	// Propagate each confirmed ID down the registration unit it was
	// registered for. IDs are never guessed locally.
	for _, rc := range registered {
		c, ok := m.commands[rc.Name]
		if !ok {
			continue
		}
		id := rc.ID
		c.ForAll(func(sc *Command) { sc.setID(guildID, id) })
	}

	m.rememberSynced(guildID, h)
	log.Printf("[DONE] [%s] Registered %d command(s)", targetLabel(guildID), len(registered))
	return nil
}

// UpdateCommands enables auto-update mode. If the gateway connection is
// already up, global and per-guild synchronization run immediately,
// otherwise they run once the ready and guild-create signals arrive.
func (m *Manager) UpdateCommands() {
	m.autoUpdate.Store(true)
	if m.session == nil || !m.session.DataReady {
		log.Println("[INFO] Connection not ready, command sync pending")
		return
	}

	go func() {
		ctx := context.Background()
		if err := m.UpdateGlobalCommands(ctx); err != nil {
			log.Println("[ERR] Global command sync failed:", err)
		}
		for _, g := range m.session.State.Guilds {
			if err := m.UpdateGuildCommands(ctx, g.ID); err != nil {
				log.Printf("[ERR] [%s] Guild command sync failed: %v", g.ID, err)
			}
		}
	}()
}

func (m *Manager) onReady(_ *discordgo.Session, _ *discordgo.Ready) {
	if !m.autoUpdate.Load() {
		return
	}
	go func() {
		if err := m.UpdateGlobalCommands(context.Background()); err != nil {
			log.Println("[ERR] Global command sync failed:", err)
		}
	}()
}

func (m *Manager) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if !m.autoUpdate.Load() {
		return
	}
	go func() {
		if err := m.UpdateGuildCommands(context.Background(), g.ID); err != nil {
			log.Printf("[ERR] [%s] Guild command sync failed: %v", g.ID, err)
		}
	}()
}

func (m *Manager) lastSynced(target string) (string, bool) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()
	h, ok := m.synced[target]
	return h, ok
}

func (m *Manager) rememberSynced(target, hash string) {
	m.syncMu.Lock()
	defer m.syncMu.Unlock()
	m.synced[target] = hash
}

// appID returns the application ID, fetching the bot user if the state has
// not seen it yet.
func (m *Manager) appID() string {
	if m.session == nil {
		return ""
	}
	if m.session.State != nil && m.session.State.User != nil && m.session.State.User.ID != "" {
		return m.session.State.User.ID
	}
	if u, err := m.session.User("@me"); err == nil {
		return u.ID
	}
	return ""
}

func targetLabel(guildID string) string {
	if guildID == GlobalTarget {
		return "global"
	}
	return guildID
}

// --- Dispatch ---

// HandleInteractionCreate routes an interaction event: command invocations
// are queued onto the serialized execution lane, autocomplete requests are
// answered inline. Unknown paths are ignored; the platform may deliver
// stale commands after a delayed sync.
func (m *Manager) HandleInteractionCreate(s *discordgo.Session, ev *discordgo.InteractionCreate) {
	switch ev.Type {
	case discordgo.InteractionApplicationCommand:
		ic := NewInteraction(ev)
		c, ok := m.commands[ic.Path()]
		if !ok {
			return
		}
		ctx := &Context{Session: s, Manager: m, Command: c, Interaction: ic}
		m.lane.submit(func() { m.perform(ctx) })

	case discordgo.InteractionApplicationCommandAutocomplete:
		m.handleAutocomplete(s, ev)
	}
}

func (m *Manager) perform(ctx *Context) {
	defer func() {
		if r := recover(); r != nil {
			m.fail(ctx, fmt.Errorf("panic: %v", r))
		}
	}()

	if ctx.Command.Handler == nil {
		log.Printf("[WARN] Command %q has no handler", ctx.Command.Path())
		return
	}
	if err := ctx.Command.Handler(ctx); err != nil {
		m.fail(ctx, err)
	}
}

func (m *Manager) fail(ctx *Context, err error) {
	cerr := &CommandError{Command: ctx.Command, Err: err}
	if m.errHandler != nil {
		m.errHandler(ctx, cerr)
	}
	log.Printf("[ERR] Command %q failed: %v", ctx.Command.Path(), err)
}

func (m *Manager) handleAutocomplete(s *discordgo.Session, ev *discordgo.InteractionCreate) {
	ic := NewInteraction(ev)
	c, ok := m.commands[ic.Path()]
	if !ok {
		return
	}
	focused := ic.Focused()
	if focused == nil {
		return
	}
	for _, o := range c.options {
		if o.Param.Autocomplete == nil || !o.matches(focused.Name) {
			continue
		}
		ctx := &Context{Session: s, Manager: m, Command: c, Interaction: ic}
		if err := o.Param.Autocomplete(ctx); err != nil {
			log.Printf("[ERR] Autocomplete for %q option %q failed: %v", c.Path(), focused.Name, err)
		}
		return
	}
}
