package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/crownbeat/crownbeat/internal/adapter"
	"github.com/crownbeat/crownbeat/internal/config"
	"github.com/crownbeat/crownbeat/internal/crown"
	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/indexer"
	"github.com/crownbeat/crownbeat/internal/logger"
	"github.com/crownbeat/crownbeat/internal/roster"
	"github.com/crownbeat/crownbeat/internal/scrobble"
	"github.com/crownbeat/crownbeat/internal/store"
	"github.com/crownbeat/crownbeat/internal/whoknows"
)

// commandTimeout bounds one command's store and upstream calls
const commandTimeout = 30 * time.Second

// Bot wires the Discord session to the indexing, aggregation and crown services
type Bot struct {
	cfg       *config.BotConfig
	session   *discordgo.Session
	responder interactionResponder
	store     store.Store
	scrobble  scrobble.Client
	roster    roster.Provider
	indexer   indexer.Service
	whoknows  whoknows.Service
	crowns    crown.Service
	cooldown  *Cooldown
	clock     adapter.Clock
	commands  []*discordgo.ApplicationCommand
	cancel    context.CancelFunc
}

// New creates a Bot instance around an already-configured Discord session
func New(
	cfg *config.BotConfig,
	session *discordgo.Session,
	st store.Store,
	sc scrobble.Client,
	rp roster.Provider,
	idx indexer.Service,
	wk whoknows.Service,
	cs crown.Service,
	clock adapter.Clock,
) *Bot {
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	b := &Bot{
		cfg:       cfg,
		session:   session,
		responder: session,
		store:     st,
		scrobble:  sc,
		roster:    rp,
		indexer:   idx,
		whoknows:  wk,
		crowns:    cs,
		cooldown:  NewCooldown(cfg.Cooldown.PerUser, clock),
		clock:     clock,
	}

	session.AddHandler(b.handleInteraction)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("bot ready", zap.Int("guilds", len(r.Guilds)))
	})

	return b
}

// Start opens the Discord connection and registers slash commands
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord connection: %w", err)
	}
	logger.Info("connected to discord", zap.String("user", b.session.State.User.Username))

	if err := b.registerCommands(); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel
	b.cooldown.StartSweeper(sweepCtx, b.cfg.Cooldown.SweepInterval)

	return nil
}

// Stop drains in-flight crawls and closes the Discord session
func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.indexer.Stop()
	return b.session.Close()
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	definitions := b.getCommandDefinitions()
	registered := make([]*discordgo.ApplicationCommand, 0, len(definitions))

	for _, cmd := range definitions {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		registered = append(registered, created)
	}

	b.commands = registered
	logger.Info("slash commands registered", zap.Int("count", len(registered)))
	return nil
}

// handleInteraction dispatches a slash command. Each command runs as its own
// task so a slow upstream never blocks the gateway handler.
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	userID := interactionUserID(i)
	if userID == "" || i.GuildID == "" {
		return
	}

	if ok, remaining := b.cooldown.Allow(userID); !ok {
		b.replyNow(i, fmt.Sprintf("Easy there. Try again in %s.", remaining.Round(time.Second)))
		return
	}

	if !b.ack(i) {
		return
	}

	name := i.ApplicationCommandData().Name
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		switch name {
		case "login":
			b.handleLogin(ctx, i, userID)
		case "logout":
			b.handleLogout(ctx, i, userID)
		case "mode":
			b.handleMode(ctx, i, userID)
		case "index":
			b.handleIndex(ctx, i)
		case "whoknows":
			b.handleWhoKnows(ctx, i, userID)
		case "crowns":
			b.handleCrowns(ctx, i, userID)
		case "crown":
			b.handleCrown(ctx, i)
		case "crownleaderboard":
			b.handleCrownLeaderboard(ctx, i)
		case "killcrown":
			b.handleKillCrown(ctx, i, userID)
		case "togglecrowns":
			b.handleToggleCrowns(ctx, i, userID)
		default:
			logger.WarnCtx(ctx, "unknown command", zap.String("command", name))
		}
	}()
}

// resolveMembers joins the live roster with stored user settings into the
// members the indexing service understands. Members without a linked
// username are excluded.
func (b *Bot) resolveMembers(ctx context.Context, guildID string) ([]domain.Member, error) {
	entries, err := b.roster.GetGuildMembers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}

	users, err := b.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	usernames := make(map[string]string, len(users))
	for _, u := range users {
		usernames[u.UserID] = u.LastFMUsername
	}

	members := make([]domain.Member, 0, len(users))
	for _, e := range entries {
		username, ok := usernames[e.UserID]
		if !ok {
			continue
		}
		members = append(members, domain.Member{
			UserID:         e.UserID,
			DisplayName:    e.DisplayName,
			LastFMUsername: username,
		})
	}
	return members, nil
}

// interactionUserID extracts the invoking user's id from an interaction
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
