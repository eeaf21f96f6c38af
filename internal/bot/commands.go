package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
)

// getCommandDefinitions returns the slash command definitions
func (b *Bot) getCommandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "login",
			Description: "Link your Last.fm account",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "username",
					Description: "Your Last.fm username",
					Required:    true,
				},
			},
		},
		{
			Name:        "logout",
			Description: "Unlink your Last.fm account and remove your indexed data",
		},
		{
			Name:        "mode",
			Description: "Choose how your results are displayed",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "mode",
					Description: "Display mode",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Embed", Value: string(domain.DisplayModeEmbed)},
						{Name: "Text", Value: string(domain.DisplayModeText)},
					},
				},
			},
		},
		{
			Name:        "index",
			Description: "Index this server's members' top artists",
		},
		{
			Name:        "whoknows",
			Description: "Who in this server listens to an artist",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "artist",
					Description: "Artist name",
					Required:    true,
				},
			},
		},
		{
			Name:        "crowns",
			Description: "Show the crowns a member holds",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "Member to show (defaults to you)",
					Required:    false,
				},
			},
		},
		{
			Name:        "crown",
			Description: "Show the current crown and history for an artist",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "artist",
					Description: "Artist name",
					Required:    true,
				},
			},
		},
		{
			Name:        "crownleaderboard",
			Description: "Show who holds the most crowns in this server",
		},
		{
			Name:        "killcrown",
			Description: "Remove the crown for an artist (requires ban permission)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "artist",
					Description: "Artist name",
					Required:    true,
				},
			},
		},
		{
			Name:        "togglecrowns",
			Description: "Enable or disable crowns for this server (requires ban permission)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "confirm",
					Description: "Confirm that disabling deletes every crown in this server",
					Required:    false,
				},
			},
		},
	}
}

func (b *Bot) handleLogin(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	username := strings.TrimSpace(optionString(i, "username"))
	if username == "" {
		b.respondText(i, "Give me a Last.fm username to link.")
		return
	}

	exists, err := b.scrobble.UsernameExists(ctx, username)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if !exists {
		b.respondText(i, fmt.Sprintf("Last.fm user **%s** does not exist.", username))
		return
	}

	// Keep the display mode a returning user already picked
	mode := domain.DisplayModeEmbed
	if existing, err := b.store.GetUser(ctx, userID); err == nil && existing != nil {
		mode = domain.DisplayMode(existing.DisplayMode)
	}

	if err := b.store.UpsertUser(ctx, userID, username, mode); err != nil {
		b.respondError(ctx, i, err)
		return
	}
	b.respondText(i, fmt.Sprintf("Linked your account to Last.fm user **%s**.", username))
}

func (b *Bot) handleLogout(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	if err := b.store.DeleteUser(ctx, userID); err != nil {
		b.respondError(ctx, i, err)
		return
	}
	b.respondText(i, "Unlinked your account and removed your indexed data.")
}

func (b *Bot) handleMode(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	mode := domain.DisplayMode(optionString(i, "mode"))
	if !domain.IsValidDisplayMode(mode) {
		b.respondText(i, "Pick either embed or text.")
		return
	}

	user, err := b.store.GetUser(ctx, userID)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if user == nil {
		b.respondText(i, "Link your Last.fm account first with `/login`.")
		return
	}

	if err := b.store.UpsertUser(ctx, userID, user.LastFMUsername, mode); err != nil {
		b.respondError(ctx, i, err)
		return
	}
	b.respondText(i, fmt.Sprintf("Results will now be shown as %s.", mode))
}

func (b *Bot) handleIndex(ctx context.Context, i *discordgo.InteractionCreate) {
	members, err := b.resolveMembers(ctx, i.GuildID)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if len(members) == 0 {
		b.respondText(i, "Nobody in this server has linked a Last.fm account yet. Use `/login` first.")
		return
	}

	report, err := b.indexer.RequestGuildIndex(ctx, i.GuildID, members)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyIndexing) {
			b.respondText(i, "An index run for this server is already in progress.")
			return
		}
		b.respondError(ctx, i, err)
		return
	}

	if len(report.Queued) == 0 {
		msg := fmt.Sprintf("Everyone is up to date (%d members current).", report.AlreadyCurrent)
		if report.NextRunAt != nil {
			msg += fmt.Sprintf(" The next full re-index opens <t:%d:R>.", report.NextRunAt.Unix())
		}
		b.respondText(i, msg)
		return
	}

	b.respondText(i, fmt.Sprintf(
		"Indexing started: %d members queued, %d already current. This runs in the background.",
		len(report.Queued), report.AlreadyCurrent,
	))
}

func (b *Bot) handleWhoKnows(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	artist := strings.TrimSpace(optionString(i, "artist"))
	if artist == "" {
		b.respondText(i, "Give me an artist name.")
		return
	}

	user, err := b.store.GetUser(ctx, userID)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if user == nil {
		b.respondText(i, "Link your Last.fm account first with `/login`.")
		return
	}

	requester := domain.Member{
		UserID:         userID,
		DisplayName:    interactionDisplayName(i),
		LastFMUsername: user.LastFMUsername,
	}

	result, err := b.whoknows.WhoKnows(ctx, i.GuildID, artist, requester)
	if err != nil {
		if errors.Is(err, domain.ErrGuildNotIndexed) {
			b.respondText(i, "This server has not been indexed yet. Run `/index` first.")
			return
		}
		b.respondError(ctx, i, err)
		return
	}

	if result.Nobody {
		b.respondText(i, fmt.Sprintf("Nobody in this server has played **%s**.", artist))
		return
	}

	b.respond(i, domain.DisplayMode(user.DisplayMode),
		fmt.Sprintf("Who knows %s", result.Artist),
		renderWhoKnows(result, b.clock.Now(), b.cfg.Indexer.GuildCooldown),
	)
}

func (b *Bot) handleCrowns(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	target := userID
	if opt := optionUser(i, "member"); opt != "" {
		target = opt
	}

	holdings, err := b.crowns.GetCrownsForUser(ctx, i.GuildID, target)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if len(holdings) == 0 {
		b.respondText(i, fmt.Sprintf("<@%s> holds no crowns in this server.", target))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<@%s> holds %d crown(s):\n", target, len(holdings))
	for n, h := range holdings {
		if n == maxListedRows {
			fmt.Fprintf(&sb, "…and %d more", len(holdings)-maxListedRows)
			break
		}
		fmt.Fprintf(&sb, "%d. **%s** - %d plays\n", n+1, h.ArtistName, h.Playcount)
	}
	b.respondText(i, sb.String())
}

func (b *Bot) handleCrown(ctx context.Context, i *discordgo.InteractionCreate) {
	artist := strings.TrimSpace(optionString(i, "artist"))
	if artist == "" {
		b.respondText(i, "Give me an artist name.")
		return
	}

	info, err := b.crowns.GetCrownForArtist(ctx, i.GuildID, artist)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if info == nil {
		b.respondText(i, fmt.Sprintf("No crown exists for **%s**. Run `/whoknows %s` to claim it.", artist, artist))
		return
	}

	history, err := b.crowns.GetCrownHistory(ctx, i.GuildID, artist, maxListedRows)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "👑 **%s** is held by <@%s> with %d plays (since <t:%d:R>).\n",
		info.ArtistName, info.HolderUserID, info.Playcount, info.Since.Unix())
	if len(history) > 0 {
		sb.WriteString("History:\n")
		for _, h := range history {
			sb.WriteString(renderHistoryEntry(h))
		}
	}
	b.respondText(i, sb.String())
}

func (b *Bot) handleCrownLeaderboard(ctx context.Context, i *discordgo.InteractionCreate) {
	rows, err := b.crowns.GetLeaderboard(ctx, i.GuildID)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if len(rows) == 0 {
		b.respondText(i, "Nobody holds a crown in this server yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Crown leaderboard:\n")
	for n, row := range rows {
		if n == maxListedRows {
			break
		}
		fmt.Fprintf(&sb, "%d. <@%s> - %d crown(s)\n", n+1, row.UserID, row.CrownCount)
	}
	b.respondText(i, sb.String())
}

func (b *Bot) handleKillCrown(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	artist := strings.TrimSpace(optionString(i, "artist"))
	if artist == "" {
		b.respondText(i, "Give me an artist name.")
		return
	}

	if !b.authorize(ctx, i, userID) {
		return
	}

	deleted, err := b.crowns.RemoveCrownsForArtist(ctx, i.GuildID, artist)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	if !deleted {
		b.respondText(i, fmt.Sprintf("No crown exists for **%s**.", artist))
		return
	}
	b.respondText(i, fmt.Sprintf("Removed the crown for **%s**. The next `/whoknows` will recreate it from the current top listener.", artist))
}

func (b *Bot) handleToggleCrowns(ctx context.Context, i *discordgo.InteractionCreate, userID string) {
	if !b.authorize(ctx, i, userID) {
		return
	}

	guild, err := b.store.GetGuild(ctx, i.GuildID)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}

	if guild != nil && guild.CrownsDisabled {
		if err := b.crowns.EnableCrowns(ctx, i.GuildID); err != nil {
			b.respondError(ctx, i, err)
			return
		}
		b.respondText(i, "Crowns are enabled again. Previous crowns were not restored.")
		return
	}

	// Disabling deletes every crown in the guild, so it needs an explicit confirmation
	if !optionBool(i, "confirm") {
		b.respondText(i, "Disabling crowns permanently deletes every crown in this server. Re-run with `confirm: true` if you are sure.")
		return
	}

	removed, err := b.crowns.DisableCrowns(ctx, i.GuildID)
	if err != nil {
		b.respondError(ctx, i, err)
		return
	}
	b.respondText(i, fmt.Sprintf("Crowns are disabled for this server. %d crown(s) deleted.", removed))
}

// authorize rejects crown-mutation commands from users without ban permission.
// It responds on the caller's behalf when rejecting.
func (b *Bot) authorize(ctx context.Context, i *discordgo.InteractionCreate, userID string) bool {
	allowed, err := b.roster.HasBanPermission(ctx, i.GuildID, userID)
	if err != nil {
		b.respondError(ctx, i, err)
		return false
	}
	if !allowed {
		b.respondText(i, "You need the ban-members permission to do that.")
		logger.InfoCtx(ctx, "crown mutation rejected",
			zap.String("guild_id", i.GuildID),
			zap.String("user_id", userID),
		)
		return false
	}
	return true
}

// interactionDisplayName extracts the invoking user's display name
func interactionDisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if i.Member.Nick != "" {
			return i.Member.Nick
		}
		if i.Member.User != nil {
			return i.Member.User.Username
		}
	}
	if i.User != nil {
		return i.User.Username
	}
	return ""
}

// renderWhoKnows formats a ranked result, appending staleness warnings
func renderWhoKnows(result *domain.WhoKnowsResult, now time.Time, staleAfter time.Duration) string {
	var sb strings.Builder
	for _, e := range result.Entries {
		if e.Rank > maxListedRows {
			break
		}
		medal := fmt.Sprintf("%d.", e.Rank)
		if e.Rank == 1 {
			medal = "👑"
		}
		fmt.Fprintf(&sb, "%s **%s** - %d plays\n", medal, e.DisplayName, e.Playcount)
	}

	if result.Crown != nil {
		switch result.Crown.Kind {
		case domain.CrownChangeClaimed:
			fmt.Fprintf(&sb, "\n<@%s> claimed the crown with %d plays!\n", result.Crown.HolderUserID, result.Crown.Playcount)
		case domain.CrownChangeTransferred:
			fmt.Fprintf(&sb, "\nThe crown passed from <@%s> to <@%s> at %d plays!\n",
				result.Crown.PreviousHolderID, result.Crown.HolderUserID, result.Crown.Playcount)
		}
	}

	if result.RequesterStale {
		sb.WriteString("\n*Could not reach Last.fm; your own playcount may be stale.*\n")
	}
	if result.IndexedAt != nil && now.Sub(*result.IndexedAt) > staleAfter {
		fmt.Fprintf(&sb, "*Server index is from <t:%d:R>; run `/index` to refresh.*\n", result.IndexedAt.Unix())
	}

	return sb.String()
}

// renderHistoryEntry formats one crown history line
func renderHistoryEntry(h domain.CrownHistoryEntry) string {
	switch h.Event {
	case "transferred":
		return fmt.Sprintf("- <t:%d:d> passed from <@%s> to <@%s> at %d plays\n",
			h.At.Unix(), h.PreviousHolderID, h.HolderUserID, h.Playcount)
	case "claimed":
		return fmt.Sprintf("- <t:%d:d> claimed by <@%s> at %d plays\n", h.At.Unix(), h.HolderUserID, h.Playcount)
	case "updated":
		return fmt.Sprintf("- <t:%d:d> <@%s> raised the count to %d plays\n", h.At.Unix(), h.HolderUserID, h.Playcount)
	case "removed":
		return fmt.Sprintf("- <t:%d:d> removed by an admin (was <@%s> at %d plays)\n", h.At.Unix(), h.HolderUserID, h.Playcount)
	case "disabled":
		return fmt.Sprintf("- <t:%d:d> deleted when crowns were disabled (was <@%s>)\n", h.At.Unix(), h.HolderUserID)
	}
	return ""
}
