package roster

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// membersPageSize is the largest page the guild members endpoint returns
const membersPageSize = 1000

// Entry is one guild member as reported by the chat platform
type Entry struct {
	UserID      string
	DisplayName string
}

// Provider supplies the current guild roster and permission checks
//
//go:generate mockgen -source=provider.go -destination=../mocks/roster_provider.go -package=mocks -mock_names=Provider=MockRosterProvider
type Provider interface {
	// GetGuildMembers returns the guild's current human members
	GetGuildMembers(ctx context.Context, guildID string) ([]Entry, error)

	// HasBanPermission reports whether the user may ban members in the guild,
	// either directly or via the administrator permission
	HasBanPermission(ctx context.Context, guildID, userID string) (bool, error)
}

type discordProvider struct {
	session *discordgo.Session
}

// NewDiscordProvider creates a roster provider backed by a Discord session
func NewDiscordProvider(session *discordgo.Session) Provider {
	return &discordProvider{session: session}
}

// GetGuildMembers returns the guild's current human members, paging through
// the members endpoint. Bots are excluded.
func (p *discordProvider) GetGuildMembers(ctx context.Context, guildID string) ([]Entry, error) {
	var entries []Entry

	after := ""
	for {
		members, err := p.session.GuildMembers(guildID, after, membersPageSize, discordgo.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch guild members: %w", err)
		}
		if len(members) == 0 {
			break
		}

		for _, m := range members {
			if m.User == nil || m.User.Bot {
				continue
			}
			name := m.Nick
			if name == "" {
				name = m.User.Username
			}
			entries = append(entries, Entry{
				UserID:      m.User.ID,
				DisplayName: name,
			})
		}

		after = members[len(members)-1].User.ID
		if len(members) < membersPageSize {
			break
		}
	}

	return entries, nil
}

// HasBanPermission reports whether the user may ban members in the guild
func (p *discordProvider) HasBanPermission(ctx context.Context, guildID, userID string) (bool, error) {
	guild, err := p.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to fetch guild: %w", err)
	}
	if guild.OwnerID == userID {
		return true, nil
	}

	member, err := p.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to fetch guild member: %w", err)
	}

	rolePerms := make(map[string]int64, len(guild.Roles))
	for _, role := range guild.Roles {
		rolePerms[role.ID] = role.Permissions
	}

	var perms int64
	for _, roleID := range member.Roles {
		perms |= rolePerms[roleID]
	}

	return perms&discordgo.PermissionAdministrator != 0 ||
		perms&discordgo.PermissionBanMembers != 0, nil
}
