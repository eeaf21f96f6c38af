package store

import (
	"context"
	"time"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/store/schema"
)

// ClaimOutcome describes what a crown claim attempt did
type ClaimOutcome string

const (
	// ClaimOutcomeUnchanged means the stored crown already matched or beat the claim
	ClaimOutcomeUnchanged ClaimOutcome = "unchanged"
	// ClaimOutcomeClaimed means a crown was created for a previously uncrowned artist
	ClaimOutcomeClaimed ClaimOutcome = "claimed"
	// ClaimOutcomeTransferred means the crown moved to a different holder
	ClaimOutcomeTransferred ClaimOutcome = "transferred"
	// ClaimOutcomeUpdated means the holder kept the crown at a higher playcount
	ClaimOutcomeUpdated ClaimOutcome = "updated"
)

// ClaimCrownInput carries one observed top listener into ClaimCrown
type ClaimCrownInput struct {
	GuildID      string
	ArtistName   string
	HolderUserID string
	Playcount    int64
	ClaimedAt    time.Time
}

// CrownClaim is the result of a crown claim attempt
type CrownClaim struct {
	Outcome ClaimOutcome
	// Crown is the row as it stands after the attempt
	Crown *schema.Crown
	// Previous is the row that was overwritten, set for transfers and updates
	Previous *schema.Crown
}

// CrownCount is one row of the guild crown leaderboard
type CrownCount struct {
	UserID string
	Count  int64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// EnsureGuild creates the guild record if it does not exist and returns it
	EnsureGuild(ctx context.Context, guildID string) (*schema.Guild, error)
	// GetGuild retrieves a guild record, or nil if the guild was never seen
	GetGuild(ctx context.Context, guildID string) (*schema.Guild, error)
	// TryStartGuildIndex atomically advances the guild's last-indexed timestamp
	// to startedAt, but only if the previous run started at least reentryWindow
	// ago. Returns false when another index request won the race or is still
	// inside the window. This is the single-writer gate for the crawl.
	TryStartGuildIndex(ctx context.Context, guildID string, startedAt time.Time, reentryWindow time.Duration) (bool, error)
	// DisableCrowns sets the crowns-disabled flag and deletes every crown the
	// guild has, recording a disabled event per crown. Returns the number of
	// crowns removed.
	DisableCrowns(ctx context.Context, guildID string, disabledAt time.Time) (int64, error)
	// EnableCrowns clears the crowns-disabled flag. It does not restore history.
	EnableCrowns(ctx context.Context, guildID string) error

	// GetUser retrieves a user's settings, or nil if the user never linked an account
	GetUser(ctx context.Context, userID string) (*schema.User, error)
	// GetUsersByIDs retrieves settings for the given users, skipping unknown ids
	GetUsersByIDs(ctx context.Context, userIDs []string) ([]*schema.User, error)
	// UpsertUser creates or replaces a user's linked username and display mode
	UpsertUser(ctx context.Context, userID, lastfmUsername string, displayMode domain.DisplayMode) error
	// DeleteUser removes a user's settings and all of their snapshots in every guild
	DeleteUser(ctx context.Context, userID string) error

	// ReplaceMemberSnapshot replaces a member's snapshot wholesale with the
	// given artist rows. Readers see either the old or the new snapshot.
	ReplaceMemberSnapshot(ctx context.Context, guildID, userID string, artists []domain.ArtistPlays, indexedAt time.Time) error
	// GetSnapshotAges returns, per member with a snapshot in the guild, the
	// time that snapshot was taken
	GetSnapshotAges(ctx context.Context, guildID string) (map[string]time.Time, error)
	// GetArtistListeners returns the guild's snapshot rows for one artist,
	// case-insensitively, ordered by playcount descending then user id
	GetArtistListeners(ctx context.Context, guildID, artistName string) ([]*schema.MemberArtist, error)

	// ClaimCrown atomically evaluates one observed top listener against the
	// stored crown: creates the crown if absent, overwrites it if the claim is
	// strictly higher, and otherwise leaves it untouched. Every mutation is
	// recorded in the crown event log.
	ClaimCrown(ctx context.Context, input ClaimCrownInput) (*CrownClaim, error)
	// GetCrownForArtist retrieves the current crown for an artist, or nil
	GetCrownForArtist(ctx context.Context, guildID, artistName string) (*schema.Crown, error)
	// GetCrownsForUser retrieves all crowns held by a user in a guild,
	// ordered by playcount descending
	GetCrownsForUser(ctx context.Context, guildID, userID string) ([]*schema.Crown, error)
	// GetCrownCounts returns crown counts grouped by holder, descending
	GetCrownCounts(ctx context.Context, guildID string) ([]CrownCount, error)
	// DeleteCrownForArtist deletes the crown row for an artist, recording a
	// removed event. Returns false when no crown existed.
	DeleteCrownForArtist(ctx context.Context, guildID, artistName string, removedAt time.Time) (bool, error)
	// GetCrownEvents returns the newest-first crown history for an artist
	GetCrownEvents(ctx context.Context, guildID, artistName string, limit int) ([]*schema.CrownEvent, error)
}
