package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestArtists(plays ...int64) []domain.ArtistPlays {
	artists := make([]domain.ArtistPlays, 0, len(plays))
	for n, p := range plays {
		artists = append(artists, domain.ArtistPlays{
			Name:      fmt.Sprintf("Artist %d", n),
			Playcount: p,
		})
	}
	return artists
}

func buildClaim(guildID, artist, holder string, playcount int64, at time.Time) ClaimCrownInput {
	return ClaimCrownInput{
		GuildID:      guildID,
		ArtistName:   artist,
		HolderUserID: holder,
		Playcount:    playcount,
		ClaimedAt:    at,
	}
}

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// =============================================================================
// Guild lifecycle
// =============================================================================

func testEnsureGuild(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("creates a guild on first sight", func(t *testing.T) {
		guild, err := s.EnsureGuild(ctx, "guild-1")
		require.NoError(t, err)
		require.NotNil(t, guild)
		assert.Equal(t, "guild-1", guild.GuildID)
		assert.Nil(t, guild.LastIndexedAt)
		assert.False(t, guild.CrownsDisabled)
	})

	t.Run("is idempotent", func(t *testing.T) {
		first, err := s.EnsureGuild(ctx, "guild-2")
		require.NoError(t, err)
		second, err := s.EnsureGuild(ctx, "guild-2")
		require.NoError(t, err)
		assert.Equal(t, first.GuildID, second.GuildID)
		assert.Equal(t, first.CreatedAt, second.CreatedAt)
	})

	t.Run("get unknown guild returns nil", func(t *testing.T) {
		guild, err := s.GetGuild(ctx, "never-seen")
		require.NoError(t, err)
		assert.Nil(t, guild)
	})
}

func testTryStartGuildIndex(t *testing.T, s Store) {
	ctx := context.Background()
	window := 3 * time.Minute

	t.Run("first start succeeds and records the timestamp", func(t *testing.T) {
		ok, err := s.TryStartGuildIndex(ctx, "guild-idx-1", testTime, window)
		require.NoError(t, err)
		assert.True(t, ok)

		guild, err := s.GetGuild(ctx, "guild-idx-1")
		require.NoError(t, err)
		require.NotNil(t, guild.LastIndexedAt)
		assert.True(t, guild.LastIndexedAt.Equal(testTime))
	})

	t.Run("second start inside the window is rejected", func(t *testing.T) {
		ok, err := s.TryStartGuildIndex(ctx, "guild-idx-2", testTime, window)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.TryStartGuildIndex(ctx, "guild-idx-2", testTime.Add(time.Minute), window)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("start after the window succeeds and advances the timestamp", func(t *testing.T) {
		ok, err := s.TryStartGuildIndex(ctx, "guild-idx-3", testTime, window)
		require.NoError(t, err)
		require.True(t, ok)

		later := testTime.Add(window + time.Second)
		ok, err = s.TryStartGuildIndex(ctx, "guild-idx-3", later, window)
		require.NoError(t, err)
		assert.True(t, ok)

		guild, err := s.GetGuild(ctx, "guild-idx-3")
		require.NoError(t, err)
		require.NotNil(t, guild.LastIndexedAt)
		assert.True(t, guild.LastIndexedAt.Equal(later))
	})

	t.Run("creates the guild when it was never seen", func(t *testing.T) {
		ok, err := s.TryStartGuildIndex(ctx, "guild-idx-new", testTime, window)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func testCrownsDisabledFlag(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("disable deletes every crown and records disabled events", func(t *testing.T) {
		guildID := "guild-dis-1"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Radiohead", "user-a", 100, testTime))
		require.NoError(t, err)
		_, err = s.ClaimCrown(ctx, buildClaim(guildID, "Portishead", "user-b", 50, testTime))
		require.NoError(t, err)

		removed, err := s.DisableCrowns(ctx, guildID, testTime.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(2), removed)

		guild, err := s.GetGuild(ctx, guildID)
		require.NoError(t, err)
		assert.True(t, guild.CrownsDisabled)

		crown, err := s.GetCrownForArtist(ctx, guildID, "Radiohead")
		require.NoError(t, err)
		assert.Nil(t, crown)

		events, err := s.GetCrownEvents(ctx, guildID, "Radiohead", 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, schema.CrownEventDisabled, events[0].EventType)
		assert.Equal(t, schema.CrownEventClaimed, events[1].EventType)
	})

	t.Run("disable with no crowns removes nothing", func(t *testing.T) {
		removed, err := s.DisableCrowns(ctx, "guild-dis-2", testTime)
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("claim against a disabled guild is rejected in the claim transaction", func(t *testing.T) {
		guildID := "guild-dis-4"
		_, err := s.DisableCrowns(ctx, guildID, testTime)
		require.NoError(t, err)

		claim, err := s.ClaimCrown(ctx, buildClaim(guildID, "Autechre", "user-a", 40, testTime.Add(time.Minute)))
		require.NoError(t, err)
		assert.Equal(t, ClaimOutcomeUnchanged, claim.Outcome)
		assert.Nil(t, claim.Crown)

		crown, err := s.GetCrownForArtist(ctx, guildID, "Autechre")
		require.NoError(t, err)
		assert.Nil(t, crown)

		events, err := s.GetCrownEvents(ctx, guildID, "Autechre", 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("enable clears the flag without restoring crowns", func(t *testing.T) {
		guildID := "guild-dis-3"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Boards of Canada", "user-a", 10, testTime))
		require.NoError(t, err)
		_, err = s.DisableCrowns(ctx, guildID, testTime)
		require.NoError(t, err)

		require.NoError(t, s.EnableCrowns(ctx, guildID))

		guild, err := s.GetGuild(ctx, guildID)
		require.NoError(t, err)
		assert.False(t, guild.CrownsDisabled)

		crown, err := s.GetCrownForArtist(ctx, guildID, "Boards of Canada")
		require.NoError(t, err)
		assert.Nil(t, crown)
	})
}

// =============================================================================
// Users
// =============================================================================

func testUsers(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("upsert creates and get retrieves", func(t *testing.T) {
		require.NoError(t, s.UpsertUser(ctx, "user-1", "lfm_one", domain.DisplayModeEmbed))

		user, err := s.GetUser(ctx, "user-1")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "lfm_one", user.LastFMUsername)
		assert.Equal(t, string(domain.DisplayModeEmbed), user.DisplayMode)
	})

	t.Run("upsert replaces username and display mode", func(t *testing.T) {
		require.NoError(t, s.UpsertUser(ctx, "user-2", "old_name", domain.DisplayModeEmbed))
		require.NoError(t, s.UpsertUser(ctx, "user-2", "new_name", domain.DisplayModeText))

		user, err := s.GetUser(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, "new_name", user.LastFMUsername)
		assert.Equal(t, string(domain.DisplayModeText), user.DisplayMode)
	})

	t.Run("get unknown user returns nil", func(t *testing.T) {
		user, err := s.GetUser(ctx, "unknown")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("get by ids skips unknown ids", func(t *testing.T) {
		require.NoError(t, s.UpsertUser(ctx, "user-3", "lfm_three", domain.DisplayModeEmbed))
		require.NoError(t, s.UpsertUser(ctx, "user-4", "lfm_four", domain.DisplayModeEmbed))

		users, err := s.GetUsersByIDs(ctx, []string{"user-3", "user-4", "missing"})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("get by empty ids returns empty", func(t *testing.T) {
		users, err := s.GetUsersByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("delete removes settings and snapshots in every guild", func(t *testing.T) {
		require.NoError(t, s.UpsertUser(ctx, "user-5", "lfm_five", domain.DisplayModeEmbed))
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, "guild-u-1", "user-5", buildTestArtists(10), testTime))
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, "guild-u-2", "user-5", buildTestArtists(20), testTime))

		require.NoError(t, s.DeleteUser(ctx, "user-5"))

		user, err := s.GetUser(ctx, "user-5")
		require.NoError(t, err)
		assert.Nil(t, user)

		for _, guildID := range []string{"guild-u-1", "guild-u-2"} {
			ages, err := s.GetSnapshotAges(ctx, guildID)
			require.NoError(t, err)
			assert.NotContains(t, ages, "user-5")
		}
	})

	t.Run("delete unknown user is a no-op", func(t *testing.T) {
		assert.NoError(t, s.DeleteUser(ctx, "never-linked"))
	})
}

// =============================================================================
// Member snapshots
// =============================================================================

func testReplaceMemberSnapshot(t *testing.T, s Store) {
	ctx := context.Background()
	guildID := "guild-snap"

	t.Run("replaces the snapshot wholesale", func(t *testing.T) {
		first := []domain.ArtistPlays{
			{Name: "Autechre", Playcount: 300},
			{Name: "Aphex Twin", Playcount: 200},
		}
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-a", first, testTime))

		second := []domain.ArtistPlays{
			{Name: "Aphex Twin", Playcount: 250},
		}
		later := testTime.Add(time.Hour)
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-a", second, later))

		rows, err := s.GetArtistListeners(ctx, guildID, "Autechre")
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = s.GetArtistListeners(ctx, guildID, "Aphex Twin")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(250), rows[0].Playcount)
		assert.True(t, rows[0].LastIndexed.Equal(later))
	})

	t.Run("deduplicates case-insensitively keeping the first row", func(t *testing.T) {
		artists := []domain.ArtistPlays{
			{Name: "MF DOOM", Playcount: 120},
			{Name: "mf doom", Playcount: 80},
		}
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-b", artists, testTime))

		rows, err := s.GetArtistListeners(ctx, guildID, "Mf Doom")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "MF DOOM", rows[0].ArtistName)
		assert.Equal(t, int64(120), rows[0].Playcount)
	})

	t.Run("skips empty artist names", func(t *testing.T) {
		artists := []domain.ArtistPlays{
			{Name: "   ", Playcount: 5},
			{Name: "Burial", Playcount: 40},
		}
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-c", artists, testTime))

		rows, err := s.GetArtistListeners(ctx, guildID, "Burial")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("empty snapshot clears the member's rows", func(t *testing.T) {
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-d", buildTestArtists(1, 2, 3), testTime))
		require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-d", nil, testTime))

		ages, err := s.GetSnapshotAges(ctx, guildID)
		require.NoError(t, err)
		assert.NotContains(t, ages, "user-d")
	})
}

func testGetSnapshotAges(t *testing.T, s Store) {
	ctx := context.Background()
	guildID := "guild-ages"

	older := testTime.Add(-48 * time.Hour)
	require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-old", buildTestArtists(10), older))
	require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-new", buildTestArtists(20), testTime))
	require.NoError(t, s.ReplaceMemberSnapshot(ctx, "guild-other", "user-elsewhere", buildTestArtists(30), testTime))

	ages, err := s.GetSnapshotAges(ctx, guildID)
	require.NoError(t, err)
	require.Len(t, ages, 2)
	assert.True(t, ages["user-old"].Equal(older))
	assert.True(t, ages["user-new"].Equal(testTime))
}

func testGetArtistListeners(t *testing.T, s Store) {
	ctx := context.Background()
	guildID := "guild-listeners"

	require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-b",
		[]domain.ArtistPlays{{Name: "Fugazi", Playcount: 80}}, testTime))
	require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-a",
		[]domain.ArtistPlays{{Name: "FUGAZI", Playcount: 80}}, testTime))
	require.NoError(t, s.ReplaceMemberSnapshot(ctx, guildID, "user-c",
		[]domain.ArtistPlays{{Name: "fugazi", Playcount: 200}}, testTime))

	t.Run("matches case-insensitively ordered by playcount then user id", func(t *testing.T) {
		rows, err := s.GetArtistListeners(ctx, guildID, "fUgAzI")
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "user-c", rows[0].UserID)
		assert.Equal(t, "user-a", rows[1].UserID)
		assert.Equal(t, "user-b", rows[2].UserID)
	})

	t.Run("unknown artist returns empty", func(t *testing.T) {
		rows, err := s.GetArtistListeners(ctx, guildID, "Nobody Plays This")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

// =============================================================================
// Crowns
// =============================================================================

func testClaimCrown(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("first claim creates the crown", func(t *testing.T) {
		guildID := "guild-claim-1"
		claim, err := s.ClaimCrown(ctx, buildClaim(guildID, "Slowdive", "user-a", 90, testTime))
		require.NoError(t, err)
		assert.Equal(t, ClaimOutcomeClaimed, claim.Outcome)
		require.NotNil(t, claim.Crown)
		assert.Equal(t, "user-a", claim.Crown.HolderUserID)
		assert.Equal(t, int64(90), claim.Crown.CurrentPlaycount)

		events, err := s.GetCrownEvents(ctx, guildID, "Slowdive", 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, schema.CrownEventClaimed, events[0].EventType)
	})

	t.Run("equal playcount leaves the holder untouched", func(t *testing.T) {
		guildID := "guild-claim-2"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Ride", "user-a", 90, testTime))
		require.NoError(t, err)

		claim, err := s.ClaimCrown(ctx, buildClaim(guildID, "Ride", "user-b", 90, testTime.Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, ClaimOutcomeUnchanged, claim.Outcome)

		crown, err := s.GetCrownForArtist(ctx, guildID, "Ride")
		require.NoError(t, err)
		assert.Equal(t, "user-a", crown.HolderUserID)
	})

	t.Run("lower playcount leaves the holder untouched", func(t *testing.T) {
		guildID := "guild-claim-3"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Lush", "user-a", 90, testTime))
		require.NoError(t, err)

		claim, err := s.ClaimCrown(ctx, buildClaim(guildID, "Lush", "user-b", 40, testTime.Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, ClaimOutcomeUnchanged, claim.Outcome)
	})

	t.Run("strictly higher playcount by another user transfers", func(t *testing.T) {
		guildID := "guild-claim-4"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Cocteau Twins", "user-a", 90, testTime))
		require.NoError(t, err)

		later := testTime.Add(time.Hour)
		claim, err := s.ClaimCrown(ctx, buildClaim(guildID, "cocteau twins", "user-b", 120, later))
		require.NoError(t, err)
		assert.Equal(t, ClaimOutcomeTransferred, claim.Outcome)
		require.NotNil(t, claim.Previous)
		assert.Equal(t, "user-a", claim.Previous.HolderUserID)
		assert.Equal(t, "user-b", claim.Crown.HolderUserID)
		assert.Equal(t, int64(120), claim.Crown.CurrentPlaycount)

		events, err := s.GetCrownEvents(ctx, guildID, "Cocteau Twins", 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, schema.CrownEventTransferred, events[0].EventType)
		require.NotNil(t, events[0].PreviousHolderID)
		assert.Equal(t, "user-a", *events[0].PreviousHolderID)
	})

	t.Run("strictly higher playcount by the holder updates in place", func(t *testing.T) {
		guildID := "guild-claim-5"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "My Bloody Valentine", "user-a", 90, testTime))
		require.NoError(t, err)

		claim, err := s.ClaimCrown(ctx, buildClaim(guildID, "My Bloody Valentine", "user-a", 130, testTime.Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, ClaimOutcomeUpdated, claim.Outcome)
		assert.Equal(t, "user-a", claim.Crown.HolderUserID)
		assert.Equal(t, int64(130), claim.Crown.CurrentPlaycount)

		events, err := s.GetCrownEvents(ctx, guildID, "My Bloody Valentine", 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, schema.CrownEventUpdated, events[0].EventType)
		assert.Nil(t, events[0].PreviousHolderID)
	})

	t.Run("same guild different artists hold independent crowns", func(t *testing.T) {
		guildID := "guild-claim-6"
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Can", "user-a", 10, testTime))
		require.NoError(t, err)
		_, err = s.ClaimCrown(ctx, buildClaim(guildID, "Neu!", "user-b", 20, testTime))
		require.NoError(t, err)

		crowns, err := s.GetCrownsForUser(ctx, guildID, "user-a")
		require.NoError(t, err)
		assert.Len(t, crowns, 1)
	})

	t.Run("same artist in different guilds holds independent crowns", func(t *testing.T) {
		_, err := s.ClaimCrown(ctx, buildClaim("guild-claim-7a", "Faust", "user-a", 10, testTime))
		require.NoError(t, err)
		_, err = s.ClaimCrown(ctx, buildClaim("guild-claim-7b", "Faust", "user-b", 5, testTime))
		require.NoError(t, err)

		crown, err := s.GetCrownForArtist(ctx, "guild-claim-7b", "Faust")
		require.NoError(t, err)
		assert.Equal(t, "user-b", crown.HolderUserID)
	})
}

func testCrownQueries(t *testing.T, s Store) {
	ctx := context.Background()
	guildID := "guild-queries"

	_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Beak", "user-a", 40, testTime))
	require.NoError(t, err)
	_, err = s.ClaimCrown(ctx, buildClaim(guildID, "Air", "user-a", 70, testTime))
	require.NoError(t, err)
	_, err = s.ClaimCrown(ctx, buildClaim(guildID, "Mogwai", "user-b", 90, testTime))
	require.NoError(t, err)

	t.Run("crowns for user ordered by playcount descending", func(t *testing.T) {
		crowns, err := s.GetCrownsForUser(ctx, guildID, "user-a")
		require.NoError(t, err)
		require.Len(t, crowns, 2)
		assert.Equal(t, "Air", crowns[0].ArtistName)
		assert.Equal(t, "Beak", crowns[1].ArtistName)
	})

	t.Run("crown for artist is case-insensitive", func(t *testing.T) {
		crown, err := s.GetCrownForArtist(ctx, guildID, "MOGWAI")
		require.NoError(t, err)
		require.NotNil(t, crown)
		assert.Equal(t, "user-b", crown.HolderUserID)
	})

	t.Run("crown counts ordered by count then holder", func(t *testing.T) {
		counts, err := s.GetCrownCounts(ctx, guildID)
		require.NoError(t, err)
		require.Len(t, counts, 2)
		assert.Equal(t, CrownCount{UserID: "user-a", Count: 2}, counts[0])
		assert.Equal(t, CrownCount{UserID: "user-b", Count: 1}, counts[1])
	})
}

func testDeleteCrownForArtist(t *testing.T, s Store) {
	ctx := context.Background()
	guildID := "guild-delete"

	t.Run("deletes and records a removed event", func(t *testing.T) {
		_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Tortoise", "user-a", 60, testTime))
		require.NoError(t, err)

		deleted, err := s.DeleteCrownForArtist(ctx, guildID, "tortoise", testTime.Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, deleted)

		crown, err := s.GetCrownForArtist(ctx, guildID, "Tortoise")
		require.NoError(t, err)
		assert.Nil(t, crown)

		events, err := s.GetCrownEvents(ctx, guildID, "Tortoise", 0)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, schema.CrownEventRemoved, events[0].EventType)
		assert.Equal(t, "user-a", events[0].HolderUserID)
	})

	t.Run("returns false when no crown exists", func(t *testing.T) {
		deleted, err := s.DeleteCrownForArtist(ctx, guildID, "Stereolab", testTime)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func testGetCrownEvents(t *testing.T, s Store) {
	ctx := context.Background()
	guildID := "guild-events"

	_, err := s.ClaimCrown(ctx, buildClaim(guildID, "Low", "user-a", 10, testTime))
	require.NoError(t, err)
	_, err = s.ClaimCrown(ctx, buildClaim(guildID, "Low", "user-b", 20, testTime.Add(time.Hour)))
	require.NoError(t, err)
	_, err = s.ClaimCrown(ctx, buildClaim(guildID, "Low", "user-b", 30, testTime.Add(2*time.Hour)))
	require.NoError(t, err)

	t.Run("returns newest first", func(t *testing.T) {
		events, err := s.GetCrownEvents(ctx, guildID, "Low", 0)
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, schema.CrownEventUpdated, events[0].EventType)
		assert.Equal(t, schema.CrownEventTransferred, events[1].EventType)
		assert.Equal(t, schema.CrownEventClaimed, events[2].EventType)
	})

	t.Run("honors the limit", func(t *testing.T) {
		events, err := s.GetCrownEvents(ctx, guildID, "Low", 2)
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("unknown artist returns empty", func(t *testing.T) {
		events, err := s.GetCrownEvents(ctx, guildID, "Unknown", 0)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}

// =============================================================================
// Test Runner - runs all tests against a given store implementation
// =============================================================================

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"EnsureGuild", testEnsureGuild},
		{"TryStartGuildIndex", testTryStartGuildIndex},
		{"CrownsDisabledFlag", testCrownsDisabledFlag},
		{"Users", testUsers},
		{"ReplaceMemberSnapshot", testReplaceMemberSnapshot},
		{"GetSnapshotAges", testGetSnapshotAges},
		{"GetArtistListeners", testGetArtistListeners},
		{"ClaimCrown", testClaimCrown},
		{"CrownQueries", testCrownQueries},
		{"DeleteCrownForArtist", testDeleteCrownForArtist},
		{"GetCrownEvents", testGetCrownEvents},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
