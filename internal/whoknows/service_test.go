package whoknows_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
	"github.com/crownbeat/crownbeat/internal/mocks"
	"github.com/crownbeat/crownbeat/internal/roster"
	"github.com/crownbeat/crownbeat/internal/store/schema"
	"github.com/crownbeat/crownbeat/internal/whoknows"
)

type testWhoKnowsMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	scrobble *mocks.MockScrobbleClient
	roster   *mocks.MockRosterProvider
	crowns   *mocks.MockCrownService
	clock    *mocks.MockClock
	service  whoknows.Service
}

var (
	wkTestTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	requester  = domain.Member{UserID: "user-req", DisplayName: "Req", LastFMUsername: "lfm_req"}
)

func setupTestWhoKnows(t *testing.T) *testWhoKnowsMocks {
	err := logger.Initialize(logger.Config{Debug: true})
	require.NoError(t, err)

	ctrl := gomock.NewController(t)

	tm := &testWhoKnowsMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		scrobble: mocks.NewMockScrobbleClient(ctrl),
		roster:   mocks.NewMockRosterProvider(ctrl),
		crowns:   mocks.NewMockCrownService(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}

	tm.service = whoknows.NewService(tm.store, tm.scrobble, tm.roster, tm.crowns, tm.clock, whoknows.Config{
		RequesterStaleAfter: 24 * time.Hour,
	})

	return tm
}

func indexedGuild() *schema.Guild {
	indexed := wkTestTime.Add(-time.Hour)
	return &schema.Guild{GuildID: "guild-1", LastIndexedAt: &indexed}
}

func listenerRow(userID string, playcount int64, indexed time.Time) *schema.MemberArtist {
	return &schema.MemberArtist{
		GuildID:         "guild-1",
		UserID:          userID,
		ArtistName:      "Deftones",
		ArtistNameLower: "deftones",
		Playcount:       playcount,
		LastIndexed:     indexed,
	}
}

func guildRoster(ids ...string) []roster.Entry {
	entries := make([]roster.Entry, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, roster.Entry{UserID: id, DisplayName: "name-" + id})
	}
	return entries
}

func TestWhoKnows_RequesterWithoutLinkedAccount(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()

	_, err := tm.service.WhoKnows(context.Background(), "guild-1", "Deftones", domain.Member{UserID: "user-req"})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestWhoKnows_GuildNeverIndexed(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	t.Run("guild never seen", func(t *testing.T) {
		tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(nil, nil)
		_, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
		assert.ErrorIs(t, err, domain.ErrGuildNotIndexed)
	})

	t.Run("guild seen but never indexed", func(t *testing.T) {
		tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(&schema.Guild{GuildID: "guild-1"}, nil)
		_, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
		assert.ErrorIs(t, err, domain.ErrGuildNotIndexed)
	})
}

func TestWhoKnows_RanksByPlaycountWithUserIDTieBreak(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		{UserID: "user-c", Playcount: 50, LastIndexed: fresh},
		{UserID: "user-a", Playcount: 30, LastIndexed: fresh},
		{UserID: "user-b", Playcount: 50, LastIndexed: fresh},
		{UserID: "user-req", Playcount: 10, LastIndexed: fresh},
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").
		Return(guildRoster("user-a", "user-b", "user-c", "user-req"), nil)
	tm.clock.EXPECT().Since(fresh).Return(time.Hour)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-b", int64(50)).
		Return(&domain.CrownChange{Kind: domain.CrownChangeNone}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	require.Len(t, result.Entries, 4)
	assert.Equal(t, []string{"user-b", "user-c", "user-a", "user-req"}, []string{
		result.Entries[0].UserID, result.Entries[1].UserID, result.Entries[2].UserID, result.Entries[3].UserID,
	})
	assert.Equal(t, 1, result.Entries[0].Rank)
	assert.Equal(t, 4, result.Entries[3].Rank)
	assert.Nil(t, result.Crown)
	assert.False(t, result.Nobody)
}

func TestWhoKnows_ExcludesMembersWhoLeftTheGuild(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-gone", 500, fresh),
		listenerRow("user-req", 20, fresh),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-req"), nil)
	tm.clock.EXPECT().Since(fresh).Return(time.Hour)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-req", int64(20)).
		Return(&domain.CrownChange{Kind: domain.CrownChangeNone}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "user-req", result.Entries[0].UserID)
}

func TestWhoKnows_NobodyListens(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return(nil, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-req"), nil)
	tm.scrobble.EXPECT().GetArtistPlaycount(ctx, "lfm_req", "Deftones").Return(int64(0), nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	assert.True(t, result.Nobody)
	assert.Empty(t, result.Entries)
}

func TestWhoKnows_LiveTopUpSplicesMissingRequester(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-a", 40, fresh),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-a", "user-req"), nil)
	tm.scrobble.EXPECT().GetArtistPlaycount(ctx, "lfm_req", "Deftones").Return(int64(90), nil)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-req", int64(90)).
		Return(&domain.CrownChange{
			Kind:         domain.CrownChangeClaimed,
			HolderUserID: "user-req",
			Playcount:    90,
		}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "user-req", result.Entries[0].UserID)
	assert.Equal(t, int64(90), result.Entries[0].Playcount)
	require.NotNil(t, result.Crown)
	assert.Equal(t, domain.CrownChangeClaimed, result.Crown.Kind)
}

func TestWhoKnows_LiveTopUpOverwritesStaleRequesterRow(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	stale := wkTestTime.Add(-48 * time.Hour)
	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-a", 40, fresh),
		listenerRow("user-req", 10, stale),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-a", "user-req"), nil)
	tm.clock.EXPECT().Since(stale).Return(48 * time.Hour)
	tm.scrobble.EXPECT().GetArtistPlaycount(ctx, "lfm_req", "Deftones").Return(int64(75), nil)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-req", int64(75)).
		Return(&domain.CrownChange{Kind: domain.CrownChangeNone}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "user-req", result.Entries[0].UserID)
	assert.Equal(t, int64(75), result.Entries[0].Playcount)
}

func TestWhoKnows_LiveRefreshToZeroDropsTheRequester(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	stale := wkTestTime.Add(-48 * time.Hour)
	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-a", 40, fresh),
		listenerRow("user-req", 10, stale),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-a", "user-req"), nil)
	tm.clock.EXPECT().Since(stale).Return(48 * time.Hour)
	tm.scrobble.EXPECT().GetArtistPlaycount(ctx, "lfm_req", "Deftones").Return(int64(0), nil)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-a", int64(40)).
		Return(&domain.CrownChange{Kind: domain.CrownChangeNone}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "user-a", result.Entries[0].UserID)
}

func TestWhoKnows_LiveLookupFailureDegradesToSnapshot(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	stale := wkTestTime.Add(-48 * time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-req", 10, stale),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-req"), nil)
	tm.clock.EXPECT().Since(stale).Return(48 * time.Hour)
	tm.scrobble.EXPECT().GetArtistPlaycount(ctx, "lfm_req", "Deftones").
		Return(int64(0), domain.ErrUpstreamUnavailable)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-req", int64(10)).
		Return(&domain.CrownChange{Kind: domain.CrownChangeNone}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	assert.True(t, result.RequesterStale)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, int64(10), result.Entries[0].Playcount)
}

func TestWhoKnows_CrownClaimFailureDoesNotFailTheQuery(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-req", 60, fresh),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-req"), nil)
	tm.clock.EXPECT().Since(fresh).Return(time.Hour)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-req", int64(60)).
		Return(nil, errors.New("deadlock detected"))

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	assert.Nil(t, result.Crown)
	require.Len(t, result.Entries, 1)
}

func TestWhoKnows_CrownTransferSurfacesInResult(t *testing.T) {
	tm := setupTestWhoKnows(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	fresh := wkTestTime.Add(-time.Hour)
	tm.store.EXPECT().GetGuild(ctx, "guild-1").Return(indexedGuild(), nil)
	tm.store.EXPECT().GetArtistListeners(ctx, "guild-1", "Deftones").Return([]*schema.MemberArtist{
		listenerRow("user-req", 200, fresh),
		listenerRow("user-old", 100, fresh),
	}, nil)
	tm.roster.EXPECT().GetGuildMembers(ctx, "guild-1").Return(guildRoster("user-old", "user-req"), nil)
	tm.clock.EXPECT().Since(fresh).Return(time.Hour)
	tm.crowns.EXPECT().EvaluateClaim(ctx, "guild-1", "Deftones", "user-req", int64(200)).
		Return(&domain.CrownChange{
			Kind:             domain.CrownChangeTransferred,
			HolderUserID:     "user-req",
			PreviousHolderID: "user-old",
			Playcount:        200,
		}, nil)

	result, err := tm.service.WhoKnows(ctx, "guild-1", "Deftones", requester)
	require.NoError(t, err)
	require.NotNil(t, result.Crown)
	assert.Equal(t, domain.CrownChangeTransferred, result.Crown.Kind)
	assert.Equal(t, "user-old", result.Crown.PreviousHolderID)
}
