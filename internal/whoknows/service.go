package whoknows

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/crownbeat/crownbeat/internal/adapter"
	"github.com/crownbeat/crownbeat/internal/crown"
	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
	"github.com/crownbeat/crownbeat/internal/roster"
	"github.com/crownbeat/crownbeat/internal/scrobble"
	"github.com/crownbeat/crownbeat/internal/store"
)

// Config holds aggregation service configuration
type Config struct {
	// RequesterStaleAfter is how old the requester's snapshot may be before
	// their entry is refreshed live
	RequesterStaleAfter time.Duration
}

// Service ranks a guild's members by playcount for one artist
//
//go:generate mockgen -source=service.go -destination=../mocks/whoknows_service.go -package=mocks -mock_names=Service=MockWhoKnowsService
type Service interface {
	// WhoKnows answers "who in this guild listens to this artist". The
	// requester's entry is refreshed live when their snapshot is missing or
	// stale; the top entry is handed to the crown service for a possible
	// claim or transfer.
	WhoKnows(ctx context.Context, guildID, artistName string, requester domain.Member) (*domain.WhoKnowsResult, error)
}

type service struct {
	store    store.Store
	scrobble scrobble.Client
	roster   roster.Provider
	crowns   crown.Service
	clock    adapter.Clock
	cfg      Config
}

// NewService creates a WhoKnows aggregation service
func NewService(st store.Store, sc scrobble.Client, rp roster.Provider, cs crown.Service, clock adapter.Clock, cfg Config) Service {
	if cfg.RequesterStaleAfter <= 0 {
		cfg.RequesterStaleAfter = 24 * time.Hour
	}
	return &service{
		store:    st,
		scrobble: sc,
		roster:   rp,
		crowns:   cs,
		clock:    clock,
		cfg:      cfg,
	}
}

// WhoKnows answers "who in this guild listens to this artist"
func (s *service) WhoKnows(ctx context.Context, guildID, artistName string, requester domain.Member) (*domain.WhoKnowsResult, error) {
	if requester.LastFMUsername == "" {
		return nil, domain.ErrNotConfigured
	}

	guild, err := s.store.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild == nil || guild.LastIndexedAt == nil {
		return nil, domain.ErrGuildNotIndexed
	}

	rows, err := s.store.GetArtistListeners(ctx, guildID, artistName)
	if err != nil {
		return nil, err
	}

	members, err := s.roster.GetGuildMembers(ctx, guildID)
	if err != nil {
		return nil, err
	}
	displayNames := make(map[string]string, len(members))
	for _, m := range members {
		displayNames[m.UserID] = m.DisplayName
	}

	result := &domain.WhoKnowsResult{
		Artist:    artistName,
		IndexedAt: guild.LastIndexedAt,
	}

	entries := make([]domain.WhoKnowsEntry, 0, len(rows))
	requesterIdx := -1
	requesterSnapshotAge := time.Time{}
	for _, row := range rows {
		// Members who left the guild keep snapshot rows until their next
		// re-index; they are excluded from the ranking
		name, inGuild := displayNames[row.UserID]
		if !inGuild {
			continue
		}
		entries = append(entries, domain.WhoKnowsEntry{
			UserID:      row.UserID,
			DisplayName: name,
			Playcount:   row.Playcount,
		})
		if row.UserID == requester.UserID {
			requesterIdx = len(entries) - 1
			requesterSnapshotAge = row.LastIndexed
		}
	}

	// Refresh the requester's entry live when their snapshot is missing or
	// stale. The live value is not written back to the snapshot store.
	if requesterIdx < 0 || s.clock.Since(requesterSnapshotAge) > s.cfg.RequesterStaleAfter {
		livePlaycount, liveErr := s.scrobble.GetArtistPlaycount(ctx, requester.LastFMUsername, artistName)
		switch {
		case liveErr != nil:
			// Degrade to snapshot-only data
			result.RequesterStale = true
			logger.WarnCtx(ctx, "live playcount lookup failed, using snapshot data",
				zap.String("guild_id", guildID),
				zap.String("user_id", requester.UserID),
				zap.Error(liveErr),
			)
		case requesterIdx >= 0 && livePlaycount > 0:
			entries[requesterIdx].Playcount = livePlaycount
		case requesterIdx >= 0:
			// A zero live count supersedes the stale row; the requester ranks
			// like any other zero-play member, with no entry
			entries = append(entries[:requesterIdx], entries[requesterIdx+1:]...)
		case livePlaycount > 0:
			entries = append(entries, domain.WhoKnowsEntry{
				UserID:      requester.UserID,
				DisplayName: requester.DisplayName,
				Playcount:   livePlaycount,
			})
		}
	}

	if len(entries) == 0 {
		result.Nobody = true
		return result, nil
	}

	// Deterministic order: playcount descending, user id ascending on ties
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Playcount != entries[j].Playcount {
			return entries[i].Playcount > entries[j].Playcount
		}
		return entries[i].UserID < entries[j].UserID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	result.Entries = entries

	// Crowns stay current through this side effect rather than a background job
	top := entries[0]
	change, err := s.crowns.EvaluateClaim(ctx, guildID, artistName, top.UserID, top.Playcount)
	if err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("guild_id", guildID),
			zap.String("artist", artistName),
		)
	} else if change != nil && change.Kind != domain.CrownChangeNone {
		result.Crown = change
	}

	return result, nil
}
