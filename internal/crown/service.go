package crown

import (
	"context"

	"go.uber.org/zap"

	"github.com/crownbeat/crownbeat/internal/adapter"
	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
	"github.com/crownbeat/crownbeat/internal/store"
)

// Service maintains the per-artist top-listener ownership records of a guild.
// A crown moves through exactly three transitions: absent to held on first
// claim, held to held on transfer to a strictly higher listener, and held to
// absent on removal or the crowns-disabled cascade.
//
//go:generate mockgen -source=service.go -destination=../mocks/crown_service.go -package=mocks -mock_names=Service=MockCrownService
type Service interface {
	// EvaluateClaim weighs one observed top listener against the stored crown.
	// It is a no-op when the playcount is zero, the guild has crowns disabled,
	// or the stored crown already matches or beats the observation. This is
	// the only crown-mutation path besides bulk removal.
	EvaluateClaim(ctx context.Context, guildID, artistName, topUserID string, topPlaycount int64) (*domain.CrownChange, error)

	// GetCrownsForUser returns all crowns a user holds in a guild, highest
	// playcount first
	GetCrownsForUser(ctx context.Context, guildID, userID string) ([]domain.CrownHolding, error)

	// GetCrownForArtist returns the current crown for an artist, or nil
	GetCrownForArtist(ctx context.Context, guildID, artistName string) (*domain.CrownInfo, error)

	// GetLeaderboard returns crown counts per holder, descending
	GetLeaderboard(ctx context.Context, guildID string) ([]domain.LeaderboardRow, error)

	// GetCrownHistory returns the newest-first mutation log for an artist's crown
	GetCrownHistory(ctx context.Context, guildID, artistName string, limit int) ([]domain.CrownHistoryEntry, error)

	// RemoveCrownsForArtist deletes the crown for an artist. Authorization is
	// the command layer's responsibility. Returns false when no crown existed.
	RemoveCrownsForArtist(ctx context.Context, guildID, artistName string) (bool, error)

	// DisableCrowns turns crowns off for a guild and deletes every crown it
	// has. The caller must confirm the data loss before invoking. Returns the
	// number of crowns removed.
	DisableCrowns(ctx context.Context, guildID string) (int64, error)

	// EnableCrowns turns crowns back on. Deleted crowns are not restored.
	EnableCrowns(ctx context.Context, guildID string) error
}

type service struct {
	store store.Store
	clock adapter.Clock
}

// NewService creates a crown service
func NewService(st store.Store, clock adapter.Clock) Service {
	return &service{store: st, clock: clock}
}

// EvaluateClaim weighs one observed top listener against the stored crown
func (s *service) EvaluateClaim(ctx context.Context, guildID, artistName, topUserID string, topPlaycount int64) (*domain.CrownChange, error) {
	if topPlaycount <= 0 {
		return &domain.CrownChange{Kind: domain.CrownChangeNone}, nil
	}

	guild, err := s.store.GetGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild != nil && guild.CrownsDisabled {
		return &domain.CrownChange{Kind: domain.CrownChangeNone}, nil
	}

	claim, err := s.store.ClaimCrown(ctx, store.ClaimCrownInput{
		GuildID:      guildID,
		ArtistName:   artistName,
		HolderUserID: topUserID,
		Playcount:    topPlaycount,
		ClaimedAt:    s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	change := &domain.CrownChange{
		HolderUserID: topUserID,
		Playcount:    topPlaycount,
	}
	switch claim.Outcome {
	case store.ClaimOutcomeClaimed:
		change.Kind = domain.CrownChangeClaimed
	case store.ClaimOutcomeTransferred:
		change.Kind = domain.CrownChangeTransferred
		change.PreviousHolderID = claim.Previous.HolderUserID
	case store.ClaimOutcomeUpdated:
		change.Kind = domain.CrownChangeUpdated
	default:
		change.Kind = domain.CrownChangeNone
		return change, nil
	}

	logger.InfoCtx(ctx, "crown claim applied",
		zap.String("guild_id", guildID),
		zap.String("artist", artistName),
		zap.String("holder", topUserID),
		zap.Int64("playcount", topPlaycount),
		zap.String("outcome", string(claim.Outcome)),
	)
	return change, nil
}

// GetCrownsForUser returns all crowns a user holds in a guild
func (s *service) GetCrownsForUser(ctx context.Context, guildID, userID string) ([]domain.CrownHolding, error) {
	crowns, err := s.store.GetCrownsForUser(ctx, guildID, userID)
	if err != nil {
		return nil, err
	}

	holdings := make([]domain.CrownHolding, 0, len(crowns))
	for _, c := range crowns {
		holdings = append(holdings, domain.CrownHolding{
			ArtistName: c.ArtistName,
			Playcount:  c.CurrentPlaycount,
			Since:      c.CreatedAt,
		})
	}
	return holdings, nil
}

// GetCrownForArtist returns the current crown for an artist, or nil
func (s *service) GetCrownForArtist(ctx context.Context, guildID, artistName string) (*domain.CrownInfo, error) {
	crown, err := s.store.GetCrownForArtist(ctx, guildID, artistName)
	if err != nil || crown == nil {
		return nil, err
	}
	return &domain.CrownInfo{
		ArtistName:   crown.ArtistName,
		HolderUserID: crown.HolderUserID,
		Playcount:    crown.CurrentPlaycount,
		Since:        crown.CreatedAt,
	}, nil
}

// GetLeaderboard returns crown counts per holder, descending
func (s *service) GetLeaderboard(ctx context.Context, guildID string) ([]domain.LeaderboardRow, error) {
	counts, err := s.store.GetCrownCounts(ctx, guildID)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.LeaderboardRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, domain.LeaderboardRow{UserID: c.UserID, CrownCount: c.Count})
	}
	return rows, nil
}

// GetCrownHistory returns the newest-first mutation log for an artist's crown
func (s *service) GetCrownHistory(ctx context.Context, guildID, artistName string, limit int) ([]domain.CrownHistoryEntry, error) {
	events, err := s.store.GetCrownEvents(ctx, guildID, artistName, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.CrownHistoryEntry, 0, len(events))
	for _, e := range events {
		entry := domain.CrownHistoryEntry{
			Event:        string(e.EventType),
			HolderUserID: e.HolderUserID,
			Playcount:    e.Playcount,
			At:           e.CreatedAt,
		}
		if e.PreviousHolderID != nil {
			entry.PreviousHolderID = *e.PreviousHolderID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// RemoveCrownsForArtist deletes the crown for an artist
func (s *service) RemoveCrownsForArtist(ctx context.Context, guildID, artistName string) (bool, error) {
	deleted, err := s.store.DeleteCrownForArtist(ctx, guildID, artistName, s.clock.Now())
	if err != nil {
		return false, err
	}
	if deleted {
		logger.InfoCtx(ctx, "crown removed",
			zap.String("guild_id", guildID),
			zap.String("artist", artistName),
		)
	}
	return deleted, nil
}

// DisableCrowns turns crowns off for a guild and deletes every crown it has
func (s *service) DisableCrowns(ctx context.Context, guildID string) (int64, error) {
	removed, err := s.store.DisableCrowns(ctx, guildID, s.clock.Now())
	if err != nil {
		return 0, err
	}
	logger.InfoCtx(ctx, "crowns disabled",
		zap.String("guild_id", guildID),
		zap.Int64("removed", removed),
	)
	return removed, nil
}

// EnableCrowns turns crowns back on
func (s *service) EnableCrowns(ctx context.Context, guildID string) error {
	return s.store.EnableCrowns(ctx, guildID)
}
