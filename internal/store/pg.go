package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to defaults:
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's extended-protocol limit of 65535 parameters per query.
// Each record consumes one parameter per inserted field; a total headroom is
// reserved for ON CONFLICT clauses and GORM bookkeeping.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// EnsureGuild creates the guild record if it does not exist and returns it
func (s *pgStore) EnsureGuild(ctx context.Context, guildID string) (*schema.Guild, error) {
	guild := schema.Guild{GuildID: guildID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "guild_id"}}, DoNothing: true}).
		Create(&guild).Error
	if err != nil {
		return nil, fmt.Errorf("failed to ensure guild: %w", err)
	}

	var out schema.Guild
	if err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to get guild after ensure: %w", err)
	}
	return &out, nil
}

// GetGuild retrieves a guild record, or nil if the guild was never seen
func (s *pgStore) GetGuild(ctx context.Context, guildID string) (*schema.Guild, error) {
	var guild schema.Guild
	err := s.db.WithContext(ctx).Where("guild_id = ?", guildID).First(&guild).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}
	return &guild, nil
}

// TryStartGuildIndex atomically advances the guild's last-indexed timestamp.
// The WHERE guard makes the update a compare-and-set: of two racing index
// requests, at most one sees RowsAffected == 1.
func (s *pgStore) TryStartGuildIndex(ctx context.Context, guildID string, startedAt time.Time, reentryWindow time.Duration) (bool, error) {
	if _, err := s.EnsureGuild(ctx, guildID); err != nil {
		return false, err
	}

	cutoff := startedAt.Add(-reentryWindow)
	res := s.db.WithContext(ctx).Model(&schema.Guild{}).
		Where("guild_id = ? AND (last_indexed_at IS NULL OR last_indexed_at <= ?)", guildID, cutoff).
		Updates(map[string]interface{}{
			"last_indexed_at": startedAt,
			"updated_at":      startedAt,
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to start guild index: %w", res.Error)
	}

	return res.RowsAffected == 1, nil
}

// DisableCrowns sets the crowns-disabled flag and cascades deletion of every
// crown the guild has, in a single transaction
func (s *pgStore) DisableCrowns(ctx context.Context, guildID string, disabledAt time.Time) (int64, error) {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Taking the guild-row lock first orders this cascade against any
		// in-flight ClaimCrown, so no crown row survives the flag flip
		var locked schema.Guild
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("guild_id = ?", guildID).
			First(&locked).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock guild: %w", err)
		}

		guild := schema.Guild{GuildID: guildID, CrownsDisabled: true}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"crowns_disabled": true, "updated_at": disabledAt}),
		}).Create(&guild).Error
		if err != nil {
			return fmt.Errorf("failed to set crowns disabled: %w", err)
		}

		var crowns []*schema.Crown
		if err := tx.Where("guild_id = ?", guildID).Find(&crowns).Error; err != nil {
			return fmt.Errorf("failed to list crowns: %w", err)
		}

		if len(crowns) == 0 {
			return nil
		}

		events := make([]schema.CrownEvent, 0, len(crowns))
		for _, c := range crowns {
			events = append(events, schema.CrownEvent{
				GuildID:         guildID,
				ArtistNameLower: c.ArtistNameLower,
				EventType:       schema.CrownEventDisabled,
				HolderUserID:    c.HolderUserID,
				Playcount:       c.CurrentPlaycount,
				CreatedAt:       disabledAt,
			})
		}
		if err := tx.CreateInBatches(events, calculateSafeBatchSize(len(events), 7)).Error; err != nil {
			return fmt.Errorf("failed to record disabled events: %w", err)
		}

		res := tx.Where("guild_id = ?", guildID).Delete(&schema.Crown{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete crowns: %w", res.Error)
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// EnableCrowns clears the crowns-disabled flag
func (s *pgStore) EnableCrowns(ctx context.Context, guildID string) error {
	guild := schema.Guild{GuildID: guildID, CrownsDisabled: false}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guild_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"crowns_disabled": false}),
	}).Create(&guild).Error
	if err != nil {
		return fmt.Errorf("failed to enable crowns: %w", err)
	}
	return nil
}

// GetUser retrieves a user's settings, or nil if the user never linked an account
func (s *pgStore) GetUser(ctx context.Context, userID string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUsersByIDs retrieves settings for the given users, skipping unknown ids
func (s *pgStore) GetUsersByIDs(ctx context.Context, userIDs []string) ([]*schema.User, error) {
	if len(userIDs) == 0 {
		return []*schema.User{}, nil
	}

	var users []*schema.User
	err := s.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get users by ids: %w", err)
	}
	return users, nil
}

// UpsertUser creates or replaces a user's linked username and display mode
func (s *pgStore) UpsertUser(ctx context.Context, userID, lastfmUsername string, displayMode domain.DisplayMode) error {
	user := schema.User{
		UserID:         userID,
		LastFMUsername: lastfmUsername,
		DisplayMode:    string(displayMode),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"lastfm_username", "display_mode", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// DeleteUser removes a user's settings and all of their snapshots in every guild.
// Unlinking takes the member out of indexing scope, so the snapshots go too.
func (s *pgStore) DeleteUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&schema.MemberArtist{}).Error; err != nil {
			return fmt.Errorf("failed to delete user snapshots: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&schema.User{}).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

// ReplaceMemberSnapshot replaces a member's snapshot wholesale. The delete and
// insert share one transaction so readers never observe a partial snapshot.
func (s *pgStore) ReplaceMemberSnapshot(ctx context.Context, guildID, userID string, artists []domain.ArtistPlays, indexedAt time.Time) error {
	rows := make([]schema.MemberArtist, 0, len(artists))
	seen := make(map[string]struct{}, len(artists))
	for _, a := range artists {
		lower := domain.NormalizeArtistName(a.Name)
		if lower == "" {
			continue
		}
		// Artist names are unique within one member's snapshot
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		rows = append(rows, schema.MemberArtist{
			GuildID:         guildID,
			UserID:          userID,
			ArtistName:      a.Name,
			ArtistNameLower: lower,
			Playcount:       a.Playcount,
			LastIndexed:     indexedAt,
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("guild_id = ? AND user_id = ?", guildID, userID).
			Delete(&schema.MemberArtist{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear member snapshot: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		if err := tx.CreateInBatches(rows, calculateSafeBatchSize(len(rows), 7)).Error; err != nil {
			return fmt.Errorf("failed to insert member snapshot: %w", err)
		}
		return nil
	})
}

// GetSnapshotAges returns, per member with a snapshot in the guild, the time
// that snapshot was taken
func (s *pgStore) GetSnapshotAges(ctx context.Context, guildID string) (map[string]time.Time, error) {
	type snapshotAge struct {
		UserID      string
		LastIndexed time.Time
	}

	var rows []snapshotAge
	err := s.db.WithContext(ctx).Model(&schema.MemberArtist{}).
		Select("user_id, MAX(last_indexed) AS last_indexed").
		Where("guild_id = ?", guildID).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot ages: %w", err)
	}

	ages := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		ages[r.UserID] = r.LastIndexed
	}
	return ages, nil
}

// GetArtistListeners returns the guild's snapshot rows for one artist.
// The secondary user_id ordering keeps equal playcounts deterministic.
func (s *pgStore) GetArtistListeners(ctx context.Context, guildID, artistName string) ([]*schema.MemberArtist, error) {
	var rows []*schema.MemberArtist
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND artist_name_lower = ?", guildID, domain.NormalizeArtistName(artistName)).
		Order("playcount DESC, user_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get artist listeners: %w", err)
	}
	return rows, nil
}

// ClaimCrown atomically evaluates one observed top listener against the
// stored crown. The row lock serializes concurrent claims for the same
// artist; the unique index catches racing first claims.
func (s *pgStore) ClaimCrown(ctx context.Context, input ClaimCrownInput) (*CrownClaim, error) {
	lower := domain.NormalizeArtistName(input.ArtistName)

	var claim *CrownClaim
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The guild-row lock serializes claims against DisableCrowns, and the
		// in-transaction flag check covers the window between the caller's
		// read of the flag and this transaction
		var guild schema.Guild
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("guild_id = ?", input.GuildID).
			First(&guild).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock guild: %w", err)
		}
		if err == nil && guild.CrownsDisabled {
			claim = &CrownClaim{Outcome: ClaimOutcomeUnchanged}
			return nil
		}

		var existing schema.Crown
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("guild_id = ? AND artist_name_lower = ?", input.GuildID, lower).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to lock crown: %w", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			crown := schema.Crown{
				GuildID:          input.GuildID,
				ArtistName:       input.ArtistName,
				ArtistNameLower:  lower,
				HolderUserID:     input.HolderUserID,
				CurrentPlaycount: input.Playcount,
				CreatedAt:        input.ClaimedAt,
			}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "guild_id"}, {Name: "artist_name_lower"}},
				DoNothing: true,
			}).Create(&crown)
			if res.Error != nil {
				return fmt.Errorf("failed to create crown: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				// Lost a racing first claim; the winner's crown stands
				claim = &CrownClaim{Outcome: ClaimOutcomeUnchanged}
				return nil
			}

			event := schema.CrownEvent{
				GuildID:         input.GuildID,
				ArtistNameLower: lower,
				EventType:       schema.CrownEventClaimed,
				HolderUserID:    input.HolderUserID,
				Playcount:       input.Playcount,
				CreatedAt:       input.ClaimedAt,
			}
			if err := tx.Create(&event).Error; err != nil {
				return fmt.Errorf("failed to record claim event: %w", err)
			}

			claim = &CrownClaim{Outcome: ClaimOutcomeClaimed, Crown: &crown}
			return nil
		}

		if existing.CurrentPlaycount >= input.Playcount {
			claim = &CrownClaim{Outcome: ClaimOutcomeUnchanged, Crown: &existing}
			return nil
		}

		previous := existing
		outcome := ClaimOutcomeUpdated
		eventType := schema.CrownEventUpdated
		var previousHolder *string
		if existing.HolderUserID != input.HolderUserID {
			outcome = ClaimOutcomeTransferred
			eventType = schema.CrownEventTransferred
			previousHolder = &previous.HolderUserID
		}

		updated := existing
		updated.ArtistName = input.ArtistName
		updated.HolderUserID = input.HolderUserID
		updated.CurrentPlaycount = input.Playcount
		updated.CreatedAt = input.ClaimedAt
		err = tx.Model(&schema.Crown{}).
			Where("id = ?", existing.ID).
			Updates(map[string]interface{}{
				"artist_name":       updated.ArtistName,
				"holder_user_id":    updated.HolderUserID,
				"current_playcount": updated.CurrentPlaycount,
				"created_at":        updated.CreatedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to update crown: %w", err)
		}

		event := schema.CrownEvent{
			GuildID:          input.GuildID,
			ArtistNameLower:  lower,
			EventType:        eventType,
			HolderUserID:     input.HolderUserID,
			PreviousHolderID: previousHolder,
			Playcount:        input.Playcount,
			CreatedAt:        input.ClaimedAt,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record crown event: %w", err)
		}

		claim = &CrownClaim{Outcome: outcome, Crown: &updated, Previous: &previous}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// GetCrownForArtist retrieves the current crown for an artist, or nil
func (s *pgStore) GetCrownForArtist(ctx context.Context, guildID, artistName string) (*schema.Crown, error) {
	var crown schema.Crown
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND artist_name_lower = ?", guildID, domain.NormalizeArtistName(artistName)).
		First(&crown).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get crown: %w", err)
	}
	return &crown, nil
}

// GetCrownsForUser retrieves all crowns held by a user in a guild
func (s *pgStore) GetCrownsForUser(ctx context.Context, guildID, userID string) ([]*schema.Crown, error) {
	var crowns []*schema.Crown
	err := s.db.WithContext(ctx).
		Where("guild_id = ? AND holder_user_id = ?", guildID, userID).
		Order("current_playcount DESC, artist_name_lower ASC").
		Find(&crowns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get crowns for user: %w", err)
	}
	return crowns, nil
}

// GetCrownCounts returns crown counts grouped by holder, descending
func (s *pgStore) GetCrownCounts(ctx context.Context, guildID string) ([]CrownCount, error) {
	var counts []CrownCount
	err := s.db.WithContext(ctx).Model(&schema.Crown{}).
		Select("holder_user_id AS user_id, COUNT(*) AS count").
		Where("guild_id = ?", guildID).
		Group("holder_user_id").
		Order("count DESC, holder_user_id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get crown counts: %w", err)
	}
	return counts, nil
}

// DeleteCrownForArtist deletes the crown row for an artist, recording a
// removed event. Returns false when no crown existed.
func (s *pgStore) DeleteCrownForArtist(ctx context.Context, guildID, artistName string, removedAt time.Time) (bool, error) {
	lower := domain.NormalizeArtistName(artistName)

	var deleted bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var crown schema.Crown
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("guild_id = ? AND artist_name_lower = ?", guildID, lower).
			First(&crown).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to lock crown: %w", err)
		}

		event := schema.CrownEvent{
			GuildID:         guildID,
			ArtistNameLower: lower,
			EventType:       schema.CrownEventRemoved,
			HolderUserID:    crown.HolderUserID,
			Playcount:       crown.CurrentPlaycount,
			CreatedAt:       removedAt,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record removal event: %w", err)
		}

		if err := tx.Delete(&schema.Crown{}, crown.ID).Error; err != nil {
			return fmt.Errorf("failed to delete crown: %w", err)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}

// GetCrownEvents returns the newest-first crown history for an artist
func (s *pgStore) GetCrownEvents(ctx context.Context, guildID, artistName string, limit int) ([]*schema.CrownEvent, error) {
	q := s.db.WithContext(ctx).
		Where("guild_id = ? AND artist_name_lower = ?", guildID, domain.NormalizeArtistName(artistName)).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var events []*schema.CrownEvent
	if err := q.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to get crown events: %w", err)
	}
	return events, nil
}
