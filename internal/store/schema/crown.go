package schema

import "time"

// Crown represents the crowns table - the single current top-listener record
// per (guild, artist). At most one row exists per guild and artist, enforced
// by a unique index on (guild_id, artist_name_lower). CurrentPlaycount is the
// playcount observed at the last claim, not a live value, and never decreases
// in place: it is either overwritten by a strictly higher value or the whole
// row is deleted.
type Crown struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// GuildID is the Discord guild snowflake
	GuildID string `gorm:"column:guild_id;not null;type:text;uniqueIndex:idx_crowns_guild_artist,priority:1"`
	// ArtistName is the artist name as observed at claim time
	ArtistName string `gorm:"column:artist_name;not null;type:text"`
	// ArtistNameLower is the lowercased artist name used for case-insensitive uniqueness
	ArtistNameLower string `gorm:"column:artist_name_lower;not null;type:text;uniqueIndex:idx_crowns_guild_artist,priority:2"`
	// HolderUserID is the Discord user snowflake of the current holder
	HolderUserID string `gorm:"column:holder_user_id;not null;type:text;index:idx_crowns_guild_holder"`
	// CurrentPlaycount is the holder's playcount at the time of the last claim
	CurrentPlaycount int64 `gorm:"column:current_playcount;not null"`
	// CreatedAt is the time of the most recent claim or transfer
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the Crown model
func (Crown) TableName() string {
	return "crowns"
}
