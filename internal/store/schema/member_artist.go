package schema

import "time"

// MemberArtist represents the member_artists table - one (artist, playcount)
// row of a member's indexed snapshot. A member's snapshot is the set of rows
// sharing (guild_id, user_id); it is replaced wholesale on re-index because
// upstream playcounts are absolute, not deltas.
type MemberArtist struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// GuildID is the Discord guild snowflake
	GuildID string `gorm:"column:guild_id;not null;type:text;uniqueIndex:idx_member_artists_guild_user_artist,priority:1"`
	// UserID is the Discord user snowflake
	UserID string `gorm:"column:user_id;not null;type:text;uniqueIndex:idx_member_artists_guild_user_artist,priority:2"`
	// ArtistName is the artist name as reported by Last.fm
	ArtistName string `gorm:"column:artist_name;not null;type:text"`
	// ArtistNameLower is the lowercased artist name used for case-insensitive lookups
	ArtistNameLower string `gorm:"column:artist_name_lower;not null;type:text;uniqueIndex:idx_member_artists_guild_user_artist,priority:3;index:idx_member_artists_guild_artist"`
	// Playcount is the member's all-time playcount for the artist at index time
	Playcount int64 `gorm:"column:playcount;not null"`
	// LastIndexed is when this snapshot was taken
	LastIndexed time.Time `gorm:"column:last_indexed;not null;type:timestamptz"`
}

// TableName specifies the table name for the MemberArtist model
func (MemberArtist) TableName() string {
	return "member_artists"
}
