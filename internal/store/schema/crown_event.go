package schema

import "time"

// CrownEventType describes a crown mutation recorded in the history log
type CrownEventType string

const (
	// CrownEventClaimed records an absent crown being claimed
	CrownEventClaimed CrownEventType = "claimed"
	// CrownEventTransferred records the crown moving to a new holder
	CrownEventTransferred CrownEventType = "transferred"
	// CrownEventUpdated records the current holder's playcount being raised
	CrownEventUpdated CrownEventType = "updated"
	// CrownEventRemoved records an explicit admin removal
	CrownEventRemoved CrownEventType = "removed"
	// CrownEventDisabled records deletion by the crowns-disabled cascade
	CrownEventDisabled CrownEventType = "disabled"
)

// CrownEvent represents the crown_events table - an append-only log of crown
// mutations. The crowns table remains the sole source of the current holder;
// this log only serves history display.
type CrownEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// GuildID is the Discord guild snowflake
	GuildID string `gorm:"column:guild_id;not null;type:text;index:idx_crown_events_guild_artist,priority:1"`
	// ArtistNameLower is the lowercased artist name the event applies to
	ArtistNameLower string `gorm:"column:artist_name_lower;not null;type:text;index:idx_crown_events_guild_artist,priority:2"`
	// EventType is what happened to the crown
	EventType CrownEventType `gorm:"column:event_type;not null;type:text"`
	// HolderUserID is the holder after the event (for removals, the holder that lost the crown)
	HolderUserID string `gorm:"column:holder_user_id;not null;type:text"`
	// PreviousHolderID is the holder before a transfer (nil otherwise)
	PreviousHolderID *string `gorm:"column:previous_holder_id;type:text"`
	// Playcount is the playcount recorded by the event
	Playcount int64 `gorm:"column:playcount;not null"`
	// CreatedAt is when the event happened
	CreatedAt time.Time `gorm:"column:created_at;not null;type:timestamptz"`
}

// TableName specifies the table name for the CrownEvent model
func (CrownEvent) TableName() string {
	return "crown_events"
}
