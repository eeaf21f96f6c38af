package schema

import "time"

// Guild represents the guilds table - per-server indexing bookkeeping.
// LastIndexedAt only ever advances; it is also the single-writer gate for
// concurrent index requests (see Store.TryStartGuildIndex).
type Guild struct {
	// GuildID is the Discord guild snowflake
	GuildID string `gorm:"column:guild_id;primaryKey;type:text"`
	// LastIndexedAt is when the last full index run started (nil = never indexed)
	LastIndexedAt *time.Time `gorm:"column:last_indexed_at;type:timestamptz"`
	// CrownsDisabled indicates crowns are turned off for this guild.
	// While set, no Crown rows exist for the guild.
	CrownsDisabled bool      `gorm:"column:crowns_disabled;not null;default:false"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt      time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Guild model
func (Guild) TableName() string {
	return "guilds"
}
