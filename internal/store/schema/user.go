package schema

import "time"

// User represents the users table - the link between a Discord user and
// their Last.fm account, plus rendering preferences.
type User struct {
	// UserID is the Discord user snowflake
	UserID string `gorm:"column:user_id;primaryKey;type:text"`
	// LastFMUsername is the linked Last.fm account name
	LastFMUsername string `gorm:"column:lastfm_username;not null;type:text"`
	// DisplayMode is how this user's results are rendered (embed or text).
	// Consumed only by the command layer.
	DisplayMode string    `gorm:"column:display_mode;not null;default:'embed';type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
