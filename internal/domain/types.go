package domain

import (
	"strings"
	"time"
)

// DisplayMode selects how the command layer renders results.
// It never reaches the indexing/aggregation/crown core.
type DisplayMode string

const (
	DisplayModeEmbed DisplayMode = "embed"
	DisplayModeText  DisplayMode = "text"
)

// IsValidDisplayMode checks if a display mode is valid
func IsValidDisplayMode(mode DisplayMode) bool {
	return mode == DisplayModeEmbed || mode == DisplayModeText
}

// Member is a guild member eligible for indexing: a Discord user with a
// linked Last.fm username.
type Member struct {
	UserID         string
	DisplayName    string
	LastFMUsername string
}

// ArtistPlays is one (artist, playcount) pair from a member's listening history
type ArtistPlays struct {
	Name      string
	Playcount int64
}

// NormalizeArtistName lowercases an artist name for case-insensitive matching.
// All artist lookups in the store go through this normalization.
func NormalizeArtistName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// IndexReport summarizes the outcome of a guild index request
type IndexReport struct {
	// Queued holds the members handed to the asynchronous crawl
	Queued []Member
	// AlreadyCurrent is the number of members whose snapshots were still fresh
	AlreadyCurrent int
	// NextRunAt is set when nothing was queued and the guild-level cooldown
	// determines when the next full re-index window opens
	NextRunAt *time.Time
}

// WhoKnowsEntry is one ranked row of a WhoKnows query. Entries are ephemeral:
// they are produced fresh per query and never persisted.
type WhoKnowsEntry struct {
	UserID      string
	DisplayName string
	Playcount   int64
	Rank        int
}

// CrownChangeKind describes what a crown claim evaluation did
type CrownChangeKind string

const (
	// CrownChangeNone means the existing crown (or absence of one) stands
	CrownChangeNone CrownChangeKind = "none"
	// CrownChangeClaimed means a crown was created for a previously uncrowned artist
	CrownChangeClaimed CrownChangeKind = "claimed"
	// CrownChangeTransferred means the crown moved to a different holder
	CrownChangeTransferred CrownChangeKind = "transferred"
	// CrownChangeUpdated means the current holder's recorded playcount was raised
	CrownChangeUpdated CrownChangeKind = "updated"
)

// CrownChange describes the crown side effect of a WhoKnows query
type CrownChange struct {
	Kind             CrownChangeKind
	HolderUserID     string
	PreviousHolderID string
	Playcount        int64
}

// WhoKnowsResult is the full answer to a WhoKnows query
type WhoKnowsResult struct {
	Artist  string
	Entries []WhoKnowsEntry
	// Nobody is set when no member, including the requester, has ever played
	// the artist. Distinct from an empty Entries slice so callers can render
	// a dedicated message.
	Nobody bool
	// RequesterStale is set when the requester's live top-up failed and their
	// entry reflects snapshot data only
	RequesterStale bool
	// IndexedAt is the guild's last full-index time, for staleness warnings
	IndexedAt *time.Time
	// Crown reports what the claim side effect did, if anything
	Crown *CrownChange
}

// CrownHolding is one crown held by a user, for self-display
type CrownHolding struct {
	ArtistName string
	Playcount  int64
	Since      time.Time
}

// CrownInfo is the current crown for one artist
type CrownInfo struct {
	ArtistName   string
	HolderUserID string
	Playcount    int64
	Since        time.Time
}

// CrownHistoryEntry is one recorded crown mutation, newest first
type CrownHistoryEntry struct {
	Event            string
	HolderUserID     string
	PreviousHolderID string
	Playcount        int64
	At               time.Time
}

// LeaderboardRow is one row of the guild-wide crown leaderboard
type LeaderboardRow struct {
	UserID     string
	CrownCount int64
}
