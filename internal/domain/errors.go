package domain

import "errors"

var (
	// ErrNotConfigured is returned when a user has no linked Last.fm username
	ErrNotConfigured = errors.New("no linked last.fm username")

	// ErrGuildNotIndexed is returned when a guild has never been indexed
	ErrGuildNotIndexed = errors.New("guild has never been indexed")

	// ErrAlreadyIndexing is returned when a guild index request arrives while
	// a crawl is presumed running (re-entry window not yet elapsed)
	ErrAlreadyIndexing = errors.New("guild index already in progress")

	// ErrUpstreamUnavailable is returned when the scrobble service cannot be reached
	ErrUpstreamUnavailable = errors.New("last.fm is unavailable")

	// ErrUnauthorized is returned when a caller lacks permission for a crown mutation
	ErrUnauthorized = errors.New("missing permission")

	// ErrCrownsDisabled is returned when a crown operation targets a guild
	// that has crowns disabled
	ErrCrownsDisabled = errors.New("crowns are disabled for this guild")

	// ErrUsernameNotFound is returned when a Last.fm username does not exist
	ErrUsernameNotFound = errors.New("last.fm username not found")
)
