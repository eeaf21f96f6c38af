package scrobble

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shkh/lastfm-go/lastfm"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
)

// maxPageSize is the largest page user.getTopArtists accepts
const maxPageSize = 1000

// Last.fm API error codes
const (
	errCodeInvalidParams   = 6 // also "user not found"
	errCodeOperationFail   = 8
	errCodeServiceOffline  = 11
	errCodeTempUnavailable = 16
	errCodeRateLimited     = 29
)

// Client defines the interface for scrobble service operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../mocks/scrobble_client.go -package=mocks -mock_names=Client=MockScrobbleClient
type Client interface {
	// GetTopArtists fetches a user's all-time top artists, highest playcount
	// first, up to limit entries
	GetTopArtists(ctx context.Context, username string, limit int) ([]domain.ArtistPlays, error)

	// GetArtistPlaycount fetches a user's current all-time playcount for one
	// artist, case-insensitively. Returns 0 when the user has never played it.
	GetArtistPlaycount(ctx context.Context, username, artistName string) (int64, error)

	// UsernameExists reports whether the username is a real Last.fm account
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// Config holds scrobble client configuration
type Config struct {
	APIKey            string
	APISecret         string
	RequestsPerSecond float64
	Burst             int
	// MaxRetryElapsed bounds the total retry time per API call
	MaxRetryElapsed time.Duration
	// TopArtistDepth bounds how many ranking entries GetArtistPlaycount scans
	// for a match. It should equal the indexer's top-artist limit so live
	// lookups read the same slice of history the snapshots hold.
	TopArtistDepth int
}

// topArtistsFetch retrieves one page of a user's all-time top artists
type topArtistsFetch func(ctx context.Context, username string, page, pageSize int) (lastfm.UserGetTopArtists, error)

type lastfmClient struct {
	api     *lastfm.Api
	limiter *rate.Limiter
	cfg     Config
	fetch   topArtistsFetch
}

// NewClient creates a Last.fm backed scrobble client. All calls go through a
// local rate limiter sized to the service's published limits, so crawls never
// fan out faster than upstream allows.
func NewClient(cfg Config) Client {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 4
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.MaxRetryElapsed <= 0 {
		cfg.MaxRetryElapsed = time.Minute
	}
	if cfg.TopArtistDepth <= 0 {
		cfg.TopArtistDepth = maxPageSize
	}

	c := &lastfmClient{
		api:     lastfm.New(cfg.APIKey, cfg.APISecret),
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cfg:     cfg,
	}
	c.fetch = c.fetchTopArtists
	return c
}

// fetchTopArtists retrieves one ranking page through the rate limiter
func (c *lastfmClient) fetchTopArtists(ctx context.Context, username string, page, pageSize int) (lastfm.UserGetTopArtists, error) {
	var result lastfm.UserGetTopArtists
	err := c.call(ctx, func() error {
		var apiErr error
		result, apiErr = c.api.User.GetTopArtists(lastfm.P{
			"user":   username,
			"period": "overall",
			"limit":  pageSize,
			"page":   page,
		})
		return apiErr
	})
	return result, err
}

// GetTopArtists fetches a user's all-time top artists up to limit entries,
// paging through the API as needed
func (c *lastfmClient) GetTopArtists(ctx context.Context, username string, limit int) ([]domain.ArtistPlays, error) {
	if limit <= 0 {
		return []domain.ArtistPlays{}, nil
	}

	artists := make([]domain.ArtistPlays, 0, min(limit, maxPageSize))
	page := 1
	for len(artists) < limit {
		pageSize := min(limit-len(artists), maxPageSize)

		result, err := c.fetch(ctx, username, page, pageSize)
		if err != nil {
			return nil, c.classify(err, username)
		}

		for _, a := range result.Artists {
			artists = append(artists, domain.ArtistPlays{
				Name:      a.Name,
				Playcount: parseCount(a.PlayCount),
			})
			if len(artists) == limit {
				break
			}
		}

		// A short page means the listening history is exhausted
		if len(result.Artists) < pageSize {
			break
		}
		page++
	}

	return artists, nil
}

// GetArtistPlaycount resolves a user's playcount for one artist by scanning
// their top-artist pages for a case-insensitive match, at most TopArtistDepth
// entries deep. The client library does not expose artist.getInfo's per-user
// playcount, so this reads the same ranking the indexer snapshots.
func (c *lastfmClient) GetArtistPlaycount(ctx context.Context, username, artistName string) (int64, error) {
	target := domain.NormalizeArtistName(artistName)

	scanned := 0
	page := 1
	for scanned < c.cfg.TopArtistDepth {
		pageSize := min(c.cfg.TopArtistDepth-scanned, maxPageSize)

		result, err := c.fetch(ctx, username, page, pageSize)
		if err != nil {
			return 0, c.classify(err, username)
		}

		for _, a := range result.Artists {
			if domain.NormalizeArtistName(a.Name) == target {
				return parseCount(a.PlayCount), nil
			}
		}

		scanned += len(result.Artists)
		// A short page means the listening history is exhausted
		if len(result.Artists) < pageSize {
			break
		}
		page++
	}
	return 0, nil
}

// UsernameExists reports whether the username is a real Last.fm account
func (c *lastfmClient) UsernameExists(ctx context.Context, username string) (bool, error) {
	err := c.call(ctx, func() error {
		_, apiErr := c.api.User.GetInfo(lastfm.P{"user": username})
		return apiErr
	})
	if err != nil {
		classified := c.classify(err, username)
		if errors.Is(classified, domain.ErrUsernameNotFound) {
			return false, nil
		}
		return false, classified
	}
	return true, nil
}

// call runs one API request through the rate limiter with exponential backoff
// on transient failures
func (c *lastfmClient) call(ctx context.Context, fn func() error) error {
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		if isRetryable(err) {
			logger.DebugCtx(ctx, "retrying last.fm request", zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = c.cfg.MaxRetryElapsed
	b.RandomizationFactor = 0.5

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// classify maps raw library errors onto the domain error taxonomy
func (c *lastfmClient) classify(err error, username string) error {
	var lfmErr *lastfm.LastfmError
	if errors.As(err, &lfmErr) && lfmErr.Code == errCodeInvalidParams {
		return fmt.Errorf("%w: %s", domain.ErrUsernameNotFound, username)
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
}

// isRetryable reports whether a request failure is worth retrying. Transport
// errors and the service's transient error codes are; everything else is
// permanent.
func isRetryable(err error) bool {
	var lfmErr *lastfm.LastfmError
	if !errors.As(err, &lfmErr) {
		return true
	}
	switch lfmErr.Code {
	case errCodeOperationFail, errCodeServiceOffline, errCodeTempUnavailable, errCodeRateLimited:
		return true
	}
	return false
}

// parseCount parses the API's string playcounts; malformed values count as zero
func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
