package indexer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/crownbeat/crownbeat/internal/adapter"
	"github.com/crownbeat/crownbeat/internal/domain"
	"github.com/crownbeat/crownbeat/internal/logger"
	"github.com/crownbeat/crownbeat/internal/scrobble"
	"github.com/crownbeat/crownbeat/internal/store"
)

// Config holds indexing service configuration
type Config struct {
	// MemberExpiry is how long a member snapshot stays fresh
	MemberExpiry time.Duration
	// GuildCooldown is how long after a full index the next re-index window opens
	GuildCooldown time.Duration
	// ReentryWindow is how long after a run starts that new index requests are
	// rejected as already-indexing
	ReentryWindow time.Duration
	// TopArtistLimit caps how many artists a member snapshot keeps
	TopArtistLimit int
	// PoolSize bounds the crawl's concurrent scrobble-service requests
	PoolSize int
	// CrawlTimeout bounds one detached guild crawl
	CrawlTimeout time.Duration
}

// Service decides which guild members need (re)indexing and runs the crawl
//
//go:generate mockgen -source=indexer.go -destination=../mocks/indexer.go -package=mocks -mock_names=Service=MockIndexerService
type Service interface {
	// RequestGuildIndex queues every member whose snapshot is missing or
	// expired and hands them to an asynchronous crawl. It returns immediately;
	// the crawl runs detached from the calling command.
	RequestGuildIndex(ctx context.Context, guildID string, members []domain.Member) (*domain.IndexReport, error)

	// Wait blocks until all in-flight crawls have finished
	Wait()

	// Stop drains in-flight crawls and shuts down the worker pool
	Stop()
}

type service struct {
	store    store.Store
	scrobble scrobble.Client
	clock    adapter.Clock
	cfg      Config
	pool     pond.Pool
	crawls   sync.WaitGroup
}

// NewService creates an indexing service. The worker pool is shared across
// guilds so the total scrobble-service fan-out stays bounded no matter how
// many crawls run at once.
func NewService(st store.Store, sc scrobble.Client, clock adapter.Clock, cfg Config) Service {
	if cfg.MemberExpiry <= 0 {
		cfg.MemberExpiry = 120 * time.Hour
	}
	if cfg.GuildCooldown <= 0 {
		cfg.GuildCooldown = 24 * time.Hour
	}
	if cfg.ReentryWindow <= 0 {
		cfg.ReentryWindow = 3 * time.Minute
	}
	if cfg.TopArtistLimit <= 0 {
		cfg.TopArtistLimit = 2000
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 2
	}
	if cfg.CrawlTimeout <= 0 {
		cfg.CrawlTimeout = 30 * time.Minute
	}

	return &service{
		store:    st,
		scrobble: sc,
		clock:    clock,
		cfg:      cfg,
		pool:     pond.NewPool(cfg.PoolSize),
	}
}

// RequestGuildIndex queues stale or unindexed members and starts the crawl
func (s *service) RequestGuildIndex(ctx context.Context, guildID string, members []domain.Member) (*domain.IndexReport, error) {
	now := s.clock.Now()

	guild, err := s.store.EnsureGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild.LastIndexedAt != nil && now.Sub(*guild.LastIndexedAt) < s.cfg.ReentryWindow {
		return nil, domain.ErrAlreadyIndexing
	}

	ages, err := s.store.GetSnapshotAges(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var queued []domain.Member
	current := 0
	for _, m := range members {
		if m.LastFMUsername == "" {
			continue
		}
		age, ok := ages[m.UserID]
		if !ok || now.Sub(age) > s.cfg.MemberExpiry {
			queued = append(queued, m)
		} else {
			current++
		}
	}

	if len(queued) == 0 {
		report := &domain.IndexReport{AlreadyCurrent: current}
		if guild.LastIndexedAt != nil {
			next := guild.LastIndexedAt.Add(s.cfg.GuildCooldown)
			report.NextRunAt = &next
		}
		return report, nil
	}

	// Advancing the timestamp before the crawl starts is the single-writer
	// gate: a concurrent request for the same guild loses the compare-and-set
	// and is rejected instead of double-queuing members.
	ok, err := s.store.TryStartGuildIndex(ctx, guildID, now, s.cfg.ReentryWindow)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAlreadyIndexing
	}

	s.crawls.Add(1)
	go s.crawl(guildID, queued)

	logger.InfoCtx(ctx, "guild index started",
		zap.String("guild_id", guildID),
		zap.Int("queued", len(queued)),
		zap.Int("already_current", current),
	)

	return &domain.IndexReport{Queued: queued, AlreadyCurrent: current}, nil
}

// crawl fetches and replaces the snapshot of every queued member. It runs
// detached from the command that requested it.
func (s *service) crawl(guildID string, members []domain.Member) {
	defer s.crawls.Done()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.CrawlTimeout)
	defer cancel()

	var indexed, failed atomic.Int64
	group := s.pool.NewGroup()
	for _, m := range members {
		group.Submit(func() {
			if err := s.indexMember(ctx, guildID, m); err != nil {
				// Per-member failures never abort the batch
				failed.Add(1)
				logger.WarnCtx(ctx, "skipping member after fetch failure",
					zap.String("guild_id", guildID),
					zap.String("user_id", m.UserID),
					zap.String("lastfm_username", m.LastFMUsername),
					zap.Error(err),
				)
				return
			}
			indexed.Add(1)
		})
	}
	if err := group.Wait(); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("guild_id", guildID))
	}

	logger.InfoCtx(ctx, "guild crawl finished",
		zap.String("guild_id", guildID),
		zap.Int64("indexed", indexed.Load()),
		zap.Int64("failed", failed.Load()),
	)
}

func (s *service) indexMember(ctx context.Context, guildID string, m domain.Member) error {
	artists, err := s.scrobble.GetTopArtists(ctx, m.LastFMUsername, s.cfg.TopArtistLimit)
	if err != nil {
		return err
	}
	return s.store.ReplaceMemberSnapshot(ctx, guildID, m.UserID, artists, s.clock.Now())
}

// Wait blocks until all in-flight crawls have finished
func (s *service) Wait() {
	s.crawls.Wait()
}

// Stop drains in-flight crawls and shuts down the worker pool
func (s *service) Stop() {
	s.crawls.Wait()
	s.pool.StopAndWait()
}
