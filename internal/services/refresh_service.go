package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"issues-dashboard/internal/entities"
	apperrors "issues-dashboard/pkg/errors"
)

// ListFetcher is the slice of the API client the refresher needs.
type ListFetcher interface {
	ListIssues(ctx context.Context, bearer string) ([]entities.Issue, error)
	ListTeamMembers(ctx context.Context, bearer string) ([]entities.TeamMember, error)
}

// Snapshot is the cached, eventually-consistent copy of the upstream
// lists. Every refresh replaces the whole snapshot; nothing mutates one in
// place, so readers may hold it across renders.
type Snapshot struct {
	Issues      []entities.Issue
	TeamMembers []entities.TeamMember
	FetchedAt   time.Time
}

type RefreshServiceInterface interface {
	Ensure(bearer string)
	Snapshot(bearer string) (*Snapshot, bool)
	Poke(bearer string)
	Stop(bearer string)
	StopAll()
}

type refreshService struct {
	fetcher   ListFetcher
	interval  time.Duration
	idleAfter time.Duration
	logger    *zap.Logger

	mu         sync.Mutex
	refreshers map[string]*refresher
}

// NewRefreshService builds the per-session polling hub. A refresher stops
// itself when the upstream revokes its bearer or when nothing has read its
// snapshot for idleAfter, so a session that just goes away never leaves an
// orphaned loop behind.
func NewRefreshService(fetcher ListFetcher, interval, idleAfter time.Duration, logger *zap.Logger) RefreshServiceInterface {
	return &refreshService{
		fetcher:    fetcher,
		interval:   interval,
		idleAfter:  idleAfter,
		logger:     logger,
		refreshers: make(map[string]*refresher),
	}
}

// Ensure starts a polling loop for the session if one is not running yet.
func (s *refreshService) Ensure(bearer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.refreshers[bearer]; ok {
		r.touch()
		return
	}

	r := newRefresher(s.fetcher, bearer, s.interval, s.idleAfter, s.logger)
	r.onEvict = func() { s.evict(bearer, r) }
	s.refreshers[bearer] = r
	r.start()
}

func (s *refreshService) Snapshot(bearer string) (*Snapshot, bool) {
	s.mu.Lock()
	r, ok := s.refreshers[bearer]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}
	r.touch()
	return r.snapshot()
}

// Poke re-fetches the session's lists right away. Mutating calls are
// fire-and-refetch: after a write the canonical lists are pulled again
// instead of reconciling local state optimistically.
func (s *refreshService) Poke(bearer string) {
	s.mu.Lock()
	r, ok := s.refreshers[bearer]
	s.mu.Unlock()
	if ok {
		r.touch()
		r.tick()
	}
}

// Stop tears the session's loop down; the timer is cancelled and any
// in-flight fetch result is discarded.
func (s *refreshService) Stop(bearer string) {
	s.mu.Lock()
	r, ok := s.refreshers[bearer]
	delete(s.refreshers, bearer)
	s.mu.Unlock()
	if ok {
		r.stop()
	}
}

func (s *refreshService) StopAll() {
	s.mu.Lock()
	refreshers := s.refreshers
	s.refreshers = make(map[string]*refresher)
	s.mu.Unlock()

	for _, r := range refreshers {
		r.stop()
	}
}

// evict removes a refresher that retired itself. The identity check keeps
// a stale callback from removing a newer loop for the same bearer.
func (s *refreshService) evict(bearer string, r *refresher) {
	s.mu.Lock()
	if current, ok := s.refreshers[bearer]; ok && current == r {
		delete(s.refreshers, bearer)
	}
	s.mu.Unlock()
}

// refresher owns one session's timer-driven re-fetch. Each tick is
// independent: a transient failed fetch keeps the previous snapshot and
// waits for the next scheduled tick without retrying early. A revoked
// bearer (upstream 401/403) retires the loop instead.
type refresher struct {
	fetcher   ListFetcher
	bearer    string
	interval  time.Duration
	idleAfter time.Duration
	logger    *zap.Logger
	onEvict   func()

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu         sync.Mutex
	snap       *Snapshot
	lastAccess time.Time
}

func newRefresher(fetcher ListFetcher, bearer string, interval, idleAfter time.Duration, logger *zap.Logger) *refresher {
	ctx, cancel := context.WithCancel(context.Background())
	return &refresher{
		fetcher:    fetcher,
		bearer:     bearer,
		interval:   interval,
		idleAfter:  idleAfter,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		lastAccess: time.Now(),
	}
}

func (r *refresher) start() {
	go func() {
		defer close(r.done)

		r.tick()

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				if r.idle() {
					r.logger.Debug("refresh loop idle, retiring")
					r.retire()
					return
				}
				r.tick()
			}
		}
	}()
}

func (r *refresher) tick() {
	issues, err := r.fetcher.ListIssues(r.ctx, r.bearer)
	if err != nil {
		r.fetchFailed("issue refresh tick failed", err)
		return
	}

	members, err := r.fetcher.ListTeamMembers(r.ctx, r.bearer)
	if err != nil {
		r.fetchFailed("team member refresh tick failed", err)
		return
	}

	r.store(&Snapshot{Issues: issues, TeamMembers: members, FetchedAt: time.Now()})
}

// fetchFailed keeps the previous snapshot on a transient error. A revoked
// bearer retires the loop outright: polling a 401-ing upstream forever
// would leak a goroutine per abandoned (or forged) session.
func (r *refresher) fetchFailed(msg string, err error) {
	if errors.Is(err, apperrors.ErrSessionExpired) {
		r.logger.Info("bearer revoked upstream, retiring refresh loop")
		r.retire()
		return
	}
	r.logger.Debug(msg, zap.Error(err))
}

// retire cancels the loop and removes it from the hub. Safe to call from
// the loop goroutine or from a Poke caller; stop() is not, since it waits
// for the loop to exit.
func (r *refresher) retire() {
	r.cancel()
	if r.onEvict != nil {
		r.onEvict()
	}
}

func (r *refresher) touch() {
	r.mu.Lock()
	r.lastAccess = time.Now()
	r.mu.Unlock()
}

func (r *refresher) idle() bool {
	if r.idleAfter <= 0 {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return time.Since(r.lastAccess) > r.idleAfter
}

// store drops results that complete after stop.
func (r *refresher) store(snap *Snapshot) {
	if r.ctx.Err() != nil {
		return
	}
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
}

func (r *refresher) snapshot() (*Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snap == nil {
		return nil, false
	}
	return r.snap, true
}

func (r *refresher) stop() {
	r.cancel()
	<-r.done
}
