package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/observability"
)

// ErrSuperseded is returned by Session.Load when a newer load was started
// before this one finished. Its result, success or failure, is discarded.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Session holds the currently shown dashboard. Each Load takes a new
// generation and cancels the previous in-flight load; only the latest
// generation may replace the current dashboard.
type Session struct {
	loader  Loader
	logger  *zap.Logger
	metrics *observability.Metrics

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current *domain.Dashboard
	subs    map[int]chan *domain.Dashboard
	nextSub int
}

// NewSession creates a session over loader. logger and m may be nil.
func NewSession(loader Loader, logger *zap.Logger, m *observability.Metrics) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = observability.DefaultMetrics
	}
	return &Session{
		loader:  loader,
		logger:  logger,
		metrics: m,
		subs:    make(map[int]chan *domain.Dashboard),
	}
}

// Load runs a load for period and applies it if no newer load started
// meanwhile. A superseded load returns ErrSuperseded; a failed load leaves
// the current dashboard untouched.
func (s *Session) Load(ctx context.Context, period string) (*domain.Dashboard, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	start := time.Now()
	d, err := s.loader.Load(ctx, period)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.metrics.RecordLoad(observability.StatusSuperseded, time.Since(start))
		s.logger.Debug("load discarded",
			zap.String("period", period),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", s.gen),
		)
		return nil, ErrSuperseded
	}
	if err != nil {
		s.metrics.RecordLoad(observability.StatusError, time.Since(start))
		return nil, err
	}

	d.Generation = gen
	s.current = d
	s.metrics.RecordLoad(observability.StatusSuccess, time.Since(start))
	s.logger.Info("dashboard applied",
		zap.String("period", d.Period),
		zap.Uint64("generation", gen),
	)
	for _, ch := range s.subs {
		offerLatest(ch, d)
	}
	return d, nil
}

// Current returns the applied dashboard, or nil before the first success.
// The returned value must not be modified.
func (s *Session) Current() *domain.Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Generation returns the latest issued generation.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Subscribe returns a channel that receives every applied dashboard.
// A slow subscriber only sees the most recent one. The returned function
// unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan *domain.Dashboard, func()) {
	ch := make(chan *domain.Dashboard, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Close cancels any in-flight load.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// offerLatest delivers d without blocking, replacing an undelivered value.
func offerLatest(ch chan *domain.Dashboard, d *domain.Dashboard) {
	select {
	case ch <- d:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- d:
	default:
	}
}
